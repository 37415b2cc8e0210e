package ui

import (
	"fmt"
	"math/big"
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/Mohsinsiddi/easyeth/internal/contract"
	"github.com/Mohsinsiddi/easyeth/internal/rpc"
	"github.com/Mohsinsiddi/easyeth/internal/toolkit"
	"github.com/Mohsinsiddi/easyeth/internal/txn"
	"github.com/Mohsinsiddi/easyeth/internal/units"
)

const gweiExp = 9

// Gwei formats a wei amount as gwei.
func Gwei(wei *big.Int) string {
	return units.ToDecimalString(wei, gweiExp) + " gwei"
}

// TxBlock renders a confirmed transaction followed by its events.
func TxBlock(title string, r *txn.TransactionResult) string {
	pairs := [][2]string{
		{"Network", NetworkName(r.Network)},
		{"From", Addr(r.From.Hex())},
		{"To", Addr(r.Counterparty())},
	}
	if r.Value != nil && r.Value.Sign() > 0 {
		pairs = append(pairs, [2]string{"Value", r.ValueEther()})
	}
	pairs = append(pairs,
		[2]string{"Gas Used", fmt.Sprintf("%d", r.GasUsed)},
		[2]string{"Gas Price", Gwei(r.GasPrice)},
		[2]string{"Fee", r.FeeEther()},
		[2]string{"Hash", Addr(r.Hash.Hex())},
		[2]string{"Block", fmt.Sprintf("%d", r.Block)},
	)
	if len(r.Return) > 0 {
		pairs = append(pairs, [2]string{"Returned", formatValues(r.Return)})
	}

	out := KeyValueBlock(title, pairs)
	if r.Events.Count() > 0 {
		out += "\n" + EventsBlock(r.Events)
	}
	return out
}

// EventsBlock renders decoded events, one line per emission.
func EventsBlock(ev contract.Events) string {
	var pairs [][2]string
	for _, name := range ev.Names() {
		for _, v := range ev[name] {
			pairs = append(pairs, [2]string{name, contract.FormatValue(v)})
		}
	}
	return KeyValueBlock(fmt.Sprintf("Events (%d)", ev.Count()), pairs)
}

// ReadBlock renders the return values of a read-only call.
func ReadBlock(method string, values []any) string {
	if len(values) == 0 {
		return KeyValueBlock(method, [][2]string{{"Returned", Meta("(nothing)")}})
	}
	pairs := make([][2]string, len(values))
	for i, v := range values {
		pairs[i] = [2]string{fmt.Sprintf("[%d]", i), contract.FormatValue(v)}
	}
	return KeyValueBlock(method, pairs)
}

// EstimateBlock renders a cost estimate.
func EstimateBlock(title string, e *txn.Estimate) string {
	return KeyValueBlock(title, [][2]string{
		{"Gas", fmt.Sprintf("%d", e.GasUsed)},
		{"Gas Price", Gwei(e.GasPrice)},
		{"Fee", e.FeeEther()},
	})
}

// AccountsTable lists signing accounts and their balances.
func AccountsTable(accounts []toolkit.Account) string {
	t := NewTable(Column{Title: "Address"}, Column{Title: "Balance"})
	for _, a := range accounts {
		t.AddRow(a.Address, a.Balance)
	}
	return t.Render()
}

// NetworksTable lists profiles with their probe results. The active profile
// is marked with an asterisk.
func NetworksTable(statuses []rpc.Status, active string) string {
	t := NewTable(
		Column{Title: " "},
		Column{Title: "Network"},
		Column{Title: "Chain ID"},
		Column{Title: "URL"},
		Column{Title: "Status"},
	)
	for _, s := range statuses {
		mark := ""
		if s.Profile.Name == active {
			mark = "*"
		}
		chainID := "-"
		if s.Profile.ChainID != 0 {
			chainID = fmt.Sprintf("%d", s.Profile.ChainID)
		}
		url := s.Profile.URL
		if s.Profile.Simulated {
			url = "(in-process)"
		}
		t.AddRow(mark, s.Profile.Name, chainID, url, statusText(s))
	}
	return t.Render()
}

func statusText(s rpc.Status) string {
	switch {
	case s.Profile.Simulated:
		return "simulated"
	case s.Endpoint.Healthy:
		return fmt.Sprintf("block %d, %dms", s.Endpoint.BlockNumber, s.Endpoint.Latency.Milliseconds())
	case s.Endpoint.Err != nil:
		return "down: " + trimErr(s.Endpoint.Err.Error())
	}
	return "down"
}

// CacheTable lists cached contract addresses for one network.
func CacheTable(entries map[string]string) string {
	names := lo.Keys(entries)
	sort.Strings(names)
	t := NewTable(Column{Title: "Contract"}, Column{Title: "Address"})
	for _, n := range names {
		t.AddRow(n, entries[n])
	}
	return t.Render()
}

func formatValues(vs []any) string {
	if len(vs) == 1 {
		return contract.FormatValue(vs[0])
	}
	return contract.FormatValue(vs)
}

// trimErr keeps the first line of an error, capped at 40 characters.
func trimErr(s string) string {
	s, _, _ = strings.Cut(s, "\n")
	return clip(s, 40)
}
