package ui

import (
	"encoding/json"
	"io"

	"github.com/Mohsinsiddi/easyeth/internal/contract"
	"github.com/Mohsinsiddi/easyeth/internal/txn"
)

// TxView is the machine-readable form of a TransactionResult.
type TxView struct {
	Network         string              `json:"network"`
	From            string              `json:"from"`
	ContractAddress string              `json:"contractAddress"`
	Value           string              `json:"value"`
	GasUsed         uint64              `json:"gasUsed"`
	GasPrice        string              `json:"gasPrice"`
	Fee             string              `json:"fee"`
	Hash            string              `json:"hash"`
	Block           uint64              `json:"block"`
	Return          []string            `json:"return,omitempty"`
	Events          map[string][]string `json:"events"`
}

// NewTxView flattens r into strings. Amounts stay exact.
func NewTxView(r *txn.TransactionResult) TxView {
	return TxView{
		Network:         r.Network,
		From:            r.From.Hex(),
		ContractAddress: r.Counterparty(),
		Value:           r.ValueEther(),
		GasUsed:         r.GasUsed,
		GasPrice:        contract.FormatValue(r.GasPrice),
		Fee:             r.FeeEther(),
		Hash:            r.Hash.Hex(),
		Block:           r.Block,
		Return:          formatEach(r.Return),
		Events:          EventView(r.Events),
	}
}

// EventView formats every event argument.
func EventView(ev contract.Events) map[string][]string {
	out := make(map[string][]string, len(ev))
	for name, vals := range ev {
		out[name] = formatEach(vals)
	}
	return out
}

// EstimateView is the machine-readable form of an Estimate.
type EstimateView struct {
	Gas      uint64 `json:"gas"`
	GasPrice string `json:"gasPrice"`
	Fee      string `json:"fee"`
}

// NewEstimateView flattens e.
func NewEstimateView(e *txn.Estimate) EstimateView {
	return EstimateView{Gas: e.GasUsed, GasPrice: contract.FormatValue(e.GasPrice), Fee: e.FeeEther()}
}

// ReadView formats read-only return values.
func ReadView(values []any) []string {
	out := formatEach(values)
	if out == nil {
		out = []string{}
	}
	return out
}

// WriteJSON encodes v indented.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatEach(vs []any) []string {
	if len(vs) == 0 {
		return nil
	}
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = contract.FormatValue(v)
	}
	return out
}
