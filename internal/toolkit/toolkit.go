// Package toolkit is the string-level API the CLI drives. Contract names,
// decimal amounts and positional string arguments go in; normalized results
// come out.
package toolkit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/Mohsinsiddi/easyeth/internal/cache"
	"github.com/Mohsinsiddi/easyeth/internal/chain"
	"github.com/Mohsinsiddi/easyeth/internal/contract"
	"github.com/Mohsinsiddi/easyeth/internal/txn"
	"github.com/Mohsinsiddi/easyeth/internal/units"
)

// ErrAddressNotFound is returned when a contract has no cached address on the
// active network.
var ErrAddressNotFound = errors.New("contract address not found")

// Toolkit binds one network, one client and one address cache for the length
// of a run.
type Toolkit struct {
	network   string
	client    *chain.Client
	cache     *cache.Cache
	artifacts []string
	orch      *txn.Orchestrator
	estimator *txn.Estimator
	log       zerolog.Logger
}

// Options tune a Toolkit. Zero values select the defaults.
type Options struct {
	GasLimit       uint64
	ConfirmTimeout time.Duration
	Logger         *zerolog.Logger
}

// New returns a Toolkit. artifactDirs are searched for compiled contracts.
func New(network string, client *chain.Client, c *cache.Cache, artifactDirs []string, opts Options) *Toolkit {
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
	}
	orch := txn.New(client, network,
		txn.WithRecorder(c),
		txn.WithGasLimit(opts.GasLimit),
		txn.WithConfirmTimeout(opts.ConfirmTimeout),
		txn.WithLogger(log),
	)
	return &Toolkit{
		network:   network,
		client:    client,
		cache:     c,
		artifacts: artifactDirs,
		orch:      orch,
		estimator: txn.NewEstimator(client, orch.Builder()),
		log:       log,
	}
}

// Network returns the active network name.
func (t *Toolkit) Network() string { return t.network }

// Deploy deploys the contract called name and records its address.
func (t *Toolkit) Deploy(ctx context.Context, name string, args []string, value string) (*txn.TransactionResult, error) {
	b, err := contract.Load(t.artifacts, name)
	if err != nil {
		return nil, err
	}
	t.log.Debug().Str("contract", name).Int("bytecode_len", len(b.Bytecode)).Msg("loaded artifact")
	return t.orch.Deploy(ctx, b, args, value)
}

// Execute calls method on the cached deployment of name.
func (t *Toolkit) Execute(ctx context.Context, name, method string, args []string, value string) (txn.Result, error) {
	b, err := t.attached(name, "")
	if err != nil {
		return nil, err
	}
	return t.orch.Execute(ctx, b, method, args, value)
}

// Transfer sends value (decimal ether) to address.
func (t *Toolkit) Transfer(ctx context.Context, address, value string) (*txn.TransactionResult, error) {
	return t.orch.Transfer(ctx, address, value)
}

// Estimates predicts costs for one contract.
type Estimates struct {
	tk   *Toolkit
	name string
}

// Estimate returns the cost estimator for the contract called name.
func (t *Toolkit) Estimate(name string) *Estimates {
	return &Estimates{tk: t, name: name}
}

// Deploy estimates deploying the contract.
func (e *Estimates) Deploy(ctx context.Context, value string, args []string) (*txn.Estimate, error) {
	b, err := contract.Load(e.tk.artifacts, e.name)
	if err != nil {
		return nil, err
	}
	return e.tk.estimator.EstimateDeploy(ctx, b, args, value)
}

// Execute estimates calling method. An empty address uses the cached one.
func (e *Estimates) Execute(ctx context.Context, address, method, value string, args []string) (*txn.Estimate, error) {
	b, err := e.tk.attached(e.name, address)
	if err != nil {
		return nil, err
	}
	return e.tk.estimator.EstimateExecute(ctx, b, method, args, value)
}

// CacheGet returns the cached address of name, or every cached address on the
// network when name is empty.
func (t *Toolkit) CacheGet(name string) (any, bool) {
	if name == "" {
		return t.cache.All(t.network), true
	}
	return t.cache.Get(t.network, name)
}

// CacheSet records address for name. The contract must have a compiled
// artifact.
func (t *Toolkit) CacheSet(name, address string) error {
	if _, err := contract.FindArtifact(t.artifacts, name); err != nil {
		return err
	}
	addr, err := txn.Address(address)
	if err != nil {
		return err
	}
	t.cache.Set(t.network, name, addr.Hex())
	return nil
}

// Balance returns the balance of address in ether. An empty address uses the
// signer.
func (t *Toolkit) Balance(ctx context.Context, address string) (string, error) {
	addr := t.client.From()
	if address != "" {
		var err error
		if addr, err = txn.Address(address); err != nil {
			return "", err
		}
	} else if !t.client.CanSign() {
		return "", txn.ErrNoSigner
	}
	wei, err := t.client.Balance(ctx, addr)
	if err != nil {
		return "", err
	}
	return units.FormatEther(wei), nil
}

// Account is a signing address and its balance in ether.
type Account struct {
	Address string `json:"address"`
	Balance string `json:"balance"`
}

// Accounts lists the addresses the toolkit can sign for.
func (t *Toolkit) Accounts(ctx context.Context) ([]Account, error) {
	var out []Account
	for _, addr := range t.client.Accounts() {
		wei, err := t.client.Balance(ctx, addr)
		if err != nil {
			return nil, err
		}
		out = append(out, Account{Address: addr.Hex(), Balance: units.FormatEther(wei)})
	}
	return out, nil
}

// attached loads name and binds it to address, or to its cached address when
// address is empty. The cache is consulted before the artifact so a missing
// address fails without touching the network or the disk.
func (t *Toolkit) attached(name, address string) (*contract.Binding, error) {
	if address == "" {
		cached, ok := t.cache.Get(t.network, name)
		if !ok {
			return nil, fmt.Errorf("%w: %s on %s", ErrAddressNotFound, name, t.network)
		}
		address = cached
	}
	addr, err := txn.Address(address)
	if err != nil {
		return nil, err
	}
	b, err := contract.Load(t.artifacts, name)
	if err != nil {
		return nil, err
	}
	return b.Attach(addr), nil
}
