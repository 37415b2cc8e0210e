package txn

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/rs/zerolog"

	"github.com/Mohsinsiddi/easyeth/internal/chain"
	"github.com/Mohsinsiddi/easyeth/internal/config"
	"github.com/Mohsinsiddi/easyeth/internal/contract"
)

// State is a step of a request's lifecycle.
type State string

const (
	StateBuilt     State = "built"
	StateSubmitted State = "submitted"
	StateConfirmed State = "confirmed"
	StateReverted  State = "reverted"
	StateFailed    State = "failed"
)

// Recorder remembers deployed addresses. *cache.Cache satisfies it.
type Recorder interface {
	Set(network, contract, address string)
}

// Orchestrator drives deploy, execute and transfer requests from a built call
// to a confirmed result.
type Orchestrator struct {
	client   *chain.Client
	network  string
	builder  Builder
	recorder Recorder
	timeout  time.Duration
	log      zerolog.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithRecorder records deployed addresses in r.
func WithRecorder(r Recorder) Option {
	return func(o *Orchestrator) { o.recorder = r }
}

// WithGasLimit overrides the gas ceiling of every request.
func WithGasLimit(limit uint64) Option {
	return func(o *Orchestrator) { o.builder = NewBuilder(limit) }
}

// WithConfirmTimeout bounds the receipt wait.
func WithConfirmTimeout(d time.Duration) Option {
	return func(o *Orchestrator) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithLogger sets the logger state transitions are reported to.
func WithLogger(l zerolog.Logger) Option {
	return func(o *Orchestrator) { o.log = l }
}

// New returns an Orchestrator submitting through client on network.
func New(client *chain.Client, network string, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		client:  client,
		network: network,
		builder: NewBuilder(0),
		timeout: config.TxConfirmTimeout,
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Network returns the network name results are tagged with.
func (o *Orchestrator) Network() string { return o.network }

// Builder returns the call builder, shared with the estimator.
func (o *Orchestrator) Builder() Builder { return o.builder }

// Deploy creates b on chain. On success b is attached to the new address and
// the address is recorded.
func (o *Orchestrator) Deploy(ctx context.Context, b *contract.Binding, args []string, value string) (*TransactionResult, error) {
	start := time.Now()
	call, err := o.builder.Deploy(b, args, value)
	if err != nil {
		return nil, err
	}
	if !o.client.CanSign() {
		return nil, ErrNoSigner
	}
	o.transition("deploy", b.Name, StateBuilt, start)

	p, err := o.client.Deploy(ctx, call.Msg())
	if err != nil {
		o.transition("deploy", b.Name, StateFailed, start)
		return nil, fmt.Errorf("deploying %s: %w", b.Name, err)
	}
	if p == nil {
		o.transition("deploy", b.Name, StateFailed, start)
		return nil, ErrDeployFailed
	}
	o.transition("deploy", b.Name, StateSubmitted, start)

	receipt, err := o.wait(ctx, "deploy", b.Name, p, start)
	if err != nil {
		return nil, err
	}

	addr := receipt.ContractAddress
	b.Address = &addr
	if o.recorder != nil {
		o.recorder.Set(o.network, b.Name, addr.Hex())
	}

	res := o.result(p, receipt, call.Value, b)
	res.To = &addr
	return res, nil
}

// Execute calls method on the deployed b. Read-only methods produce a
// ReadResult; everything that was submitted produces a WriteResult.
func (o *Orchestrator) Execute(ctx context.Context, b *contract.Binding, method string, args []string, value string) (Result, error) {
	start := time.Now()
	call, err := o.builder.Execute(b, method, args, value)
	if err != nil {
		return nil, err
	}
	if !call.ReadOnly && !o.client.CanSign() {
		return nil, ErrNoSigner
	}
	label := b.Name + "." + call.Method.RawName
	o.transition("execute", label, StateBuilt, start)

	inv, err := o.client.Invoke(ctx, call.Msg())
	if err != nil {
		o.transition("execute", label, StateFailed, start)
		return nil, err
	}

	switch inv := inv.(type) {
	case chain.Returned:
		values, err := call.Method.Outputs.Unpack(inv.Data)
		if err != nil {
			return nil, fmt.Errorf("decoding %s result: %w", call.Method.Sig, err)
		}
		o.transition("execute", label, StateConfirmed, start)
		return ReadResult{Values: values}, nil

	case *chain.Pending:
		o.transition("execute", label, StateSubmitted, start)
		receipt, err := o.wait(ctx, "execute", label, inv, start)
		if err != nil {
			return nil, err
		}
		res := o.result(inv, receipt, call.Value, b)
		res.To = call.To
		if ret, err := call.Method.Outputs.Unpack(inv.Returned); err == nil {
			res.Return = ret
		} else {
			o.log.Debug().Err(err).Str("method", call.Method.Sig).Msg("could not decode simulated return value")
		}
		return WriteResult{Tx: res}, nil

	default:
		return nil, fmt.Errorf("unexpected invocation %T", inv)
	}
}

// Transfer sends value (decimal ether) to the hex address to.
func (o *Orchestrator) Transfer(ctx context.Context, to string, value string) (*TransactionResult, error) {
	start := time.Now()
	call, err := o.builder.Transfer(to, value)
	if err != nil {
		return nil, err
	}
	if !o.client.CanSign() {
		return nil, ErrNoSigner
	}
	label := call.To.Hex()
	o.transition("transfer", label, StateBuilt, start)

	p, err := o.client.Transfer(ctx, *call.To, call.Value, call.GasLimit)
	if err != nil {
		o.transition("transfer", label, StateFailed, start)
		return nil, err
	}
	o.transition("transfer", label, StateSubmitted, start)

	receipt, err := o.wait(ctx, "transfer", label, p, start)
	if err != nil {
		return nil, err
	}
	res := o.result(p, receipt, call.Value, nil)
	res.To = call.To
	return res, nil
}

func (o *Orchestrator) wait(ctx context.Context, op, label string, p *chain.Pending, start time.Time) (*types.Receipt, error) {
	receipt, err := o.client.Wait(ctx, p, o.timeout)
	switch {
	case err == nil:
		o.transition(op, label, StateConfirmed, start)
		return receipt, nil
	case receipt != nil:
		o.transition(op, label, StateReverted, start)
	default:
		o.transition(op, label, StateFailed, start)
	}
	return nil, err
}

// result assembles the common part of a confirmed transaction. Events are
// decoded against b's interface when b is set.
func (o *Orchestrator) result(p *chain.Pending, receipt *types.Receipt, value *big.Int, b *contract.Binding) *TransactionResult {
	price := effectivePrice(p.Tx, receipt)
	events := contract.Events{}
	if b != nil {
		events = contract.DecodeEvents(b.ABI, receipt.Logs)
	}
	var block uint64
	if receipt.BlockNumber != nil {
		block = receipt.BlockNumber.Uint64()
	}
	return &TransactionResult{
		Network:  o.network,
		From:     p.From,
		Value:    valueOf(value),
		GasUsed:  receipt.GasUsed,
		GasPrice: price,
		Fee:      fee(receipt.GasUsed, price),
		Hash:     p.Hash(),
		Block:    block,
		Events:   events,
	}
}

func (o *Orchestrator) transition(op, target string, s State, start time.Time) {
	o.log.Debug().
		Str("op", op).
		Str("target", target).
		Str("network", o.network).
		Str("state", string(s)).
		Dur("elapsed", time.Since(start)).
		Msg("transaction state")
}

func valueOf(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return v
}

// Address parses a hex address, reporting ErrInvalidAddress.
func Address(s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("%w: %q", ErrInvalidAddress, s)
	}
	return common.HexToAddress(s), nil
}
