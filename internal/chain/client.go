package chain

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/rs/zerolog"

	"github.com/Mohsinsiddi/easyeth/internal/config"
	"github.com/Mohsinsiddi/easyeth/internal/wallet"
)

var (
	ErrNoSigner  = errors.New("no private key registered")
	ErrReverted  = errors.New("transaction reverted")
	ErrNoReceipt = errors.New("no receipt")
)

// Msg is a call or transaction to submit. A nil To creates a contract.
type Msg struct {
	To       *common.Address
	Data     []byte
	Value    *big.Int
	GasLimit uint64 // 0 → estimate
	ReadOnly bool
}

// Invocation is what Invoke produced: Returned for a plain call, *Pending for
// a submitted transaction.
type Invocation interface {
	invocation()
}

// Returned carries the raw return data of an eth_call.
type Returned struct {
	Data []byte
}

// Pending is a submitted, not yet confirmed transaction.
type Pending struct {
	Tx   *types.Transaction
	From common.Address
	// Return data of the static call made before sending, if any.
	Returned []byte
}

func (Returned) invocation() {}
func (*Pending) invocation() {}

// Hash returns the transaction hash.
func (p *Pending) Hash() common.Hash { return p.Tx.Hash() }

// Client submits calls and transactions through a Backend.
type Client struct {
	backend   Backend
	signer    *wallet.Signer
	gasPrice  *big.Int // fixed price; nil → ask the node
	chainID   *big.Int
	pollEvery time.Duration
	log       zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithSigner sets the identity transactions are signed with.
func WithSigner(s *wallet.Signer) Option {
	return func(c *Client) { c.signer = s }
}

// WithGasPrice pins the gas price instead of asking the node.
func WithGasPrice(wei *big.Int) Option {
	return func(c *Client) {
		if wei != nil && wei.Sign() > 0 {
			c.gasPrice = new(big.Int).Set(wei)
		}
	}
}

// WithChainID skips the chain id lookup.
func WithChainID(id *big.Int) Option {
	return func(c *Client) {
		if id != nil && id.Sign() > 0 {
			c.chainID = new(big.Int).Set(id)
		}
	}
}

// WithPollInterval sets how often Wait asks for the receipt.
func WithPollInterval(d time.Duration) Option {
	return func(c *Client) { c.pollEvery = d }
}

// WithLogger sets the debug logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New wraps b.
func New(b Backend, opts ...Option) *Client {
	c := &Client{
		backend:   b,
		pollEvery: config.ReceiptPollEvery,
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Connect builds a Client for p. Simulated profiles start an in-process chain
// with the signer prefunded; the rest dial p.URL.
func Connect(ctx context.Context, p config.Profile, opts ...Option) (*Client, error) {
	c := New(nil, opts...)
	if p.GasPrice > 0 && c.gasPrice == nil {
		c.gasPrice = new(big.Int).SetUint64(p.GasPrice)
	}

	if p.Simulated {
		var funded []common.Address
		if c.signer != nil {
			funded = append(funded, c.signer.Address())
		}
		c.backend = NewSimulated(funded...)
		c.log.Debug().Str("network", p.Name).Int("funded", len(funded)).Msg("started simulated chain")
		return c, nil
	}

	if p.ChainID > 0 && c.chainID == nil {
		c.chainID = big.NewInt(p.ChainID)
	}
	ec, err := Dial(ctx, p)
	if err != nil {
		return nil, err
	}
	c.backend = ec
	c.log.Debug().Str("network", p.Name).Str("url", p.URL).Msg("dialed node")
	return c, nil
}

// Backend returns the underlying backend.
func (c *Client) Backend() Backend { return c.backend }

// CanSign reports whether a signer is configured.
func (c *Client) CanSign() bool { return c.signer != nil }

// From returns the signer address, or the zero address without a signer.
func (c *Client) From() common.Address {
	if c.signer == nil {
		return common.Address{}
	}
	return c.signer.Address()
}

// Accounts lists the addresses this client can sign for.
func (c *Client) Accounts() []common.Address {
	if c.signer == nil {
		return nil
	}
	return []common.Address{c.signer.Address()}
}

// Close releases the backend if it holds resources.
func (c *Client) Close() {
	if closer, ok := c.backend.(interface{ Close() }); ok {
		closer.Close()
	}
}

// ChainID returns the chain id, asking the node once.
func (c *Client) ChainID(ctx context.Context) (*big.Int, error) {
	if c.chainID != nil {
		return c.chainID, nil
	}
	id, err := c.backend.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching chain id: %w", err)
	}
	c.chainID = id
	return id, nil
}

// GasPrice returns the pinned gas price or the node's suggestion.
func (c *Client) GasPrice(ctx context.Context) (*big.Int, error) {
	if c.gasPrice != nil {
		return new(big.Int).Set(c.gasPrice), nil
	}
	price, err := c.backend.SuggestGasPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching gas price: %w", err)
	}
	return price, nil
}

// Balance returns the balance of addr at the latest block.
func (c *Client) Balance(ctx context.Context, addr common.Address) (*big.Int, error) {
	bal, err := c.backend.BalanceAt(ctx, addr, nil)
	if err != nil {
		return nil, fmt.Errorf("fetching balance: %w", err)
	}
	return bal, nil
}

// Estimate asks the node how much gas msg would use and what it would pay per
// unit.
func (c *Client) Estimate(ctx context.Context, msg Msg) (gas uint64, price *big.Int, err error) {
	gas, err = c.backend.EstimateGas(ctx, c.callMsg(msg))
	if err != nil {
		return 0, nil, fmt.Errorf("estimating gas: %w", revertErr(err))
	}
	price, err = c.GasPrice(ctx)
	if err != nil {
		return 0, nil, err
	}
	return gas, price, nil
}

// Invoke runs msg against a deployed contract. Read-only messages are
// answered with an eth_call. Anything else needs a signer; the call is
// simulated first so a revert surfaces before gas is spent, then signed and
// submitted.
func (c *Client) Invoke(ctx context.Context, msg Msg) (Invocation, error) {
	if msg.To == nil {
		return nil, errors.New("invoke needs a target address")
	}
	if !msg.ReadOnly && c.signer == nil {
		return nil, ErrNoSigner
	}

	data, err := c.backend.CallContract(ctx, c.callMsg(msg), nil)
	if err != nil {
		return nil, fmt.Errorf("calling %s: %w", msg.To.Hex(), revertErr(err))
	}
	if msg.ReadOnly {
		return Returned{Data: data}, nil
	}

	p, err := c.send(ctx, msg)
	if err != nil {
		return nil, err
	}
	p.Returned = data
	return p, nil
}

// Deploy submits a contract creation carrying msg.Data as init code.
func (c *Client) Deploy(ctx context.Context, msg Msg) (*Pending, error) {
	msg.To = nil
	return c.send(ctx, msg)
}

// Transfer sends value to to with no call data.
func (c *Client) Transfer(ctx context.Context, to common.Address, value *big.Int, gasLimit uint64) (*Pending, error) {
	return c.send(ctx, Msg{To: &to, Value: value, GasLimit: gasLimit})
}

// Wait polls for the receipt of p until it is mined or timeout expires. A
// mined but failed transaction returns its receipt together with ErrReverted.
func (c *Client) Wait(ctx context.Context, p *Pending, timeout time.Duration) (*types.Receipt, error) {
	if p == nil || p.Tx == nil {
		return nil, fmt.Errorf("%w: nothing was submitted", ErrNoReceipt)
	}
	hash := p.Hash()

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	ticker := time.NewTicker(c.pollEvery)
	defer ticker.Stop()

	for {
		receipt, err := c.backend.TransactionReceipt(ctx, hash)
		switch {
		case err == nil && receipt != nil:
			if receipt.Status == types.ReceiptStatusFailed {
				return receipt, fmt.Errorf("%w (hash: %s)", ErrReverted, hash.Hex())
			}
			return receipt, nil
		case err != nil && !errors.Is(err, ethereum.NotFound) && ctx.Err() == nil:
			return nil, fmt.Errorf("fetching receipt: %w", err)
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %s not mined within %s", ErrNoReceipt, hash.Hex(), timeout)
		case <-ticker.C:
		}
	}
}

func (c *Client) send(ctx context.Context, msg Msg) (*Pending, error) {
	if c.signer == nil {
		return nil, ErrNoSigner
	}
	from := c.signer.Address()

	chainID, err := c.ChainID(ctx)
	if err != nil {
		return nil, err
	}
	nonce, err := c.backend.PendingNonceAt(ctx, from)
	if err != nil {
		return nil, fmt.Errorf("fetching nonce: %w", err)
	}
	price, err := c.GasPrice(ctx)
	if err != nil {
		return nil, err
	}
	gasLimit := msg.GasLimit
	if gasLimit == 0 {
		if gasLimit, err = c.backend.EstimateGas(ctx, c.callMsg(msg)); err != nil {
			return nil, fmt.Errorf("estimating gas: %w", revertErr(err))
		}
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		GasPrice: price,
		Gas:      gasLimit,
		To:       msg.To,
		Value:    valueOrZero(msg.Value),
		Data:     msg.Data,
	})
	signed, err := c.signer.SignTx(tx, chainID)
	if err != nil {
		return nil, err
	}
	if err := c.backend.SendTransaction(ctx, signed); err != nil {
		return nil, fmt.Errorf("sending transaction: %w", err)
	}

	c.log.Debug().
		Str("hash", signed.Hash().Hex()).
		Uint64("nonce", nonce).
		Uint64("gas", gasLimit).
		Str("gas_price", price.String()).
		Msg("submitted transaction")
	return &Pending{Tx: signed, From: from}, nil
}

func (c *Client) callMsg(msg Msg) ethereum.CallMsg {
	return ethereum.CallMsg{
		From:  c.From(),
		To:    msg.To,
		Gas:   msg.GasLimit,
		Value: valueOrZero(msg.Value),
		Data:  msg.Data,
	}
}

func valueOrZero(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return v
}

// revertErr marks execution reverts with ErrReverted, keeping the node's
// message (and revert reason, when present).
func revertErr(err error) error {
	if strings.Contains(err.Error(), "revert") {
		return fmt.Errorf("%w: %w", ErrReverted, err)
	}
	return err
}
