// Package chain is the boundary between easyeth and an Ethereum-compatible
// node, either remote over JSON-RPC or simulated in-process.
package chain

import (
	"context"
	"fmt"
	"math/big"
	"net/http"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/ethclient/simulated"
	"github.com/ethereum/go-ethereum/params"
	gethrpc "github.com/ethereum/go-ethereum/rpc"

	"github.com/Mohsinsiddi/easyeth/internal/config"
)

// Backend is the subset of the node API easyeth relies on. *ethclient.Client
// and the simulated client both satisfy it.
type Backend interface {
	ChainID(ctx context.Context) (*big.Int, error)
	BlockNumber(ctx context.Context) (uint64, error)
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
}

var (
	_ Backend = (*ethclient.Client)(nil)
	_ Backend = (*Simulated)(nil)
)

// Dial connects to the JSON-RPC endpoint of p.
func Dial(ctx context.Context, p config.Profile) (*ethclient.Client, error) {
	if p.URL == "" {
		return nil, fmt.Errorf("network %s has no url", p.Name)
	}
	var opts []gethrpc.ClientOption
	if p.Timeout > 0 {
		opts = append(opts, gethrpc.WithHTTPClient(&http.Client{Timeout: p.Timeout}))
	}
	rc, err := gethrpc.DialOptions(ctx, p.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("dialing %s: %w", p.URL, err)
	}
	return ethclient.NewClient(rc), nil
}

// DevFunds is the balance every prefunded simulated account starts with.
var DevFunds = new(big.Int).Mul(big.NewInt(10_000), big.NewInt(params.Ether))

// Simulated is an in-process chain that mines a block after every submitted
// transaction.
type Simulated struct {
	simulated.Client
	sim *simulated.Backend
}

// NewSimulated starts an in-process chain with each of funded holding
// DevFunds.
func NewSimulated(funded ...common.Address) *Simulated {
	alloc := make(types.GenesisAlloc, len(funded))
	for _, addr := range funded {
		alloc[addr] = types.Account{Balance: new(big.Int).Set(DevFunds)}
	}
	sim := simulated.NewBackend(alloc)
	return &Simulated{Client: sim.Client(), sim: sim}
}

// SendTransaction submits tx and mines it immediately.
func (s *Simulated) SendTransaction(ctx context.Context, tx *types.Transaction) error {
	if err := s.Client.SendTransaction(ctx, tx); err != nil {
		return err
	}
	s.sim.Commit()
	return nil
}

// Close stops the in-process node.
func (s *Simulated) Close() {
	_ = s.sim.Close()
}
