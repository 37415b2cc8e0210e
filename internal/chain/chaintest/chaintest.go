// Package chaintest provides a mock Backend and tiny hand-assembled contracts
// for exercising the chain, txn and toolkit packages.
package chaintest

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/mock"
)

// Backend is a testify mock of chain.Backend.
type Backend struct {
	mock.Mock
}

func (m *Backend) ChainID(ctx context.Context) (*big.Int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*big.Int), args.Error(1)
}

func (m *Backend) BlockNumber(ctx context.Context) (uint64, error) {
	args := m.Called(ctx)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *Backend) BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error) {
	args := m.Called(ctx, account, blockNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*big.Int), args.Error(1)
}

func (m *Backend) PendingNonceAt(ctx context.Context, account common.Address) (uint64, error) {
	args := m.Called(ctx, account)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *Backend) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*big.Int), args.Error(1)
}

func (m *Backend) EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error) {
	args := m.Called(ctx, msg)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *Backend) CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error) {
	args := m.Called(ctx, msg, blockNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *Backend) SendTransaction(ctx context.Context, tx *types.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *Backend) TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	args := m.Called(ctx, txHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Receipt), args.Error(1)
}

// AnswerABI describes the sample contracts below. Every call to them returns
// 42 no matter the selector.
const AnswerABI = `[
	{"type":"function","name":"answer","inputs":[],"outputs":[{"name":"","type":"uint256"}],"stateMutability":"view"},
	{"type":"function","name":"poke","inputs":[],"outputs":[{"name":"","type":"uint256"}],"stateMutability":"nonpayable"},
	{"type":"event","name":"Poked","anonymous":false,"inputs":[{"name":"value","type":"uint256","indexed":false}]}
]`

// PokedEvent is the signature of the event EmitterInitCode logs.
const PokedEvent = "Poked(uint256)"

// AnswerInitCode deploys a contract that returns 42 to every call.
func AnswerInitCode() []byte {
	return initCode(common.FromHex("602a60005260206000f3"))
}

// EmitterInitCode deploys a contract that logs Poked(42) and returns 42 on
// every call.
func EmitterInitCode() []byte {
	topic := crypto.Keccak256([]byte(PokedEvent))
	runtime := common.FromHex("602a600052")
	runtime = append(runtime, 0x7f)
	runtime = append(runtime, topic...)
	runtime = append(runtime, common.FromHex("60206000a160206000f3")...)
	return initCode(runtime)
}

// MessageABI describes the contract MessageInitCode deploys.
const MessageABI = `[
	{"type":"function","name":"set","inputs":[{"name":"message","type":"string"}],"outputs":[],"stateMutability":"payable"},
	{"type":"function","name":"get","inputs":[],"outputs":[{"name":"value","type":"uint256"},{"name":"when","type":"uint256"},{"name":"message","type":"string"}],"stateMutability":"view"}
]`

// MessageInitCode deploys a contract that remembers the value, block
// timestamp and message of the last set(string) call and returns them from
// every other call. Messages longer than 32 bytes are truncated.
func MessageInitCode() []byte {
	sel := crypto.Keccak256([]byte("set(string)"))[:4]
	runtime := common.FromHex("60003560e01c63")
	runtime = append(runtime, sel...)
	runtime = append(runtime, common.FromHex(
		"14603157"+ // EQ PUSH1 set JUMPI
			"600054600052"+ // mstore(0x00, sload(0))
			"600154602052"+ // mstore(0x20, sload(1))
			"6060604052"+ // mstore(0x40, 0x60)
			"600254606052"+ // mstore(0x60, sload(2))
			"600354608052"+ // mstore(0x80, sload(3))
			"60a06000f3"+ // return(0, 0xa0)
			"5b"+ // set:
			"34600055"+ // sstore(0, callvalue)
			"42600155"+ // sstore(1, timestamp)
			"602435600255"+ // sstore(2, length)
			"604435600355"+ // sstore(3, first word)
			"00",
	)...)
	return initCode(runtime)
}

// ReverterInitCode deploys a contract that reverts every call.
func ReverterInitCode() []byte {
	return initCode(common.FromHex("60006000fd"))
}

// ConstructorReverterInitCode is init code that reverts, so the deployment
// itself fails.
func ConstructorReverterInitCode() []byte {
	return common.FromHex("60006000fd")
}

// initCode prefixes runtime with a loader that copies it into memory and
// returns it.
func initCode(runtime []byte) []byte {
	n := byte(len(runtime))
	loader := []byte{
		0x60, n, // PUSH1 len
		0x60, 0x0c, // PUSH1 12 (loader size)
		0x60, 0x00, // PUSH1 0
		0x39,    // CODECOPY
		0x60, n, // PUSH1 len
		0x60, 0x00, // PUSH1 0
		0xf3, // RETURN
	}
	return append(loader, runtime...)
}
