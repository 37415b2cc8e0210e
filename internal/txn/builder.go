// Package txn turns deploy, execute and transfer requests into submitted
// transactions and normalized results.
package txn

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"github.com/Mohsinsiddi/easyeth/internal/chain"
	"github.com/Mohsinsiddi/easyeth/internal/config"
	"github.com/Mohsinsiddi/easyeth/internal/contract"
	"github.com/Mohsinsiddi/easyeth/internal/units"
)

// Call is a fully built request, ready to simulate or submit.
type Call struct {
	To       *common.Address // nil for deployments
	Data     []byte
	Value    *big.Int
	GasLimit uint64
	ReadOnly bool
	Method   *abi.Method // set for execute calls
}

// Msg converts c for the chain client.
func (c Call) Msg() chain.Msg {
	return chain.Msg{
		To:       c.To,
		Data:     c.Data,
		Value:    c.Value,
		GasLimit: c.GasLimit,
		ReadOnly: c.ReadOnly,
	}
}

// Builder validates requests and encodes them. The orchestrator and the
// estimator share one so an estimate always describes the transaction that
// would be sent.
type Builder struct {
	GasLimit uint64
}

// NewBuilder returns a Builder attaching gasLimit to every call; 0 selects
// config.DefaultGasLimit.
func NewBuilder(gasLimit uint64) Builder {
	if gasLimit == 0 {
		gasLimit = config.DefaultGasLimit
	}
	return Builder{GasLimit: gasLimit}
}

// Deploy builds the creation call for b: bytecode followed by the encoded
// constructor arguments.
func (bd Builder) Deploy(b *contract.Binding, args []string, value string) (Call, error) {
	if b == nil || !b.Deployable() {
		return Call{}, ErrNoBytecode
	}
	if b.Deployed() {
		return Call{}, fmt.Errorf("%w: %s at %s", ErrAlreadyDeployed, b.Name, b.Address.Hex())
	}
	wei, err := parseValue(value)
	if err != nil {
		return Call{}, err
	}
	ctorArgs, err := contract.PackConstructor(b, args)
	if err != nil {
		return Call{}, fmt.Errorf("constructor of %s: %w", b.Name, err)
	}

	data := make([]byte, 0, len(b.Bytecode)+len(ctorArgs))
	data = append(data, b.Bytecode...)
	data = append(data, ctorArgs...)
	return Call{Data: data, Value: wei, GasLimit: bd.GasLimit}, nil
}

// Execute builds a call of method on the deployed contract b.
func (bd Builder) Execute(b *contract.Binding, method string, args []string, value string) (Call, error) {
	if b == nil || !b.Deployed() {
		return Call{}, ErrNotDeployed
	}
	m, err := b.Method(method)
	if err != nil {
		return Call{}, fmt.Errorf("%w: %w", ErrUnknownMethod, err)
	}
	wei, err := parseValue(value)
	if err != nil {
		return Call{}, err
	}
	readOnly := contract.ReadOnly(m)
	if readOnly && wei.Sign() > 0 {
		return Call{}, fmt.Errorf("%w: %s is read-only and cannot receive %s ether", ErrInvalidValue, m.Sig, units.FormatEther(wei))
	}
	data, err := contract.PackMethod(m, args)
	if err != nil {
		return Call{}, err
	}

	to := *b.Address
	return Call{
		To:       &to,
		Data:     data,
		Value:    wei,
		GasLimit: bd.GasLimit,
		ReadOnly: readOnly,
		Method:   &m,
	}, nil
}

// Transfer builds a plain value transfer to the hex address to.
func (bd Builder) Transfer(to string, value string) (Call, error) {
	addr, err := Address(strings.TrimSpace(to))
	if err != nil {
		return Call{}, err
	}
	wei, err := parseValue(value)
	if err != nil {
		return Call{}, err
	}
	return Call{To: &addr, Value: wei, GasLimit: bd.GasLimit}, nil
}

// parseValue converts a decimal ether amount; empty means zero.
func parseValue(value string) (*big.Int, error) {
	if strings.TrimSpace(value) == "" {
		return new(big.Int), nil
	}
	wei, err := units.ParseEther(value)
	if err != nil {
		return nil, err
	}
	if wei.Sign() < 0 {
		return nil, fmt.Errorf("%w: negative amount %q", ErrInvalidValue, value)
	}
	return wei, nil
}
