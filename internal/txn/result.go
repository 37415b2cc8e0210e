package txn

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/Mohsinsiddi/easyeth/internal/contract"
	"github.com/Mohsinsiddi/easyeth/internal/units"
)

// TransactionResult describes a confirmed transaction.
type TransactionResult struct {
	Network  string
	From     common.Address
	To       *common.Address // created contract for deployments
	Value    *big.Int
	GasUsed  uint64
	GasPrice *big.Int
	Fee      *big.Int // GasUsed × GasPrice
	Hash     common.Hash
	Block    uint64
	Return   []any // static-call result of a state-changing method
	Events   contract.Events
}

// Counterparty returns the hex address of To, or "unknown".
func (r *TransactionResult) Counterparty() string {
	if r.To == nil {
		return "unknown"
	}
	return r.To.Hex()
}

// FeeEther returns the fee in the native currency.
func (r *TransactionResult) FeeEther() string {
	return units.FormatEther(r.Fee)
}

// ValueEther returns the transferred value in the native currency.
func (r *TransactionResult) ValueEther() string {
	return units.FormatEther(r.Value)
}

// Result is the outcome of Execute: ReadResult or WriteResult.
type Result interface {
	result()
}

// ReadResult holds the decoded return values of a read-only call. No
// transaction was sent.
type ReadResult struct {
	Values []any
}

// WriteResult holds the confirmed transaction of a state-changing call.
type WriteResult struct {
	Tx *TransactionResult
}

func (ReadResult) result()  {}
func (WriteResult) result() {}

// Estimate is the predicted cost of a call.
type Estimate struct {
	GasUsed  uint64
	GasPrice *big.Int
	Fee      *big.Int
}

// FeeEther returns the fee in the native currency.
func (e *Estimate) FeeEther() string {
	return units.FormatEther(e.Fee)
}

func fee(gas uint64, price *big.Int) *big.Int {
	if price == nil {
		return new(big.Int)
	}
	return new(big.Int).Mul(new(big.Int).SetUint64(gas), price)
}

// effectivePrice prefers the price the receipt reports over the one the
// transaction offered.
func effectivePrice(tx *types.Transaction, receipt *types.Receipt) *big.Int {
	if receipt.EffectiveGasPrice != nil && receipt.EffectiveGasPrice.Sign() > 0 {
		return receipt.EffectiveGasPrice
	}
	return tx.GasPrice()
}
