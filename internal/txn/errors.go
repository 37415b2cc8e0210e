package txn

import (
	"errors"

	"github.com/Mohsinsiddi/easyeth/internal/chain"
	"github.com/Mohsinsiddi/easyeth/internal/units"
)

var (
	ErrInvalidValue = units.ErrInvalidValue
	ErrNoSigner     = chain.ErrNoSigner
	ErrReverted     = chain.ErrReverted
	ErrNoReceipt    = chain.ErrNoReceipt

	ErrNoBytecode      = errors.New("contract abi and bytecode not set")
	ErrAlreadyDeployed = errors.New("contract already deployed")
	ErrNotDeployed     = errors.New("contract not deployed or attached")
	ErrDeployFailed    = errors.New("failed to deploy contract")
	ErrUnknownMethod   = errors.New("unknown method")
	ErrInvalidAddress  = errors.New("invalid address")
)
