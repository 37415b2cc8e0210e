package config

import "time"

// Gas ceilings attached to every request unless overridden.
const (
	DefaultGasLimit = uint64(3_000_000) // deploy, execute and transfer
)

// Timeout constants used across cmd and the core packages.
const (
	ProbeTimeout     = 100 * time.Millisecond // local node liveness probe
	ListProbeTimeout = 5 * time.Second        // `networks` listing, remote endpoints
	RPCTimeout       = 60 * time.Second       // per-profile request timeout
	TxConfirmTimeout = 3 * time.Minute        // receipt wait
	ReceiptPollEvery = 2 * time.Second
)

// Well-known profile names.
const (
	NetworkHardhat   = "hardhat"   // in-process simulated chain
	NetworkLocalhost = "localhost" // local development node
)

// DevPrivateKey is account #0 of the standard development mnemonic
// ("test test ... junk"). Local profiles sign with it when no key is set.
const DevPrivateKey = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

// CredentialEnv is the environment variable public profiles read their key from.
const CredentialEnv = "PRIVATE_KEY"

const gwei = uint64(1_000_000_000)
