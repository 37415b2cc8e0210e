package config

import "time"

// Config holds all easyeth configuration.
type Config struct {
	DefaultNetwork string        `mapstructure:"network"`       // "" → probe localhost, else hardhat
	CachePath      string        `mapstructure:"cache_path"`    // relative to the project root
	ArtifactDirs   []string      `mapstructure:"artifact_dirs"` // searched in order
	GasLimit       uint64        `mapstructure:"gas_limit"`
	ProbeTimeout   time.Duration `mapstructure:"probe_timeout"`
	ConfirmTimeout time.Duration `mapstructure:"confirm_timeout"`
	Verbose        bool          `mapstructure:"verbose"`

	Profiles []Profile `mapstructure:"-"`

	// internal: project root every relative path is resolved against
	projectRoot string
}

// Profile is one named network configuration.
type Profile struct {
	Name      string        `mapstructure:"-"`
	URL       string        `mapstructure:"url"`
	ChainID   int64         `mapstructure:"chain_id"`
	Accounts  string        `mapstructure:"accounts"`  // env var holding the signing key
	GasPrice  uint64        `mapstructure:"gas_price"` // wei, 0 → ask the node
	Timeout   time.Duration `mapstructure:"timeout"`
	Simulated bool          `mapstructure:"simulated"`

	// Credential is the resolved private key; never persisted.
	Credential string `mapstructure:"-"`
}

// RequiresCredential reports whether the profile is only usable with a key.
func (p Profile) RequiresCredential() bool {
	return p.Accounts != ""
}

// Local reports whether the profile targets a development chain.
func (p Profile) Local() bool {
	return p.Simulated || p.Name == NetworkLocalhost
}
