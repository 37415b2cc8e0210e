package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

const (
	configName = "easyeth"
	envPrefix  = "EASYETH"
	envFile    = ".env"
)

// defaultProfiles mirrors the stock network table.
func defaultProfiles() map[string]Profile {
	return map[string]Profile{
		NetworkHardhat: {
			Simulated: true,
			ChainID:   1337,
			GasPrice:  100 * gwei,
		},
		NetworkLocalhost: {
			URL:      "http://127.0.0.1:8545/",
			GasPrice: 100 * gwei,
			Timeout:  RPCTimeout,
		},
		"bnb": {
			URL:      "https://bsc-dataseed.bnbchain.org/",
			ChainID:  56,
			Accounts: CredentialEnv,
			Timeout:  RPCTimeout,
		},
		"bnb_test": {
			URL:      "https://data-seed-prebsc-1-s1.bnbchain.org:8545",
			ChainID:  97,
			Accounts: CredentialEnv,
			Timeout:  RPCTimeout,
		},
		"harmony": {
			URL:      "https://api.harmony.one",
			ChainID:  1666600000,
			Accounts: CredentialEnv,
			Timeout:  RPCTimeout,
		},
		"harmony_test": {
			URL:      "https://api.s0.b.hmny.io",
			ChainID:  1666700000,
			Accounts: CredentialEnv,
			Timeout:  RPCTimeout,
		},
		"posi": {
			URL:      "https://api.posichain.org/",
			ChainID:  900000,
			Accounts: CredentialEnv,
			Timeout:  RPCTimeout,
		},
	}
}

// Load reads configuration for the project rooted at dir. A .env file in dir
// is loaded into the environment first; existing variables win. The config
// file (easyeth.yaml|json|toml) is optional.
func Load(dir string) (*Config, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("could not determine working dir: %w", err)
		}
		dir = wd
	}

	if _, err := os.Stat(filepath.Join(dir, envFile)); err == nil {
		if err := godotenv.Load(filepath.Join(dir, envFile)); err != nil {
			return nil, fmt.Errorf("loading %s: %w", envFile, err)
		}
	}

	v := viper.New()
	v.SetConfigName(configName)
	v.AddConfigPath(dir)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("network", "")
	v.SetDefault("cache_path", "cache/contracts.json")
	v.SetDefault("artifact_dirs", []string{"artifacts", "out"})
	v.SetDefault("gas_limit", DefaultGasLimit)
	v.SetDefault("probe_timeout", ProbeTimeout)
	v.SetDefault("confirm_timeout", TxConfirmTimeout)
	v.SetDefault("verbose", false)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	cfg := &Config{projectRoot: dir}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	var overrides map[string]Profile
	if err := v.UnmarshalKey("networks", &overrides); err != nil {
		return nil, fmt.Errorf("parsing networks: %w", err)
	}
	cfg.Profiles = mergeProfiles(defaultProfiles(), overrides)
	return cfg, nil
}

// ProjectRoot returns the directory relative paths resolve against.
func (c *Config) ProjectRoot() string {
	return c.projectRoot
}

// CacheFile returns the absolute path of the address cache.
func (c *Config) CacheFile() string {
	return c.resolve(c.CachePath)
}

// ArtifactPaths returns the absolute artifact search directories.
func (c *Config) ArtifactPaths() []string {
	return lo.Map(c.ArtifactDirs, func(d string, _ int) string { return c.resolve(d) })
}

// Profile returns the named profile.
func (c *Config) Profile(name string) (Profile, bool) {
	return lo.Find(c.Profiles, func(p Profile) bool { return p.Name == name })
}

// ResolveCredentials fills every profile's Credential. lookup is asked for
// profiles that name an accounts variable; local profiles fall back to the
// development key.
func (c *Config) ResolveCredentials(lookup func(Profile) string) {
	for i := range c.Profiles {
		p := &c.Profiles[i]
		if p.Credential != "" {
			continue
		}
		if lookup != nil {
			p.Credential = strings.TrimSpace(lookup(*p))
		}
		if p.Credential == "" && p.Local() {
			p.Credential = DevPrivateKey
		}
	}
}

// EnvCredential reads a profile's key from its accounts variable.
func EnvCredential(p Profile) string {
	if p.Accounts == "" {
		return ""
	}
	return os.Getenv(p.Accounts)
}

func (c *Config) resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.projectRoot, path)
}

// mergeProfiles overlays non-zero override fields onto the defaults and
// returns the profiles sorted by name.
func mergeProfiles(base, overrides map[string]Profile) []Profile {
	for name, o := range overrides {
		p, ok := base[name]
		if !ok {
			base[name] = o
			continue
		}
		if o.URL != "" {
			p.URL = o.URL
			p.Simulated = false
		}
		if o.ChainID != 0 {
			p.ChainID = o.ChainID
		}
		if o.Accounts != "" {
			p.Accounts = o.Accounts
		}
		if o.GasPrice != 0 {
			p.GasPrice = o.GasPrice
		}
		if o.Timeout != 0 {
			p.Timeout = o.Timeout
		}
		if o.Simulated {
			p.Simulated = true
		}
		base[name] = p
	}

	out := make([]Profile, 0, len(base))
	for name, p := range base {
		p.Name = name
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
