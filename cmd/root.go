package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Mohsinsiddi/easyeth/internal/config"
	"github.com/Mohsinsiddi/easyeth/internal/wallet"
)

// Version is the current release. Overridable via build ldflags:
//
//	go build -ldflags "-X github.com/Mohsinsiddi/easyeth/cmd.Version=1.2.3" .
var Version = "0.1.0"

var (
	projectDir  string
	networkName string
	verbose     bool
	jsonOut     bool

	cfg    *config.Config
	logger = zerolog.Nop()

	// openKeystore is swapped in tests.
	openKeystore = func() wallet.KeystoreBackend { return wallet.DefaultKeystore() }
)

var rootCmd = &cobra.Command{
	Use:   "easyeth",
	Short: "Deploy and call Ethereum contracts from the terminal",
	Long: `easyeth deploys compiled contracts, calls their methods and sends value
on any EVM network in its profile list. Deployed addresses are remembered
per network in cache/contracts.json.

Without --network, easyeth uses the local node at 127.0.0.1:8545 when it
answers and an in-process simulated chain ("hardhat") otherwise.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		var err error
		cfg, err = config.Load(projectDir)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if verbose {
			cfg.Verbose = true
		}
		logger = newLogger(cmd.ErrOrStderr(), cfg.Verbose)
		cfg.ResolveCredentials(credentialLookup)
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errText(err))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&networkName, "network", "n", "", "network profile (default: config, then localhost or hardhat)")
	rootCmd.PersistentFlags().StringVar(&projectDir, "project", "", "project root (default: working directory)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging on stderr")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "print results as JSON")

	rootCmd.AddGroup(
		&cobra.Group{ID: "contracts", Title: "Contract Commands"},
		&cobra.Group{ID: "accounts", Title: "Account Commands"},
		&cobra.Group{ID: "setup", Title: "Setup Commands"},
	)
}

// newLogger writes human-readable logs to w. Debug output needs --verbose.
func newLogger(w io.Writer, debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly, NoColor: !isTerminal(w)}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// credentialLookup reads a profile's key from its environment variable and,
// for the selected network only, from the OS keychain. Local profiles fall
// back to the development key instead.
func credentialLookup(p config.Profile) string {
	if key := config.EnvCredential(p); key != "" {
		return key
	}
	if !p.RequiresCredential() || p.Name != selectedNetwork() {
		return ""
	}
	key, err := openKeystore().Retrieve(wallet.Ref(p.Name))
	if err != nil {
		logger.Debug().Err(err).Str("network", p.Name).Msg("no stored key")
		return ""
	}
	return key
}

// selectedNetwork is the --network flag, else the configured default.
func selectedNetwork() string {
	if networkName != "" {
		return networkName
	}
	if cfg != nil {
		return cfg.DefaultNetwork
	}
	return ""
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}
