package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Mohsinsiddi/easyeth/internal/cache"
	"github.com/Mohsinsiddi/easyeth/internal/chain"
	"github.com/Mohsinsiddi/easyeth/internal/config"
	"github.com/Mohsinsiddi/easyeth/internal/contract"
	"github.com/Mohsinsiddi/easyeth/internal/rpc"
	"github.com/Mohsinsiddi/easyeth/internal/toolkit"
	"github.com/Mohsinsiddi/easyeth/internal/txn"
	"github.com/Mohsinsiddi/easyeth/internal/ui"
	"github.com/Mohsinsiddi/easyeth/internal/wallet"
)

// resolveProfile picks the network this run talks to.
func resolveProfile(ctx context.Context) (config.Profile, error) {
	resolver := rpc.NewResolver(rpc.WithTimeout(cfg.ProbeTimeout), rpc.WithLogger(logger))
	return resolver.Resolve(ctx, cfg.Profiles, selectedNetwork())
}

// withToolkit resolves the network, connects and runs fn with a toolkit whose
// address cache is flushed when fn returns.
func withToolkit(cmd *cobra.Command, fn func(context.Context, *toolkit.Toolkit) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	profile, err := resolveProfile(ctx)
	if err != nil {
		return err
	}

	opts := []chain.Option{chain.WithLogger(logger)}
	if profile.Credential != "" {
		signer, err := wallet.FromHex(profile.Credential)
		if err != nil {
			return fmt.Errorf("%s key: %w", profile.Name, err)
		}
		opts = append(opts, chain.WithSigner(signer))
	}

	client, err := chain.Connect(ctx, profile, opts...)
	if err != nil {
		return fmt.Errorf("connecting to %s: %w", profile.Name, err)
	}
	defer client.Close()

	logger.Debug().
		Str("network", profile.Name).
		Bool("simulated", profile.Simulated).
		Bool("signer", client.CanSign()).
		Msg("connected")

	return cache.Use(cfg.CacheFile(), func(c *cache.Cache) error {
		tk := toolkit.New(profile.Name, client, c, cfg.ArtifactPaths(), toolkit.Options{
			GasLimit:       cfg.GasLimit,
			ConfirmTimeout: cfg.ConfirmTimeout,
			Logger:         &logger,
		})
		return fn(ctx, tk)
	})
}

// pending runs fn behind a spinner on an interactive stderr.
func pending[T any](cmd *cobra.Command, msg string, fn func() (T, error)) (T, error) {
	if jsonOut || !isTerminal(cmd.ErrOrStderr()) {
		return fn()
	}
	s := ui.NewSpinner(cmd.ErrOrStderr(), msg)
	s.Start()
	defer s.Stop()
	return fn()
}

// splitParams turns the optional comma-separated params argument into
// positional arguments.
func splitParams(args []string, idx int) []string {
	if len(args) <= idx {
		return nil
	}
	return contract.SplitParams(args[idx])
}

// optional returns args[idx] or def.
func optional(args []string, idx int, def string) string {
	if len(args) <= idx {
		return def
	}
	return args[idx]
}

// errText renders err with a hint for the mistakes users hit most.
func errText(err error) string {
	msg := ui.Err(err.Error())
	var hint string
	switch {
	case errors.Is(err, toolkit.ErrAddressNotFound):
		hint = "deploy it first, or record an address with: easyeth contracts <contract> <address>"
	case errors.Is(err, contract.ErrArtifactNotFound):
		hint = "compile the project so artifacts/ or out/ holds the contract"
	case errors.Is(err, txn.ErrNoSigner):
		hint = "set " + config.CredentialEnv + " or store a key with: easyeth key set <network>"
	case errors.Is(err, rpc.ErrUnknownNetwork):
		hint = "list profiles with: easyeth networks"
	}
	if hint == "" {
		return msg
	}
	return strings.Join([]string{msg, ui.Hint(hint)}, "\n")
}
