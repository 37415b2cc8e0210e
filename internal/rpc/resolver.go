package rpc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/Mohsinsiddi/easyeth/internal/config"
)

// ErrUnknownNetwork is returned for a network name that is not configured or
// has no credential.
var ErrUnknownNetwork = errors.New("unknown network")

// ProbeFunc checks a URL. Probe is the default.
type ProbeFunc func(ctx context.Context, url string, timeout time.Duration) Endpoint

// Resolver picks the profile a run uses.
type Resolver struct {
	probe   ProbeFunc
	timeout time.Duration
	log     zerolog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithProbe replaces the liveness probe.
func WithProbe(fn ProbeFunc) Option {
	return func(r *Resolver) { r.probe = fn }
}

// WithTimeout sets the liveness probe timeout.
func WithTimeout(d time.Duration) Option {
	return func(r *Resolver) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// WithLogger sets the debug logger.
func WithLogger(l zerolog.Logger) Option {
	return func(r *Resolver) { r.log = l }
}

// NewResolver returns a Resolver probing with Probe and config.ProbeTimeout.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		probe:   Probe,
		timeout: config.ProbeTimeout,
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Available drops profiles that need a credential but have none.
func (r *Resolver) Available(profiles []config.Profile) []config.Profile {
	return lo.Filter(profiles, func(p config.Profile, _ int) bool {
		return !p.RequiresCredential() || p.Credential != ""
	})
}

// ResolveDefault returns the localhost profile when its node answers the
// probe, and the simulated hardhat profile otherwise.
func (r *Resolver) ResolveDefault(ctx context.Context, profiles []config.Profile) (config.Profile, error) {
	available := r.Available(profiles)

	if local, ok := find(available, config.NetworkLocalhost); ok {
		ep := r.probe(ctx, local.URL, r.timeout)
		r.log.Debug().
			Str("url", local.URL).
			Bool("healthy", ep.Healthy).
			Dur("latency", ep.Latency).
			Msg("probed local node")
		if ep.Healthy {
			return local, nil
		}
	}

	if hh, ok := find(available, config.NetworkHardhat); ok {
		return hh, nil
	}
	return config.Profile{}, fmt.Errorf("%w: no local node and no %s profile", ErrUnknownNetwork, config.NetworkHardhat)
}

// Resolve returns the profile called name. An empty name falls back to
// ResolveDefault.
func (r *Resolver) Resolve(ctx context.Context, profiles []config.Profile, name string) (config.Profile, error) {
	if name == "" {
		return r.ResolveDefault(ctx, profiles)
	}
	if p, ok := find(r.Available(profiles), name); ok {
		return p, nil
	}
	if p, ok := find(profiles, name); ok {
		return config.Profile{}, fmt.Errorf("%w: %s needs a key in $%s", ErrUnknownNetwork, name, p.Accounts)
	}
	return config.Profile{}, fmt.Errorf("%w: %s", ErrUnknownNetwork, name)
}

func find(profiles []config.Profile, name string) (config.Profile, bool) {
	return lo.Find(profiles, func(p config.Profile) bool { return p.Name == name })
}
