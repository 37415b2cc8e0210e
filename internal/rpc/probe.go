// Package rpc decides which network profile a run talks to.
package rpc

import (
	"context"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/Mohsinsiddi/easyeth/internal/config"
)

// Endpoint is the outcome of probing one URL.
type Endpoint struct {
	URL         string
	Latency     time.Duration
	BlockNumber uint64
	Healthy     bool
	Err         error
}

// Probe asks url for its block number and reports whether it answered within
// timeout.
func Probe(ctx context.Context, url string, timeout time.Duration) Endpoint {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ep := Endpoint{URL: url}
	start := time.Now()

	c, err := ethclient.DialContext(ctx, url)
	if err != nil {
		ep.Err = err
		ep.Latency = time.Since(start)
		return ep
	}
	defer c.Close()

	ep.BlockNumber, ep.Err = c.BlockNumber(ctx)
	ep.Latency = time.Since(start)
	ep.Healthy = ep.Err == nil
	return ep
}

// Status pairs a profile with its probe result. Simulated profiles are always
// reachable and never probed.
type Status struct {
	Profile  config.Profile
	Endpoint Endpoint
}

// ProbeAll probes every profile in parallel.
func ProbeAll(ctx context.Context, profiles []config.Profile, timeout time.Duration) []Status {
	out := make([]Status, len(profiles))
	var wg sync.WaitGroup

	for i, p := range profiles {
		out[i].Profile = p
		if p.Simulated {
			out[i].Endpoint = Endpoint{Healthy: true}
			continue
		}
		wg.Add(1)
		go func(idx int, url string) {
			defer wg.Done()
			out[idx].Endpoint = Probe(ctx, url, timeout)
		}(i, p.URL)
	}

	wg.Wait()
	return out
}
