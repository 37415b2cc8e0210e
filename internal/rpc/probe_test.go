package rpc

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mohsinsiddi/easyeth/internal/config"
)

// evmRPCServer answers eth_blockNumber with blockNum after delay.
func evmRPCServer(t *testing.T, blockNum uint64, delay time.Duration) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID json.RawMessage `json:"id"`
		}
		json.NewDecoder(r.Body).Decode(&req) //nolint:errcheck
		if delay > 0 {
			select {
			case <-time.After(delay):
			case <-r.Context().Done():
				return
			}
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%s,"result":"0x%x"}`, req.ID, blockNum)
	}))
}

// ---------------------------------------------------------------------------
// Probe
// ---------------------------------------------------------------------------

func TestProbeHealthy(t *testing.T) {
	srv := evmRPCServer(t, 1000, 0)
	defer srv.Close()

	ep := Probe(context.Background(), srv.URL, time.Second)
	require.NoError(t, ep.Err)
	assert.True(t, ep.Healthy)
	assert.Equal(t, srv.URL, ep.URL)
	assert.Equal(t, uint64(1000), ep.BlockNumber)
	assert.Greater(t, ep.Latency, time.Duration(0), "latency should be measured")
}

func TestProbeUnreachable(t *testing.T) {
	srv := evmRPCServer(t, 1, 0)
	url := srv.URL
	srv.Close()

	ep := Probe(context.Background(), url, time.Second)
	assert.False(t, ep.Healthy)
	assert.Error(t, ep.Err)
}

func TestProbeTooSlow(t *testing.T) {
	srv := evmRPCServer(t, 1, 500*time.Millisecond)
	defer srv.Close()

	ep := Probe(context.Background(), srv.URL, 20*time.Millisecond)
	assert.False(t, ep.Healthy)
	assert.Error(t, ep.Err)
	assert.Less(t, ep.Latency, 500*time.Millisecond)
}

// ---------------------------------------------------------------------------
// ProbeAll
// ---------------------------------------------------------------------------

func TestProbeAll(t *testing.T) {
	up := evmRPCServer(t, 7, 0)
	defer up.Close()
	down := evmRPCServer(t, 1, 0)
	downURL := down.URL
	down.Close()

	profiles := []config.Profile{
		{Name: "up", URL: up.URL},
		{Name: "hardhat", Simulated: true},
		{Name: "down", URL: downURL},
	}
	statuses := ProbeAll(context.Background(), profiles, time.Second)

	require.Len(t, statuses, 3)
	assert.Equal(t, "up", statuses[0].Profile.Name)
	assert.True(t, statuses[0].Endpoint.Healthy)
	assert.Equal(t, uint64(7), statuses[0].Endpoint.BlockNumber)

	assert.True(t, statuses[1].Endpoint.Healthy, "simulated networks are always up")

	assert.Equal(t, "down", statuses[2].Profile.Name)
	assert.False(t, statuses[2].Endpoint.Healthy)
}
