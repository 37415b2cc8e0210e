// Package cache persists deployed contract addresses per network.
package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// DefaultPath is the project-relative location of the cache document.
const DefaultPath = "cache/contracts.json"

// Cache maps network name → contract name → address.
//
// It is loaded once, mutated in memory and flushed once when the owning run
// ends. Writes are last-writer-wins; concurrent processes sharing a project
// directory can lose each other's updates.
type Cache struct {
	path    string
	entries map[string]map[string]string
	dirty   bool
	closed  bool
}

// Open loads the cache at path. A missing or malformed file yields an empty
// cache rather than an error.
func Open(path string) *Cache {
	c := &Cache{
		path:    path,
		entries: make(map[string]map[string]string),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return c
	}
	var doc map[string]map[string]string
	if err := json.Unmarshal(data, &doc); err != nil {
		return c
	}
	for network, contracts := range doc {
		if contracts == nil {
			continue
		}
		c.entries[network] = contracts
	}
	return c
}

// Use opens the cache at path, runs fn and flushes on every exit path of fn,
// including a panic, which is re-raised after the flush.
func Use(path string, fn func(*Cache) error) (err error) {
	c := Open(path)
	defer func() {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return fn(c)
}

// Path returns the backing file path.
func (c *Cache) Path() string { return c.path }

// Get returns the address recorded for contract on network.
func (c *Cache) Get(network, contract string) (string, bool) {
	addr, ok := c.entries[network][contract]
	return addr, ok && addr != ""
}

// All returns a copy of every contract address recorded for network.
func (c *Cache) All(network string) map[string]string {
	out := make(map[string]string, len(c.entries[network]))
	for name, addr := range c.entries[network] {
		out[name] = addr
	}
	return out
}

// Networks returns the sorted network names present in the cache.
func (c *Cache) Networks() []string {
	out := make([]string, 0, len(c.entries))
	for n := range c.entries {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Set records address for contract on network, replacing any previous one.
func (c *Cache) Set(network, contract, address string) {
	if c.entries[network] == nil {
		c.entries[network] = make(map[string]string)
	}
	c.entries[network][contract] = address
	c.dirty = true
}

// Dirty reports whether the cache has unflushed changes.
func (c *Cache) Dirty() bool { return c.dirty }

// Flush writes the full mapping to disk.
func (c *Cache) Flush() error {
	if dir := filepath.Dir(c.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating cache dir: %w", err)
		}
	}
	data, err := json.MarshalIndent(c.entries, "", "    ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(c.path, data, 0o644); err != nil {
		return fmt.Errorf("writing cache: %w", err)
	}
	c.dirty = false
	return nil
}

// Close flushes pending changes. It is safe to call more than once.
func (c *Cache) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	if !c.dirty {
		return nil
	}
	return c.Flush()
}
