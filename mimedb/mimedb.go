// Package mimedb provides a registry pre-populated with common media types.
//
// The dataset is small and curated. Applications that need a complete database can load
// their own with the apache or sharedmimeinfo packages, or with [registry.Registry.Load].
package mimedb

import (
	_ "embed"
	"fmt"
	"github.com/MatthiasKunnen/mimetypes/registry"
	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var seed []byte

// Snapshot returns the embedded dataset. Every call decodes a fresh copy.
func Snapshot() (registry.Snapshot, error) {
	var s registry.Snapshot
	if err := yaml.Unmarshal(seed, &s); err != nil {
		return registry.Snapshot{}, fmt.Errorf("failed to decode embedded dataset: %w", err)
	}

	return s, nil
}

// New returns a new registry holding the embedded dataset.
// Each call returns an independent registry.
func New(opts ...registry.Option) (*registry.Registry, error) {
	s, err := Snapshot()
	if err != nil {
		return nil, err
	}

	r, err := registry.NewFromSnapshot(s, opts...)
	if err != nil {
		return nil, fmt.Errorf("embedded dataset is inconsistent: %w", err)
	}

	return r, nil
}

// MustNew is like [New] but panics on error.
func MustNew(opts ...registry.Option) *registry.Registry {
	r, err := New(opts...)
	if err != nil {
		panic(err)
	}

	return r
}
