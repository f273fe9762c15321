package storage

import (
	"github.com/arthur-debert/softsync/pkg/errors"
	"github.com/arthur-debert/softsync/pkg/registry"
)

// Registry maps scheme names to Schemes and (source, destination) scheme
// pairs to Syncers. It is built once at startup and handed to everything
// that resolves roots.
type Registry struct {
	schemes *registry.Registry[Scheme]
	syncers *registry.Registry[Syncer]
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		schemes: registry.New[Scheme]("scheme"),
		syncers: registry.New[Syncer]("syncer"),
	}
}

// DefaultRegistry returns a registry holding the local filesystem scheme
// and its link syncer.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.schemes.MustRegister(FileSchemeName, NewFileScheme())
	r.syncers.MustRegister(pairKey(FileSchemeName, FileSchemeName), LinkSyncer{})
	return r
}

// RegisterScheme adds a scheme under its own name.
func (r *Registry) RegisterScheme(s Scheme) error {
	return r.schemes.Register(s.Name(), s)
}

// ReplaceScheme installs s, overwriting any scheme of the same name.
func (r *Registry) ReplaceScheme(s Scheme) error {
	return r.schemes.Replace(s.Name(), s)
}

// ForName looks a scheme up by name.
func (r *Registry) ForName(name string) (Scheme, error) {
	s, ok := r.schemes.Lookup(name)
	if !ok {
		return nil, errors.Newf(errors.ErrUnsupportedScheme, "invalid scheme: '%s' not supported", name)
	}
	return s, nil
}

// Schemes lists registered scheme names.
func (r *Registry) Schemes() []string {
	return r.schemes.Names()
}

// RegisterSyncer installs the strategy used to materialize files from
// src scheme roots into dest scheme roots.
func (r *Registry) RegisterSyncer(src, dest string, s Syncer) error {
	return r.syncers.Register(pairKey(src, dest), s)
}

// ReplaceSyncer overwrites the strategy for a scheme pair.
func (r *Registry) ReplaceSyncer(src, dest string, s Syncer) error {
	return r.syncers.Replace(pairKey(src, dest), s)
}

// ForSchemes looks up the strategy for a scheme pair.
func (r *Registry) ForSchemes(src, dest string) (Syncer, error) {
	s, ok := r.syncers.Lookup(pairKey(src, dest))
	if !ok {
		return nil, errors.Newf(errors.ErrUnsupportedSync, "invalid sync: '%s:%s' not supported", src, dest)
	}
	return s, nil
}

func pairKey(src, dest string) string {
	return src + "->" + dest
}
