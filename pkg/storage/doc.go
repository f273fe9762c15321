// Package storage defines the capability interface the softsync engine uses
// to talk to a backing store, and the registries that map scheme names and
// (source, destination) scheme pairs to implementations.
//
// All paths handed to a Scheme are absolute and slash separated. Backends
// translate them to their native form. The engine never special-cases a
// concrete backend; everything goes through Scheme and Syncer.
//
// Built-in backends:
//   - file: the local filesystem (os package)
//   - mem:  an afero filesystem, in-memory by default
//
// The s3 backend lives in the storage/s3 sub-package.
package storage
