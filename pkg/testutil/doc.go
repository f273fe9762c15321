// Package testutil provides fixtures for testing softsync commands.
//
// Key components:
//   - Env: an in-memory mem:// backend plus a registry wired with it
//   - Env.Tree: declarative setup of files and manifests
//   - Env.Snapshot: full content capture for dry-run assertions
//
// Tests should prefer the mem scheme and only use t.TempDir() when real
// link semantics matter.
package testutil
