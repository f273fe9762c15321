// Package paths holds the path handling shared by the softsync commands
// and engine.
//
// All paths here are slash separated. Paths handed in by users are
// relative to a root and are validated before use:
//
//   - ValidatePath rejects empty, oversized or NUL-containing paths.
//   - SplitPath applies the directory versus file/glob heuristic to a
//     user argument, consulting the root's storage scheme.
//   - ResolvePath collapses ".." segments and fails when a path would
//     climb above its root.
//   - CheckDisjoint reports whether two directories are unrelated, which
//     the cp command requires of its source and destination.
//
// # Usage
//
//	dir, file, err := paths.SplitPath(ctx, scheme, rootPath, "docs/*.txt")
//	// dir == "docs", file == "*.txt"
package paths
