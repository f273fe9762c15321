// Package softsync implements the manifest-backed view of a directory
// and the operations built on it.
//
// A Context merges the real files of one directory (hard entries) with
// the soft entries recorded in its .softsync manifest. Soft entries link,
// by a path relative to their directory, to another entry of the same
// root. Contexts are opened with Open, which validates the manifest
// against the directory and signals a *CorruptError when they disagree.
//
// Dupe records new soft entries in memory until Save. SyncFile follows a
// soft entry to its real file and materializes that file in a context on
// another root, either as a single link or, in reconstruct mode, by
// replaying every soft hop in the destination tree.
package softsync
