// Package registry provides a generic, thread-safe name to value registry.
// Storage schemes and pairwise sync strategies are both looked up through it.
// Registering a name twice is an error; replacing one must be explicit.
package registry
