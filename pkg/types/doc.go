// Package types defines the result records returned by the softsync
// commands and consumed by the output renderers.
package types
