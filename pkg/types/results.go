package types

import (
	"time"

	"github.com/arthur-debert/softsync/pkg/manifest"
)

// Copy modes.
const (
	ModeDupe = "dupe"
	ModeSync = "sync"
)

// Entry kinds as shown to users.
const (
	KindHard = "hard"
	KindSoft = "soft"
)

// CopyResult holds the result of the 'cp' command.
type CopyResult struct {
	Mode      string       `json:"mode" yaml:"mode"` // "dupe" or "sync"
	Actions   []FileAction `json:"actions" yaml:"actions"`
	DryRun    bool         `json:"dryRun" yaml:"dryRun"`
	Timestamp time.Time    `json:"timestamp" yaml:"timestamp"`
}

// FileAction records one file handled by 'cp'.
type FileAction struct {
	Source string `json:"source" yaml:"source"`
	Dest   string `json:"dest" yaml:"dest"`
	Link   string `json:"link,omitempty" yaml:"link,omitempty"` // set for dupes
}

// RepairResult holds the result of the 'repair' command. Conflicts is
// nil when the manifest needed no repair.
type RepairResult struct {
	Path      string               `json:"path" yaml:"path"`
	Conflicts []manifest.FileEntry `json:"conflicts" yaml:"conflicts"`
	DryRun    bool                 `json:"dryRun" yaml:"dryRun"`
}

// Repaired reports whether any manifest entries were dropped.
func (r *RepairResult) Repaired() bool {
	return len(r.Conflicts) > 0
}

// ListResult holds the result of the 'ls' command.
type ListResult struct {
	Root    string      `json:"root" yaml:"root"`
	Path    string      `json:"path" yaml:"path"`
	Entries []EntryInfo `json:"entries" yaml:"entries"`
}

// EntryInfo describes one entry of a directory view.
type EntryInfo struct {
	Name string `json:"name" yaml:"name"`
	Kind string `json:"kind" yaml:"kind"`
	Link string `json:"link,omitempty" yaml:"link,omitempty"`
}

// NewEntryInfo converts a manifest entry for display.
func NewEntryInfo(e manifest.FileEntry) EntryInfo {
	info := EntryInfo{Name: e.Name, Kind: KindHard, Link: e.Link}
	if e.IsSoft() {
		info.Kind = KindSoft
	}
	return info
}
