package softsync

import "fmt"

// Options tune how contexts load and how files are materialized.
type Options struct {
	// Force replaces existing destination files and soft entries.
	Force bool
	// Symbolic materializes symbolic links instead of hard links.
	Symbolic bool
	// Reconstruct replays the source soft-link topology at the destination.
	Reconstruct bool
	// DryRun validates and resolves without mutating anything.
	DryRun bool
	// Verbose only affects command reporting.
	Verbose bool
}

func (o Options) String() string {
	return fmt.Sprintf("force: %t, symbolic: %t, reconstruct: %t, dry_run: %t, verbose: %t",
		o.Force, o.Symbolic, o.Reconstruct, o.DryRun, o.Verbose)
}
