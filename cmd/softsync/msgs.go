package main

// Command descriptions
const (
	MsgRootShort = "Manage soft links between files across storage roots"
	MsgRootLong  = `softsync keeps a per-directory .softsync manifest of "soft links":
virtual files that point at real files elsewhere under the same root.

Soft links are created with 'cp' on a single root and can later be made real
by syncing them onto a destination root, either as hard links or symbolic
links.`

	MsgCpShort = "Duplicate files as soft links, or sync them onto another root"
	MsgCpLong  = `With a single root, 'cp <src> <dest>' records soft links in the <dest>
directory manifest pointing at the matching files under <src>. <src> may end
in a glob pattern.

With two roots (-R src:dest), 'cp <path>' resolves every entry of <path> on
the source root to its real file and materializes it in the same relative
directory on the destination root.`
	MsgCpExample = `  softsync cp a/file.txt b
  softsync cp 'a/*.txt' b
  softsync -R s3://bucket/data:/mnt/data cp b --symbolic`

	MsgRepairShort     = "Drop manifest entries that collide with real files"
	MsgLsShort         = "List the real files and soft links of a directory"
	MsgConfigShort     = "Print the effective configuration"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"
)

// Flag descriptions
const (
	MsgFlagVerbose     = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun      = "Validate and resolve without changing anything"
	MsgFlagForce       = "Overwrite existing destination files and soft links"
	MsgFlagConfig      = "Config file (default $XDG_CONFIG_HOME/softsync/config.toml)"
	MsgFlagRoot        = "Root spec, 'src' or 'src:dest' (e.g. s3://bucket/prefix:/data)"
	MsgFlagOutput      = "Output format: auto, term, text, json or yaml"
	MsgFlagSymbolic    = "Materialize symbolic links instead of hard links"
	MsgFlagReconstruct = "Recreate the source soft link chain on the destination"
)

// Errors
const (
	MsgErrSingleRoot = "expected a single root, got %s"
)
