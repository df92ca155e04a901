package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"

	// Conversion fields.
	FieldTokens   = "tokens"
	FieldNodes    = "nodes"
	FieldBytes    = "bytes"
	FieldStyle    = "style"
	FieldFlavor   = "flavor"
	FieldDryRun   = "dry_run"
	FieldJobs     = "jobs"
	FieldDuration = "duration"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesConverted  = "files_converted"
	FieldFilesWritten    = "files_written"
	FieldFilesErrored    = "files_errored"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
