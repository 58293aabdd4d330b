// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldFiles      = "files"

	// Configuration fields.
	FieldFormat = "format"
	FieldRender = "render"
	FieldJobs   = "jobs"

	// Parse fields.
	FieldRule   = "rule"
	FieldPass   = "pass"
	FieldTokens = "tokens"
	FieldLength = "length"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesProcessed  = "files_processed"
	FieldFilesFailed     = "files_failed"
	FieldTokensTotal     = "tokens_total"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"

	// Rule listing fields.
	FieldName        = "name"
	FieldEnabled     = "enabled"
	FieldDescription = "description"
)
