// Package config loads the declarative sheetsync configuration and validates
// its shape before any side effect happens.
//
// The configuration is a TOML file with two lists of source→target records:
// [[ingest]] items pull Excel attachments from a Gmail label into a sheet,
// [[push]] items copy a range from one spreadsheet into another. Records are
// read-only during a run; the pipeline never mutates them.
//
// Validation follows a deliberate asymmetry: structural presence of a field
// is fatal (ErrMissingParameters), while format correctness of an A1 range or
// rectangularity of data is advisory and only produces warnings.
package config
