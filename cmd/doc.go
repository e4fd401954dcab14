// Package cmd implements the command-line interface for sheetsync.
//
// This package provides the following commands:
//   - ingest: Pull spreadsheet attachments from Gmail labels into Google Sheets
//   - push: Copy rows from one Google spreadsheet into another
//   - status: Run the read-only checks for every configured item
//   - auth: Authorize a Google account and cache its OAuth token
//   - version: Display version information
package cmd
