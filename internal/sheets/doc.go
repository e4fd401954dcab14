// Package sheets provides a client for interacting with the Google Sheets
// API, plus the sheet-backed source reader and destination writer used by the
// sync pipelines.
//
// The destination writer follows clear-then-write semantics: clear the
// declared range (or the whole sheet body, depending on strategy), write the
// new rows starting at row 2, and stamp an "Updated on" note on A1. Row 1 is
// reserved for headers and is never written.
//
// OAuth authentication: this package uses the unified Google OAuth token from
// the google package.
package sheets
