// Package drive provides a client for interacting with the Google Drive API.
//
// sheetsync uses Drive only as a conversion backend: a raw Excel attachment is
// uploaded as a temporary file, copied with conversion into a native Google
// Sheets file, read back through the Sheets API, and both temporary files are
// deleted again.
//
// OAuth authentication: this package uses the unified Google OAuth token from
// the google package.
package drive
