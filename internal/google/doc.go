// Package google provides unified OAuth2 authentication for all Google
// services used by sheetsync.
//
// Tokens are cached per account under the user cache directory
// (~/.cache/sheetsync/ on Linux). Client credentials are supplied through the
// SHEETSYNC_GOOGLE_CLIENT_ID and SHEETSYNC_GOOGLE_CLIENT_SECRET environment
// variables so each district runs against its own Google Cloud project.
package google
