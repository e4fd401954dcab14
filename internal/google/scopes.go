package google

// DefaultOAuthScopes are the Google OAuth scopes sheetsync needs.
//
// The scopes provide access to:
//   - Gmail: read-only (labels, threads, attachments)
//   - Google Drive: file creation and deletion (attachment conversion)
//   - Google Sheets: read and write
var DefaultOAuthScopes = []string{
	// Gmail scope; ingestion never mutates the inbox
	"https://www.googleapis.com/auth/gmail.readonly",

	// Google Drive scope; conversion uploads and deletes temporary files
	"https://www.googleapis.com/auth/drive",

	// Google Sheets scope
	"https://www.googleapis.com/auth/spreadsheets",
}
