// Package gmail provides a client for reading spreadsheet attachments
// out of Gmail labels.
//
// The package covers the ingest side of sheetsync:
//   - Label lookup by exact name
//   - Selection of the newest message in a label's newest conversation
//   - Locating and downloading spreadsheet attachments
//
// Authentication uses the unified Google OAuth token from the google
// package; tokens are loaded from the file system (~/.cache/sheetsync/).
//
// Example usage:
//
//	ctx := context.Background()
//	client, err := gmail.NewClientForAccount(ctx, "default")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	reader := gmail.NewReader(client, slog.Default())
//	src, err := reader.Fetch(ctx, item)
//	if err != nil {
//	    log.Fatal(err)
//	}
package gmail
