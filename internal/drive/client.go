package drive

import (
	"context"
	"fmt"
	"io"
	"time"

	drive "google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/mwalther/sheetsync/internal/google"
)

const (
	// SpreadsheetMimeType is the MIME type of a native Google Sheets file.
	SpreadsheetMimeType = "application/vnd.google-apps.spreadsheet"
)

// Client wraps the Google Drive API service.
type Client struct {
	service *drive.Service
	account string
}

// Account returns the account name this client is associated with.
func (c *Client) Account() string {
	return c.account
}

// NewClientForAccount creates a new Google Drive client with OAuth2
// authentication for a specific account.
func NewClientForAccount(ctx context.Context, account string) (*Client, error) {
	client, err := google.GetHTTPClientForAccount(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("no valid Google OAuth token found for account %s: %w", account, err)
	}

	driveService, err := drive.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to create Drive service: %w", err)
	}

	return &Client{
		service: driveService,
		account: account,
	}, nil
}

// UploadFile uploads a file to Google Drive and returns its metadata.
func (c *Client) UploadFile(ctx context.Context, name, mimeType string, content io.Reader) (*FileInfo, error) {
	if name == "" {
		return nil, fmt.Errorf("file name is required")
	}
	if content == nil {
		return nil, fmt.Errorf("file content is required")
	}

	file := &drive.File{
		Name:     name,
		MimeType: mimeType,
	}

	driveFile, err := c.service.Files.Create(file).
		Context(ctx).
		Media(content, googleapi.ContentType(mimeType)).
		Fields("id, name, mimeType, size, createdTime, modifiedTime").
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to upload file: %w", err)
	}

	return convertToFileInfo(driveFile), nil
}

// CopyAsSpreadsheet copies an uploaded file, asking Drive to convert the copy
// into a native Google Sheets file. The conversion is asynchronous on the
// backend and can fail transiently right after upload.
func (c *Client) CopyAsSpreadsheet(ctx context.Context, fileID, name string) (*FileInfo, error) {
	if fileID == "" {
		return nil, fmt.Errorf("fileID is required")
	}

	target := &drive.File{
		Name:     name,
		MimeType: SpreadsheetMimeType,
	}

	driveFile, err := c.service.Files.Copy(fileID, target).
		Context(ctx).
		Fields("id, name, mimeType, createdTime, modifiedTime").
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to convert file %s to spreadsheet: %w", fileID, err)
	}

	return convertToFileInfo(driveFile), nil
}

// DeleteFile deletes a file from Google Drive.
func (c *Client) DeleteFile(ctx context.Context, fileID string) error {
	if fileID == "" {
		return fmt.Errorf("fileID is required")
	}

	if err := c.service.Files.Delete(fileID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to delete file %s: %w", fileID, err)
	}

	return nil
}

// convertToFileInfo converts a Drive API File to our FileInfo type.
func convertToFileInfo(f *drive.File) *FileInfo {
	fileInfo := &FileInfo{
		ID:       f.Id,
		Name:     f.Name,
		MimeType: f.MimeType,
		Size:     f.Size,
	}

	if f.CreatedTime != "" {
		if t, err := time.Parse(time.RFC3339, f.CreatedTime); err == nil {
			fileInfo.CreatedTime = t
		}
	}
	if f.ModifiedTime != "" {
		if t, err := time.Parse(time.RFC3339, f.ModifiedTime); err == nil {
			fileInfo.ModifiedTime = t
		}
	}

	return fileInfo
}
