package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/mwalther/sheetsync/internal/drive"
	"github.com/mwalther/sheetsync/internal/pipeline"
)

// Conversion identifies the temporary files created while converting one
// artifact: the uploaded original and the converted spreadsheet. Both are
// owned by the extractor invocation that created them and are released
// best-effort before it returns.
type Conversion struct {
	FileID        string
	SpreadsheetID string
}

// Converter turns a raw artifact into a temporary native spreadsheet. The
// backend conversion is eventually consistent, so Convert may fail
// transiently and is retried by the extractor.
type Converter interface {
	Convert(ctx context.Context, artifact *pipeline.Artifact) (*Conversion, error)
	Cleanup(ctx context.Context, conv *Conversion) error
}

// DriveConverter converts artifacts by uploading them to Google Drive and
// copying the upload as a native Google Sheets file.
type DriveConverter struct {
	client *drive.Client
}

// NewDriveConverter creates a Drive-backed converter.
func NewDriveConverter(client *drive.Client) *DriveConverter {
	return &DriveConverter{client: client}
}

// Convert implements Converter.
func (c *DriveConverter) Convert(ctx context.Context, artifact *pipeline.Artifact) (*Conversion, error) {
	uploaded, err := c.client.UploadFile(ctx, artifact.Filename, artifact.MimeType, bytes.NewReader(artifact.Data))
	if err != nil {
		return nil, fmt.Errorf("failed to upload artifact %s: %w", artifact.Filename, err)
	}

	converted, err := c.client.CopyAsSpreadsheet(ctx, uploaded.ID, artifact.Filename+" (converted)")
	if err != nil {
		// Leave the upload in place; the caller retries against it would
		// create duplicates, so release it here.
		_ = c.client.DeleteFile(ctx, uploaded.ID)
		return nil, fmt.Errorf("failed to convert artifact %s: %w", artifact.Filename, err)
	}

	return &Conversion{
		FileID:        uploaded.ID,
		SpreadsheetID: converted.ID,
	}, nil
}

// Cleanup implements Converter. It deletes both temporary files and reports
// every failure it ran into.
func (c *DriveConverter) Cleanup(ctx context.Context, conv *Conversion) error {
	var errs []error
	if conv.FileID != "" {
		if err := c.client.DeleteFile(ctx, conv.FileID); err != nil {
			errs = append(errs, err)
		}
	}
	if conv.SpreadsheetID != "" {
		if err := c.client.DeleteFile(ctx, conv.SpreadsheetID); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
