package gmail

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	gmail "google.golang.org/api/gmail/v1"

	"github.com/mwalther/sheetsync/internal/config"
	"github.com/mwalther/sheetsync/internal/logging"
	"github.com/mwalther/sheetsync/internal/pipeline"
)

// MIME types accepted as spreadsheet attachments.
const (
	MimeTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	MimeTypeXLS  = "application/vnd.ms-excel"
)

// AttachmentInfo represents an attachment's metadata.
type AttachmentInfo struct {
	MessageID    string
	AttachmentID string
	Filename     string
	MimeType     string
	Size         int64
}

// Reader resolves a Gmail-label source into a raw spreadsheet artifact. It
// picks the newest thread under the label and the newest message within that
// thread, then the first spreadsheet attachment of that message.
type Reader struct {
	client *Client
	logger *slog.Logger
}

// NewReader creates a mail-backed source reader.
func NewReader(client *Client, logger *slog.Logger) *Reader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reader{client: client, logger: logger}
}

// Fetch implements pipeline.SourceReader. The item's Source field names a
// Gmail label.
func (r *Reader) Fetch(ctx context.Context, item config.SourceTarget) (*pipeline.Source, error) {
	label, err := r.client.FindLabel(ctx, item.Source)
	if err != nil {
		return nil, err
	}

	thread, err := r.client.LatestThread(ctx, label.Id)
	if err != nil {
		return nil, fmt.Errorf("label %q: %w", item.Source, err)
	}

	msg := NewestMessage(thread)
	if msg == nil {
		return nil, fmt.Errorf("label %q: %w", item.Source, pipeline.ErrEmailNotFound)
	}

	info := FindSpreadsheetAttachment(msg)
	if info == nil {
		return nil, fmt.Errorf("label %q, message %s: %w", item.Source, msg.Id, pipeline.ErrAttachmentNotFound)
	}

	r.logger.Debug("fetching attachment",
		logging.Label(item.Source),
		slog.String("message", msg.Id),
		slog.String("filename", info.Filename),
	)

	data, err := r.client.GetAttachment(ctx, info.MessageID, info.AttachmentID)
	if err != nil {
		return nil, fmt.Errorf("label %q: %w", item.Source, err)
	}

	return &pipeline.Source{
		Artifact: &pipeline.Artifact{
			Filename: SanitizeFilename(info.Filename),
			MimeType: info.MimeType,
			Data:     data,
		},
	}, nil
}

// CheckSource implements pipeline.SourceChecker without touching message
// bodies: it verifies the label exists and counts its threads.
func (r *Reader) CheckSource(ctx context.Context, item config.SourceTarget) (*pipeline.SourceStatus, error) {
	label, err := r.client.FindLabel(ctx, item.Source)
	if err != nil {
		return nil, err
	}

	return &pipeline.SourceStatus{
		Exists: true,
		Items:  int(label.ThreadsTotal),
	}, nil
}

// NewestMessage returns the message with the highest internal date in a
// thread. The thread listing is newest-first but messages within a thread are
// oldest-first, and drafts can perturb the order, so the date decides.
func NewestMessage(thread *gmail.Thread) *gmail.Message {
	if thread == nil {
		return nil
	}

	var newest *gmail.Message
	for _, m := range thread.Messages {
		if newest == nil || m.InternalDate > newest.InternalDate {
			newest = m
		}
	}
	return newest
}

// FindSpreadsheetAttachment walks the message parts and returns the first
// attachment that looks like an Excel file, or nil if there is none.
func FindSpreadsheetAttachment(msg *gmail.Message) *AttachmentInfo {
	if msg == nil {
		return nil
	}

	var found *AttachmentInfo
	walkParts(msg.Payload, func(part *gmail.MessagePart) {
		if found != nil {
			return
		}
		if part.Filename == "" || part.Body == nil || part.Body.AttachmentId == "" {
			return
		}
		if !isSpreadsheet(part.Filename, part.MimeType) {
			return
		}
		found = &AttachmentInfo{
			MessageID:    msg.Id,
			AttachmentID: part.Body.AttachmentId,
			Filename:     part.Filename,
			MimeType:     part.MimeType,
			Size:         part.Body.Size,
		}
	})
	return found
}

// isSpreadsheet accepts Excel MIME types, falling back to the filename
// extension because senders routinely mislabel attachments as octet-stream.
func isSpreadsheet(filename, mimeType string) bool {
	switch mimeType {
	case MimeTypeXLSX, MimeTypeXLS:
		return true
	}
	lower := strings.ToLower(filename)
	return strings.HasSuffix(lower, ".xlsx") || strings.HasSuffix(lower, ".xls")
}

// walkParts recursively walks through message parts.
func walkParts(part *gmail.MessagePart, fn func(*gmail.MessagePart)) {
	if part == nil {
		return
	}

	fn(part)

	for _, subpart := range part.Parts {
		walkParts(subpart, fn)
	}
}

// SanitizeFilename sanitizes a filename to prevent path traversal attacks.
func SanitizeFilename(filename string) string {
	filename = strings.ReplaceAll(filename, "/", "_")
	filename = strings.ReplaceAll(filename, "\\", "_")
	filename = strings.ReplaceAll(filename, "..", "_")
	return filename
}
