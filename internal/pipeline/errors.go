package pipeline

import "errors"

// Error kinds raised by the pipeline and its collaborators. Structural
// configuration defects use config.ErrMissingParameters instead.
var (
	// ErrLabelNotFound means the named Gmail label does not exist.
	ErrLabelNotFound = errors.New("label does not exist")

	// ErrEmailNotFound means the label exists but has no conversations.
	ErrEmailNotFound = errors.New("no email found under label")

	// ErrAttachmentNotFound means the newest message carries no usable
	// spreadsheet attachment.
	ErrAttachmentNotFound = errors.New("no spreadsheet attachment found")

	// ErrSpreadsheetNotFound means the destination store is unreachable.
	ErrSpreadsheetNotFound = errors.New("spreadsheet not found")

	// ErrSheetNotFound means the store exists but the named sheet does not.
	ErrSheetNotFound = errors.New("sheet not found")

	// ErrFileProcessing means conversion or extraction of an artifact
	// failed. The conversion step is retried before this is raised.
	ErrFileProcessing = errors.New("file processing failed")
)
