package drive

import "time"

// FileInfo represents metadata of a Google Drive file.
type FileInfo struct {
	ID           string
	Name         string
	MimeType     string
	Size         int64
	CreatedTime  time.Time
	ModifiedTime time.Time
}
