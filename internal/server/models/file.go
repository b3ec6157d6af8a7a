package models

import "time"

// File is the metadata record for one uploaded blob. The byte content lives
// in the blob store; Path is the back-reference into its namespace.
type File struct {
	ID int64
	// Filename is the generated storage name, unique across the store and
	// distinct from OriginalName.
	Filename string
	// OriginalName is the client-supplied name, possibly non-ASCII (Hebrew).
	OriginalName string
	Path         string
	Size         int64
	// MimeType is client-reported and untrusted.
	MimeType   string
	UserID     int64
	UploadedAt time.Time
}
