// Package blob persists raw uploaded bytes on durable storage and hands back
// retrieval handles. Metadata lives elsewhere; a store only ever sees bytes
// and names.
package blob

import (
	"context"
	"io"
)

// Object describes one stored blob.
type Object struct {
	// Name is the generated storage name, collision-resistant and distinct
	// from the client-supplied name.
	Name string
	// OriginalName is the client-supplied name after transport-encoding
	// repair (see RepairWireName).
	OriginalName string
	// Path is the retrieval handle within the store's namespace.
	Path string
	// Size is the number of bytes persisted.
	Size int64
}

// Store persists and retrieves blobs.
type Store interface {
	// Save reads r to completion and persists it under a fresh generated
	// name. Payloads over the store's size limit are rejected with
	// common.ErrPayloadTooLarge and nothing is persisted.
	Save(ctx context.Context, originalName string, r io.Reader) (*Object, error)
	// Open returns the byte content at path, or common.ErrorNotFound.
	Open(ctx context.Context, path string) (io.ReadCloser, error)
	// Remove deletes the blob at path. A missing blob is not an error.
	Remove(ctx context.Context, path string) error
}
