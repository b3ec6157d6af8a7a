package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/filevault/internal/common"
	"github.com/dmitrijs2005/filevault/internal/logging"
)

// probeFileName is written and removed once at startup to confirm the
// upload directory is writable.
const probeFileName = ".write-probe"

// DiskStore keeps blobs as plain files in a single directory.
type DiskStore struct {
	dir     string
	maxSize int64
	logger  logging.Logger
}

// NewDiskStore creates the upload directory if absent and probes it for
// write permission. A failed probe logs a warning but does not abort
// startup; the failure surfaces at request time instead.
func NewDiskStore(ctx context.Context, dir string, maxSize int64, logger logging.Logger) *DiskStore {
	s := &DiskStore{dir: dir, maxSize: maxSize, logger: logger.With("module", "blob_disk")}

	if err := os.MkdirAll(dir, 0o770); err != nil {
		s.logger.Warn(ctx, "cannot create upload directory", "dir", dir, "error", err.Error())
		return s
	}

	probe := filepath.Join(dir, probeFileName)
	if err := os.WriteFile(probe, []byte("probe"), 0o660); err != nil {
		s.logger.Warn(ctx, "upload directory is not writable", "dir", dir, "error", err.Error())
		return s
	}
	if err := os.Remove(probe); err != nil {
		s.logger.Warn(ctx, "cannot remove probe file", "dir", dir, "error", err.Error())
	}

	return s
}

func (s *DiskStore) Save(ctx context.Context, originalName string, r io.Reader) (*Object, error) {
	repaired := RepairWireName(originalName)
	name := NewStorageName(repaired)
	path := filepath.Join(s.dir, name)

	dst, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o660)
	if err != nil {
		return nil, fmt.Errorf("create blob: %w", err)
	}

	// Copy one byte past the limit so an oversized payload is detectable.
	written, err := io.Copy(dst, io.LimitReader(r, s.maxSize+1))
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("write blob: %w", err)
	}
	if written > s.maxSize {
		_ = os.Remove(path)
		return nil, common.ErrPayloadTooLarge
	}

	return &Object{Name: name, OriginalName: repaired, Path: path, Size: written}, nil
}

func (s *DiskStore) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("open blob: %w", err)
	}
	return f, nil
}

func (s *DiskStore) Remove(ctx context.Context, path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove blob: %w", err)
	}
	return nil
}
