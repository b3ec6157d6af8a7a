package services

import (
	"context"
	"database/sql"
	"errors"
	"io"

	"github.com/dmitrijs2005/filevault/internal/common"
	"github.com/dmitrijs2005/filevault/internal/logging"
	"github.com/dmitrijs2005/filevault/internal/server/blob"
	"github.com/dmitrijs2005/filevault/internal/server/models"
	"github.com/dmitrijs2005/filevault/internal/server/repositories/repomanager"
)

// FileService implements upload, list, download and delete for a user's
// files, keeping the metadata row and the stored blob in lockstep.
type FileService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	store       blob.Store
	logger      logging.Logger
}

// NewFileService constructs a FileService over the given blob store.
func NewFileService(db *sql.DB, m repomanager.RepositoryManager, store blob.Store, logger logging.Logger) *FileService {
	return &FileService{
		db:          db,
		repomanager: m,
		store:       store,
		logger:      logger.With("module", "file_service"),
	}
}

// Upload persists the payload in the blob store and records its metadata.
// Oversized payloads propagate common.ErrPayloadTooLarge untouched. When the
// metadata insert fails, the just-written blob is removed again so no
// unreachable bytes are left behind.
func (s *FileService) Upload(ctx context.Context, userID int64, originalName, mimeType string, r io.Reader) (*models.File, error) {
	obj, err := s.store.Save(ctx, originalName, r)
	if err != nil {
		if errors.Is(err, common.ErrPayloadTooLarge) {
			return nil, err
		}
		return nil, common.ErrorInternal
	}

	file := &models.File{
		Filename:     obj.Name,
		OriginalName: obj.OriginalName,
		Path:         obj.Path,
		Size:         obj.Size,
		MimeType:     mimeType,
		UserID:       userID,
	}

	repo := s.repomanager.Files(s.db)
	file, err = repo.Create(ctx, file)
	if err != nil {
		if rerr := s.store.Remove(ctx, obj.Path); rerr != nil {
			s.logger.Warn(ctx, "orphaned blob after failed insert", "path", obj.Path, "error", rerr.Error())
		}
		return nil, common.ErrorInternal
	}

	return file, nil
}

// List returns the user's files, newest first.
func (s *FileService) List(ctx context.Context, userID int64) ([]*models.File, error) {
	repo := s.repomanager.Files(s.db)
	result, err := repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return result, nil
}

// Download authorizes the caller against the file's owner and returns the
// metadata together with the byte content. A record whose bytes are missing
// on disk yields common.ErrorNotFound, same as a missing record.
func (s *FileService) Download(ctx context.Context, userID, fileID int64) (*models.File, io.ReadCloser, error) {
	file, err := s.authorize(ctx, userID, fileID)
	if err != nil {
		return nil, nil, err
	}

	rc, err := s.store.Open(ctx, file.Path)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil, common.ErrorNotFound
		}
		return nil, nil, common.ErrorInternal
	}

	return file, rc, nil
}

// Delete removes the metadata row, then the blob. A blob that cannot be
// removed after the row is already gone is logged and accepted as an
// orphan; the operation still succeeds.
func (s *FileService) Delete(ctx context.Context, userID, fileID int64) error {
	file, err := s.authorize(ctx, userID, fileID)
	if err != nil {
		return err
	}

	repo := s.repomanager.Files(s.db)
	if err := repo.Delete(ctx, fileID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return common.ErrorInternal
	}

	if err := s.store.Remove(ctx, file.Path); err != nil {
		s.logger.Warn(ctx, "orphaned blob after delete", "path", file.Path, "error", err.Error())
	}

	return nil
}

// authorize fetches the record and checks ownership: common.ErrorNotFound
// for a missing record, common.ErrorForbidden for someone else's file.
func (s *FileService) authorize(ctx context.Context, userID, fileID int64) (*models.File, error) {
	repo := s.repomanager.Files(s.db)

	file, err := repo.GetByID(ctx, fileID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}

	if file.UserID != userID {
		return nil, common.ErrorForbidden
	}

	return file, nil
}
