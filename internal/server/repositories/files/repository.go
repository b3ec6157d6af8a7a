package files

import (
	"context"

	"github.com/dmitrijs2005/filevault/internal/server/models"
)

type Repository interface {
	// Create inserts the file record and fills in the generated id and timestamp.
	Create(ctx context.Context, file *models.File) (*models.File, error)
	// ListByUser returns the user's files, newest first.
	ListByUser(ctx context.Context, userID int64) ([]*models.File, error)
	// GetByID returns the record or common.ErrorNotFound.
	GetByID(ctx context.Context, id int64) (*models.File, error)
	// Delete removes the record; a missing row yields common.ErrorNotFound.
	Delete(ctx context.Context, id int64) error
}
