package users

import (
	"context"

	"github.com/dmitrijs2005/filevault/internal/server/models"
)

type Repository interface {
	// Create inserts the user and fills in the generated id and timestamp.
	// A username/email collision yields common.ErrorAlreadyExists.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	// GetByLogin finds a user whose username or email equals login.
	GetByLogin(ctx context.Context, login string) (*models.User, error)
	// Exists reports whether a user with the given username or email exists.
	Exists(ctx context.Context, username, email string) (bool, error)
}
