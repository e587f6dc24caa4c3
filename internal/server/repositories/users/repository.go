package users

import (
	"context"

	"github.com/dmitrijs2005/taskvault/internal/server/models"
)

// Repository abstracts user account persistence.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	UpdatePassword(ctx context.Context, id int64, hashedPassword string) error
	SetAddressID(ctx context.Context, userID int64, addressID int64) error
}
