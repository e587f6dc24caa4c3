package todos

import (
	"context"

	"github.com/dmitrijs2005/taskvault/internal/server/models"
)

// Repository abstracts todo persistence. The *ByOwner variants enforce
// row-level ownership; the unscoped variants exist for the admin paths.
type Repository interface {
	Create(ctx context.Context, todo *models.Todo) (*models.Todo, error)
	SelectByOwner(ctx context.Context, ownerID int64) ([]*models.Todo, error)
	GetByIDAndOwner(ctx context.Context, id int64, ownerID int64) (*models.Todo, error)
	Update(ctx context.Context, todo *models.Todo) error
	DeleteByIDAndOwner(ctx context.Context, id int64, ownerID int64) error

	SelectAll(ctx context.Context) ([]*models.Todo, error)
	GetByID(ctx context.Context, id int64) (*models.Todo, error)
	UpdateByID(ctx context.Context, todo *models.Todo) error
	DeleteByID(ctx context.Context, id int64) error
}
