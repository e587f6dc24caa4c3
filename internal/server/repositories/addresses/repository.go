package addresses

import (
	"context"

	"github.com/dmitrijs2005/taskvault/internal/server/models"
)

// Repository abstracts address persistence.
type Repository interface {
	Create(ctx context.Context, address *models.Address) (*models.Address, error)
	GetByID(ctx context.Context, id int64) (*models.Address, error)
}
