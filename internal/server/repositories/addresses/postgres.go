package addresses

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/taskvault/internal/common"
	"github.com/dmitrijs2005/taskvault/internal/dbx"
	"github.com/dmitrijs2005/taskvault/internal/server/models"
)

// PostgresRepository implements address storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, address *models.Address) (*models.Address, error) {

	query :=
		`INSERT INTO addresses (address1, address2, city, state, country, postal_code, apt_num)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		address.Address1, address.Address2, address.City, address.State,
		address.Country, address.PostalCode, address.AptNum).Scan(&address.ID)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return address, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Address, error) {
	query :=
		`SELECT id, address1, address2, city, state, country, postal_code, apt_num FROM addresses
		 WHERE id = $1
		 `

	address := &models.Address{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&address.ID, &address.Address1, &address.Address2, &address.City,
		&address.State, &address.Country, &address.PostalCode, &address.AptNum)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return address, nil
}
