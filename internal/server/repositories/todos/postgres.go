// Package todos provides the PostgreSQL-backed repository for todo rows.
package todos

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/taskvault/internal/common"
	"github.com/dmitrijs2005/taskvault/internal/dbx"
	"github.com/dmitrijs2005/taskvault/internal/server/models"
)

// PostgresRepository implements todo storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, todo *models.Todo) (*models.Todo, error) {

	query :=
		`INSERT INTO todos (owner_id, title, description, priority, complete)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		todo.OwnerID, todo.Title, todo.Description, todo.Priority, todo.Complete).Scan(&todo.ID)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return todo, nil
}

// SelectByOwner returns all todos owned by ownerID in insertion (id) order.
func (r *PostgresRepository) SelectByOwner(ctx context.Context, ownerID int64) ([]*models.Todo, error) {
	query :=
		`SELECT id, owner_id, title, description, priority, complete FROM todos
		 WHERE owner_id = $1
		 ORDER BY id
		 `

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to select todos: %w", err)
	}
	defer rows.Close()

	return scanRows(rows)
}

// SelectAll returns every todo regardless of owner. Admin use only.
func (r *PostgresRepository) SelectAll(ctx context.Context) ([]*models.Todo, error) {
	query :=
		`SELECT id, owner_id, title, description, priority, complete FROM todos
		 ORDER BY id
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select todos: %w", err)
	}
	defer rows.Close()

	return scanRows(rows)
}

// GetByIDAndOwner returns the todo only when both id and owner match,
// so a row owned by someone else reads the same as a missing row.
func (r *PostgresRepository) GetByIDAndOwner(ctx context.Context, id int64, ownerID int64) (*models.Todo, error) {
	query :=
		`SELECT id, owner_id, title, description, priority, complete FROM todos
		 WHERE id = $1 AND owner_id = $2
		 `

	todo := &models.Todo{}
	err := r.db.QueryRowContext(ctx, query, id, ownerID).Scan(
		&todo.ID, &todo.OwnerID, &todo.Title, &todo.Description, &todo.Priority, &todo.Complete)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return todo, nil
}

// Update rewrites the row matched by id and owner. No match yields
// common.ErrorNotFound.
func (r *PostgresRepository) Update(ctx context.Context, todo *models.Todo) error {
	query :=
		`UPDATE todos SET title = $3, description = $4, priority = $5, complete = $6
		 WHERE id = $1 AND owner_id = $2
		 `

	res, err := r.db.ExecContext(ctx, query,
		todo.ID, todo.OwnerID, todo.Title, todo.Description, todo.Priority, todo.Complete)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return checkOneRow(res)
}

func (r *PostgresRepository) DeleteByIDAndOwner(ctx context.Context, id int64, ownerID int64) error {
	query :=
		`DELETE FROM todos
		 WHERE id = $1 AND owner_id = $2
		 `

	res, err := r.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return checkOneRow(res)
}

// GetByID matches by id alone. Admin use only.
func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Todo, error) {
	query :=
		`SELECT id, owner_id, title, description, priority, complete FROM todos
		 WHERE id = $1
		 `

	todo := &models.Todo{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&todo.ID, &todo.OwnerID, &todo.Title, &todo.Description, &todo.Priority, &todo.Complete)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return todo, nil
}

// UpdateByID rewrites the row matched by id alone. Admin use only.
func (r *PostgresRepository) UpdateByID(ctx context.Context, todo *models.Todo) error {
	query :=
		`UPDATE todos SET title = $2, description = $3, priority = $4, complete = $5
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query,
		todo.ID, todo.Title, todo.Description, todo.Priority, todo.Complete)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return checkOneRow(res)
}

// DeleteByID deletes by id alone. Admin use only.
func (r *PostgresRepository) DeleteByID(ctx context.Context, id int64) error {
	query :=
		`DELETE FROM todos
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return checkOneRow(res)
}

func scanRows(rows *sql.Rows) ([]*models.Todo, error) {
	var result []*models.Todo
	for rows.Next() {
		var item models.Todo
		if err := rows.Scan(
			&item.ID, &item.OwnerID, &item.Title, &item.Description, &item.Priority, &item.Complete,
		); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func checkOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
