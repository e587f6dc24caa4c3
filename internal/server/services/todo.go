package services

import (
	"context"
	"database/sql"
	"fmt"
	"unicode/utf8"

	"github.com/dmitrijs2005/taskvault/internal/common"
	"github.com/dmitrijs2005/taskvault/internal/server/auth"
	"github.com/dmitrijs2005/taskvault/internal/server/models"
	"github.com/dmitrijs2005/taskvault/internal/server/repositories/repomanager"
)

// TodoParams carries the mutable fields of a todo request.
type TodoParams struct {
	Title       string
	Description string
	Priority    int
	Complete    bool
}

// validate checks the field constraints. It runs before any store mutation.
// Length bounds count characters, not bytes, so multibyte input is not
// penalized.
func (p TodoParams) validate() error {
	if n := utf8.RuneCountInString(p.Title); n < 1 || n > 50 {
		return fmt.Errorf("%w: title must be between 1 and 50 characters", common.ErrValidation)
	}
	if utf8.RuneCountInString(p.Description) > 300 {
		return fmt.Errorf("%w: description must be at most 300 characters", common.ErrValidation)
	}
	if p.Priority < 1 || p.Priority > 5 {
		return fmt.Errorf("%w: priority must be between 1 and 5", common.ErrValidation)
	}
	return nil
}

// TodoService wraps todo persistence with identity-aware query
// construction: every operation is filtered by the caller's identity,
// except the admin entry points which match by id alone.
type TodoService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewTodoService constructs a TodoService.
func NewTodoService(db *sql.DB, m repomanager.RepositoryManager) *TodoService {
	return &TodoService{db: db, repomanager: m}
}

// List returns the identity's todos in insertion order. Admin identities
// receive all todos unfiltered.
func (s *TodoService) List(ctx context.Context, identity auth.Identity) ([]*models.Todo, error) {
	repo := s.repomanager.Todos(s.db)
	if identity.IsAdmin() {
		return repo.SelectAll(ctx)
	}
	return repo.SelectByOwner(ctx, identity.UserID)
}

// Get returns the todo only when both id and owner match the identity;
// admin identities match by id alone. A row owned by someone else yields
// ErrorNotFound, so existence never leaks to non-owners.
func (s *TodoService) Get(ctx context.Context, identity auth.Identity, id int64) (*models.Todo, error) {
	repo := s.repomanager.Todos(s.db)
	if identity.IsAdmin() {
		return repo.GetByID(ctx, id)
	}
	return repo.GetByIDAndOwner(ctx, id, identity.UserID)
}

// Create validates the fields and persists a todo owned by the identity.
func (s *TodoService) Create(ctx context.Context, identity auth.Identity, params TodoParams) (*models.Todo, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	todo := &models.Todo{
		OwnerID:     identity.UserID,
		Title:       params.Title,
		Description: params.Description,
		Priority:    params.Priority,
		Complete:    params.Complete,
	}
	repo := s.repomanager.Todos(s.db)
	return repo.Create(ctx, todo)
}

// Update rewrites the todo matched by id and owner (id alone for admins).
func (s *TodoService) Update(ctx context.Context, identity auth.Identity, id int64, params TodoParams) error {
	if err := params.validate(); err != nil {
		return err
	}

	todo := &models.Todo{
		ID:          id,
		OwnerID:     identity.UserID,
		Title:       params.Title,
		Description: params.Description,
		Priority:    params.Priority,
		Complete:    params.Complete,
	}
	repo := s.repomanager.Todos(s.db)
	if identity.IsAdmin() {
		return repo.UpdateByID(ctx, todo)
	}
	return repo.Update(ctx, todo)
}

// Delete removes the todo matched by id and owner (id alone for admins).
func (s *TodoService) Delete(ctx context.Context, identity auth.Identity, id int64) error {
	repo := s.repomanager.Todos(s.db)
	if identity.IsAdmin() {
		return repo.DeleteByID(ctx, id)
	}
	return repo.DeleteByIDAndOwner(ctx, id, identity.UserID)
}

// ListAll returns every todo regardless of owner. The handler must reject
// non-admin callers before reaching this method.
func (s *TodoService) ListAll(ctx context.Context) ([]*models.Todo, error) {
	repo := s.repomanager.Todos(s.db)
	return repo.SelectAll(ctx)
}

// DeleteAny removes a todo by id regardless of owner. The handler must
// reject non-admin callers before reaching this method.
func (s *TodoService) DeleteAny(ctx context.Context, id int64) error {
	repo := s.repomanager.Todos(s.db)
	return repo.DeleteByID(ctx, id)
}
