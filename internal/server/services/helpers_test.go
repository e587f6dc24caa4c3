package services

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/taskvault/internal/dbx"
	"github.com/dmitrijs2005/taskvault/internal/server/models"
	"github.com/dmitrijs2005/taskvault/internal/server/repositories/addresses"
	"github.com/dmitrijs2005/taskvault/internal/server/repositories/todos"
	"github.com/dmitrijs2005/taskvault/internal/server/repositories/users"
)

// --- helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

// fakeRepoManager vends canned repositories regardless of the DBTX.
type fakeRepoManager struct {
	users     users.Repository
	todos     todos.Repository
	addresses addresses.Repository
}

func (f *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (f *fakeRepoManager) Users(dbx.DBTX) users.Repository              { return f.users }
func (f *fakeRepoManager) Todos(dbx.DBTX) todos.Repository              { return f.todos }
func (f *fakeRepoManager) Addresses(dbx.DBTX) addresses.Repository      { return f.addresses }

type fakeUsersRepo struct {
	createOut *models.User
	createErr error

	getOut *models.User
	getErr error

	updatePasswordID   int64
	updatePasswordHash string
	updatePasswordErr  error

	setAddressUserID    int64
	setAddressAddressID int64
	setAddressErr       error
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	u.ID = 1
	return u, nil
}

func (f *fakeUsersRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func (f *fakeUsersRepo) UpdatePassword(ctx context.Context, id int64, hashedPassword string) error {
	f.updatePasswordID = id
	f.updatePasswordHash = hashedPassword
	return f.updatePasswordErr
}

func (f *fakeUsersRepo) SetAddressID(ctx context.Context, userID int64, addressID int64) error {
	f.setAddressUserID = userID
	f.setAddressAddressID = addressID
	return f.setAddressErr
}

type fakeTodosRepo struct {
	createIn  *models.Todo
	createErr error

	selectByOwnerID int64
	selectOut       []*models.Todo
	selectErr       error

	selectAllCalled bool

	getID      int64
	getOwnerID int64
	getOut     *models.Todo
	getErr     error

	updateIn  *models.Todo
	updateErr error

	deleteID      int64
	deleteOwnerID int64
	deleteErr     error

	deleteByIDCalled bool
	updateByIDCalled bool
	getByIDCalled    bool
}

func (f *fakeTodosRepo) Create(ctx context.Context, todo *models.Todo) (*models.Todo, error) {
	f.createIn = todo
	if f.createErr != nil {
		return nil, f.createErr
	}
	todo.ID = 11
	return todo, nil
}

func (f *fakeTodosRepo) SelectByOwner(ctx context.Context, ownerID int64) ([]*models.Todo, error) {
	f.selectByOwnerID = ownerID
	return f.selectOut, f.selectErr
}

func (f *fakeTodosRepo) SelectAll(ctx context.Context) ([]*models.Todo, error) {
	f.selectAllCalled = true
	return f.selectOut, f.selectErr
}

func (f *fakeTodosRepo) GetByIDAndOwner(ctx context.Context, id int64, ownerID int64) (*models.Todo, error) {
	f.getID = id
	f.getOwnerID = ownerID
	return f.getOut, f.getErr
}

func (f *fakeTodosRepo) GetByID(ctx context.Context, id int64) (*models.Todo, error) {
	f.getByIDCalled = true
	f.getID = id
	return f.getOut, f.getErr
}

func (f *fakeTodosRepo) Update(ctx context.Context, todo *models.Todo) error {
	f.updateIn = todo
	return f.updateErr
}

func (f *fakeTodosRepo) UpdateByID(ctx context.Context, todo *models.Todo) error {
	f.updateByIDCalled = true
	f.updateIn = todo
	return f.updateErr
}

func (f *fakeTodosRepo) DeleteByIDAndOwner(ctx context.Context, id int64, ownerID int64) error {
	f.deleteID = id
	f.deleteOwnerID = ownerID
	return f.deleteErr
}

func (f *fakeTodosRepo) DeleteByID(ctx context.Context, id int64) error {
	f.deleteByIDCalled = true
	f.deleteID = id
	return f.deleteErr
}
