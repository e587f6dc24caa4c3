package httpapi

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/dmitrijs2005/taskvault/internal/common"
	"github.com/dmitrijs2005/taskvault/internal/dbx"
	"github.com/dmitrijs2005/taskvault/internal/logging"
	"github.com/dmitrijs2005/taskvault/internal/server/config"
	"github.com/dmitrijs2005/taskvault/internal/server/models"
	"github.com/dmitrijs2005/taskvault/internal/server/repositories/addresses"
	"github.com/dmitrijs2005/taskvault/internal/server/repositories/todos"
	"github.com/dmitrijs2005/taskvault/internal/server/repositories/users"
	"github.com/dmitrijs2005/taskvault/internal/server/services"
)

const testSecretKey = "handler-test-secret"

// memStore backs the test server with an in-memory store so full
// request flows (register, login, CRUD) run without Postgres.
type memStore struct {
	mu            sync.Mutex
	users         map[int64]*models.User
	todos         map[int64]*models.Todo
	addresses     map[int64]*models.Address
	nextUserID    int64
	nextTodoID    int64
	nextAddressID int64
}

func newMemStore() *memStore {
	return &memStore{
		users:     map[int64]*models.User{},
		todos:     map[int64]*models.Todo{},
		addresses: map[int64]*models.Address{},
	}
}

type memUsersRepo struct{ s *memStore }

func (r *memUsersRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.nextUserID++
	user.ID = r.s.nextUserID
	copied := *user
	r.s.users[user.ID] = &copied
	return user, nil
}

func (r *memUsersRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *memUsersRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *memUsersRepo) UpdatePassword(ctx context.Context, id int64, hashedPassword string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return common.ErrorNotFound
	}
	u.HashedPassword = hashedPassword
	return nil
}

func (r *memUsersRepo) SetAddressID(ctx context.Context, userID int64, addressID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[userID]
	if !ok {
		return common.ErrorNotFound
	}
	u.AddressID = &addressID
	return nil
}

type memTodosRepo struct{ s *memStore }

func (r *memTodosRepo) Create(ctx context.Context, todo *models.Todo) (*models.Todo, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.nextTodoID++
	todo.ID = r.s.nextTodoID
	copied := *todo
	r.s.todos[todo.ID] = &copied
	return todo, nil
}

func (r *memTodosRepo) selectWhere(keep func(*models.Todo) bool) []*models.Todo {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	result := []*models.Todo{}
	for _, t := range r.s.todos {
		if keep(t) {
			copied := *t
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

func (r *memTodosRepo) SelectByOwner(ctx context.Context, ownerID int64) ([]*models.Todo, error) {
	return r.selectWhere(func(t *models.Todo) bool { return t.OwnerID == ownerID }), nil
}

func (r *memTodosRepo) SelectAll(ctx context.Context) ([]*models.Todo, error) {
	return r.selectWhere(func(*models.Todo) bool { return true }), nil
}

func (r *memTodosRepo) GetByIDAndOwner(ctx context.Context, id int64, ownerID int64) (*models.Todo, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.todos[id]
	if !ok || t.OwnerID != ownerID {
		return nil, common.ErrorNotFound
	}
	copied := *t
	return &copied, nil
}

func (r *memTodosRepo) GetByID(ctx context.Context, id int64) (*models.Todo, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.todos[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	copied := *t
	return &copied, nil
}

func (r *memTodosRepo) Update(ctx context.Context, todo *models.Todo) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.todos[todo.ID]
	if !ok || existing.OwnerID != todo.OwnerID {
		return common.ErrorNotFound
	}
	copied := *todo
	r.s.todos[todo.ID] = &copied
	return nil
}

func (r *memTodosRepo) UpdateByID(ctx context.Context, todo *models.Todo) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.todos[todo.ID]
	if !ok {
		return common.ErrorNotFound
	}
	copied := *todo
	copied.OwnerID = existing.OwnerID
	r.s.todos[todo.ID] = &copied
	return nil
}

func (r *memTodosRepo) DeleteByIDAndOwner(ctx context.Context, id int64, ownerID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.todos[id]
	if !ok || t.OwnerID != ownerID {
		return common.ErrorNotFound
	}
	delete(r.s.todos, id)
	return nil
}

func (r *memTodosRepo) DeleteByID(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.todos[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.s.todos, id)
	return nil
}

type memAddressesRepo struct{ s *memStore }

func (r *memAddressesRepo) Create(ctx context.Context, address *models.Address) (*models.Address, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.nextAddressID++
	address.ID = r.s.nextAddressID
	copied := *address
	r.s.addresses[address.ID] = &copied
	return address, nil
}

func (r *memAddressesRepo) GetByID(ctx context.Context, id int64) (*models.Address, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.addresses[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	copied := *a
	return &copied, nil
}

type memRepoManager struct{ s *memStore }

func (m *memRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *memRepoManager) Users(dbx.DBTX) users.Repository              { return &memUsersRepo{s: m.s} }
func (m *memRepoManager) Todos(dbx.DBTX) todos.Repository              { return &memTodosRepo{s: m.s} }
func (m *memRepoManager) Addresses(dbx.DBTX) addresses.Repository      { return &memAddressesRepo{s: m.s} }

// newTestHandler builds the full route table over an in-memory store.
// The sqlite handle only provides transaction plumbing; the fakes ignore it.
func newTestHandler(t *testing.T) (http.Handler, *memStore) {
	t.Helper()

	db, err := sql.Open("sqlite", "file:httpapi_tests?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("error opening test db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	store := newMemStore()
	manager := &memRepoManager{s: store}

	cfg := &config.Config{
		SecretKey:                   testSecretKey,
		AccessTokenValidityDuration: time.Hour,
	}

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

	srv := NewServer(":0", logger,
		services.NewUserService(db, manager, cfg),
		services.NewTodoService(db, manager),
		services.NewAddressService(db, manager),
		cfg.SecretKey,
	)
	return srv.Handler(), store
}

func doJSON(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("error encoding request body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("error decoding response body %q: %v", rec.Body.String(), err)
	}
}

func responseDetail(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body detailResponse
	decodeBody(t, rec, &body)
	return body.Detail
}

func createAccount(t *testing.T, h http.Handler, username, password, role string) {
	t.Helper()
	rec := doJSON(t, h, http.MethodPost, "/auth/create_user", "", createUserRequest{
		Username: username,
		Email:    username + "@example.com",
		Password: password,
		Role:     role,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create_user for %q: status %d, body %s", username, rec.Code, rec.Body.String())
	}
}

func obtainToken(t *testing.T, h http.Handler, username, password string) string {
	t.Helper()
	rec := doJSON(t, h, http.MethodPost, "/auth/token", "", loginRequest{
		Username: username, Password: password,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("token for %q: status %d, body %s", username, rec.Code, rec.Body.String())
	}
	var body tokenResponse
	decodeBody(t, rec, &body)
	if body.TokenType != "bearer" {
		t.Fatalf("unexpected token_type: %q", body.TokenType)
	}
	return body.AccessToken
}

func createTodo(t *testing.T, h http.Handler, token, title string) int64 {
	t.Helper()
	rec := doJSON(t, h, http.MethodPost, "/todo", token, todoRequest{
		Title: title, Description: "d", Priority: 3,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create todo %q: status %d, body %s", title, rec.Code, rec.Body.String())
	}
	var body todoResponse
	decodeBody(t, rec, &body)
	return body.ID
}
