// Package httpapi exposes the TaskVault HTTP API: registration and login,
// per-user todo CRUD, the address sub-resource and the admin endpoints.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/taskvault/internal/logging"
	"github.com/dmitrijs2005/taskvault/internal/server/services"
)

// Server wires the HTTP endpoints to the services.
type Server struct {
	address   string
	logger    logging.Logger
	users     *services.UserService
	todos     *services.TodoService
	addresses *services.AddressService
	jwtSecret []byte
}

// NewServer constructs a Server listening on address a.
func NewServer(a string, l logging.Logger, us *services.UserService, ts *services.TodoService, as *services.AddressService, secretKey string) *Server {
	return &Server{
		address:   a,
		logger:    l.With("module", "httpapi"),
		users:     us,
		todos:     ts,
		addresses: as,
		jwtSecret: []byte(secretKey),
	}
}

// Handler builds the route table. Protected routes go through
// requireIdentity; admin routes additionally through requireAdmin.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /auth/create_user", s.handleCreateUser)
	mux.HandleFunc("POST /auth/token", s.handleLogin)

	mux.HandleFunc("GET /{$}", s.requireIdentity(s.handleListTodos))
	mux.HandleFunc("POST /todo", s.requireIdentity(s.handleCreateTodo))
	mux.HandleFunc("GET /todo/{id}", s.requireIdentity(s.handleGetTodo))
	mux.HandleFunc("PUT /todo/{id}", s.requireIdentity(s.handleUpdateTodo))
	mux.HandleFunc("DELETE /todo/{id}", s.requireIdentity(s.handleDeleteTodo))

	mux.HandleFunc("GET /user/{$}", s.requireIdentity(s.handleGetUser))
	mux.HandleFunc("PUT /user/change_password", s.requireIdentity(s.handleChangePassword))

	mux.HandleFunc("POST /address/{$}", s.requireIdentity(s.handleCreateAddress))

	mux.HandleFunc("GET /admin/todo", s.requireAdmin(s.handleAdminListTodos))
	mux.HandleFunc("DELETE /admin/todo/{id}", s.requireAdmin(s.handleAdminDeleteTodo))

	return s.withRequestLogging(mux)
}

// Run starts the HTTP server and shuts it down gracefully when ctx is
// cancelled.
func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Handler(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
