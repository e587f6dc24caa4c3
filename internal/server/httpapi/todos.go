package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/taskvault/internal/common"
	"github.com/dmitrijs2005/taskvault/internal/server/models"
	"github.com/dmitrijs2005/taskvault/internal/server/services"
)

const todoNotFoundDetail = "To Do Not Found"

type todoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    int    `json:"priority"`
	Complete    bool   `json:"complete"`
}

type todoResponse struct {
	ID          int64  `json:"id"`
	OwnerID     int64  `json:"owner_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    int    `json:"priority"`
	Complete    bool   `json:"complete"`
}

func toTodoResponse(t *models.Todo) todoResponse {
	return todoResponse{
		ID:          t.ID,
		OwnerID:     t.OwnerID,
		Title:       t.Title,
		Description: t.Description,
		Priority:    t.Priority,
		Complete:    t.Complete,
	}
}

func toTodoResponses(items []*models.Todo) []todoResponse {
	result := make([]todoResponse, 0, len(items))
	for _, t := range items {
		result = append(result, toTodoResponse(t))
	}
	return result
}

// todoID parses the {id} path segment. Ids start from 1.
func todoID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, errors.New("id must be a positive integer")
	}
	return id, nil
}

func (s *Server) respondTodoError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrValidation):
		writeDetail(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, common.ErrorNotFound):
		writeDetail(w, http.StatusNotFound, todoNotFoundDetail)
	default:
		s.internalError(w, r, err)
	}
}

func (s *Server) handleListTodos(w http.ResponseWriter, r *http.Request) {
	items, err := s.todos.List(r.Context(), identityFrom(r.Context()))
	if err != nil {
		s.respondTodoError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTodoResponses(items))
}

func (s *Server) handleGetTodo(w http.ResponseWriter, r *http.Request) {
	id, err := todoID(r)
	if err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	todo, err := s.todos.Get(r.Context(), identityFrom(r.Context()), id)
	if err != nil {
		s.respondTodoError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTodoResponse(todo))
}

func (s *Server) handleCreateTodo(w http.ResponseWriter, r *http.Request) {
	var req todoRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid request body")
		return
	}

	todo, err := s.todos.Create(r.Context(), identityFrom(r.Context()), services.TodoParams(req))
	if err != nil {
		s.respondTodoError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTodoResponse(todo))
}

func (s *Server) handleUpdateTodo(w http.ResponseWriter, r *http.Request) {
	id, err := todoID(r)
	if err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	var req todoRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid request body")
		return
	}

	if err := s.todos.Update(r.Context(), identityFrom(r.Context()), id, services.TodoParams(req)); err != nil {
		s.respondTodoError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteTodo(w http.ResponseWriter, r *http.Request) {
	id, err := todoID(r)
	if err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if err := s.todos.Delete(r.Context(), identityFrom(r.Context()), id); err != nil {
		s.respondTodoError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
