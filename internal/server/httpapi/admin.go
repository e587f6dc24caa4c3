package httpapi

import "net/http"

// Admin endpoints bypass ownership filtering. requireAdmin rejects
// non-admin callers with 401 before any lookup happens.

func (s *Server) handleAdminListTodos(w http.ResponseWriter, r *http.Request) {
	items, err := s.todos.ListAll(r.Context())
	if err != nil {
		s.respondTodoError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTodoResponses(items))
}

func (s *Server) handleAdminDeleteTodo(w http.ResponseWriter, r *http.Request) {
	id, err := todoID(r)
	if err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if err := s.todos.DeleteAny(r.Context(), id); err != nil {
		s.respondTodoError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
