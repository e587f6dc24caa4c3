package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/taskvault/internal/common"
	"github.com/dmitrijs2005/taskvault/internal/server/models"
)

type userResponse struct {
	ID          int64   `json:"id"`
	Email       string  `json:"email"`
	Username    string  `json:"username"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	IsActive    bool    `json:"is_active"`
	Role        string  `json:"role"`
	PhoneNumber *string `json:"phone_number"`
	AddressID   *int64  `json:"address_id"`
}

// toUserResponse shapes an account row for the client. The password hash
// stays server-side.
func toUserResponse(u *models.User) userResponse {
	return userResponse{
		ID:          u.ID,
		Email:       u.Email,
		Username:    u.Username,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		IsActive:    u.IsActive,
		Role:        u.Role,
		PhoneNumber: u.PhoneNumber,
		AddressID:   u.AddressID,
	}
}

type changePasswordRequest struct {
	Password    string `json:"password"`
	NewPassword string `json:"new_password"`
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	user, err := s.users.Get(r.Context(), identityFrom(r.Context()))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeDetail(w, http.StatusNotFound, "User Not Found")
			return
		}
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(user))
}

func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	var req changePasswordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid request body")
		return
	}

	err := s.users.ChangePassword(r.Context(), identityFrom(r.Context()), req.Password, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrValidation):
			writeDetail(w, http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, common.ErrorUnauthorized):
			writeDetail(w, http.StatusUnauthorized, "Incorrect Password")
		case errors.Is(err, common.ErrorNotFound):
			writeDetail(w, http.StatusNotFound, "User Not Found")
		default:
			s.internalError(w, r, err)
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
