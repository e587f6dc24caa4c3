package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/taskvault/internal/common"
	"github.com/dmitrijs2005/taskvault/internal/server/services"
)

type addressRequest struct {
	Address1   string `json:"address1"`
	Address2   string `json:"address2"`
	City       string `json:"city"`
	State      string `json:"state"`
	Country    string `json:"country"`
	PostalCode string `json:"postal_code"`
	AptNum     string `json:"apt_num"`
}

type addressResponse struct {
	ID         int64   `json:"id"`
	Address1   string  `json:"address1"`
	Address2   string  `json:"address2"`
	City       string  `json:"city"`
	State      string  `json:"state"`
	Country    string  `json:"country"`
	PostalCode string  `json:"postal_code"`
	AptNum     *string `json:"apt_num"`
}

func (s *Server) handleCreateAddress(w http.ResponseWriter, r *http.Request) {
	var req addressRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid request body")
		return
	}

	address, err := s.addresses.Create(r.Context(), identityFrom(r.Context()), services.AddressParams(req))
	if err != nil {
		if errors.Is(err, common.ErrValidation) {
			writeDetail(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		s.internalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, addressResponse{
		ID:         address.ID,
		Address1:   address.Address1,
		Address2:   address.Address2,
		City:       address.City,
		State:      address.State,
		Country:    address.Country,
		PostalCode: address.PostalCode,
		AptNum:     address.AptNum,
	})
}
