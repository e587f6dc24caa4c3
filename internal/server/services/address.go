package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/taskvault/internal/common"
	"github.com/dmitrijs2005/taskvault/internal/dbx"
	"github.com/dmitrijs2005/taskvault/internal/server/auth"
	"github.com/dmitrijs2005/taskvault/internal/server/models"
	"github.com/dmitrijs2005/taskvault/internal/server/repositories/repomanager"
)

// AddressParams carries the fields of an address creation request.
type AddressParams struct {
	Address1   string
	Address2   string
	City       string
	State      string
	Country    string
	PostalCode string
	AptNum     string
}

func (p AddressParams) validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"address1", p.Address1},
		{"address2", p.Address2},
		{"city", p.City},
		{"state", p.State},
		{"country", p.Country},
		{"postal_code", p.PostalCode},
	}
	for _, f := range required {
		if f.value == "" {
			return fmt.Errorf("%w: %s is required", common.ErrValidation, f.name)
		}
	}
	return nil
}

// AddressService creates addresses and links them to the calling account.
type AddressService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewAddressService constructs an AddressService.
func NewAddressService(db *sql.DB, m repomanager.RepositoryManager) *AddressService {
	return &AddressService{db: db, repomanager: m}
}

// Create inserts an address and points the calling account's address_id
// at it, inside a single transaction: if the link step fails the address
// does not remain orphaned in a committed state.
func (s *AddressService) Create(ctx context.Context, identity auth.Identity, params AddressParams) (*models.Address, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	address := &models.Address{
		Address1:   params.Address1,
		Address2:   params.Address2,
		City:       params.City,
		State:      params.State,
		Country:    params.Country,
		PostalCode: params.PostalCode,
	}
	if params.AptNum != "" {
		address.AptNum = &params.AptNum
	}

	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		addressRepo := s.repomanager.Addresses(tx)
		userRepo := s.repomanager.Users(tx)

		created, err := addressRepo.Create(ctx, address)
		if err != nil {
			return fmt.Errorf("error creating address: %w", err)
		}
		if err := userRepo.SetAddressID(ctx, identity.UserID, created.ID); err != nil {
			return fmt.Errorf("error linking address: %w", err)
		}
		return nil
	}); err != nil {
		return nil, err
	}

	return address, nil
}
