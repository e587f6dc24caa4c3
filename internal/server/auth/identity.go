package auth

import "github.com/dmitrijs2005/taskvault/internal/common"

// Identity is the resolved caller context used to scope data access.
// It is constructed only by ResolveIdentity and is immutable afterwards.
type Identity struct {
	Username string
	UserID   int64
	Role     string
}

// IsAdmin reports whether the identity carries the admin role.
func (i Identity) IsAdmin() bool {
	return i.Role == "admin"
}

// ResolveIdentity turns a bearer token into a trusted Identity. A missing
// token, a parse failure, or a claim with any of username/id/role absent
// all collapse into the single common.ErrInvalidToken outcome.
func ResolveIdentity(token string, secretKey []byte) (Identity, error) {
	if token == "" {
		return Identity{}, common.ErrInvalidToken
	}

	claims, err := ParseToken(token, secretKey)
	if err != nil {
		return Identity{}, common.ErrInvalidToken
	}

	if claims.Subject == "" || claims.UserID == 0 || claims.Role == "" {
		return Identity{}, common.ErrInvalidToken
	}

	return Identity{
		Username: claims.Subject,
		UserID:   claims.UserID,
		Role:     claims.Role,
	}, nil
}
