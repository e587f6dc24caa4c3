package models

// Roles assignable to a user account.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is an account row. PhoneNumber and AddressID arrived in later
// migrations, so both are nullable in the schema.
type User struct {
	ID             int64
	Email          string
	Username       string
	FirstName      string
	LastName       string
	HashedPassword string
	IsActive       bool
	Role           string
	PhoneNumber    *string
	AddressID      *int64
}
