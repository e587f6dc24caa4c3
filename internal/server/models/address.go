package models

// Address is owned by at most one user via users.address_id.
type Address struct {
	ID         int64
	Address1   string
	Address2   string
	City       string
	State      string
	Country    string
	PostalCode string
	AptNum     *string
}
