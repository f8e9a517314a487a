package models

import (
	"strings"
	"time"
)

// Customer represents a customer with its addresses
type Customer struct {
	ID           int64     `json:"id,omitempty"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	CreatedAt    time.Time `json:"createdAt"`
	NumAddresses int       `json:"numAddresses"`
	Addresses    []Address `json:"addresses,omitempty"`
}

// CustomerSummary is a customer row as returned by listing endpoints
type CustomerSummary struct {
	ID           int64     `json:"id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	CreatedAt    time.Time `json:"createdAt"`
	NumAddresses int       `json:"numAddresses"`
}

// AddressCount returns the number of addresses the customer owns. The loaded
// address slice wins over the reported counter when both are present.
func (c *Customer) AddressCount() int {
	if len(c.Addresses) > 0 {
		return len(c.Addresses)
	}
	return c.NumAddresses
}

// Summary strips the nested addresses
func (c *Customer) Summary() CustomerSummary {
	return CustomerSummary{
		ID:           c.ID,
		FirstName:    c.FirstName,
		LastName:     c.LastName,
		Email:        c.Email,
		Phone:        c.Phone,
		CreatedAt:    c.CreatedAt,
		NumAddresses: c.AddressCount(),
	}
}

// FullName joins first and last name
func (c CustomerSummary) FullName() string {
	return c.FirstName + " " + c.LastName
}

// SortField is one of the columns a customer listing can be ordered by
type SortField string

// Sortable customer columns
const (
	SortByFirstName SortField = "firstName"
	SortByLastName  SortField = "lastName"
	SortByEmail     SortField = "email"
	SortByCreatedAt SortField = "createdAt"
)

// SortFields lists every sortable column in display order
var SortFields = []SortField{SortByFirstName, SortByLastName, SortByEmail, SortByCreatedAt}

// IsValid checks if the sort field is one of the known columns
func (f SortField) IsValid() bool {
	switch f {
	case SortByFirstName, SortByLastName, SortByEmail, SortByCreatedAt:
		return true
	default:
		return false
	}
}

// SortDir is the ordering direction
type SortDir string

// Sort directions
const (
	SortAsc  SortDir = "asc"
	SortDesc SortDir = "desc"
)

// Flip returns the opposite direction
func (d SortDir) Flip() SortDir {
	if d == SortAsc {
		return SortDesc
	}
	return SortAsc
}

// ParseSortDir maps any case of "desc" to SortDesc and everything else to SortAsc
func ParseSortDir(s string) SortDir {
	if strings.EqualFold(s, string(SortDesc)) {
		return SortDesc
	}
	return SortAsc
}
