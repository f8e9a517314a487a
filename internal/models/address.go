package models

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// DefaultCountry is used when an address is created without a country
const DefaultCountry = "USA"

// Address represents a postal address owned by a customer
type Address struct {
	ID         int64  `json:"id,omitempty"`
	CustomerID int64  `json:"customerId,omitempty"`
	Street     string `json:"street"`
	Street2    string `json:"street2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state"`
	Pincode    string `json:"pincode"`
	Country    string `json:"country"`
}

// Hash returns the SHA-256 fingerprint used to keep addresses unique
// across all customers
func (a *Address) Hash() string {
	raw := strings.Join([]string{a.Street, a.Street2, a.City, a.State, a.Country, a.Pincode}, "|")
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// AddressFilter holds the advanced search criteria over address attributes
type AddressFilter struct {
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
}

// IsEmpty reports whether no criterion is set
func (f AddressFilter) IsEmpty() bool {
	return f.City == "" && f.State == "" && f.Pincode == ""
}
