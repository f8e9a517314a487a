// Package controller holds the list, form and detail state managers that keep
// customer and address views consistent with the remote API.
//
// Each controller owns an explicit state struct guarded by a mutex. The mutex
// is never held across a gateway call, so a State snapshot can be taken while
// a request is in flight. Results are applied only when the request that
// produced them is still the latest one issued.
package controller

import (
	"context"
	"errors"

	"github.com/Raymond9734/customer-admin/internal/models"
)

// Controller errors
var (
	// ErrSuperseded is returned by a fetch whose result was discarded because
	// a newer request was issued before it completed
	ErrSuperseded = errors.New("request superseded by a newer one")
	// ErrInvalidDraft is returned by Submit when local validation fails
	ErrInvalidDraft = errors.New("form has invalid fields")
	// ErrSubmitting is returned by Submit while an earlier submission of the
	// same form is still in flight
	ErrSubmitting = errors.New("form submission already in progress")
	// ErrLastAddress is returned when deleting a customer's only address
	ErrLastAddress = errors.New("a customer's last address cannot be deleted")
	// ErrNoCustomer is returned by detail operations before a customer is loaded
	ErrNoCustomer = errors.New("no customer loaded")
)

// CustomerGateway is the set of remote customer operations the controllers use
type CustomerGateway interface {
	ListCustomers(ctx context.Context, req models.PageRequest) (*models.Page[models.CustomerSummary], error)
	SearchCustomers(ctx context.Context, query string, req models.PageRequest) (*models.Page[models.CustomerSummary], error)
	AdvancedSearchCustomers(ctx context.Context, filter models.AddressFilter, req models.PageRequest) (*models.Page[models.CustomerSummary], error)
	GetCustomer(ctx context.Context, id int64) (*models.Customer, error)
	CreateCustomer(ctx context.Context, customer *models.Customer) (*models.Customer, error)
	UpdateCustomer(ctx context.Context, customer *models.Customer) (*models.Customer, error)
	DeleteCustomer(ctx context.Context, id int64) error
}

// AddressGateway is the set of remote address operations the controllers use
type AddressGateway interface {
	CreateAddress(ctx context.Context, customerID int64, address *models.Address) (*models.Address, error)
	UpdateAddress(ctx context.Context, id int64, address *models.Address) (*models.Address, error)
	DeleteAddress(ctx context.Context, id int64) error
}

// Gateway combines customer and address operations
type Gateway interface {
	CustomerGateway
	AddressGateway
}

// Status is the lifecycle of the latest request a controller issued
type Status int

// Request statuses
const (
	StatusIdle Status = iota
	StatusLoading
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}
