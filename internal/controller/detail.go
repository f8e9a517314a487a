package controller

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/Raymond9734/customer-admin/internal/models"
)

// DetailState is a snapshot of a CustomerDetail. The empty view is
// StatusIdle with a nil Customer.
type DetailState struct {
	Status   Status
	Customer *models.Customer
	Err      error
	// PendingDelete is the address awaiting delete confirmation
	PendingDelete *models.Address
	// ActionErr is the failure of the latest address delete
	ActionErr error
	// CanDeleteAddress is false while the customer has a single address
	CanDeleteAddress bool
}

// CanConfirmDelete reports whether the delete confirmation may proceed
func (s DetailState) CanConfirmDelete() bool {
	return s.PendingDelete != nil && s.CanDeleteAddress
}

// CustomerDetail manages one selected customer and its nested addresses
type CustomerDetail struct {
	gateway      Gateway
	logger       *slog.Logger
	onChanged    func(context.Context)
	customerForm *CustomerForm
	addressForm  *AddressForm

	mu            sync.Mutex
	id            int64
	status        Status
	customer      *models.Customer
	err           error
	pendingDelete *models.Address
	actionErr     error
	token         uint64
}

// NewCustomerDetail creates an empty detail controller. onChanged runs after
// any successful change to the customer or its addresses.
func NewCustomerDetail(gateway Gateway, logger *slog.Logger, onChanged func(context.Context)) *CustomerDetail {
	d := &CustomerDetail{
		gateway:   gateway,
		logger:    logger,
		onChanged: onChanged,
	}
	d.customerForm = NewCustomerForm(gateway, logger, func(ctx context.Context, _ *models.Customer) {
		d.changed(ctx)
	})
	d.addressForm = NewAddressForm(gateway, logger, func(ctx context.Context, _ *models.Address) {
		d.changed(ctx)
	})
	return d
}

// CustomerForm returns the edit dialog of the loaded customer
func (d *CustomerDetail) CustomerForm() *CustomerForm {
	return d.customerForm
}

// AddressForm returns the add/edit address dialog
func (d *CustomerDetail) AddressForm() *AddressForm {
	return d.addressForm
}

// Load fetches customer id, discarding any older load still in flight
func (d *CustomerDetail) Load(ctx context.Context, id int64) error {
	d.mu.Lock()
	if d.id != id {
		d.customer = nil
		d.pendingDelete = nil
		d.actionErr = nil
	}
	d.id = id
	d.token++
	token := d.token
	d.status = StatusLoading
	d.err = nil
	d.mu.Unlock()

	customer, err := d.gateway.GetCustomer(ctx, id)

	d.mu.Lock()
	defer d.mu.Unlock()
	if token != d.token {
		d.logger.Debug("discarding stale customer detail", slog.Int64("customer_id", id))
		return ErrSuperseded
	}
	if err != nil {
		d.status = StatusError
		d.err = err
		d.logger.Error("failed to fetch customer",
			slog.Int64("customer_id", id),
			slog.String("error", err.Error()),
		)
		return err
	}
	d.status = StatusSuccess
	d.customer = customer
	return nil
}

// Reload refetches the current customer
func (d *CustomerDetail) Reload(ctx context.Context) error {
	d.mu.Lock()
	id := d.id
	d.mu.Unlock()
	if id == 0 {
		return ErrNoCustomer
	}
	return d.Load(ctx, id)
}

// Clear returns to the empty view
func (d *CustomerDetail) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.id = 0
	d.token++
	d.status = StatusIdle
	d.customer = nil
	d.err = nil
	d.pendingDelete = nil
	d.actionErr = nil
}

// State returns a snapshot of the detail view
func (d *CustomerDetail) State() DetailState {
	d.mu.Lock()
	defer d.mu.Unlock()

	s := DetailState{
		Status:           d.status,
		Err:              d.err,
		ActionErr:        d.actionErr,
		CanDeleteAddress: d.canDeleteLocked(),
	}
	if d.customer != nil {
		c := copyCustomer(*d.customer)
		s.Customer = &c
	}
	if d.pendingDelete != nil {
		a := *d.pendingDelete
		s.PendingDelete = &a
	}
	return s
}

// EditCustomer opens the customer form on the loaded customer
func (d *CustomerDetail) EditCustomer() error {
	d.mu.Lock()
	customer := d.customer
	d.mu.Unlock()
	if customer == nil {
		return ErrNoCustomer
	}
	d.customerForm.Open(customer)
	return nil
}

// OpenAddressForm opens the address form for the loaded customer. A nil
// address adds a new one.
func (d *CustomerDetail) OpenAddressForm(address *models.Address) error {
	d.mu.Lock()
	customer := d.customer
	d.mu.Unlock()
	if customer == nil {
		return ErrNoCustomer
	}
	d.addressForm.Open(customer.ID, address)
	return nil
}

// CanDeleteAddress reports whether the customer has more than one address
func (d *CustomerDetail) CanDeleteAddress() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.canDeleteLocked()
}

// RequestDeleteAddress opens the delete confirmation for address
func (d *CustomerDetail) RequestDeleteAddress(address models.Address) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pendingDelete = &address
	d.actionErr = nil
}

// CancelDeleteAddress closes the delete confirmation
func (d *CustomerDetail) CancelDeleteAddress() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pendingDelete = nil
	d.actionErr = nil
}

// ConfirmDeleteAddress deletes the pending address. It never reaches the
// gateway while the customer has a single address.
func (d *CustomerDetail) ConfirmDeleteAddress(ctx context.Context) error {
	d.mu.Lock()
	pending := d.pendingDelete
	if pending == nil {
		d.mu.Unlock()
		return nil
	}
	if !d.canDeleteLocked() {
		d.mu.Unlock()
		return ErrLastAddress
	}
	d.mu.Unlock()

	if err := d.gateway.DeleteAddress(ctx, pending.ID); err != nil {
		d.logger.Error("failed to delete address",
			slog.Int64("address_id", pending.ID),
			slog.String("error", err.Error()),
		)
		d.mu.Lock()
		d.actionErr = err
		d.mu.Unlock()
		return err
	}

	d.logger.Info("address deleted", slog.Int64("address_id", pending.ID))

	d.mu.Lock()
	d.pendingDelete = nil
	d.actionErr = nil
	d.mu.Unlock()

	d.changed(ctx)
	return nil
}

func (d *CustomerDetail) changed(ctx context.Context) {
	if err := d.Reload(ctx); err != nil && !errors.Is(err, ErrSuperseded) {
		d.logger.Warn("reload after change failed", slog.String("error", err.Error()))
	}
	if d.onChanged != nil {
		d.onChanged(ctx)
	}
}

func (d *CustomerDetail) canDeleteLocked() bool {
	return d.customer != nil && d.customer.AddressCount() > 1
}
