package controller

import (
	"context"
	"log/slog"
	"sync"

	"github.com/Raymond9734/customer-admin/internal/models"
	"github.com/Raymond9734/customer-admin/internal/validation"
)

// AddressFormState is a snapshot of an AddressForm
type AddressFormState struct {
	Open       bool
	Mode       FormMode
	CustomerID int64
	Draft      models.Address
	Errors     validation.AddressErrors
	Touched    AddressTouched
	Submitting bool
	SubmitErr  error
}

// VisibleErrors returns the errors of touched fields only
func (s AddressFormState) VisibleErrors() validation.AddressErrors {
	return visibleAddressErrors(s.Errors, s.Touched)
}

// AddressForm manages the add/edit address dialog of one customer
type AddressForm struct {
	gateway AddressGateway
	logger  *slog.Logger
	onSaved func(context.Context, *models.Address)

	mu         sync.Mutex
	open       bool
	mode       FormMode
	customerID int64
	targetID   int64
	draft      models.Address
	errors     validation.AddressErrors
	touched    AddressTouched
	submitting bool
	submitErr  error
	generation uint64
}

// NewAddressForm creates a closed address form
func NewAddressForm(gateway AddressGateway, logger *slog.Logger, onSaved func(context.Context, *models.Address)) *AddressForm {
	return &AddressForm{
		gateway: gateway,
		logger:  logger,
		onSaved: onSaved,
	}
}

// Open resets the form for customerID. A nil address opens create mode with
// the default country.
func (f *AddressForm) Open(customerID int64, address *models.Address) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.resetLocked()
	f.open = true
	f.customerID = customerID
	if address == nil {
		f.mode = FormCreate
		f.draft = models.Address{CustomerID: customerID, Country: models.DefaultCountry}
		return
	}
	f.mode = FormEdit
	f.targetID = address.ID
	f.draft = *address
}

// Close discards the draft
func (f *AddressForm) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resetLocked()
}

// SetField updates a draft field. A touched field is revalidated.
func (f *AddressForm) SetField(field validation.AddressField, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	validation.SetAddressValue(&f.draft, field, value)
	f.submitErr = nil
	if f.touched.Get(field) {
		f.errors.Set(field, validation.ValidateAddressField(field, value))
	}
}

// Blur marks a field as touched and validates it
func (f *AddressForm) Blur(field validation.AddressField) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.touched.Set(field)
	f.errors.Set(field, validation.ValidateAddressField(field, validation.AddressValue(&f.draft, field)))
}

// State returns a snapshot of the form
func (f *AddressForm) State() AddressFormState {
	f.mu.Lock()
	defer f.mu.Unlock()

	return AddressFormState{
		Open:       f.open,
		Mode:       f.mode,
		CustomerID: f.customerID,
		Draft:      f.draft,
		Errors:     f.errors,
		Touched:    f.touched,
		Submitting: f.submitting,
		SubmitErr:  f.submitErr,
	}
}

// Submit validates and saves the draft
func (f *AddressForm) Submit(ctx context.Context) (*models.Address, error) {
	f.mu.Lock()
	if !f.open {
		f.mu.Unlock()
		return nil, nil
	}
	if f.submitting {
		f.mu.Unlock()
		return nil, ErrSubmitting
	}

	f.errors = validation.ValidateAddress(&f.draft)
	f.touched = touchAllAddress()
	if !f.errors.Valid() {
		f.mu.Unlock()
		return nil, ErrInvalidDraft
	}

	mode, customerID, targetID := f.mode, f.customerID, f.targetID
	draft := f.draft
	draft.CustomerID = customerID
	generation := f.generation
	f.submitting = true
	f.submitErr = nil
	f.mu.Unlock()

	var saved *models.Address
	var err error
	if mode == FormEdit {
		saved, err = f.gateway.UpdateAddress(ctx, targetID, &draft)
	} else {
		saved, err = f.gateway.CreateAddress(ctx, customerID, &draft)
	}

	f.mu.Lock()
	if generation == f.generation {
		f.submitting = false
		if err != nil {
			f.submitErr = err
		} else {
			f.resetLocked()
		}
	}
	f.mu.Unlock()

	if err != nil {
		f.logger.Error("failed to save address",
			slog.String("mode", mode.String()),
			slog.Int64("customer_id", customerID),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	f.logger.Info("address saved",
		slog.String("mode", mode.String()),
		slog.Int64("customer_id", customerID),
		slog.Int64("address_id", saved.ID),
	)
	if f.onSaved != nil {
		f.onSaved(ctx, saved)
	}
	return saved, nil
}

func (f *AddressForm) resetLocked() {
	f.open = false
	f.mode = FormCreate
	f.customerID = 0
	f.targetID = 0
	f.draft = models.Address{}
	f.errors = validation.AddressErrors{}
	f.touched = AddressTouched{}
	f.submitting = false
	f.submitErr = nil
	f.generation++
}
