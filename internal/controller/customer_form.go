package controller

import (
	"context"
	"log/slog"
	"sync"

	"github.com/Raymond9734/customer-admin/internal/models"
	"github.com/Raymond9734/customer-admin/internal/validation"
)

// FormMode tells whether a form creates a new record or edits an existing one
type FormMode int

// Form modes
const (
	FormCreate FormMode = iota
	FormEdit
)

func (m FormMode) String() string {
	if m == FormEdit {
		return "edit"
	}
	return "create"
}

// CustomerFormState is a snapshot of a CustomerForm
type CustomerFormState struct {
	Open       bool
	Mode       FormMode
	Draft      models.Customer
	Errors     validation.CustomerErrors
	Touched    CustomerTouched
	Submitting bool
	// SubmitErr is the gateway failure of the latest submission
	SubmitErr error

	// Address sub-form, create mode only
	AddressErrors  validation.AddressErrors
	AddressTouched AddressTouched
}

// VisibleErrors returns the customer errors of touched fields only
func (s CustomerFormState) VisibleErrors() validation.CustomerErrors {
	return visibleCustomerErrors(s.Errors, s.Touched)
}

// VisibleAddressErrors returns the address sub-form errors of touched fields only
func (s CustomerFormState) VisibleAddressErrors() validation.AddressErrors {
	return visibleAddressErrors(s.AddressErrors, s.AddressTouched)
}

// CustomerForm manages the create/edit customer dialog
type CustomerForm struct {
	gateway CustomerGateway
	logger  *slog.Logger
	onSaved func(context.Context, *models.Customer)

	mu             sync.Mutex
	open           bool
	mode           FormMode
	target         *models.Customer
	draft          models.Customer
	errors         validation.CustomerErrors
	touched        CustomerTouched
	addressErrors  validation.AddressErrors
	addressTouched AddressTouched
	submitting     bool
	submitErr      error
	generation     uint64
}

// NewCustomerForm creates a closed form. onSaved runs after every successful
// submission.
func NewCustomerForm(gateway CustomerGateway, logger *slog.Logger, onSaved func(context.Context, *models.Customer)) *CustomerForm {
	return &CustomerForm{
		gateway: gateway,
		logger:  logger,
		onSaved: onSaved,
	}
}

// Open resets the form and opens it. A nil customer opens create mode with
// one empty address; otherwise the draft is a copy of customer.
func (f *CustomerForm) Open(customer *models.Customer) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.resetLocked()
	f.open = true
	if customer == nil {
		f.mode = FormCreate
		f.draft = models.Customer{
			Addresses: []models.Address{{Country: models.DefaultCountry}},
		}
		return
	}

	target := copyCustomer(*customer)
	f.mode = FormEdit
	f.target = &target
	f.draft = copyCustomer(*customer)
}

// Close discards the draft
func (f *CustomerForm) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resetLocked()
}

// SetField updates a draft field. A touched field is revalidated.
func (f *CustomerForm) SetField(field validation.CustomerField, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	validation.SetCustomerValue(&f.draft, field, value)
	f.submitErr = nil
	if f.touched.Get(field) {
		f.errors.Set(field, validation.ValidateCustomerField(field, value))
	}
}

// Blur marks a field as touched and validates it
func (f *CustomerForm) Blur(field validation.CustomerField) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.touched.Set(field)
	f.errors.Set(field, validation.ValidateCustomerField(field, validation.CustomerValue(&f.draft, field)))
}

// SetAddressField updates the address sub-form of a create draft
func (f *CustomerForm) SetAddressField(field validation.AddressField, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.mode != FormCreate || len(f.draft.Addresses) == 0 {
		return
	}
	validation.SetAddressValue(&f.draft.Addresses[0], field, value)
	f.submitErr = nil
	if f.addressTouched.Get(field) {
		f.addressErrors.Set(field, validation.ValidateAddressField(field, value))
	}
}

// BlurAddress marks an address sub-form field as touched and validates it
func (f *CustomerForm) BlurAddress(field validation.AddressField) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.mode != FormCreate || len(f.draft.Addresses) == 0 {
		return
	}
	f.addressTouched.Set(field)
	f.addressErrors.Set(field, validation.ValidateAddressField(field, validation.AddressValue(&f.draft.Addresses[0], field)))
}

// State returns a snapshot of the form
func (f *CustomerForm) State() CustomerFormState {
	f.mu.Lock()
	defer f.mu.Unlock()

	return CustomerFormState{
		Open:           f.open,
		Mode:           f.mode,
		Draft:          copyCustomer(f.draft),
		Errors:         f.errors,
		Touched:        f.touched,
		Submitting:     f.submitting,
		SubmitErr:      f.submitErr,
		AddressErrors:  f.addressErrors,
		AddressTouched: f.addressTouched,
	}
}

// Submit validates every field and saves the draft. On a gateway failure the
// form stays open with its draft intact; on success it closes and onSaved runs.
func (f *CustomerForm) Submit(ctx context.Context) (*models.Customer, error) {
	f.mu.Lock()
	if !f.open {
		f.mu.Unlock()
		return nil, nil
	}
	if f.submitting {
		f.mu.Unlock()
		return nil, ErrSubmitting
	}

	f.errors = validation.ValidateCustomer(&f.draft)
	f.touched = CustomerTouched{FirstName: true, LastName: true, Email: true, Phone: true}
	valid := f.errors.Valid()
	if f.mode == FormCreate && len(f.draft.Addresses) > 0 {
		f.addressErrors = validation.ValidateAddress(&f.draft.Addresses[0])
		f.addressTouched = touchAllAddress()
		valid = valid && f.addressErrors.Valid()
	}
	if !valid {
		f.mu.Unlock()
		return nil, ErrInvalidDraft
	}

	mode := f.mode
	draft := copyCustomer(f.draft)
	if mode == FormEdit {
		draft.ID = f.target.ID
	}
	generation := f.generation
	f.submitting = true
	f.submitErr = nil
	f.mu.Unlock()

	var saved *models.Customer
	var err error
	if mode == FormEdit {
		saved, err = f.gateway.UpdateCustomer(ctx, &draft)
	} else {
		saved, err = f.gateway.CreateCustomer(ctx, &draft)
	}

	f.mu.Lock()
	current := generation == f.generation
	if current {
		f.submitting = false
		if err != nil {
			f.submitErr = err
		} else {
			f.resetLocked()
		}
	}
	f.mu.Unlock()

	if err != nil {
		f.logger.Error("failed to save customer",
			slog.String("mode", mode.String()),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	f.logger.Info("customer saved",
		slog.String("mode", mode.String()),
		slog.Int64("customer_id", saved.ID),
	)
	if f.onSaved != nil {
		f.onSaved(ctx, saved)
	}
	return saved, nil
}

func (f *CustomerForm) resetLocked() {
	f.open = false
	f.mode = FormCreate
	f.target = nil
	f.draft = models.Customer{}
	f.errors = validation.CustomerErrors{}
	f.touched = CustomerTouched{}
	f.addressErrors = validation.AddressErrors{}
	f.addressTouched = AddressTouched{}
	f.submitting = false
	f.submitErr = nil
	f.generation++
}

func copyCustomer(c models.Customer) models.Customer {
	c.Addresses = append([]models.Address(nil), c.Addresses...)
	return c
}
