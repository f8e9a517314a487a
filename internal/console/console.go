// Package console is the interactive terminal front end. It owns one customer
// list and one detail view and drives them from prompt answers.
package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/Raymond9734/customer-admin/internal/client"
	"github.com/Raymond9734/customer-admin/internal/controller"
	"github.com/Raymond9734/customer-admin/internal/models"
	"github.com/Raymond9734/customer-admin/internal/validation"
)

// Console is the prompt loop over the customer controllers
type Console struct {
	driver PromptDriver
	out    io.Writer
	logger *slog.Logger
	list   *controller.CustomerList
	detail *controller.CustomerDetail
}

type action struct {
	label string
	run   func(context.Context) error
}

// New creates a console. Prompts go through driver; listings are written to out.
func New(driver PromptDriver, out io.Writer, gateway controller.Gateway, logger *slog.Logger, pageSize int) *Console {
	c := &Console{
		driver: driver,
		out:    out,
		logger: logger,
	}
	c.list = controller.NewCustomerList(gateway, logger, pageSize)
	c.detail = controller.NewCustomerDetail(gateway, logger, func(ctx context.Context) {
		c.report(c.list.Refresh(ctx))
	})
	c.list.SetObserver(func(s controller.ListState) {
		if s.Status == controller.StatusLoading {
			fmt.Fprintln(c.out, "Loading customers...")
		}
	})
	return c
}

// List returns the customer list controller
func (c *Console) List() *controller.CustomerList {
	return c.list
}

// Run shows the customer list and serves menu choices until the user quits
// or aborts
func (c *Console) Run(ctx context.Context) error {
	c.report(c.list.Refresh(ctx))

	actions := []action{
		{"Next page", c.nextPage},
		{"Previous page", c.previousPage},
		{"Change page size", c.changePageSize},
		{"Sort", c.sort},
		{"Search", c.search},
		{"Filter by address", c.filter},
		{"Clear filters", c.list.ClearFilters},
		{"Add customer", c.addCustomer},
		{"View customer", c.viewCustomer},
		{"Delete customer", c.deleteCustomer},
		{"Quit", nil},
	}
	labels := make([]string, len(actions))
	for i, a := range actions {
		labels[i] = a.label
	}

	for {
		c.printList(c.list.State())

		idx, err := c.driver.Select(ctx, SelectConfig{Message: "Choose an action", Options: labels})
		if err != nil {
			return quitErr(err)
		}
		if idx < 0 || idx >= len(actions) {
			continue
		}
		if actions[idx].run == nil {
			return nil
		}
		if err := actions[idx].run(ctx); err != nil {
			if errors.Is(err, ErrAborted) || ctx.Err() != nil {
				return quitErr(err)
			}
			c.report(err)
		}
	}
}

func (c *Console) nextPage(ctx context.Context) error {
	s := c.list.State()
	if int64((s.Query.Page+1)*s.Query.Size) >= s.TotalElements {
		fmt.Fprintln(c.out, "Already on the last page")
		return nil
	}
	return c.list.SetPage(ctx, s.Query.Page+1)
}

func (c *Console) previousPage(ctx context.Context) error {
	s := c.list.State()
	if s.Query.Page == 0 {
		fmt.Fprintln(c.out, "Already on the first page")
		return nil
	}
	return c.list.SetPage(ctx, s.Query.Page-1)
}

func (c *Console) changePageSize(ctx context.Context) error {
	current := c.list.State().Query.Size
	options := make([]string, len(controller.PageSizes))
	def := 0
	for i, size := range controller.PageSizes {
		options[i] = strconv.Itoa(size)
		if size == current {
			def = i
		}
	}
	idx, err := c.driver.Select(ctx, SelectConfig{Message: "Rows per page", Options: options, DefaultIndex: def})
	if err != nil || idx < 0 {
		return err
	}
	return c.list.SetPageSize(ctx, controller.PageSizes[idx])
}

func (c *Console) sort(ctx context.Context) error {
	options := make([]string, len(models.SortFields))
	for i, f := range models.SortFields {
		options[i] = sortLabel(f)
	}
	idx, err := c.driver.Select(ctx, SelectConfig{Message: "Sort by", Options: options})
	if err != nil || idx < 0 {
		return err
	}
	return c.list.SortBy(ctx, models.SortFields[idx])
}

func (c *Console) search(ctx context.Context) error {
	text, err := c.driver.Input(ctx, InputConfig{
		Message: "Search by name, email or phone",
		Default: c.list.State().Query.Search,
	})
	if err != nil {
		return err
	}
	return c.list.SetSearch(ctx, text)
}

func (c *Console) filter(ctx context.Context) error {
	current := c.list.State().Query.Filter
	city, err := c.driver.Input(ctx, InputConfig{Message: "City", Default: current.City})
	if err != nil {
		return err
	}
	state, err := c.driver.Input(ctx, InputConfig{Message: "State", Default: current.State})
	if err != nil {
		return err
	}
	pincode, err := c.driver.Input(ctx, InputConfig{Message: "Zipcode", Default: current.Pincode})
	if err != nil {
		return err
	}
	return c.list.SetFilter(ctx, models.AddressFilter{City: city, State: state, Pincode: pincode})
}

func (c *Console) addCustomer(ctx context.Context) error {
	form := c.list.Form()
	form.Open(nil)
	return c.editCustomer(ctx, form)
}

func (c *Console) deleteCustomer(ctx context.Context) error {
	customer, ok, err := c.pickCustomer(ctx)
	if err != nil || !ok {
		return err
	}

	c.list.RequestDelete(customer)
	yes, err := c.driver.Confirm(ctx, ConfirmConfig{
		Message: fmt.Sprintf("Are you sure you want to delete %s?", customer.FullName()),
	})
	if err != nil || !yes {
		c.list.CancelDelete()
		return err
	}
	if err := c.list.ConfirmDelete(ctx); err != nil {
		c.list.CancelDelete()
		return err
	}
	fmt.Fprintln(c.out, "Customer deleted")
	return nil
}

func (c *Console) viewCustomer(ctx context.Context) error {
	customer, ok, err := c.pickCustomer(ctx)
	if err != nil || !ok {
		return err
	}
	defer c.detail.Clear()
	if err := c.detail.Load(ctx, customer.ID); err != nil {
		return err
	}

	options := []string{"Edit customer", "Add address", "Edit address", "Delete address", "Back"}
	for {
		state := c.detail.State()
		c.printDetail(state)

		idx, err := c.driver.Select(ctx, SelectConfig{Message: "Customer actions", Options: options})
		if err != nil {
			return err
		}

		switch idx {
		case 0:
			if err = c.detail.EditCustomer(); err == nil {
				err = c.editCustomer(ctx, c.detail.CustomerForm())
			}
		case 1:
			if err = c.detail.OpenAddressForm(nil); err == nil {
				err = c.editAddress(ctx, c.detail.AddressForm())
			}
		case 2:
			err = c.changeAddress(ctx, state.Customer)
		case 3:
			err = c.deleteAddress(ctx, state.Customer)
		default:
			return nil
		}

		if err != nil {
			if errors.Is(err, ErrAborted) || ctx.Err() != nil {
				return err
			}
			c.report(err)
		}
	}
}

func (c *Console) changeAddress(ctx context.Context, customer *models.Customer) error {
	addr, ok, err := c.pickAddress(ctx, customer)
	if err != nil || !ok {
		return err
	}
	if err := c.detail.OpenAddressForm(&addr); err != nil {
		return err
	}
	return c.editAddress(ctx, c.detail.AddressForm())
}

func (c *Console) deleteAddress(ctx context.Context, customer *models.Customer) error {
	addr, ok, err := c.pickAddress(ctx, customer)
	if err != nil || !ok {
		return err
	}

	c.detail.RequestDeleteAddress(addr)
	if !c.detail.State().CanConfirmDelete() {
		fmt.Fprintln(c.out, "This is the only address for this customer and cannot be deleted.")
		c.detail.CancelDeleteAddress()
		return nil
	}

	yes, err := c.driver.Confirm(ctx, ConfirmConfig{Message: "Are you sure you want to delete this address?"})
	if err != nil || !yes {
		c.detail.CancelDeleteAddress()
		return err
	}
	if err := c.detail.ConfirmDeleteAddress(ctx); err != nil {
		c.detail.CancelDeleteAddress()
		return err
	}
	fmt.Fprintln(c.out, "Address deleted")
	return nil
}

// editCustomer prompts for every field of an open customer form and submits
// it, offering another round while the submission fails
func (c *Console) editCustomer(ctx context.Context, form *controller.CustomerForm) error {
	for {
		state := form.State()
		for _, f := range validation.CustomerFields {
			value, err := c.driver.Input(ctx, InputConfig{
				Message:   f.Label(),
				Default:   validation.CustomerValue(&state.Draft, f),
				Validator: fieldValidator(func(s string) string { return validation.ValidateCustomerField(f, s) }),
			})
			if err != nil {
				form.Close()
				return err
			}
			form.SetField(f, value)
			form.Blur(f)
		}

		if state.Mode == controller.FormCreate && len(state.Draft.Addresses) > 0 {
			addr := state.Draft.Addresses[0]
			for _, f := range validation.AddressFields {
				value, err := c.driver.Input(ctx, InputConfig{
					Message:   "Address " + f.Label(),
					Default:   validation.AddressValue(&addr, f),
					Validator: fieldValidator(func(s string) string { return validation.ValidateAddressField(f, s) }),
				})
				if err != nil {
					form.Close()
					return err
				}
				form.SetAddressField(f, value)
				form.BlurAddress(f)
			}
		}

		_, err := form.Submit(ctx)
		if err == nil {
			fmt.Fprintln(c.out, "Customer saved")
			return nil
		}
		if errors.Is(err, controller.ErrInvalidDraft) {
			s := form.State()
			c.printFieldErrors(customerErrorLines(s.VisibleErrors()), addressErrorLines(s.VisibleAddressErrors()))
		} else {
			c.report(err)
		}

		again, cerr := c.driver.Confirm(ctx, ConfirmConfig{Message: "Edit and try again?", Default: true})
		if cerr != nil || !again {
			form.Close()
			return cerr
		}
	}
}

// editAddress is editCustomer for an open address form
func (c *Console) editAddress(ctx context.Context, form *controller.AddressForm) error {
	for {
		state := form.State()
		for _, f := range validation.AddressFields {
			value, err := c.driver.Input(ctx, InputConfig{
				Message:   f.Label(),
				Default:   validation.AddressValue(&state.Draft, f),
				Validator: fieldValidator(func(s string) string { return validation.ValidateAddressField(f, s) }),
			})
			if err != nil {
				form.Close()
				return err
			}
			form.SetField(f, value)
			form.Blur(f)
		}

		_, err := form.Submit(ctx)
		if err == nil {
			fmt.Fprintln(c.out, "Address saved")
			return nil
		}
		if errors.Is(err, controller.ErrInvalidDraft) {
			c.printFieldErrors(addressErrorLines(form.State().VisibleErrors()))
		} else {
			c.report(err)
		}

		again, cerr := c.driver.Confirm(ctx, ConfirmConfig{Message: "Edit and try again?", Default: true})
		if cerr != nil || !again {
			form.Close()
			return cerr
		}
	}
}

func (c *Console) pickCustomer(ctx context.Context) (models.CustomerSummary, bool, error) {
	customers := c.list.State().Customers
	if len(customers) == 0 {
		fmt.Fprintln(c.out, "No customers found")
		return models.CustomerSummary{}, false, nil
	}

	options := make([]string, 0, len(customers)+1)
	for _, cu := range customers {
		options = append(options, fmt.Sprintf("%s <%s>", cu.FullName(), cu.Email))
	}
	options = append(options, "Cancel")

	idx, err := c.driver.Select(ctx, SelectConfig{Message: "Customer", Options: options})
	if err != nil || idx < 0 || idx >= len(customers) {
		return models.CustomerSummary{}, false, err
	}
	return customers[idx], true, nil
}

func (c *Console) pickAddress(ctx context.Context, customer *models.Customer) (models.Address, bool, error) {
	if customer == nil || len(customer.Addresses) == 0 {
		fmt.Fprintln(c.out, "No addresses found")
		return models.Address{}, false, nil
	}

	options := make([]string, 0, len(customer.Addresses)+1)
	for _, a := range customer.Addresses {
		options = append(options, fmt.Sprintf("%s, %s, %s %s", a.Street, a.City, a.State, a.Pincode))
	}
	options = append(options, "Cancel")

	idx, err := c.driver.Select(ctx, SelectConfig{Message: "Address", Options: options})
	if err != nil || idx < 0 || idx >= len(customer.Addresses) {
		return models.Address{}, false, err
	}
	return customer.Addresses[idx], true, nil
}

// report prints a failure for the user. Superseded fetches are not failures.
func (c *Console) report(err error) {
	if err == nil || errors.Is(err, controller.ErrSuperseded) {
		return
	}
	fmt.Fprintf(c.out, "Error: %s\n", describe(err))
}

func describe(err error) string {
	var appErr *models.AppError
	switch {
	case errors.Is(err, client.ErrConnectivity):
		return "No response received from server"
	case errors.As(err, &appErr):
		return appErr.Message
	default:
		return err.Error()
	}
}

func fieldValidator(check func(string) string) func(string) error {
	return func(s string) error {
		if msg := check(s); msg != "" {
			return errors.New(msg)
		}
		return nil
	}
}

func quitErr(err error) error {
	if errors.Is(err, ErrAborted) {
		return nil
	}
	return err
}
