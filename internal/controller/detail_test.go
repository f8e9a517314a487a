package controller

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Raymond9734/customer-admin/internal/models"
	"github.com/Raymond9734/customer-admin/internal/validation"
)

func TestCustomerDetailLoad(t *testing.T) {
	gw := newFakeGateway(sampleCustomers()...)
	detail := NewCustomerDetail(gw, testLogger(), nil)

	state := detail.State()
	assert.Equal(t, StatusIdle, state.Status)
	assert.Nil(t, state.Customer)

	require.NoError(t, detail.Load(context.Background(), 2))
	state = detail.State()
	assert.Equal(t, StatusSuccess, state.Status)
	require.NotNil(t, state.Customer)
	assert.Len(t, state.Customer.Addresses, 2)
	assert.True(t, state.CanDeleteAddress)
}

func TestCustomerDetailLoadNotFound(t *testing.T) {
	gw := newFakeGateway(sampleCustomers()...)
	detail := NewCustomerDetail(gw, testLogger(), nil)

	err := detail.Load(context.Background(), 99)
	require.Error(t, err)
	assert.Equal(t, models.CodeCustomerNotFound, models.CodeOf(err))

	state := detail.State()
	assert.Equal(t, StatusError, state.Status)
	assert.Nil(t, state.Customer)
	assert.Equal(t, "Customer not found with ID: 99", state.Err.Error())
}

func TestCustomerDetailReloadWithoutCustomer(t *testing.T) {
	detail := NewCustomerDetail(newFakeGateway(), testLogger(), nil)
	assert.ErrorIs(t, detail.Reload(context.Background()), ErrNoCustomer)
	assert.ErrorIs(t, detail.OpenAddressForm(nil), ErrNoCustomer)
	assert.ErrorIs(t, detail.EditCustomer(), ErrNoCustomer)
}

func TestCustomerDetailLastAddressCannotBeDeleted(t *testing.T) {
	gw := newFakeGateway(sampleCustomers()...)
	detail := NewCustomerDetail(gw, testLogger(), nil)
	ctx := context.Background()
	require.NoError(t, detail.Load(ctx, 1))

	assert.False(t, detail.CanDeleteAddress())

	// without a pending confirmation
	require.NoError(t, detail.ConfirmDeleteAddress(ctx))

	// with the confirmation open
	addr := detail.State().Customer.Addresses[0]
	detail.RequestDeleteAddress(addr)
	state := detail.State()
	require.NotNil(t, state.PendingDelete)
	assert.False(t, state.CanConfirmDelete())

	assert.ErrorIs(t, detail.ConfirmDeleteAddress(ctx), ErrLastAddress)
	assert.Len(t, detail.State().Customer.Addresses, 1)
	assert.Equal(t, []string{"get"}, gw.Calls())
}

func TestCustomerDetailDeleteAddress(t *testing.T) {
	gw := newFakeGateway(sampleCustomers()...)
	changed := 0
	detail := NewCustomerDetail(gw, testLogger(), func(context.Context) { changed++ })
	ctx := context.Background()
	require.NoError(t, detail.Load(ctx, 2))

	detail.RequestDeleteAddress(detail.State().Customer.Addresses[1])
	assert.True(t, detail.State().CanConfirmDelete())

	require.NoError(t, detail.ConfirmDeleteAddress(ctx))
	state := detail.State()
	assert.Nil(t, state.PendingDelete)
	assert.Len(t, state.Customer.Addresses, 1)
	assert.False(t, state.CanDeleteAddress)
	assert.Equal(t, 1, changed)
	assert.Equal(t, []string{"get", "deleteAddress", "get"}, gw.Calls())
}

func TestCustomerDetailDeleteAddressFailure(t *testing.T) {
	gw := newFakeGateway(sampleCustomers()...)
	gw.deleteAddressErr = models.NewAppError(models.CodeDeleteError, "Cannot delete the only address")
	detail := NewCustomerDetail(gw, testLogger(), nil)
	ctx := context.Background()
	require.NoError(t, detail.Load(ctx, 2))

	detail.RequestDeleteAddress(detail.State().Customer.Addresses[0])
	require.Error(t, detail.ConfirmDeleteAddress(ctx))

	state := detail.State()
	assert.NotNil(t, state.PendingDelete)
	assert.Equal(t, "Cannot delete the only address", state.ActionErr.Error())
	assert.Len(t, state.Customer.Addresses, 2)

	detail.CancelDeleteAddress()
	assert.Nil(t, detail.State().PendingDelete)
}

func TestCustomerDetailAddAddressReloads(t *testing.T) {
	gw := newFakeGateway(sampleCustomers()...)
	changed := 0
	detail := NewCustomerDetail(gw, testLogger(), func(context.Context) { changed++ })
	ctx := context.Background()
	require.NoError(t, detail.Load(ctx, 1))

	require.NoError(t, detail.OpenAddressForm(nil))
	form := detail.AddressForm()
	assert.Equal(t, int64(1), form.State().CustomerID)
	form.SetField(validation.AddressStreet, "7 Cedar Ct")
	form.SetField(validation.AddressCity, "Salem")
	form.SetField(validation.AddressState, "Oregon")
	form.SetField(validation.AddressPincode, "97301")

	_, err := form.Submit(ctx)
	require.NoError(t, err)

	state := detail.State()
	assert.Len(t, state.Customer.Addresses, 2)
	assert.True(t, state.CanDeleteAddress)
	assert.Equal(t, 1, changed)
}

func TestCustomerDetailEditCustomer(t *testing.T) {
	gw := newFakeGateway(sampleCustomers()...)
	detail := NewCustomerDetail(gw, testLogger(), nil)
	ctx := context.Background()
	require.NoError(t, detail.Load(ctx, 1))

	require.NoError(t, detail.EditCustomer())
	form := detail.CustomerForm()
	assert.Equal(t, FormEdit, form.State().Mode)
	form.SetField(validation.CustomerLastName, "Smythe")

	_, err := form.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Smythe", detail.State().Customer.LastName)
}

func TestCustomerDetailDiscardsStaleLoad(t *testing.T) {
	gw := &blockingDetailGateway{
		fakeGateway: newFakeGateway(sampleCustomers()...),
		started:     make(chan struct{}),
		release:     make(chan struct{}),
	}
	detail := NewCustomerDetail(gw, testLogger(), nil)
	ctx := context.Background()

	errCh := make(chan error, 1)
	go func() { errCh <- detail.Load(ctx, 1) }()
	<-gw.started

	require.NoError(t, detail.Load(ctx, 2))
	close(gw.release)

	assert.True(t, errors.Is(<-errCh, ErrSuperseded))
	assert.Equal(t, int64(2), detail.State().Customer.ID)
}

func TestCustomerDetailClear(t *testing.T) {
	detail := NewCustomerDetail(newFakeGateway(sampleCustomers()...), testLogger(), nil)
	require.NoError(t, detail.Load(context.Background(), 1))

	detail.Clear()
	state := detail.State()
	assert.Equal(t, StatusIdle, state.Status)
	assert.Nil(t, state.Customer)
	assert.False(t, state.CanDeleteAddress)
}

// blockingDetailGateway holds the load of customer 1 until released
type blockingDetailGateway struct {
	*fakeGateway
	started chan struct{}
	release chan struct{}
}

func (g *blockingDetailGateway) GetCustomer(ctx context.Context, id int64) (*models.Customer, error) {
	if id == 1 {
		close(g.started)
		<-g.release
	}
	return g.fakeGateway.GetCustomer(ctx, id)
}
