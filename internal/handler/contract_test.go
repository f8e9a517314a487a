package handler

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Raymond9734/customer-admin/internal/client"
	"github.com/Raymond9734/customer-admin/internal/models"
)

// TestClientAgainstRouter drives the HTTP gateway against the real router
func TestClientAgainstRouter(t *testing.T) {
	customers := newFakeCustomerService()
	addresses := newFakeAddressService()
	server := httptest.NewServer(newTestRouter(customers, addresses))
	defer server.Close()

	api, err := client.New(client.Config{BaseURL: server.URL + "/api"}, testLogger())
	require.NoError(t, err)
	ctx := context.Background()

	created, err := api.CreateCustomer(ctx, &models.Customer{
		FirstName: "Jane", LastName: "Doe", Email: "jane@x.com", Phone: "5551234567",
		Addresses: []models.Address{{Street: "1 Main St", City: "Ames", State: "Iowa", Pincode: "50010", Country: "USA"}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)

	page, err := api.ListCustomers(ctx, models.PageRequest{Page: 0, Size: 10, SortBy: models.SortByLastName, SortDir: models.SortAsc})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.TotalElements)
	require.Len(t, page.Content, 1)
	assert.Equal(t, "jane@x.com", page.Content[0].Email)

	_, err = api.GetCustomer(ctx, 99)
	require.Error(t, err)
	assert.Equal(t, models.CodeCustomerNotFound, models.CodeOf(err))

	_, err = api.CreateCustomer(ctx, &models.Customer{FirstName: "J4ne"})
	require.Error(t, err)
	assert.Equal(t, models.CodeValidationError, models.CodeOf(err))

	addr, err := api.CreateAddress(ctx, created.ID, &models.Address{Street: "2 Oak Ave", City: "Ames", State: "Iowa", Pincode: "50011"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, addr.CustomerID)

	list, err := api.ListAddresses(ctx, created.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, api.DeleteCustomer(ctx, created.ID))
}
