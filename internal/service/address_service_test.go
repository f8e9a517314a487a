package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Raymond9734/customer-admin/internal/models"
)

func elmStreet(id, customerID int64) models.Address {
	return models.Address{ID: id, CustomerID: customerID, Street: "9 Elm St", City: "Boston", State: "Massachusetts", Pincode: "02101", Country: "USA"}
}

func TestAddressServiceCreate(t *testing.T) {
	repo := newFakeAddressRepo()
	c := newFakeCache()
	svc := NewAddressService(repo, c, testLogger())

	created, err := svc.Create(context.Background(), 7, &models.Address{ID: 55, Street: "2 Oak Ave", City: "Ames", State: "Iowa", Pincode: "50010"})
	require.NoError(t, err)

	assert.Equal(t, int64(100), created.ID, "client supplied ID is ignored")
	assert.Equal(t, int64(7), created.CustomerID)
	assert.Equal(t, "USA", created.Country)
	assert.Equal(t, []int64{7}, c.invalidated)
}

func TestAddressServiceCreateErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want models.ErrorCode
	}{
		{"unknown customer", &pq.Error{Code: "23503", Constraint: "addresses_customer_id_fkey"}, models.CodeCustomerNotFound},
		{"duplicate address", &pq.Error{Code: "23505", Constraint: "uk_address_hash"}, models.CodeDuplicateAddress},
		{"other", errors.New("timeout"), models.CodeInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeAddressRepo()
			repo.createErr = tt.err
			svc := NewAddressService(repo, newFakeCache(), testLogger())

			_, err := svc.Create(context.Background(), 9, &models.Address{Street: "x"})
			assert.Equal(t, tt.want, models.CodeOf(err))
		})
	}
}

func TestAddressServiceUpdate(t *testing.T) {
	repo := newFakeAddressRepo(elmStreet(10, 7))
	c := newFakeCache()
	svc := NewAddressService(repo, c, testLogger())

	changed := elmStreet(0, 0)
	changed.Street = "10 Elm St"
	updated, err := svc.Update(context.Background(), 10, &changed)
	require.NoError(t, err)

	assert.Equal(t, int64(10), updated.ID)
	assert.Equal(t, int64(7), updated.CustomerID)
	assert.Equal(t, "10 Elm St", repo.addresses[10].Street)
	assert.Equal(t, []int64{7}, c.invalidated)

	_, err = svc.Update(context.Background(), 99, &changed)
	assert.Equal(t, models.CodeAddressNotFound, models.CodeOf(err))
}

func TestAddressServiceUpdateDuplicate(t *testing.T) {
	repo := newFakeAddressRepo(elmStreet(10, 7))
	repo.updateErr = &pq.Error{Code: "23505", Constraint: "uk_address_hash"}
	svc := NewAddressService(repo, newFakeCache(), testLogger())

	_, err := svc.Update(context.Background(), 10, &models.Address{Street: "x"})
	assert.Equal(t, models.CodeDuplicateAddress, models.CodeOf(err))
}

func TestAddressServiceDeleteRefusesLastAddress(t *testing.T) {
	repo := newFakeAddressRepo(elmStreet(10, 7))
	svc := NewAddressService(repo, newFakeCache(), testLogger())

	err := svc.Delete(context.Background(), 10)
	assert.Equal(t, models.CodeDeleteError, models.CodeOf(err))
	assert.True(t, errors.Is(err, models.ErrConflict))
	assert.Empty(t, repo.deleted)
	assert.Contains(t, repo.addresses, int64(10))
}

func TestAddressServiceDelete(t *testing.T) {
	second := elmStreet(11, 7)
	second.Street = "11 Elm St"
	repo := newFakeAddressRepo(elmStreet(10, 7), second)
	c := newFakeCache()
	svc := NewAddressService(repo, c, testLogger())

	require.NoError(t, svc.Delete(context.Background(), 10))
	assert.Equal(t, []int64{10}, repo.deleted)
	assert.Equal(t, []int64{7}, c.invalidated)

	err := svc.Delete(context.Background(), 10)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeDeleteError, appErr.Code)
	assert.Equal(t, "Failed to delete address: Address not found with ID: 10", appErr.Message)
}

func TestAddressServiceConcurrentDeletesKeepOneAddress(t *testing.T) {
	second := elmStreet(11, 7)
	second.Street = "11 Elm St"
	repo := newFakeAddressRepo(elmStreet(10, 7), second)
	svc := NewAddressService(repo, newFakeCache(), testLogger())

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, id := range []int64{10, 11} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = svc.Delete(context.Background(), id)
		}()
	}
	wg.Wait()

	failed := 0
	for _, err := range errs {
		if err != nil {
			failed++
			assert.Equal(t, models.CodeDeleteError, models.CodeOf(err))
			assert.ErrorIs(t, err, models.ErrConflict)
		}
	}
	assert.Equal(t, 1, failed)

	remaining, err := repo.ListByCustomer(context.Background(), 7)
	require.NoError(t, err)
	assert.Len(t, remaining, 1)
}

func TestAddressServiceListByCustomer(t *testing.T) {
	repo := newFakeAddressRepo(elmStreet(10, 7), elmStreet(20, 8))
	svc := NewAddressService(repo, newFakeCache(), testLogger())

	addresses, err := svc.ListByCustomer(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, addresses, 1)
	assert.Equal(t, int64(10), addresses[0].ID)

	got, err := svc.GetByID(context.Background(), 20)
	require.NoError(t, err)
	assert.Equal(t, int64(8), got.CustomerID)
}
