package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/Raymond9734/customer-admin/internal/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeCustomerRepo struct {
	customers map[int64]*models.Customer
	nextID    int64
	createErr error
	updateErr error
	deleteErr error
	lastReq   models.PageRequest
	lastQuery string
	lastAddrF models.AddressFilter
	getCalls  int
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: map[int64]*models.Customer{}, nextID: 1}
}

func (r *fakeCustomerRepo) summaries() []models.CustomerSummary {
	out := []models.CustomerSummary{}
	for _, c := range r.customers {
		out = append(out, c.Summary())
	}
	return out
}

func (r *fakeCustomerRepo) Create(ctx context.Context, customer *models.Customer) error {
	if r.createErr != nil {
		return r.createErr
	}
	customer.ID = r.nextID
	r.nextID++
	for i := range customer.Addresses {
		customer.Addresses[i].CustomerID = customer.ID
	}
	customer.NumAddresses = len(customer.Addresses)
	stored := *customer
	r.customers[customer.ID] = &stored
	return nil
}

func (r *fakeCustomerRepo) GetByID(ctx context.Context, id int64) (*models.Customer, error) {
	r.getCalls++
	c, ok := r.customers[id]
	if !ok {
		return nil, models.ErrCustomerNotFound(id)
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCustomerRepo) List(ctx context.Context, req models.PageRequest) ([]models.CustomerSummary, int64, error) {
	r.lastReq = req
	rows := r.summaries()
	return rows, int64(len(rows)), nil
}

func (r *fakeCustomerRepo) Search(ctx context.Context, query string, req models.PageRequest) ([]models.CustomerSummary, int64, error) {
	r.lastReq = req
	r.lastQuery = query
	return []models.CustomerSummary{}, 0, nil
}

func (r *fakeCustomerRepo) SearchByAddress(ctx context.Context, filter models.AddressFilter, req models.PageRequest) ([]models.CustomerSummary, int64, error) {
	r.lastReq = req
	r.lastAddrF = filter
	return []models.CustomerSummary{}, 0, nil
}

func (r *fakeCustomerRepo) Update(ctx context.Context, customer *models.Customer) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	c, ok := r.customers[customer.ID]
	if !ok {
		return models.ErrCustomerNotFound(customer.ID)
	}
	c.FirstName, c.LastName, c.Email, c.Phone = customer.FirstName, customer.LastName, customer.Email, customer.Phone
	return nil
}

func (r *fakeCustomerRepo) Delete(ctx context.Context, id int64) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	if _, ok := r.customers[id]; !ok {
		return models.ErrCustomerNotFound(id)
	}
	delete(r.customers, id)
	return nil
}

// fakeAddressRepo serializes every call like the row lock the PostgreSQL
// repository takes on delete
type fakeAddressRepo struct {
	mu        sync.Mutex
	addresses map[int64]*models.Address
	nextID    int64
	createErr error
	updateErr error
	deleted   []int64
}

func newFakeAddressRepo(addrs ...models.Address) *fakeAddressRepo {
	r := &fakeAddressRepo{addresses: map[int64]*models.Address{}, nextID: 100}
	for i := range addrs {
		a := addrs[i]
		r.addresses[a.ID] = &a
	}
	return r
}

func (r *fakeAddressRepo) Create(ctx context.Context, address *models.Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	address.ID = r.nextID
	r.nextID++
	a := *address
	r.addresses[a.ID] = &a
	return nil
}

func (r *fakeAddressRepo) GetByID(ctx context.Context, id int64) (*models.Address, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.addresses[id]
	if !ok {
		return nil, models.ErrAddressNotFound(id)
	}
	cp := *a
	return &cp, nil
}

func (r *fakeAddressRepo) ListByCustomer(ctx context.Context, customerID int64) ([]models.Address, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.listLocked(customerID), nil
}

func (r *fakeAddressRepo) listLocked(customerID int64) []models.Address {
	out := []models.Address{}
	for _, a := range r.addresses {
		if a.CustomerID == customerID {
			out = append(out, *a)
		}
	}
	return out
}

func (r *fakeAddressRepo) Update(ctx context.Context, address *models.Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.addresses[address.ID]; !ok {
		return models.ErrAddressNotFound(address.ID)
	}
	a := *address
	r.addresses[a.ID] = &a
	return nil
}

func (r *fakeAddressRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.addresses[id]
	if !ok {
		return models.ErrAddressNotFound(id)
	}
	if len(r.listLocked(a.CustomerID)) <= 1 {
		return fmt.Errorf("%w: customer %d must keep at least one address", models.ErrConflict, a.CustomerID)
	}
	delete(r.addresses, id)
	r.deleted = append(r.deleted, id)
	return nil
}

type fakeCache struct {
	mu          sync.Mutex
	entries     map[int64]models.Customer
	invalidated []int64
	getErr      error
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[int64]models.Customer{}}
}

func (c *fakeCache) Get(ctx context.Context, id int64) (*models.Customer, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, c.getErr
	}
	if e, ok := c.entries[id]; ok {
		return &e, nil
	}
	return nil, nil
}

func (c *fakeCache) Set(ctx context.Context, customer *models.Customer) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[customer.ID] = *customer
	return nil
}

func (c *fakeCache) Invalidate(ctx context.Context, id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, id)
	c.invalidated = append(c.invalidated, id)
	return nil
}

func (c *fakeCache) Health(ctx context.Context) error { return nil }
func (c *fakeCache) Close() error                     { return nil }
