package controller

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/Raymond9734/customer-admin/internal/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeGateway is an in-memory Gateway recording every call it receives
type fakeGateway struct {
	mu        sync.Mutex
	customers []models.Customer
	nextID    int64
	calls     []string
	requests  []models.PageRequest
	listCalls int

	// beforeList runs outside the lock before any list/search result is built
	beforeList func(n int)

	listErr          error
	getErr           error
	createErr        error
	updateErr        error
	deleteErr        error
	addressErr       error
	deleteAddressErr error
}

func newFakeGateway(customers ...models.Customer) *fakeGateway {
	g := &fakeGateway{nextID: 100}
	for _, c := range customers {
		c.NumAddresses = len(c.Addresses)
		g.customers = append(g.customers, c)
	}
	return g
}

func (g *fakeGateway) Calls() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.calls...)
}

func (g *fakeGateway) LastRequest() models.PageRequest {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.requests[len(g.requests)-1]
}

func (g *fakeGateway) page(call string, req models.PageRequest, match func(models.Customer) bool) (*models.Page[models.CustomerSummary], error) {
	g.mu.Lock()
	g.calls = append(g.calls, call)
	g.requests = append(g.requests, req)
	g.listCalls++
	n, hook := g.listCalls, g.beforeList
	g.mu.Unlock()

	if hook != nil {
		hook(n)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.listErr != nil {
		return nil, g.listErr
	}

	var rows []models.CustomerSummary
	for i := range g.customers {
		if match(g.customers[i]) {
			rows = append(rows, g.customers[i].Summary())
		}
	}
	total := int64(len(rows))
	start := req.Page * req.Size
	if start > len(rows) {
		start = len(rows)
	}
	end := start + req.Size
	if end > len(rows) {
		end = len(rows)
	}
	p := models.NewPage(rows[start:end], req.Page, req.Size, total)
	return &p, nil
}

func (g *fakeGateway) ListCustomers(ctx context.Context, req models.PageRequest) (*models.Page[models.CustomerSummary], error) {
	return g.page("list", req, func(models.Customer) bool { return true })
}

func (g *fakeGateway) SearchCustomers(ctx context.Context, query string, req models.PageRequest) (*models.Page[models.CustomerSummary], error) {
	q := strings.ToLower(query)
	return g.page("search:"+query, req, func(c models.Customer) bool {
		return strings.Contains(strings.ToLower(c.FirstName), q) ||
			strings.Contains(strings.ToLower(c.LastName), q) ||
			strings.Contains(strings.ToLower(c.Email), q) ||
			strings.Contains(c.Phone, query)
	})
}

func (g *fakeGateway) AdvancedSearchCustomers(ctx context.Context, filter models.AddressFilter, req models.PageRequest) (*models.Page[models.CustomerSummary], error) {
	return g.page("filter:"+filter.City+"/"+filter.State+"/"+filter.Pincode, req, func(c models.Customer) bool {
		for _, a := range c.Addresses {
			if containsFold(a.City, filter.City) && containsFold(a.State, filter.State) && strings.Contains(a.Pincode, filter.Pincode) {
				return true
			}
		}
		return false
	})
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func (g *fakeGateway) GetCustomer(ctx context.Context, id int64) (*models.Customer, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, "get")
	if g.getErr != nil {
		return nil, g.getErr
	}
	for _, c := range g.customers {
		if c.ID == id {
			c = copyCustomer(c)
			return &c, nil
		}
	}
	return nil, models.ErrCustomerNotFound(id)
}

func (g *fakeGateway) CreateCustomer(ctx context.Context, customer *models.Customer) (*models.Customer, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, "create")
	if g.createErr != nil {
		return nil, g.createErr
	}
	c := copyCustomer(*customer)
	g.nextID++
	c.ID = g.nextID
	for i := range c.Addresses {
		g.nextID++
		c.Addresses[i].ID = g.nextID
		c.Addresses[i].CustomerID = c.ID
	}
	c.NumAddresses = len(c.Addresses)
	g.customers = append(g.customers, c)
	out := copyCustomer(c)
	return &out, nil
}

func (g *fakeGateway) UpdateCustomer(ctx context.Context, customer *models.Customer) (*models.Customer, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, "update")
	if g.updateErr != nil {
		return nil, g.updateErr
	}
	for i := range g.customers {
		if g.customers[i].ID == customer.ID {
			g.customers[i].FirstName = customer.FirstName
			g.customers[i].LastName = customer.LastName
			g.customers[i].Email = customer.Email
			g.customers[i].Phone = customer.Phone
			out := copyCustomer(g.customers[i])
			return &out, nil
		}
	}
	return nil, models.ErrCustomerNotFound(customer.ID)
}

func (g *fakeGateway) DeleteCustomer(ctx context.Context, id int64) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, "delete")
	if g.deleteErr != nil {
		return g.deleteErr
	}
	for i := range g.customers {
		if g.customers[i].ID == id {
			g.customers = append(g.customers[:i], g.customers[i+1:]...)
			return nil
		}
	}
	return models.NewAppError(models.CodeDeleteError, "Customer not found")
}

func (g *fakeGateway) CreateAddress(ctx context.Context, customerID int64, address *models.Address) (*models.Address, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, "createAddress")
	if g.addressErr != nil {
		return nil, g.addressErr
	}
	for i := range g.customers {
		if g.customers[i].ID == customerID {
			a := *address
			g.nextID++
			a.ID = g.nextID
			a.CustomerID = customerID
			g.customers[i].Addresses = append(g.customers[i].Addresses, a)
			g.customers[i].NumAddresses++
			return &a, nil
		}
	}
	return nil, models.ErrCustomerNotFound(customerID)
}

func (g *fakeGateway) UpdateAddress(ctx context.Context, id int64, address *models.Address) (*models.Address, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, "updateAddress")
	if g.addressErr != nil {
		return nil, g.addressErr
	}
	for i := range g.customers {
		for j := range g.customers[i].Addresses {
			if g.customers[i].Addresses[j].ID == id {
				a := *address
				a.ID = id
				a.CustomerID = g.customers[i].ID
				g.customers[i].Addresses[j] = a
				return &a, nil
			}
		}
	}
	return nil, models.ErrAddressNotFound(id)
}

func (g *fakeGateway) DeleteAddress(ctx context.Context, id int64) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, "deleteAddress")
	if g.deleteAddressErr != nil {
		return g.deleteAddressErr
	}
	for i := range g.customers {
		addrs := g.customers[i].Addresses
		for j := range addrs {
			if addrs[j].ID == id {
				g.customers[i].Addresses = append(addrs[:j], addrs[j+1:]...)
				g.customers[i].NumAddresses--
				return nil
			}
		}
	}
	return models.NewAppError(models.CodeDeleteError, "Address not found")
}

func sampleCustomers() []models.Customer {
	return []models.Customer{
		{
			ID: 1, FirstName: "Bob", LastName: "Smith", Email: "bob@x.com", Phone: "5550000001",
			Addresses: []models.Address{{ID: 11, CustomerID: 1, Street: "9 Elm St", City: "Boston", State: "Massachusetts", Pincode: "02101", Country: "USA"}},
		},
		{
			ID: 2, FirstName: "Alice", LastName: "Jones", Email: "alice@x.com", Phone: "5550000002",
			Addresses: []models.Address{
				{ID: 21, CustomerID: 2, Street: "1 Oak Ave", City: "Ames", State: "Iowa", Pincode: "50010", Country: "USA"},
				{ID: 22, CustomerID: 2, Street: "2 Pine Rd", City: "Denver", State: "Colorado", Pincode: "80201", Country: "USA"},
			},
		},
	}
}
