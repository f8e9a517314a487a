package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/Raymond9734/customer-admin/internal/models"
)

// ListCustomers fetches one sorted page of all customers
func (c *Client) ListCustomers(ctx context.Context, req models.PageRequest) (*models.Page[models.CustomerSummary], error) {
	data, err := c.do(ctx, http.MethodGet, "/customers", pageQuery(req), nil)
	if err != nil {
		return nil, err
	}
	return decode[models.Page[models.CustomerSummary]](data)
}

// SearchCustomers fetches one page of customers matching free text against
// name, email or phone
func (c *Client) SearchCustomers(ctx context.Context, query string, req models.PageRequest) (*models.Page[models.CustomerSummary], error) {
	q := pageQuery(req)
	q.Set("query", query)

	data, err := c.do(ctx, http.MethodGet, "/customers/search", q, nil)
	if err != nil {
		return nil, err
	}
	return decode[models.Page[models.CustomerSummary]](data)
}

// AdvancedSearchCustomers fetches one page of customers having an address
// that matches every non-empty filter criterion
func (c *Client) AdvancedSearchCustomers(ctx context.Context, filter models.AddressFilter, req models.PageRequest) (*models.Page[models.CustomerSummary], error) {
	q := pageQuery(req)
	setIfNotEmpty(q, "city", filter.City)
	setIfNotEmpty(q, "state", filter.State)
	setIfNotEmpty(q, "pincode", filter.Pincode)

	data, err := c.do(ctx, http.MethodGet, "/customers/search/advanced", q, nil)
	if err != nil {
		return nil, err
	}
	return decode[models.Page[models.CustomerSummary]](data)
}

// GetCustomer fetches one customer with its addresses
func (c *Client) GetCustomer(ctx context.Context, id int64) (*models.Customer, error) {
	data, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/customers/%d", id), nil, nil)
	if err != nil {
		return nil, err
	}
	return customerFrom(data)
}

// CreateCustomer creates a customer together with its addresses
func (c *Client) CreateCustomer(ctx context.Context, customer *models.Customer) (*models.Customer, error) {
	data, err := c.do(ctx, http.MethodPost, "/customers", nil, customer)
	if err != nil {
		return nil, err
	}
	return customerFrom(data)
}

// UpdateCustomer replaces the customer's name, email and phone
func (c *Client) UpdateCustomer(ctx context.Context, customer *models.Customer) (*models.Customer, error) {
	if customer.ID == 0 {
		return nil, fmt.Errorf("customer ID is required for update")
	}
	data, err := c.do(ctx, http.MethodPut, "/customers", nil, customer)
	if err != nil {
		return nil, err
	}
	return customerFrom(data)
}

// DeleteCustomer removes a customer and all of its addresses
func (c *Client) DeleteCustomer(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/customers/%d", id), nil, nil)
	return err
}

func customerFrom(data []byte) (*models.Customer, error) {
	resp, err := decode[models.CustomerResponse](data)
	if err != nil {
		return nil, err
	}
	return &resp.Customer, nil
}

func setIfNotEmpty(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}
