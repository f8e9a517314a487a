package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Raymond9734/customer-admin/internal/models"
)

// ListAddresses fetches every address of a customer
func (c *Client) ListAddresses(ctx context.Context, customerID int64) ([]models.Address, error) {
	data, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/addresses/%d", customerID), nil, nil)
	if err != nil {
		return nil, err
	}
	out, err := decode[[]models.Address](data)
	if err != nil {
		return nil, err
	}
	return *out, nil
}

// GetAddress fetches one address
func (c *Client) GetAddress(ctx context.Context, id int64) (*models.Address, error) {
	data, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/addresses/getAddress/%d", id), nil, nil)
	if err != nil {
		return nil, err
	}
	return addressFrom(data)
}

// CreateAddress adds an address to a customer
func (c *Client) CreateAddress(ctx context.Context, customerID int64, address *models.Address) (*models.Address, error) {
	data, err := c.do(ctx, http.MethodPost, fmt.Sprintf("/addresses/%d", customerID), nil, address)
	if err != nil {
		return nil, err
	}
	return addressFrom(data)
}

// UpdateAddress replaces every attribute of an address
func (c *Client) UpdateAddress(ctx context.Context, id int64, address *models.Address) (*models.Address, error) {
	data, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/addresses/%d", id), nil, address)
	if err != nil {
		return nil, err
	}
	return addressFrom(data)
}

// DeleteAddress removes an address
func (c *Client) DeleteAddress(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/addresses/%d", id), nil, nil)
	return err
}

func addressFrom(data []byte) (*models.Address, error) {
	resp, err := decode[models.AddressResponse](data)
	if err != nil {
		return nil, err
	}
	return &resp.Address, nil
}
