package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Raymond9734/customer-admin/internal/models"
)

// AddressRepository defines the interface for address data access
type AddressRepository interface {
	Create(ctx context.Context, address *models.Address) error
	GetByID(ctx context.Context, id int64) (*models.Address, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]models.Address, error)
	Update(ctx context.Context, address *models.Address) error
	Delete(ctx context.Context, id int64) error
}

// queryer is satisfied by both *sql.DB and *sql.Tx
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// addressRepository implements AddressRepository using PostgreSQL
type addressRepository struct {
	db *sql.DB
}

// NewAddressRepository creates a new address repository
func NewAddressRepository(db *sql.DB) AddressRepository {
	return &addressRepository{db: db}
}

const addressColumns = `id, customer_id, street, street2, city, state, pincode, country`

// Create inserts an address for address.CustomerID
func (r *addressRepository) Create(ctx context.Context, address *models.Address) error {
	return insertAddress(ctx, r.db, address)
}

// GetByID retrieves an address by ID
func (r *addressRepository) GetByID(ctx context.Context, id int64) (*models.Address, error) {
	query := `SELECT ` + addressColumns + ` FROM addresses WHERE id = $1`

	address := &models.Address{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&address.ID,
		&address.CustomerID,
		&address.Street,
		&address.Street2,
		&address.City,
		&address.State,
		&address.Pincode,
		&address.Country,
	)

	if err == sql.ErrNoRows {
		return nil, models.ErrAddressNotFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get address: %w", err)
	}

	return address, nil
}

// ListByCustomer retrieves all addresses of a customer in insertion order
func (r *addressRepository) ListByCustomer(ctx context.Context, customerID int64) ([]models.Address, error) {
	return listAddresses(ctx, r.db, customerID)
}

// Update replaces every attribute of an address and refreshes its hash
func (r *addressRepository) Update(ctx context.Context, address *models.Address) error {
	query := `
		UPDATE addresses
		SET street = $1, street2 = $2, city = $3, state = $4, pincode = $5, country = $6, address_hash = $7
		WHERE id = $8`

	result, err := r.db.ExecContext(
		ctx,
		query,
		address.Street,
		address.Street2,
		address.City,
		address.State,
		address.Pincode,
		address.Country,
		address.Hash(),
		address.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update address: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return models.ErrAddressNotFound(address.ID)
	}

	return nil
}

// Delete removes an address unless it is the last one its customer owns.
// The owning customer row is locked for the count and the delete, so
// concurrent deletes on one customer are serialized.
func (r *addressRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		SELECT c.id
		FROM customers c
		JOIN addresses a ON a.customer_id = c.id
		WHERE a.id = $1
		FOR UPDATE OF c`

	var customerID int64
	err = tx.QueryRowContext(ctx, query, id).Scan(&customerID)
	if err == sql.ErrNoRows {
		return models.ErrAddressNotFound(id)
	}
	if err != nil {
		return fmt.Errorf("failed to lock customer: %w", err)
	}

	count, err := countAddresses(ctx, tx, customerID)
	if err != nil {
		return err
	}
	if count <= 1 {
		return fmt.Errorf("%w: customer %d must keep at least one address", models.ErrConflict, customerID)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM addresses WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete address: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func countAddresses(ctx context.Context, q queryer, customerID int64) (int, error) {
	var count int
	err := q.QueryRowContext(ctx, `SELECT COUNT(*) FROM addresses WHERE customer_id = $1`, customerID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count addresses: %w", err)
	}
	return count, nil
}

func insertAddress(ctx context.Context, q queryer, address *models.Address) error {
	if address.Country == "" {
		address.Country = models.DefaultCountry
	}

	query := `
		INSERT INTO addresses (customer_id, street, street2, city, state, pincode, country, address_hash)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	err := q.QueryRowContext(
		ctx,
		query,
		address.CustomerID,
		address.Street,
		address.Street2,
		address.City,
		address.State,
		address.Pincode,
		address.Country,
		address.Hash(),
	).Scan(&address.ID)
	if err != nil {
		return fmt.Errorf("failed to create address: %w", err)
	}

	return nil
}

func listAddresses(ctx context.Context, q queryer, customerID int64) ([]models.Address, error) {
	query := `SELECT ` + addressColumns + ` FROM addresses WHERE customer_id = $1 ORDER BY id`

	rows, err := q.QueryContext(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list addresses: %w", err)
	}
	defer rows.Close()

	addresses := []models.Address{}
	for rows.Next() {
		var a models.Address
		if err := rows.Scan(
			&a.ID,
			&a.CustomerID,
			&a.Street,
			&a.Street2,
			&a.City,
			&a.State,
			&a.Pincode,
			&a.Country,
		); err != nil {
			return nil, fmt.Errorf("failed to scan address: %w", err)
		}
		addresses = append(addresses, a)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating addresses: %w", err)
	}

	return addresses, nil
}
