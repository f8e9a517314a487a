package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Raymond9734/customer-admin/internal/models"
)

// CustomerRepository defines the interface for customer data access
type CustomerRepository interface {
	Create(ctx context.Context, customer *models.Customer) error
	GetByID(ctx context.Context, id int64) (*models.Customer, error)
	List(ctx context.Context, req models.PageRequest) ([]models.CustomerSummary, int64, error)
	Search(ctx context.Context, query string, req models.PageRequest) ([]models.CustomerSummary, int64, error)
	SearchByAddress(ctx context.Context, filter models.AddressFilter, req models.PageRequest) ([]models.CustomerSummary, int64, error)
	Update(ctx context.Context, customer *models.Customer) error
	Delete(ctx context.Context, id int64) error
}

// customerRepository implements CustomerRepository using PostgreSQL
type customerRepository struct {
	db *sql.DB
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *sql.DB) CustomerRepository {
	return &customerRepository{db: db}
}

const summaryColumns = `c.id, c.first_name, c.last_name, c.email, c.phone, c.created_at,
	(SELECT COUNT(*) FROM addresses a WHERE a.customer_id = c.id) AS num_addresses`

// sortColumns whitelists the columns a listing may be ordered by
var sortColumns = map[models.SortField]string{
	models.SortByFirstName: "c.first_name",
	models.SortByLastName:  "c.last_name",
	models.SortByEmail:     "c.email",
	models.SortByCreatedAt: "c.created_at",
}

// Create inserts a customer and its addresses in one transaction
func (r *customerRepository) Create(ctx context.Context, customer *models.Customer) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO customers (first_name, last_name, email, phone)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err = tx.QueryRowContext(
		ctx,
		query,
		customer.FirstName,
		customer.LastName,
		customer.Email,
		customer.Phone,
	).Scan(&customer.ID, &customer.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}

	for i := range customer.Addresses {
		addr := &customer.Addresses[i]
		addr.CustomerID = customer.ID
		if err := insertAddress(ctx, tx, addr); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit customer: %w", err)
	}

	customer.NumAddresses = len(customer.Addresses)
	return nil
}

// GetByID retrieves a customer together with its addresses
func (r *customerRepository) GetByID(ctx context.Context, id int64) (*models.Customer, error) {
	query := `
		SELECT id, first_name, last_name, email, phone, created_at
		FROM customers
		WHERE id = $1`

	customer := &models.Customer{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&customer.ID,
		&customer.FirstName,
		&customer.LastName,
		&customer.Email,
		&customer.Phone,
		&customer.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, models.ErrCustomerNotFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}

	addresses, err := listAddresses(ctx, r.db, id)
	if err != nil {
		return nil, err
	}
	customer.Addresses = addresses
	customer.NumAddresses = len(addresses)

	return customer, nil
}

// List retrieves one page of customers
func (r *customerRepository) List(ctx context.Context, req models.PageRequest) ([]models.CustomerSummary, int64, error) {
	return r.page(ctx, "", nil, req)
}

// Search matches query as a case-insensitive substring of first name, last
// name or email, or as a substring of the phone number
func (r *customerRepository) Search(ctx context.Context, query string, req models.PageRequest) ([]models.CustomerSummary, int64, error) {
	where := ` WHERE (c.first_name ILIKE $1 OR c.last_name ILIKE $1 OR c.email ILIKE $1 OR c.phone LIKE $1)`
	return r.page(ctx, where, []interface{}{likePattern(query)}, req)
}

// SearchByAddress returns customers owning at least one address matching
// every non-empty criterion of filter
func (r *customerRepository) SearchByAddress(ctx context.Context, filter models.AddressFilter, req models.PageRequest) ([]models.CustomerSummary, int64, error) {
	conds := []string{"a.customer_id = c.id"}
	args := []interface{}{}
	argPos := 1

	if filter.City != "" {
		conds = append(conds, fmt.Sprintf("a.city ILIKE $%d", argPos))
		args = append(args, likePattern(filter.City))
		argPos++
	}

	if filter.State != "" {
		conds = append(conds, fmt.Sprintf("a.state ILIKE $%d", argPos))
		args = append(args, likePattern(filter.State))
		argPos++
	}

	if filter.Pincode != "" {
		conds = append(conds, fmt.Sprintf("a.pincode LIKE $%d", argPos))
		args = append(args, likePattern(filter.Pincode))
	}

	where := " WHERE EXISTS (SELECT 1 FROM addresses a WHERE " + strings.Join(conds, " AND ") + ")"
	return r.page(ctx, where, args, req)
}

// page runs the count and the paged select for the given WHERE clause
func (r *customerRepository) page(ctx context.Context, where string, args []interface{}, req models.PageRequest) ([]models.CustomerSummary, int64, error) {
	req.ValidateAndSetDefaults()

	countQuery := `SELECT COUNT(*) FROM customers c` + where

	var totalCount int64
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count customers: %w", err)
	}

	argPos := len(args) + 1
	query := `SELECT ` + summaryColumns + ` FROM customers c` + where +
		fmt.Sprintf(" ORDER BY %s %s, c.id LIMIT $%d OFFSET $%d",
			sortColumns[req.SortBy], strings.ToUpper(string(req.SortDir)), argPos, argPos+1)
	args = append(args, req.Size, req.Offset())

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list customers: %w", err)
	}
	defer rows.Close()

	customers := []models.CustomerSummary{}
	for rows.Next() {
		var c models.CustomerSummary
		err := rows.Scan(
			&c.ID,
			&c.FirstName,
			&c.LastName,
			&c.Email,
			&c.Phone,
			&c.CreatedAt,
			&c.NumAddresses,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, c)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating customers: %w", err)
	}

	return customers, totalCount, nil
}

// Update changes the name, email and phone of an existing customer
func (r *customerRepository) Update(ctx context.Context, customer *models.Customer) error {
	query := `
		UPDATE customers
		SET first_name = $1, last_name = $2, email = $3, phone = $4
		WHERE id = $5`

	result, err := r.db.ExecContext(
		ctx,
		query,
		customer.FirstName,
		customer.LastName,
		customer.Email,
		customer.Phone,
		customer.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update customer: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return models.ErrCustomerNotFound(customer.ID)
	}

	return nil
}

// Delete removes a customer; its addresses go with it
func (r *customerRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return models.ErrCustomerNotFound(id)
	}

	return nil
}

// likePattern wraps s for a substring LIKE match, escaping wildcards
func likePattern(s string) string {
	s = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
	return "%" + s + "%"
}
