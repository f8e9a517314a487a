package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Raymond9734/customer-admin/internal/cache"
	"github.com/Raymond9734/customer-admin/internal/models"
	"github.com/Raymond9734/customer-admin/internal/repository"
)

// CustomerService handles customer business logic
type CustomerService interface {
	List(ctx context.Context, req models.PageRequest) (*models.Page[models.CustomerSummary], error)
	Search(ctx context.Context, query string, req models.PageRequest) (*models.Page[models.CustomerSummary], error)
	AdvancedSearch(ctx context.Context, filter models.AddressFilter, req models.PageRequest) (*models.Page[models.CustomerSummary], error)
	GetByID(ctx context.Context, id int64) (*models.Customer, error)
	Create(ctx context.Context, customer *models.Customer) (*models.Customer, error)
	Update(ctx context.Context, customer *models.Customer) (*models.Customer, error)
	Delete(ctx context.Context, id int64) error
}

type customerService struct {
	customerRepo repository.CustomerRepository
	cache        cache.CustomerCache
	logger       *slog.Logger
}

// NewCustomerService creates a new customer service
func NewCustomerService(
	customerRepo repository.CustomerRepository,
	customerCache cache.CustomerCache,
	logger *slog.Logger,
) CustomerService {
	return &customerService{
		customerRepo: customerRepo,
		cache:        customerCache,
		logger:       logger,
	}
}

// List retrieves customers with pagination
func (s *customerService) List(ctx context.Context, req models.PageRequest) (*models.Page[models.CustomerSummary], error) {
	req.ValidateAndSetDefaults()

	customers, total, err := s.customerRepo.List(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}

	page := models.NewPage(customers, req.Page, req.Size, total)
	return &page, nil
}

// Search retrieves customers matching free text. Blank text lists everyone.
func (s *customerService) Search(ctx context.Context, query string, req models.PageRequest) (*models.Page[models.CustomerSummary], error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.List(ctx, req)
	}
	req.ValidateAndSetDefaults()

	customers, total, err := s.customerRepo.Search(ctx, query, req)
	if err != nil {
		return nil, fmt.Errorf("failed to search customers: %w", err)
	}

	page := models.NewPage(customers, req.Page, req.Size, total)
	return &page, nil
}

// AdvancedSearch retrieves customers by address attributes. An empty filter
// lists everyone.
func (s *customerService) AdvancedSearch(ctx context.Context, filter models.AddressFilter, req models.PageRequest) (*models.Page[models.CustomerSummary], error) {
	filter = models.AddressFilter{
		City:    strings.TrimSpace(filter.City),
		State:   strings.TrimSpace(filter.State),
		Pincode: strings.TrimSpace(filter.Pincode),
	}
	if filter.IsEmpty() {
		return s.List(ctx, req)
	}
	req.ValidateAndSetDefaults()

	customers, total, err := s.customerRepo.SearchByAddress(ctx, filter, req)
	if err != nil {
		return nil, fmt.Errorf("failed to search customers by address: %w", err)
	}

	page := models.NewPage(customers, req.Page, req.Size, total)
	return &page, nil
}

// GetByID retrieves a customer with its addresses, consulting the cache first
func (s *customerService) GetByID(ctx context.Context, id int64) (*models.Customer, error) {
	cached, err := s.cache.Get(ctx, id)
	if err != nil {
		s.logger.Warn("customer cache read failed",
			slog.Int64("customer_id", id),
			slog.String("error", err.Error()),
		)
	}
	if cached != nil {
		return cached, nil
	}

	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, customer); err != nil {
		s.logger.Warn("customer cache write failed",
			slog.Int64("customer_id", id),
			slog.String("error", err.Error()),
		)
	}

	return customer, nil
}

// Create creates a new customer together with its addresses
func (s *customerService) Create(ctx context.Context, customer *models.Customer) (*models.Customer, error) {
	if len(customer.Addresses) == 0 {
		return nil, models.ErrInvalidInput("At least one address is required")
	}

	customer.ID = 0
	for i := range customer.Addresses {
		customer.Addresses[i].ID = 0
		if customer.Addresses[i].Country == "" {
			customer.Addresses[i].Country = models.DefaultCountry
		}
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		s.logger.Error("failed to create customer",
			slog.String("email", customer.Email),
			slog.String("error", err.Error()),
		)
		return nil, writeError(err, "Failed to create customer")
	}

	s.logger.Info("customer created",
		slog.Int64("customer_id", customer.ID),
		slog.Int("addresses", len(customer.Addresses)),
	)

	return customer, nil
}

// Update changes name, email and phone of an existing customer. Addresses
// are left untouched.
func (s *customerService) Update(ctx context.Context, customer *models.Customer) (*models.Customer, error) {
	if customer.ID == 0 {
		return nil, models.ErrInvalidInput("Customer ID is required")
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		s.logger.Error("failed to update customer",
			slog.Int64("customer_id", customer.ID),
			slog.String("error", err.Error()),
		)
		return nil, writeError(err, "Failed to update customer")
	}

	s.invalidate(ctx, customer.ID)

	s.logger.Info("customer updated",
		slog.Int64("customer_id", customer.ID),
	)

	return s.GetByID(ctx, customer.ID)
}

// Delete removes a customer and its addresses
func (s *customerService) Delete(ctx context.Context, id int64) error {
	if err := s.customerRepo.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete customer",
			slog.Int64("customer_id", id),
			slog.String("error", err.Error()),
		)
		return deleteError(err, "Failed to delete customer")
	}

	s.invalidate(ctx, id)

	s.logger.Info("customer deleted",
		slog.Int64("customer_id", id),
	)

	return nil
}

func (s *customerService) invalidate(ctx context.Context, id int64) {
	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.logger.Warn("customer cache invalidation failed",
			slog.Int64("customer_id", id),
			slog.String("error", err.Error()),
		)
	}
}
