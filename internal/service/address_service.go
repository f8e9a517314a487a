package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lib/pq"

	"github.com/Raymond9734/customer-admin/internal/cache"
	"github.com/Raymond9734/customer-admin/internal/models"
	"github.com/Raymond9734/customer-admin/internal/repository"
)

// AddressService handles address business logic
type AddressService interface {
	ListByCustomer(ctx context.Context, customerID int64) ([]models.Address, error)
	GetByID(ctx context.Context, id int64) (*models.Address, error)
	Create(ctx context.Context, customerID int64, address *models.Address) (*models.Address, error)
	Update(ctx context.Context, id int64, address *models.Address) (*models.Address, error)
	Delete(ctx context.Context, id int64) error
}

type addressService struct {
	addressRepo repository.AddressRepository
	cache       cache.CustomerCache
	logger      *slog.Logger
}

// NewAddressService creates a new address service
func NewAddressService(
	addressRepo repository.AddressRepository,
	customerCache cache.CustomerCache,
	logger *slog.Logger,
) AddressService {
	return &addressService{
		addressRepo: addressRepo,
		cache:       customerCache,
		logger:      logger,
	}
}

// ListByCustomer retrieves all addresses of a customer
func (s *addressService) ListByCustomer(ctx context.Context, customerID int64) ([]models.Address, error) {
	addresses, err := s.addressRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list addresses: %w", err)
	}
	return addresses, nil
}

// GetByID retrieves an address by ID
func (s *addressService) GetByID(ctx context.Context, id int64) (*models.Address, error) {
	return s.addressRepo.GetByID(ctx, id)
}

// Create adds an address to an existing customer
func (s *addressService) Create(ctx context.Context, customerID int64, address *models.Address) (*models.Address, error) {
	address.ID = 0
	address.CustomerID = customerID
	if address.Country == "" {
		address.Country = models.DefaultCountry
	}

	if err := s.addressRepo.Create(ctx, address); err != nil {
		s.logger.Error("failed to create address",
			slog.Int64("customer_id", customerID),
			slog.String("error", err.Error()),
		)
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == foreignKeyViolation {
			return nil, models.ErrCustomerNotFound(customerID)
		}
		return nil, writeError(err, "Failed to create address")
	}

	s.invalidate(ctx, customerID)

	s.logger.Info("address created",
		slog.Int64("address_id", address.ID),
		slog.Int64("customer_id", customerID),
	)

	return address, nil
}

// Update replaces the attributes of an existing address
func (s *addressService) Update(ctx context.Context, id int64, address *models.Address) (*models.Address, error) {
	existing, err := s.addressRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	address.ID = id
	address.CustomerID = existing.CustomerID
	if address.Country == "" {
		address.Country = models.DefaultCountry
	}

	if err := s.addressRepo.Update(ctx, address); err != nil {
		s.logger.Error("failed to update address",
			slog.Int64("address_id", id),
			slog.String("error", err.Error()),
		)
		return nil, writeError(err, "Failed to update address")
	}

	s.invalidate(ctx, existing.CustomerID)

	s.logger.Info("address updated",
		slog.Int64("address_id", id),
	)

	return address, nil
}

// Delete removes an address unless it is the last one its customer owns
func (s *addressService) Delete(ctx context.Context, id int64) error {
	existing, err := s.addressRepo.GetByID(ctx, id)
	if err != nil {
		return deleteError(err, "Failed to delete address")
	}

	if err := s.addressRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, models.ErrConflict) {
			return &models.AppError{
				Code:    models.CodeDeleteError,
				Message: msgLastAddress,
				Err:     err,
			}
		}
		s.logger.Error("failed to delete address",
			slog.Int64("address_id", id),
			slog.String("error", err.Error()),
		)
		return deleteError(err, "Failed to delete address")
	}

	s.invalidate(ctx, existing.CustomerID)

	s.logger.Info("address deleted",
		slog.Int64("address_id", id),
		slog.Int64("customer_id", existing.CustomerID),
	)

	return nil
}

func (s *addressService) invalidate(ctx context.Context, customerID int64) {
	if err := s.cache.Invalidate(ctx, customerID); err != nil {
		s.logger.Warn("customer cache invalidation failed",
			slog.Int64("customer_id", customerID),
			slog.String("error", err.Error()),
		)
	}
}
