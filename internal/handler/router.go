package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Raymond9734/customer-admin/internal/service"
)

// RouterConfig holds everything the HTTP router is built from
type RouterConfig struct {
	Customers     service.CustomerService
	Addresses     service.AddressService
	Database      HealthChecker
	Cache         HealthChecker
	AllowedOrigin string
	Logger        *slog.Logger
}

// NewRouter registers the customer API under /api and the health probe
func NewRouter(cfg RouterConfig) http.Handler {
	customerHandler := NewCustomerHandler(cfg.Customers, cfg.Logger)
	addressHandler := NewAddressHandler(cfg.Addresses, cfg.Logger)
	healthHandler := NewHealthHandler(cfg.Database, cfg.Cache, cfg.Logger)

	r := chi.NewRouter()

	r.Use(RecoveryMiddleware(cfg.Logger))
	r.Use(LoggingMiddleware(cfg.Logger))
	r.Use(CORSMiddleware(cfg.AllowedOrigin))

	r.Get("/health", healthHandler.Health)

	r.Route("/api", func(r chi.Router) {
		r.Route("/customers", func(r chi.Router) {
			r.Get("/", customerHandler.ListCustomers)
			r.Post("/", customerHandler.CreateCustomer)
			r.Put("/", customerHandler.UpdateCustomer)
			r.Get("/search", customerHandler.SearchCustomers)
			r.Get("/search/advanced", customerHandler.AdvancedSearchCustomers)
			r.Get("/{id}", customerHandler.GetCustomer)
			r.Delete("/{id}", customerHandler.DeleteCustomer)
		})

		r.Route("/addresses", func(r chi.Router) {
			r.Get("/getAddress/{id}", addressHandler.GetAddress)
			// {id} is the customer ID for GET and POST and the address ID otherwise
			r.Get("/{id}", addressHandler.ListAddresses)
			r.Post("/{id}", addressHandler.CreateAddress)
			r.Put("/{id}", addressHandler.UpdateAddress)
			r.Delete("/{id}", addressHandler.DeleteAddress)
		})
	})

	return r
}
