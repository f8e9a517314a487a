package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/Raymond9734/customer-admin/internal/models"
	"github.com/Raymond9734/customer-admin/internal/service"
)

// base carries what every resource handler needs
type base struct {
	validate *validator.Validate
	logger   *slog.Logger
}

// CustomerHandler handles customer HTTP requests
type CustomerHandler struct {
	base
	customerService service.CustomerService
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customerService service.CustomerService, logger *slog.Logger) *CustomerHandler {
	return &CustomerHandler{
		base:            base{validate: newValidator(), logger: logger},
		customerService: customerService,
	}
}

// ListCustomers handles GET /customers
func (h *CustomerHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	page, err := h.customerService.List(r.Context(), pageRequest(r))
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	respondSuccess(w, models.PageResponse[models.CustomerSummary]{Page: *page, Envelope: models.SuccessEnvelope("")})
}

// SearchCustomers handles GET /customers/search
func (h *CustomerHandler) SearchCustomers(w http.ResponseWriter, r *http.Request) {
	page, err := h.customerService.Search(r.Context(), r.URL.Query().Get("query"), pageRequest(r))
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	respondSuccess(w, models.PageResponse[models.CustomerSummary]{Page: *page, Envelope: models.SuccessEnvelope("")})
}

// AdvancedSearchCustomers handles GET /customers/search/advanced
func (h *CustomerHandler) AdvancedSearchCustomers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := models.AddressFilter{
		City:    query.Get("city"),
		State:   query.Get("state"),
		Pincode: query.Get("pincode"),
	}

	page, err := h.customerService.AdvancedSearch(r.Context(), filter, pageRequest(r))
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	respondSuccess(w, models.PageResponse[models.CustomerSummary]{Page: *page, Envelope: models.SuccessEnvelope("")})
}

// GetCustomer handles GET /customers/{id}
func (h *CustomerHandler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, models.CodeValidationError, "Invalid customer ID")
		return
	}

	customer, err := h.customerService.GetByID(r.Context(), id)
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	respondSuccess(w, models.CustomerResponse{Customer: *customer, Envelope: models.SuccessEnvelope("")})
}

// CreateCustomer handles POST /customers
func (h *CustomerHandler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req createCustomerRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	customer, err := h.customerService.Create(r.Context(), req.toModel())
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	respondCreated(w, models.CustomerResponse{Customer: *customer, Envelope: models.SuccessEnvelope(msgCustomerCreated)})
}

// UpdateCustomer handles PUT /customers
func (h *CustomerHandler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	var req updateCustomerRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	customer, err := h.customerService.Update(r.Context(), req.toModel())
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	respondSuccess(w, models.CustomerResponse{Customer: *customer, Envelope: models.SuccessEnvelope(msgCustomerUpdated)})
}

// DeleteCustomer handles DELETE /customers/{id}
func (h *CustomerHandler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, models.CodeValidationError, "Invalid customer ID")
		return
	}

	if err := h.customerService.Delete(r.Context(), id); err != nil {
		handleError(w, err, h.logger)
		return
	}

	respondSuccess(w, models.SuccessEnvelope(msgCustomerDeleted))
}
