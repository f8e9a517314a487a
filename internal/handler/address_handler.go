package handler

import (
	"log/slog"
	"net/http"

	"github.com/Raymond9734/customer-admin/internal/models"
	"github.com/Raymond9734/customer-admin/internal/service"
)

// AddressHandler handles address HTTP requests
type AddressHandler struct {
	base
	addressService service.AddressService
}

// NewAddressHandler creates a new address handler
func NewAddressHandler(addressService service.AddressService, logger *slog.Logger) *AddressHandler {
	return &AddressHandler{
		base:           base{validate: newValidator(), logger: logger},
		addressService: addressService,
	}
}

// ListAddresses handles GET /addresses/{customerId}
func (h *AddressHandler) ListAddresses(w http.ResponseWriter, r *http.Request) {
	customerID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, models.CodeValidationError, "Invalid customer ID")
		return
	}

	addresses, err := h.addressService.ListByCustomer(r.Context(), customerID)
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	respondSuccess(w, addresses)
}

// GetAddress handles GET /addresses/getAddress/{id}
func (h *AddressHandler) GetAddress(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, models.CodeValidationError, "Invalid address ID")
		return
	}

	address, err := h.addressService.GetByID(r.Context(), id)
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	respondSuccess(w, models.AddressResponse{Address: *address, Envelope: models.SuccessEnvelope("")})
}

// CreateAddress handles POST /addresses/{customerId}
func (h *AddressHandler) CreateAddress(w http.ResponseWriter, r *http.Request) {
	customerID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, models.CodeValidationError, "Invalid customer ID")
		return
	}

	var req addressRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	addr := req.toModel()
	address, err := h.addressService.Create(r.Context(), customerID, &addr)
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	respondCreated(w, models.AddressResponse{Address: *address, Envelope: models.SuccessEnvelope("")})
}

// UpdateAddress handles PUT /addresses/{id}
func (h *AddressHandler) UpdateAddress(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, models.CodeValidationError, "Invalid address ID")
		return
	}

	var req addressRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	addr := req.toModel()
	address, err := h.addressService.Update(r.Context(), id, &addr)
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	respondSuccess(w, models.AddressResponse{Address: *address, Envelope: models.SuccessEnvelope("")})
}

// DeleteAddress handles DELETE /addresses/{id}
func (h *AddressHandler) DeleteAddress(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, models.CodeValidationError, "Invalid address ID")
		return
	}

	if err := h.addressService.Delete(r.Context(), id); err != nil {
		handleError(w, err, h.logger)
		return
	}

	respondSuccess(w, models.SuccessEnvelope(msgAddressDeleted))
}
