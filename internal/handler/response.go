package handler

import (
	"encoding/json"
	"net/http"

	"github.com/Raymond9734/customer-admin/internal/models"
)

// Informational messages carried in success envelopes
const (
	msgCustomerCreated = "New Customer Created Successfully"
	msgCustomerUpdated = "Customer Updated Successfully"
	msgCustomerDeleted = "Customer Deleted Successfully!"
	msgAddressDeleted  = "Address Deleted Successfully"
)

// respondJSON writes a JSON response with the given status code
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Headers are already sent
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// respondError writes an error envelope
func respondError(w http.ResponseWriter, status int, code models.ErrorCode, message string) {
	respondJSON(w, status, models.Envelope{
		ErrorCode:    code,
		ErrorMessage: message,
	})
}

// respondSuccess writes a successful response with 200 OK
func respondSuccess(w http.ResponseWriter, data interface{}) {
	respondJSON(w, http.StatusOK, data)
}

// respondCreated writes a successful response with 201 Created
func respondCreated(w http.ResponseWriter, data interface{}) {
	respondJSON(w, http.StatusCreated, data)
}
