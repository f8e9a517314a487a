package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Raymond9734/customer-admin/internal/models"
)

// handleError maps service errors to HTTP responses
func handleError(w http.ResponseWriter, err error, logger *slog.Logger) {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		status := mapErrorCodeToHTTPStatus(appErr.Code)
		if status == http.StatusInternalServerError {
			logger.Error("request failed",
				slog.String("code", string(appErr.Code)),
				slog.String("error", err.Error()),
			)
		}
		respondError(w, status, appErr.Code, appErr.Message)
		return
	}

	switch {
	case errors.Is(err, models.ErrNotFound):
		respondError(w, http.StatusNotFound, models.CodeCustomerNotFound, err.Error())

	default:
		// Log internal errors but don't expose details to client
		logger.Error("internal server error",
			slog.String("error", err.Error()),
		)
		respondError(w, http.StatusInternalServerError, models.CodeInternalServerError, "An unexpected error occurred")
	}
}

// mapErrorCodeToHTTPStatus maps error codes to HTTP status codes
func mapErrorCodeToHTTPStatus(code models.ErrorCode) int {
	switch code {
	case models.CodeValidationError:
		return http.StatusBadRequest
	case models.CodeCustomerNotFound, models.CodeAddressNotFound:
		return http.StatusNotFound
	case models.CodeDuplicateEmail, models.CodeDuplicatePhone, models.CodeDuplicateAddress:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
