package service

import (
	"errors"
	"strings"

	"github.com/lib/pq"

	"github.com/Raymond9734/customer-admin/internal/models"
)

// PostgreSQL error codes the services classify
const (
	uniqueViolation     pq.ErrorCode = "23505"
	foreignKeyViolation pq.ErrorCode = "23503"
)

// Messages reported for unique constraint violations
const (
	msgDuplicateEmail   = "Email address is already in use"
	msgDuplicatePhone   = "Phone number is already in use"
	msgDuplicateAddress = "Address is already associated with a customer"
	msgDataIntegrity    = "Data integrity violation"
)

const msgLastAddress = "Failed to delete address: a customer must keep at least one address"

// integrityError classifies a constraint violation. It returns nil when err
// is not a PostgreSQL error.
func integrityError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return nil
	}

	if pqErr.Code == uniqueViolation {
		constraint := strings.ToLower(pqErr.Constraint)
		switch {
		case strings.Contains(constraint, "email"):
			return models.ErrDuplicate(models.CodeDuplicateEmail, msgDuplicateEmail)
		case strings.Contains(constraint, "phone"):
			return models.ErrDuplicate(models.CodeDuplicatePhone, msgDuplicatePhone)
		case strings.Contains(constraint, "address_hash"):
			return models.ErrDuplicate(models.CodeDuplicateAddress, msgDuplicateAddress)
		}
	}

	return &models.AppError{
		Code:    models.CodeDataIntegrityError,
		Message: msgDataIntegrity,
		Err:     err,
	}
}

// writeError converts a repository failure into an AppError. AppErrors pass
// through unchanged; anything unclassified becomes an internal error whose
// message is prefix.
func writeError(err error, prefix string) error {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return err
	}
	if mapped := integrityError(err); mapped != nil {
		return mapped
	}
	return &models.AppError{
		Code:    models.CodeInternalServerError,
		Message: prefix,
		Err:     err,
	}
}

// deleteError reports any delete failure as DELETE_ERROR
func deleteError(err error, prefix string) error {
	msg := prefix
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		msg = prefix + ": " + appErr.Message
	}
	return &models.AppError{
		Code:    models.CodeDeleteError,
		Message: msg,
		Err:     err,
	}
}
