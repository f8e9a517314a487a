package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/Raymond9734/customer-admin/internal/models"
	"github.com/Raymond9734/customer-admin/internal/validation"
)

// addressRequest is the body of address create and update calls, and one
// element of a customer create body
type addressRequest struct {
	Street  string `json:"street" validate:"required"`
	Street2 string `json:"street2"`
	City    string `json:"city" validate:"required,letters"`
	State   string `json:"state" validate:"required,letters"`
	Pincode string `json:"pincode" validate:"required,pincode"`
	Country string `json:"country"`
}

func (r addressRequest) toModel() models.Address {
	return models.Address{
		Street:  strings.TrimSpace(r.Street),
		Street2: strings.TrimSpace(r.Street2),
		City:    strings.TrimSpace(r.City),
		State:   strings.TrimSpace(r.State),
		Pincode: strings.TrimSpace(r.Pincode),
		Country: strings.TrimSpace(r.Country),
	}
}

type createCustomerRequest struct {
	FirstName string           `json:"firstName" validate:"required,letters"`
	LastName  string           `json:"lastName" validate:"required,letters"`
	Email     string           `json:"email" validate:"required,emailaddr"`
	Phone     string           `json:"phone" validate:"required,phone"`
	Addresses []addressRequest `json:"addresses" validate:"required,min=1,dive"`
}

func (r createCustomerRequest) toModel() *models.Customer {
	c := &models.Customer{
		FirstName: strings.TrimSpace(r.FirstName),
		LastName:  strings.TrimSpace(r.LastName),
		Email:     strings.TrimSpace(r.Email),
		Phone:     strings.TrimSpace(r.Phone),
	}
	for _, a := range r.Addresses {
		c.Addresses = append(c.Addresses, a.toModel())
	}
	return c
}

// updateCustomerRequest carries no addresses; they are managed separately
type updateCustomerRequest struct {
	ID        int64  `json:"id" validate:"required,gt=0"`
	FirstName string `json:"firstName" validate:"required,letters"`
	LastName  string `json:"lastName" validate:"required,letters"`
	Email     string `json:"email" validate:"required,emailaddr"`
	Phone     string `json:"phone" validate:"required,phone"`
}

func (r updateCustomerRequest) toModel() *models.Customer {
	return &models.Customer{
		ID:        r.ID,
		FirstName: strings.TrimSpace(r.FirstName),
		LastName:  strings.TrimSpace(r.LastName),
		Email:     strings.TrimSpace(r.Email),
		Phone:     strings.TrimSpace(r.Phone),
	}
}

// newValidator returns a validator that reports JSON field names and knows
// the customer field rules
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	rules := map[string]func(string) bool{
		"letters":   validation.IsLetters,
		"digits":    validation.IsDigits,
		"emailaddr": validation.IsEmail,
		"phone":     validation.IsPhone,
		"pincode":   validation.IsPincode,
	}
	for tag, fn := range rules {
		err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return fn(fl.Field().String())
		})
		if err != nil {
			panic(fmt.Sprintf("failed to register %q validation: %v", tag, err))
		}
	}

	return v
}

// decodeAndValidate reads a JSON body into dst and validates it. It writes
// the error response itself and reports whether the handler may continue.
func (h *base) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondError(w, http.StatusBadRequest, models.CodeValidationError, "Invalid JSON format")
		return false
	}

	if err := h.validate.Struct(dst); err != nil {
		respondError(w, http.StatusBadRequest, models.CodeValidationError, validationMessage(err))
		return false
	}

	return true
}

// validationMessage joins every field failure into one line
func validationMessage(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return "Request validation failed"
	}

	parts := make([]string, 0, len(verrs))
	for _, e := range verrs {
		field := strings.TrimPrefix(e.Namespace(), topLevel(e))
		parts = append(parts, fmt.Sprintf("%s: %s", field, fieldMessage(e)))
	}
	return strings.Join(parts, "; ")
}

// topLevel is the struct name prefix validator puts in front of namespaces
func topLevel(e validator.FieldError) string {
	ns := e.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[:i+1]
	}
	return ""
}

func fieldMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required"
	case "letters":
		return "Must contain only letters"
	case "digits":
		return "Must contain only digits"
	case "emailaddr":
		return "Invalid email format"
	case "phone":
		return "Must be exactly 10 digits"
	case "pincode":
		return "Must be exactly 5 digits"
	case "min":
		return "Must contain at least " + e.Param() + " item(s)"
	case "gt":
		return "Must be greater than " + e.Param()
	default:
		return "Invalid value"
	}
}

// pageRequest reads page, size, sortBy and sortDir. Defaults are applied by
// the service.
func pageRequest(r *http.Request) models.PageRequest {
	query := r.URL.Query()

	page, err := strconv.Atoi(query.Get("page"))
	if err != nil {
		page = models.DefaultPage
	}
	size, err := strconv.Atoi(query.Get("size"))
	if err != nil {
		size = models.DefaultPageSize
	}

	return models.PageRequest{
		Page:    page,
		Size:    size,
		SortBy:  models.SortField(query.Get("sortBy")),
		SortDir: models.ParseSortDir(query.Get("sortDir")),
	}
}

// pathID parses a numeric URL parameter
func pathID(r *http.Request, param string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s", param)
	}
	return id, nil
}
