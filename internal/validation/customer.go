package validation

import "github.com/Raymond9734/customer-admin/internal/models"

// CustomerField identifies an editable customer field
type CustomerField int

// Customer form fields
const (
	CustomerFirstName CustomerField = iota
	CustomerLastName
	CustomerEmail
	CustomerPhone
)

// CustomerFields lists every customer field in form order
var CustomerFields = []CustomerField{CustomerFirstName, CustomerLastName, CustomerEmail, CustomerPhone}

func (f CustomerField) String() string {
	switch f {
	case CustomerFirstName:
		return "firstName"
	case CustomerLastName:
		return "lastName"
	case CustomerEmail:
		return "email"
	case CustomerPhone:
		return "phone"
	default:
		return "unknown"
	}
}

// Label is the human-readable field name
func (f CustomerField) Label() string {
	switch f {
	case CustomerFirstName:
		return "First name"
	case CustomerLastName:
		return "Last name"
	case CustomerEmail:
		return "Email"
	case CustomerPhone:
		return "Phone"
	default:
		return "Field"
	}
}

// ValidateCustomerField returns the error message for value, or "" when valid
func ValidateCustomerField(field CustomerField, value string) string {
	switch field {
	case CustomerFirstName, CustomerLastName:
		return name(field.Label(), value)
	case CustomerEmail:
		if msg := required(field.Label(), value); msg != "" {
			return msg
		}
		if !IsEmail(value) {
			return "Email is not valid"
		}
		return ""
	case CustomerPhone:
		if msg := required(field.Label(), value); msg != "" {
			return msg
		}
		if !IsPhone(value) {
			return "Phone number must be 10 digits"
		}
		return ""
	default:
		return ""
	}
}

// CustomerValue reads the draft value of field from c
func CustomerValue(c *models.Customer, field CustomerField) string {
	switch field {
	case CustomerFirstName:
		return c.FirstName
	case CustomerLastName:
		return c.LastName
	case CustomerEmail:
		return c.Email
	case CustomerPhone:
		return c.Phone
	default:
		return ""
	}
}

// SetCustomerValue writes value into field of c
func SetCustomerValue(c *models.Customer, field CustomerField, value string) {
	switch field {
	case CustomerFirstName:
		c.FirstName = value
	case CustomerLastName:
		c.LastName = value
	case CustomerEmail:
		c.Email = value
	case CustomerPhone:
		c.Phone = value
	}
}

// CustomerErrors carries one error slot per customer field. An empty slot
// means the field is valid.
type CustomerErrors struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

// Get returns the error slot of field
func (e CustomerErrors) Get(field CustomerField) string {
	switch field {
	case CustomerFirstName:
		return e.FirstName
	case CustomerLastName:
		return e.LastName
	case CustomerEmail:
		return e.Email
	case CustomerPhone:
		return e.Phone
	default:
		return ""
	}
}

// Set stores msg in the error slot of field
func (e *CustomerErrors) Set(field CustomerField, msg string) {
	switch field {
	case CustomerFirstName:
		e.FirstName = msg
	case CustomerLastName:
		e.LastName = msg
	case CustomerEmail:
		e.Email = msg
	case CustomerPhone:
		e.Phone = msg
	}
}

// Valid reports whether every slot is empty
func (e CustomerErrors) Valid() bool {
	return e == CustomerErrors{}
}

// ValidateCustomer validates every customer field of c. Addresses are not
// inspected.
func ValidateCustomer(c *models.Customer) CustomerErrors {
	var errs CustomerErrors
	for _, field := range CustomerFields {
		errs.Set(field, ValidateCustomerField(field, CustomerValue(c, field)))
	}
	return errs
}
