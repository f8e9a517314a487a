package validation

import "github.com/Raymond9734/customer-admin/internal/models"

// AddressField identifies an editable address field
type AddressField int

// Address form fields
const (
	AddressStreet AddressField = iota
	AddressStreet2
	AddressCity
	AddressState
	AddressPincode
	AddressCountry
)

// AddressFields lists every address field in form order
var AddressFields = []AddressField{AddressStreet, AddressStreet2, AddressCity, AddressState, AddressPincode, AddressCountry}

func (f AddressField) String() string {
	switch f {
	case AddressStreet:
		return "street"
	case AddressStreet2:
		return "street2"
	case AddressCity:
		return "city"
	case AddressState:
		return "state"
	case AddressPincode:
		return "pincode"
	case AddressCountry:
		return "country"
	default:
		return "unknown"
	}
}

// Label is the human-readable field name
func (f AddressField) Label() string {
	switch f {
	case AddressStreet:
		return "Street"
	case AddressStreet2:
		return "Street 2"
	case AddressCity:
		return "City"
	case AddressState:
		return "State"
	case AddressPincode:
		return "Zipcode"
	case AddressCountry:
		return "Country"
	default:
		return "Field"
	}
}

// ValidateAddressField returns the error message for value, or "" when valid
func ValidateAddressField(field AddressField, value string) string {
	switch field {
	case AddressStreet, AddressCountry:
		return required(field.Label(), value)
	case AddressCity, AddressState:
		return name(field.Label(), value)
	case AddressPincode:
		if msg := required(field.Label(), value); msg != "" {
			return msg
		}
		if !IsDigits(value) {
			return "Zipcode should contain only digits"
		}
		if len(value) != PincodeLength {
			return "Zipcode should contain exactly 5 digits"
		}
		return ""
	default:
		// street2 is optional and unconstrained
		return ""
	}
}

// AddressValue reads the draft value of field from a
func AddressValue(a *models.Address, field AddressField) string {
	switch field {
	case AddressStreet:
		return a.Street
	case AddressStreet2:
		return a.Street2
	case AddressCity:
		return a.City
	case AddressState:
		return a.State
	case AddressPincode:
		return a.Pincode
	case AddressCountry:
		return a.Country
	default:
		return ""
	}
}

// SetAddressValue writes value into field of a
func SetAddressValue(a *models.Address, field AddressField, value string) {
	switch field {
	case AddressStreet:
		a.Street = value
	case AddressStreet2:
		a.Street2 = value
	case AddressCity:
		a.City = value
	case AddressState:
		a.State = value
	case AddressPincode:
		a.Pincode = value
	case AddressCountry:
		a.Country = value
	}
}

// AddressErrors carries one error slot per address field
type AddressErrors struct {
	Street  string
	Street2 string
	City    string
	State   string
	Pincode string
	Country string
}

// Get returns the error slot of field
func (e AddressErrors) Get(field AddressField) string {
	switch field {
	case AddressStreet:
		return e.Street
	case AddressStreet2:
		return e.Street2
	case AddressCity:
		return e.City
	case AddressState:
		return e.State
	case AddressPincode:
		return e.Pincode
	case AddressCountry:
		return e.Country
	default:
		return ""
	}
}

// Set stores msg in the error slot of field
func (e *AddressErrors) Set(field AddressField, msg string) {
	switch field {
	case AddressStreet:
		e.Street = msg
	case AddressStreet2:
		e.Street2 = msg
	case AddressCity:
		e.City = msg
	case AddressState:
		e.State = msg
	case AddressPincode:
		e.Pincode = msg
	case AddressCountry:
		e.Country = msg
	}
}

// Valid reports whether every slot is empty
func (e AddressErrors) Valid() bool {
	return e == AddressErrors{}
}

// ValidateAddress validates every address field of a
func ValidateAddress(a *models.Address) AddressErrors {
	var errs AddressErrors
	for _, field := range AddressFields {
		errs.Set(field, ValidateAddressField(field, AddressValue(a, field)))
	}
	return errs
}
