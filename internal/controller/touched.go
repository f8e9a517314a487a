package controller

import "github.com/Raymond9734/customer-admin/internal/validation"

// CustomerTouched records which customer fields the user has interacted with
type CustomerTouched struct {
	FirstName bool
	LastName  bool
	Email     bool
	Phone     bool
}

// Get reports whether field was touched
func (t CustomerTouched) Get(field validation.CustomerField) bool {
	switch field {
	case validation.CustomerFirstName:
		return t.FirstName
	case validation.CustomerLastName:
		return t.LastName
	case validation.CustomerEmail:
		return t.Email
	case validation.CustomerPhone:
		return t.Phone
	default:
		return false
	}
}

// Set marks field as touched
func (t *CustomerTouched) Set(field validation.CustomerField) {
	switch field {
	case validation.CustomerFirstName:
		t.FirstName = true
	case validation.CustomerLastName:
		t.LastName = true
	case validation.CustomerEmail:
		t.Email = true
	case validation.CustomerPhone:
		t.Phone = true
	}
}

// AddressTouched records which address fields the user has interacted with
type AddressTouched struct {
	Street  bool
	Street2 bool
	City    bool
	State   bool
	Pincode bool
	Country bool
}

// Get reports whether field was touched
func (t AddressTouched) Get(field validation.AddressField) bool {
	switch field {
	case validation.AddressStreet:
		return t.Street
	case validation.AddressStreet2:
		return t.Street2
	case validation.AddressCity:
		return t.City
	case validation.AddressState:
		return t.State
	case validation.AddressPincode:
		return t.Pincode
	case validation.AddressCountry:
		return t.Country
	default:
		return false
	}
}

// Set marks field as touched
func (t *AddressTouched) Set(field validation.AddressField) {
	switch field {
	case validation.AddressStreet:
		t.Street = true
	case validation.AddressStreet2:
		t.Street2 = true
	case validation.AddressCity:
		t.City = true
	case validation.AddressState:
		t.State = true
	case validation.AddressPincode:
		t.Pincode = true
	case validation.AddressCountry:
		t.Country = true
	}
}

func visibleCustomerErrors(errs validation.CustomerErrors, touched CustomerTouched) validation.CustomerErrors {
	var out validation.CustomerErrors
	for _, f := range validation.CustomerFields {
		if touched.Get(f) {
			out.Set(f, errs.Get(f))
		}
	}
	return out
}

func visibleAddressErrors(errs validation.AddressErrors, touched AddressTouched) validation.AddressErrors {
	var out validation.AddressErrors
	for _, f := range validation.AddressFields {
		if touched.Get(f) {
			out.Set(f, errs.Get(f))
		}
	}
	return out
}

func touchAllAddress() AddressTouched {
	return AddressTouched{Street: true, Street2: true, City: true, State: true, Pincode: true, Country: true}
}
