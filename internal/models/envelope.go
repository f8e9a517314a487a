package models

// Envelope is the status block every API response may carry
type Envelope struct {
	ErrorCode    ErrorCode `json:"errorCode,omitempty"`
	ErrorMessage string    `json:"errorMessage,omitempty"`
}

// Err converts a failed envelope into an AppError, or nil on success
func (e Envelope) Err() error {
	if e.ErrorCode.IsSuccess() {
		return nil
	}
	msg := e.ErrorMessage
	if msg == "" {
		msg = "API Error: " + string(e.ErrorCode)
	}
	return NewAppError(e.ErrorCode, msg)
}

// SuccessEnvelope returns a SUCCESS envelope with an optional message
func SuccessEnvelope(message string) Envelope {
	return Envelope{ErrorCode: CodeSuccess, ErrorMessage: message}
}

// CustomerResponse is a customer flattened together with its envelope
type CustomerResponse struct {
	Customer
	Envelope
}

// AddressResponse is an address flattened together with its envelope
type AddressResponse struct {
	Address
	Envelope
}

// PageResponse is a page flattened together with its envelope
type PageResponse[T any] struct {
	Page[T]
	Envelope
}
