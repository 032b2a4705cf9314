package models

// Payment methods the backend accepts.
const (
	PaymentMethodCash        = "cash"
	PaymentMethodCreditCard  = "credit_card"
	PaymentMethodTransfer    = "transfer"
	PaymentMethodQR          = "qr"
	PaymentMethodMercadoPago = "mercadopago"
)

// Settlement scope chosen at the split decision.
const (
	PaymentTypeIndividual = "individual"
	PaymentTypeTable      = "table"
)

// PaymentRequest is the payload for POST /payments/. Amount travels as a
// string formatted to currency precision, matching the backend contract.
type PaymentRequest struct {
	Method string `json:"method"`
	Amount string `json:"amount"`
	Type   string `json:"type"`
}

type PaymentResponse struct {
	UUID   string `json:"uuid"`
	Status string `json:"status"`
	QRData string `json:"qr_data,omitempty"`
}

// ValidateSessionResponse is the identity-validation collaborator's answer.
// SessionToken is only present when Valid is true.
type ValidateSessionResponse struct {
	Valid        bool   `json:"valid"`
	SessionToken string `json:"session_token,omitempty"`
}
