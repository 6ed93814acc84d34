package models

// PaymentWebhookPayload is the callback body posted by the payment gateway
// after an online payment attempt.
type PaymentWebhookPayload struct {
	TransactionID string  `json:"transactionId" validate:"required"`
	Amount        float64 `json:"amount" validate:"required,gt=0"`
	Status        string  `json:"status" validate:"required"` // "success", "failed", "cancelled"
	VendorID      string  `json:"vendorId" validate:"required"`
	ClientID      string  `json:"clientId" validate:"required"`
	ReferrerID    string  `json:"referrerId,omitempty"`
}

// GatewayStatusSuccess is the only webhook status that settles a commission.
const GatewayStatusSuccess = "success"

// GatewayRequest represents the standard request structure for the gateway API
type GatewayRequest struct {
	Amount             *float64 `json:"amount,omitempty"`
	Currency           string   `json:"currency,omitempty"`
	Invoice            string   `json:"invoice,omitempty"`
	ExternalID         string   `json:"externalId,omitempty"`
	SuccessCallbackURL string   `json:"successCallbackUrl,omitempty"`
	FailureCallbackURL string   `json:"failureCallbackUrl,omitempty"`
}

// GatewayResponse represents the standard response structure from the gateway API
type GatewayResponse struct {
	Status bool                   `json:"status"`
	Code   interface{}            `json:"code"` // Can be string or null
	Data   map[string]interface{} `json:"data"`
}

// InitiatePaymentRequest starts an online payment for a vendor bill.
type InitiatePaymentRequest struct {
	VendorID   string  `json:"vendorId" validate:"required"`
	BillAmount float64 `json:"billAmount" validate:"required,gt=0"`
	Currency   string  `json:"currency,omitempty"`
}
