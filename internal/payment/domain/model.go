package domain

// MinAmount is the smallest chargeable amount in minor currency units.
const MinAmount int64 = 50

// DefaultCurrency applies when a request leaves the currency blank.
const DefaultCurrency = "usd"

// StatusSucceeded is the terminal gateway status for a collected payment.
const StatusSucceeded = "succeeded"

// CreateIntentRequest is the inbound payment request.
type CreateIntentRequest struct {
	Amount        int64  `json:"amount"`
	Currency      string `json:"currency"`
	Description   string `json:"description,omitempty"`
	CustomerEmail string `json:"customerEmail,omitempty"`
	OrderID       string `json:"orderId,omitempty"`
	UserID        string `json:"userId,omitempty"`
}

// IntentResult is the projection of the gateway resource returned to clients.
// Intents are never persisted locally; the gateway owns their lifecycle.
type IntentResult struct {
	ClientSecret    string `json:"clientSecret"`
	PaymentIntentID string `json:"paymentIntentId"`
	Amount          int64  `json:"amount"`
	Currency        string `json:"currency"`
}

// Intent is the remote payment intent resource as reported by the gateway.
type Intent struct {
	ID           string
	ClientSecret string
	Amount       int64
	Currency     string
	Status       string
}

// CreateIntentParams is the gateway-facing request. Optional fields are
// omitted entirely when unset, never sent as empty values.
type CreateIntentParams struct {
	Amount                  int64
	Currency                string
	Description             string
	ReceiptEmail            string
	Metadata                map[string]string
	AutomaticPaymentMethods bool
}
