package domain

import (
	"context"
	"errors"
)

type Service interface {
	CreatePaymentIntent(ctx context.Context, req CreateIntentRequest) (*IntentResult, error)
	RetrievePaymentIntent(ctx context.Context, id string) (*Intent, error)
	VerifyPaymentSuccess(ctx context.Context, id string) (bool, error)
	PublishableKey() string
}

// Gateway is the external payment collaborator. Implementations must be safe
// for concurrent use.
type Gateway interface {
	CreateIntent(ctx context.Context, params CreateIntentParams) (*Intent, error)
	GetIntent(ctx context.Context, id string) (*Intent, error)
}

var (
	ErrInvalidAmount   = errors.New("invalid_amount")
	ErrInvalidIntentID = errors.New("invalid_payment_intent_id")
	ErrPaymentGateway  = errors.New("failed to process payment")
)
