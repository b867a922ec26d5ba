package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/fortuna-labs/fortuna/internal/config"
	paymentdomain "github.com/fortuna-labs/fortuna/internal/payment/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log     *zap.Logger
	Cfg     config.Config
	Gateway paymentdomain.Gateway
}

type Service struct {
	log            *zap.Logger
	gateway        paymentdomain.Gateway
	publishableKey string
}

func New(p Params) paymentdomain.Service {
	return &Service{
		log:            p.Log.Named("payment.service"),
		gateway:        p.Gateway,
		publishableKey: p.Cfg.StripePublishableKey,
	}
}

func (s *Service) CreatePaymentIntent(ctx context.Context, req paymentdomain.CreateIntentRequest) (*paymentdomain.IntentResult, error) {
	if req.Amount < paymentdomain.MinAmount {
		return nil, paymentdomain.ErrInvalidAmount
	}

	currency := strings.TrimSpace(req.Currency)
	if currency == "" {
		currency = paymentdomain.DefaultCurrency
	}

	params := paymentdomain.CreateIntentParams{
		Amount:                  req.Amount,
		Currency:                currency,
		Description:             strings.TrimSpace(req.Description),
		ReceiptEmail:            strings.TrimSpace(req.CustomerEmail),
		Metadata:                buildMetadata(req),
		AutomaticPaymentMethods: true,
	}

	intent, err := s.gateway.CreateIntent(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", paymentdomain.ErrPaymentGateway, err)
	}

	s.log.Info("payment intent created",
		zap.String("payment_intent_id", intent.ID),
		zap.Int64("amount", intent.Amount),
		zap.String("currency", intent.Currency),
	)

	return &paymentdomain.IntentResult{
		ClientSecret:    intent.ClientSecret,
		PaymentIntentID: intent.ID,
		Amount:          intent.Amount,
		Currency:        intent.Currency,
	}, nil
}

func (s *Service) RetrievePaymentIntent(ctx context.Context, id string) (*paymentdomain.Intent, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, paymentdomain.ErrInvalidIntentID
	}

	intent, err := s.gateway.GetIntent(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", paymentdomain.ErrPaymentGateway, err)
	}
	return intent, nil
}

// VerifyPaymentSuccess reports whether the gateway marked the intent
// succeeded. Retrieval failures propagate; they are never folded to false.
func (s *Service) VerifyPaymentSuccess(ctx context.Context, id string) (bool, error) {
	intent, err := s.RetrievePaymentIntent(ctx, id)
	if err != nil {
		return false, err
	}
	return intent.Status == paymentdomain.StatusSucceeded, nil
}

func (s *Service) PublishableKey() string {
	return s.publishableKey
}

// buildMetadata tags the intent with order and user references, keeping only
// the keys the caller actually provided.
func buildMetadata(req paymentdomain.CreateIntentRequest) map[string]string {
	metadata := map[string]string{}
	if orderID := strings.TrimSpace(req.OrderID); orderID != "" {
		metadata["orderId"] = orderID
	}
	if userID := strings.TrimSpace(req.UserID); userID != "" {
		metadata["userId"] = userID
	}
	return metadata
}
