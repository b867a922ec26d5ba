package payment

import (
	"github.com/fortuna-labs/fortuna/internal/payment/service"
	"github.com/fortuna-labs/fortuna/internal/payment/stripe"
	"go.uber.org/fx"
)

var Module = fx.Module("payment.service",
	fx.Provide(stripe.Provide),
	fx.Provide(service.New),
)
