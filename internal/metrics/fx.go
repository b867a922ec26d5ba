package metrics

import (
	"github.com/fortuna-labs/fortuna/internal/metrics/repository"
	"github.com/fortuna-labs/fortuna/internal/metrics/service"
	"go.uber.org/fx"
)

var Module = fx.Module("metrics.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
