package server

import (
	"context"
	"net/http"
	"time"

	"github.com/fortuna-labs/fortuna/internal/config"
	"github.com/fortuna-labs/fortuna/internal/metrics"
	metricsdomain "github.com/fortuna-labs/fortuna/internal/metrics/domain"
	obsmiddleware "github.com/fortuna-labs/fortuna/internal/observability/logger"
	"github.com/fortuna-labs/fortuna/internal/payment"
	paymentdomain "github.com/fortuna-labs/fortuna/internal/payment/domain"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	metrics.Module,
	payment.Module,
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(registerRoutes),
	fx.Invoke(run),
)

func NewEngine(cfg config.Config) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware())
	r.Use(CORS(cfg.CORSOrigin))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

type Params struct {
	fx.In

	Engine     *gin.Engine
	Cfg        config.Config
	DB         *gorm.DB
	Log        *zap.Logger
	MetricsSvc metricsdomain.Service
	PaymentSvc paymentdomain.Service
}

type Server struct {
	engine     *gin.Engine
	cfg        config.Config
	db         *gorm.DB
	log        *zap.Logger
	metricsSvc metricsdomain.Service
	paymentSvc paymentdomain.Service
}

func NewServer(p Params) *Server {
	return &Server{
		engine:     p.Engine,
		cfg:        p.Cfg,
		db:         p.DB,
		log:        p.Log.Named("http.server"),
		metricsSvc: p.MetricsSvc,
		paymentSvc: p.PaymentSvc,
	}
}

func (s *Server) RegisterAPIRoutes() {
	api := s.engine.Group("/api")

	api.POST("/save-metric", s.SaveMetric)

	payments := api.Group("/payments")
	payments.POST("/create-payment-intent", s.CreatePaymentIntent)
	payments.GET("/config", s.GetPaymentConfig)
	payments.GET("/verify/:paymentIntentId", s.VerifyPayment)
}

func registerRoutes(s *Server) {
	s.RegisterAPIRoutes()
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}
