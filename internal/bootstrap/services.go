package bootstrap

import (
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/eduride/eduride-ui/config"
	"github.com/eduride/eduride-ui/internal/adapters/eduride"
	"github.com/eduride/eduride-ui/internal/service"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Auth     *service.AuthService
	Status   *service.StatusService
	Payments *service.PaymentService
	Backend  *eduride.Client
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// NewServices wires adapters into the application services.
func NewServices(deps *ServiceDeps) ServiceContainer {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cfg := deps.Config

	backend := NewBackendClient(cfg.Backend, logger)
	sessions := NewSessionStore(deps.RedisClient, cfg.Redis)
	telemetry := NewTelemetryRecorder(cfg.Telemetry, logger)

	auth := service.NewAuthService(service.AuthServiceOptions{
		Backend:   backend,
		Sessions:  sessions,
		Broadcast: service.NewBroadcaster(),
		Telemetry: telemetry,
		Logger:    logger,
	})

	status := service.NewStatusService(service.StatusServiceOptions{
		Writer: backend,
		Logger: logger,
	})

	paymentOpts := service.PaymentServiceOptions{
		Backend:   backend,
		Telemetry: telemetry,
		Logger:    logger,
	}
	// A nil *payrecord.Client must not become a non-nil interface value.
	if recorder := NewPaymentRecorder(cfg.Payments, logger); recorder != nil {
		paymentOpts.Payments = recorder
	} else {
		logger.Info("payment service not configured, checkout disabled")
	}
	payments := service.NewPaymentService(paymentOpts)

	return ServiceContainer{
		Auth:     auth,
		Status:   status,
		Payments: payments,
		Backend:  backend,
	}
}
