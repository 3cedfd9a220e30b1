package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/eduride/eduride-ui/config"
	"github.com/eduride/eduride-ui/internal/adapters/eduride"
	"github.com/eduride/eduride-ui/internal/adapters/logsink"
	"github.com/eduride/eduride-ui/internal/adapters/payrecord"
	redisstore "github.com/eduride/eduride-ui/internal/adapters/redis"
	"github.com/eduride/eduride-ui/internal/ports"
)

const redisPingTimeout = 5 * time.Second

// ConnectRedis establishes a connection to Redis for the session store.
//
//nolint:ireturn // returning redis.UniversalClient lets us pick single or sentinel clients at runtime.
func ConnectRedis(cfg config.RedisConfig, logger *slog.Logger) (redis.UniversalClient, error) {
	var (
		client   redis.UniversalClient
		addrDesc string
	)

	if cfg.UseSentinel {
		client = redis.NewFailoverClient(&redis.FailoverOptions{
			MasterName:       cfg.SentinelMasterName,
			SentinelAddrs:    cfg.SentinelNodes,
			SentinelPassword: cfg.SentinelPassword,
			Password:         cfg.Password,
			DB:               cfg.DB,
		})
		addrDesc = strings.Join(cfg.SentinelNodes, ",")
	} else {
		client = redis.NewClient(&redis.Options{
			Addr:     cfg.URI,
			Password: cfg.Password,
			DB:       cfg.DB,
		})
		addrDesc = cfg.URI
	}

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()

	if pingErr := client.Ping(ctx).Err(); pingErr != nil {
		if closeErr := client.Close(); closeErr != nil {
			pingErr = errors.Join(pingErr, fmt.Errorf("close redis client: %w", closeErr))
		}
		return nil, fmt.Errorf("ping redis: %w", pingErr)
	}

	if logger != nil {
		logger.Info("redis connected", "addr", addrDesc)
	}

	return client, nil
}

// NewSessionStore builds the Redis-backed session store.
func NewSessionStore(client redis.UniversalClient, cfg config.RedisConfig) *redisstore.SessionStore {
	return redisstore.NewSessionStoreWithPrefix(client, cfg.KeyPrefix)
}

// NewBackendClient builds the EduRide REST backend client.
func NewBackendClient(cfg config.BackendConfig, logger *slog.Logger) *eduride.Client {
	return eduride.NewClient(eduride.Config{
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
		Logger:  logger,
	})
}

// NewTelemetryRecorder builds the log-service telemetry sink. A disabled
// config yields the no-op recorder so callers never branch.
//
//nolint:ireturn // the nop fallback shares only the port interface with the real recorder.
func NewTelemetryRecorder(cfg config.TelemetryConfig, logger *slog.Logger) ports.Recorder {
	if !cfg.IsEnabled() {
		return ports.NopRecorder{}
	}
	return logsink.NewRecorder(logsink.Config{
		BaseURL: cfg.BaseURL,
		Source:  cfg.Source,
		Logger:  logger,
	})
}

// NewPaymentRecorder builds the payment record microservice client, or nil
// when checkout is not configured.
func NewPaymentRecorder(cfg config.PaymentConfig, logger *slog.Logger) *payrecord.Client {
	if !cfg.IsEnabled() {
		return nil
	}
	return payrecord.NewClient(payrecord.Config{
		BaseURL:      cfg.BaseURL,
		SharedSecret: cfg.SharedSecret,
		Timeout:      cfg.Timeout,
		Logger:       logger,
	})
}
