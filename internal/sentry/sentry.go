package sentry

import (
	"context"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/hotelhub/hotelhub/internal/config"
	"github.com/hotelhub/hotelhub/internal/logger"
	"github.com/hotelhub/hotelhub/internal/types"
	"go.uber.org/fx"
)

const flushTimeout = 2 * time.Second

// Service reports errors and spans to Sentry. Every method is a no-op while
// Sentry is disabled in config.
type Service struct {
	cfg    config.SentryConfig
	logger *logger.Logger
}

func Module() fx.Option {
	return fx.Options(
		fx.Provide(NewSentryService),
		fx.Invoke(RegisterHooks),
	)
}

func NewSentryService(cfg *config.Configuration, logger *logger.Logger) *Service {
	return &Service{cfg: cfg.Sentry, logger: logger}
}

func RegisterHooks(lc fx.Lifecycle, svc *Service) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error { return svc.start() },
		OnStop: func(context.Context) error {
			if svc.cfg.Enabled {
				sentry.Flush(flushTimeout)
			}
			return nil
		},
	})
}

func (s *Service) start() error {
	if !s.cfg.Enabled {
		s.logger.Info("sentry disabled")
		return nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:           s.cfg.DSN,
		Environment:   s.cfg.Environment,
		EnableTracing: true,
		TracesSampler: func(sc sentry.SamplingContext) float64 {
			// health probes would drown everything else
			if sc.Span != nil && sc.Span.Name == "GET /health" {
				return 0
			}
			return s.cfg.SampleRate
		},
	})
	if err != nil {
		s.logger.Errorw("sentry init failed", "error", err)
		return err
	}

	s.logger.Infow("sentry enabled", "environment", s.cfg.Environment, "sample_rate", s.cfg.SampleRate)
	return nil
}

// CaptureException reports err with the request id and caller from ctx
func (s *Service) CaptureException(ctx context.Context, err error) {
	if !s.cfg.Enabled || err == nil {
		return
	}

	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub().Clone()
	}
	hub.WithScope(func(scope *sentry.Scope) {
		if id := types.GetRequestID(ctx); id != "" {
			scope.SetTag("request_id", id)
		}
		if id := types.GetUserID(ctx); id != "" {
			scope.SetUser(sentry.User{ID: id})
		}
		hub.CaptureException(err)
	})
}

// StartDBSpan opens a postgres span. The span is nil when disabled.
func (s *Service) StartDBSpan(ctx context.Context, operation string, data map[string]interface{}) (*sentry.Span, context.Context) {
	return s.span(ctx, "db.postgres", operation, data)
}

// StartMessageSpan opens a span around one consumed message
func (s *Service) StartMessageSpan(ctx context.Context, topic string) (*sentry.Span, context.Context) {
	return s.span(ctx, "pubsub.consume", "consume "+topic, map[string]interface{}{"topic": topic})
}

func (s *Service) span(ctx context.Context, op, name string, data map[string]interface{}) (*sentry.Span, context.Context) {
	if !s.cfg.Enabled {
		return nil, ctx
	}
	span := sentry.StartSpan(ctx, op, sentry.WithDescription(name))
	for k, v := range data {
		span.SetData(k, v)
	}
	return span, span.Context()
}
