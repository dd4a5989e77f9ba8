package router

import (
	"context"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/hotelhub/hotelhub/internal/logger"
	"github.com/hotelhub/hotelhub/internal/sentry"
)

const deadLetterTopic = "notifications_dlq"

// Router dispatches consumed messages to handlers. Messages whose handler
// keeps failing end up on the dead letter topic.
type Router struct {
	router *message.Router
	logger *logger.Logger
	sentry *sentry.Service
}

func NewRouter(logger *logger.Logger, sentry *sentry.Service) (*Router, error) {
	wmLogger := watermill.NewStdLogger(false, false)

	r, err := message.NewRouter(message.RouterConfig{}, wmLogger)
	if err != nil {
		return nil, err
	}

	dlq := gochannel.NewGoChannel(gochannel.Config{}, wmLogger)
	poison, err := middleware.PoisonQueue(dlq, deadLetterTopic)
	if err != nil {
		return nil, err
	}
	r.AddMiddleware(poison, middleware.Recoverer, middleware.CorrelationID)

	return &Router{router: r, logger: logger, sentry: sentry}, nil
}

// AddNoPublishHandler subscribes handlerFunc to topic. Extra middlewares
// run inside the router-wide ones.
func (r *Router) AddNoPublishHandler(
	name string,
	topic string,
	subscriber message.Subscriber,
	handlerFunc message.NoPublishHandlerFunc,
	middlewares ...message.HandlerMiddleware,
) {
	h := r.router.AddNoPublisherHandler(name, topic, subscriber, r.observe(name, topic, handlerFunc))
	for _, mw := range middlewares {
		h.AddMiddleware(mw)
	}
}

func (r *Router) observe(name, topic string, next message.NoPublishHandlerFunc) message.NoPublishHandlerFunc {
	return func(msg *message.Message) error {
		span, ctx := r.sentry.StartMessageSpan(msg.Context(), topic)
		if span != nil {
			defer span.Finish()
		}

		err := next(msg)
		if err == nil {
			return nil
		}

		r.sentry.CaptureException(ctx, err)
		r.logger.Errorw("message handler failed",
			"handler", name,
			"message_uuid", msg.UUID,
			"correlation_id", middleware.MessageCorrelationID(msg),
			"error", err,
		)
		return err
	}
}

// Run blocks until ctx is done or Close is called
func (r *Router) Run(ctx context.Context) error {
	r.logger.Info("message router starting")
	return r.router.Run(ctx)
}

func (r *Router) Running() chan struct{} {
	return r.router.Running()
}

func (r *Router) Close() error {
	return r.router.Close()
}
