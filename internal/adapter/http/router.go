package http

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	appmw "eventflow-backend/internal/adapter/middleware"
	approvaluc "eventflow-backend/internal/usecase/approval"
	eventuc "eventflow-backend/internal/usecase/event"
)

type RouterDeps struct {
	Events    *eventuc.Usecase
	Decisions *approvaluc.Usecase
	// Redis backs the idempotency middleware; nil disables it.
	Redis          *redis.Client
	IdempotencyTTL time.Duration
	Logger         *zap.Logger
}

// NewRouter builds the echo instance with every route registered.
func NewRouter(d RouterDeps) *echo.Echo {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewValidator()
	e.Use(middleware.Recover(), appmw.MetricsMiddleware(), requestLogger(logger))

	h := NewHandler()
	e.GET("/health", h.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("", appmw.ActorMiddleware())
	write := []echo.MiddlewareFunc{}
	if d.Redis != nil {
		write = append(write, appmw.IdempotencyMiddleware(d.Redis, d.IdempotencyTTL, logger.Named("idempotency")))
	}

	events := NewEventHandler(d.Events, logger)
	api.POST("/events", events.CreateEvent, write...)
	api.GET("/events", events.ListEvents)
	api.GET("/events/:event_id", events.GetEvent)
	api.PUT("/events/:event_id/notes", events.AddNotes, write...)
	api.GET("/events/:event_id/timeline", events.Timeline)

	approvals := NewApprovalHandler(d.Decisions, logger)
	api.POST("/events/:event_id/approve", approvals.Approve, write...)
	api.POST("/events/:event_id/reject", approvals.Reject, write...)

	dash := NewDashboardHandler(d.Events, logger)
	api.GET("/dashboard/stats", dash.Stats)
	api.GET("/dashboard/pending", dash.Pending)

	return e
}

func requestLogger(logger *zap.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("remote_ip", v.RemoteIP),
			}
			if v.Error != nil {
				logger.Warn("request", append(fields, zap.Error(v.Error))...)
				return nil
			}
			logger.Info("request", fields...)
			return nil
		},
	})
}
