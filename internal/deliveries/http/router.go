package http

import (
	"context"
	"fmt"
	nethttp "net/http"
	"time"

	"github.com/sovr-labs/go-fp-clearing/internal/common/ctxdata"
	"github.com/sovr-labs/go-fp-clearing/internal/common/graceful"
	commonhttp "github.com/sovr-labs/go-fp-clearing/internal/common/http"
	"github.com/sovr-labs/go-fp-clearing/internal/common/http/middleware"
	xlog "github.com/sovr-labs/go-fp-clearing/internal/common/log"
	"github.com/sovr-labs/go-fp-clearing/internal/common/metrics"
	"github.com/sovr-labs/go-fp-clearing/internal/config"
	"github.com/sovr-labs/go-fp-clearing/internal/deliveries/http/health"
	"github.com/sovr-labs/go-fp-clearing/internal/repositories"
	"github.com/sovr-labs/go-fp-clearing/internal/services"

	v1binding "github.com/sovr-labs/go-fp-clearing/internal/deliveries/http/v1/binding"
	v1intent "github.com/sovr-labs/go-fp-clearing/internal/deliveries/http/v1/intent"
	v1observation "github.com/sovr-labs/go-fp-clearing/internal/deliveries/http/v1/observation"
	v1transfer "github.com/sovr-labs/go-fp-clearing/internal/deliveries/http/v1/transfer"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo-contrib/pprof"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/newrelic/go-agent/v3/integrations/nrecho-v4"
	"github.com/newrelic/go-agent/v3/newrelic"
	echoSwagger "github.com/swaggo/echo-swagger"

	// for swagger docs
	_ "github.com/sovr-labs/go-fp-clearing/docs"
)

type svc struct {
	e               *echo.Echo
	addr            string
	gracefulTimeout time.Duration
}

var _ graceful.ProcessStartStopper = (*svc)(nil)

func (s *svc) Start() graceful.ProcessStarter {
	return func() error {
		return s.e.Start(s.addr)
	}
}

func (s *svc) Stop() graceful.ProcessStopper {
	return func(ctx context.Context) error {
		err := s.e.Shutdown(ctx)

		if err != nil {
			xlog.Errorf(ctx, "[SHUTDOWN] HTTP server error: %v", err)
		} else {
			xlog.Info(ctx, "[SHUTDOWN] HTTP server stopped successfully")
		}

		return err
	}
}

// Handler exposes the router, mostly for tests.
func (s *svc) Handler() nethttp.Handler {
	return s.e
}

// @title GO FP CLEARING API DOCUMENTATION
// @version 1.0
// @description Clearing integration api docs.

// @contact.name Clearing Platform

// @host localhost:9567
// @BasePath /api
// @schemes http
func NewHTTPServer(
	ctx context.Context,
	conf config.Config,
	nr *newrelic.Application,
	cacheRepo repositories.CacheRepository,
	srv *services.Services,
	mtc metrics.Metrics,
) *svc {
	app := echo.New()
	app.HTTPErrorHandler = commonhttp.ErrorHandler

	svc := &svc{
		e:               app,
		addr:            fmt.Sprintf(":%d", conf.App.HTTPPort),
		gracefulTimeout: conf.App.GracefulTimeout,
	}

	m := middleware.NewMiddleware(conf, cacheRepo)
	// options middleware
	app.Pre(echomiddleware.RemoveTrailingSlash())
	app.Use(echomiddleware.Recover())
	app.Use(echomiddleware.RequestID())
	if conf.App.HTTPTimeout > 0 {
		app.Use(echomiddleware.ContextTimeout(conf.App.HTTPTimeout))
	}
	app.Use(m.Context())
	app.Use(m.Logger())

	if nr != nil {
		app.Use(nrecho.Middleware(nr))

		app.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error {
				txn := newrelic.FromContext(c.Request().Context())
				if txn != nil {
					txn.AddAttribute("x-correlation-id", ctxdata.GetCorrelationId(c.Request().Context()))
				}

				return next(c)
			}
		})
	}

	// pprof
	// Endpoint debug/pprof/
	env := config.StringToEnvironment(conf.App.Env)
	if env != config.PROD_ENV {
		pprof.Register(app)
	}

	// prometheus metrics
	if mtc != nil {
		app.Use(mtc.EchoMiddleware(conf.App.Name, "http"))
	}
	app.GET("/metrics", echoprometheus.NewHandler())

	// swagger
	app.GET("/swagger/*", echoSwagger.WrapHandler)

	// apiGroup
	apiGroup := app.Group("/api")

	// health check
	health.New(apiGroup)

	// v1Group
	v1Group := apiGroup.Group("/v1")
	// v1Group middleware
	v1Group.Use(m.InternalAuth())
	// v1Group register api
	v1intent.New(v1Group, srv.Intent)
	v1binding.New(v1Group, srv.Identity, m)
	v1transfer.New(v1Group, srv.Clearing, m)
	v1observation.New(v1Group, srv.Observation, conf.Observation.HistoryMaxLimit)

	// prepare an endpoint for 'Not Found'.
	app.Any("*", func(c echo.Context) error {
		errorMessage := fmt.Errorf("route '%s' does not exist in this API", c.Request().URL)
		return commonhttp.RestErrorResponse(c, nethttp.StatusNotFound, errorMessage)
	})

	return svc
}
