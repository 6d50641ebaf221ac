package consumer

import (
	"context"
	"fmt"
	nethttp "net/http"

	"github.com/sovr-labs/go-fp-clearing/internal/common/graceful"
	xlog "github.com/sovr-labs/go-fp-clearing/internal/common/log"
	"github.com/sovr-labs/go-fp-clearing/internal/common/metrics"
	"github.com/sovr-labs/go-fp-clearing/internal/config"
	"github.com/sovr-labs/go-fp-clearing/internal/deliveries/http/health"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo-contrib/pprof"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

type httpServer struct {
	e    *echo.Echo
	addr string
}

var _ graceful.ProcessStartStopper = (*httpServer)(nil)

func (s *httpServer) Start() graceful.ProcessStarter {
	return func() error {
		err := s.e.Start(s.addr)
		if err != nil && err != nethttp.ErrServerClosed {
			return err
		}
		return nil
	}
}

func (s *httpServer) Stop() graceful.ProcessStopper {
	return func(ctx context.Context) error {
		err := s.e.Shutdown(ctx)
		if err != nil {
			xlog.Errorf(ctx, "[SHUTDOWN] consumer HTTP server error: %v", err)
		}
		return err
	}
}

func (s *httpServer) Handler() nethttp.Handler {
	return s.e
}

// NewHTTPServer serves the health probe and prometheus metrics of a consumer
// process on the message broker port.
func NewHTTPServer(conf config.Config, mtc metrics.Metrics, check *health.HealthCheck) *httpServer {
	app := echo.New()
	app.HideBanner = true
	srv := &httpServer{e: app, addr: fmt.Sprintf(":%d", conf.MessageBroker.HTTPPort)}

	app.Pre(echomiddleware.RemoveTrailingSlash())
	app.Use(echomiddleware.Recover())
	app.Use(echomiddleware.RequestID())

	// Endpoint debug/pprof/
	if config.StringToEnvironment(conf.App.Env) != config.PROD_ENV {
		pprof.Register(app)
	}

	if mtc != nil {
		app.Use(mtc.EchoMiddleware(conf.App.Name, "consumer"))
	}
	app.GET("/metrics", echoprometheus.NewHandler())

	apiGroup := app.Group("/api")
	check.Route(apiGroup.Group("/health"))

	return srv
}
