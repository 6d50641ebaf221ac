package main

import (
	"context"
	"time"

	"github.com/sovr-labs/go-fp-clearing/cmd/setup"
	"github.com/sovr-labs/go-fp-clearing/internal/common/graceful"
	xlog "github.com/sovr-labs/go-fp-clearing/internal/common/log"
	"github.com/sovr-labs/go-fp-clearing/internal/deliveries/http"
)

func main() {
	var (
		ctx      = context.Background()
		starters []graceful.ProcessStarter
		stoppers []graceful.ProcessStopper
	)

	s, stopperContract, err := setup.Init("api")
	if err != nil {
		timeout := 5 * time.Second
		if s != nil && s.Config.App.GracefulTimeout != 0 {
			timeout = s.Config.App.GracefulTimeout
		}

		graceful.StopProcess(timeout, stopperContract...)

		xlog.Fatalf(ctx, "failed to setup app: %v", err)
	}

	httpServer := http.NewHTTPServer(ctx, s.Config, s.NewRelic, s.RepoCache, s.Service, s.Metrics)

	starters = append(starters, httpServer.Start())
	stoppers = append(stoppers, stopperContract...)
	stoppers = append(stoppers, httpServer.Stop())

	graceful.StartProcessAtBackground(starters...)
	graceful.StopProcessAtBackground(s.Config.App.GracefulTimeout, stoppers...)

	xlog.Info(ctx, "http server stopped!")
}
