package graceful

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	xlog "github.com/sovr-labs/go-fp-clearing/internal/common/log"

	"golang.org/x/exp/slices"
)

type ProcessStarter func() error

type ProcessStopper func(ctx context.Context) error

type ProcessStartStopper interface {
	Start() ProcessStarter
	Stop() ProcessStopper
}

// StartProcessAtBackground runs every starter on its own goroutine.
func StartProcessAtBackground(ps ...ProcessStarter) {
	for _, p := range ps {
		if p == nil {
			continue
		}
		go func(start ProcessStarter) {
			if err := start(); err != nil {
				xlog.Warn(context.Background(), "[GRACEFUL] background process exited", xlog.Err(err))
			}
		}(p)
	}
}

// StopProcessAtBackground blocks until SIGINT, SIGTERM or SIGUSR1 arrives and
// then stops every process in reverse registration order.
func StopProcessAtBackground(duration time.Duration, ps ...ProcessStopper) {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM, syscall.SIGUSR1)
	defer signal.Stop(sig)

	received := <-sig
	xlog.Info(context.Background(), "[GRACEFUL] signal received", xlog.String("signal", received.String()))

	StopProcess(duration, ps...)
}

func StopProcess(duration time.Duration, ps ...ProcessStopper) {
	stoppers := slices.Clone(ps)
	slices.Reverse(stoppers)

	for _, p := range stoppers {
		if p == nil {
			continue
		}
		stopWithTimeout(duration, p)
	}
}

func stopWithTimeout(duration time.Duration, p ProcessStopper) {
	ctx, cancel := context.WithTimeout(context.Background(), duration)
	defer cancel()

	if err := p(ctx); err != nil {
		xlog.Warn(ctx, "[GRACEFUL] failed to stop process", xlog.Err(err))
	}
}
