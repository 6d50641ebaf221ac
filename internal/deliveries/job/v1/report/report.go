package report

import (
	"context"
	"errors"
	"time"

	"github.com/sovr-labs/go-fp-clearing/internal/common"
	"github.com/sovr-labs/go-fp-clearing/internal/common/flag"
	xlog "github.com/sovr-labs/go-fp-clearing/internal/common/log"
	"github.com/sovr-labs/go-fp-clearing/internal/services"
)

const JobMirrorRecon = "mirror_recon"

type reportHandler struct {
	reconSrv services.ReconService
}

func Routes(rs services.ReconService) map[string]func(ctx context.Context, date time.Time, flag flag.Job) error {
	handler := reportHandler{
		reconSrv: rs,
	}
	return map[string]func(ctx context.Context, date time.Time, flag flag.Job) error{
		JobMirrorRecon: handler.MirrorRecon,
		// add more job here
	}
}

// MirrorRecon compares mirrored balances with the engine for the running
// date. A report that was already uploaded for that date is not an error.
func (rh *reportHandler) MirrorRecon(ctx context.Context, date time.Time, flag flag.Job) error {
	res, err := rh.reconSrv.MirrorRecon(ctx, date)
	if errors.Is(err, common.ErrDataExist) {
		xlog.Info(ctx, "MirrorRecon", xlog.String("status", "report already exists"))
		return nil
	}
	if err != nil {
		return err
	}

	fields := []xlog.Field{
		xlog.Int("accounts", res.Accounts),
		xlog.Int("drifts", len(res.Drifts)),
	}
	if res.ReportURL != "" {
		fields = append(fields, xlog.String("url", res.ReportURL))
	}
	if len(res.Drifts) > 0 {
		xlog.Warn(ctx, "MirrorRecon", fields...)
		return nil
	}
	xlog.Info(ctx, "MirrorRecon", fields...)

	return nil
}
