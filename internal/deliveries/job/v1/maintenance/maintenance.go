package maintenance

import (
	"context"
	"time"

	"github.com/sovr-labs/go-fp-clearing/internal/common/flag"
	xlog "github.com/sovr-labs/go-fp-clearing/internal/common/log"
	"github.com/sovr-labs/go-fp-clearing/internal/services"
)

const (
	JobAttestationExpiry  = "attestation_expiry"
	JobMicroDepositExpiry = "micro_deposit_expiry"
	JobHonoringRetry      = "honoring_retry"
)

type maintenanceHandler struct {
	attestationSrv services.AttestationService
	identitySrv    services.IdentityService
	honoringSrv    services.HonoringService
	now            func() time.Time
}

func Routes(as services.AttestationService, is services.IdentityService, hs services.HonoringService) map[string]func(ctx context.Context, date time.Time, flag flag.Job) error {
	handler := maintenanceHandler{
		attestationSrv: as,
		identitySrv:    is,
		honoringSrv:    hs,
		now:            time.Now,
	}
	return map[string]func(ctx context.Context, date time.Time, flag flag.Job) error{
		JobAttestationExpiry:  handler.ExpireAttestations,
		JobMicroDepositExpiry: handler.ExpireMicroDeposits,
		JobHonoringRetry:      handler.RetryHonoring,
	}
}

// ExpireAttestations marks every ISSUED attestation past its expiry as
// EXPIRED. The sweep runs against the wall clock, not the job date.
func (mh *maintenanceHandler) ExpireAttestations(ctx context.Context, date time.Time, flag flag.Job) error {
	n, err := mh.attestationSrv.ExpireStale(ctx, mh.now())
	if err != nil {
		return err
	}
	xlog.Info(ctx, "ExpireAttestations", xlog.Int64("expired", n))

	return nil
}

func (mh *maintenanceHandler) ExpireMicroDeposits(ctx context.Context, date time.Time, flag flag.Job) error {
	n, err := mh.identitySrv.ExpireMicroDeposits(ctx, mh.now())
	if err != nil {
		return err
	}
	xlog.Info(ctx, "ExpireMicroDeposits", xlog.Int64("failed", n))

	return nil
}

func (mh *maintenanceHandler) RetryHonoring(ctx context.Context, date time.Time, flag flag.Job) error {
	n, err := mh.honoringSrv.RetryPending(ctx)
	if err != nil {
		return err
	}
	xlog.Info(ctx, "RetryHonoring", xlog.Int("dispatched", n))

	return nil
}
