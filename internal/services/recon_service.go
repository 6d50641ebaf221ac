package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sovr-labs/go-fp-clearing/internal/common"
	"github.com/sovr-labs/go-fp-clearing/internal/common/clearingengine"
	localstorage "github.com/sovr-labs/go-fp-clearing/internal/common/local_storage"
	xlog "github.com/sovr-labs/go-fp-clearing/internal/common/log"
	"github.com/sovr-labs/go-fp-clearing/internal/models"
	"github.com/sovr-labs/go-fp-clearing/internal/monitoring"

	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"
)

const defaultReconBatch = 10

//go:generate mockgen -source recon_service.go -destination mock/recon_service_mock.go -package mock

type ReconService interface {
	// MirrorRecon compares every mirrored balance with the engine and uploads
	// a CSV of the drifts for date. Nothing is uploaded when nothing drifted.
	MirrorRecon(ctx context.Context, date time.Time) (*models.MirrorReconReport, error)
}

type recon service

var _ ReconService = (*recon)(nil)

func (rc *recon) MirrorRecon(ctx context.Context, date time.Time) (res *models.MirrorReconReport, err error) {
	monitor := monitoring.New(ctx, monitoring.WithAttribute("date", date.Format(time.DateOnly)))
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	payload := models.MirrorReconPayload(date)
	if exist, url := rc.srv.reportRepo.IsObjectExist(ctx, &payload); exist {
		return nil, fmt.Errorf("%w: report %s", common.ErrDataExist, url)
	}

	snapshot, err := rc.openSnapshot(date)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cErr := snapshot.Close(); cErr != nil {
			xlog.Warn(ctx, "[MIRROR-RECON] close snapshot", xlog.Err(cErr))
		}
		if cErr := snapshot.Clean(); cErr != nil {
			xlog.Warn(ctx, "[MIRROR-RECON] clean snapshot", xlog.Err(cErr))
		}
	}()

	if err = rc.foldMirror(ctx, snapshot); err != nil {
		return nil, err
	}

	drifts, accounts, err := rc.compare(ctx, snapshot)
	if err != nil {
		return nil, err
	}

	res = &models.MirrorReconReport{Date: date, Accounts: accounts, Drifts: drifts}

	fields := []xlog.Field{
		xlog.Int("total-accounts", accounts),
		xlog.Int("total-difference", len(drifts)),
	}
	if len(drifts) == 0 {
		fields = append(fields, xlog.String("status", "mirror matches the engine"))
		xlog.Info(ctx, "[MIRROR-RECON]", fields...)
		return res, nil
	}
	fields = append(fields, xlog.String("status", "mirror drifted from the engine"))
	xlog.Warn(ctx, "[MIRROR-RECON]", fields...)

	chanData := make(chan []byte)
	go func() {
		defer close(chanData)
		chanData <- []byte(fmt.Sprintf("%s\n", strings.Join(models.MirrorReconHeader, models.CSVSeparator)))
		for _, d := range drifts {
			chanData <- []byte(fmt.Sprintf("%s\n", d.CSVLine()))
		}
	}()

	res.ReportURL, err = rc.srv.reportRepo.WriteStream(ctx, &payload, chanData).Wait()
	if err != nil {
		return nil, err
	}

	return res, nil
}

func (rc *recon) openSnapshot(date time.Time) (localstorage.LocalStorage[models.BalanceDrift], error) {
	bucket := fmt.Sprintf("mirror-recon-%s", date.Format("20060102"))
	if rc.srv.conf.App.LocalStorageDir == "" {
		return localstorage.NewInMemoryBadgerStorage[models.BalanceDrift](bucket)
	}
	return localstorage.NewBadgerStorage[models.BalanceDrift](rc.srv.conf.App.LocalStorageDir, bucket)
}

// foldMirror stores the signed mirror balance of every chart account. Accounts
// without records are kept at zero so engine-only movement still drifts.
func (rc *recon) foldMirror(ctx context.Context, snapshot localstorage.LocalStorage[models.BalanceDrift]) error {
	chart, err := rc.srv.ruleSetRepo.GetChart(ctx)
	if err != nil {
		return err
	}
	index := chart.Index()

	for _, account := range index.AllAccounts() {
		if err = snapshot.Set(account.ID, models.BalanceDrift{AccountID: account.ID}); err != nil {
			return err
		}
	}

	totals, err := rc.srv.sqlRepo.GetObservationRepository().SumAllAccounts(ctx)
	if err != nil {
		return err
	}

	for _, t := range totals {
		account, ok := index.Account(t.AccountID)
		if !ok {
			xlog.Warn(ctx, "[MIRROR-RECON] account not in chart", xlog.String("accountId", t.AccountID))
			account = models.Account{ID: t.AccountID, NormalBalance: models.NormalBalanceDebit}
		}
		if err = snapshot.Set(t.AccountID, models.BalanceDrift{
			AccountID:     t.AccountID,
			MirrorBalance: t.Signed(account.NormalBalance),
		}); err != nil {
			return err
		}
	}

	return nil
}

// compare asks the engine for each snapshot account, at most ReconBatch at a
// time.
func (rc *recon) compare(ctx context.Context, snapshot localstorage.LocalStorage[models.BalanceDrift]) ([]models.BalanceDrift, int, error) {
	var entries []models.BalanceDrift
	err := snapshot.ForEach("", func(_ string, d models.BalanceDrift) error {
		entries = append(entries, d)
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	limit := rc.srv.conf.Observation.ReconBatch
	if limit <= 0 {
		limit = defaultReconBatch
	}

	var (
		mu     sync.Mutex
		drifts []models.BalanceDrift
	)
	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(limit)
	for _, entry := range entries {
		entry := entry
		group.Go(func() error {
			balance, err := rc.srv.engine.GetAccountBalance(gctx, entry.AccountID)
			switch {
			case errors.Is(err, clearingengine.ErrAccountNotFound):
				entry.EngineBalance = decimal.Zero
			case err != nil:
				return fmt.Errorf("engine balance of %s: %w", entry.AccountID, err)
			default:
				entry.EngineBalance = balance.Posted
			}

			entry.Difference = entry.MirrorBalance.Sub(entry.EngineBalance)
			if entry.Difference.IsZero() {
				return nil
			}

			mu.Lock()
			drifts = append(drifts, entry)
			mu.Unlock()
			return nil
		})
	}
	if err = group.Wait(); err != nil {
		return nil, 0, err
	}

	slices.SortFunc(drifts, func(a, b models.BalanceDrift) int {
		return strings.Compare(a.AccountID, b.AccountID)
	})

	return drifts, len(entries), nil
}
