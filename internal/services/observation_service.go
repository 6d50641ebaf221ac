package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sovr-labs/go-fp-clearing/internal/common"
	xlog "github.com/sovr-labs/go-fp-clearing/internal/common/log"
	"github.com/sovr-labs/go-fp-clearing/internal/common/pagination"
	"github.com/sovr-labs/go-fp-clearing/internal/common/publisher"
	"github.com/sovr-labs/go-fp-clearing/internal/models"
	"github.com/sovr-labs/go-fp-clearing/internal/monitoring"
	"github.com/sovr-labs/go-fp-clearing/internal/repositories"
	"github.com/sovr-labs/go-fp-clearing/internal/services/transformer"

	"github.com/shopspring/decimal"
)

//go:generate mockgen -source observation_service.go -destination mock/observation_service_mock.go -package mock

type ObservationService interface {
	// Observe mirrors one posted transfer. It is idempotent on the transfer id.
	Observe(ctx context.Context, event models.ClearingEvent) (models.ObserveResult, error)
	BalanceOf(ctx context.Context, accountID string) (decimal.Decimal, error)
	History(ctx context.Context, filter models.HistoryFilter) (models.HistoryPage, error)
	Observations(ctx context.Context, transferID string) (models.ObservationSet, error)
	// Correct re-decomposes a transfer with the current chart and appends the
	// records that move the mirror to the new result. Nothing is returned when
	// the mirror already matches.
	Correct(ctx context.Context, transferID string) (models.ObservationSet, error)
}

type observation service

var _ ObservationService = (*observation)(nil)

func (ob *observation) Observe(ctx context.Context, event models.ClearingEvent) (res models.ObserveResult, err error) {
	monitor := monitoring.New(ctx, monitoring.WithAttribute("transferId", event.TransferID))
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	defer func() {
		label := string(res)
		switch {
		case errors.Is(err, common.ErrObservationImbalance):
			label = models.ReasonCode(common.ErrObservationImbalance)
		case err != nil:
			label = "ERROR"
		}
		ob.srv.metrics.GetClearingPrometheus().RecordObservation(label)
	}()

	repo := ob.srv.sqlRepo.GetObservationRepository()
	exists, err := repo.ExistsForTransfer(ctx, event.TransferID)
	if err != nil {
		return "", err
	}
	if exists {
		return models.AlreadyObserved, nil
	}

	chart, err := ob.srv.ruleSetRepo.GetChart(ctx)
	if err != nil {
		return "", err
	}

	set, err := ob.decompose(ctx, chart, event)
	if err != nil {
		return "", err
	}

	var inserted int64
	err = ob.srv.sqlRepo.Atomic(ctx, func(ctx context.Context, r repositories.SQLRepository) (err error) {
		inserted, err = r.GetObservationRepository().InsertSet(ctx, set)
		return err
	})
	if err != nil {
		return "", checkDatabaseError(ctx, err, "insert observation set")
	}
	if inserted == 0 {
		return models.AlreadyObserved, nil
	}

	xlog.Info(ctx, "[OBSERVATION.OBSERVE]",
		xlog.String("transferId", event.TransferID),
		xlog.String("kind", string(event.Kind)),
		xlog.String("chartVersion", chart.Version),
		xlog.Int64("legs", inserted))

	return models.Observed, nil
}

// decompose builds the balanced set for event. Any failure is alerted: the
// event cannot be mirrored until the chart is fixed.
func (ob *observation) decompose(ctx context.Context, chart models.ChartOfAccounts, event models.ClearingEvent) (models.ObservationSet, error) {
	set, err := transformer.Decompose(ctx, chart, ob.srv.idgenerator, event)
	if err == nil {
		err = set.Validate()
	}
	if err == nil {
		return set, nil
	}

	if !errors.Is(err, common.ErrObservationImbalance) {
		err = fmt.Errorf("%w: %w", common.ErrObservationImbalance, err)
	}

	ob.alert(ctx, models.ObservationAlert{
		TransferID:   event.TransferID,
		Kind:         string(event.Kind),
		ChartVersion: chart.Version,
		Reason:       err.Error(),
		RaisedAt:     ob.srv.now(),
	})

	return nil, err
}

func (ob *observation) alert(ctx context.Context, alert models.ObservationAlert) {
	xlog.Error(ctx, "[OBSERVATION.IMBALANCE]",
		xlog.String("transferId", alert.TransferID),
		xlog.String("chartVersion", alert.ChartVersion),
		xlog.String("reason", alert.Reason))

	if err := ob.srv.alertPub.Publish(ctx, alert, publisher.WithKey(alert.TransferID)); err != nil {
		xlog.Error(ctx, "[OBSERVATION.ALERT] publish failed", xlog.String("transferId", alert.TransferID), xlog.Err(err))
	}
}

// BalanceOf folds every record of the account, signed by its normal balance.
func (ob *observation) BalanceOf(ctx context.Context, accountID string) (res decimal.Decimal, err error) {
	monitor := monitoring.New(ctx, monitoring.WithAttribute("accountId", accountID))
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	chart, err := ob.srv.ruleSetRepo.GetChart(ctx)
	if err != nil {
		return decimal.Zero, err
	}

	account, ok := chart.Index().Account(accountID)
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s", common.ErrUnknownAccount, accountID)
	}

	totals, err := ob.srv.sqlRepo.GetObservationRepository().SumByAccount(ctx, accountID, ob.srv.now())
	if err != nil {
		return decimal.Zero, err
	}

	return totals.Signed(account.NormalBalance), nil
}

func (ob *observation) History(ctx context.Context, filter models.HistoryFilter) (res models.HistoryPage, err error) {
	monitor := monitoring.New(ctx, monitoring.WithAttribute("accountId", filter.AccountID))
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	maxLimit := ob.srv.conf.Observation.HistoryMaxLimit + pagination.OverFetchOffset
	if filter.Limit <= 0 {
		filter.Limit = pagination.DefaultLimit + pagination.OverFetchOffset
	}
	if ob.srv.conf.Observation.HistoryMaxLimit > 0 && filter.Limit > maxLimit {
		filter.Limit = maxLimit
	}

	records, err := ob.srv.sqlRepo.GetObservationRepository().History(ctx, filter)
	if err != nil {
		return res, err
	}

	pageSize := filter.Limit - pagination.OverFetchOffset
	if len(records) > pageSize {
		records = records[:pageSize]
		res.NextCursor = records[len(records)-1].GetCursor()
	}
	res.Records = records

	return res, nil
}

func (ob *observation) Observations(ctx context.Context, transferID string) (res models.ObservationSet, err error) {
	monitor := monitoring.New(ctx, monitoring.WithAttribute("transferId", transferID))
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	return ob.srv.sqlRepo.GetObservationRepository().ListByTransfer(ctx, transferID)
}

func (ob *observation) Correct(ctx context.Context, transferID string) (res models.ObservationSet, err error) {
	monitor := monitoring.New(ctx, monitoring.WithAttribute("transferId", transferID))
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	record, err := ob.srv.sqlRepo.GetTransferStateRepository().GetByID(ctx, transferID)
	if err != nil {
		return nil, err
	}
	if !record.ToClearingResult().IsFinalized() {
		return nil, fmt.Errorf("%w: %s is %s", common.ErrTransferNotFinalized, transferID, record.State)
	}
	event := record.ToClearingEvent()

	existing, err := ob.srv.sqlRepo.GetObservationRepository().ListByTransfer(ctx, transferID)
	if err != nil {
		return nil, err
	}
	if len(existing) == 0 {
		if _, err = ob.Observe(ctx, event); err != nil {
			return nil, err
		}
		return ob.srv.sqlRepo.GetObservationRepository().ListByTransfer(ctx, transferID)
	}

	chart, err := ob.srv.ruleSetRepo.GetChart(ctx)
	if err != nil {
		return nil, err
	}

	fresh, err := ob.decompose(ctx, chart, event)
	if err != nil {
		return nil, err
	}

	corrections := transformer.Corrections(existing, fresh, ob.srv.idgenerator)
	if len(corrections) == 0 {
		return nil, nil
	}

	err = ob.srv.sqlRepo.Atomic(ctx, func(ctx context.Context, r repositories.SQLRepository) error {
		_, err := r.GetObservationRepository().InsertSet(ctx, corrections)
		return err
	})
	if err != nil {
		return nil, checkDatabaseError(ctx, err, "insert corrections")
	}

	xlog.Info(ctx, "[OBSERVATION.CORRECT]",
		xlog.String("transferId", transferID),
		xlog.String("chartVersion", chart.Version),
		xlog.Int("records", len(corrections)))

	return corrections, nil
}
