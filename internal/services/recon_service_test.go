package services_test

import (
	"context"
	"strings"
	"testing"

	"github.com/sovr-labs/go-fp-clearing/internal/common"
	"github.com/sovr-labs/go-fp-clearing/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func (f *fixture) observedTransfer(key, amount string) models.ClearingEvent {
	f.t.Helper()

	req := payrollRequest(key, amount)
	req.Kind = string(models.IntentKindTransfer)
	req.Destination = models.PartyRequest{AccountID: "acc-settlement"}

	rec, _, err := f.srv.Intent.Submit(f.ctx, req)
	require.NoError(f.t, err)

	for _, e := range f.clearingPub.events() {
		if e.TransferID == rec.TransferID {
			_, err = f.srv.Observation.Observe(f.ctx, e)
			require.NoError(f.t, err)
			return e
		}
	}
	f.t.Fatalf("no clearing event for %s", rec.TransferID)
	return models.ClearingEvent{}
}

func TestRecon_MirrorRecon(t *testing.T) {
	t.Run("mirror matches the engine", func(t *testing.T) {
		f := newFixture(t)
		f.observedTransfer("tr-1", "50.00")
		f.observedTransfer("tr-2", "25.00")

		payload := models.MirrorReconPayload(testStart)
		f.report.EXPECT().IsObjectExist(gomock.Any(), &payload).Return(false, "")

		res, err := f.srv.Recon.MirrorRecon(f.ctx, testStart)
		require.NoError(t, err)
		assert.Equal(t, 8, res.Accounts)
		assert.Empty(t, res.Drifts)
		assert.Empty(t, res.ReportURL)
	})

	t.Run("drift is reported", func(t *testing.T) {
		f := newFixture(t)
		event := f.observedTransfer("tr-1", "50.00")

		stray := "obs-stray"
		f.store.mu.Lock()
		f.store.observations = append(f.store.observations,
			models.ObservationRecord{
				ID: stray + "-1", ClearingTransferID: event.TransferID, LegIndex: 7, AccountID: "acc-employer",
				Debit: decimal.RequireFromString("5"), Credit: decimal.Zero, ObservedAt: testStart, ChartVersion: "chart-v1",
			},
			models.ObservationRecord{
				ID: stray + "-2", ClearingTransferID: event.TransferID, LegIndex: 8, AccountID: "acc-fee-revenue",
				Debit: decimal.Zero, Credit: decimal.RequireFromString("5"), ObservedAt: testStart, ChartVersion: "chart-v1",
			},
		)
		f.store.mu.Unlock()

		var lines []string
		f.report.EXPECT().IsObjectExist(gomock.Any(), gomock.Any()).Return(false, "")
		f.report.EXPECT().
			WriteStream(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, payload *models.CloudStoragePayload, data <-chan []byte) models.WriteStreamResult {
				for b := range data {
					lines = append(lines, strings.TrimSpace(string(b)))
				}
				errCh := make(chan error)
				close(errCh)
				return models.NewWriteStreamResult(errCh, "gs://reports/"+payload.GetFilePath())
			})

		res, err := f.srv.Recon.MirrorRecon(f.ctx, testStart)
		require.NoError(t, err)
		assert.Equal(t, "gs://reports/mirror_recon/2026/3/20260301.csv", res.ReportURL)

		require.Len(t, res.Drifts, 2)
		assert.Equal(t, "acc-employer", res.Drifts[0].AccountID)
		assertDecimal(t, "-55", res.Drifts[0].MirrorBalance)
		assertDecimal(t, "-50", res.Drifts[0].EngineBalance)
		assertDecimal(t, "-5", res.Drifts[0].Difference)
		assert.Equal(t, "acc-fee-revenue", res.Drifts[1].AccountID)
		assertDecimal(t, "5", res.Drifts[1].Difference)

		require.Len(t, lines, 3)
		assert.Equal(t, strings.Join(models.MirrorReconHeader, models.CSVSeparator), lines[0])
		assert.True(t, strings.HasPrefix(lines[1], "acc-employer;"))
	})

	t.Run("report already exists", func(t *testing.T) {
		f := newFixture(t)
		f.report.EXPECT().IsObjectExist(gomock.Any(), gomock.Any()).Return(true, "gs://reports/x.csv")

		_, err := f.srv.Recon.MirrorRecon(f.ctx, testStart)
		assert.ErrorIs(t, err, common.ErrDataExist)
	})
}
