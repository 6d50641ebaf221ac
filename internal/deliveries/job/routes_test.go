package job

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/sovr-labs/go-fp-clearing/internal/common"
	"github.com/sovr-labs/go-fp-clearing/internal/common/flag"
	xlog "github.com/sovr-labs/go-fp-clearing/internal/common/log"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	xlog.InitForTest()
	os.Exit(m.Run())
}

func newTestJob(calls *[]time.Time, ret error) *Job {
	return &Job{
		Routes: JobRoutes{
			"v1": {
				"sweep": func(ctx context.Context, date time.Time, flag flag.Job) error {
					*calls = append(*calls, date)
					return ret
				},
			},
		},
		now: func() time.Time { return time.Date(2026, 3, 1, 17, 30, 0, 0, time.UTC) },
	}
}

func TestJob_Start(t *testing.T) {
	t.Run("date flag", func(t *testing.T) {
		var calls []time.Time
		j := newTestJob(&calls, nil)

		require.NoError(t, j.Start(context.Background(), flag.Job{JobName: "sweep", Version: "v1", Date: "2026-02-14"}))
		require.Len(t, calls, 1)
		assert.Equal(t, time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC), calls[0])
	})

	t.Run("defaults to today", func(t *testing.T) {
		var calls []time.Time
		j := newTestJob(&calls, nil)

		require.NoError(t, j.Start(context.Background(), flag.Job{JobName: "sweep", Version: "v1"}))
		require.Len(t, calls, 1)
		assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), calls[0])
	})

	t.Run("malformed date", func(t *testing.T) {
		var calls []time.Time
		j := newTestJob(&calls, nil)

		err := j.Start(context.Background(), flag.Job{JobName: "sweep", Version: "v1", Date: "14/02/2026"})
		assert.ErrorIs(t, err, common.ErrInvalidFormatDate)
		assert.Empty(t, calls)
	})

	t.Run("handler error", func(t *testing.T) {
		var calls []time.Time
		j := newTestJob(&calls, assert.AnError)

		assert.ErrorIs(t, j.Start(context.Background(), flag.Job{JobName: "sweep", Version: "v1"}), assert.AnError)
	})

	t.Run("unknown job", func(t *testing.T) {
		var calls []time.Time
		j := newTestJob(&calls, nil)

		assert.ErrorIs(t, j.Start(context.Background(), flag.Job{JobName: "sweep", Version: "v2"}), ErrUnknownJob)
		assert.Empty(t, calls)
	})
}

func TestNames(t *testing.T) {
	assert.Equal(t, map[string][]string{
		"v1": {"attestation_expiry", "honoring_retry", "micro_deposit_expiry", "mirror_recon"},
	}, Names())
}
