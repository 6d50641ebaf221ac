package job

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/sovr-labs/go-fp-clearing/internal/common"
	"github.com/sovr-labs/go-fp-clearing/internal/common/ctxdata"
	"github.com/sovr-labs/go-fp-clearing/internal/common/flag"
	"github.com/sovr-labs/go-fp-clearing/internal/common/log"
	"github.com/sovr-labs/go-fp-clearing/internal/config"
	v1maintenance "github.com/sovr-labs/go-fp-clearing/internal/deliveries/job/v1/maintenance"
	v1report "github.com/sovr-labs/go-fp-clearing/internal/deliveries/job/v1/report"
	"github.com/sovr-labs/go-fp-clearing/internal/services"

	"github.com/google/uuid"
)

var ErrUnknownJob = errors.New("invalid version or job name")

type JobRoutes map[string]map[string]func(ctx context.Context, date time.Time, flag flag.Job) error

type Job struct {
	Routes JobRoutes
	now    func() time.Time
}

func New(cfg config.Config, srv *services.Services) *Job {
	return &Job{
		Routes: newRoutes(srv.Attestation, srv.Identity, srv.Honoring, srv.Recon),
		now:    time.Now,
	}
}

func newRoutes(
	as services.AttestationService,
	is services.IdentityService,
	hs services.HonoringService,
	rs services.ReconService,
) JobRoutes {
	v1group := "v1"

	v1 := map[string]func(ctx context.Context, date time.Time, flag flag.Job) error{}
	merge(v1, v1maintenance.Routes(as, is, hs))
	merge(v1, v1report.Routes(rs))

	return JobRoutes{
		v1group: v1,
		// add other version routes
	}
}

// Names lists job names per version. Handlers are bound to nil services, so
// it can run without any infrastructure.
func Names() map[string][]string {
	names := make(map[string][]string)
	for version, l := range newRoutes(nil, nil, nil, nil) {
		for name := range l {
			names[version] = append(names[version], name)
		}
		sort.Strings(names[version])
	}
	return names
}

func merge(dst, src map[string]func(ctx context.Context, date time.Time, flag flag.Job) error) {
	for name, fn := range src {
		dst[name] = fn
	}
}

// Start runs a single job. The running date defaults to today in UTC when
// the flag is empty.
func (j *Job) Start(ctx context.Context, flag flag.Job) error {
	startedAt := j.now()
	ctx = ctxdata.Sets(ctx, ctxdata.SetCorrelationId(uuid.New().String()))

	fn, ok := j.Routes[flag.Version][flag.JobName]
	if !ok {
		log.LogJob(ctx, flag.JobName, flag.Version, flag.Date, startedAt, ErrUnknownJob)
		return ErrUnknownJob
	}

	var err error
	defer func() {
		log.LogJob(ctx, flag.JobName, flag.Version, flag.Date, startedAt, err)
	}()

	runningDate := startedAt.UTC().Truncate(24 * time.Hour)
	if flag.Date != "" {
		runningDate, err = common.ParseStringToDatetime(common.DateFormatYYYYMMDD, flag.Date)
		if err != nil {
			return err
		}
	}

	err = fn(ctx, runningDate, flag)
	return err
}
