package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
)

type CloudStoragePayload struct {
	Filename string
	Path     string
}

func (c CloudStoragePayload) GetFilePath() string {
	if c.Path == "" {
		return c.Filename
	}
	return fmt.Sprintf("%s/%s", c.Path, c.Filename)
}

type WriteStreamResult struct {
	errCh <-chan error
	url   string
}

func NewWriteStreamResult(errCh <-chan error, url string) WriteStreamResult {
	return WriteStreamResult{errCh: errCh, url: url}
}

// Wait blocks until the writer is closed and returns every write error.
func (r WriteStreamResult) Wait() (string, error) {
	var errs *multierror.Error
	for e := range r.errCh {
		errs = multierror.Append(errs, e)
	}

	return r.url, errs.ErrorOrNil()
}

type ReportName string

const MirrorReconReportName ReportName = "mirror_recon"

const CSVSeparator = ";"

var MirrorReconHeader = []string{"accountId", "mirrorBalance", "engineBalance", "difference"}

// MirrorReconPayload places one report per day under
// mirror_recon/<year>/<month>/<yyyymmdd>.csv.
func MirrorReconPayload(date time.Time) CloudStoragePayload {
	return CloudStoragePayload{
		Filename: fmt.Sprintf("%d%02d%02d.csv", date.Year(), date.Month(), date.Day()),
		Path:     fmt.Sprintf("%s/%d/%d", MirrorReconReportName, date.Year(), date.Month()),
	}
}

func (d BalanceDrift) ToReconFormat() []string {
	return []string{d.AccountID, d.MirrorBalance.String(), d.EngineBalance.String(), d.Difference.String()}
}

func (d BalanceDrift) CSVLine() string {
	return strings.Join(d.ToReconFormat(), CSVSeparator)
}

// MirrorReconReport summarises one reconciliation run.
type MirrorReconReport struct {
	Date      time.Time      `json:"date"`
	Accounts  int            `json:"accounts"`
	Drifts    []BalanceDrift `json:"drifts"`
	ReportURL string         `json:"reportUrl,omitempty"`
}
