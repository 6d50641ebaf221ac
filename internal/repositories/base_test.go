package repositories

import (
	"os"
	"testing"

	xlog "github.com/sovr-labs/go-fp-clearing/internal/common/log"
)

func TestMain(m *testing.M) {
	xlog.InitForTest()
	os.Exit(m.Run())
}
