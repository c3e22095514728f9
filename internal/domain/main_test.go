package domain_test

import (
	"os"
	"testing"

	"go.uber.org/zap"

	"github.com/davidbz/howl/internal/observability"
)

func TestMain(m *testing.M) {
	observability.SetLogger(zap.NewNop())
	os.Exit(m.Run())
}
