package fs

import (
	"testing"

	"github.com/trebuchet-org/treb-deployments/internal/domain/config"
)

func newTestConfig(t *testing.T) *config.RuntimeConfig {
	t.Helper()
	return &config.RuntimeConfig{
		DeploymentsDir: t.TempDir(),
		Context:        "devnet",
	}
}
