package usecase

import (
	"context"

	"github.com/trebuchet-org/treb-deployments/internal/domain/models"
)

// ManageLedger inspects and discards pending temp ledger entries
type ManageLedger struct {
	ledger TempLedger
}

func NewManageLedger(ledger TempLedger) *ManageLedger {
	return &ManageLedger{ledger: ledger}
}

// Pending returns the entries awaiting sync, in ledger order
func (m *ManageLedger) Pending(ctx context.Context) ([]models.Deployment, error) {
	return m.ledger.ReadAll(ctx)
}

// Discard drops every pending entry without syncing it
func (m *ManageLedger) Discard(ctx context.Context) (int, error) {
	entries, err := m.ledger.ReadAll(ctx)
	if err != nil {
		return 0, err
	}
	if err := m.ledger.Clear(ctx); err != nil {
		return 0, err
	}
	return len(entries), nil
}
