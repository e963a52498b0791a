package fs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/treb-deployments/internal/domain"
	"github.com/trebuchet-org/treb-deployments/internal/domain/config"
	"github.com/trebuchet-org/treb-deployments/internal/domain/models"
	"github.com/trebuchet-org/treb-deployments/internal/usecase"
)

// TempLedgerFile is the name of the pending-deployments document inside a context
const TempLedgerFile = ".deploy"

// TempLedger implements usecase.TempLedger as a single JSON object mapping
// deployment names to addresses. Key order is preserved on rewrite.
type TempLedger struct {
	path string
}

// NewTempLedger creates a new TempLedger for the configured context
func NewTempLedger(cfg *config.RuntimeConfig) *TempLedger {
	return &TempLedger{path: filepath.Join(cfg.ContextDir(), TempLedgerFile)}
}

// Path returns the location of the ledger document
func (l *TempLedger) Path() string {
	return l.path
}

// Append sets name to address, keeping the position of an existing key
func (l *TempLedger) Append(ctx context.Context, name string, address common.Address) error {
	entries, err := l.ReadAll(ctx)
	if err != nil {
		return err
	}

	replaced := false
	for i := range entries {
		if entries[i].Name == name {
			entries[i].Address = address
			replaced = true
			break
		}
	}
	if !replaced {
		entries = append(entries, models.Deployment{Name: name, Address: address})
	}

	return l.write(entries)
}

// ReadAll returns every entry in document order, creating an empty ledger
// if none exists yet
func (l *TempLedger) ReadAll(_ context.Context) ([]models.Deployment, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read temp ledger: %w", err)
		}
		if err := l.write(nil); err != nil {
			return nil, fmt.Errorf("failed to initialize temp ledger: %w", err)
		}
		return []models.Deployment{}, nil
	}

	entries, err := decodeOrderedAddresses(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse temp ledger %s: %w", l.path, err)
	}
	return entries, nil
}

// Clear removes the ledger document
func (l *TempLedger) Clear(_ context.Context) error {
	err := os.Remove(l.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete temp ledger: %w", err)
	}
	return nil
}

func (l *TempLedger) write(entries []models.Deployment) error {
	data, err := encodeOrderedAddresses(entries)
	if err != nil {
		return err
	}
	if err := writeFileAtomic(l.path, data); err != nil {
		return fmt.Errorf("failed to write temp ledger: %w", err)
	}
	return nil
}

// decodeOrderedAddresses decodes a JSON object of name -> address strings
// keeping the key order of the document. Later duplicates overwrite earlier
// values in place.
func decodeOrderedAddresses(data []byte) ([]models.Deployment, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected JSON object")
	}

	var entries orderedAddresses
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		name, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key")
		}

		var value string
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("entry %s: %w", name, err)
		}
		if err := entries.set(name, value); err != nil {
			return nil, err
		}
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("unexpected data after JSON object")
	}

	return entries.list(), nil
}

// orderedAddresses collects name -> address pairs in first-seen order.
// Later duplicates overwrite earlier values in place.
type orderedAddresses struct {
	entries []models.Deployment
	index   map[string]int
}

func (o *orderedAddresses) set(name, value string) error {
	if !common.IsHexAddress(value) {
		return fmt.Errorf("entry %s: %w %q", name, domain.ErrInvalidAddress, value)
	}

	d := models.Deployment{Name: name, Address: common.HexToAddress(value)}
	if i, seen := o.index[name]; seen {
		o.entries[i] = d
		return nil
	}
	if o.index == nil {
		o.index = make(map[string]int)
	}
	o.index[name] = len(o.entries)
	o.entries = append(o.entries, d)
	return nil
}

func (o *orderedAddresses) list() []models.Deployment {
	if o.entries == nil {
		return []models.Deployment{}
	}
	return o.entries
}

func encodeOrderedAddresses(entries []models.Deployment) ([]byte, error) {
	if len(entries) == 0 {
		return []byte("{}\n"), nil
	}

	var buf bytes.Buffer
	buf.WriteString("{\n")
	for i, e := range entries {
		key, err := json.Marshal(e.Name)
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(&buf, "  %s: %q", key, e.Address.Hex())
		if i < len(entries)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString("}\n")
	return buf.Bytes(), nil
}

// Ensure TempLedger implements usecase.TempLedger
var _ usecase.TempLedger = (*TempLedger)(nil)
