package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"github.com/trebuchet-org/treb-deployments/internal/domain/models"
	"github.com/trebuchet-org/treb-deployments/internal/usecase"
	"gopkg.in/yaml.v3"
)

// AddressListLoader reads name -> address documents. JSON (comments and
// trailing commas allowed) and YAML are supported.
type AddressListLoader struct{}

func NewAddressListLoader() *AddressListLoader {
	return &AddressListLoader{}
}

// Load returns the entries of the document in document order
func (l *AddressListLoader) Load(_ context.Context, path string) ([]models.Deployment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read address list: %w", err)
	}

	var deployments []models.Deployment
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		deployments, err = decodeOrderedYAMLAddresses(data)
	default:
		deployments, err = decodeOrderedAddresses(jsonc.ToJSON(data))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse address list %s: %w", path, err)
	}

	for _, d := range deployments {
		if d.Name == "" {
			return nil, fmt.Errorf("address list %s contains an empty name", path)
		}
	}
	return deployments, nil
}

// decodeOrderedYAMLAddresses is decodeOrderedAddresses for a YAML mapping
func decodeOrderedYAMLAddresses(data []byte) ([]models.Deployment, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	var entries orderedAddresses
	if len(doc.Content) == 0 {
		return entries.list(), nil
	}

	mapping := doc.Content[0]
	if mapping.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("expected a mapping of names to addresses")
	}
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		var name, value string
		if err := mapping.Content[i].Decode(&name); err != nil {
			return nil, fmt.Errorf("line %d: %w", mapping.Content[i].Line, err)
		}
		if err := mapping.Content[i+1].Decode(&value); err != nil {
			return nil, fmt.Errorf("entry %s: %w", name, err)
		}
		if err := entries.set(name, value); err != nil {
			return nil, err
		}
	}
	return entries.list(), nil
}

// Ensure AddressListLoader implements usecase.AddressListLoader
var _ usecase.AddressListLoader = (*AddressListLoader)(nil)
