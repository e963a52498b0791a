package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/ethereum/go-ethereum/common"
	"github.com/sahilm/fuzzy"
	"github.com/samber/lo"
	"github.com/trebuchet-org/treb-deployments/internal/domain"
	"github.com/trebuchet-org/treb-deployments/internal/domain/models"
)

const maxSuggestions = 3

// DeploymentRegistry keeps the deployments made during the current run and
// resolves names against persisted artifacts and the well-known address book.
type DeploymentRegistry struct {
	artifacts ArtifactRepository
	ledger    TempLedger
	log       *slog.Logger

	deployments map[string]models.Deployment
	order       []string
}

// NewDeploymentRegistry creates an empty registry for a run
func NewDeploymentRegistry(artifacts ArtifactRepository, ledger TempLedger, log *slog.Logger) *DeploymentRegistry {
	return &DeploymentRegistry{
		artifacts:   artifacts,
		ledger:      ledger,
		log:         log,
		deployments: make(map[string]models.Deployment),
	}
}

// Save records a deployment made in this run and appends it to the temp ledger.
// Names that can't become an artifact file are rejected.
func (r *DeploymentRegistry) Save(ctx context.Context, name string, address common.Address) error {
	if name != "" && !domain.IsStorableName(name) {
		return &domain.InvalidDeploymentError{Name: name, Reason: domain.ReasonUnusableName}
	}
	if err := r.record(name, address); err != nil {
		return err
	}

	if err := r.ledger.Append(ctx, name, address); err != nil {
		r.forget(name)
		return fmt.Errorf("failed to append %s to temp ledger: %w", name, err)
	}

	r.log.Debug("saved deployment", "name", name, "address", address.Hex())
	return nil
}

// Has reports whether name was recorded this run or resolves to an address
func (r *DeploymentRegistry) Has(ctx context.Context, name string) bool {
	if _, ok := r.deployments[name]; ok {
		return true
	}
	return r.GetAddress(ctx, name) != (common.Address{})
}

// GetAddress resolves name in order: this run, persisted artifacts, the
// well-known address book. The zero address means unresolved.
func (r *DeploymentRegistry) GetAddress(ctx context.Context, name string) common.Address {
	if d, ok := r.deployments[name]; ok {
		return d.Address
	}

	if name != "" {
		addr, err := r.artifacts.ReadAddress(ctx, name)
		switch {
		case err == nil:
			return addr
		case !errors.Is(err, domain.ErrNotFound):
			r.log.Warn("failed to read persisted deployment", "name", name, "error", err)
		}
	}

	return domain.LookupWellKnown(name)
}

// MustGetAddress is GetAddress that fails when nothing resolves
func (r *DeploymentRegistry) MustGetAddress(ctx context.Context, name string) (common.Address, error) {
	addr := r.GetAddress(ctx, name)
	if addr == (common.Address{}) {
		return common.Address{}, &domain.DeploymentDoesNotExistError{
			Name:        name,
			Suggestions: r.suggest(ctx, name),
		}
	}
	return addr, nil
}

// Get returns the full deployment record with the same precedence as
// GetAddress, or an empty placeholder when unresolved.
func (r *DeploymentRegistry) Get(ctx context.Context, name string) models.Deployment {
	if d, ok := r.deployments[name]; ok {
		return d
	}
	if addr := r.GetAddress(ctx, name); addr != (common.Address{}) {
		return models.Deployment{Name: name, Address: addr}
	}
	return models.Deployment{}
}

// Deployments returns the deployments recorded this run in save order
func (r *DeploymentRegistry) Deployments() []models.Deployment {
	return lo.Map(r.order, func(name string, _ int) models.Deployment {
		return r.deployments[name]
	})
}

// Resume rebuilds in-run state from the temp ledger so that a run spanning
// several processes keeps rejecting duplicate names.
func (r *DeploymentRegistry) Resume(ctx context.Context) (int, error) {
	entries, err := r.ledger.ReadAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to read temp ledger: %w", err)
	}

	resumed := 0
	for _, e := range entries {
		if _, ok := r.deployments[e.Name]; ok {
			continue
		}
		if err := r.record(e.Name, e.Address); err != nil {
			return resumed, err
		}
		resumed++
	}
	return resumed, nil
}

// LoadAddresses seeds the registry with already deployed contracts. They are
// visible to resolution but are not written to the temp ledger. Names already
// recorded this run keep their address.
func (r *DeploymentRegistry) LoadAddresses(deployments []models.Deployment) (int, error) {
	loaded := 0
	for _, d := range deployments {
		if _, ok := r.deployments[d.Name]; ok {
			r.log.Debug("address list entry shadowed by run", "name", d.Name)
			continue
		}
		if err := r.record(d.Name, d.Address); err != nil {
			return loaded, err
		}
		loaded++
	}
	return loaded, nil
}

func (r *DeploymentRegistry) record(name string, address common.Address) error {
	if name == "" {
		return &domain.InvalidDeploymentError{Reason: domain.ReasonEmptyName}
	}
	if _, ok := r.deployments[name]; ok {
		return &domain.InvalidDeploymentError{Name: name, Reason: domain.ReasonAlreadyExists}
	}

	r.deployments[name] = models.Deployment{Name: name, Address: address}
	r.order = append(r.order, name)
	return nil
}

func (r *DeploymentRegistry) forget(name string) {
	delete(r.deployments, name)
	r.order = lo.Without(r.order, name)
}

func (r *DeploymentRegistry) suggest(ctx context.Context, name string) []string {
	if name == "" {
		return nil
	}

	candidates := append(lo.Keys(r.deployments), domain.WellKnownNames()...)
	if persisted, err := r.artifacts.List(ctx); err == nil {
		candidates = append(candidates, persisted...)
	}
	candidates = lo.Uniq(candidates)
	sort.Strings(candidates)

	matches := fuzzy.Find(name, candidates)
	suggestions := make([]string, 0, maxSuggestions)
	for _, m := range matches {
		if len(suggestions) == maxSuggestions {
			break
		}
		suggestions = append(suggestions, m.Str)
	}
	return suggestions
}
