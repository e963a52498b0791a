package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/treb-deployments/internal/domain/models"
)

// ListArtifacts lists the artifacts persisted in the current context
type ListArtifacts struct {
	artifacts ArtifactRepository
	progress  ProgressSink
}

// NewListArtifacts creates a new list use case
func NewListArtifacts(artifacts ArtifactRepository, progress ProgressSink) *ListArtifacts {
	return &ListArtifacts{artifacts: artifacts, progress: progress}
}

// ArtifactSummary is one row of an artifact listing
type ArtifactSummary struct {
	Name            string         `json:"name"`
	Address         common.Address `json:"address"`
	NumDeployments  uint64         `json:"numDeployments"`
	TransactionHash string         `json:"transactionHash,omitempty"`
}

// ArtifactListResult contains the result of listing artifacts
type ArtifactListResult struct {
	Artifacts []ArtifactSummary `json:"artifacts"`
}

func (l *ListArtifacts) Run(ctx context.Context) (*ArtifactListResult, error) {
	l.progress.OnProgress(ctx, ProgressEvent{Stage: "loading", Message: "Loading artifacts..."})

	names, err := l.artifacts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list artifacts: %w", err)
	}
	sort.Strings(names)

	result := &ArtifactListResult{Artifacts: make([]ArtifactSummary, 0, len(names))}
	for _, name := range names {
		artifact, err := l.artifacts.Read(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("failed to read artifact %s: %w", name, err)
		}
		result.Artifacts = append(result.Artifacts, ArtifactSummary{
			Name:            name,
			Address:         artifact.Address,
			NumDeployments:  artifact.NumDeployments,
			TransactionHash: artifact.TransactionHash,
		})
	}

	l.progress.OnProgress(ctx, ProgressEvent{Stage: "complete", Message: fmt.Sprintf("Found %d artifact(s)", len(names))})
	return result, nil
}

// ShowArtifact loads a single artifact by contract name
type ShowArtifact struct {
	artifacts ArtifactRepository
}

func NewShowArtifact(artifacts ArtifactRepository) *ShowArtifact {
	return &ShowArtifact{artifacts: artifacts}
}

func (s *ShowArtifact) Run(ctx context.Context, name string) (*models.DeploymentArtifact, error) {
	return s.artifacts.Read(ctx, name)
}
