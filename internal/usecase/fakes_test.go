package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/mock"
	"github.com/trebuchet-org/treb-deployments/internal/domain"
	"github.com/trebuchet-org/treb-deployments/internal/domain/models"
	"github.com/trebuchet-org/treb-deployments/internal/usecase"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// memArtifacts is an in-memory ArtifactRepository
type memArtifacts struct {
	artifacts map[string]*models.DeploymentArtifact
	writes    []string
	writeErr  error
	readErrs  map[string]error
}

func newMemArtifacts() *memArtifacts {
	return &memArtifacts{artifacts: make(map[string]*models.DeploymentArtifact)}
}

func (m *memArtifacts) Read(ctx context.Context, name string) (*models.DeploymentArtifact, error) {
	a, ok := m.artifacts[name]
	if !ok {
		return nil, fmt.Errorf("artifact %s: %w", name, domain.ErrNotFound)
	}
	return a, nil
}

func (m *memArtifacts) ReadIfExists(ctx context.Context, name string) (*models.DeploymentArtifact, bool, error) {
	if err, ok := m.readErrs[name]; ok {
		return nil, false, err
	}
	a, ok := m.artifacts[name]
	return a, ok, nil
}

func (m *memArtifacts) ReadAddress(ctx context.Context, name string) (common.Address, error) {
	a, err := m.Read(ctx, name)
	if err != nil {
		return common.Address{}, err
	}
	return a.Address, nil
}

func (m *memArtifacts) Write(ctx context.Context, name string, artifact *models.DeploymentArtifact) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	m.writes = append(m.writes, name)
	m.artifacts[name] = artifact
	return nil
}

func (m *memArtifacts) List(ctx context.Context) ([]string, error) {
	names := make([]string, 0, len(m.artifacts))
	for name := range m.artifacts {
		names = append(names, name)
	}
	return names, nil
}

// memLedger is an in-memory TempLedger with overwrite-in-place semantics
type memLedger struct {
	entries   []models.Deployment
	appendErr error
	cleared   int
}

func (l *memLedger) Append(ctx context.Context, name string, address common.Address) error {
	if l.appendErr != nil {
		return l.appendErr
	}
	for i := range l.entries {
		if l.entries[i].Name == name {
			l.entries[i].Address = address
			return nil
		}
	}
	l.entries = append(l.entries, models.Deployment{Name: name, Address: address})
	return nil
}

func (l *memLedger) ReadAll(ctx context.Context) ([]models.Deployment, error) {
	return append([]models.Deployment{}, l.entries...), nil
}

func (l *memLedger) Clear(ctx context.Context) error {
	l.entries = nil
	l.cleared++
	return nil
}

// stubBroadcasts returns a fixed broadcast file
type stubBroadcasts struct {
	file  *domain.BroadcastFile
	reads int
}

func (s *stubBroadcasts) ReadBroadcast(ctx context.Context) (*domain.BroadcastFile, error) {
	s.reads++
	if s.file == nil {
		return nil, errors.New("broadcast file not found")
	}
	return s.file, nil
}

// stubContracts serves compiled contracts by name. A nil entry stands for
// compiler output that exists but can't be decoded.
type stubContracts map[string]*models.Contract

func (s stubContracts) GetContract(ctx context.Context, qualifiedName string) (*models.Contract, error) {
	c, ok := s[qualifiedName]
	switch {
	case !ok:
		return nil, fmt.Errorf("%w: %s", domain.ErrContractNotFound, qualifiedName)
	case c == nil:
		return nil, fmt.Errorf("failed to parse artifact %s: %w", qualifiedName, domain.ErrCorruptArtifact)
	}
	return c, nil
}

type nopProgress struct{}

func (nopProgress) OnProgress(context.Context, usecase.ProgressEvent) {}
func (nopProgress) Info(string)                                       {}
func (nopProgress) Error(string)                                      {}

// MockChainIDStore is a mock implementation of ChainIDStore
type MockChainIDStore struct {
	mock.Mock
}

func (m *MockChainIDStore) Load(ctx context.Context) (uint64, bool, error) {
	args := m.Called(ctx)
	return args.Get(0).(uint64), args.Bool(1), args.Error(2)
}

func (m *MockChainIDStore) Save(ctx context.Context, chainID uint64) error {
	args := m.Called(ctx, chainID)
	return args.Error(0)
}

// MockStorageReader is a mock implementation of StorageReader
type MockStorageReader struct {
	mock.Mock
}

func (m *MockStorageReader) StorageAt(ctx context.Context, address common.Address, key common.Hash) (common.Hash, error) {
	args := m.Called(ctx, address, key)
	return args.Get(0).(common.Hash), args.Error(1)
}

// MockAddressListLoader is a mock implementation of AddressListLoader
type MockAddressListLoader struct {
	mock.Mock
}

func (m *MockAddressListLoader) Load(ctx context.Context, path string) ([]models.Deployment, error) {
	args := m.Called(ctx, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Deployment), args.Error(1)
}
