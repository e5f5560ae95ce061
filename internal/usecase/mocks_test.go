package usecase_test

import (
	"context"
	"sync"
	"time"

	"github.com/NethermindEth/juno/core/felt"
	"github.com/credence0x/ctf-deploy/internal/domain"
	"github.com/credence0x/ctf-deploy/internal/domain/config"
	"github.com/credence0x/ctf-deploy/internal/domain/models"
	"github.com/credence0x/ctf-deploy/internal/usecase"
	"github.com/stretchr/testify/mock"
)

// MockArtifactRepository is a mock implementation of ArtifactRepository
type MockArtifactRepository struct {
	mock.Mock
}

func (m *MockArtifactRepository) GetPath(ctx context.Context, name string) (string, error) {
	args := m.Called(ctx, name)
	return args.String(0), args.Error(1)
}

func (m *MockArtifactRepository) Load(ctx context.Context, name string) (*models.Artifact, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Artifact), args.Error(1)
}

// MockChainReader is a mock implementation of ChainReader
type MockChainReader struct {
	mock.Mock
}

func (m *MockChainReader) ChainID(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockChainReader) ClassExists(ctx context.Context, classHash *felt.Felt) (bool, error) {
	args := m.Called(ctx, classHash)
	return args.Bool(0), args.Error(1)
}

func (m *MockChainReader) WaitForTransaction(ctx context.Context, txHash *felt.Felt, pollInterval time.Duration) error {
	args := m.Called(ctx, txHash, pollInterval)
	return args.Error(0)
}

// MockAccount is a mock implementation of Account
type MockAccount struct {
	mock.Mock
}

func (m *MockAccount) Ready(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockAccount) ClassHash(ctx context.Context, artifact *models.Artifact) (*felt.Felt, error) {
	args := m.Called(ctx, artifact)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*felt.Felt), args.Error(1)
}

func (m *MockAccount) Declare(ctx context.Context, artifact *models.Artifact) (*models.ClassDeclaration, error) {
	args := m.Called(ctx, artifact)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ClassDeclaration), args.Error(1)
}

func (m *MockAccount) Deploy(ctx context.Context, classHash *felt.Felt, calldata domain.Calldata) (*felt.Felt, *felt.Felt, error) {
	args := m.Called(ctx, classHash, calldata)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*felt.Felt), args.Get(1).(*felt.Felt), args.Error(2)
}

func (m *MockAccount) Execute(ctx context.Context, contract *felt.Felt, entrypoint string, calldata domain.Calldata) (*felt.Felt, error) {
	args := m.Called(ctx, contract, entrypoint, calldata)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*felt.Felt), args.Error(1)
}

// MockDeploymentRecordStore is a mock implementation of DeploymentRecordStore
type MockDeploymentRecordStore struct {
	mock.Mock
}

func (m *MockDeploymentRecordStore) Load(ctx context.Context, network string) (*models.DeploymentRecord, error) {
	args := m.Called(ctx, network)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DeploymentRecord), args.Error(1)
}

func (m *MockDeploymentRecordStore) Save(ctx context.Context, record *models.DeploymentRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockDeploymentRecordStore) GetPath(network string) string {
	args := m.Called(network)
	return args.String(0)
}

// MockConfirmer is a mock implementation of Confirmer
type MockConfirmer struct {
	mock.Mock
}

func (m *MockConfirmer) Confirm(ctx context.Context, label string) (bool, error) {
	args := m.Called(ctx, label)
	return args.Bool(0), args.Error(1)
}

// MockNetworkResolver is a mock implementation of NetworkResolver
type MockNetworkResolver struct {
	mock.Mock
}

func (m *MockNetworkResolver) GetNetworks() []string {
	args := m.Called()
	return args.Get(0).([]string)
}

func (m *MockNetworkResolver) ResolveNetwork(name string) (*config.Network, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*config.Network), args.Error(1)
}

// MockNetworkProber is a mock implementation of NetworkProber
type MockNetworkProber struct {
	mock.Mock
}

func (m *MockNetworkProber) ChainID(ctx context.Context, network *config.Network) (string, error) {
	args := m.Called(ctx, network)
	return args.String(0), args.Error(1)
}

// fakeClock advances only when slept on
type fakeClock struct {
	now    time.Time
	sleeps []time.Duration
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.sleeps = append(c.sleeps, d)
	c.now = c.now.Add(d)
	return nil
}

// MockProgressSink records progress events
type MockProgressSink struct {
	mu     sync.Mutex
	events []usecase.ProgressEvent
	infos  []string
	errors []string
}

func (m *MockProgressSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
}

func (m *MockProgressSink) Info(message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.infos = append(m.infos, message)
}

func (m *MockProgressSink) Error(message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors = append(m.errors, message)
}
