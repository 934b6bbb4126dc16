package usecase_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/omamori-labs/omamori/internal/config"
	domainconfig "github.com/omamori-labs/omamori/internal/domain/config"
	"github.com/omamori-labs/omamori/internal/domain/models"
	"github.com/omamori-labs/omamori/internal/usecase"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testToken = "0x1c7D4B196Cb0C7B01d743Fbc6116a902379C7238"

func newTestConfig(t *testing.T) *domainconfig.RuntimeConfig {
	t.Helper()

	root := t.TempDir()
	omamoriConfig, source, err := config.LoadOmamoriConfig(root)
	require.NoError(t, err)
	omamoriConfig.Tokens["usdc"] = testToken

	return &domainconfig.RuntimeConfig{
		ProjectRoot:   root,
		DataDir:       root + "/.omamori",
		ConfigSource:  source,
		OmamoriConfig: omamoriConfig,
		Network: &domainconfig.Network{
			Name:    "localhost",
			ChainID: 31337,
			RPCURL:  "http://127.0.0.1:8545",
		},
	}
}

// MockDeployer is a mock implementation of ContractDeployer
type MockDeployer struct {
	mock.Mock
	closed int
}

func (m *MockDeployer) Deploy(ctx context.Context, spec models.ContractSpec) (*models.DeployedContract, error) {
	args := m.Called(ctx, spec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DeployedContract), args.Error(1)
}

func (m *MockDeployer) Transact(ctx context.Context, contract string, to common.Address, method string, params ...any) (string, error) {
	args := m.Called(ctx, contract, to, method, params)
	return args.String(0), args.Error(1)
}

func (m *MockDeployer) Deployer() common.Address {
	args := m.Called()
	return args.Get(0).(common.Address)
}

func (m *MockDeployer) Simulated() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockDeployer) Close() {
	m.closed++
}

// MockChecker is a mock implementation of BlockchainChecker
type MockChecker struct {
	mock.Mock
	closed int
}

func (m *MockChecker) Connect(ctx context.Context, rpcURL string, chainID uint64) error {
	args := m.Called(ctx, rpcURL, chainID)
	return args.Error(0)
}

func (m *MockChecker) CheckDeploymentExists(ctx context.Context, address string) (bool, string, error) {
	args := m.Called(ctx, address)
	return args.Bool(0), args.String(1), args.Error(2)
}

func (m *MockChecker) Close() {
	m.closed++
}

// MockRecordStore is a mock implementation of DeploymentRecordStore
type MockRecordStore struct {
	mock.Mock
}

func (m *MockRecordStore) SaveRecord(ctx context.Context, path string, record *models.DeploymentRecord) error {
	args := m.Called(ctx, path, record)
	return args.Error(0)
}

func (m *MockRecordStore) LoadRecord(ctx context.Context, path string) (*models.DeploymentRecord, error) {
	args := m.Called(ctx, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DeploymentRecord), args.Error(1)
}

// MockMessenger is a mock implementation of Messenger
type MockMessenger struct {
	mock.Mock
}

func (m *MockMessenger) Push(ctx context.Context, to string, text string) error {
	args := m.Called(ctx, to, text)
	return args.Error(0)
}

// MockNetworkResolver is a mock implementation of NetworkResolver
type MockNetworkResolver struct {
	mock.Mock
}

func (m *MockNetworkResolver) Names() []string {
	args := m.Called()
	return args.Get(0).([]string)
}

func (m *MockNetworkResolver) Resolve(ctx context.Context, name string) (*domainconfig.Network, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domainconfig.Network), args.Error(1)
}

// MockProgressSink records progress events
type MockProgressSink struct {
	events  []usecase.ProgressEvent
	stopped int
}

func (m *MockProgressSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	m.events = append(m.events, event)
}
func (m *MockProgressSink) Info(string)  {}
func (m *MockProgressSink) Error(string) {}
func (m *MockProgressSink) Stop()        { m.stopped++ }

func (m *MockProgressSink) stages() []string {
	stages := make([]string, 0, len(m.events))
	for _, e := range m.events {
		stages = append(stages, e.Stage)
	}
	return stages
}

// fakeClock advances only when Sleep is called
type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	sleeps []time.Duration
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sleeps = append(c.sleeps, d)
	c.now = c.now.Add(d)
	return nil
}

// memoryStores implements the KYC, connection and goal stores
type memoryStores struct {
	mu          sync.Mutex
	kyc         map[string]*models.KYCRecord
	connections map[string]*models.Connection
	goals       map[string]*models.SavingsGoal
}

func newMemoryStores() *memoryStores {
	return &memoryStores{
		kyc:         make(map[string]*models.KYCRecord),
		connections: make(map[string]*models.Connection),
		goals:       make(map[string]*models.SavingsGoal),
	}
}
