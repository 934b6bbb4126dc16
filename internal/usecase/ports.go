package usecase

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/omamori-labs/omamori/internal/domain/config"
	"github.com/omamori-labs/omamori/internal/domain/models"
)

// DeploymentRecordStore persists deployment records as files
type DeploymentRecordStore interface {
	SaveRecord(ctx context.Context, path string, record *models.DeploymentRecord) error
	LoadRecord(ctx context.Context, path string) (*models.DeploymentRecord, error)
}

// ContractDeployer creates contracts and sends calls to them
type ContractDeployer interface {
	Deploy(ctx context.Context, spec models.ContractSpec) (*models.DeployedContract, error)
	Transact(ctx context.Context, contract string, to common.Address, method string, args ...any) (string, error)
	Deployer() common.Address
	Simulated() bool
	Close()
}

// ArtifactLoader loads compiled contract artifacts by contract name
type ArtifactLoader interface {
	Load(ctx context.Context, name string) (*models.Artifact, error)
}

// BlockchainChecker checks on-chain state
type BlockchainChecker interface {
	Connect(ctx context.Context, rpcURL string, chainID uint64) error
	CheckDeploymentExists(ctx context.Context, address string) (exists bool, reason string, err error)
	Close()
}

// NetworkResolver resolves configured networks
type NetworkResolver interface {
	Names() []string
	Resolve(ctx context.Context, name string) (*config.Network, error)
}

// KYCStore keeps verification results
type KYCStore interface {
	SaveKYC(ctx context.Context, record *models.KYCRecord) error
	GetKYC(ctx context.Context, lineUserID string) (*models.KYCRecord, error)
}

// ConnectionStore keeps the last wallet connection per user
type ConnectionStore interface {
	SaveConnection(ctx context.Context, conn *models.Connection) error
	GetConnection(ctx context.Context, userID string) (*models.Connection, error)
}

// GoalStore persists savings goals
type GoalStore interface {
	GetGoal(ctx context.Context, userID string) (*models.SavingsGoal, error)
	SaveGoal(ctx context.Context, goal *models.SavingsGoal) error
	// UpdateGoal applies fn to the stored goal and saves the result as one
	// step. An error from fn leaves the stored goal unchanged.
	UpdateGoal(ctx context.Context, userID string, fn func(goal *models.SavingsGoal) error) (*models.SavingsGoal, error)
}

// Messenger pushes text messages to a chat user
type Messenger interface {
	Push(ctx context.Context, to string, text string) error
}

// ProfileSelector asks the user to pick a deployment profile
type ProfileSelector interface {
	SelectProfile(ctx context.Context, profiles []string) (string, error)
}

// Clock abstracts time for the mock verification delays
type Clock interface {
	Now() time.Time
	Sleep(ctx context.Context, d time.Duration) error
}

// SystemClock is the wall clock
type SystemClock struct{}

// NewSystemClock creates the wall clock
func NewSystemClock() SystemClock { return SystemClock{} }

func (SystemClock) Now() time.Time { return time.Now() }

// Sleep waits for d or until ctx is done
func (SystemClock) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Progress tracking interfaces

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage   string
	Current int
	Total   int
	Message string
	Spinner bool
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
	// Stop clears any running progress indicator
	Stop()
}

