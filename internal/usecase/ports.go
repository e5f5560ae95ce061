package usecase

import (
	"context"
	"time"

	"github.com/NethermindEth/juno/core/felt"
	"github.com/credence0x/ctf-deploy/internal/domain"
	"github.com/credence0x/ctf-deploy/internal/domain/config"
	"github.com/credence0x/ctf-deploy/internal/domain/models"
)

// ArtifactRepository provides access to the scarb build output
type ArtifactRepository interface {
	// GetPath returns the Sierra class file of the named contract
	GetPath(ctx context.Context, name string) (string, error)
	// Load resolves both the Sierra and CASM files of the named contract
	Load(ctx context.Context, name string) (*models.Artifact, error)
}

// ChainReader reads Starknet state over JSON-RPC
type ChainReader interface {
	ChainID(ctx context.Context) (string, error)
	ClassExists(ctx context.Context, classHash *felt.Felt) (bool, error)
	WaitForTransaction(ctx context.Context, txHash *felt.Felt, pollInterval time.Duration) error
}

// Account signs and submits transactions on behalf of the deployer
type Account interface {
	// Ready checks that transactions can be signed, without network access
	Ready(ctx context.Context) error
	// ClassHash computes the class hash of an artifact without touching the network
	ClassHash(ctx context.Context, artifact *models.Artifact) (*felt.Felt, error)
	// Declare submits a declaration. The returned TxHash is nil when the
	// network already knows the class.
	Declare(ctx context.Context, artifact *models.Artifact) (*models.ClassDeclaration, error)
	// Deploy instantiates a declared class through the universal deployer
	Deploy(ctx context.Context, classHash *felt.Felt, calldata domain.Calldata) (address *felt.Felt, txHash *felt.Felt, err error)
	// Execute invokes an entrypoint on a deployed contract
	Execute(ctx context.Context, contract *felt.Felt, entrypoint string, calldata domain.Calldata) (*felt.Felt, error)
}

// DeploymentRecordStore persists deployment records per network
type DeploymentRecordStore interface {
	Load(ctx context.Context, network string) (*models.DeploymentRecord, error)
	Save(ctx context.Context, record *models.DeploymentRecord) error
	GetPath(network string) string
}

// Confirmer asks the user to approve an action
type Confirmer interface {
	Confirm(ctx context.Context, label string) (bool, error)
}

// Clock abstracts wall time so pauses can be skipped in tests
type Clock interface {
	Now() time.Time
	Sleep(ctx context.Context, d time.Duration) error
}

// Progress tracking interfaces

// ExecutionStage represents a stage in the deployment process
type ExecutionStage string

const (
	StagePreflight ExecutionStage = "Preflight"
	StageDeclaring ExecutionStage = "Declaring"
	StageDeploying ExecutionStage = "Deploying"
	StageWaiting   ExecutionStage = "Waiting"
	StageFunding   ExecutionStage = "Funding"
	StagePausing   ExecutionStage = "Pausing"
	StageCompleted ExecutionStage = "Completed"
)

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage    string
	Current  int
	Total    int
	Message  string
	Spinner  bool
	Metadata interface{}
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// NetworkResolver resolves network names to configurations
type NetworkResolver interface {
	GetNetworks() []string
	ResolveNetwork(name string) (*config.Network, error)
}

// NetworkProber asks a network's RPC endpoint for its chain id
type NetworkProber interface {
	ChainID(ctx context.Context, network *config.Network) (string, error)
}
