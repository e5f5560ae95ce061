package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/NethermindEth/juno/core/felt"
	"github.com/credence0x/ctf-deploy/internal/domain"
	"github.com/credence0x/ctf-deploy/internal/domain/config"
	"github.com/credence0x/ctf-deploy/internal/domain/models"
)

// TransactionWait describes a transaction the deployer is waiting on
type TransactionWait struct {
	Label  string
	TxHash *felt.Felt
	URL    string
}

// DeployChallengeResult contains the outcome of a full deployment run
type DeployChallengeResult struct {
	Network      *config.Network
	ChainID      string
	Declarations []*models.ClassDeclaration
	Contracts    []*models.DeployedContract
	Fundings     []*models.Funding
	Record       *models.DeploymentRecord
	RecordPath   string
	Duration     time.Duration
}

// Contract returns the deployed contract with the given name, or nil
func (r *DeployChallengeResult) Contract(name string) *models.DeployedContract {
	for _, c := range r.Contracts {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// FailedFundings returns the mints that did not go through
func (r *DeployChallengeResult) FailedFundings() []*models.Funding {
	var failed []*models.Funding
	for _, f := range r.Fundings {
		if !f.Succeeded() {
			failed = append(failed, f)
		}
	}
	return failed
}

// DeployChallenge deploys the prize token, the donation token and the three
// stages, funding each stage with prize tokens.
type DeployChallenge struct {
	config    *config.RuntimeConfig
	artifacts ArtifactRepository
	chain     ChainReader
	account   Account
	records   DeploymentRecordStore
	confirmer Confirmer
	clock     Clock
	progress  ProgressSink
	log       *slog.Logger
}

// NewDeployChallenge creates a new DeployChallenge use case
func NewDeployChallenge(
	cfg *config.RuntimeConfig,
	artifacts ArtifactRepository,
	chain ChainReader,
	account Account,
	records DeploymentRecordStore,
	confirmer Confirmer,
	clock Clock,
	progress ProgressSink,
	log *slog.Logger,
) *DeployChallenge {
	return &DeployChallenge{
		config:    cfg,
		artifacts: artifacts,
		chain:     chain,
		account:   account,
		records:   records,
		confirmer: confirmer,
		clock:     clock,
		progress:  progress,
		log:       log,
	}
}

// Run executes the deployment plan. Declaration and deployment errors abort
// the run; funding errors are reported and skipped.
func (uc *DeployChallenge) Run(ctx context.Context) (*DeployChallengeResult, error) {
	network := uc.config.Network
	if network == nil {
		return nil, fmt.Errorf("no network configured")
	}

	owner, err := uc.owner()
	if err != nil {
		return nil, err
	}

	// Stage 1: resolve every artifact before any network call
	artifacts, err := uc.resolveArtifacts(ctx)
	if err != nil {
		return nil, err
	}

	if err := uc.account.Ready(ctx); err != nil {
		return nil, fmt.Errorf("deployer account not ready: %w", err)
	}

	// Stage 2: make sure we talk to the expected chain
	chainID, err := uc.checkChain(ctx)
	if err != nil {
		return nil, err
	}

	if network.RequiresConfirmation && !uc.config.NonInteractive {
		ok, err := uc.confirmer.Confirm(ctx, fmt.Sprintf("Deploy CTF contracts to %s (%s)", network.Name, chainID))
		if err != nil {
			return nil, fmt.Errorf("confirmation failed: %w", err)
		}
		if !ok {
			return nil, domain.ErrDeploymentAborted
		}
	}

	previous, err := uc.records.Load(ctx, network.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to load previous deployment record: %w", err)
	}

	started := uc.clock.Now()
	result := &DeployChallengeResult{
		Network: network,
		ChainID: chainID,
		Record: &models.DeploymentRecord{
			Network:   network.Name,
			ChainID:   chainID,
			Account:   owner.String(),
			StartedAt: started.UTC(),
		},
		RecordPath: uc.records.GetPath(network.Name),
	}
	result.Record.Archive(previous)

	// Stage 3: tokens
	prize, err := uc.deployContract(ctx, result, artifacts[domain.PrizeContract], domain.Calldata{owner})
	if err != nil {
		return result, err
	}

	tokenName, err := domain.ShortString(domain.DonationTokenName)
	if err != nil {
		return result, err
	}
	tokenSymbol, err := domain.ShortString(domain.DonationTokenSymbol)
	if err != nil {
		return result, err
	}
	donation, err := uc.deployContract(ctx, result, artifacts[domain.ERC20Contract], domain.Calldata{tokenName, tokenSymbol})
	if err != nil {
		return result, err
	}

	// Stage 4: challenge stages, each funded right after deployment
	stage1, err := uc.deployContract(ctx, result, artifacts[domain.Stage1Contract], domain.Calldata{donation.Address, prize.Address})
	if err != nil {
		return result, err
	}
	uc.fund(ctx, result, prize.Address, stage1.Address, domain.TokenAmount(domain.Stage1Prize, domain.TokenDecimals))
	if err := uc.Pause(ctx); err != nil {
		return result, err
	}

	stage2, err := uc.deployContract(ctx, result, artifacts[domain.Stage2Contract], domain.Calldata{prize.Address, stage1.Address})
	if err != nil {
		return result, err
	}
	uc.fund(ctx, result, prize.Address, stage2.Address, domain.TokenAmount(domain.Stage2Prize, domain.TokenDecimals))
	if err := uc.Pause(ctx); err != nil {
		return result, err
	}

	stage3, err := uc.deployContract(ctx, result, artifacts[domain.Stage3Contract], domain.Calldata{donation.Address, prize.Address, stage2.Address})
	if err != nil {
		return result, err
	}
	uc.fund(ctx, result, prize.Address, stage3.Address, domain.TokenAmount(domain.Stage3Prize, domain.TokenDecimals))

	completed := uc.clock.Now()
	result.Duration = completed.Sub(started)
	completedUTC := completed.UTC()
	result.Record.CompletedAt = &completedUTC
	uc.saveRecord(ctx, result.Record)

	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:    string(StageCompleted),
		Message:  "Deployment completed",
		Metadata: result,
	})

	return result, nil
}

// DeclareIfAbsent declares the artifact's class unless the network already knows it
func (uc *DeployChallenge) DeclareIfAbsent(ctx context.Context, artifact *models.Artifact) (*models.ClassDeclaration, error) {
	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:    string(StageDeclaring),
		Message:  fmt.Sprintf("Declaring %s", artifact.Name),
		Metadata: artifact,
	})

	classHash, err := uc.account.ClassHash(ctx, artifact)
	if err != nil {
		return nil, fmt.Errorf("failed to compute class hash of %s: %w", artifact.Name, err)
	}

	exists, err := uc.chain.ClassExists(ctx, classHash)
	if err != nil {
		return nil, fmt.Errorf("failed to look up class %s: %w", classHash, err)
	}

	declaration := &models.ClassDeclaration{Name: artifact.Name, ClassHash: classHash}
	if exists {
		uc.log.Debug("class already declared", "contract", artifact.Name, "classHash", classHash.String())
	} else {
		declaration, err = uc.account.Declare(ctx, artifact)
		if err != nil {
			return nil, fmt.Errorf("failed to declare %s: %w", artifact.Name, err)
		}
		declaration.Name = artifact.Name
		if declaration.TxHash != nil {
			if err := uc.waitFor(ctx, fmt.Sprintf("%s declaration", artifact.Name), declaration.TxHash); err != nil {
				return nil, err
			}
		}
	}

	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:    string(StageDeclaring),
		Message:  fmt.Sprintf("Declared %s", artifact.Name),
		Metadata: declaration,
	})

	return declaration, nil
}

// Deploy instantiates a declared class and blocks until the deployment is confirmed
func (uc *DeployChallenge) Deploy(ctx context.Context, name string, classHash *felt.Felt, calldata domain.Calldata) (*models.DeployedContract, error) {
	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:   string(StageDeploying),
		Message: fmt.Sprintf("Deploying %s", name),
	})

	address, txHash, err := uc.account.Deploy(ctx, classHash, calldata)
	if err != nil {
		return nil, fmt.Errorf("failed to deploy %s: %w", name, err)
	}

	if err := uc.waitFor(ctx, fmt.Sprintf("%s deployment", name), txHash); err != nil {
		return nil, err
	}

	deployed := &models.DeployedContract{
		Name:      name,
		ClassHash: classHash,
		Address:   address,
		TxHash:    txHash,
		Calldata:  calldata,
	}

	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:    string(StageDeploying),
		Message:  fmt.Sprintf("Deployed %s", name),
		Metadata: deployed,
	})

	return deployed, nil
}

// Fund mints prize tokens to a recipient. It never fails: errors are logged
// and recorded on the returned Funding.
func (uc *DeployChallenge) Fund(ctx context.Context, token, recipient *felt.Felt, amount *big.Int) *models.Funding {
	funding := &models.Funding{
		Token:     token,
		Recipient: recipient,
		Amount:    amount,
	}

	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:   string(StageFunding),
		Message: fmt.Sprintf("Minting %s prize tokens to %s", amount, recipient),
	})

	funding.TxHash, funding.Err = uc.mint(ctx, token, recipient, amount)
	if funding.Err != nil {
		uc.log.Error("prize mint failed", "recipient", recipient.String(), "amount", amount.String(), "error", funding.Err)
		uc.progress.Error(fmt.Sprintf("Failed to mint prize tokens to %s: %v", recipient, funding.Err))
	}

	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:    string(StageFunding),
		Message:  fmt.Sprintf("Minted prize tokens to %s", recipient),
		Metadata: funding,
	})

	return funding
}

// Pause waits for the configured delay between stages
func (uc *DeployChallenge) Pause(ctx context.Context) error {
	d := uc.config.Pause
	if d <= 0 {
		return nil
	}

	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:    string(StagePausing),
		Message:  fmt.Sprintf("Waiting %s for the network to settle", d),
		Spinner:  true,
		Metadata: d,
	})
	defer uc.progress.OnProgress(ctx, ProgressEvent{Stage: string(StagePausing)})

	if err := uc.clock.Sleep(ctx, d); err != nil {
		return fmt.Errorf("pause interrupted: %w", err)
	}
	return nil
}

func (uc *DeployChallenge) mint(ctx context.Context, token, recipient *felt.Felt, amount *big.Int) (*felt.Felt, error) {
	low, high, err := domain.U256(amount)
	if err != nil {
		return nil, err
	}

	txHash, err := uc.account.Execute(ctx, token, domain.MintEntrypoint, domain.Calldata{recipient, low, high})
	if err != nil {
		return nil, err
	}

	if err := uc.waitFor(ctx, "prize mint", txHash); err != nil {
		return txHash, err
	}
	return txHash, nil
}

func (uc *DeployChallenge) deployContract(ctx context.Context, result *DeployChallengeResult, artifact *models.Artifact, calldata domain.Calldata) (*models.DeployedContract, error) {
	declaration, err := uc.DeclareIfAbsent(ctx, artifact)
	if err != nil {
		return nil, err
	}
	result.Declarations = append(result.Declarations, declaration)

	deployed, err := uc.Deploy(ctx, artifact.Name, declaration.ClassHash, calldata)
	if err != nil {
		return nil, err
	}
	result.Contracts = append(result.Contracts, deployed)
	result.Record.AddContract(deployed)
	uc.saveRecord(ctx, result.Record)

	return deployed, nil
}

func (uc *DeployChallenge) fund(ctx context.Context, result *DeployChallengeResult, token, recipient *felt.Felt, amount *big.Int) {
	funding := uc.Fund(ctx, token, recipient, amount)
	result.Fundings = append(result.Fundings, funding)
	result.Record.AddFunding(funding)
	uc.saveRecord(ctx, result.Record)
}

func (uc *DeployChallenge) waitFor(ctx context.Context, label string, txHash *felt.Felt) error {
	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:   string(StageWaiting),
		Message: fmt.Sprintf("Waiting for %s", label),
		Spinner: true,
		Metadata: &TransactionWait{
			Label:  label,
			TxHash: txHash,
			URL:    uc.config.Network.TxURL(txHash.String()),
		},
	})
	defer uc.progress.OnProgress(ctx, ProgressEvent{Stage: string(StageWaiting)})

	if err := uc.chain.WaitForTransaction(ctx, txHash, uc.config.Network.PollInterval); err != nil {
		return fmt.Errorf("%s: %w", label, err)
	}
	return nil
}

func (uc *DeployChallenge) resolveArtifacts(ctx context.Context) (map[string]*models.Artifact, error) {
	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:   string(StagePreflight),
		Message: "Resolving build artifacts",
		Total:   len(domain.PlanContracts),
	})

	artifacts := make(map[string]*models.Artifact, len(domain.PlanContracts))
	for i, name := range domain.PlanContracts {
		artifact, err := uc.artifacts.Load(ctx, name)
		if err != nil {
			return nil, err
		}
		artifacts[name] = artifact
		uc.log.Debug("resolved artifact", "contract", name, "sierra", artifact.SierraPath, "casm", artifact.CasmPath, "index", i)
	}
	return artifacts, nil
}

func (uc *DeployChallenge) checkChain(ctx context.Context) (string, error) {
	network := uc.config.Network

	chainID, err := uc.chain.ChainID(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to connect to %s: %w", network.Name, err)
	}

	if network.ChainID != "" && network.ChainID != chainID {
		return "", domain.ChainMismatchErr{
			Network:  network.Name,
			Expected: network.ChainID,
			Actual:   chainID,
		}
	}

	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:    string(StagePreflight),
		Message:  fmt.Sprintf("Connected to %s (%s)", network.Name, chainID),
		Metadata: network,
	})
	return chainID, nil
}

func (uc *DeployChallenge) owner() (*felt.Felt, error) {
	if uc.config.Account.Address == "" {
		return nil, fmt.Errorf("%w: set STARKNET_ACCOUNT_ADDRESS", domain.ErrMissingAccount)
	}
	owner, err := domain.ParseFelt(uc.config.Account.Address)
	if err != nil {
		return nil, fmt.Errorf("invalid account address: %w", err)
	}
	return owner, nil
}

func (uc *DeployChallenge) saveRecord(ctx context.Context, record *models.DeploymentRecord) {
	if err := uc.records.Save(ctx, record); err != nil {
		// A missing record never blocks the deployment itself
		uc.log.Warn("failed to save deployment record", "error", err)
		if !errors.Is(err, context.Canceled) {
			uc.progress.Info(fmt.Sprintf("Warning: failed to save deployment record: %v", err))
		}
	}
}
