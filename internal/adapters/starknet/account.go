package starknet

import (
	"context"
	"fmt"

	"github.com/NethermindEth/juno/core/felt"
	"github.com/credence0x/ctf-deploy/internal/domain"
	"github.com/credence0x/ctf-deploy/internal/domain/config"
	"github.com/credence0x/ctf-deploy/internal/domain/models"
	"github.com/credence0x/ctf-deploy/internal/usecase"
)

// AccountAdapter implements the Account port on top of starkli
type AccountAdapter struct {
	starkli *StarkliExecutor
	account config.Account
}

// NewAccountAdapter creates a new account adapter
func NewAccountAdapter(cfg *config.RuntimeConfig, starkli *StarkliExecutor) *AccountAdapter {
	return &AccountAdapter{
		starkli: starkli,
		account: cfg.Account,
	}
}

// Ready checks the signer configuration and the starkli installation
func (a *AccountAdapter) Ready(ctx context.Context) error {
	if a.account.File == "" {
		return fmt.Errorf("%w: set STARKNET_ACCOUNT to a starkli account file", domain.ErrMissingAccount)
	}
	if !a.account.HasSigner() {
		return fmt.Errorf("%w: set STARKNET_PRIVATE_KEY or STARKNET_KEYSTORE", domain.ErrMissingAccount)
	}
	return a.starkli.CheckInstallation(ctx)
}

// ClassHash computes the class hash of the artifact's Sierra class
func (a *AccountAdapter) ClassHash(ctx context.Context, artifact *models.Artifact) (*felt.Felt, error) {
	return a.starkli.ClassHash(ctx, artifact.SierraPath)
}

// Declare declares the artifact using its precompiled CASM class
func (a *AccountAdapter) Declare(ctx context.Context, artifact *models.Artifact) (*models.ClassDeclaration, error) {
	classHash, txHash, err := a.starkli.Declare(ctx, artifact.SierraPath, artifact.CasmPath)
	if err != nil {
		return nil, err
	}
	return &models.ClassDeclaration{
		Name:      artifact.Name,
		ClassHash: classHash,
		TxHash:    txHash,
	}, nil
}

// Deploy deploys a declared class with the given constructor calldata
func (a *AccountAdapter) Deploy(ctx context.Context, classHash *felt.Felt, calldata domain.Calldata) (*felt.Felt, *felt.Felt, error) {
	return a.starkli.Deploy(ctx, classHash.String(), calldata.Strings())
}

// Execute invokes an entrypoint on a deployed contract
func (a *AccountAdapter) Execute(ctx context.Context, contract *felt.Felt, entrypoint string, calldata domain.Calldata) (*felt.Felt, error) {
	return a.starkli.Invoke(ctx, contract.String(), entrypoint, calldata.Strings())
}

// Ensure AccountAdapter implements Account
var _ usecase.Account = (*AccountAdapter)(nil)
