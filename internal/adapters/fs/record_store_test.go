package fs

import (
	"context"
	"math/big"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/NethermindEth/juno/core/felt"
	"github.com/credence0x/ctf-deploy/internal/domain"
	"github.com/credence0x/ctf-deploy/internal/domain/config"
	"github.com/credence0x/ctf-deploy/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordStoreAdapter(t *testing.T) {
	ctx := context.Background()
	dataDir := filepath.Join(t.TempDir(), ".ctf")
	store := NewRecordStoreAdapter(&config.RuntimeConfig{DataDir: dataDir})

	t.Run("missing file yields empty record", func(t *testing.T) {
		record, err := store.Load(ctx, "sepolia")
		require.NoError(t, err)
		assert.Equal(t, "sepolia", record.Network)
		assert.Empty(t, record.Contracts)
	})

	t.Run("saves and reloads contracts and fundings", func(t *testing.T) {
		record := &models.DeploymentRecord{
			Network:   "sepolia",
			ChainID:   "SN_SEPOLIA",
			Account:   "0x1",
			StartedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		}
		record.AddContract(&models.DeployedContract{
			Name:      domain.PrizeContract,
			ClassHash: new(felt.Felt).SetUint64(0xaa),
			Address:   new(felt.Felt).SetUint64(0xbb),
			TxHash:    new(felt.Felt).SetUint64(0xcc),
			Calldata:  domain.Calldata{new(felt.Felt).SetUint64(1)},
		})
		record.AddFunding(&models.Funding{
			Token:     new(felt.Felt).SetUint64(0xbb),
			Recipient: new(felt.Felt).SetUint64(0xdd),
			Amount:    big.NewInt(50),
			Err:       assert.AnError,
		})

		require.NoError(t, store.Save(ctx, record))
		assert.FileExists(t, filepath.Join(dataDir, "deployments", "sepolia.yaml"))
		_, err := os.Stat(filepath.Join(dataDir, "deployments", "sepolia.yaml.tmp"))
		assert.True(t, os.IsNotExist(err))

		loaded, err := store.Load(ctx, "sepolia")
		require.NoError(t, err)
		assert.Equal(t, "SN_SEPOLIA", loaded.ChainID)

		prize, ok := loaded.Contract(domain.PrizeContract)
		require.True(t, ok)
		assert.Equal(t, "0xbb", prize.Address)
		assert.Equal(t, []string{"0x1"}, prize.Calldata)

		require.Len(t, loaded.Fundings, 1)
		assert.Equal(t, "50", loaded.Fundings[0].Amount)
		assert.Equal(t, assert.AnError.Error(), loaded.Fundings[0].Error)
		assert.Empty(t, loaded.Fundings[0].TxHash)
	})

	t.Run("keeps earlier runs across saves", func(t *testing.T) {
		first, err := store.Load(ctx, "sepolia")
		require.NoError(t, err)
		require.NotEmpty(t, first.Contracts)

		rerun := &models.DeploymentRecord{Network: "sepolia", ChainID: "SN_SEPOLIA"}
		rerun.Archive(first)
		require.NoError(t, store.Save(ctx, rerun))

		loaded, err := store.Load(ctx, "sepolia")
		require.NoError(t, err)
		assert.Empty(t, loaded.Contracts)
		require.Len(t, loaded.Previous, 1)
		prize, ok := loaded.Previous[0].Contract(domain.PrizeContract)
		require.True(t, ok)
		assert.Equal(t, "0xbb", prize.Address)
	})

	t.Run("rejects records without network", func(t *testing.T) {
		assert.Error(t, store.Save(ctx, &models.DeploymentRecord{}))
	})
}
