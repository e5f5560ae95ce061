package render

import (
	"bytes"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/NethermindEth/juno/core/felt"
	"github.com/credence0x/ctf-deploy/internal/domain"
	"github.com/credence0x/ctf-deploy/internal/domain/config"
	"github.com/credence0x/ctf-deploy/internal/domain/models"
	"github.com/credence0x/ctf-deploy/internal/usecase"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func newTestRenderer(t *testing.T) (*DeployRenderer, *bytes.Buffer) {
	t.Helper()
	color.NoColor = true
	buf := &bytes.Buffer{}
	return NewDeployRenderer(buf), buf
}

func TestFormatAmount(t *testing.T) {
	r, _ := newTestRenderer(t)

	tests := []struct {
		name   string
		amount *big.Int
		want   string
	}{
		{"whole tokens", domain.TokenAmount(50, domain.TokenDecimals), "50 PURR"},
		{"thousands separator", domain.TokenAmount(1500, domain.TokenDecimals), "1,500 PURR"},
		{"fractional", big.NewInt(1_500_000_000_000_000_000), "1.5 PURR"},
		{"nil", nil, "-"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.FormatAmount(tt.amount))
		})
	}
}

func TestRenderDeclaration(t *testing.T) {
	r, buf := newTestRenderer(t)
	r.RenderNetwork(&config.Network{Name: "sepolia", ExplorerURL: "https://sepolia.voyager.online"})

	r.RenderDeclaration(&models.ClassDeclaration{
		Name:      "Prize",
		ClassHash: new(felt.Felt).SetUint64(0xabc),
		TxHash:    new(felt.Felt).SetUint64(0x123),
	})
	assert.Contains(t, buf.String(), "Network: Sepolia")
	assert.Contains(t, buf.String(), "- Class Hash:  0xabc")
	assert.Contains(t, buf.String(), "https://sepolia.voyager.online/tx/0x123")

	buf.Reset()
	r.RenderDeclaration(&models.ClassDeclaration{Name: "Prize", ClassHash: new(felt.Felt).SetUint64(0xabc)})
	assert.Contains(t, buf.String(), "Already declared")
}

func TestRenderDeployed(t *testing.T) {
	contract := &models.DeployedContract{
		Name:    "Stage1",
		Address: new(felt.Felt).SetUint64(0xa1),
		TxHash:  new(felt.Felt).SetUint64(0x5),
	}

	t.Run("links the contract on the explorer", func(t *testing.T) {
		r, buf := newTestRenderer(t)
		r.RenderNetwork(&config.Network{Name: "sepolia", ExplorerURL: "https://sepolia.voyager.online"})
		buf.Reset()

		r.RenderDeployed(contract)
		assert.Contains(t, buf.String(), "https://sepolia.voyager.online/tx/0x5")
		assert.Contains(t, buf.String(), "https://sepolia.voyager.online/contract/0xa1")
	})

	t.Run("devnet has no explorer line", func(t *testing.T) {
		r, buf := newTestRenderer(t)
		r.RenderNetwork(&config.Network{Name: "devnet"})
		buf.Reset()

		r.RenderDeployed(contract)
		assert.Contains(t, buf.String(), "Contract Address:  0xa1")
		assert.NotContains(t, buf.String(), "Explorer")
	})
}

func TestRenderSummary(t *testing.T) {
	r, buf := newTestRenderer(t)

	stage1 := &models.DeployedContract{
		Name:      domain.Stage1Contract,
		ClassHash: new(felt.Felt).SetUint64(0x10),
		Address:   new(felt.Felt).SetUint64(0x11),
		TxHash:    new(felt.Felt).SetUint64(0x12),
	}
	stage2 := &models.DeployedContract{
		Name:      domain.Stage2Contract,
		ClassHash: new(felt.Felt).SetUint64(0x20),
		Address:   new(felt.Felt).SetUint64(0x21),
		TxHash:    new(felt.Felt).SetUint64(0x22),
	}

	r.RenderSummary(&usecase.DeployChallengeResult{
		Network:   &config.Network{Name: "devnet"},
		Contracts: []*models.DeployedContract{stage1, stage2},
		Fundings: []*models.Funding{
			{Recipient: stage1.Address, Amount: domain.TokenAmount(50, domain.TokenDecimals), TxHash: new(felt.Felt).SetUint64(0x99)},
			{Recipient: stage2.Address, Amount: domain.TokenAmount(150, domain.TokenDecimals), Err: errors.New("boom")},
		},
		RecordPath: ".ctf/deployments/devnet.yaml",
		Duration:   42 * time.Second,
	})

	out := buf.String()
	assert.Contains(t, out, "Deployed 2 contracts on Devnet in 42s")
	assert.Contains(t, out, "50 PURR")
	assert.Contains(t, out, "150 PURR (failed)")
	assert.Contains(t, out, "1 prize mint(s) failed")
	assert.Contains(t, out, ".ctf/deployments/devnet.yaml")
}

func TestPrintBanner(t *testing.T) {
	r, buf := newTestRenderer(t)
	r.PrintBanner()
	assert.Contains(t, buf.String(), `|____/|___|  _|_|___|_  |`)
}
