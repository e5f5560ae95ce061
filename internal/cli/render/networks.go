package render

import (
	"fmt"
	"io"

	"github.com/credence0x/ctf-deploy/internal/usecase"
	"github.com/fatih/color"
)

// NetworksRenderer renders network lists
type NetworksRenderer struct {
	out io.Writer
}

// NewNetworksRenderer creates a new networks renderer
func NewNetworksRenderer(out io.Writer) *NetworksRenderer {
	return &NetworksRenderer{
		out: out,
	}
}

// RenderNetworksList renders each network with the chain id its RPC reported
func (r *NetworksRenderer) RenderNetworksList(result *usecase.ListNetworksResult) error {
	fmt.Fprintln(r.out, "🌐 Available Networks:")
	fmt.Fprintln(r.out)

	for _, status := range result.Networks {
		marker := "  "
		if status.Selected {
			marker = color.New(color.FgCyan).Sprint("▸ ")
		}

		switch {
		case status.Error != nil:
			fmt.Fprintf(r.out, "%s❌ %s - Error: %v\n", marker, status.Network.Name, status.Error)
		case status.Mismatch():
			fmt.Fprintf(r.out, "%s⚠️  %s - Chain ID: %s (expected %s)\n", marker, status.Network.Name, status.ChainID, status.Network.ChainID)
		default:
			fmt.Fprintf(r.out, "%s✅ %s - Chain ID: %s %s\n", marker, status.Network.Name, status.ChainID, mutedStyle.Sprint(status.Network.RPCURL))
		}
	}

	return nil
}
