package usecase

import (
	"context"

	"github.com/credence0x/ctf-deploy/internal/domain/config"
	"golang.org/x/sync/errgroup"
)

const maxConcurrentProbes = 4

// ListNetworksResult contains the result of listing networks
type ListNetworksResult struct {
	Networks []NetworkStatus
}

// NetworkStatus represents the status of a network
type NetworkStatus struct {
	Network  *config.Network
	ChainID  string
	Selected bool
	Error    error
}

// Mismatch reports whether the node answered with an unexpected chain id
func (s NetworkStatus) Mismatch() bool {
	return s.Error == nil && s.Network.ChainID != "" && s.Network.ChainID != s.ChainID
}

// ListNetworks is a use case for listing the known networks and probing their RPC endpoints
type ListNetworks struct {
	config   *config.RuntimeConfig
	resolver NetworkResolver
	prober   NetworkProber
}

// NewListNetworks creates a new ListNetworks use case
func NewListNetworks(cfg *config.RuntimeConfig, resolver NetworkResolver, prober NetworkProber) *ListNetworks {
	return &ListNetworks{
		config:   cfg,
		resolver: resolver,
		prober:   prober,
	}
}

// Run executes the use case. Probe failures are reported per network.
func (uc *ListNetworks) Run(ctx context.Context) (*ListNetworksResult, error) {
	names := uc.resolver.GetNetworks()

	networks := make([]NetworkStatus, len(names))
	for i, name := range names {
		network, err := uc.resolver.ResolveNetwork(name)
		// The selected network carries the RPC override
		if selected := uc.config.Network; selected != nil && selected.Name == name {
			network, err = selected, nil
			networks[i].Selected = true
		}
		networks[i].Network = network
		networks[i].Error = err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentProbes)
	for i := range networks {
		status := &networks[i]
		if status.Error != nil {
			continue
		}
		g.Go(func() error {
			status.ChainID, status.Error = uc.prober.ChainID(gctx, status.Network)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &ListNetworksResult{
		Networks: networks,
	}, nil
}
