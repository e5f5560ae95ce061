package config

import (
	"github.com/credence0x/ctf-deploy/internal/config"
	domainconfig "github.com/credence0x/ctf-deploy/internal/domain/config"
	"github.com/credence0x/ctf-deploy/internal/usecase"
)

// NetworkResolverAdapter adapts the built-in network presets to the usecase.NetworkResolver interface
type NetworkResolverAdapter struct{}

// NewNetworkResolverAdapter creates a new adapter
func NewNetworkResolverAdapter() *NetworkResolverAdapter {
	return &NetworkResolverAdapter{}
}

// GetNetworks returns all preset network names
func (a *NetworkResolverAdapter) GetNetworks() []string {
	return config.NetworkNames()
}

// ResolveNetwork resolves a network name to its preset configuration
func (a *NetworkResolverAdapter) ResolveNetwork(networkName string) (*domainconfig.Network, error) {
	return config.ResolveNetwork(networkName, "")
}

// Ensure the adapter implements the interface
var _ usecase.NetworkResolver = (*NetworkResolverAdapter)(nil)
