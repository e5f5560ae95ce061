package config

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/credence0x/ctf-deploy/internal/domain"
	"github.com/credence0x/ctf-deploy/internal/domain/config"
	"github.com/samber/lo"
)

// DefaultNetwork is used when STARKNET_NETWORK is unset
const DefaultNetwork = "sepolia"

var presets = map[string]config.Network{
	"devnet": {
		Name:         "devnet",
		RPCURL:       "http://127.0.0.1:5050/rpc",
		PollInterval: time.Second,
	},
	"sepolia": {
		Name:         "sepolia",
		ChainID:      "SN_SEPOLIA",
		RPCURL:       "https://rpc.starknet-testnet.lava.build",
		ExplorerURL:  "https://sepolia.voyager.online",
		PollInterval: 5 * time.Second,
	},
	"mainnet": {
		Name:                 "mainnet",
		ChainID:              "SN_MAIN",
		RPCURL:               "https://rpc.starknet.lava.build",
		ExplorerURL:          "https://voyager.online",
		PollInterval:         5 * time.Second,
		RequiresConfirmation: true,
	},
}

// NetworkNames returns the known preset names, sorted
func NetworkNames() []string {
	names := lo.Keys(presets)
	sort.Strings(names)
	return names
}

// ResolveNetwork returns a copy of the named preset. A non-empty rpcURL
// replaces the preset endpoint.
func ResolveNetwork(name, rpcURL string) (*config.Network, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = DefaultNetwork
	}

	preset, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (expected one of %s)", domain.ErrUnknownNetwork, name, strings.Join(NetworkNames(), ", "))
	}

	network := preset
	if rpcURL != "" {
		network.RPCURL = rpcURL
	}
	return &network, nil
}
