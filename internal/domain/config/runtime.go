package config

import (
	"fmt"
	"strings"
	"time"
)

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	ProjectRoot string
	DataDir     string
	BuildDir    string

	// PackageName is the scarb package name from Scarb.toml
	PackageName string
	// HasStarknetTarget is false when Scarb.toml declares no [[target.starknet-contract]]
	HasStarknetTarget bool

	// Context settings
	Network *Network
	Account Account

	// Execution settings
	Debug          bool
	NonInteractive bool
	Timeout        time.Duration
	Pause          time.Duration
}

// Network represents a Starknet network configuration
type Network struct {
	Name string `json:"name"`
	// ChainID is the decoded short string chain id, e.g. "SN_SEPOLIA".
	// Empty matches any chain.
	ChainID      string        `json:"chainId,omitempty"`
	RPCURL       string        `json:"rpcUrl"`
	ExplorerURL  string        `json:"explorerUrl,omitempty"`
	PollInterval time.Duration `json:"pollInterval"`
	// RequiresConfirmation gates broadcasting behind an interactive prompt
	RequiresConfirmation bool `json:"requiresConfirmation"`
}

// TxURL returns the explorer link for a transaction, or the bare hash when
// the network has no explorer.
func (n *Network) TxURL(txHash string) string {
	if n.ExplorerURL == "" {
		return txHash
	}
	return fmt.Sprintf("%s/tx/%s", strings.TrimSuffix(n.ExplorerURL, "/"), txHash)
}

// ContractURL returns the explorer link for a contract address
func (n *Network) ContractURL(address string) string {
	if n.ExplorerURL == "" {
		return address
	}
	return fmt.Sprintf("%s/contract/%s", strings.TrimSuffix(n.ExplorerURL, "/"), address)
}

// Account holds the deployer account and the signer handed to starkli
type Account struct {
	Address string
	// File is the starkli account descriptor (STARKNET_ACCOUNT)
	File             string
	PrivateKey       string
	Keystore         string
	KeystorePassword string
}

// HasSigner reports whether a private key or keystore is configured
func (a Account) HasSigner() bool {
	return a.PrivateKey != "" || a.Keystore != ""
}
