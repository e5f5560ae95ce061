package starknet

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
	"unicode"

	"github.com/NethermindEth/juno/core/felt"
	"github.com/credence0x/ctf-deploy/internal/domain"
	"github.com/credence0x/ctf-deploy/internal/domain/config"
	"github.com/credence0x/ctf-deploy/internal/usecase"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
)

// Starknet JSON-RPC error codes we react to
const (
	errCodeClassHashNotFound = 28
	errCodeTxHashNotFound    = 29
)

// Transaction finality and execution statuses
const (
	StatusReceived     = "RECEIVED"
	StatusRejected     = "REJECTED"
	StatusAcceptedOnL2 = "ACCEPTED_ON_L2"
	StatusAcceptedOnL1 = "ACCEPTED_ON_L1"
	ExecutionSucceeded = "SUCCEEDED"
	ExecutionReverted  = "REVERTED"
)

const defaultPollInterval = 5 * time.Second

// TransactionStatus is the result of starknet_getTransactionStatus
type TransactionStatus struct {
	FinalityStatus  string `json:"finality_status"`
	ExecutionStatus string `json:"execution_status,omitempty"`
	FailureReason   string `json:"failure_reason,omitempty"`
}

// RPCClient implements ChainReader over the Starknet JSON-RPC API
type RPCClient struct {
	url    string
	client *rpc.Client
	log    *slog.Logger
	mu     sync.Mutex
}

// NewRPCClient creates a new JSON-RPC reader for the configured network.
// The connection is established lazily on first use.
func NewRPCClient(cfg *config.RuntimeConfig, log *slog.Logger) *RPCClient {
	var url string
	if cfg.Network != nil {
		url = cfg.Network.RPCURL
	}
	return &RPCClient{
		url: url,
		log: log,
	}
}

// connect returns the shared rpc client, dialing it on first use
func (c *RPCClient) connect(ctx context.Context) (*rpc.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client != nil {
		return c.client, nil
	}
	if c.url == "" {
		return nil, fmt.Errorf("no RPC URL configured, set STARKNET_RPC_URL")
	}

	client, err := rpc.DialContext(ctx, c.url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RPC: %w", err)
	}
	c.client = client
	return client, nil
}

// Close releases the underlying connection
func (c *RPCClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client != nil {
		c.client.Close()
		c.client = nil
	}
}

// ChainID returns the chain id decoded from its short string form, e.g. "SN_SEPOLIA"
func (c *RPCClient) ChainID(ctx context.Context) (string, error) {
	client, err := c.connect(ctx)
	if err != nil {
		return "", err
	}

	var raw string
	if err := client.CallContext(ctx, &raw, "starknet_chainId"); err != nil {
		return "", fmt.Errorf("failed to get chain ID: %w", err)
	}

	return decodeChainID(raw)
}

// ClassExists reports whether the class hash is declared at the latest block
func (c *RPCClient) ClassExists(ctx context.Context, classHash *felt.Felt) (bool, error) {
	client, err := c.connect(ctx)
	if err != nil {
		return false, err
	}

	var class json.RawMessage
	err = client.CallContext(ctx, &class, "starknet_getClass", "latest", classHash.String())
	if err != nil {
		if rpcErrorCode(err) == errCodeClassHashNotFound {
			return false, nil
		}
		return false, fmt.Errorf("failed to get class: %w", err)
	}
	return true, nil
}

// TransactionStatus returns the finality and execution status of a transaction
func (c *RPCClient) TransactionStatus(ctx context.Context, txHash *felt.Felt) (*TransactionStatus, error) {
	client, err := c.connect(ctx)
	if err != nil {
		return nil, err
	}

	var status TransactionStatus
	if err := client.CallContext(ctx, &status, "starknet_getTransactionStatus", txHash.String()); err != nil {
		return nil, err
	}
	return &status, nil
}

// WaitForTransaction polls until the transaction is accepted on L2 or fails.
// Unknown hashes keep polling since the node may not have seen the transaction yet.
func (c *RPCClient) WaitForTransaction(ctx context.Context, txHash *felt.Felt, pollInterval time.Duration) error {
	if pollInterval <= 0 {
		pollInterval = defaultPollInterval
	}

	for attempt := 1; ; attempt++ {
		status, err := c.TransactionStatus(ctx, txHash)
		switch {
		case err != nil && rpcErrorCode(err) == errCodeTxHashNotFound:
			c.log.Debug("transaction not found yet", "tx", txHash.String(), "attempt", attempt)
		case err != nil:
			return fmt.Errorf("failed to get transaction status: %w", err)
		default:
			done, err := checkStatus(txHash, status)
			if done || err != nil {
				return err
			}
			c.log.Debug("transaction pending", "tx", txHash.String(), "status", status.FinalityStatus, "attempt", attempt)
		}

		timer := time.NewTimer(pollInterval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// checkStatus reports whether a transaction reached a final state
func checkStatus(txHash *felt.Felt, status *TransactionStatus) (bool, error) {
	switch status.FinalityStatus {
	case StatusRejected:
		return true, domain.TransactionFailedErr{
			TxHash:         txHash.String(),
			FinalityStatus: status.FinalityStatus,
			Reason:         status.FailureReason,
		}
	case StatusAcceptedOnL2, StatusAcceptedOnL1:
		if status.ExecutionStatus == ExecutionReverted {
			return true, domain.TransactionFailedErr{
				TxHash:          txHash.String(),
				FinalityStatus:  status.FinalityStatus,
				ExecutionStatus: status.ExecutionStatus,
				Reason:          status.FailureReason,
			}
		}
		return true, nil
	default:
		return false, nil
	}
}

// decodeChainID turns the felt-encoded chain id into its ASCII name
func decodeChainID(raw string) (string, error) {
	n, err := hexutil.DecodeBig(raw)
	if err != nil {
		return "", fmt.Errorf("invalid chain ID %q: %w", raw, err)
	}

	name := string(n.Bytes())
	if name == "" {
		return raw, nil
	}
	for _, r := range name {
		if r > unicode.MaxASCII || !unicode.IsPrint(r) {
			// Not a short string, keep the hex form
			return raw, nil
		}
	}
	return name, nil
}

// rpcErrorCode extracts the JSON-RPC error code, or 0 for transport errors
func rpcErrorCode(err error) int {
	var rpcErr rpc.Error
	if errors.As(err, &rpcErr) {
		return rpcErr.ErrorCode()
	}
	return 0
}

// NetworkProber dials a network's RPC endpoint for a single chain id lookup
type NetworkProber struct {
	log *slog.Logger
}

// NewNetworkProber creates a new NetworkProber
func NewNetworkProber(log *slog.Logger) *NetworkProber {
	return &NetworkProber{log: log}
}

// ChainID returns the chain id reported by the network's RPC endpoint
func (p *NetworkProber) ChainID(ctx context.Context, network *config.Network) (string, error) {
	client := &RPCClient{url: network.RPCURL, log: p.log}
	defer client.Close()

	chainID, err := client.ChainID(ctx)
	if err != nil {
		p.log.Debug("network probe failed", "network", network.Name, "error", err)
		return "", err
	}
	return chainID, nil
}

// Ensure the adapters implement their ports
var (
	_ usecase.ChainReader   = (*RPCClient)(nil)
	_ usecase.NetworkProber = (*NetworkProber)(nil)
)
