package starknet

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"regexp"
	"strings"

	"github.com/NethermindEth/juno/core/felt"
	"github.com/credence0x/ctf-deploy/internal/domain"
	"github.com/credence0x/ctf-deploy/internal/domain/config"
)

var (
	alreadyDeclaredPattern = regexp.MustCompile(`already declared\. Class hash:\s*(0x[0-9a-fA-F]+)`)
	declareTxPattern       = regexp.MustCompile(`Contract declaration transaction:\s*(0x[0-9a-fA-F]+)`)
	classDeclaredPattern   = regexp.MustCompile(`Class hash declared:\s*(0x[0-9a-fA-F]+)`)
	deployAddressPattern   = regexp.MustCompile(`deployed at address\s*(0x[0-9a-fA-F]+)`)
	deployTxPattern        = regexp.MustCompile(`Contract deployment transaction:\s*(0x[0-9a-fA-F]+)`)
	contractDeployedRegexp = regexp.MustCompile(`Contract deployed:\s*(0x[0-9a-fA-F]+)`)
	invokeTxPattern        = regexp.MustCompile(`Invoke transaction:\s*(0x[0-9a-fA-F]+)`)
	hexPattern             = regexp.MustCompile(`0x[0-9a-fA-F]+`)
	starkliErrorPattern    = regexp.MustCompile(`(?m)^Error:\s*(.+)$`)
)

const redacted = "[REDACTED]"

var secretFlags = map[string]bool{
	"--private-key":       true,
	"--keystore-password": true,
}

// CommandRunner executes a process and returns its stdout and stderr
type CommandRunner func(ctx context.Context, name string, args []string, env []string) (stdout string, stderr string, err error)

// execRunner runs commands through os/exec
func execRunner(ctx context.Context, name string, args []string, env []string) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Env = append(os.Environ(), env...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// StarkliExecutor signs and submits transactions through the starkli CLI
type StarkliExecutor struct {
	binary  string
	rpcURL  string
	account config.Account
	run     CommandRunner
	log     *slog.Logger
}

// NewStarkliExecutor creates a new starkli executor for the configured network and account
func NewStarkliExecutor(cfg *config.RuntimeConfig, log *slog.Logger) *StarkliExecutor {
	var rpcURL string
	if cfg.Network != nil {
		rpcURL = cfg.Network.RPCURL
	}
	return &StarkliExecutor{
		binary:  "starkli",
		rpcURL:  rpcURL,
		account: cfg.Account,
		run:     execRunner,
		log:     log,
	}
}

// WithRunner replaces the process runner, used by tests
func (s *StarkliExecutor) WithRunner(run CommandRunner) *StarkliExecutor {
	s.run = run
	return s
}

// CheckInstallation verifies that starkli is installed and accessible
func (s *StarkliExecutor) CheckInstallation(ctx context.Context) error {
	if _, _, err := s.run(ctx, s.binary, []string{"--version"}, nil); err != nil {
		return fmt.Errorf("starkli not found. Please install it: https://book.starkli.rs/installation")
	}
	return nil
}

// ClassHash computes the class hash of a Sierra class file offline
func (s *StarkliExecutor) ClassHash(ctx context.Context, sierraPath string) (*felt.Felt, error) {
	stdout, stderr, err := s.run(ctx, s.binary, []string{"class-hash", sierraPath}, nil)
	if err != nil {
		return nil, parseStarkliError(err, stdout+stderr)
	}

	match := hexPattern.FindString(strings.TrimSpace(stdout))
	if match == "" {
		return nil, fmt.Errorf("unexpected starkli class-hash output: %q", stdout)
	}
	return domain.ParseFelt(match)
}

// Declare submits a declaration. txHash is nil when starkli finds the class already declared.
func (s *StarkliExecutor) Declare(ctx context.Context, sierraPath, casmPath string) (classHash, txHash *felt.Felt, err error) {
	args := append([]string{"declare", sierraPath, "--casm-file", casmPath}, s.commonArgs()...)
	output, err := s.exec(ctx, args)
	if err != nil {
		return nil, nil, err
	}
	return parseDeclareOutput(output)
}

// Deploy deploys a declared class through the universal deployer
func (s *StarkliExecutor) Deploy(ctx context.Context, classHash string, calldata []string) (address, txHash *felt.Felt, err error) {
	args := append([]string{"deploy", classHash}, calldata...)
	args = append(args, s.commonArgs()...)
	output, err := s.exec(ctx, args)
	if err != nil {
		return nil, nil, err
	}
	return parseDeployOutput(output)
}

// Invoke calls an entrypoint on a deployed contract
func (s *StarkliExecutor) Invoke(ctx context.Context, contract, entrypoint string, calldata []string) (*felt.Felt, error) {
	args := append([]string{"invoke", contract, entrypoint}, calldata...)
	args = append(args, s.commonArgs()...)
	output, err := s.exec(ctx, args)
	if err != nil {
		return nil, err
	}
	return parseInvokeOutput(output)
}

// exec runs a signing command and returns its combined output
func (s *StarkliExecutor) exec(ctx context.Context, args []string) (string, error) {
	s.log.Debug("running starkli", "args", strings.Join(redactArgs(args), " "))

	stdout, stderr, err := s.run(ctx, s.binary, args, s.env())
	output := stderr + "\n" + stdout
	if err != nil {
		return output, parseStarkliError(err, output)
	}
	return output, nil
}

// commonArgs returns the network and account flags
func (s *StarkliExecutor) commonArgs() []string {
	var args []string
	if s.rpcURL != "" {
		args = append(args, "--rpc", s.rpcURL)
	}
	if s.account.File != "" {
		args = append(args, "--account", s.account.File)
	}
	if s.account.Keystore != "" {
		args = append(args, "--keystore", s.account.Keystore)
	}
	return args
}

// env passes signer secrets through the environment so they never show in the process list
func (s *StarkliExecutor) env() []string {
	if s.account.Keystore != "" {
		if s.account.KeystorePassword == "" {
			return nil
		}
		return []string{"STARKNET_KEYSTORE_PASSWORD=" + s.account.KeystorePassword}
	}
	if s.account.PrivateKey == "" {
		return nil
	}
	return []string{"STARKNET_PRIVATE_KEY=" + s.account.PrivateKey}
}

// redactArgs masks the value following any secret-bearing flag
func redactArgs(args []string) []string {
	out := make([]string, len(args))
	copy(out, args)
	for i := 0; i < len(out)-1; i++ {
		if secretFlags[out[i]] {
			out[i+1] = redacted
		}
	}
	return out
}

func parseDeclareOutput(output string) (classHash, txHash *felt.Felt, err error) {
	if m := alreadyDeclaredPattern.FindStringSubmatch(output); len(m) > 1 {
		classHash, err = domain.ParseFelt(m[1])
		return classHash, nil, err
	}

	txMatch := declareTxPattern.FindStringSubmatch(output)
	hashMatch := classDeclaredPattern.FindStringSubmatch(output)
	if len(txMatch) < 2 || len(hashMatch) < 2 {
		return nil, nil, fmt.Errorf("unexpected starkli declare output: %s", strings.TrimSpace(output))
	}

	if classHash, err = domain.ParseFelt(hashMatch[1]); err != nil {
		return nil, nil, err
	}
	if txHash, err = domain.ParseFelt(txMatch[1]); err != nil {
		return nil, nil, err
	}
	return classHash, txHash, nil
}

func parseDeployOutput(output string) (address, txHash *felt.Felt, err error) {
	addrMatch := contractDeployedRegexp.FindStringSubmatch(output)
	if len(addrMatch) < 2 {
		addrMatch = deployAddressPattern.FindStringSubmatch(output)
	}
	txMatch := deployTxPattern.FindStringSubmatch(output)
	if len(addrMatch) < 2 || len(txMatch) < 2 {
		return nil, nil, fmt.Errorf("unexpected starkli deploy output: %s", strings.TrimSpace(output))
	}

	if address, err = domain.ParseFelt(addrMatch[1]); err != nil {
		return nil, nil, err
	}
	if txHash, err = domain.ParseFelt(txMatch[1]); err != nil {
		return nil, nil, err
	}
	return address, txHash, nil
}

func parseInvokeOutput(output string) (*felt.Felt, error) {
	m := invokeTxPattern.FindStringSubmatch(output)
	if len(m) < 2 {
		return nil, fmt.Errorf("unexpected starkli invoke output: %s", strings.TrimSpace(output))
	}
	return domain.ParseFelt(m[1])
}

// parseStarkliError extracts meaningful error messages from starkli output
func parseStarkliError(err error, output string) error {
	var exitErr *exec.ExitError
	if errors.Is(err, exec.ErrNotFound) {
		return fmt.Errorf("starkli not found in PATH: %w", err)
	}

	switch {
	case strings.Contains(output, "InsufficientAccountBalance"), strings.Contains(output, "insufficient balance"):
		return fmt.Errorf("insufficient account balance to pay fees")
	case strings.Contains(output, "InvalidTransactionNonce"):
		return fmt.Errorf("invalid transaction nonce (another transaction may be pending)")
	case strings.Contains(output, "ContractNotFound"):
		return fmt.Errorf("account contract not found on this network")
	case strings.Contains(output, "ClassHashNotFound"):
		return fmt.Errorf("class hash not declared on this network")
	}

	if m := starkliErrorPattern.FindStringSubmatch(output); len(m) > 1 {
		return fmt.Errorf("starkli: %s", strings.TrimSpace(m[1]))
	}

	if errors.As(err, &exitErr) {
		return fmt.Errorf("starkli exited with code %d\nOutput: %s", exitErr.ExitCode(), strings.TrimSpace(output))
	}
	return fmt.Errorf("%w\nOutput: %s", err, strings.TrimSpace(output))
}
