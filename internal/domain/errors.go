package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors for domain operations
var (
	// ErrBuildDirNotFound is returned when the scarb build output directory is missing
	ErrBuildDirNotFound = errors.New("build directory not found")

	// ErrNoBuildFiles is returned when the build directory holds no contract classes
	ErrNoBuildFiles = errors.New("no build files found, run `scarb build --release` first")

	// ErrCasmNotFound is returned when a Sierra class has no compiled CASM sibling
	ErrCasmNotFound = errors.New("compiled CASM class not found")

	// ErrInvalidArtifact is returned when an artifact file is not a contract class
	ErrInvalidArtifact = errors.New("invalid contract artifact")

	// ErrUnknownNetwork is returned when the selected network has no preset
	ErrUnknownNetwork = errors.New("unknown network")

	// ErrMissingAccount is returned when no deployer account is configured
	ErrMissingAccount = errors.New("deployer account not configured")

	// ErrDeploymentAborted is returned when the user declines to broadcast
	ErrDeploymentAborted = errors.New("deployment aborted by user")

	// ErrShortStringTooLong is returned when a string exceeds 31 ASCII characters
	ErrShortStringTooLong = errors.New("short string longer than 31 characters")

	// ErrShortStringNotASCII is returned when a short string has non-ASCII characters
	ErrShortStringNotASCII = errors.New("short string contains non-ASCII characters")
)

// ArtifactNotFoundErr is returned when no build file matches a contract name.
type ArtifactNotFoundErr struct {
	Name        string
	Dir         string
	Suggestions []string
}

func (e ArtifactNotFoundErr) Error() string {
	msg := fmt.Sprintf("contract not found: %s (searched %s)", e.Name, e.Dir)
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf("\ndid you mean: %s?", strings.Join(e.Suggestions, ", "))
	}
	return msg
}

// AmbiguousArtifactErr is returned when more than one build file matches a contract name.
type AmbiguousArtifactErr struct {
	Name    string
	Matches []string
}

func (e AmbiguousArtifactErr) Error() string {
	sorted := make([]string, len(e.Matches))
	copy(sorted, e.Matches)
	sort.Strings(sorted)

	var lines []string
	for _, m := range sorted {
		lines = append(lines, "  - "+m)
	}

	return fmt.Sprintf("multiple build files match contract %s:\n%s", e.Name, strings.Join(lines, "\n"))
}

// TransactionFailedErr is returned when a transaction is rejected or reverted.
type TransactionFailedErr struct {
	TxHash          string
	FinalityStatus  string
	ExecutionStatus string
	Reason          string
}

func (e TransactionFailedErr) Error() string {
	status := e.FinalityStatus
	if e.ExecutionStatus != "" {
		status += "/" + e.ExecutionStatus
	}
	if e.Reason != "" {
		return fmt.Sprintf("transaction %s failed (%s): %s", e.TxHash, status, e.Reason)
	}
	return fmt.Sprintf("transaction %s failed (%s)", e.TxHash, status)
}

// ChainMismatchErr is returned when the RPC endpoint serves a different chain than the network preset.
type ChainMismatchErr struct {
	Network  string
	Expected string
	Actual   string
}

func (e ChainMismatchErr) Error() string {
	return fmt.Sprintf("chain ID mismatch for network %s: expected %s, got %s", e.Network, e.Expected, e.Actual)
}
