package artifacts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/credence0x/ctf-deploy/internal/domain"
	"github.com/credence0x/ctf-deploy/internal/domain/config"
	"github.com/credence0x/ctf-deploy/internal/domain/models"
	"github.com/credence0x/ctf-deploy/internal/usecase"
	"github.com/sahilm/fuzzy"
	"github.com/samber/lo"
)

const (
	// SierraSuffix marks the Sierra contract class emitted by scarb
	SierraSuffix = ".contract_class.json"
	// CasmSuffix marks the compiled CASM class emitted next to it
	CasmSuffix = ".compiled_contract_class.json"
)

// Repository resolves contract artifacts from the scarb build directory
type Repository struct {
	buildDir      string
	packageName   string
	starknetBuild bool
	log           *slog.Logger
}

// NewRepository creates a new artifact repository for the configured build directory
func NewRepository(cfg *config.RuntimeConfig, log *slog.Logger) *Repository {
	return &Repository{
		buildDir:      cfg.BuildDir,
		packageName:   cfg.PackageName,
		starknetBuild: cfg.HasStarknetTarget,
		log:           log,
	}
}

// sierraClass is the subset of a Sierra contract class we inspect
type sierraClass struct {
	SierraProgram        []json.RawMessage `json:"sierra_program"`
	ContractClassVersion string            `json:"contract_class_version"`
	ABI                  []json.RawMessage `json:"abi"`
}

// GetPath returns the Sierra class file for the named contract.
// A file matches when its stem equals the name or ends with "_<name>".
// Among several matches, "<package>_<name>" wins.
func (r *Repository) GetPath(ctx context.Context, name string) (string, error) {
	files, err := r.listClasses()
	if err != nil {
		return "", err
	}

	matches := lo.Filter(files, func(file string, _ int) bool {
		return matchesContract(file, name)
	})

	switch len(matches) {
	case 0:
		return "", domain.ArtifactNotFoundErr{
			Name:        name,
			Dir:         r.buildDir,
			Suggestions: suggest(name, files),
		}
	case 1:
		return filepath.Join(r.buildDir, matches[0]), nil
	}

	if r.packageName != "" {
		own := r.packageName + "_" + name + SierraSuffix
		if lo.Contains(matches, own) {
			r.log.Debug("picked package artifact", "contract", name, "file", own, "candidates", len(matches))
			return filepath.Join(r.buildDir, own), nil
		}
	}
	return "", domain.AmbiguousArtifactErr{Name: name, Matches: matches}
}

// Load resolves and sanity-checks both class files of the named contract
func (r *Repository) Load(ctx context.Context, name string) (*models.Artifact, error) {
	sierraPath, err := r.GetPath(ctx, name)
	if err != nil {
		return nil, err
	}

	casmPath := strings.TrimSuffix(sierraPath, SierraSuffix) + CasmSuffix
	if _, err := os.Stat(casmPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrCasmNotFound, casmPath)
		}
		return nil, fmt.Errorf("failed to stat %s: %w", casmPath, err)
	}

	data, err := os.ReadFile(sierraPath) //nolint:gosec // build output path
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", sierraPath, err)
	}

	var class sierraClass
	if err := json.Unmarshal(data, &class); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrInvalidArtifact, sierraPath, err)
	}
	if len(class.SierraProgram) == 0 {
		return nil, fmt.Errorf("%w: %s has no sierra_program", domain.ErrInvalidArtifact, sierraPath)
	}

	r.log.Debug("loaded artifact", "contract", name, "version", class.ContractClassVersion, "abi", len(class.ABI))

	return &models.Artifact{
		Name:                 name,
		SierraPath:           sierraPath,
		CasmPath:             casmPath,
		ContractClassVersion: class.ContractClassVersion,
		ABIEntries:           len(class.ABI),
	}, nil
}

// listClasses returns the sorted Sierra class file names in the build directory
func (r *Repository) listClasses() ([]string, error) {
	entries, err := os.ReadDir(r.buildDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s%s", domain.ErrBuildDirNotFound, r.buildDir, r.targetHint())
		}
		return nil, fmt.Errorf("failed to read build directory: %w", err)
	}

	files := lo.FilterMap(entries, func(e os.DirEntry, _ int) (string, bool) {
		return e.Name(), !e.IsDir() && strings.HasSuffix(e.Name(), SierraSuffix)
	})
	if len(files) == 0 {
		return nil, fmt.Errorf("%w%s", domain.ErrNoBuildFiles, r.targetHint())
	}

	sort.Strings(files)
	return files, nil
}

// targetHint explains empty builds caused by a manifest without a contract target
func (r *Repository) targetHint() string {
	if r.starknetBuild {
		return ""
	}
	return " (Scarb.toml has no [[target.starknet-contract]] section, so scarb emits no contract classes)"
}

// matchesContract checks a "<package>_<Name>.contract_class.json" file name against a contract name
func matchesContract(file, name string) bool {
	stem := strings.TrimSuffix(file, SierraSuffix)
	return stem == name || strings.HasSuffix(stem, "_"+name)
}

// suggest returns the contract names closest to the requested one
func suggest(name string, files []string) []string {
	names := lo.Map(files, func(file string, _ int) string {
		stem := strings.TrimSuffix(file, SierraSuffix)
		if idx := strings.LastIndex(stem, "_"); idx != -1 {
			return stem[idx+1:]
		}
		return stem
	})

	found := fuzzy.Find(name, names)
	suggestions := lo.Map(found, func(m fuzzy.Match, _ int) string {
		return m.Str
	})
	if len(suggestions) > 3 {
		suggestions = suggestions[:3]
	}
	return lo.Uniq(suggestions)
}

// Ensure Repository implements ArtifactRepository
var _ usecase.ArtifactRepository = (*Repository)(nil)
