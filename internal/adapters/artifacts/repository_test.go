package artifacts

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/credence0x/ctf-deploy/internal/domain"
	"github.com/credence0x/ctf-deploy/internal/domain/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sierraFixture = `{"sierra_program":["0x1","0x2"],"contract_class_version":"0.1.0","abi":[{"type":"function"},{"type":"event"}]}`

func newTestRepository(t *testing.T, buildDir string) *Repository {
	t.Helper()
	return NewRepository(&config.RuntimeConfig{BuildDir: buildDir, HasStarknetTarget: true}, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func writeArtifact(t *testing.T, dir, stem string, withCasm bool) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, stem+SierraSuffix), []byte(sierraFixture), 0644))
	if withCasm {
		require.NoError(t, os.WriteFile(filepath.Join(dir, stem+CasmSuffix), []byte(`{"bytecode":[]}`), 0644))
	}
}

func TestGetPath(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the single matching file", func(t *testing.T) {
		dir := t.TempDir()
		for _, name := range domain.PlanContracts {
			writeArtifact(t, dir, "ctf_"+name, true)
		}
		repo := newTestRepository(t, dir)

		path, err := repo.GetPath(ctx, "Stage2")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "ctf_Stage2"+SierraSuffix), path)

		// ERC20 must not pick up other tokens
		path, err = repo.GetPath(ctx, "ERC20")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "ctf_ERC20"+SierraSuffix), path)
	})

	t.Run("matches a file without package prefix", func(t *testing.T) {
		dir := t.TempDir()
		writeArtifact(t, dir, "Prize", false)
		repo := newTestRepository(t, dir)

		path, err := repo.GetPath(ctx, "Prize")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "Prize"+SierraSuffix), path)
	})

	t.Run("fails with suggestions when nothing matches", func(t *testing.T) {
		dir := t.TempDir()
		writeArtifact(t, dir, "ctf_Stage1", true)
		writeArtifact(t, dir, "ctf_Prize", true)
		repo := newTestRepository(t, dir)

		_, err := repo.GetPath(ctx, "Stg1")
		require.Error(t, err)

		var notFound domain.ArtifactNotFoundErr
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, "Stg1", notFound.Name)
		assert.Equal(t, []string{"Stage1"}, notFound.Suggestions)
		assert.Contains(t, err.Error(), "did you mean: Stage1?")
	})

	t.Run("fails on ambiguous matches", func(t *testing.T) {
		dir := t.TempDir()
		writeArtifact(t, dir, "ctf_Stage1", true)
		writeArtifact(t, dir, "old_Stage1", true)
		repo := newTestRepository(t, dir)

		_, err := repo.GetPath(ctx, "Stage1")
		require.Error(t, err)

		var ambiguous domain.AmbiguousArtifactErr
		require.ErrorAs(t, err, &ambiguous)
		assert.ElementsMatch(t, []string{"ctf_Stage1" + SierraSuffix, "old_Stage1" + SierraSuffix}, ambiguous.Matches)

		// Same inputs, same error
		_, again := repo.GetPath(ctx, "Stage1")
		assert.Equal(t, err.Error(), again.Error())
	})

	t.Run("prefers the package artifact among several matches", func(t *testing.T) {
		dir := t.TempDir()
		writeArtifact(t, dir, "ctf_Stage1", true)
		writeArtifact(t, dir, "old_Stage1", true)
		repo := NewRepository(&config.RuntimeConfig{BuildDir: dir, PackageName: "ctf", HasStarknetTarget: true}, slog.New(slog.NewTextHandler(io.Discard, nil)))

		path, err := repo.GetPath(ctx, "Stage1")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "ctf_Stage1"+SierraSuffix), path)

		_, err = repo.GetPath(ctx, "Prize")
		var notFound domain.ArtifactNotFoundErr
		assert.ErrorAs(t, err, &notFound)
	})

	t.Run("fails when build directory is missing", func(t *testing.T) {
		repo := newTestRepository(t, filepath.Join(t.TempDir(), "target", "release"))

		_, err := repo.GetPath(ctx, "Prize")
		assert.ErrorIs(t, err, domain.ErrBuildDirNotFound)
		assert.NotContains(t, err.Error(), "starknet-contract")
	})

	t.Run("hints at a missing contract target", func(t *testing.T) {
		dir := t.TempDir()
		repo := NewRepository(&config.RuntimeConfig{BuildDir: dir}, slog.New(slog.NewTextHandler(io.Discard, nil)))

		_, err := repo.GetPath(ctx, "Prize")
		assert.ErrorIs(t, err, domain.ErrNoBuildFiles)
		assert.Contains(t, err.Error(), "[[target.starknet-contract]]")
	})

	t.Run("fails when build directory has no classes", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "ctf.starknet_artifacts.json"), []byte(`{}`), 0644))
		repo := newTestRepository(t, dir)

		_, err := repo.GetPath(ctx, "Prize")
		assert.ErrorIs(t, err, domain.ErrNoBuildFiles)
	})
}

func TestLoad(t *testing.T) {
	ctx := context.Background()

	t.Run("loads sierra and casm paths", func(t *testing.T) {
		dir := t.TempDir()
		writeArtifact(t, dir, "ctf_Stage3", true)
		repo := newTestRepository(t, dir)

		artifact, err := repo.Load(ctx, "Stage3")
		require.NoError(t, err)
		assert.Equal(t, "Stage3", artifact.Name)
		assert.Equal(t, filepath.Join(dir, "ctf_Stage3"+SierraSuffix), artifact.SierraPath)
		assert.Equal(t, filepath.Join(dir, "ctf_Stage3"+CasmSuffix), artifact.CasmPath)
		assert.Equal(t, "0.1.0", artifact.ContractClassVersion)
		assert.Equal(t, 2, artifact.ABIEntries)
	})

	t.Run("fails without casm file", func(t *testing.T) {
		dir := t.TempDir()
		writeArtifact(t, dir, "ctf_Stage3", false)
		repo := newTestRepository(t, dir)

		_, err := repo.Load(ctx, "Stage3")
		assert.ErrorIs(t, err, domain.ErrCasmNotFound)
	})

	t.Run("rejects files that are not sierra classes", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "ctf_Prize"+SierraSuffix), []byte(`{"abi":[]}`), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "ctf_Prize"+CasmSuffix), []byte(`{}`), 0644))
		repo := newTestRepository(t, dir)

		_, err := repo.Load(ctx, "Prize")
		assert.ErrorIs(t, err, domain.ErrInvalidArtifact)
	})
}
