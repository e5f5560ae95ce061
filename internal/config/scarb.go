package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// ScarbManifestTOML represents the parts of Scarb.toml the deployer reads
type ScarbManifestTOML struct {
	Package struct {
		Name    string `toml:"name"`
		Version string `toml:"version"`
	} `toml:"package"`
	Target struct {
		StarknetContract []map[string]any `toml:"starknet-contract"`
	} `toml:"target"`
}

// LoadScarbManifest loads and parses Scarb.toml
func LoadScarbManifest(projectRoot string) (*ScarbManifestTOML, error) {
	path := filepath.Join(projectRoot, ScarbManifest)

	var manifest ScarbManifestTOML
	if _, err := toml.DecodeFile(path, &manifest); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", ScarbManifest, err)
	}
	if manifest.Package.Name == "" {
		return nil, fmt.Errorf("%s has no [package] name", ScarbManifest)
	}
	return &manifest, nil
}

// HasStarknetTarget reports whether the manifest builds Starknet contracts
func (m *ScarbManifestTOML) HasStarknetTarget() bool {
	return len(m.Target.StarknetContract) > 0
}

// loadEnvFiles loads .env and .env.local without overriding the environment
func loadEnvFiles(projectRoot string) {
	envFiles := []string{
		filepath.Join(projectRoot, ".env"),
		filepath.Join(projectRoot, ".env.local"),
	}

	for _, envFile := range envFiles {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				// Log warning but don't fail
				fmt.Fprintf(os.Stderr, "Warning: Failed to load %s: %v\n", envFile, err)
			}
		}
	}
}
