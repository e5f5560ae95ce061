package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/credence0x/ctf-deploy/internal/domain"
	"github.com/credence0x/ctf-deploy/internal/domain/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// ScarbManifest marks the root of a Cairo project
	ScarbManifest = "Scarb.toml"
	// DataDirName holds local config and deployment records
	DataDirName = ".ctf"
	// DefaultBuildDir is where scarb writes release artifacts
	DefaultBuildDir = "target/release"
)

// Provider creates RuntimeConfig for Wire dependency injection
func Provider(v *viper.Viper) (*config.RuntimeConfig, error) {
	// Get project root from viper
	projectRoot := v.GetString("project_root")
	if projectRoot == "" {
		var err error
		projectRoot, err = FindProjectRoot()
		if err != nil {
			return nil, fmt.Errorf("failed to find project root: %w", err)
		}
	}

	loadEnvFiles(projectRoot)

	cfg := &config.RuntimeConfig{
		ProjectRoot:    projectRoot,
		DataDir:        filepath.Join(projectRoot, DataDirName),
		Debug:          v.GetBool("debug"),
		NonInteractive: v.GetBool("non_interactive"),
		Timeout:        v.GetDuration("timeout"),
		Pause:          v.GetDuration("deploy_pause"),
		Account: config.Account{
			Address:          v.GetString("account_address"),
			File:             expandPath(projectRoot, v.GetString("account")),
			PrivateKey:       v.GetString("private_key"),
			Keystore:         expandPath(projectRoot, v.GetString("keystore")),
			KeystorePassword: v.GetString("keystore_password"),
		},
	}

	buildDir := v.GetString("build_dir")
	if buildDir == "" {
		buildDir = DefaultBuildDir
	}
	cfg.BuildDir = expandPath(projectRoot, buildDir)

	manifest, err := LoadScarbManifest(projectRoot)
	if err != nil {
		return nil, err
	}
	cfg.PackageName = manifest.Package.Name
	cfg.HasStarknetTarget = manifest.HasStarknetTarget()

	network, err := ResolveNetwork(v.GetString("network"), v.GetString("rpc_url"))
	if err != nil {
		return nil, err
	}
	cfg.Network = network

	return cfg, nil
}

// FindProjectRoot walks up from current directory to find Scarb.toml
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return findProjectRootFrom(dir)
}

func findProjectRootFrom(dir string) (string, error) {
	for {
		if _, err := os.Stat(filepath.Join(dir, ScarbManifest)); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root without finding Scarb.toml
			return "", fmt.Errorf("not in a Scarb project (%s not found)", ScarbManifest)
		}
		dir = parent
	}
}

// SetupViper creates and configures a viper instance
func SetupViper(projectRoot string, cmd *cobra.Command) *viper.Viper {
	v := viper.New()

	// Set up config file
	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(projectRoot, DataDirName))

	// Set up environment variables
	v.SetEnvPrefix("STARKNET")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	// Set defaults
	v.SetDefault("network", DefaultNetwork)
	v.SetDefault("timeout", "30m")
	v.SetDefault("deploy_pause", domain.DefaultPause.String())
	v.SetDefault("debug", false)
	v.SetDefault("non_interactive", false)
	v.SetDefault("project_root", projectRoot)

	// Try to read config file (ignore error if not found)
	_ = v.ReadInConfig()

	// --non-interactive binds to non_interactive, same key as STARKNET_NON_INTERACTIVE
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if err := v.BindPFlag(strings.ReplaceAll(f.Name, "-", "_"), f); err != nil {
			panic(err)
		}
	})

	return v
}

// expandPath expands env vars and resolves relative paths against the project root
func expandPath(projectRoot, path string) string {
	if path == "" {
		return ""
	}
	path = os.ExpandEnv(path)
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(projectRoot, path)
	}
	return path
}
