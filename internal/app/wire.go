//go:build wireinject
// +build wireinject

package app

import (
	"io"

	"github.com/credence0x/ctf-deploy/internal/adapters"
	"github.com/credence0x/ctf-deploy/internal/config"
	"github.com/credence0x/ctf-deploy/internal/logging"
	"github.com/credence0x/ctf-deploy/internal/usecase"
	"github.com/google/wire"
	"github.com/spf13/viper"
)

// InitApp creates a fully wired App instance
func InitApp(v *viper.Viper, out io.Writer) (*App, error) {
	wire.Build(
		// Configuration
		config.Provider,
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,

		// Use cases
		usecase.NewDeployChallenge,
		usecase.NewListNetworks,

		// App
		NewApp,
	)
	return nil, nil
}
