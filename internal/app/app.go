package app

import (
	"sync"

	"github.com/credence0x/ctf-deploy/internal/adapters/starknet"
	"github.com/credence0x/ctf-deploy/internal/cli/render"
	"github.com/credence0x/ctf-deploy/internal/domain/config"
	"github.com/credence0x/ctf-deploy/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig

	// Use cases
	DeployChallenge *usecase.DeployChallenge
	ListNetworks    *usecase.ListNetworks

	// Renderers
	DeployRenderer *render.DeployRenderer

	rpc       *starknet.RPCClient
	releases  []func()
	closeOnce sync.Once
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	deployChallenge *usecase.DeployChallenge,
	listNetworks *usecase.ListNetworks,
	deployRenderer *render.DeployRenderer,
	rpc *starknet.RPCClient,
) (*App, error) {
	return &App{
		Config:          cfg,
		DeployChallenge: deployChallenge,
		ListNetworks:    listNetworks,
		DeployRenderer:  deployRenderer,
		rpc:             rpc,
	}, nil
}

// OnClose registers a function to run when the app is closed
func (a *App) OnClose(fn func()) {
	a.releases = append(a.releases, fn)
}

// Close runs the registered release functions and closes the RPC
// connection. Calls after the first are no-ops.
func (a *App) Close() {
	a.closeOnce.Do(func() {
		for i := len(a.releases) - 1; i >= 0; i-- {
			a.releases[i]()
		}
		if a.rpc != nil {
			a.rpc.Close()
		}
	})
}
