package adapters

import (
	"io"

	"github.com/credence0x/ctf-deploy/internal/adapters/artifacts"
	"github.com/credence0x/ctf-deploy/internal/adapters/clock"
	adapterconfig "github.com/credence0x/ctf-deploy/internal/adapters/config"
	"github.com/credence0x/ctf-deploy/internal/adapters/fs"
	"github.com/credence0x/ctf-deploy/internal/adapters/interactive"
	"github.com/credence0x/ctf-deploy/internal/adapters/progress"
	"github.com/credence0x/ctf-deploy/internal/adapters/starknet"
	"github.com/credence0x/ctf-deploy/internal/cli/render"
	"github.com/credence0x/ctf-deploy/internal/domain/config"
	"github.com/credence0x/ctf-deploy/internal/usecase"
	"github.com/google/wire"
)

// ProvideProgressSink renders deployment progress, with a spinner unless running non-interactively
func ProvideProgressSink(cfg *config.RuntimeConfig, renderer *render.DeployRenderer, out io.Writer) usecase.ProgressSink {
	var spinner usecase.ProgressSink = progress.NewSpinnerProgressReporter(out)
	if cfg.NonInteractive {
		spinner = progress.NewNopSink()
	}
	return progress.NewDeployProgress(renderer, spinner)
}

// FSSet provides filesystem-based implementations
var FSSet = wire.NewSet(
	artifacts.NewRepository,
	wire.Bind(new(usecase.ArtifactRepository), new(*artifacts.Repository)),

	fs.NewRecordStoreAdapter,
	wire.Bind(new(usecase.DeploymentRecordStore), new(*fs.RecordStoreAdapter)),
)

// StarknetSet provides the RPC reader and the starkli-backed account
var StarknetSet = wire.NewSet(
	starknet.NewRPCClient,
	wire.Bind(new(usecase.ChainReader), new(*starknet.RPCClient)),

	starknet.NewNetworkProber,
	wire.Bind(new(usecase.NetworkProber), new(*starknet.NetworkProber)),

	starknet.NewStarkliExecutor,
	starknet.NewAccountAdapter,
	wire.Bind(new(usecase.Account), new(*starknet.AccountAdapter)),
)

// InteractiveSet provides interactive implementations
var InteractiveSet = wire.NewSet(
	interactive.NewConfirmerAdapter,
	wire.Bind(new(usecase.Confirmer), new(*interactive.ConfirmerAdapter)),
)

// ConfigSet provides configuration-based implementations
var ConfigSet = wire.NewSet(
	adapterconfig.NewNetworkResolverAdapter,
	wire.Bind(new(usecase.NetworkResolver), new(*adapterconfig.NetworkResolverAdapter)),
)

// ClockSet provides the wall clock
var ClockSet = wire.NewSet(
	clock.NewSystemClock,
	wire.Bind(new(usecase.Clock), new(*clock.SystemClock)),
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	ProvideProgressSink,
	render.NewDeployRenderer,

	FSSet,
	StarknetSet,
	InteractiveSet,
	ConfigSet,
	ClockSet,
)
