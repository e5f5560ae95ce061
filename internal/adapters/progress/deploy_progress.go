package progress

import (
	"context"
	"time"

	"github.com/credence0x/ctf-deploy/internal/cli/render"
	"github.com/credence0x/ctf-deploy/internal/domain/config"
	"github.com/credence0x/ctf-deploy/internal/domain/models"
	"github.com/credence0x/ctf-deploy/internal/usecase"
)

// DeployProgress renders deployment events as they happen
type DeployProgress struct {
	renderer *render.DeployRenderer
	spinner  usecase.ProgressSink
}

// NewDeployProgress creates a progress sink that prints through the renderer
func NewDeployProgress(renderer *render.DeployRenderer, spinner usecase.ProgressSink) *DeployProgress {
	return &DeployProgress{
		renderer: renderer,
		spinner:  spinner,
	}
}

// OnProgress prints events carrying a result and drives the spinner for the rest
func (p *DeployProgress) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	// Spinner output must never interleave with rendered lines
	if event.Spinner {
		p.render(event)
		p.spinner.OnProgress(ctx, event)
		return
	}
	p.spinner.OnProgress(ctx, event)
	p.render(event)
}

func (p *DeployProgress) render(event usecase.ProgressEvent) {
	switch meta := event.Metadata.(type) {
	case *config.Network:
		p.renderer.RenderNetwork(meta)
	case *models.Artifact:
		p.renderer.RenderDeclaring(meta)
	case *models.ClassDeclaration:
		p.renderer.RenderDeclaration(meta)
	case *models.DeployedContract:
		p.renderer.RenderDeployed(meta)
	case *models.Funding:
		p.renderer.RenderFunding(meta)
	case time.Duration:
		p.renderer.RenderPause(meta)
	case *usecase.DeployChallengeResult:
		p.renderer.RenderSummary(meta)
	case nil:
		if event.Stage == string(usecase.StageDeploying) && event.Message != "" {
			p.renderer.RenderDeploying(event.Message)
		}
	}
}

// Info prints an info message
func (p *DeployProgress) Info(message string) {
	p.spinner.Info(message)
}

// Error prints an error message
func (p *DeployProgress) Error(message string) {
	p.spinner.Error(message)
}

// Ensure DeployProgress implements ProgressSink
var _ usecase.ProgressSink = (*DeployProgress)(nil)
