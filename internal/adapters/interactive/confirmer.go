package interactive

import (
	"context"
	"errors"
	"fmt"

	"github.com/credence0x/ctf-deploy/internal/domain/config"
	"github.com/credence0x/ctf-deploy/internal/usecase"
	"github.com/manifoldco/promptui"
)

// ConfirmerAdapter asks yes/no questions on the terminal
type ConfirmerAdapter struct {
	config *config.RuntimeConfig
	run    func(prompt *promptui.Prompt) (string, error)
}

// NewConfirmerAdapter creates a new confirmer adapter
func NewConfirmerAdapter(cfg *config.RuntimeConfig) *ConfirmerAdapter {
	return &ConfirmerAdapter{
		config: cfg,
		run: func(prompt *promptui.Prompt) (string, error) {
			return prompt.Run()
		},
	}
}

// Confirm returns true when the user answers yes. Answering no, or pressing
// enter on the default, returns false.
func (c *ConfirmerAdapter) Confirm(ctx context.Context, label string) (bool, error) {
	if c.config.NonInteractive {
		return false, fmt.Errorf("cannot ask %q in non-interactive mode", label)
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}

	prompt := &promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}

	_, err := c.run(prompt)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, promptui.ErrAbort):
		return false, nil
	case errors.Is(err, promptui.ErrInterrupt):
		return false, fmt.Errorf("prompt interrupted: %w", err)
	default:
		return false, fmt.Errorf("prompt failed: %w", err)
	}
}

// Ensure ConfirmerAdapter implements Confirmer
var _ usecase.Confirmer = (*ConfirmerAdapter)(nil)
