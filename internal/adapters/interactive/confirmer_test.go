package interactive

import (
	"context"
	"errors"
	"testing"

	"github.com/credence0x/ctf-deploy/internal/domain/config"
	"github.com/manifoldco/promptui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConfirmer(nonInteractive bool, answer error) (*ConfirmerAdapter, *[]string) {
	var labels []string
	c := NewConfirmerAdapter(&config.RuntimeConfig{NonInteractive: nonInteractive})
	c.run = func(prompt *promptui.Prompt) (string, error) {
		labels = append(labels, prompt.Label.(string))
		return "", answer
	}
	return c, &labels
}

func TestConfirm(t *testing.T) {
	ctx := context.Background()

	t.Run("yes", func(t *testing.T) {
		c, labels := newTestConfirmer(false, nil)
		ok, err := c.Confirm(ctx, "Deploy to mainnet")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, []string{"Deploy to mainnet"}, *labels)
	})

	t.Run("no", func(t *testing.T) {
		c, _ := newTestConfirmer(false, promptui.ErrAbort)
		ok, err := c.Confirm(ctx, "Deploy to mainnet")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("interrupted", func(t *testing.T) {
		c, _ := newTestConfirmer(false, promptui.ErrInterrupt)
		_, err := c.Confirm(ctx, "Deploy to mainnet")
		assert.ErrorIs(t, err, promptui.ErrInterrupt)
	})

	t.Run("other failure", func(t *testing.T) {
		c, _ := newTestConfirmer(false, errors.New("no tty"))
		_, err := c.Confirm(ctx, "Deploy to mainnet")
		assert.ErrorContains(t, err, "no tty")
	})

	t.Run("non-interactive never prompts", func(t *testing.T) {
		c, labels := newTestConfirmer(true, nil)
		_, err := c.Confirm(ctx, "Deploy to mainnet")
		assert.Error(t, err)
		assert.Empty(t, *labels)
	})
}
