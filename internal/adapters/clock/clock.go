package clock

import (
	"context"
	"time"

	"github.com/credence0x/ctf-deploy/internal/usecase"
)

// SystemClock reads the wall clock
type SystemClock struct{}

// NewSystemClock creates a new system clock
func NewSystemClock() *SystemClock {
	return &SystemClock{}
}

// Now returns the current time
func (SystemClock) Now() time.Time {
	return time.Now()
}

// Sleep blocks for d or until ctx is done
func (SystemClock) Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

var _ usecase.Clock = (*SystemClock)(nil)
