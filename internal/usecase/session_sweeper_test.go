package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func TestSessionSweeper(t *testing.T) {
	t.Run("cleans on each tick until cancelled", func(t *testing.T) {
		sessions := new(mockSessionRepository)
		sessions.On("CleanExpiredSessions", mock.Anything).Return(nil)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})

		go func() {
			StartSessionSweeper(ctx, sessions, 5*time.Millisecond, zap.NewNop())
			close(done)
		}()

		time.Sleep(50 * time.Millisecond)
		cancel()

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("sweeper did not stop after cancel")
		}

		sessions.AssertCalled(t, "CleanExpiredSessions", mock.Anything)
		calls := len(sessions.Calls)
		assert.GreaterOrEqual(t, calls, 1)

		// No further sweeps after cancellation
		time.Sleep(20 * time.Millisecond)
		assert.Equal(t, calls, len(sessions.Calls))
	})
}
