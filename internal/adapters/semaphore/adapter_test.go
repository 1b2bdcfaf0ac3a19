package semaphore

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestAdapter_AcquireRelease(t *testing.T) {
	sem := NewAdapter(2, testLogger())

	require.NoError(t, sem.Acquire(context.Background()))
	require.NoError(t, sem.Acquire(context.Background()))
	assert.Equal(t, 2, sem.InUse())

	assert.False(t, sem.TryAcquire())

	sem.Release()
	assert.True(t, sem.TryAcquire())
}

func TestAdapter_AcquireHonorsContext(t *testing.T) {
	sem := NewAdapter(1, testLogger())
	require.NoError(t, sem.Acquire(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := sem.Acquire(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestAdapter_MinimumCapacity(t *testing.T) {
	sem := NewAdapter(0, testLogger())
	assert.Equal(t, 1, sem.Capacity())
}
