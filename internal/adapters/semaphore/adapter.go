package semaphore

import (
	"context"
	"log/slog"
)

// Adapter is an in-process counting semaphore used to bound parallel batch
// groups. Tokens are held for the duration of one workflow instance.
type Adapter struct {
	tokens chan struct{}
	logger *slog.Logger
}

func NewAdapter(size int, logger *slog.Logger) *Adapter {
	if size < 1 {
		size = 1
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Adapter{
		tokens: make(chan struct{}, size),
		logger: logger.With("component", "semaphore"),
	}
}

func (a *Adapter) Acquire(ctx context.Context) error {
	select {
	case a.tokens <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (a *Adapter) TryAcquire() bool {
	select {
	case a.tokens <- struct{}{}:
		return true
	default:
		return false
	}
}

func (a *Adapter) Release() {
	select {
	case <-a.tokens:
	default:
		a.logger.Warn("release without matching acquire")
	}
}

func (a *Adapter) InUse() int {
	return len(a.tokens)
}

func (a *Adapter) Capacity() int {
	return cap(a.tokens)
}
