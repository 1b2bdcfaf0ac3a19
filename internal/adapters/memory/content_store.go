package memory

import (
	"context"
	"log/slog"
	"sync"

	"github.com/eleven-am/forge/internal/domain"
	"github.com/google/uuid"
)

// ContentStore is an in-memory persistence collaborator for published
// artifacts, used as the default until a real backend is injected.
type ContentStore struct {
	mu       sync.RWMutex
	contents map[string]*domain.Artifact
	logger   *slog.Logger
}

func NewContentStore(logger *slog.Logger) *ContentStore {
	if logger == nil {
		logger = slog.Default()
	}

	return &ContentStore{
		contents: make(map[string]*domain.Artifact),
		logger:   logger.With("component", "content-store", "type", "memory"),
	}
}

func (s *ContentStore) Save(_ context.Context, artifact *domain.Artifact) (*domain.Artifact, error) {
	if artifact == nil {
		return nil, domain.ErrInvalidInput
	}

	saved := artifact.Clone()
	if saved.ID == "" {
		saved.ID = uuid.NewString()
	}

	s.mu.Lock()
	s.contents[saved.ID] = saved
	s.mu.Unlock()

	return saved, nil
}

func (s *ContentStore) UpdateStatus(_ context.Context, id string, status string, metadata map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	artifact, ok := s.contents[id]
	if !ok {
		return domain.ErrNotFound
	}

	if artifact.Metadata == nil {
		artifact.Metadata = make(map[string]string, len(metadata)+1)
	}
	artifact.Metadata["status"] = status
	for k, v := range metadata {
		artifact.Metadata[k] = v
	}

	return nil
}

func (s *ContentStore) Get(_ context.Context, id string) (*domain.Artifact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	artifact, ok := s.contents[id]
	if !ok {
		return nil, domain.ErrNotFound
	}

	return artifact, nil
}
