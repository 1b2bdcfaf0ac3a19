package memory

import (
	"context"
	"log/slog"
	"sync"

	"github.com/eleven-am/forge/internal/domain"
	"github.com/eleven-am/forge/internal/ports"
)

// Store keeps workflow instances in status-keyed in-memory collections. It is
// the default WorkflowStore and the one deterministic tests use.
type Store struct {
	mu        sync.RWMutex
	active    map[string]*domain.WorkflowInstance
	completed map[string]*domain.WorkflowInstance
	failed    map[string]*domain.WorkflowInstance
	logger    *slog.Logger
}

func NewStore(logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}

	return &Store{
		active:    make(map[string]*domain.WorkflowInstance),
		completed: make(map[string]*domain.WorkflowInstance),
		failed:    make(map[string]*domain.WorkflowInstance),
		logger:    logger.With("component", "workflow-store", "type", "memory"),
	}
}

func (s *Store) Create(_ context.Context, instance *domain.WorkflowInstance) error {
	if instance == nil || instance.ID == "" {
		return domain.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.exists(instance.ID) {
		return domain.ErrAlreadyExists
	}

	s.active[instance.ID] = instance
	return nil
}

func (s *Store) Update(_ context.Context, instance *domain.WorkflowInstance) error {
	if instance == nil || instance.ID == "" {
		return domain.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.active[instance.ID]; !ok {
		return domain.ErrNotFound
	}

	s.active[instance.ID] = instance
	return nil
}

func (s *Store) Finalize(_ context.Context, instance *domain.WorkflowInstance) error {
	if instance == nil || instance.ID == "" {
		return domain.ErrInvalidInput
	}
	if !instance.Status.Terminal() {
		return domain.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.active[instance.ID]; !ok {
		return domain.ErrNotFound
	}

	delete(s.active, instance.ID)
	if instance.Status == domain.WorkflowStatusCompleted {
		s.completed[instance.ID] = instance
	} else {
		s.failed[instance.ID] = instance
	}

	return nil
}

func (s *Store) Get(_ context.Context, id string) (*domain.WorkflowInstance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, collection := range []map[string]*domain.WorkflowInstance{s.active, s.completed, s.failed} {
		if instance, ok := collection[id]; ok {
			return instance, nil
		}
	}

	return nil, domain.ErrNotFound
}

func (s *Store) List(_ context.Context, status domain.WorkflowStatus) ([]*domain.WorkflowInstance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var instances []*domain.WorkflowInstance
	switch status {
	case domain.WorkflowStatusActive:
		for _, instance := range s.active {
			instances = append(instances, instance)
		}
	case domain.WorkflowStatusCompleted:
		for _, instance := range s.completed {
			instances = append(instances, instance)
		}
	case domain.WorkflowStatusFailed, domain.WorkflowStatusTerminated:
		for _, instance := range s.failed {
			if instance.Status == status {
				instances = append(instances, instance)
			}
		}
	default:
		return nil, domain.ErrInvalidInput
	}

	return instances, nil
}

func (s *Store) Counts(_ context.Context) (ports.StoreCounts, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := ports.StoreCounts{
		Active:    len(s.active),
		Completed: len(s.completed),
	}
	for _, instance := range s.failed {
		if instance.Status == domain.WorkflowStatusTerminated {
			counts.Terminated++
		} else {
			counts.Failed++
		}
	}

	return counts, nil
}

func (s *Store) exists(id string) bool {
	for _, collection := range []map[string]*domain.WorkflowInstance{s.active, s.completed, s.failed} {
		if _, ok := collection[id]; ok {
			return true
		}
	}
	return false
}
