package storage

import (
	"context"
	"errors"
	"log/slog"

	"github.com/dgraph-io/badger/v3"
	json "github.com/goccy/go-json"

	"github.com/eleven-am/forge/internal/domain"
	"github.com/eleven-am/forge/internal/ports"
)

// WorkflowStore persists workflow instances under status-prefixed keys so a
// Finalize is a delete plus a put inside one transaction and List is a prefix
// scan.
type WorkflowStore struct {
	db     *badger.DB
	logger *slog.Logger
}

func NewWorkflowStore(db *badger.DB, logger *slog.Logger) *WorkflowStore {
	if logger == nil {
		logger = slog.Default()
	}

	return &WorkflowStore{
		db:     db,
		logger: logger.With("component", "workflow-store", "type", "badger"),
	}
}

func (s *WorkflowStore) Create(_ context.Context, instance *domain.WorkflowInstance) error {
	if instance == nil || instance.ID == "" {
		return domain.ErrInvalidInput
	}

	value, err := json.Marshal(instance)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		for _, status := range allStatuses {
			if _, err := txn.Get([]byte(domain.WorkflowKey(status, instance.ID))); err == nil {
				return domain.ErrAlreadyExists
			} else if !errors.Is(err, badger.ErrKeyNotFound) {
				return err
			}
		}
		return txn.Set([]byte(domain.WorkflowKey(domain.WorkflowStatusActive, instance.ID)), value)
	})
}

func (s *WorkflowStore) Update(_ context.Context, instance *domain.WorkflowInstance) error {
	if instance == nil || instance.ID == "" {
		return domain.ErrInvalidInput
	}

	value, err := json.Marshal(instance)
	if err != nil {
		return err
	}

	key := []byte(domain.WorkflowKey(domain.WorkflowStatusActive, instance.ID))
	return s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(key); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return domain.ErrNotFound
			}
			return err
		}
		return txn.Set(key, value)
	})
}

func (s *WorkflowStore) Finalize(_ context.Context, instance *domain.WorkflowInstance) error {
	if instance == nil || instance.ID == "" {
		return domain.ErrInvalidInput
	}
	if !instance.Status.Terminal() {
		return domain.ErrInvalidInput
	}

	value, err := json.Marshal(instance)
	if err != nil {
		return err
	}

	activeKey := []byte(domain.WorkflowKey(domain.WorkflowStatusActive, instance.ID))
	terminalKey := []byte(domain.WorkflowKey(instance.Status, instance.ID))

	return s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(activeKey); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return domain.ErrNotFound
			}
			return err
		}
		if err := txn.Delete(activeKey); err != nil {
			return err
		}
		return txn.Set(terminalKey, value)
	})
}

func (s *WorkflowStore) Get(_ context.Context, id string) (*domain.WorkflowInstance, error) {
	var instance *domain.WorkflowInstance

	err := s.db.View(func(txn *badger.Txn) error {
		for _, status := range allStatuses {
			item, err := txn.Get([]byte(domain.WorkflowKey(status, id)))
			if errors.Is(err, badger.ErrKeyNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			return item.Value(func(value []byte) error {
				instance = &domain.WorkflowInstance{}
				return json.Unmarshal(value, instance)
			})
		}
		return domain.ErrNotFound
	})
	if err != nil {
		return nil, err
	}

	return instance, nil
}

func (s *WorkflowStore) List(_ context.Context, status domain.WorkflowStatus) ([]*domain.WorkflowInstance, error) {
	if !validStatus(status) {
		return nil, domain.ErrInvalidInput
	}

	var instances []*domain.WorkflowInstance
	prefix := []byte(domain.WorkflowPrefix(status))

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(value []byte) error {
				instance := &domain.WorkflowInstance{}
				if err := json.Unmarshal(value, instance); err != nil {
					return err
				}
				instances = append(instances, instance)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return instances, nil
}

func (s *WorkflowStore) Counts(_ context.Context) (ports.StoreCounts, error) {
	counts := ports.StoreCounts{}

	err := s.db.View(func(txn *badger.Txn) error {
		for _, status := range allStatuses {
			prefix := []byte(domain.WorkflowPrefix(status))
			opts := badger.DefaultIteratorOptions
			opts.Prefix = prefix
			opts.PrefetchValues = false
			it := txn.NewIterator(opts)

			n := 0
			for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
				n++
			}
			it.Close()

			switch status {
			case domain.WorkflowStatusActive:
				counts.Active = n
			case domain.WorkflowStatusCompleted:
				counts.Completed = n
			case domain.WorkflowStatusFailed:
				counts.Failed = n
			case domain.WorkflowStatusTerminated:
				counts.Terminated = n
			}
		}
		return nil
	})
	if err != nil {
		return ports.StoreCounts{}, err
	}

	return counts, nil
}

var allStatuses = []domain.WorkflowStatus{
	domain.WorkflowStatusActive,
	domain.WorkflowStatusCompleted,
	domain.WorkflowStatusFailed,
	domain.WorkflowStatusTerminated,
}

func validStatus(status domain.WorkflowStatus) bool {
	for _, s := range allStatuses {
		if s == status {
			return true
		}
	}
	return false
}
