package storage

import (
	"context"
	"errors"
	"log/slog"

	"github.com/dgraph-io/badger/v3"
	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/eleven-am/forge/internal/domain"
)

// ContentStore persists published artifacts in badger.
type ContentStore struct {
	db     *badger.DB
	logger *slog.Logger
}

func NewContentStore(db *badger.DB, logger *slog.Logger) *ContentStore {
	if logger == nil {
		logger = slog.Default()
	}

	return &ContentStore{
		db:     db,
		logger: logger.With("component", "content-store", "type", "badger"),
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

	value, err := json.Marshal(saved)
	if err != nil {
		return nil, err
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(domain.ContentKey(saved.ID)), value)
	})
	if err != nil {
		return nil, err
	}

	return saved, nil
}

func (s *ContentStore) UpdateStatus(_ context.Context, id string, status string, metadata map[string]string) error {
	key := []byte(domain.ContentKey(id))

	return s.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return domain.ErrNotFound
			}
			return err
		}

		artifact := &domain.Artifact{}
		err = item.Value(func(value []byte) error {
			return json.Unmarshal(value, artifact)
		})
		if err != nil {
			return err
		}

		if artifact.Metadata == nil {
			artifact.Metadata = make(map[string]string, len(metadata)+1)
		}
		artifact.Metadata["status"] = status
		for k, v := range metadata {
			artifact.Metadata[k] = v
		}

		value, err := json.Marshal(artifact)
		if err != nil {
			return err
		}
		return txn.Set(key, value)
	})
}

func (s *ContentStore) Get(_ context.Context, id string) (*domain.Artifact, error) {
	var artifact *domain.Artifact

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(domain.ContentKey(id)))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return domain.ErrNotFound
			}
			return err
		}
		return item.Value(func(value []byte) error {
			artifact = &domain.Artifact{}
			return json.Unmarshal(value, artifact)
		})
	})
	if err != nil {
		return nil, err
	}

	return artifact, nil
}
