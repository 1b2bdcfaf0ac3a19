// Package storage provides badger-backed durable implementations of the
// workflow and content stores.
package storage

import (
	"log/slog"

	"github.com/dgraph-io/badger/v3"
)

// NewBadgerDB opens the badger database backing the durable stores. An empty
// dataDir opens an in-memory database, which is what tests use.
func NewBadgerDB(dataDir string, logger *slog.Logger) (*badger.DB, error) {
	if logger == nil {
		logger = slog.Default()
	}

	opts := badger.DefaultOptions(dataDir).WithLogger(nil)
	if dataDir == "" {
		opts = opts.WithInMemory(true)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	logger.Info("badger database opened", "data_dir", dataDir, "in_memory", dataDir == "")
	return db, nil
}
