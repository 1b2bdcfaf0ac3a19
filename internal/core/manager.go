// Package core wires the pipeline adapters together behind one manager.
package core

import (
	"context"
	"log/slog"
	"sync"

	"github.com/dgraph-io/badger/v3"

	"github.com/eleven-am/forge/internal/adapters/engine"
	"github.com/eleven-am/forge/internal/adapters/events"
	"github.com/eleven-am/forge/internal/adapters/generation"
	"github.com/eleven-am/forge/internal/adapters/health"
	"github.com/eleven-am/forge/internal/adapters/memory"
	"github.com/eleven-am/forge/internal/adapters/storage"
	"github.com/eleven-am/forge/internal/adapters/validation"
	"github.com/eleven-am/forge/internal/domain"
	"github.com/eleven-am/forge/internal/ports"
)

// Manager owns the adapter graph: generator, validator, stores, event
// manager, orchestrator, health checker. Collaborators may be swapped before
// Start; after Start the graph is frozen.
type Manager struct {
	config *domain.Config
	logger *slog.Logger

	generator ports.Generator
	validator ports.Validator
	contents  ports.ContentStore
	approver  ports.Approver
	monitor   ports.Monitor
	store     ports.WorkflowStore
	events    ports.EventManager

	templates    *generation.Generator
	orchestrator *engine.Orchestrator
	checker      *health.Checker
	db           *badger.DB

	mu      sync.Mutex
	started bool
	stopped bool
}

func NewWithConfig(config *domain.Config) (*Manager, error) {
	if config == nil {
		config = domain.DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "forge")

	m := &Manager{
		config: config,
		logger: logger,
		events: events.NewManager(logger),
	}

	m.templates = generation.NewGenerator(logger)
	m.generator = m.templates
	m.validator = validation.NewEngine(config.Validation, logger)

	if config.Storage.Durable {
		dataDir := config.Storage.DataDir
		if dataDir == "" {
			dataDir = config.DataDir
		}
		db, err := storage.NewBadgerDB(dataDir, logger)
		if err != nil {
			return nil, err
		}
		m.db = db
		m.store = storage.NewWorkflowStore(db, logger)
		m.contents = storage.NewContentStore(db, logger)
	} else {
		m.store = memory.NewStore(logger)
		m.contents = memory.NewContentStore(logger)
	}

	return m, nil
}

// SetGenerator replaces the default template-backed generator, e.g. with one
// that calls an external completion service. Must be called before Start.
func (m *Manager) SetGenerator(generator ports.Generator) error {
	return m.setCollaborator(func() { m.generator = generator })
}

func (m *Manager) SetValidator(validator ports.Validator) error {
	return m.setCollaborator(func() { m.validator = validator })
}

func (m *Manager) SetContentStore(store ports.ContentStore) error {
	return m.setCollaborator(func() { m.contents = store })
}

func (m *Manager) SetApprover(approver ports.Approver) error {
	return m.setCollaborator(func() { m.approver = approver })
}

func (m *Manager) SetMonitor(monitor ports.Monitor) error {
	return m.setCollaborator(func() { m.monitor = monitor })
}

func (m *Manager) setCollaborator(assign func()) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.started {
		return domain.ErrAlreadyStarted
	}
	assign()
	return nil
}

// RegisterTemplate registers a content template with the default generator.
// Templates registered after Start are picked up by subsequent workflows.
func (m *Manager) RegisterTemplate(tmpl *domain.Template) error {
	return m.templates.RegisterTemplate(tmpl)
}

func (m *Manager) Start(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.started {
		return domain.ErrAlreadyStarted
	}
	if m.stopped {
		return domain.ErrShutdown
	}

	m.orchestrator = engine.NewOrchestrator(m.config.Engine, m.config.Batch, engine.Dependencies{
		Generator:    m.generator,
		Validator:    m.validator,
		ContentStore: m.contents,
		Approver:     m.approver,
		Monitor:      m.monitor,
		Store:        m.store,
		Events:       m.events,
	}, m.logger)
	m.checker = health.NewChecker(m.orchestrator, m.store, m.logger)
	m.started = true

	m.logger.Info("pipeline started",
		"durable_storage", m.config.Storage.Durable,
		"parallel_batches", m.config.Batch.Parallel)

	return nil
}

// Stop terminates active workflows, closes the durable store if one is open,
// and leaves the manager unusable.
func (m *Manager) Stop(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.started {
		return domain.ErrNotStarted
	}
	if m.stopped {
		return nil
	}
	m.stopped = true

	err := m.orchestrator.Shutdown(ctx)

	if m.db != nil {
		if closeErr := m.db.Close(); err == nil {
			err = closeErr
		}
	}

	m.logger.Info("pipeline stopped")
	return err
}

func (m *Manager) Process(ctx context.Context, request domain.ContentRequest) (*domain.WorkflowInstance, error) {
	orchestrator, err := m.running()
	if err != nil {
		return nil, err
	}
	return orchestrator.Process(ctx, request)
}

func (m *Manager) ProcessBatch(ctx context.Context, requests []domain.ContentRequest) (*domain.BatchResult, error) {
	orchestrator, err := m.running()
	if err != nil {
		return nil, err
	}
	return orchestrator.ProcessBatch(ctx, requests)
}

func (m *Manager) GetInstance(ctx context.Context, id string) (*domain.WorkflowInstance, error) {
	orchestrator, err := m.running()
	if err != nil {
		return nil, err
	}
	return orchestrator.GetInstance(ctx, id)
}

func (m *Manager) GetStatistics() (ports.PipelineStatistics, error) {
	orchestrator, err := m.running()
	if err != nil {
		return ports.PipelineStatistics{}, err
	}
	return orchestrator.GetStatistics(), nil
}

func (m *Manager) GetHealth(ctx context.Context) (ports.HealthStatus, error) {
	if _, err := m.running(); err != nil {
		return ports.HealthStatus{Status: "unhealthy"}, err
	}
	return m.checker.Check(ctx)
}

func (m *Manager) Metrics() (domain.PipelineMetrics, error) {
	orchestrator, err := m.running()
	if err != nil {
		return domain.PipelineMetrics{}, err
	}
	return orchestrator.Metrics(), nil
}

func (m *Manager) OnWorkflowStarted(handler func(*domain.WorkflowStartedEvent)) {
	m.events.OnWorkflowStarted(handler)
}

func (m *Manager) OnWorkflowCompleted(handler func(*domain.WorkflowCompletedEvent)) {
	m.events.OnWorkflowCompleted(handler)
}

func (m *Manager) OnWorkflowFailed(handler func(*domain.WorkflowFailedEvent)) {
	m.events.OnWorkflowFailed(handler)
}

func (m *Manager) OnStageChanged(handler func(*domain.StageChangedEvent)) {
	m.events.OnStageChanged(handler)
}

func (m *Manager) running() (*engine.Orchestrator, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.started {
		return nil, domain.ErrNotStarted
	}
	if m.stopped {
		return nil, domain.ErrShutdown
	}
	return m.orchestrator, nil
}
