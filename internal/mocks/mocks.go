// Package mocks provides testify-backed doubles for the pipeline's
// collaborator ports.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/eleven-am/forge/internal/domain"
)

type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Generate(ctx context.Context, request domain.ContentRequest) (*domain.GenerationResult, error) {
	args := m.Called(ctx, request)
	if result := args.Get(0); result != nil {
		return result.(*domain.GenerationResult), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockValidator struct {
	mock.Mock
}

func (m *MockValidator) Validate(ctx context.Context, artifact *domain.Artifact, opts domain.ValidationOptions) (*domain.ValidationResult, error) {
	args := m.Called(ctx, artifact, opts)
	if result := args.Get(0); result != nil {
		return result.(*domain.ValidationResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockValidator) ApplyFixes(ctx context.Context, artifact *domain.Artifact, fixable []domain.FixableIssue) (*domain.Artifact, []domain.AppliedFix, error) {
	args := m.Called(ctx, artifact, fixable)
	var fixed *domain.Artifact
	if result := args.Get(0); result != nil {
		fixed = result.(*domain.Artifact)
	}
	var applied []domain.AppliedFix
	if result := args.Get(1); result != nil {
		applied = result.([]domain.AppliedFix)
	}
	return fixed, applied, args.Error(2)
}

func (m *MockValidator) RuleOrder() []string {
	args := m.Called()
	if order := args.Get(0); order != nil {
		return order.([]string)
	}
	return nil
}

type MockContentStore struct {
	mock.Mock
}

func (m *MockContentStore) Save(ctx context.Context, artifact *domain.Artifact) (*domain.Artifact, error) {
	args := m.Called(ctx, artifact)
	if result := args.Get(0); result != nil {
		return result.(*domain.Artifact), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockContentStore) UpdateStatus(ctx context.Context, id string, status string, metadata map[string]string) error {
	args := m.Called(ctx, id, status, metadata)
	return args.Error(0)
}

type MockApprover struct {
	mock.Mock
}

func (m *MockApprover) Decide(ctx context.Context, instance *domain.WorkflowInstance) (*domain.ApprovalDecision, error) {
	args := m.Called(ctx, instance)
	if result := args.Get(0); result != nil {
		return result.(*domain.ApprovalDecision), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockMonitor struct {
	mock.Mock
}

func (m *MockMonitor) Observe(ctx context.Context, instance *domain.WorkflowInstance) error {
	args := m.Called(ctx, instance)
	return args.Error(0)
}
