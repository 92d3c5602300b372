// Package mocks provides testify mocks for the application ports.
package mocks

import (
	"context"
	"time"

	"threadline-backend/application/ports"
	"threadline-backend/domain/core/entities"
	"threadline-backend/domain/core/valueobjects"
	"threadline-backend/domain/events"

	"github.com/stretchr/testify/mock"
)

// MockGraphStore is a mock implementation of ports.GraphStore
type MockGraphStore struct {
	mock.Mock
}

func (m *MockGraphStore) QueryConnected(ctx context.Context, userID string, focusID valueobjects.SnippetID, pivot time.Time, dir ports.TemporalDirection, limit int) ([]*entities.Snippet, error) {
	args := m.Called(ctx, userID, focusID, pivot, dir, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Snippet), args.Error(1)
}

func (m *MockGraphStore) QueryByTimestamp(ctx context.Context, userID string, excludeID valueobjects.SnippetID, pivot time.Time, dir ports.TemporalDirection, limit int) ([]*entities.Snippet, error) {
	args := m.Called(ctx, userID, excludeID, pivot, dir, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Snippet), args.Error(1)
}

func (m *MockGraphStore) QueryByTypeAndTimestamp(ctx context.Context, userID string, excludeID valueobjects.SnippetID, snippetType entities.SnippetType, after time.Time, limit int) ([]*entities.Snippet, error) {
	args := m.Called(ctx, userID, excludeID, snippetType, after, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Snippet), args.Error(1)
}

func (m *MockGraphStore) QueryByClusterLabel(ctx context.Context, userID string, excludeID valueobjects.SnippetID, label string, limit int) ([]*entities.Snippet, error) {
	args := m.Called(ctx, userID, excludeID, label, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Snippet), args.Error(1)
}

func (m *MockGraphStore) QueryByType(ctx context.Context, userID string, excludeID valueobjects.SnippetID, snippetType entities.SnippetType, limit int) ([]*entities.Snippet, error) {
	args := m.Called(ctx, userID, excludeID, snippetType, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Snippet), args.Error(1)
}

func (m *MockGraphStore) CountConnected(ctx context.Context, userID string, focusID valueobjects.SnippetID, pivot time.Time, dir ports.TemporalDirection) (int, error) {
	args := m.Called(ctx, userID, focusID, pivot, dir)
	return args.Int(0), args.Error(1)
}

func (m *MockGraphStore) CountByTimestamp(ctx context.Context, userID string, excludeID valueobjects.SnippetID, pivot time.Time, dir ports.TemporalDirection) (int, error) {
	args := m.Called(ctx, userID, excludeID, pivot, dir)
	return args.Int(0), args.Error(1)
}

func (m *MockGraphStore) CountSimilar(ctx context.Context, userID string, excludeID valueobjects.SnippetID, label string, snippetType entities.SnippetType) (int, error) {
	args := m.Called(ctx, userID, excludeID, label, snippetType)
	return args.Int(0), args.Error(1)
}

// MockSnippetRepository is a mock implementation of ports.SnippetRepository
type MockSnippetRepository struct {
	mock.Mock
}

func (m *MockSnippetRepository) Save(ctx context.Context, snippet *entities.Snippet) error {
	args := m.Called(ctx, snippet)
	return args.Error(0)
}

func (m *MockSnippetRepository) GetByID(ctx context.Context, userID string, id valueobjects.SnippetID) (*entities.Snippet, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Snippet), args.Error(1)
}

func (m *MockSnippetRepository) GetByUserID(ctx context.Context, userID string, limit int) ([]*entities.Snippet, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Snippet), args.Error(1)
}

func (m *MockSnippetRepository) Delete(ctx context.Context, userID string, id valueobjects.SnippetID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

// MockEdgeRepository is a mock implementation of ports.EdgeRepository
type MockEdgeRepository struct {
	mock.Mock
}

func (m *MockEdgeRepository) Save(ctx context.Context, userID string, edge *entities.Edge) error {
	args := m.Called(ctx, userID, edge)
	return args.Error(0)
}

func (m *MockEdgeRepository) GetBySnippetID(ctx context.Context, userID string, id valueobjects.SnippetID) ([]*entities.Edge, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Edge), args.Error(1)
}

func (m *MockEdgeRepository) Delete(ctx context.Context, userID string, sourceID, targetID valueobjects.SnippetID) error {
	args := m.Called(ctx, userID, sourceID, targetID)
	return args.Error(0)
}

func (m *MockEdgeRepository) DeleteBySnippetID(ctx context.Context, userID string, id valueobjects.SnippetID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

// MockEventPublisher is a mock implementation of ports.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, event events.DomainEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventPublisher) PublishBatch(ctx context.Context, domainEvents []events.DomainEvent) error {
	args := m.Called(ctx, domainEvents)
	return args.Error(0)
}
