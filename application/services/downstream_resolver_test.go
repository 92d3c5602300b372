package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"threadline-backend/application/ports"
	"threadline-backend/domain/core/aggregates"
	"threadline-backend/domain/core/entities"
	"threadline-backend/tests/fixtures"
	"threadline-backend/tests/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDownstreamResolver_ConnectedSuccessorsWin(t *testing.T) {
	ctx := context.Background()
	store := new(mocks.MockGraphStore)
	focus := fixtures.NewSnippetBuilder().MustBuild()
	successor := fixtures.NewSnippetBuilder().
		WithUserID(focus.UserID()).
		CreatedAfter(30 * time.Minute).
		MustBuild()

	store.On("QueryConnected", ctx, focus.UserID(), focus.ID(), focus.CreatedAt(), ports.After, 5).
		Return([]*entities.Snippet{successor}, nil)
	store.On("CountByTimestamp", ctx, focus.UserID(), focus.ID(), focus.CreatedAt(), ports.After).
		Return(1, nil)

	resolver := NewDownstreamResolver(store, 5, zap.NewNop())
	group, err := resolver.Resolve(ctx, focus)

	require.NoError(t, err)
	assert.Equal(t, aggregates.RelationImplication, group.Relation)
	require.Len(t, group.Nodes, 1)
	assert.False(t, group.HasMore)
	store.AssertNotCalled(t, "QueryByTypeAndTimestamp")
}

func TestDownstreamResolver_FallsBackToLaterGoals(t *testing.T) {
	ctx := context.Background()
	store := new(mocks.MockGraphStore)
	focus := fixtures.NewSnippetBuilder().MustBuild()
	goal := fixtures.NewSnippetBuilder().
		WithUserID(focus.UserID()).
		WithType(entities.TypeGoal).
		CreatedAfter(time.Hour).
		MustBuild()

	store.On("QueryConnected", ctx, focus.UserID(), focus.ID(), focus.CreatedAt(), ports.After, 5).
		Return([]*entities.Snippet{}, nil)
	store.On("QueryByTypeAndTimestamp", ctx, focus.UserID(), focus.ID(), entities.TypeGoal, focus.CreatedAt(), 5).
		Return([]*entities.Snippet{goal}, nil)
	// Seven newer snippets exist even though only one is a goal
	store.On("CountByTimestamp", ctx, focus.UserID(), focus.ID(), focus.CreatedAt(), ports.After).
		Return(7, nil)

	resolver := NewDownstreamResolver(store, 5, zap.NewNop())
	group, err := resolver.Resolve(ctx, focus)

	require.NoError(t, err)
	assert.Equal(t, aggregates.RelationNextStep, group.Relation)
	require.Len(t, group.Nodes, 1)
	assert.True(t, group.HasMore)
}

func TestDownstreamResolver_EmptyFallbackIsStillNextStep(t *testing.T) {
	ctx := context.Background()
	store := new(mocks.MockGraphStore)
	focus := fixtures.NewSnippetBuilder().MustBuild()

	store.On("QueryConnected", ctx, focus.UserID(), focus.ID(), focus.CreatedAt(), ports.After, 5).
		Return([]*entities.Snippet{}, nil)
	store.On("QueryByTypeAndTimestamp", ctx, focus.UserID(), focus.ID(), entities.TypeGoal, focus.CreatedAt(), 5).
		Return([]*entities.Snippet{}, nil)
	store.On("CountByTimestamp", ctx, focus.UserID(), focus.ID(), focus.CreatedAt(), ports.After).
		Return(0, nil)

	resolver := NewDownstreamResolver(store, 5, zap.NewNop())
	group, err := resolver.Resolve(ctx, focus)

	require.NoError(t, err)
	assert.Equal(t, aggregates.RelationNextStep, group.Relation)
	assert.Empty(t, group.Nodes)
	assert.False(t, group.HasMore)
}

func TestDownstreamResolver_CountErrorPropagates(t *testing.T) {
	ctx := context.Background()
	store := new(mocks.MockGraphStore)
	focus := fixtures.NewSnippetBuilder().MustBuild()

	store.On("QueryConnected", ctx, focus.UserID(), focus.ID(), focus.CreatedAt(), ports.After, 5).
		Return([]*entities.Snippet{fixtures.NewSnippetBuilder().CreatedAfter(time.Minute).MustBuild()}, nil)
	store.On("CountByTimestamp", ctx, focus.UserID(), focus.ID(), focus.CreatedAt(), ports.After).
		Return(0, errors.New("count unavailable"))

	resolver := NewDownstreamResolver(store, 5, zap.NewNop())
	_, err := resolver.Resolve(ctx, focus)

	require.Error(t, err)
}
