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

func TestUpstreamResolver_ConnectedPrecedentWins(t *testing.T) {
	ctx := context.Background()
	store := new(mocks.MockGraphStore)
	focus := fixtures.NewSnippetBuilder().WithContent("refactor the parser").MustBuild()
	precedent := fixtures.NewSnippetBuilder().
		WithContent("parser is getting unwieldy").
		CreatedBefore(2 * time.Hour).
		MustBuild()

	store.On("QueryConnected", ctx, focus.UserID(), focus.ID(), focus.CreatedAt(), ports.Before, 5).
		Return([]*entities.Snippet{precedent}, nil)
	store.On("CountByTimestamp", ctx, focus.UserID(), focus.ID(), focus.CreatedAt(), ports.Before).
		Return(1, nil)

	resolver := NewUpstreamResolver(store, 5, zap.NewNop())
	group, err := resolver.Resolve(ctx, focus)

	require.NoError(t, err)
	assert.Equal(t, aggregates.RelationCausal, group.Relation)
	require.Len(t, group.Nodes, 1)
	assert.True(t, group.Nodes[0].ID().Equals(precedent.ID()))
	assert.False(t, group.HasMore)
	store.AssertNotCalled(t, "QueryByTimestamp")
	store.AssertExpectations(t)
}

func TestUpstreamResolver_TemporalFallbackWhenUnconnected(t *testing.T) {
	ctx := context.Background()
	store := new(mocks.MockGraphStore)
	focus := fixtures.NewSnippetBuilder().MustBuild()

	older := make([]*entities.Snippet, 5)
	for i := range older {
		older[i] = fixtures.NewSnippetBuilder().
			WithUserID(focus.UserID()).
			CreatedBefore(time.Duration(i+1) * time.Hour).
			MustBuild()
	}

	store.On("QueryConnected", ctx, focus.UserID(), focus.ID(), focus.CreatedAt(), ports.Before, 5).
		Return([]*entities.Snippet{}, nil)
	store.On("QueryByTimestamp", ctx, focus.UserID(), focus.ID(), focus.CreatedAt(), ports.Before, 5).
		Return(older, nil)
	store.On("CountByTimestamp", ctx, focus.UserID(), focus.ID(), focus.CreatedAt(), ports.Before).
		Return(10, nil)

	resolver := NewUpstreamResolver(store, 5, zap.NewNop())
	group, err := resolver.Resolve(ctx, focus)

	require.NoError(t, err)
	assert.Equal(t, aggregates.RelationTemporal, group.Relation)
	assert.Len(t, group.Nodes, 5)
	assert.True(t, group.HasMore)
	store.AssertExpectations(t)
}

func TestUpstreamResolver_SanitizesStoreOutput(t *testing.T) {
	ctx := context.Background()
	store := new(mocks.MockGraphStore)
	focus := fixtures.NewSnippetBuilder().MustBuild()
	peer := fixtures.NewSnippetBuilder().CreatedBefore(time.Hour).MustBuild()

	// Store misbehavior: echoes the focus and duplicates a peer
	store.On("QueryConnected", ctx, focus.UserID(), focus.ID(), focus.CreatedAt(), ports.Before, 3).
		Return([]*entities.Snippet{focus, peer, peer}, nil)
	store.On("CountByTimestamp", ctx, focus.UserID(), focus.ID(), focus.CreatedAt(), ports.Before).
		Return(2, nil)

	resolver := NewUpstreamResolver(store, 3, zap.NewNop())
	group, err := resolver.Resolve(ctx, focus)

	require.NoError(t, err)
	require.Len(t, group.Nodes, 1)
	assert.True(t, group.Nodes[0].ID().Equals(peer.ID()))
}

func TestUpstreamResolver_PrimaryErrorPropagates(t *testing.T) {
	ctx := context.Background()
	store := new(mocks.MockGraphStore)
	focus := fixtures.NewSnippetBuilder().MustBuild()

	store.On("QueryConnected", ctx, focus.UserID(), focus.ID(), focus.CreatedAt(), ports.Before, 5).
		Return(nil, errors.New("throttled"))

	resolver := NewUpstreamResolver(store, 5, zap.NewNop())
	group, err := resolver.Resolve(ctx, focus)

	require.Error(t, err)
	assert.Empty(t, group.Nodes)
	store.AssertNotCalled(t, "CountByTimestamp")
}
