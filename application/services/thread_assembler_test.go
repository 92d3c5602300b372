package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"threadline-backend/application/ports"
	domainconfig "threadline-backend/domain/config"
	"threadline-backend/domain/core/aggregates"
	"threadline-backend/domain/core/entities"
	pkgerrors "threadline-backend/pkg/errors"
	"threadline-backend/tests/fixtures"
	"threadline-backend/tests/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAssembler(store ports.GraphStore) *ThreadAssembler {
	return NewThreadAssembler(store, domainconfig.DefaultMotionBudget(), nil, zap.NewNop())
}

func TestThreadAssembler_BuildMergesAllAxes(t *testing.T) {
	ctx := context.Background()
	store := new(mocks.MockGraphStore)
	focus := fixtures.NewSnippetBuilder().WithClusterLabel("productivity").MustBuild()

	precedent := fixtures.NewSnippetBuilder().WithUserID(focus.UserID()).CreatedBefore(time.Hour).MustBuild()
	successor := fixtures.NewSnippetBuilder().WithUserID(focus.UserID()).CreatedAfter(time.Hour).MustBuild()
	sharer := fixtures.NewSnippetBuilder().WithUserID(focus.UserID()).WithClusterLabel("productivity").MustBuild()

	store.On("QueryConnected", mock.Anything, focus.UserID(), focus.ID(), focus.CreatedAt(), ports.Before, 5).
		Return([]*entities.Snippet{precedent}, nil)
	store.On("QueryConnected", mock.Anything, focus.UserID(), focus.ID(), focus.CreatedAt(), ports.After, 5).
		Return([]*entities.Snippet{successor}, nil)
	store.On("QueryByClusterLabel", mock.Anything, focus.UserID(), focus.ID(), "productivity", 5).
		Return([]*entities.Snippet{sharer}, nil)
	store.On("CountByTimestamp", mock.Anything, focus.UserID(), focus.ID(), focus.CreatedAt(), ports.Before).
		Return(1, nil)
	store.On("CountByTimestamp", mock.Anything, focus.UserID(), focus.ID(), focus.CreatedAt(), ports.After).
		Return(1, nil)
	store.On("CountSimilar", mock.Anything, focus.UserID(), focus.ID(), "productivity", focus.Type()).
		Return(1, nil)

	built, err := newAssembler(store).Build(ctx, focus)

	require.NoError(t, err)
	require.NotNil(t, built)
	assert.True(t, built.Focus().ID().Equals(focus.ID()))
	assert.Equal(t, aggregates.RelationCausal, built.Upstream().Relation)
	assert.Equal(t, aggregates.RelationImplication, built.Downstream().Relation)
	assert.Equal(t, aggregates.SimilaritySharedCluster, built.Lateral().Similarity)
	assert.False(t, built.PartialFailure())
	assert.False(t, built.BuiltAt().IsZero())
	store.AssertExpectations(t)
}

func TestThreadAssembler_TemporalFallbackWithTruncation(t *testing.T) {
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

	store.On("QueryConnected", mock.Anything, focus.UserID(), focus.ID(), focus.CreatedAt(), ports.Before, 5).
		Return([]*entities.Snippet{}, nil)
	store.On("QueryByTimestamp", mock.Anything, focus.UserID(), focus.ID(), focus.CreatedAt(), ports.Before, 5).
		Return(older, nil)
	store.On("CountByTimestamp", mock.Anything, focus.UserID(), focus.ID(), focus.CreatedAt(), ports.Before).
		Return(10, nil)

	store.On("QueryConnected", mock.Anything, focus.UserID(), focus.ID(), focus.CreatedAt(), ports.After, 5).
		Return([]*entities.Snippet{}, nil)
	store.On("QueryByTypeAndTimestamp", mock.Anything, focus.UserID(), focus.ID(), entities.TypeGoal, focus.CreatedAt(), 5).
		Return([]*entities.Snippet{}, nil)
	store.On("CountByTimestamp", mock.Anything, focus.UserID(), focus.ID(), focus.CreatedAt(), ports.After).
		Return(0, nil)

	store.On("QueryByType", mock.Anything, focus.UserID(), focus.ID(), focus.Type(), 5).
		Return([]*entities.Snippet{}, nil)
	store.On("CountSimilar", mock.Anything, focus.UserID(), focus.ID(), "", focus.Type()).
		Return(0, nil)

	built, err := newAssembler(store).Build(ctx, focus)

	require.NoError(t, err)
	assert.Equal(t, aggregates.RelationTemporal, built.Upstream().Relation)
	assert.Len(t, built.Upstream().Nodes, 5)
	assert.True(t, built.Upstream().HasMore)
	assert.Equal(t, aggregates.RelationNextStep, built.Downstream().Relation)
	assert.Empty(t, built.Downstream().Nodes)
	assert.False(t, built.Downstream().HasMore)
	assert.Zero(t, built.Lateral().Similarity)
}

func TestThreadAssembler_PartialFailureKeepsHealthyAxes(t *testing.T) {
	ctx := context.Background()
	store := new(mocks.MockGraphStore)
	focus := fixtures.NewSnippetBuilder().MustBuild()
	successor := fixtures.NewSnippetBuilder().WithUserID(focus.UserID()).CreatedAfter(time.Hour).MustBuild()

	store.On("QueryConnected", mock.Anything, focus.UserID(), focus.ID(), focus.CreatedAt(), ports.Before, 5).
		Return(nil, errors.New("partition unavailable"))

	store.On("QueryConnected", mock.Anything, focus.UserID(), focus.ID(), focus.CreatedAt(), ports.After, 5).
		Return([]*entities.Snippet{successor}, nil)
	store.On("CountByTimestamp", mock.Anything, focus.UserID(), focus.ID(), focus.CreatedAt(), ports.After).
		Return(1, nil)

	store.On("QueryByType", mock.Anything, focus.UserID(), focus.ID(), focus.Type(), 5).
		Return([]*entities.Snippet{}, nil)
	store.On("CountSimilar", mock.Anything, focus.UserID(), focus.ID(), "", focus.Type()).
		Return(0, nil)

	built, err := newAssembler(store).Build(ctx, focus)

	require.NoError(t, err)
	assert.True(t, built.PartialFailure())
	assert.Error(t, built.Upstream().Err)
	assert.Empty(t, built.Upstream().Nodes)
	assert.NoError(t, built.Downstream().Err)
	assert.Len(t, built.Downstream().Nodes, 1)
	assert.NoError(t, built.Lateral().Err)
}

func TestThreadAssembler_AllAxesFailed(t *testing.T) {
	ctx := context.Background()
	store := new(mocks.MockGraphStore)
	focus := fixtures.NewSnippetBuilder().MustBuild()
	storeErr := errors.New("store offline")

	store.On("QueryConnected", mock.Anything, focus.UserID(), focus.ID(), focus.CreatedAt(), ports.Before, 5).
		Return(nil, storeErr)
	store.On("QueryConnected", mock.Anything, focus.UserID(), focus.ID(), focus.CreatedAt(), ports.After, 5).
		Return(nil, storeErr)
	store.On("QueryByType", mock.Anything, focus.UserID(), focus.ID(), focus.Type(), 5).
		Return(nil, storeErr)

	built, err := newAssembler(store).Build(ctx, focus)

	require.Error(t, err)
	assert.Nil(t, built)

	var appErr *pkgerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, pkgerrors.ErrorTypeQueryFailed, appErr.Type)
}

func TestThreadAssembler_CancelledContext(t *testing.T) {
	store := new(mocks.MockGraphStore)
	focus := fixtures.NewSnippetBuilder().MustBuild()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	built, err := newAssembler(store).Build(ctx, focus)

	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, built)
	store.AssertNotCalled(t, "QueryConnected")
}

func TestThreadAssembler_NilFocus(t *testing.T) {
	store := new(mocks.MockGraphStore)

	built, err := newAssembler(store).Build(context.Background(), nil)

	require.Error(t, err)
	assert.Nil(t, built)

	var appErr *pkgerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, pkgerrors.ErrorTypeValidation, appErr.Type)
}
