package handlers

import (
	"context"
	"errors"
	"testing"

	"threadline-backend/application/commands"
	"threadline-backend/domain/core/entities"
	"threadline-backend/tests/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCreateSnippetHandler_SavesAndPublishes(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.MockSnippetRepository)
	publisher := new(mocks.MockEventPublisher)

	var saved *entities.Snippet
	repo.On("Save", ctx, mock.AnythingOfType("*entities.Snippet")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(*entities.Snippet)
		}).
		Return(nil)
	publisher.On("PublishBatch", ctx, mock.Anything).Return(nil)

	handler := NewCreateSnippetHandler(repo, publisher, nil, zap.NewNop())
	result, err := handler.Handle(ctx, commands.CreateSnippetCommand{
		UserID:  "user-1",
		Content: "capture the retro notes",
		Type:    string(entities.TypeNote),
	})

	require.NoError(t, err)
	require.NotNil(t, result)
	require.NotNil(t, saved)
	assert.Equal(t, saved.ID().String(), result.SnippetID)
	assert.Empty(t, saved.GetUncommittedEvents())
	repo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestCreateSnippetHandler_UsesCallerSuppliedID(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.MockSnippetRepository)
	publisher := new(mocks.MockEventPublisher)
	wantID := uuid.New().String()

	repo.On("Save", ctx, mock.AnythingOfType("*entities.Snippet")).Return(nil)
	publisher.On("PublishBatch", ctx, mock.Anything).Return(nil)

	handler := NewCreateSnippetHandler(repo, publisher, nil, zap.NewNop())
	result, err := handler.Handle(ctx, commands.CreateSnippetCommand{
		SnippetID: wantID,
		UserID:    "user-1",
		Content:   "write the follow-up goal",
		Type:      string(entities.TypeGoal),
	})

	require.NoError(t, err)
	assert.Equal(t, wantID, result.SnippetID)
}

func TestCreateSnippetHandler_RejectsMalformedSuppliedID(t *testing.T) {
	repo := new(mocks.MockSnippetRepository)
	publisher := new(mocks.MockEventPublisher)

	handler := NewCreateSnippetHandler(repo, publisher, nil, zap.NewNop())
	result, err := handler.Handle(context.Background(), commands.CreateSnippetCommand{
		SnippetID: "nope",
		UserID:    "user-1",
		Content:   "content",
		Type:      string(entities.TypeNote),
	})

	require.Error(t, err)
	assert.Nil(t, result)
	repo.AssertNotCalled(t, "Save")
}

func TestCreateSnippetHandler_SaveFailureAborts(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.MockSnippetRepository)
	publisher := new(mocks.MockEventPublisher)

	repo.On("Save", ctx, mock.AnythingOfType("*entities.Snippet")).
		Return(errors.New("conditional check failed"))

	handler := NewCreateSnippetHandler(repo, publisher, nil, zap.NewNop())
	result, err := handler.Handle(ctx, commands.CreateSnippetCommand{
		UserID:  "user-1",
		Content: "content",
		Type:    string(entities.TypeNote),
	})

	require.Error(t, err)
	assert.Nil(t, result)
	publisher.AssertNotCalled(t, "PublishBatch")
}

func TestCreateSnippetHandler_PublishFailureIsNonFatal(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.MockSnippetRepository)
	publisher := new(mocks.MockEventPublisher)

	var saved *entities.Snippet
	repo.On("Save", ctx, mock.AnythingOfType("*entities.Snippet")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(*entities.Snippet)
		}).
		Return(nil)
	publisher.On("PublishBatch", ctx, mock.Anything).Return(errors.New("bus unavailable"))

	handler := NewCreateSnippetHandler(repo, publisher, nil, zap.NewNop())
	result, err := handler.Handle(ctx, commands.CreateSnippetCommand{
		UserID:  "user-1",
		Content: "content",
		Type:    string(entities.TypeNote),
	})

	require.NoError(t, err)
	require.NotNil(t, result)
	// Events stay uncommitted so a later publish attempt can retry them
	assert.NotEmpty(t, saved.GetUncommittedEvents())
}
