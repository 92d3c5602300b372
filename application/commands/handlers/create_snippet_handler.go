package handlers

import (
	"context"
	"fmt"

	"threadline-backend/application/commands"
	"threadline-backend/application/ports"
	"threadline-backend/domain/core/entities"
	"threadline-backend/domain/core/valueobjects"
	"threadline-backend/pkg/observability"

	"go.uber.org/zap"
)

// CreateSnippetHandler handles the CreateSnippetCommand
type CreateSnippetHandler struct {
	snippetRepo ports.SnippetRepository
	publisher   ports.EventPublisher
	metrics     *observability.Collector
	logger      *zap.Logger
}

// NewCreateSnippetHandler creates a new handler instance
func NewCreateSnippetHandler(
	snippetRepo ports.SnippetRepository,
	publisher ports.EventPublisher,
	metrics *observability.Collector,
	logger *zap.Logger,
) *CreateSnippetHandler {
	return &CreateSnippetHandler{
		snippetRepo: snippetRepo,
		publisher:   publisher,
		metrics:     metrics,
		logger:      logger,
	}
}

// Handle executes the create snippet command
func (h *CreateSnippetHandler) Handle(ctx context.Context, cmd commands.CreateSnippetCommand) (*commands.CreateSnippetResult, error) {
	var snippet *entities.Snippet
	var err error
	if cmd.SnippetID != "" {
		id, idErr := valueobjects.NewSnippetIDFromString(cmd.SnippetID)
		if idErr != nil {
			return nil, idErr
		}
		snippet, err = entities.NewSnippetWithID(id, cmd.UserID, cmd.Content, entities.SnippetType(cmd.Type))
	} else {
		snippet, err = entities.NewSnippet(cmd.UserID, cmd.Content, entities.SnippetType(cmd.Type))
	}
	if err != nil {
		return nil, err
	}

	if err := h.snippetRepo.Save(ctx, snippet); err != nil {
		return nil, fmt.Errorf("failed to save snippet: %w", err)
	}

	// Publish after the save so the clustering pipeline never sees a
	// snippet that is not yet readable
	if err := h.publisher.PublishBatch(ctx, snippet.GetUncommittedEvents()); err != nil {
		// The snippet is durable; classification will lag until the next event
		h.logger.Warn("Failed to publish snippet events",
			zap.String("snippetID", snippet.ID().String()),
			zap.Error(err),
		)
	} else {
		snippet.MarkEventsAsCommitted()
	}

	h.metrics.RecordSnippetCaptured()
	h.logger.Info("Snippet captured",
		zap.String("snippetID", snippet.ID().String()),
		zap.String("userID", cmd.UserID),
		zap.String("type", string(snippet.Type())),
	)

	return &commands.CreateSnippetResult{SnippetID: snippet.ID().String()}, nil
}
