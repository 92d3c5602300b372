package handlers

import (
	"context"
	"fmt"
	"time"

	"threadline-backend/application/commands"
	"threadline-backend/application/ports"
	"threadline-backend/domain/core/valueobjects"
	"threadline-backend/domain/events"
	pkgerrors "threadline-backend/pkg/errors"

	"go.uber.org/zap"
)

// DeleteSnippetHandler handles the DeleteSnippetCommand
type DeleteSnippetHandler struct {
	snippetRepo ports.SnippetRepository
	edgeRepo    ports.EdgeRepository
	publisher   ports.EventPublisher
	logger      *zap.Logger
}

// NewDeleteSnippetHandler creates a new handler instance
func NewDeleteSnippetHandler(
	snippetRepo ports.SnippetRepository,
	edgeRepo ports.EdgeRepository,
	publisher ports.EventPublisher,
	logger *zap.Logger,
) *DeleteSnippetHandler {
	return &DeleteSnippetHandler{
		snippetRepo: snippetRepo,
		edgeRepo:    edgeRepo,
		publisher:   publisher,
		logger:      logger,
	}
}

// Handle executes the delete snippet command
func (h *DeleteSnippetHandler) Handle(ctx context.Context, cmd commands.DeleteSnippetCommand) error {
	snippetID, err := valueobjects.NewSnippetIDFromString(cmd.SnippetID)
	if err != nil {
		return pkgerrors.NewValidationError(err.Error())
	}

	snippet, err := h.snippetRepo.GetByID(ctx, cmd.UserID, snippetID)
	if err != nil {
		return err
	}
	if snippet == nil {
		return pkgerrors.NewNotFoundError("snippet")
	}

	// Edges first so a failed delete never leaves dangling links
	if err := h.edgeRepo.DeleteBySnippetID(ctx, cmd.UserID, snippetID); err != nil {
		return fmt.Errorf("failed to delete edges: %w", err)
	}

	if err := h.snippetRepo.Delete(ctx, cmd.UserID, snippetID); err != nil {
		return fmt.Errorf("failed to delete snippet: %w", err)
	}

	event := events.NewSnippetDeleted(snippetID, cmd.UserID, time.Now())
	if err := h.publisher.Publish(ctx, event); err != nil {
		h.logger.Warn("Failed to publish delete event",
			zap.String("snippetID", cmd.SnippetID),
			zap.Error(err),
		)
	}

	h.logger.Info("Snippet deleted",
		zap.String("snippetID", cmd.SnippetID),
		zap.String("userID", cmd.UserID),
	)

	return nil
}
