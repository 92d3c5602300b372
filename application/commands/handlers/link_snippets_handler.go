package handlers

import (
	"context"
	"fmt"
	"time"

	"threadline-backend/application/commands"
	"threadline-backend/application/ports"
	"threadline-backend/domain/core/entities"
	"threadline-backend/domain/core/valueobjects"
	"threadline-backend/domain/events"
	pkgerrors "threadline-backend/pkg/errors"
	"threadline-backend/pkg/observability"

	"go.uber.org/zap"
)

// LinkSnippetsHandler handles the LinkSnippetsCommand
type LinkSnippetsHandler struct {
	snippetRepo ports.SnippetRepository
	edgeRepo    ports.EdgeRepository
	publisher   ports.EventPublisher
	metrics     *observability.Collector
	logger      *zap.Logger
}

// NewLinkSnippetsHandler creates a new handler instance
func NewLinkSnippetsHandler(
	snippetRepo ports.SnippetRepository,
	edgeRepo ports.EdgeRepository,
	publisher ports.EventPublisher,
	metrics *observability.Collector,
	logger *zap.Logger,
) *LinkSnippetsHandler {
	return &LinkSnippetsHandler{
		snippetRepo: snippetRepo,
		edgeRepo:    edgeRepo,
		publisher:   publisher,
		metrics:     metrics,
		logger:      logger,
	}
}

// Handle executes the link snippets command
func (h *LinkSnippetsHandler) Handle(ctx context.Context, cmd commands.LinkSnippetsCommand) error {
	sourceID, err := valueobjects.NewSnippetIDFromString(cmd.SourceID)
	if err != nil {
		return pkgerrors.NewValidationError(err.Error())
	}
	targetID, err := valueobjects.NewSnippetIDFromString(cmd.TargetID)
	if err != nil {
		return pkgerrors.NewValidationError(err.Error())
	}

	// Both endpoints must exist and belong to the caller
	for _, id := range []valueobjects.SnippetID{sourceID, targetID} {
		snippet, err := h.snippetRepo.GetByID(ctx, cmd.UserID, id)
		if err != nil {
			return err
		}
		if snippet == nil {
			return pkgerrors.NewNotFoundError("snippet")
		}
	}

	edge, err := entities.NewEdge(sourceID, targetID)
	if err != nil {
		return err
	}

	if err := h.edgeRepo.Save(ctx, cmd.UserID, edge); err != nil {
		return fmt.Errorf("failed to save edge: %w", err)
	}

	event := events.NewSnippetsLinked(sourceID, targetID, cmd.UserID, time.Now())
	if err := h.publisher.Publish(ctx, event); err != nil {
		h.logger.Warn("Failed to publish link event",
			zap.String("sourceID", cmd.SourceID),
			zap.String("targetID", cmd.TargetID),
			zap.Error(err),
		)
	}

	h.metrics.RecordSnippetsLinked()
	h.logger.Info("Snippets linked",
		zap.String("sourceID", cmd.SourceID),
		zap.String("targetID", cmd.TargetID),
		zap.String("userID", cmd.UserID),
	)

	return nil
}
