package handlers

import (
	"context"
	"fmt"

	"threadline-backend/application/ports"
	"threadline-backend/application/queries"
	"threadline-backend/application/services"
	"threadline-backend/domain/core/valueobjects"
	pkgerrors "threadline-backend/pkg/errors"

	"go.uber.org/zap"
)

// GetThreadContextHandler handles thread context queries: it resolves the
// focus snippet first, so an unknown identifier is rejected before any
// resolver runs, then delegates the fan-out to the assembler.
type GetThreadContextHandler struct {
	snippetRepo ports.SnippetRepository
	assembler   *services.ThreadAssembler
	logger      *zap.Logger
}

// NewGetThreadContextHandler creates a new thread context handler
func NewGetThreadContextHandler(
	snippetRepo ports.SnippetRepository,
	assembler *services.ThreadAssembler,
	logger *zap.Logger,
) *GetThreadContextHandler {
	return &GetThreadContextHandler{
		snippetRepo: snippetRepo,
		assembler:   assembler,
		logger:      logger,
	}
}

// Handle executes the thread context query
func (h *GetThreadContextHandler) Handle(ctx context.Context, query queries.GetThreadContextQuery) (*queries.GetThreadContextResult, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query: %w", err)
	}

	snippetID, err := valueobjects.NewSnippetIDFromString(query.SnippetID)
	if err != nil {
		return nil, pkgerrors.NewValidationError(err.Error())
	}

	focus, err := h.snippetRepo.GetByID(ctx, query.UserID, snippetID)
	if err != nil {
		if pkgerrors.IsNotFound(err) {
			return nil, pkgerrors.NewFocusNotFoundError(query.SnippetID)
		}
		return nil, fmt.Errorf("failed to load focus snippet: %w", err)
	}
	if focus == nil {
		return nil, pkgerrors.NewFocusNotFoundError(query.SnippetID)
	}

	threadContext, err := h.assembler.Build(ctx, focus)
	if err != nil {
		h.logger.Error("Thread context build failed",
			zap.String("snippetID", query.SnippetID),
			zap.String("userID", query.UserID),
			zap.Error(err),
		)
		return nil, err
	}

	if threadContext.PartialFailure() {
		h.logger.Warn("Thread context built with failed axes",
			zap.String("snippetID", query.SnippetID),
			zap.Bool("upstreamFailed", threadContext.Upstream().Err != nil),
			zap.Bool("downstreamFailed", threadContext.Downstream().Err != nil),
			zap.Bool("lateralFailed", threadContext.Lateral().Err != nil),
		)
	}

	return queries.NewThreadContextResult(threadContext), nil
}
