package handlers

import (
	"context"
	"fmt"

	"threadline-backend/application/ports"
	"threadline-backend/application/queries"
	"threadline-backend/domain/core/valueobjects"
	pkgerrors "threadline-backend/pkg/errors"

	"go.uber.org/zap"
)

// GetSnippetHandler handles single-snippet queries
type GetSnippetHandler struct {
	snippetRepo ports.SnippetRepository
	logger      *zap.Logger
}

// NewGetSnippetHandler creates a new snippet query handler
func NewGetSnippetHandler(snippetRepo ports.SnippetRepository, logger *zap.Logger) *GetSnippetHandler {
	return &GetSnippetHandler{
		snippetRepo: snippetRepo,
		logger:      logger,
	}
}

// Handle executes the snippet query
func (h *GetSnippetHandler) Handle(ctx context.Context, query queries.GetSnippetQuery) (*queries.GetSnippetResult, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query: %w", err)
	}

	snippetID, err := valueobjects.NewSnippetIDFromString(query.SnippetID)
	if err != nil {
		return nil, pkgerrors.NewValidationError(err.Error())
	}

	snippet, err := h.snippetRepo.GetByID(ctx, query.UserID, snippetID)
	if err != nil {
		return nil, err
	}
	if snippet == nil {
		return nil, pkgerrors.NewNotFoundError("snippet")
	}

	return &queries.GetSnippetResult{SnippetView: queries.NewSnippetView(snippet)}, nil
}
