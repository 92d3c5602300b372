package handlers

import (
	"context"
	"fmt"

	"threadline-backend/application/ports"
	"threadline-backend/application/queries"

	"go.uber.org/zap"
)

const defaultListLimit = 50

// ListSnippetsHandler handles snippet listing queries
type ListSnippetsHandler struct {
	snippetRepo ports.SnippetRepository
	logger      *zap.Logger
}

// NewListSnippetsHandler creates a new listing handler
func NewListSnippetsHandler(snippetRepo ports.SnippetRepository, logger *zap.Logger) *ListSnippetsHandler {
	return &ListSnippetsHandler{
		snippetRepo: snippetRepo,
		logger:      logger,
	}
}

// Handle executes the listing query
func (h *ListSnippetsHandler) Handle(ctx context.Context, query queries.ListSnippetsQuery) (*queries.ListSnippetsResult, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query: %w", err)
	}

	limit := query.Limit
	if limit == 0 {
		limit = defaultListLimit
	}

	snippets, err := h.snippetRepo.GetByUserID(ctx, query.UserID, limit)
	if err != nil {
		h.logger.Error("Failed to list snippets",
			zap.String("userID", query.UserID),
			zap.Error(err),
		)
		return nil, err
	}

	result := &queries.ListSnippetsResult{
		Snippets: make([]queries.SnippetView, 0, len(snippets)),
		Count:    len(snippets),
	}
	for _, snippet := range snippets {
		result.Snippets = append(result.Snippets, queries.NewSnippetView(snippet))
	}

	return result, nil
}
