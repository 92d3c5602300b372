package handlers

import (
	"net/http"

	"threadline-backend/application/queries"
	querybus "threadline-backend/application/queries/bus"
	"threadline-backend/pkg/auth"
	"threadline-backend/pkg/common"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ThreadHandler serves the thread context view around a focus snippet
type ThreadHandler struct {
	queryBus *querybus.QueryBus
	logger   *zap.Logger
}

// NewThreadHandler creates a new thread handler
func NewThreadHandler(queryBus *querybus.QueryBus, logger *zap.Logger) *ThreadHandler {
	return &ThreadHandler{
		queryBus: queryBus,
		logger:   logger,
	}
}

// GetThreadContext handles GET /snippets/{snippetID}/thread
func (h *ThreadHandler) GetThreadContext(w http.ResponseWriter, r *http.Request) {
	snippetID := chi.URLParam(r, "snippetID")
	if snippetID == "" {
		common.RespondError(w, http.StatusBadRequest, "BAD_REQUEST", "Snippet ID is required")
		return
	}
	if _, err := uuid.Parse(snippetID); err != nil {
		common.RespondError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid snippet ID format")
		return
	}

	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized")
		return
	}

	query := queries.GetThreadContextQuery{
		UserID:    userCtx.UserID,
		SnippetID: snippetID,
	}

	result, err := h.queryBus.Ask(r.Context(), query)
	if err != nil {
		h.logger.Error("Failed to build thread context",
			zap.String("snippetID", snippetID),
			zap.String("userID", userCtx.UserID),
			zap.Error(err),
		)
		respondAppError(w, err, "Failed to build thread context")
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}
