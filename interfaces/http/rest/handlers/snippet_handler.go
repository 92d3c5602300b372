package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"threadline-backend/application/commands"
	"threadline-backend/application/commands/bus"
	"threadline-backend/application/queries"
	querybus "threadline-backend/application/queries/bus"
	"threadline-backend/pkg/auth"
	"threadline-backend/pkg/common"
	pkgerrors "threadline-backend/pkg/errors"
	"threadline-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxRequestBodyBytes = 64 << 10

// SnippetHandler handles snippet-related HTTP requests
type SnippetHandler struct {
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	logger     *zap.Logger
}

// NewSnippetHandler creates a new snippet handler
func NewSnippetHandler(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	logger *zap.Logger,
) *SnippetHandler {
	return &SnippetHandler{
		commandBus: commandBus,
		queryBus:   queryBus,
		logger:     logger,
	}
}

// CreateSnippetRequest represents the request body for capturing a snippet
type CreateSnippetRequest struct {
	Content string `json:"content" validate:"required,min=1,max=10000"`
	Type    string `json:"type,omitempty" validate:"omitempty,oneof=note goal"`
}

// CreateSnippetResponse represents the response for capturing a snippet
type CreateSnippetResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// CreateSnippet handles POST /snippets
func (h *SnippetHandler) CreateSnippet(w http.ResponseWriter, r *http.Request) {
	var req CreateSnippetRequest
	if err := common.ParseJSONBody(w, r, &req, maxRequestBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body: "+err.Error())
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized")
		return
	}

	// Pre-generate the ID so the response can carry it without a result
	// channel through the command bus
	snippetID := uuid.New().String()

	cmd := commands.CreateSnippetCommand{
		SnippetID: snippetID,
		UserID:    userCtx.UserID,
		Content:   req.Content,
		Type:      req.Type,
	}

	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.logger.Error("Failed to capture snippet",
			zap.String("userID", userCtx.UserID),
			zap.Error(err),
		)
		h.respondCommandError(w, err, "Failed to capture snippet")
		return
	}

	common.RespondJSON(w, http.StatusCreated, CreateSnippetResponse{
		ID:      snippetID,
		Message: "Snippet captured",
	})
}

// GetSnippet handles GET /snippets/{snippetID}
func (h *SnippetHandler) GetSnippet(w http.ResponseWriter, r *http.Request) {
	snippetID, ok := h.snippetIDParam(w, r)
	if !ok {
		return
	}

	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized")
		return
	}

	query := queries.GetSnippetQuery{
		UserID:    userCtx.UserID,
		SnippetID: snippetID,
	}

	result, err := h.queryBus.Ask(r.Context(), query)
	if err != nil {
		h.logger.Error("Failed to get snippet",
			zap.String("snippetID", snippetID),
			zap.String("userID", userCtx.UserID),
			zap.Error(err),
		)
		h.respondQueryError(w, err, "Failed to retrieve snippet")
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}

// ListSnippets handles GET /snippets
func (h *SnippetHandler) ListSnippets(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	query := queries.ListSnippetsQuery{
		UserID: userCtx.UserID,
		Limit:  limit,
	}

	result, err := h.queryBus.Ask(r.Context(), query)
	if err != nil {
		h.logger.Error("Failed to list snippets",
			zap.String("userID", userCtx.UserID),
			zap.Error(err),
		)
		h.respondQueryError(w, err, "Failed to list snippets")
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}

// DeleteSnippet handles DELETE /snippets/{snippetID}
func (h *SnippetHandler) DeleteSnippet(w http.ResponseWriter, r *http.Request) {
	snippetID, ok := h.snippetIDParam(w, r)
	if !ok {
		return
	}

	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized")
		return
	}

	cmd := commands.DeleteSnippetCommand{
		UserID:    userCtx.UserID,
		SnippetID: snippetID,
	}

	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.logger.Error("Failed to delete snippet",
			zap.String("snippetID", snippetID),
			zap.String("userID", userCtx.UserID),
			zap.Error(err),
		)
		h.respondCommandError(w, err, "Failed to delete snippet")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// snippetIDParam extracts and validates the snippet ID path parameter
func (h *SnippetHandler) snippetIDParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	snippetID := chi.URLParam(r, "snippetID")
	if snippetID == "" {
		common.RespondError(w, http.StatusBadRequest, "BAD_REQUEST", "Snippet ID is required")
		return "", false
	}
	if _, err := uuid.Parse(snippetID); err != nil {
		common.RespondError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid snippet ID format")
		return "", false
	}
	return snippetID, true
}

func (h *SnippetHandler) respondCommandError(w http.ResponseWriter, err error, fallback string) {
	respondAppError(w, err, fallback)
}

func (h *SnippetHandler) respondQueryError(w http.ResponseWriter, err error, fallback string) {
	respondAppError(w, err, fallback)
}

// respondAppError maps application errors onto HTTP responses. The bus
// wraps handler errors, so unwrap before classifying.
func respondAppError(w http.ResponseWriter, err error, fallback string) {
	var appErr *pkgerrors.AppError
	if errors.As(err, &appErr) {
		code := appErr.Code
		if code == "" {
			code = string(appErr.Type)
		}
		common.RespondError(w, pkgerrors.GetHTTPStatus(appErr), code, appErr.Message)
		return
	}

	if strings.Contains(err.Error(), "validation") {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	common.RespondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", fallback)
}
