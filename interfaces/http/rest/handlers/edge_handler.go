package handlers

import (
	"net/http"

	"threadline-backend/application/commands"
	"threadline-backend/application/commands/bus"
	"threadline-backend/pkg/auth"
	"threadline-backend/pkg/common"
	"threadline-backend/pkg/utils"

	"go.uber.org/zap"
)

// EdgeHandler handles edge-related HTTP requests
type EdgeHandler struct {
	commandBus *bus.CommandBus
	logger     *zap.Logger
}

// NewEdgeHandler creates a new edge handler
func NewEdgeHandler(commandBus *bus.CommandBus, logger *zap.Logger) *EdgeHandler {
	return &EdgeHandler{
		commandBus: commandBus,
		logger:     logger,
	}
}

// CreateEdgeRequest represents the request body for linking two snippets
type CreateEdgeRequest struct {
	SourceID string `json:"source_id" validate:"required,uuid"`
	TargetID string `json:"target_id" validate:"required,uuid"`
}

// CreateEdge handles POST /edges
func (h *EdgeHandler) CreateEdge(w http.ResponseWriter, r *http.Request) {
	var req CreateEdgeRequest
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

	cmd := commands.LinkSnippetsCommand{
		UserID:   userCtx.UserID,
		SourceID: req.SourceID,
		TargetID: req.TargetID,
	}

	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.logger.Error("Failed to link snippets",
			zap.String("sourceID", req.SourceID),
			zap.String("targetID", req.TargetID),
			zap.String("userID", userCtx.UserID),
			zap.Error(err),
		)
		respondAppError(w, err, "Failed to link snippets")
		return
	}

	common.RespondJSON(w, http.StatusCreated, map[string]string{
		"message": "Snippets linked",
	})
}
