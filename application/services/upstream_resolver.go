package services

import (
	"context"

	"threadline-backend/application/ports"
	"threadline-backend/domain/core/aggregates"
	"threadline-backend/domain/core/entities"

	"go.uber.org/zap"
)

// UpstreamResolver finds the snippets that led to the focus: edge-connected
// precedents first, a pure temporal scan when the focus has no older
// connections.
type UpstreamResolver struct {
	store  ports.GraphStore
	budget int
	logger *zap.Logger
}

// NewUpstreamResolver creates an upstream resolver with the given node budget
func NewUpstreamResolver(store ports.GraphStore, budget int, logger *zap.Logger) *UpstreamResolver {
	return &UpstreamResolver{
		store:  store,
		budget: budget,
		logger: logger,
	}
}

// Resolve returns the upstream relation group for the focus, most recent
// precedent first
func (r *UpstreamResolver) Resolve(ctx context.Context, focus *entities.Snippet) (aggregates.RelationGroup, error) {
	out, err := resolveTwoTier(ctx, focus.ID(), r.budget,
		func(ctx context.Context) ([]*entities.Snippet, error) {
			return r.store.QueryConnected(ctx, focus.UserID(), focus.ID(), focus.CreatedAt(), ports.Before, r.budget)
		},
		func(ctx context.Context) ([]*entities.Snippet, error) {
			return r.store.QueryByTimestamp(ctx, focus.UserID(), focus.ID(), focus.CreatedAt(), ports.Before, r.budget)
		},
		func(ctx context.Context) (int, error) {
			return r.store.CountByTimestamp(ctx, focus.UserID(), focus.ID(), focus.CreatedAt(), ports.Before)
		},
	)
	if err != nil {
		r.logger.Error("Upstream resolution failed",
			zap.String("focusID", focus.ID().String()),
			zap.Error(err),
		)
		return aggregates.RelationGroup{Relation: aggregates.RelationTemporal, Nodes: []*entities.Snippet{}}, err
	}

	relation := aggregates.RelationCausal
	if out.FellBack {
		relation = aggregates.RelationTemporal
	}

	r.logger.Debug("Upstream axis resolved",
		zap.String("focusID", focus.ID().String()),
		zap.String("relation", string(relation)),
		zap.Int("nodes", len(out.Nodes)),
		zap.Bool("hasMore", out.HasMore),
	)

	return aggregates.RelationGroup{
		Relation: relation,
		Nodes:    out.Nodes,
		HasMore:  out.HasMore,
	}, nil
}
