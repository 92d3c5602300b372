package services

import (
	"context"

	"threadline-backend/application/ports"
	"threadline-backend/domain/core/aggregates"
	"threadline-backend/domain/core/entities"

	"go.uber.org/zap"
)

// DownstreamResolver finds the snippets that followed from the focus:
// edge-connected successors first, then later goals. The fallback narrows by
// type, so it can come back empty even when later snippets exist.
type DownstreamResolver struct {
	store  ports.GraphStore
	budget int
	logger *zap.Logger
}

// NewDownstreamResolver creates a downstream resolver with the given node budget
func NewDownstreamResolver(store ports.GraphStore, budget int, logger *zap.Logger) *DownstreamResolver {
	return &DownstreamResolver{
		store:  store,
		budget: budget,
		logger: logger,
	}
}

// Resolve returns the downstream relation group for the focus, nearest
// successor first
func (r *DownstreamResolver) Resolve(ctx context.Context, focus *entities.Snippet) (aggregates.RelationGroup, error) {
	out, err := resolveTwoTier(ctx, focus.ID(), r.budget,
		func(ctx context.Context) ([]*entities.Snippet, error) {
			return r.store.QueryConnected(ctx, focus.UserID(), focus.ID(), focus.CreatedAt(), ports.After, r.budget)
		},
		func(ctx context.Context) ([]*entities.Snippet, error) {
			return r.store.QueryByTypeAndTimestamp(ctx, focus.UserID(), focus.ID(), entities.TypeGoal, focus.CreatedAt(), r.budget)
		},
		func(ctx context.Context) (int, error) {
			// Truncation is judged against all newer snippets, not just goals
			return r.store.CountByTimestamp(ctx, focus.UserID(), focus.ID(), focus.CreatedAt(), ports.After)
		},
	)
	if err != nil {
		r.logger.Error("Downstream resolution failed",
			zap.String("focusID", focus.ID().String()),
			zap.Error(err),
		)
		return aggregates.RelationGroup{Relation: aggregates.RelationNextStep, Nodes: []*entities.Snippet{}}, err
	}

	relation := aggregates.RelationImplication
	if out.FellBack {
		relation = aggregates.RelationNextStep
	}

	r.logger.Debug("Downstream axis resolved",
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
