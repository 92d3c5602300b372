package services

import (
	"context"

	"threadline-backend/application/ports"
	"threadline-backend/domain/core/aggregates"
	"threadline-backend/domain/core/entities"

	"go.uber.org/zap"
)

// LateralResolver finds the snippets that resemble the focus by
// classification rather than time: shared cluster label first, shared type
// as the fallback. The similarity score is a fixed heuristic per strategy.
type LateralResolver struct {
	store  ports.GraphStore
	budget int
	logger *zap.Logger
}

// NewLateralResolver creates a lateral resolver with the given node budget
func NewLateralResolver(store ports.GraphStore, budget int, logger *zap.Logger) *LateralResolver {
	return &LateralResolver{
		store:  store,
		budget: budget,
		logger: logger,
	}
}

// Resolve returns the lateral group for the focus, newest first.
// The truncation flag counts the cluster-label OR type union, which is
// broader than whichever single strategy fired; it can overstate truncation
// relative to the displayed set.
func (r *LateralResolver) Resolve(ctx context.Context, focus *entities.Snippet) (aggregates.LateralGroup, error) {
	out, err := resolveTwoTier(ctx, focus.ID(), r.budget,
		func(ctx context.Context) ([]*entities.Snippet, error) {
			if !focus.HasClusterLabel() {
				return nil, nil
			}
			return r.store.QueryByClusterLabel(ctx, focus.UserID(), focus.ID(), focus.ClusterLabel(), r.budget)
		},
		func(ctx context.Context) ([]*entities.Snippet, error) {
			return r.store.QueryByType(ctx, focus.UserID(), focus.ID(), focus.Type(), r.budget)
		},
		func(ctx context.Context) (int, error) {
			return r.store.CountSimilar(ctx, focus.UserID(), focus.ID(), focus.ClusterLabel(), focus.Type())
		},
	)
	if err != nil {
		r.logger.Error("Lateral resolution failed",
			zap.String("focusID", focus.ID().String()),
			zap.Error(err),
		)
		return aggregates.LateralGroup{Nodes: []*entities.Snippet{}}, err
	}

	similarity := 0.0
	if len(out.Nodes) > 0 {
		if out.FellBack {
			similarity = aggregates.SimilaritySharedType
		} else {
			similarity = aggregates.SimilaritySharedCluster
		}
	}

	r.logger.Debug("Lateral axis resolved",
		zap.String("focusID", focus.ID().String()),
		zap.Float64("similarity", similarity),
		zap.Int("nodes", len(out.Nodes)),
		zap.Bool("hasMore", out.HasMore),
	)

	return aggregates.LateralGroup{
		Similarity: similarity,
		Nodes:      out.Nodes,
		HasMore:    out.HasMore,
	}, nil
}
