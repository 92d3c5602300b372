package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"threadline-backend/application/ports"
	domainconfig "threadline-backend/domain/config"
	"threadline-backend/domain/core/aggregates"
	"threadline-backend/domain/core/entities"
	pkgerrors "threadline-backend/pkg/errors"
	"threadline-backend/pkg/observability"

	"go.uber.org/zap"
)

// ThreadAssembler builds the hub-and-spoke context around a focus snippet.
// The three axes are independent read-only computations, so they are issued
// as a concurrent fan-out and joined at the end; the only shared state is
// each goroutine's own result slot.
type ThreadAssembler struct {
	upstream   *UpstreamResolver
	downstream *DownstreamResolver
	lateral    *LateralResolver
	metrics    *observability.Collector
	logger     *zap.Logger
}

// NewThreadAssembler creates a thread assembler over the given store with
// the configured motion budget
func NewThreadAssembler(
	store ports.GraphStore,
	budget domainconfig.MotionBudget,
	metrics *observability.Collector,
	logger *zap.Logger,
) *ThreadAssembler {
	return &ThreadAssembler{
		upstream:   NewUpstreamResolver(store, budget.MaxUpstreamNodes, logger),
		downstream: NewDownstreamResolver(store, budget.MaxDownstreamNodes, logger),
		lateral:    NewLateralResolver(store, budget.MaxLateralNodes, logger),
		metrics:    metrics,
		logger:     logger,
	}
}

// Build resolves the three relation axes concurrently and merges them with
// the focus into an immutable ThreadContext. A failed axis does not discard
// the others: its group carries the error marker and empty nodes. Build
// itself fails only when the context is cancelled or every axis failed.
func (a *ThreadAssembler) Build(ctx context.Context, focus *entities.Snippet) (*aggregates.ThreadContext, error) {
	if focus == nil {
		return nil, pkgerrors.NewValidationError("focus snippet is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		wg         sync.WaitGroup
		upstream   aggregates.RelationGroup
		downstream aggregates.RelationGroup
		lateral    aggregates.LateralGroup
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		start := time.Now()
		group, err := a.upstream.Resolve(ctx, focus)
		group.Err = err
		a.metrics.RecordAxis("upstream", time.Since(start), err == nil && group.Relation == aggregates.RelationTemporal)
		upstream = group
	}()
	go func() {
		defer wg.Done()
		start := time.Now()
		group, err := a.downstream.Resolve(ctx, focus)
		group.Err = err
		a.metrics.RecordAxis("downstream", time.Since(start), err == nil && group.Relation == aggregates.RelationNextStep)
		downstream = group
	}()
	go func() {
		defer wg.Done()
		start := time.Now()
		group, err := a.lateral.Resolve(ctx, focus)
		group.Err = err
		a.metrics.RecordAxis("lateral", time.Since(start), err == nil && group.Similarity == aggregates.SimilaritySharedType)
		lateral = group
	}()
	wg.Wait()

	if err := ctx.Err(); err != nil {
		a.metrics.RecordBuild("cancelled")
		return nil, err
	}

	if upstream.Err != nil && downstream.Err != nil && lateral.Err != nil {
		a.metrics.RecordBuild("failure")
		a.logger.Error("All relation axes failed",
			zap.String("focusID", focus.ID().String()),
			zap.Error(upstream.Err),
		)
		return nil, pkgerrors.NewQueryFailedError("thread context",
			errors.Join(upstream.Err, downstream.Err, lateral.Err))
	}

	threadContext := aggregates.NewThreadContext(focus, upstream, downstream, lateral)

	status := "success"
	if threadContext.PartialFailure() {
		status = "partial"
	}
	a.metrics.RecordBuild(status)

	a.logger.Debug("Thread context built",
		zap.String("focusID", focus.ID().String()),
		zap.String("status", status),
		zap.Int("upstreamNodes", len(upstream.Nodes)),
		zap.Int("downstreamNodes", len(downstream.Nodes)),
		zap.Int("lateralNodes", len(lateral.Nodes)),
	)

	return threadContext, nil
}
