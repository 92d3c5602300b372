package aggregates

import (
	"time"

	"threadline-backend/domain/core/entities"
)

// RelationKind tags how a relation group was resolved
type RelationKind string

const (
	// RelationCausal marks upstream snippets reached through explicit edges
	RelationCausal RelationKind = "CAUSAL"
	// RelationTemporal marks upstream snippets found by timestamp proximity alone
	RelationTemporal RelationKind = "TEMPORAL"
	// RelationImplication marks downstream snippets reached through explicit edges
	RelationImplication RelationKind = "IMPLICATION"
	// RelationNextStep marks downstream goals found by the type fallback
	RelationNextStep RelationKind = "NEXT_STEP"
)

// Lateral similarity is a coarse heuristic derived from which strategy
// matched, not a learned metric.
const (
	SimilaritySharedCluster = 0.7
	SimilaritySharedType    = 0.4
)

// RelationGroup holds one temporal axis of a thread context: the resolved
// snippets in axis order, the strategy tag, and whether more matches exist
// beyond the node budget. Err is set when the axis failed to resolve; the
// rest of the context is still usable.
type RelationGroup struct {
	Relation RelationKind
	Nodes    []*entities.Snippet
	HasMore  bool
	Err      error
}

// LateralGroup holds the classification axis. Similarity is 0.7 for a shared
// cluster label, 0.4 for a shared type, 0 when nothing matched.
type LateralGroup struct {
	Similarity float64
	Nodes      []*entities.Snippet
	HasMore    bool
	Err        error
}

// ThreadContext is the hub-and-spoke view around a focus snippet: what led
// to it, what followed from it, and what resembles it. It is constructed
// fresh on every build and never mutated afterwards.
type ThreadContext struct {
	focus      *entities.Snippet
	upstream   RelationGroup
	downstream RelationGroup
	lateral    LateralGroup
	builtAt    time.Time
}

// NewThreadContext merges the three resolved axes with the focus snippet and
// stamps the build time
func NewThreadContext(focus *entities.Snippet, upstream, downstream RelationGroup, lateral LateralGroup) *ThreadContext {
	return &ThreadContext{
		focus:      focus,
		upstream:   upstream,
		downstream: downstream,
		lateral:    lateral,
		builtAt:    time.Now(),
	}
}

// Focus returns the snippet at the hub
func (tc *ThreadContext) Focus() *entities.Snippet {
	return tc.focus
}

// Upstream returns the snippets that led to the focus, most recent first
func (tc *ThreadContext) Upstream() RelationGroup {
	return tc.upstream
}

// Downstream returns the snippets that followed the focus, nearest first
func (tc *ThreadContext) Downstream() RelationGroup {
	return tc.downstream
}

// Lateral returns the snippets that resemble the focus
func (tc *ThreadContext) Lateral() LateralGroup {
	return tc.lateral
}

// BuiltAt returns when this context was assembled
func (tc *ThreadContext) BuiltAt() time.Time {
	return tc.builtAt
}

// PartialFailure reports whether at least one axis failed to resolve
func (tc *ThreadContext) PartialFailure() bool {
	return tc.upstream.Err != nil || tc.downstream.Err != nil || tc.lateral.Err != nil
}
