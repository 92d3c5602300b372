package ports

import (
	"context"
	"time"

	"threadline-backend/domain/core/entities"
	"threadline-backend/domain/core/valueobjects"
)

// TemporalDirection selects which side of a pivot timestamp a query matches
type TemporalDirection int

const (
	// Before matches snippets strictly older than the pivot, returned
	// newest-first
	Before TemporalDirection = iota
	// After matches snippets strictly newer than the pivot, returned
	// oldest-first
	After
)

func (d TemporalDirection) String() string {
	if d == Before {
		return "before"
	}
	return "after"
}

// GraphStore is the read-only query surface the thread context builder
// depends on. All operations are side-effect-free and safe to issue in
// parallel against the same store instance; every call honors context
// cancellation.
type GraphStore interface {
	// QueryConnected returns snippets joined to the focus by any edge,
	// filtered by timestamp relative to the pivot, ordered per direction,
	// limited
	QueryConnected(ctx context.Context, userID string, focusID valueobjects.SnippetID, pivot time.Time, dir TemporalDirection, limit int) ([]*entities.Snippet, error)

	// QueryByTimestamp is the pure temporal fallback: no edge requirement,
	// same exclusion, ordering and limit
	QueryByTimestamp(ctx context.Context, userID string, excludeID valueobjects.SnippetID, pivot time.Time, dir TemporalDirection, limit int) ([]*entities.Snippet, error)

	// QueryByTypeAndTimestamp returns snippets of the given type strictly
	// newer than the pivot, oldest-first
	QueryByTypeAndTimestamp(ctx context.Context, userID string, excludeID valueobjects.SnippetID, snippetType entities.SnippetType, after time.Time, limit int) ([]*entities.Snippet, error)

	// QueryByClusterLabel returns snippets sharing the given cluster label,
	// newest-first
	QueryByClusterLabel(ctx context.Context, userID string, excludeID valueobjects.SnippetID, label string, limit int) ([]*entities.Snippet, error)

	// QueryByType returns snippets sharing the given type, newest-first
	QueryByType(ctx context.Context, userID string, excludeID valueobjects.SnippetID, snippetType entities.SnippetType, limit int) ([]*entities.Snippet, error)

	// CountConnected counts edge-joined snippets on one side of the pivot,
	// with no limit applied
	CountConnected(ctx context.Context, userID string, focusID valueobjects.SnippetID, pivot time.Time, dir TemporalDirection) (int, error)

	// CountByTimestamp counts all snippets on one side of the pivot,
	// excluding the focus, with no limit applied. Drives the upstream and
	// downstream truncation flags.
	CountByTimestamp(ctx context.Context, userID string, excludeID valueobjects.SnippetID, pivot time.Time, dir TemporalDirection) (int, error)

	// CountSimilar counts snippets matching the cluster label or the type (a
	// union predicate). Drives the lateral truncation flag. An empty label
	// matches nothing on the label side.
	CountSimilar(ctx context.Context, userID string, excludeID valueobjects.SnippetID, label string, snippetType entities.SnippetType) (int, error)
}
