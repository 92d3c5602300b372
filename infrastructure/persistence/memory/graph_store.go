package memory

import (
	"context"
	"time"

	"threadline-backend/application/ports"
	"threadline-backend/domain/core/entities"
	"threadline-backend/domain/core/valueobjects"
)

// GraphStore is the in-memory relation-query adapter. It mirrors the
// DynamoDB adapter's ordering semantics: strict before/after comparisons,
// newest-first for Before and oldest-first for After.
type GraphStore struct {
	store *Store
}

// NewGraphStore creates an in-memory graph store
func NewGraphStore(store *Store) *GraphStore {
	return &GraphStore{store: store}
}

// QueryConnected returns edge-joined snippets on one side of the pivot
func (g *GraphStore) QueryConnected(ctx context.Context, userID string, focusID valueobjects.SnippetID, pivot time.Time, dir ports.TemporalDirection, limit int) ([]*entities.Snippet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	g.store.mu.RLock()
	defer g.store.mu.RUnlock()

	matches := g.store.connected(userID, focusID, pivot, dir)
	sortByTimestamp(matches, dir == ports.Before)
	return truncate(matches, limit), nil
}

// CountConnected counts edge-joined snippets on one side of the pivot
func (g *GraphStore) CountConnected(ctx context.Context, userID string, focusID valueobjects.SnippetID, pivot time.Time, dir ports.TemporalDirection) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	g.store.mu.RLock()
	defer g.store.mu.RUnlock()
	return len(g.store.connected(userID, focusID, pivot, dir)), nil
}

// QueryByTimestamp returns snippets on one side of the pivot regardless of
// edges
func (g *GraphStore) QueryByTimestamp(ctx context.Context, userID string, excludeID valueobjects.SnippetID, pivot time.Time, dir ports.TemporalDirection, limit int) ([]*entities.Snippet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	g.store.mu.RLock()
	defer g.store.mu.RUnlock()

	matches := g.store.collect(func(snippet *entities.Snippet) bool {
		return snippet.UserID() == userID &&
			!snippet.ID().Equals(excludeID) &&
			onSide(snippet.CreatedAt(), pivot, dir)
	})
	sortByTimestamp(matches, dir == ports.Before)
	return truncate(matches, limit), nil
}

// CountByTimestamp counts snippets on one side of the pivot
func (g *GraphStore) CountByTimestamp(ctx context.Context, userID string, excludeID valueobjects.SnippetID, pivot time.Time, dir ports.TemporalDirection) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	g.store.mu.RLock()
	defer g.store.mu.RUnlock()

	matches := g.store.collect(func(snippet *entities.Snippet) bool {
		return snippet.UserID() == userID &&
			!snippet.ID().Equals(excludeID) &&
			onSide(snippet.CreatedAt(), pivot, dir)
	})
	return len(matches), nil
}

// QueryByTypeAndTimestamp returns snippets of one type strictly newer than
// the pivot, oldest-first
func (g *GraphStore) QueryByTypeAndTimestamp(ctx context.Context, userID string, excludeID valueobjects.SnippetID, snippetType entities.SnippetType, after time.Time, limit int) ([]*entities.Snippet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	g.store.mu.RLock()
	defer g.store.mu.RUnlock()

	matches := g.store.collect(func(snippet *entities.Snippet) bool {
		return snippet.UserID() == userID &&
			!snippet.ID().Equals(excludeID) &&
			snippet.Type() == snippetType &&
			snippet.CreatedAt().After(after)
	})
	sortByTimestamp(matches, ascending)
	return truncate(matches, limit), nil
}

// QueryByClusterLabel returns snippets sharing a cluster label, newest-first
func (g *GraphStore) QueryByClusterLabel(ctx context.Context, userID string, excludeID valueobjects.SnippetID, label string, limit int) ([]*entities.Snippet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	g.store.mu.RLock()
	defer g.store.mu.RUnlock()

	matches := g.store.collect(func(snippet *entities.Snippet) bool {
		return snippet.UserID() == userID &&
			!snippet.ID().Equals(excludeID) &&
			label != "" &&
			snippet.ClusterLabel() == label
	})
	sortByTimestamp(matches, descending)
	return truncate(matches, limit), nil
}

// QueryByType returns snippets sharing a type, newest-first
func (g *GraphStore) QueryByType(ctx context.Context, userID string, excludeID valueobjects.SnippetID, snippetType entities.SnippetType, limit int) ([]*entities.Snippet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	g.store.mu.RLock()
	defer g.store.mu.RUnlock()

	matches := g.store.collect(func(snippet *entities.Snippet) bool {
		return snippet.UserID() == userID &&
			!snippet.ID().Equals(excludeID) &&
			snippet.Type() == snippetType
	})
	sortByTimestamp(matches, descending)
	return truncate(matches, limit), nil
}

// CountSimilar counts snippets sharing either the cluster label or the type
func (g *GraphStore) CountSimilar(ctx context.Context, userID string, excludeID valueobjects.SnippetID, label string, snippetType entities.SnippetType) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	g.store.mu.RLock()
	defer g.store.mu.RUnlock()

	matches := g.store.collect(func(snippet *entities.Snippet) bool {
		if snippet.UserID() != userID || snippet.ID().Equals(excludeID) {
			return false
		}
		sharesLabel := label != "" && snippet.ClusterLabel() == label
		return sharesLabel || snippet.Type() == snippetType
	})
	return len(matches), nil
}
