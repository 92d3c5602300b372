package memory

import (
	"context"

	"threadline-backend/domain/core/entities"
	"threadline-backend/domain/core/valueobjects"
	pkgerrors "threadline-backend/pkg/errors"
)

// EdgeRepository is the in-memory edge persistence adapter
type EdgeRepository struct {
	store *Store
}

// NewEdgeRepository creates an in-memory edge repository
func NewEdgeRepository(store *Store) *EdgeRepository {
	return &EdgeRepository{store: store}
}

// Save persists an edge
func (r *EdgeRepository) Save(ctx context.Context, userID string, edge *entities.Edge) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.edges[edge.ID] = edge
	return nil
}

// GetBySnippetID retrieves all edges touching a snippet
func (r *EdgeRepository) GetBySnippetID(ctx context.Context, userID string, id valueobjects.SnippetID) ([]*entities.Edge, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var edges []*entities.Edge
	for _, edge := range r.store.edges {
		if edge.Connects(id) {
			edges = append(edges, edge)
		}
	}
	return edges, nil
}

// Delete removes the edge between two snippets
func (r *EdgeRepository) Delete(ctx context.Context, userID string, sourceID, targetID valueobjects.SnippetID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for id, edge := range r.store.edges {
		if edge.Connects(sourceID) && edge.Connects(targetID) {
			delete(r.store.edges, id)
			return nil
		}
	}
	return pkgerrors.NewNotFoundError("edge")
}

// DeleteBySnippetID removes all edges touching a snippet
func (r *EdgeRepository) DeleteBySnippetID(ctx context.Context, userID string, id valueobjects.SnippetID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for edgeID, edge := range r.store.edges {
		if edge.Connects(id) {
			delete(r.store.edges, edgeID)
		}
	}
	return nil
}
