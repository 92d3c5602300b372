package memory

import (
	"context"

	"threadline-backend/domain/core/entities"
	"threadline-backend/domain/core/valueobjects"
	pkgerrors "threadline-backend/pkg/errors"
)

// SnippetRepository is the in-memory snippet persistence adapter
type SnippetRepository struct {
	store *Store
}

// NewSnippetRepository creates an in-memory snippet repository
func NewSnippetRepository(store *Store) *SnippetRepository {
	return &SnippetRepository{store: store}
}

// Save persists a snippet
func (r *SnippetRepository) Save(ctx context.Context, snippet *entities.Snippet) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.snippets[snippet.ID().String()] = snippet
	return nil
}

// GetByID retrieves a snippet by its ID
func (r *SnippetRepository) GetByID(ctx context.Context, userID string, id valueobjects.SnippetID) (*entities.Snippet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	snippet, ok := r.store.snippets[id.String()]
	if !ok || snippet.UserID() != userID {
		return nil, pkgerrors.NewNotFoundError("snippet")
	}
	return snippet, nil
}

// GetByUserID retrieves the user's snippets, newest-first
func (r *SnippetRepository) GetByUserID(ctx context.Context, userID string, limit int) ([]*entities.Snippet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	matches := r.store.collect(func(snippet *entities.Snippet) bool {
		return snippet.UserID() == userID
	})
	sortByTimestamp(matches, descending)
	return truncate(matches, limit), nil
}

// Delete removes a snippet
func (r *SnippetRepository) Delete(ctx context.Context, userID string, id valueobjects.SnippetID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	snippet, ok := r.store.snippets[id.String()]
	if !ok || snippet.UserID() != userID {
		return pkgerrors.NewNotFoundError("snippet")
	}
	delete(r.store.snippets, id.String())
	return nil
}
