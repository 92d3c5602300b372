package ports

import (
	"context"

	"threadline-backend/domain/core/entities"
	"threadline-backend/domain/core/valueobjects"
	"threadline-backend/domain/events"
)

// SnippetRepository defines the interface for snippet persistence
// This is a port in hexagonal architecture - the domain doesn't know about the implementation
type SnippetRepository interface {
	// Save persists a snippet
	Save(ctx context.Context, snippet *entities.Snippet) error

	// GetByID retrieves a snippet by its ID
	GetByID(ctx context.Context, userID string, id valueobjects.SnippetID) (*entities.Snippet, error)

	// GetByUserID retrieves the user's snippets, newest-first, limited
	GetByUserID(ctx context.Context, userID string, limit int) ([]*entities.Snippet, error)

	// Delete removes a snippet
	Delete(ctx context.Context, userID string, id valueobjects.SnippetID) error
}

// EdgeRepository defines the interface for edge persistence
type EdgeRepository interface {
	// Save persists an edge
	Save(ctx context.Context, userID string, edge *entities.Edge) error

	// GetBySnippetID retrieves all edges touching a snippet
	GetBySnippetID(ctx context.Context, userID string, id valueobjects.SnippetID) ([]*entities.Edge, error)

	// Delete removes an edge
	Delete(ctx context.Context, userID string, sourceID, targetID valueobjects.SnippetID) error

	// DeleteBySnippetID removes all edges touching a snippet
	DeleteBySnippetID(ctx context.Context, userID string, id valueobjects.SnippetID) error
}

// EventPublisher defines the interface for publishing domain events
type EventPublisher interface {
	// Publish sends a single event
	Publish(ctx context.Context, event events.DomainEvent) error

	// PublishBatch sends multiple events
	PublishBatch(ctx context.Context, events []events.DomainEvent) error
}
