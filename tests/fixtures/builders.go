// Package fixtures provides builders for test entities.
package fixtures

import (
	"fmt"
	"time"

	"threadline-backend/domain/core/entities"
	"threadline-backend/domain/core/valueobjects"
)

// SnippetBuilder helps create test snippets with default values
type SnippetBuilder struct {
	id           valueobjects.SnippetID
	userID       string
	content      string
	snippetType  entities.SnippetType
	clusterLabel string
	createdAt    time.Time
}

func NewSnippetBuilder() *SnippetBuilder {
	return &SnippetBuilder{
		id:          valueobjects.NewSnippetID(),
		userID:      "test-user-123",
		content:     "Test content",
		snippetType: entities.TypeNote,
		createdAt:   time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (b *SnippetBuilder) WithID(id string) *SnippetBuilder {
	b.id, _ = valueobjects.NewSnippetIDFromString(id)
	return b
}

func (b *SnippetBuilder) WithUserID(userID string) *SnippetBuilder {
	b.userID = userID
	return b
}

func (b *SnippetBuilder) WithContent(content string) *SnippetBuilder {
	b.content = content
	return b
}

func (b *SnippetBuilder) WithType(t entities.SnippetType) *SnippetBuilder {
	b.snippetType = t
	return b
}

func (b *SnippetBuilder) WithClusterLabel(label string) *SnippetBuilder {
	b.clusterLabel = label
	return b
}

func (b *SnippetBuilder) WithCreatedAt(ts time.Time) *SnippetBuilder {
	b.createdAt = ts
	return b
}

// CreatedBefore shifts the creation timestamp earlier by the given duration
func (b *SnippetBuilder) CreatedBefore(d time.Duration) *SnippetBuilder {
	b.createdAt = b.createdAt.Add(-d)
	return b
}

// CreatedAfter shifts the creation timestamp later by the given duration
func (b *SnippetBuilder) CreatedAfter(d time.Duration) *SnippetBuilder {
	b.createdAt = b.createdAt.Add(d)
	return b
}

func (b *SnippetBuilder) Build() (*entities.Snippet, error) {
	return entities.ReconstructSnippet(
		b.id,
		b.userID,
		b.content,
		b.snippetType,
		b.clusterLabel,
		b.createdAt,
	)
}

func (b *SnippetBuilder) MustBuild() *entities.Snippet {
	snippet, err := b.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to build test snippet: %v", err))
	}
	return snippet
}
