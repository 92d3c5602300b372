package entities

import (
	"strings"
	"time"
	"unicode/utf8"

	"threadline-backend/domain/config"
	"threadline-backend/domain/core/valueobjects"
	"threadline-backend/domain/events"
	pkgerrors "threadline-backend/pkg/errors"
)

// SnippetType distinguishes ordinary notes from goals. Goals are the
// distinguished type the downstream fallback narrows to.
type SnippetType string

const (
	TypeNote SnippetType = "note"
	TypeGoal SnippetType = "goal"
)

// Snippet is an immutable captured thought. Once captured it is never
// updated; the creation timestamp is the sole ordering key for the
// upstream/downstream axes.
type Snippet struct {
	// Private fields ensure encapsulation
	id           valueobjects.SnippetID
	userID       string
	content      string
	snippetType  SnippetType
	clusterLabel string // assigned by the external classifier, may be empty
	createdAt    time.Time

	// Domain events that occurred during this aggregate's lifetime
	events []events.DomainEvent
}

// NewSnippet captures a new snippet with business rule validation
func NewSnippet(userID, content string, snippetType SnippetType) (*Snippet, error) {
	return NewSnippetWithConfig(userID, content, snippetType, config.DefaultDomainConfig())
}

// NewSnippetWithID captures a new snippet under a caller-supplied identifier.
// The HTTP layer pre-generates the ID so it can respond with it immediately.
func NewSnippetWithID(id valueobjects.SnippetID, userID, content string, snippetType SnippetType) (*Snippet, error) {
	return newSnippet(id, userID, content, snippetType, config.DefaultDomainConfig())
}

// NewSnippetWithConfig captures a new snippet with validation and configuration
func NewSnippetWithConfig(userID, content string, snippetType SnippetType, cfg *config.DomainConfig) (*Snippet, error) {
	return newSnippet(valueobjects.NewSnippetID(), userID, content, snippetType, cfg)
}

func newSnippet(id valueobjects.SnippetID, userID, content string, snippetType SnippetType, cfg *config.DomainConfig) (*Snippet, error) {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}

	if id.IsZero() {
		return nil, pkgerrors.NewValidationError("snippet ID cannot be empty")
	}

	if userID == "" {
		return nil, pkgerrors.NewValidationError("userID cannot be empty")
	}

	content = strings.TrimSpace(content)
	length := utf8.RuneCountInString(content)
	if length < cfg.MinContentLength {
		return nil, pkgerrors.NewValidationError("content cannot be empty")
	}
	if length > cfg.MaxContentLength {
		return nil, pkgerrors.NewValidationError("content exceeds maximum length")
	}

	if snippetType == "" {
		snippetType = TypeNote
	}
	if snippetType != TypeNote && snippetType != TypeGoal {
		return nil, pkgerrors.NewValidationError("unknown snippet type")
	}

	now := time.Now()
	snippet := &Snippet{
		id:          id,
		userID:      userID,
		content:     content,
		snippetType: snippetType,
		createdAt:   now,
		events:      []events.DomainEvent{},
	}

	snippet.addEvent(events.NewSnippetCaptured(
		snippet.id,
		userID,
		string(snippetType),
		now,
	))

	return snippet, nil
}

// ReconstructSnippet reconstructs a snippet from repository data with the
// preserved timestamp and cluster label
func ReconstructSnippet(
	id valueobjects.SnippetID,
	userID string,
	content string,
	snippetType SnippetType,
	clusterLabel string,
	createdAt time.Time,
) (*Snippet, error) {
	if userID == "" {
		return nil, pkgerrors.NewValidationError("userID cannot be empty")
	}
	if content == "" {
		return nil, pkgerrors.NewValidationError("content cannot be empty")
	}

	return &Snippet{
		id:           id,
		userID:       userID,
		content:      content,
		snippetType:  snippetType,
		clusterLabel: clusterLabel,
		createdAt:    createdAt,
		events:       []events.DomainEvent{},
	}, nil
}

// ID returns the snippet's unique identifier
func (s *Snippet) ID() valueobjects.SnippetID {
	return s.id
}

// UserID returns the owner's ID
func (s *Snippet) UserID() string {
	return s.userID
}

// Content returns the captured text
func (s *Snippet) Content() string {
	return s.content
}

// Type returns the snippet type
func (s *Snippet) Type() SnippetType {
	return s.snippetType
}

// ClusterLabel returns the classifier-assigned label, empty when the
// snippet has not been classified yet
func (s *Snippet) ClusterLabel() string {
	return s.clusterLabel
}

// HasClusterLabel reports whether the external classifier has tagged this snippet
func (s *Snippet) HasClusterLabel() bool {
	return s.clusterLabel != ""
}

// CreatedAt returns when the snippet was captured
func (s *Snippet) CreatedAt() time.Time {
	return s.createdAt
}

// GetUncommittedEvents returns all uncommitted domain events
func (s *Snippet) GetUncommittedEvents() []events.DomainEvent {
	return s.events
}

// MarkEventsAsCommitted clears the uncommitted events
func (s *Snippet) MarkEventsAsCommitted() {
	s.events = []events.DomainEvent{}
}

// addEvent adds a domain event to the uncommitted list
func (s *Snippet) addEvent(event events.DomainEvent) {
	s.events = append(s.events, event)
}
