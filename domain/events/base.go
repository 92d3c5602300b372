package events

import (
	"time"

	"threadline-backend/domain/core/valueobjects"
)

// DomainEvent is the base interface for all domain events
// Events represent something that has happened in the past
type DomainEvent interface {
	GetAggregateID() string
	GetEventType() string
	GetTimestamp() time.Time
	GetVersion() int
}

// BaseEvent provides common event fields
type BaseEvent struct {
	AggregateID string    `json:"aggregate_id"`
	EventType   string    `json:"event_type"`
	Timestamp   time.Time `json:"timestamp"`
	Version     int       `json:"version"`
}

func (e BaseEvent) GetAggregateID() string  { return e.AggregateID }
func (e BaseEvent) GetEventType() string    { return e.EventType }
func (e BaseEvent) GetTimestamp() time.Time { return e.Timestamp }
func (e BaseEvent) GetVersion() int         { return e.Version }

// SnippetCaptured is raised when a new snippet is captured. The clustering
// pipeline subscribes to this event to classify the snippet.
type SnippetCaptured struct {
	BaseEvent
	SnippetID   valueobjects.SnippetID `json:"snippet_id"`
	UserID      string                 `json:"user_id"`
	SnippetType string                 `json:"snippet_type"`
}

// NewSnippetCaptured creates a SnippetCaptured event
func NewSnippetCaptured(snippetID valueobjects.SnippetID, userID, snippetType string, timestamp time.Time) SnippetCaptured {
	return SnippetCaptured{
		BaseEvent: BaseEvent{
			AggregateID: snippetID.String(),
			EventType:   "snippet.captured",
			Timestamp:   timestamp,
			Version:     1,
		},
		SnippetID:   snippetID,
		UserID:      userID,
		SnippetType: snippetType,
	}
}

// SnippetsLinked is raised when an edge is created between two snippets
type SnippetsLinked struct {
	BaseEvent
	SourceID valueobjects.SnippetID `json:"source_id"`
	TargetID valueobjects.SnippetID `json:"target_id"`
	UserID   string                 `json:"user_id"`
}

// NewSnippetsLinked creates a SnippetsLinked event
func NewSnippetsLinked(sourceID, targetID valueobjects.SnippetID, userID string, timestamp time.Time) SnippetsLinked {
	return SnippetsLinked{
		BaseEvent: BaseEvent{
			AggregateID: sourceID.String(),
			EventType:   "snippet.linked",
			Timestamp:   timestamp,
			Version:     1,
		},
		SourceID: sourceID,
		TargetID: targetID,
		UserID:   userID,
	}
}

// SnippetDeleted is raised when a snippet is removed by its owner
type SnippetDeleted struct {
	BaseEvent
	SnippetID valueobjects.SnippetID `json:"snippet_id"`
	UserID    string                 `json:"user_id"`
}

// NewSnippetDeleted creates a SnippetDeleted event
func NewSnippetDeleted(snippetID valueobjects.SnippetID, userID string, timestamp time.Time) SnippetDeleted {
	return SnippetDeleted{
		BaseEvent: BaseEvent{
			AggregateID: snippetID.String(),
			EventType:   "snippet.deleted",
			Timestamp:   timestamp,
			Version:     1,
		},
		SnippetID: snippetID,
		UserID:    userID,
	}
}
