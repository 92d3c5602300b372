package entities

import (
	"time"

	"threadline-backend/domain/config"
	"threadline-backend/domain/core/valueobjects"
	pkgerrors "threadline-backend/pkg/errors"
)

// Edge is an unordered structural link between two snippets. No direction is
// enforced here: the upstream/downstream axes infer direction from the
// timestamps of the endpoints, not from which field is source vs target.
type Edge struct {
	ID        string
	SourceID  valueobjects.SnippetID
	TargetID  valueobjects.SnippetID
	CreatedAt time.Time
}

// NewEdge creates a link between two snippets with validation
func NewEdge(sourceID, targetID valueobjects.SnippetID) (*Edge, error) {
	return NewEdgeWithConfig(sourceID, targetID, config.DefaultDomainConfig())
}

// NewEdgeWithConfig creates a link between two snippets with configuration
func NewEdgeWithConfig(sourceID, targetID valueobjects.SnippetID, cfg *config.DomainConfig) (*Edge, error) {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}

	if sourceID.IsZero() || targetID.IsZero() {
		return nil, pkgerrors.NewValidationError("edge endpoints cannot be empty")
	}

	if !cfg.AllowSelfLinks && sourceID.Equals(targetID) {
		return nil, pkgerrors.NewValidationError("cannot link snippet to itself")
	}

	return &Edge{
		ID:        valueobjects.NewSnippetID().String(),
		SourceID:  sourceID,
		TargetID:  targetID,
		CreatedAt: time.Now(),
	}, nil
}

// Connects reports whether the edge touches the given snippet
func (e *Edge) Connects(id valueobjects.SnippetID) bool {
	return e.SourceID.Equals(id) || e.TargetID.Equals(id)
}

// Other returns the endpoint opposite to the given snippet
func (e *Edge) Other(id valueobjects.SnippetID) valueobjects.SnippetID {
	if e.SourceID.Equals(id) {
		return e.TargetID
	}
	return e.SourceID
}
