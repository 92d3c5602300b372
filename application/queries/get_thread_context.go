package queries

import (
	"errors"
	"time"

	"threadline-backend/domain/core/aggregates"
	"threadline-backend/domain/core/entities"
)

// GetThreadContextQuery requests the hub-and-spoke context around one snippet
type GetThreadContextQuery struct {
	UserID    string `json:"user_id"`
	SnippetID string `json:"snippet_id"`
}

// Validate validates the query
func (q GetThreadContextQuery) Validate() error {
	if q.UserID == "" {
		return errors.New("userID is required")
	}
	if q.SnippetID == "" {
		return errors.New("snippetID is required")
	}
	return nil
}

// SnippetView is the read-model representation of a snippet
type SnippetView struct {
	ID           string    `json:"id"`
	Content      string    `json:"content"`
	Type         string    `json:"type"`
	ClusterLabel string    `json:"cluster_label,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// RelationGroupView is one temporal axis of the thread context
type RelationGroupView struct {
	Relation string        `json:"relation"`
	Nodes    []SnippetView `json:"nodes"`
}

// LateralGroupView is the classification axis of the thread context
type LateralGroupView struct {
	Similarity float64       `json:"similarity"`
	Nodes      []SnippetView `json:"nodes"`
}

// ThreadMetaView carries the build timestamp, the per-axis truncation flags,
// and whichever axes failed to resolve
type ThreadMetaView struct {
	BuiltAt           time.Time         `json:"built_at"`
	HasMoreUpstream   bool              `json:"has_more_upstream"`
	HasMoreDownstream bool              `json:"has_more_downstream"`
	HasMoreLateral    bool              `json:"has_more_lateral"`
	AxisErrors        map[string]string `json:"axis_errors,omitempty"`
}

// GetThreadContextResult is the stable output contract the rendering layer
// depends on: field names and nesting must not change lightly
type GetThreadContextResult struct {
	Focus      SnippetView       `json:"focus"`
	Upstream   RelationGroupView `json:"upstream"`
	Downstream RelationGroupView `json:"downstream"`
	Lateral    LateralGroupView  `json:"lateral"`
	Meta       ThreadMetaView    `json:"meta"`
}

// NewSnippetView maps a snippet entity to its read model
func NewSnippetView(s *entities.Snippet) SnippetView {
	return SnippetView{
		ID:           s.ID().String(),
		Content:      s.Content(),
		Type:         string(s.Type()),
		ClusterLabel: s.ClusterLabel(),
		CreatedAt:    s.CreatedAt(),
	}
}

// NewThreadContextResult maps a built thread context to the output contract
func NewThreadContextResult(tc *aggregates.ThreadContext) *GetThreadContextResult {
	result := &GetThreadContextResult{
		Focus: NewSnippetView(tc.Focus()),
		Upstream: RelationGroupView{
			Relation: string(tc.Upstream().Relation),
			Nodes:    snippetViews(tc.Upstream().Nodes),
		},
		Downstream: RelationGroupView{
			Relation: string(tc.Downstream().Relation),
			Nodes:    snippetViews(tc.Downstream().Nodes),
		},
		Lateral: LateralGroupView{
			Similarity: tc.Lateral().Similarity,
			Nodes:      snippetViews(tc.Lateral().Nodes),
		},
		Meta: ThreadMetaView{
			BuiltAt:           tc.BuiltAt(),
			HasMoreUpstream:   tc.Upstream().HasMore,
			HasMoreDownstream: tc.Downstream().HasMore,
			HasMoreLateral:    tc.Lateral().HasMore,
		},
	}

	if tc.PartialFailure() {
		result.Meta.AxisErrors = make(map[string]string)
		if err := tc.Upstream().Err; err != nil {
			result.Meta.AxisErrors["upstream"] = err.Error()
		}
		if err := tc.Downstream().Err; err != nil {
			result.Meta.AxisErrors["downstream"] = err.Error()
		}
		if err := tc.Lateral().Err; err != nil {
			result.Meta.AxisErrors["lateral"] = err.Error()
		}
	}

	return result
}

func snippetViews(nodes []*entities.Snippet) []SnippetView {
	views := make([]SnippetView, 0, len(nodes))
	for _, node := range nodes {
		views = append(views, NewSnippetView(node))
	}
	return views
}
