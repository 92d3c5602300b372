package aggregates

import (
	"errors"
	"testing"

	"threadline-backend/domain/core/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureSnippet(t *testing.T, content string) *entities.Snippet {
	t.Helper()
	snippet, err := entities.NewSnippet("user-1", content, entities.TypeNote)
	require.NoError(t, err)
	return snippet
}

func TestNewThreadContext(t *testing.T) {
	focus := captureSnippet(t, "focus")
	precedent := captureSnippet(t, "precedent")

	tc := NewThreadContext(focus,
		RelationGroup{Relation: RelationCausal, Nodes: []*entities.Snippet{precedent}},
		RelationGroup{Relation: RelationNextStep, Nodes: []*entities.Snippet{}},
		LateralGroup{Similarity: SimilaritySharedType, Nodes: []*entities.Snippet{}},
	)

	assert.True(t, tc.Focus().ID().Equals(focus.ID()))
	assert.Equal(t, RelationCausal, tc.Upstream().Relation)
	require.Len(t, tc.Upstream().Nodes, 1)
	assert.Equal(t, RelationNextStep, tc.Downstream().Relation)
	assert.Equal(t, SimilaritySharedType, tc.Lateral().Similarity)
	assert.False(t, tc.BuiltAt().IsZero())
	assert.False(t, tc.PartialFailure())
}

func TestThreadContext_PartialFailure(t *testing.T) {
	focus := captureSnippet(t, "focus")
	axisErr := errors.New("axis failed")

	cases := []struct {
		name       string
		upstream   RelationGroup
		downstream RelationGroup
		lateral    LateralGroup
		want       bool
	}{
		{"all healthy", RelationGroup{}, RelationGroup{}, LateralGroup{}, false},
		{"upstream failed", RelationGroup{Err: axisErr}, RelationGroup{}, LateralGroup{}, true},
		{"downstream failed", RelationGroup{}, RelationGroup{Err: axisErr}, LateralGroup{}, true},
		{"lateral failed", RelationGroup{}, RelationGroup{}, LateralGroup{Err: axisErr}, true},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			tc := NewThreadContext(focus, tt.upstream, tt.downstream, tt.lateral)
			assert.Equal(t, tt.want, tc.PartialFailure())
		})
	}
}
