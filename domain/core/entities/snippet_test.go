package entities

import (
	"strings"
	"testing"

	"threadline-backend/domain/core/valueobjects"
	pkgerrors "threadline-backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSnippet(t *testing.T) {
	t.Run("captures a note with an event", func(t *testing.T) {
		snippet, err := NewSnippet("user-1", "  remember to water the plants  ", TypeNote)

		require.NoError(t, err)
		assert.False(t, snippet.ID().IsZero())
		assert.Equal(t, "remember to water the plants", snippet.Content())
		assert.Equal(t, TypeNote, snippet.Type())
		assert.False(t, snippet.HasClusterLabel())
		assert.Len(t, snippet.GetUncommittedEvents(), 1)
	})

	t.Run("defaults empty type to note", func(t *testing.T) {
		snippet, err := NewSnippet("user-1", "content", "")

		require.NoError(t, err)
		assert.Equal(t, TypeNote, snippet.Type())
	})

	t.Run("rejects unknown type", func(t *testing.T) {
		_, err := NewSnippet("user-1", "content", "reminder")

		require.Error(t, err)
		assert.True(t, pkgerrors.IsValidation(err))
	})

	t.Run("rejects missing user", func(t *testing.T) {
		_, err := NewSnippet("", "content", TypeNote)

		require.Error(t, err)
		assert.True(t, pkgerrors.IsValidation(err))
	})

	t.Run("rejects whitespace-only content", func(t *testing.T) {
		_, err := NewSnippet("user-1", "   \n\t  ", TypeNote)

		require.Error(t, err)
		assert.True(t, pkgerrors.IsValidation(err))
	})

	t.Run("rejects content over the maximum length", func(t *testing.T) {
		_, err := NewSnippet("user-1", strings.Repeat("x", 10001), TypeNote)

		require.Error(t, err)
		assert.True(t, pkgerrors.IsValidation(err))
	})

	t.Run("counts runes not bytes", func(t *testing.T) {
		// 10000 multi-byte runes is still within the limit
		snippet, err := NewSnippet("user-1", strings.Repeat("ü", 10000), TypeNote)

		require.NoError(t, err)
		assert.NotNil(t, snippet)
	})
}

func TestNewSnippetWithID(t *testing.T) {
	t.Run("uses the supplied identifier", func(t *testing.T) {
		id := valueobjects.NewSnippetID()

		snippet, err := NewSnippetWithID(id, "user-1", "content", TypeGoal)

		require.NoError(t, err)
		assert.True(t, snippet.ID().Equals(id))
	})

	t.Run("rejects a zero identifier", func(t *testing.T) {
		_, err := NewSnippetWithID(valueobjects.SnippetID{}, "user-1", "content", TypeNote)

		require.Error(t, err)
		assert.True(t, pkgerrors.IsValidation(err))
	})
}

func TestSnippet_MarkEventsAsCommitted(t *testing.T) {
	snippet, err := NewSnippet("user-1", "content", TypeNote)
	require.NoError(t, err)
	require.NotEmpty(t, snippet.GetUncommittedEvents())

	snippet.MarkEventsAsCommitted()

	assert.Empty(t, snippet.GetUncommittedEvents())
}

func TestReconstructSnippet(t *testing.T) {
	original, err := NewSnippet("user-1", "content", TypeNote)
	require.NoError(t, err)

	restored, err := ReconstructSnippet(
		original.ID(),
		original.UserID(),
		original.Content(),
		original.Type(),
		"productivity",
		original.CreatedAt(),
	)

	require.NoError(t, err)
	assert.True(t, restored.ID().Equals(original.ID()))
	assert.Equal(t, "productivity", restored.ClusterLabel())
	assert.True(t, restored.HasClusterLabel())
	// Reconstruction replays state, it does not re-capture
	assert.Empty(t, restored.GetUncommittedEvents())
}
