package integration

import (
	"context"
	"testing"

	"threadline-backend/application/commands"
	commandhandlers "threadline-backend/application/commands/handlers"
	"threadline-backend/application/queries"
	queryhandlers "threadline-backend/application/queries/handlers"
	"threadline-backend/application/services"
	domainconfig "threadline-backend/domain/config"
	"threadline-backend/domain/core/aggregates"
	"threadline-backend/domain/core/valueobjects"
	"threadline-backend/infrastructure/messaging/noop"
	"threadline-backend/infrastructure/persistence/memory"
	pkgerrors "threadline-backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testUser = "test-user-123"

// testStack wires the capture and thread-context handlers over the in-memory
// adapter, the same object graph the memory storage driver serves.
type testStack struct {
	create *commandhandlers.CreateSnippetHandler
	link   *commandhandlers.LinkSnippetsHandler
	thread *queryhandlers.GetThreadContextHandler
}

func newTestStack() *testStack {
	logger := zap.NewNop()
	store := memory.NewStore()
	snippetRepo := memory.NewSnippetRepository(store)
	edgeRepo := memory.NewEdgeRepository(store)
	graphStore := memory.NewGraphStore(store)
	publisher := noop.NewPublisher(logger)
	assembler := services.NewThreadAssembler(graphStore, domainconfig.DefaultMotionBudget(), nil, logger)

	return &testStack{
		create: commandhandlers.NewCreateSnippetHandler(snippetRepo, publisher, nil, logger),
		link:   commandhandlers.NewLinkSnippetsHandler(snippetRepo, edgeRepo, publisher, nil, logger),
		thread: queryhandlers.NewGetThreadContextHandler(snippetRepo, assembler, logger),
	}
}

func (s *testStack) capture(t *testing.T, content, snippetType string) string {
	t.Helper()
	result, err := s.create.Handle(context.Background(), commands.CreateSnippetCommand{
		UserID:  testUser,
		Content: content,
		Type:    snippetType,
	})
	require.NoError(t, err)
	return result.SnippetID
}

func (s *testStack) connect(t *testing.T, sourceID, targetID string) {
	t.Helper()
	err := s.link.Handle(context.Background(), commands.LinkSnippetsCommand{
		UserID:   testUser,
		SourceID: sourceID,
		TargetID: targetID,
	})
	require.NoError(t, err)
}

func (s *testStack) threadContext(t *testing.T, snippetID string) *queries.GetThreadContextResult {
	t.Helper()
	result, err := s.thread.Handle(context.Background(), queries.GetThreadContextQuery{
		UserID:    testUser,
		SnippetID: snippetID,
	})
	require.NoError(t, err)
	return result
}

func TestThreadFlow_UnconnectedFocusFallsBackToTemporal(t *testing.T) {
	stack := newTestStack()

	// Ten older snippets, then the focus; nothing is linked
	for i := 0; i < 10; i++ {
		stack.capture(t, "earlier thought", "note")
	}
	focusID := stack.capture(t, "the focus snippet", "note")

	result := stack.threadContext(t, focusID)

	assert.Equal(t, string(aggregates.RelationTemporal), result.Upstream.Relation)
	assert.Len(t, result.Upstream.Nodes, 5)
	assert.True(t, result.Meta.HasMoreUpstream)

	// Nothing is newer, so downstream is the empty goal fallback
	assert.Equal(t, string(aggregates.RelationNextStep), result.Downstream.Relation)
	assert.Empty(t, result.Downstream.Nodes)
	assert.False(t, result.Meta.HasMoreDownstream)
}

func TestThreadFlow_LinkedPrecedentResolvesCausal(t *testing.T) {
	stack := newTestStack()

	precedentID := stack.capture(t, "the parser is getting unwieldy", "note")
	stack.capture(t, "unrelated older thought", "note")
	focusID := stack.capture(t, "refactor the parser", "note")
	stack.connect(t, precedentID, focusID)

	result := stack.threadContext(t, focusID)

	assert.Equal(t, string(aggregates.RelationCausal), result.Upstream.Relation)
	require.Len(t, result.Upstream.Nodes, 1)
	assert.Equal(t, precedentID, result.Upstream.Nodes[0].ID)
}

func TestThreadFlow_LaterGoalsResolveNextStep(t *testing.T) {
	stack := newTestStack()

	focusID := stack.capture(t, "the focus snippet", "note")
	stack.capture(t, "an unrelated later note", "note")
	goalID := stack.capture(t, "ship the refactor", "goal")

	result := stack.threadContext(t, focusID)

	assert.Equal(t, string(aggregates.RelationNextStep), result.Downstream.Relation)
	require.Len(t, result.Downstream.Nodes, 1)
	assert.Equal(t, goalID, result.Downstream.Nodes[0].ID)
	// Truncation is judged against all newer snippets, two here
	assert.False(t, result.Meta.HasMoreDownstream)
}

func TestThreadFlow_SharedTypeLateralWithoutLabels(t *testing.T) {
	stack := newTestStack()

	// Capture assigns no cluster label, so lateral always falls back to type
	goalID := stack.capture(t, "a goal", "goal")
	stack.capture(t, "a note", "note")
	focusID := stack.capture(t, "another goal", "goal")

	result := stack.threadContext(t, focusID)

	assert.Equal(t, aggregates.SimilaritySharedType, result.Lateral.Similarity)
	require.Len(t, result.Lateral.Nodes, 1)
	assert.Equal(t, goalID, result.Lateral.Nodes[0].ID)
}

func TestThreadFlow_UnknownFocusIsNotFound(t *testing.T) {
	stack := newTestStack()
	stack.capture(t, "some snippet", "note")

	_, err := stack.thread.Handle(context.Background(), queries.GetThreadContextQuery{
		UserID:    testUser,
		SnippetID: valueobjects.NewSnippetID().String(),
	})

	require.Error(t, err)
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestThreadFlow_ForeignUserSeesNothing(t *testing.T) {
	stack := newTestStack()
	focusID := stack.capture(t, "private snippet", "note")

	_, err := stack.thread.Handle(context.Background(), queries.GetThreadContextQuery{
		UserID:    "someone-else",
		SnippetID: focusID,
	})

	require.Error(t, err)
	assert.True(t, pkgerrors.IsNotFound(err))
}
