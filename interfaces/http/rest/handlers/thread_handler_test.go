package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"threadline-backend/application/queries"
	querybus "threadline-backend/application/queries/bus"
	"threadline-backend/pkg/auth"
	"threadline-backend/pkg/common"
	pkgerrors "threadline-backend/pkg/errors"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newThreadTestRouter(t *testing.T, handle func(ctx context.Context, query queries.GetThreadContextQuery) (interface{}, error)) http.Handler {
	t.Helper()

	queryBus := querybus.NewQueryBus()
	err := queryBus.Register(queries.GetThreadContextQuery{}, querybus.QueryHandlerFunc(
		func(ctx context.Context, query querybus.Query) (interface{}, error) {
			return handle(ctx, query.(queries.GetThreadContextQuery))
		},
	))
	require.NoError(t, err)

	handler := NewThreadHandler(queryBus, zap.NewNop())
	router := chi.NewRouter()
	router.Get("/snippets/{snippetID}/thread", handler.GetThreadContext)
	return router
}

func authedRequest(method, target string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	ctx := auth.SetUserInContext(req.Context(), &auth.UserContext{UserID: "user-1"})
	return req.WithContext(ctx)
}

func TestThreadHandler_GetThreadContext(t *testing.T) {
	snippetID := uuid.New().String()
	result := &queries.GetThreadContextResult{
		Focus:    queries.SnippetView{ID: snippetID, Content: "focus", Type: "note"},
		Upstream: queries.RelationGroupView{Relation: "CAUSAL", Nodes: []queries.SnippetView{}},
	}

	var gotQuery queries.GetThreadContextQuery
	router := newThreadTestRouter(t, func(ctx context.Context, query queries.GetThreadContextQuery) (interface{}, error) {
		gotQuery = query
		return result, nil
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodGet, "/snippets/"+snippetID+"/thread"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-1", gotQuery.UserID)
	assert.Equal(t, snippetID, gotQuery.SnippetID)

	var body struct {
		Success bool                           `json:"success"`
		Data    queries.GetThreadContextResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, snippetID, body.Data.Focus.ID)
	assert.Equal(t, "CAUSAL", body.Data.Upstream.Relation)
}

func TestThreadHandler_MalformedSnippetID(t *testing.T) {
	router := newThreadTestRouter(t, func(ctx context.Context, query queries.GetThreadContextQuery) (interface{}, error) {
		t.Fatal("query bus should not be reached")
		return nil, nil
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodGet, "/snippets/not-a-uuid/thread"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestThreadHandler_Unauthenticated(t *testing.T) {
	router := newThreadTestRouter(t, func(ctx context.Context, query queries.GetThreadContextQuery) (interface{}, error) {
		t.Fatal("query bus should not be reached")
		return nil, nil
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/snippets/"+uuid.New().String()+"/thread", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestThreadHandler_FocusNotFound(t *testing.T) {
	snippetID := uuid.New().String()
	router := newThreadTestRouter(t, func(ctx context.Context, query queries.GetThreadContextQuery) (interface{}, error) {
		return nil, pkgerrors.NewFocusNotFoundError(query.SnippetID)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodGet, "/snippets/"+snippetID+"/thread"))

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var body common.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	require.NotNil(t, body.Error)
}
