package rpc

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recserve/recommend-engine/internal/catalog"
	"github.com/recserve/recommend-engine/internal/observability"
	"github.com/recserve/recommend-engine/internal/recommend"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	corpora, err := catalog.NewSampleProvider().Corpora(context.Background())
	require.NoError(t, err)

	logger := observability.NewLogger(observability.LogConfig{Level: "error"})
	recommender := recommend.New(corpora, recommend.Options{}, logger)
	sessions := recommend.NewSessionManager(time.Hour)

	svc := NewRecommendService(logger, recommender, sessions)
	mux := http.NewServeMux()
	for path, handler := range svc.Handlers() {
		mux.Handle(path, handler)
	}

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestRecommendService_Recommend(t *testing.T) {
	srv := newTestServer(t)
	client := connect.NewClient[RecommendRequest, RecommendResponse](
		srv.Client(), srv.URL+RecommendProcedure)

	resp, err := client.CallUnary(context.Background(), connect.NewRequest(&RecommendRequest{
		Query: "recommend me some action movies",
	}))
	require.NoError(t, err)

	assert.Equal(t, "movies", resp.Msg.Domain)
	assert.NotEmpty(t, resp.Msg.SessionID)
	assert.Len(t, resp.Msg.Items, 3)
	assert.NotEmpty(t, resp.Msg.Formatted)
	assert.Greater(t, resp.Msg.Items[0].Similarity, 0.0)
	for _, item := range resp.Msg.Items {
		assert.NotEmpty(t, item.Title)
	}
}

func TestRecommendService_SessionContinuity(t *testing.T) {
	srv := newTestServer(t)
	client := connect.NewClient[RecommendRequest, RecommendResponse](
		srv.Client(), srv.URL+RecommendProcedure)

	first, err := client.CallUnary(context.Background(), connect.NewRequest(&RecommendRequest{
		Query: "recommend me some movies",
	}))
	require.NoError(t, err)
	require.Len(t, first.Msg.Items, 3)

	second, err := client.CallUnary(context.Background(), connect.NewRequest(&RecommendRequest{
		SessionID: first.Msg.SessionID,
		Query:     "recommend me some movies",
	}))
	require.NoError(t, err)

	assert.Equal(t, first.Msg.SessionID, second.Msg.SessionID)
	seen := make(map[string]struct{})
	for _, item := range first.Msg.Items {
		seen[item.Title] = struct{}{}
	}
	for _, item := range second.Msg.Items {
		_, dup := seen[item.Title]
		assert.False(t, dup, "item %q repeated across requests in one session", item.Title)
	}
}

func TestRecommendService_EmptyQuery(t *testing.T) {
	srv := newTestServer(t)
	client := connect.NewClient[RecommendRequest, RecommendResponse](
		srv.Client(), srv.URL+RecommendProcedure)

	_, err := client.CallUnary(context.Background(), connect.NewRequest(&RecommendRequest{}))
	require.Error(t, err)
	assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))
}

func TestRecommendService_Guidance(t *testing.T) {
	srv := newTestServer(t)
	client := connect.NewClient[RecommendRequest, RecommendResponse](
		srv.Client(), srv.URL+RecommendProcedure)

	resp, err := client.CallUnary(context.Background(), connect.NewRequest(&RecommendRequest{
		Query: "help me with my taxes please",
	}))
	require.NoError(t, err)

	assert.Equal(t, "unknown", resp.Msg.Domain)
	assert.Equal(t, recommend.GuidanceMessage, resp.Msg.Guidance)
	assert.Empty(t, resp.Msg.Items)
}

func TestRecommendService_ListDomains(t *testing.T) {
	srv := newTestServer(t)
	client := connect.NewClient[ListDomainsRequest, ListDomainsResponse](
		srv.Client(), srv.URL+ListDomainsProcedure)

	resp, err := client.CallUnary(context.Background(), connect.NewRequest(&ListDomainsRequest{}))
	require.NoError(t, err)

	require.Len(t, resp.Msg.Domains, 5)
	assert.Equal(t, "movies", resp.Msg.Domains[0].Name)
	assert.Equal(t, "TV shows", resp.Msg.Domains[1].DisplayName)
	for _, d := range resp.Msg.Domains {
		assert.Greater(t, d.Items, 0)
	}
}
