package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recserve/recommend-engine/cmd/recommend-api/handlers"
	"github.com/recserve/recommend-engine/internal/catalog"
	"github.com/recserve/recommend-engine/internal/config"
	"github.com/recserve/recommend-engine/internal/observability"
	"github.com/recserve/recommend-engine/internal/recommend"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	corpora, err := catalog.NewSampleProvider().Corpora(context.Background())
	require.NoError(t, err)

	logger := observability.NewLogger(observability.LogConfig{Level: "error"})
	recommender := recommend.New(corpora, recommend.Options{}, logger)
	sessions := recommend.NewSessionManager(time.Hour)

	return NewRouter(logger, config.DefaultConfig(), recommender, sessions)
}

func TestRouter_Health(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}

func TestRouter_Ready(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ready")
}

func TestRouter_Domains(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/domains", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Domains []handlers.DomainDTO `json:"domains"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Domains, 5)
	assert.Equal(t, "movies", body.Domains[0].Name)
	assert.Equal(t, "tv_shows", body.Domains[1].Name)
	assert.Equal(t, "TV shows", body.Domains[1].DisplayName)
}

func TestRouter_Recommendations(t *testing.T) {
	router := newTestRouter(t)

	payload := []byte(`{"query":"recommend me some romantic movies"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/recommendations", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp handlers.RecommendResponseDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "movies", resp.Domain)
	assert.NotEmpty(t, resp.SessionID)
	assert.Len(t, resp.Items, 3)
	assert.NotEmpty(t, resp.Formatted)
}

func TestRouter_RecommendationsSessionReuse(t *testing.T) {
	router := newTestRouter(t)

	post := func(body string) handlers.RecommendResponseDTO {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/recommendations", bytes.NewReader([]byte(body)))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp handlers.RecommendResponseDTO
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		return resp
	}

	first := post(`{"query":"recommend me some movies"}`)
	require.Len(t, first.Items, 3)

	second := post(`{"sessionId":"` + first.SessionID + `","query":"recommend me some movies"}`)
	assert.Equal(t, first.SessionID, second.SessionID)

	seen := make(map[string]struct{})
	for _, item := range first.Items {
		seen[item.Title] = struct{}{}
	}
	for _, item := range second.Items {
		_, dup := seen[item.Title]
		assert.False(t, dup, "item %q repeated across requests in one session", item.Title)
	}
}

func TestRouter_RecommendationsMissingQuery(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/recommendations", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "query is required")
}

func TestRouter_RecommendationsInvalidBody(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/recommendations", bytes.NewReader([]byte(`not json`)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid request body")
}

func TestRouter_CORSPreflight(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/recommendations", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}
