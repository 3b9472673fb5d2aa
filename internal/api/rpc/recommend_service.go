// Package rpc provides Connect service implementations for the
// recommendation engine.
package rpc

import (
	"context"
	"errors"
	"net/http"

	"connectrpc.com/connect"

	"github.com/recserve/recommend-engine/internal/catalog"
	"github.com/recserve/recommend-engine/internal/observability"
	"github.com/recserve/recommend-engine/internal/recommend"
)

// Procedure paths for mounting the service handlers on an HTTP mux.
const (
	RecommendProcedure   = "/recommend.v1.RecommendService/Recommend"
	ListDomainsProcedure = "/recommend.v1.RecommendService/ListDomains"
)

// RecommendService implements the Connect recommendation service.
type RecommendService struct {
	logger      *observability.Logger
	recommender *recommend.Recommender
	sessions    *recommend.SessionManager
}

// NewRecommendService creates a new recommendation service.
func NewRecommendService(logger *observability.Logger, recommender *recommend.Recommender, sessions *recommend.SessionManager) *RecommendService {
	return &RecommendService{
		logger:      logger,
		recommender: recommender,
		sessions:    sessions,
	}
}

// RecommendRequest represents the Connect request message.
type RecommendRequest struct {
	SessionID string `json:"session_id,omitempty"`
	Query     string `json:"query"`
}

// RecommendResponse represents the Connect response message.
type RecommendResponse struct {
	SessionID string             `json:"session_id"`
	Domain    string             `json:"domain"`
	Guidance  string             `json:"guidance,omitempty"`
	Note      string             `json:"note,omitempty"`
	Similar   bool               `json:"similar,omitempty"`
	Items     []*RecommendedItem `json:"items"`
	Formatted string             `json:"formatted"`
}

// RecommendedItem represents one scored catalog item in Connect.
type RecommendedItem struct {
	Title       string  `json:"title"`
	Genre       string  `json:"genre,omitempty"`
	Mood        string  `json:"mood,omitempty"`
	Rating      float64 `json:"rating,omitempty"`
	Artist      string  `json:"artist,omitempty"`
	Album       string  `json:"album,omitempty"`
	Author      string  `json:"author,omitempty"`
	Cuisine     string  `json:"cuisine,omitempty"`
	Description string  `json:"description,omitempty"`
	Similarity  float64 `json:"similarity"`
}

// ListDomainsRequest represents the Connect domain listing request.
type ListDomainsRequest struct{}

// ListDomainsResponse represents the Connect domain listing response.
type ListDomainsResponse struct {
	Domains []*DomainInfo `json:"domains"`
}

// DomainInfo describes one servable domain.
type DomainInfo struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Items       int    `json:"items"`
}

// Recommend handles Connect recommendation queries.
func (s *RecommendService) Recommend(ctx context.Context, req *connect.Request[RecommendRequest]) (*connect.Response[RecommendResponse], error) {
	msg := req.Msg

	if msg.Query == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("query is required"))
	}

	session := s.sessions.Get(msg.SessionID)
	result := s.recommender.Process(session, msg.Query)

	s.logger.WithSession(session.ID).Info().
		Str("domain", string(result.Domain)).
		Int("items", len(result.Items)).
		Bool("similar", result.Similar).
		Msg("rpc recommendation served")

	return connect.NewResponse(toRPCResponse(result)), nil
}

// ListDomains handles Connect domain listing queries.
func (s *RecommendService) ListDomains(ctx context.Context, req *connect.Request[ListDomainsRequest]) (*connect.Response[ListDomainsResponse], error) {
	resp := &ListDomainsResponse{Domains: make([]*DomainInfo, 0, len(catalog.Domains))}
	for _, d := range s.recommender.Domains() {
		resp.Domains = append(resp.Domains, &DomainInfo{
			Name:        string(d),
			DisplayName: d.DisplayName(),
			Items:       s.recommender.CorpusSize(d),
		})
	}
	return connect.NewResponse(resp), nil
}

func toRPCResponse(result recommend.Response) *RecommendResponse {
	resp := &RecommendResponse{
		SessionID: result.SessionID,
		Domain:    string(result.Domain),
		Guidance:  result.Guidance,
		Note:      result.Note,
		Similar:   result.Similar,
		Items:     make([]*RecommendedItem, 0, len(result.Items)),
		Formatted: result.Formatted,
	}
	for _, si := range result.Items {
		resp.Items = append(resp.Items, &RecommendedItem{
			Title:       si.Item.Title,
			Genre:       si.Item.Genre,
			Mood:        si.Item.Mood,
			Rating:      si.Item.Rating,
			Artist:      si.Item.Artist,
			Album:       si.Item.Album,
			Author:      si.Item.Author,
			Cuisine:     si.Item.Cuisine,
			Description: si.Item.Description,
			Similarity:  si.Similarity,
		})
	}
	return resp
}

// Handlers returns the Connect HTTP handlers keyed by procedure path, ready
// to mount on any mux.
func (s *RecommendService) Handlers() map[string]http.Handler {
	return map[string]http.Handler{
		RecommendProcedure:   connect.NewUnaryHandler(RecommendProcedure, s.Recommend),
		ListDomainsProcedure: connect.NewUnaryHandler(ListDomainsProcedure, s.ListDomains),
	}
}
