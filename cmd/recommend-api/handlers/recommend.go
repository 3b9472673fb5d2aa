// Package handlers provides HTTP handlers for the recommendation API.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/recserve/recommend-engine/internal/observability"
	"github.com/recserve/recommend-engine/internal/recommend"
)

// RecommendHandler handles recommendation requests.
type RecommendHandler struct {
	logger      *observability.Logger
	recommender *recommend.Recommender
	sessions    *recommend.SessionManager
}

// NewRecommendHandler creates a new recommendation handler.
func NewRecommendHandler(logger *observability.Logger, recommender *recommend.Recommender, sessions *recommend.SessionManager) *RecommendHandler {
	return &RecommendHandler{
		logger:      logger,
		recommender: recommender,
		sessions:    sessions,
	}
}

// RecommendRequestDTO represents the API request for recommendations.
type RecommendRequestDTO struct {
	SessionID string `json:"sessionId,omitempty"`
	Query     string `json:"query"`
}

// RecommendResponseDTO represents the API response.
type RecommendResponseDTO struct {
	SessionID string    `json:"sessionId"`
	Domain    string    `json:"domain"`
	Guidance  string    `json:"guidance,omitempty"`
	Note      string    `json:"note,omitempty"`
	Similar   bool      `json:"similar"`
	Items     []ItemDTO `json:"items"`
	Formatted string    `json:"formatted"`
}

// ItemDTO represents a single recommended item.
type ItemDTO struct {
	Title       string  `json:"title"`
	Genre       string  `json:"genre,omitempty"`
	Mood        string  `json:"mood,omitempty"`
	Rating      float64 `json:"rating,omitempty"`
	Artist      string  `json:"artist,omitempty"`
	Album       string  `json:"album,omitempty"`
	Author      string  `json:"author,omitempty"`
	Cuisine     string  `json:"cuisine,omitempty"`
	Description string  `json:"description,omitempty"`
	Similarity  float64 `json:"similarityScore"`
}

// DomainDTO describes one servable recommendation domain.
type DomainDTO struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	Items       int    `json:"items"`
}

// Recommend handles POST /recommendations.
func (h *RecommendHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	var reqDTO RecommendRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&reqDTO); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if reqDTO.Query == "" {
		h.writeError(w, http.StatusBadRequest, "query is required", "")
		return
	}

	session := h.sessions.Get(reqDTO.SessionID)
	result := h.recommender.Process(session, reqDTO.Query)

	h.logger.WithSession(session.ID).Info().
		Str("domain", string(result.Domain)).
		Int("items", len(result.Items)).
		Bool("similar", result.Similar).
		Msg("recommendation served")

	respDTO := h.toResponseDTO(result)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(respDTO); err != nil {
		h.logger.Error().Err(err).Msg("Failed to encode response")
	}
}

// Domains handles GET /domains.
func (h *RecommendHandler) Domains(w http.ResponseWriter, r *http.Request) {
	domains := make([]DomainDTO, 0, 5)
	for _, d := range h.recommender.Domains() {
		domains = append(domains, DomainDTO{
			Name:        string(d),
			DisplayName: d.DisplayName(),
			Items:       h.recommender.CorpusSize(d),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string][]DomainDTO{"domains": domains}); err != nil {
		h.logger.Error().Err(err).Msg("Failed to encode response")
	}
}

func (h *RecommendHandler) toResponseDTO(result recommend.Response) RecommendResponseDTO {
	dto := RecommendResponseDTO{
		SessionID: result.SessionID,
		Domain:    string(result.Domain),
		Guidance:  result.Guidance,
		Note:      result.Note,
		Similar:   result.Similar,
		Items:     make([]ItemDTO, 0, len(result.Items)),
		Formatted: result.Formatted,
	}

	for _, si := range result.Items {
		dto.Items = append(dto.Items, ItemDTO{
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

	return dto
}

func (h *RecommendHandler) writeError(w http.ResponseWriter, status int, message, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	resp := map[string]string{
		"error":   message,
		"message": message,
	}
	if detail != "" {
		resp["detail"] = detail
	}
	json.NewEncoder(w).Encode(resp)
}
