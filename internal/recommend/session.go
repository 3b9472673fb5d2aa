package recommend

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/recserve/recommend-engine/internal/catalog"
)

// noiseFloor is the minimum similarity a candidate needs to count as a real
// match on the first retrieval pass.
const defaultNoiseFloor = 0.05

// ScoredItem is a catalog item paired with its query similarity.
type ScoredItem struct {
	Item       catalog.Item
	Similarity float64
}

// Session tracks which items one user has already been shown, per domain.
// The shown sets only grow; an item surfaced once is never surfaced again to
// the same session, which is what lets repeated identical queries walk
// through the whole catalog.
type Session struct {
	ID string

	mu         sync.Mutex
	shown      map[catalog.Domain]map[string]struct{}
	lastActive time.Time
}

func newSession(id string) *Session {
	return &Session{
		ID:         id,
		shown:      make(map[catalog.Domain]map[string]struct{}),
		lastActive: time.Now(),
	}
}

// ShownCount returns how many items this session has seen in a domain.
func (s *Session) ShownCount(domain catalog.Domain) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.shown[domain])
}

// Retrieve returns up to limit items from the index ranked by similarity to
// query, skipping anything this session has already been shown. Two passes:
// the first honors the noise floor, the second ignores it to fill remaining
// slots, so a session only comes back empty once the catalog is exhausted.
// Returned items are marked shown immediately. A floor <= 0 falls back to
// the default.
func (s *Session) Retrieve(idx *VectorSpaceIndex, corpus *catalog.Corpus, query string, limit int, floor float64) []ScoredItem {
	if limit <= 0 || corpus.Len() == 0 {
		return nil
	}
	if floor <= 0 {
		floor = defaultNoiseFloor
	}

	scores := idx.Score(query)
	order := rankByScore(scores)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = time.Now()

	domain := corpus.Domain
	shown := s.shown[domain]
	if shown == nil {
		shown = make(map[string]struct{})
		s.shown[domain] = shown
	}

	results := make([]ScoredItem, 0, limit)
	accept := func(i int) {
		item := corpus.Items[i]
		results = append(results, ScoredItem{Item: item, Similarity: scores[i]})
		shown[item.Title] = struct{}{}
	}

	for _, i := range order {
		if len(results) >= limit {
			break
		}
		if scores[i] < floor {
			continue
		}
		if _, seen := shown[corpus.Items[i].Title]; seen {
			continue
		}
		accept(i)
	}

	if len(results) < limit {
		for _, i := range order {
			if len(results) >= limit {
				break
			}
			if _, seen := shown[corpus.Items[i].Title]; seen {
				continue
			}
			accept(i)
		}
	}
	return results
}

// rankByScore returns item indices sorted by non-increasing score, with
// catalog order breaking ties.
func rankByScore(scores []float64) []int {
	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})
	return order
}

// SessionManager hands out per-user sessions keyed by ID. Unknown or empty
// IDs get a fresh session with a generated UUID. State lives in memory only
// and does not survive a restart.
type SessionManager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	maxIdle  time.Duration
}

// NewSessionManager creates a manager that forgets sessions idle longer
// than maxIdle. Zero disables expiry.
func NewSessionManager(maxIdle time.Duration) *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*Session),
		maxIdle:  maxIdle,
	}
}

// Get returns the session for id, creating one when id is empty or unknown.
func (m *SessionManager) Get(id string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if id != "" {
		if s, ok := m.sessions[id]; ok {
			return s
		}
	}
	if id == "" {
		id = uuid.NewString()
	}
	s := newSession(id)
	m.sessions[id] = s
	return s
}

// Len returns the number of live sessions.
func (m *SessionManager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Sweep drops sessions idle longer than the configured max and returns how
// many were removed. Callers run this on a timer.
func (m *SessionManager) Sweep() int {
	if m.maxIdle <= 0 {
		return 0
	}
	cutoff := time.Now().Add(-m.maxIdle)

	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for id, s := range m.sessions {
		s.mu.Lock()
		idle := s.lastActive.Before(cutoff)
		s.mu.Unlock()
		if idle {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}
