package memory

import (
	"sort"
	"sync"
	"time"

	"threadline-backend/application/ports"
	"threadline-backend/domain/core/entities"
	"threadline-backend/domain/core/valueobjects"
)

// Store holds all in-memory state shared by the repository and graph-store
// adapters in this package. It backs local development and tests; the locking
// discipline is a single RWMutex since every query is a full pass over small
// maps.
type Store struct {
	mu       sync.RWMutex
	snippets map[string]*entities.Snippet // snippetID -> snippet
	edges    map[string]*entities.Edge    // edgeID -> edge
}

// NewStore creates an empty in-memory store
func NewStore() *Store {
	return &Store{
		snippets: make(map[string]*entities.Snippet),
		edges:    make(map[string]*entities.Edge),
	}
}

// Internal helpers; callers hold the lock

func (s *Store) collect(match func(*entities.Snippet) bool) []*entities.Snippet {
	var out []*entities.Snippet
	for _, snippet := range s.snippets {
		if match(snippet) {
			out = append(out, snippet)
		}
	}
	return out
}

func (s *Store) connected(userID string, focusID valueobjects.SnippetID, pivot time.Time, dir ports.TemporalDirection) []*entities.Snippet {
	seen := make(map[string]struct{})
	var out []*entities.Snippet
	for _, edge := range s.edges {
		if !edge.Connects(focusID) {
			continue
		}
		peerID := edge.Other(focusID)
		if _, dup := seen[peerID.String()]; dup {
			continue
		}
		seen[peerID.String()] = struct{}{}

		peer, ok := s.snippets[peerID.String()]
		if !ok || peer.UserID() != userID {
			continue
		}
		if onSide(peer.CreatedAt(), pivot, dir) {
			out = append(out, peer)
		}
	}
	return out
}

const (
	descending = true
	ascending  = false
)

func onSide(ts, pivot time.Time, dir ports.TemporalDirection) bool {
	if dir == ports.Before {
		return ts.Before(pivot)
	}
	return ts.After(pivot)
}

func sortByTimestamp(snippets []*entities.Snippet, newestFirst bool) {
	sort.Slice(snippets, func(i, j int) bool {
		if newestFirst {
			return snippets[i].CreatedAt().After(snippets[j].CreatedAt())
		}
		return snippets[i].CreatedAt().Before(snippets[j].CreatedAt())
	})
}

func truncate(snippets []*entities.Snippet, limit int) []*entities.Snippet {
	if snippets == nil {
		return []*entities.Snippet{}
	}
	if len(snippets) > limit {
		return snippets[:limit]
	}
	return snippets
}
