package docstore

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MemoryStore is the lexical fallback backend: no embeddings, no persistence.
// Chunks are scored by substring match plus query/chunk word overlap. Entries
// are kept in one insertion-ordered slice so equal scores resolve to the
// earlier-indexed chunk.
type MemoryStore struct {
	mu     sync.RWMutex
	chunks []Chunk
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Add(_ context.Context, file string, chunks []Chunk) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.removeLocked(file)
	for _, c := range chunks {
		c.File = file
		s.chunks = append(s.chunks, c)
	}

	return nil
}

func (s *MemoryStore) Search(_ context.Context, query string, topK int) ([]SearchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q := strings.ToLower(query)
	qWords := wordSet(q)

	var hits []SearchResult
	for _, c := range s.chunks {
		t := strings.ToLower(c.Text)

		score := 0
		if strings.Contains(t, q) {
			score += 10
		}
		for w := range wordSet(t) {
			if _, ok := qWords[w]; ok {
				score++
			}
		}
		if score == 0 {
			continue
		}

		hits = append(hits, SearchResult{
			Text:    c.Text,
			File:    c.File,
			ChunkID: c.ID,
			Score:   float32(score),
		})
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })
	if topK < len(hits) {
		hits = hits[:topK]
	}

	return hits, nil
}

func (s *MemoryStore) Delete(_ context.Context, file string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.removeLocked(file)
	return nil
}

func (s *MemoryStore) List(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{})
	var files []string
	for _, c := range s.chunks {
		if _, ok := seen[c.File]; ok {
			continue
		}
		seen[c.File] = struct{}{}
		files = append(files, c.File)
	}

	sort.Strings(files)
	return files, nil
}

func (s *MemoryStore) Stats(_ context.Context) (Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{})
	for _, c := range s.chunks {
		seen[c.File] = struct{}{}
	}

	return Stats{
		TotalDocuments: len(seen),
		TotalChunks:    len(s.chunks),
	}, nil
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.chunks = nil
	return nil
}

func (s *MemoryStore) removeLocked(file string) {
	kept := s.chunks[:0]
	for _, c := range s.chunks {
		if c.File != file {
			kept = append(kept, c)
		}
	}
	s.chunks = kept
}

func wordSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(text) {
		set[w] = struct{}{}
	}
	return set
}
