package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/panelspace/panelspace/internal/workspace"
)

// MemoryStore keeps snapshots as JSON in process memory. Each Load decodes
// a fresh copy, so callers never share state through the store.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string][]byte)}
}

func (s *MemoryStore) Load(ctx context.Context, id string) (*workspace.Workspace, error) {
	s.mu.RLock()
	data, ok := s.docs[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	var ws workspace.Workspace
	if err := json.Unmarshal(data, &ws); err != nil {
		return nil, fmt.Errorf("decode workspace %s: %w", id, err)
	}
	return &ws, nil
}

func (s *MemoryStore) Save(ctx context.Context, ws *workspace.Workspace) error {
	if ws.ID == "" {
		return ErrNoID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC().Format(time.RFC3339)
	snap := ws.Clone()
	snap.UpdatedAt = now
	snap.Version = 1
	if prev, ok := s.docs[ws.ID]; ok {
		var old workspace.Workspace
		if err := json.Unmarshal(prev, &old); err == nil {
			snap.Version = old.Version + 1
			snap.CreatedAt = old.CreatedAt
		}
	}
	if snap.CreatedAt == "" {
		snap.CreatedAt = now
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode workspace %s: %w", ws.ID, err)
	}
	s.docs[ws.ID] = data
	ws.Version, ws.CreatedAt, ws.UpdatedAt = snap.Version, snap.CreatedAt, snap.UpdatedAt
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[id]; !ok {
		return ErrNotFound
	}
	delete(s.docs, id)
	return nil
}

// List returns the owner's workspaces, most recently updated first. An empty
// ownerID lists everything.
func (s *MemoryStore) List(ctx context.Context, ownerID string) ([]Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []Summary{}
	for id, data := range s.docs {
		var ws workspace.Workspace
		if err := json.Unmarshal(data, &ws); err != nil {
			return nil, fmt.Errorf("decode workspace %s: %w", id, err)
		}
		if ownerID != "" && ws.OwnerID != ownerID {
			continue
		}
		out = append(out, summarize(&ws))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].UpdatedAt != out[j].UpdatedAt {
			return out[i].UpdatedAt > out[j].UpdatedAt
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}
