package store

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/panelspace/panelspace/internal/workspace"
)

// storeContract runs the behavior every Store must share.
func storeContract(t *testing.T, s Store) {
	ctx := context.Background()

	if _, err := s.Load(ctx, "ws_missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load(missing) = %v, want ErrNotFound", err)
	}
	if err := s.Save(ctx, &workspace.Workspace{}); !errors.Is(err, ErrNoID) {
		t.Errorf("Save(no id) = %v, want ErrNoID", err)
	}

	ws := workspace.NewSample("ws_contract_a")
	ws.OwnerID = "user_a"
	if err := s.Save(ctx, ws); err != nil {
		t.Fatal(err)
	}
	firstVersion := ws.Version

	got, err := s.Load(ctx, ws.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Panels) != len(ws.Panels) || got.Panels[1].ParentID != ws.Panels[1].ParentID {
		t.Errorf("loaded panels differ: %d vs %d", len(got.Panels), len(ws.Panels))
	}
	if got.Viewport != ws.Viewport {
		t.Errorf("viewport = %+v, want %+v", got.Viewport, ws.Viewport)
	}

	// Callers own what they load.
	got.Panels[0].X = 12345
	again, _ := s.Load(ctx, ws.ID)
	if again.Panels[0].X == 12345 {
		t.Error("Load returned shared state")
	}

	if err := s.Save(ctx, ws); err != nil {
		t.Fatal(err)
	}
	if ws.Version != firstVersion+1 {
		t.Errorf("version = %d, want %d", ws.Version, firstVersion+1)
	}

	other := workspace.NewEmpty("ws_contract_b", "other")
	other.OwnerID = "user_b"
	if err := s.Save(ctx, other); err != nil {
		t.Fatal(err)
	}

	list, err := s.List(ctx, "user_a")
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].ID != ws.ID || list[0].PanelCount != len(ws.Panels) {
		t.Errorf("List(user_a) = %+v", list)
	}

	if err := s.Delete(ctx, ws.ID); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(ctx, ws.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete = %v", err)
	}
	if err := s.Delete(ctx, other.ID); err != nil {
		t.Fatal(err)
	}
}

func TestMemoryStore(t *testing.T) {
	storeContract(t, NewMemoryStore())
}

func TestMemoryStoreListAll(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	for _, id := range []string{"ws_1", "ws_2"} {
		if err := s.Save(ctx, workspace.NewEmpty(id, id)); err != nil {
			t.Fatal(err)
		}
	}
	list, err := s.List(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 {
		t.Errorf("List(\"\") = %d entries", len(list))
	}
}

func TestPostgresStore(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	pool, err := NewPool(ctx, url)
	if err != nil {
		t.Fatal(err)
	}
	defer pool.Close()

	s := NewPostgresStore(pool)
	if err := s.Migrate(ctx); err != nil {
		t.Fatal(err)
	}
	_, _ = pool.Exec(ctx, `DELETE FROM workspaces WHERE id LIKE 'ws_contract_%'`)
	storeContract(t, s)
}
