package session

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/panelspace/panelspace/internal/engine"
	"github.com/panelspace/panelspace/internal/workspace"
)

func testWorkspace() *workspace.Workspace {
	ws := workspace.NewEmpty("ws_test", "test")
	ws.Panels = []workspace.Panel{
		{ID: "a", Kind: workspace.KindDataset, Name: "sales.csv", Width: 400, Height: 300},
		{ID: "b", Kind: workspace.KindGraph, Name: "Revenue", X: 500, Width: 400, Height: 300},
	}
	ws.VisiblePanelIDs = []string{"a", "b"}
	return ws
}

func newTestSession() *Session {
	s := NewSession(testWorkspace(), engine.Options{Stacker: engine.NewStacker(engine.DefaultZOrderBase)})
	_, _ = s.Handle(msg(TypeContainerSet, ContainerPayload{Width: 1200, Height: 800}))
	return s
}

func msg(msgType string, payload any) *Message {
	m := newMessage(msgType, payload)
	return m
}

func payloadOf[T any](t *testing.T, m *Message) T {
	t.Helper()
	var p T
	if err := json.Unmarshal(m.Payload, &p); err != nil {
		t.Fatalf("decode %s: %v", m.Type, err)
	}
	return p
}

func types(msgs []*Message) []string {
	out := make([]string, len(msgs))
	for i, m := range msgs {
		out[i] = m.Type
	}
	return out
}

func TestSessionDragProducesGeometryAndFrame(t *testing.T) {
	s := newTestSession()

	down := msg(TypePointerDown, PointerPayload{PanelID: "a", X: 10, Y: 10})
	down.Seq = 7
	replies, err := s.Handle(down)
	if err != nil {
		t.Fatal(err)
	}
	if len(replies) != 1 || replies[0].Type != TypeFrame || replies[0].Seq != 7 {
		t.Fatalf("down replies = %v", types(replies))
	}
	frame := payloadOf[FramePayload](t, replies[0])
	if frame.Gesture != "dragging" || frame.PanelID != "a" {
		t.Errorf("frame gesture = %s %s", frame.Gesture, frame.PanelID)
	}
	if len(frame.Commands) != 2 || frame.Commands[1].PanelID != "a" {
		t.Errorf("clicked panel not painted last: %+v", frame.Commands)
	}

	replies, _ = s.Handle(msg(TypePointerMove, PointerPayload{X: 60, Y: 30}))
	if got := types(replies); len(got) != 2 || got[0] != TypeGeometryUpdate || got[1] != TypeFrame {
		t.Fatalf("move replies = %v", got)
	}
	geo := payloadOf[GeometryPayload](t, replies[0])
	if len(geo.Updates) != 1 || *geo.Updates[0].X != 50 || *geo.Updates[0].Y != 20 {
		t.Errorf("updates = %+v", geo.Updates)
	}

	replies, _ = s.Handle(msg(TypePointerUp, PointerPayload{X: 60, Y: 30}))
	if got := types(replies); len(got) != 1 || got[0] != TypeFrame {
		t.Errorf("up at last position replies = %v", got)
	}
	if f := payloadOf[FramePayload](t, replies[0]); f.Gesture != "idle" {
		t.Errorf("gesture after up = %s", f.Gesture)
	}
}

func TestSessionErrors(t *testing.T) {
	s := newTestSession()

	tests := []struct {
		name string
		msg  *Message
		want error
		code string
	}{
		{"unknown type", msg("panel.teleport", nil), ErrUnknownType, "unknown_type"},
		{"bad payload", &Message{Type: TypePointerDown, Payload: json.RawMessage(`[1,2]`)}, ErrBadPayload, "bad_payload"},
		{"missing panel", msg(TypePointerDown, PointerPayload{PanelID: "zzz"}), engine.ErrPanelNotFound, "not_found"},
		{"bad handle", msg(TypePointerDown, PointerPayload{PanelID: "a", Handle: "up"}), engine.ErrInvalidDirection, "not_allowed"},
		{"zero zoom", msg(TypeViewportZoom, ZoomPayload{Factor: 0}), ErrBadPayload, "bad_payload"},
		{"bad kind", msg(TypePanelAdd, PanelAddPayload{Panel: workspace.Panel{Kind: "video"}}), ErrBadPayload, "bad_payload"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Handle(tt.msg)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			if got := errorCode(err); got != tt.code {
				t.Errorf("code = %s, want %s", got, tt.code)
			}
		})
	}

	_, _ = s.Handle(msg(TypePanelLock, PanelPayload{PanelID: "a"}))
	if _, err := s.Handle(msg(TypePointerDown, PointerPayload{PanelID: "a"})); errorCode(err) != "locked" {
		t.Errorf("locked panel: %v", err)
	}

	_, _ = s.Handle(msg(TypeSearchSet, SearchPayload{Term: "rev"}))
	if _, err := s.Handle(msg(TypeDropRoot, DropPayload{PanelID: "b"})); errorCode(err) != "drag_disabled" {
		t.Errorf("drop during search: %v", err)
	}
}

func TestSessionQueries(t *testing.T) {
	s := newTestSession()

	hit := msg(TypeHitTest, HitPayload{X: 600, Y: 100})
	hit.Seq = 3
	replies, err := s.Handle(hit)
	if err != nil {
		t.Fatal(err)
	}
	if len(replies) != 1 || replies[0].Type != TypeHitResult || replies[0].Seq != 3 {
		t.Fatalf("hit replies = %v", types(replies))
	}
	got := payloadOf[HitResultPayload](t, replies[0])
	if got.PanelID != "b" || got.Screen == nil || got.Screen.X != 500 {
		t.Errorf("hit = %+v", got)
	}

	replies, _ = s.Handle(msg(TypeDocRequest, nil))
	doc := payloadOf[workspace.Workspace](t, replies[0])
	if replies[0].Type != TypeDocSync || len(doc.Panels) != 2 {
		t.Errorf("doc reply = %s with %d panels", replies[0].Type, len(doc.Panels))
	}
}

func TestSessionFolders(t *testing.T) {
	s := newTestSession()

	replies, err := s.Handle(msg(TypeFolderCreate, FolderPayload{Name: "Work"}))
	if err != nil {
		t.Fatal(err)
	}
	if replies[0].Type != TypeFolderCreated {
		t.Fatalf("replies = %v", types(replies))
	}
	folderID := payloadOf[FolderCreatedPayload](t, replies[0]).FolderID

	if _, err := s.Handle(msg(TypeDropFolder, DropPayload{PanelID: "a", FolderID: folderID})); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Handle(msg(TypeFolderDelete, FolderPayload{FolderID: folderID, KeepPanels: true})); err != nil {
		t.Fatal(err)
	}

	ws, _ := s.Snapshot()
	if len(ws.Folders) != 0 || len(ws.Panels) != 2 || ws.Panels[1].ID != "a" || ws.Panels[1].FolderID != "" {
		t.Errorf("after delete keeping panels: %+v", ws.Panels)
	}
}

func TestSessionDirtyTracking(t *testing.T) {
	s := newTestSession()
	if s.Dirty() {
		t.Fatal("fresh session is dirty")
	}

	_, _ = s.Handle(msg(TypePanelFocus, PanelPayload{PanelID: "a"}))
	if !s.Dirty() {
		t.Fatal("focus did not dirty the session")
	}
	snap, rev := s.Snapshot()
	snap.Version = 7
	s.MarkSaved(snap, rev)
	if s.Dirty() {
		t.Error("still dirty after MarkSaved")
	}
	doc := payloadOf[workspace.Workspace](t, s.Document())
	if doc.Version != 7 {
		t.Errorf("doc.sync version = %d, want the saved version 7", doc.Version)
	}
}

func TestSessionBlur(t *testing.T) {
	s := newTestSession()
	_, _ = s.Handle(msg(TypePointerDown, PointerPayload{PanelID: "b", Handle: "se", X: 900, Y: 300}))

	replies, err := s.Handle(msg(TypeWindowBlur, nil))
	if err != nil {
		t.Fatal(err)
	}
	if f := payloadOf[FramePayload](t, replies[len(replies)-1]); f.Gesture != "idle" {
		t.Errorf("gesture after blur = %s", f.Gesture)
	}
	if s.Blur() {
		t.Error("second blur found a gesture")
	}
}
