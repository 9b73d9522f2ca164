package session

import (
	"sync"

	"github.com/panelspace/panelspace/internal/engine"
	"github.com/panelspace/panelspace/internal/workspace"
)

// Session is one client's engine over one workspace. Collaboration is out
// of scope: two sessions on the same workspace do not see each other and
// the last save wins.
type Session struct {
	mu          sync.Mutex
	workspaceID string
	engine      *engine.Engine
	saved       uint64 // revision last persisted
}

func NewSession(ws *workspace.Workspace, opts engine.Options) *Session {
	e := engine.NewEngine(opts)
	e.Load(ws)
	return &Session{workspaceID: ws.ID, engine: e}
}

func (s *Session) WorkspaceID() string { return s.workspaceID }

// Handle applies a client message and returns the replies: the answer to a
// query, or any committed geometry followed by a fresh frame.
func (s *Session) Handle(msg *Message) ([]*Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reply, err := apply(s.engine, msg)
	if err != nil {
		return nil, err
	}

	var out []*Message
	if reply != nil {
		out = append(out, reply)
	}
	if msg.Type == TypeHitTest || msg.Type == TypeDocRequest {
		return withSeq(out, msg.Seq), nil
	}
	if updates := s.engine.TakeUpdates(); len(updates) > 0 {
		out = append(out, newMessage(TypeGeometryUpdate, GeometryPayload{Updates: updates}))
	}
	out = append(out, s.frameLocked())
	return withSeq(out, msg.Seq), nil
}

// Frame returns the current draw commands.
func (s *Session) Frame() *Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frameLocked()
}

func (s *Session) frameLocked() *Message {
	kind, panelID, _ := s.engine.GestureState()
	commands := s.engine.DrawCommands()
	if commands == nil {
		commands = []engine.DrawCommand{}
	}
	return newMessage(TypeFrame, FramePayload{
		Revision: s.engine.Revision(),
		Viewport: s.engine.Viewport(),
		Gesture:  kind.String(),
		PanelID:  panelID,
		Commands: commands,
	})
}

// Document returns the doc.sync message for the current workspace.
func (s *Session) Document() *Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return &Message{Type: TypeDocSync, Payload: []byte(s.engine.GetDocument())}
}

// Blur aborts a gesture whose pointer-up will not arrive.
func (s *Session) Blur() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Blur()
}

// Dirty reports whether the workspace changed since the last MarkSaved.
func (s *Session) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Revision() != s.saved
}

// Snapshot returns a copy of the workspace and the revision it reflects.
func (s *Session) Snapshot() (*workspace.Workspace, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Workspace(), s.engine.Revision()
}

// MarkSaved records that the snapshot taken at revision was persisted as
// saved, and adopts the version the store gave it.
func (s *Session) MarkSaved(saved *workspace.Workspace, revision uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved = revision
	s.engine.SetStored(saved)
}

func withSeq(msgs []*Message, seq int64) []*Message {
	for _, m := range msgs {
		m.Seq = seq
	}
	return msgs
}
