package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/panelspace/panelspace/internal/store"
)

const saveTimeout = 10 * time.Second

// Hub tracks connected clients and persists their sessions: debounced after
// edits, on disconnect, and for everyone still connected at shutdown.
type Hub struct {
	mu            sync.RWMutex
	clients       map[string]*Client // clientID -> client
	register      chan *Client
	unregister    chan *Client
	done          chan struct{}
	store         store.Store
	autosaveDelay time.Duration
}

func NewHub(st store.Store, autosaveDelay time.Duration) *Hub {
	return &Hub{
		clients:       make(map[string]*Client),
		register:      make(chan *Client),
		unregister:    make(chan *Client),
		done:          make(chan struct{}),
		store:         st,
		autosaveDelay: autosaveDelay,
	}
}

// Run serves registrations until ctx is cancelled, then saves every
// connected session.
func (h *Hub) Run(ctx context.Context) error {
	defer close(h.done)
	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case <-ctx.Done():
			h.flushAll()
			return nil
		}
	}
}

func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	h.clients[client.ClientID] = client
	h.mu.Unlock()

	client.Send(newMessage(TypeWelcome, WelcomePayload{
		ClientID:    client.ClientID,
		WorkspaceID: client.WorkspaceID(),
	}))
	client.Send(client.session.Document())
	client.Send(client.session.Frame())

	slog.Info("client joined", "user", client.UserID, "workspace", client.WorkspaceID())
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	if _, ok := h.clients[client.ClientID]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.clients, client.ClientID)
	close(client.send)
	h.mu.Unlock()

	// The socket is gone, so any pointer-up is lost with it.
	client.autosave.Cancel()
	if client.session.Blur() {
		slog.Debug("gesture aborted on disconnect", "client", client.ClientID)
	}
	h.save(client)

	slog.Info("client left", "user", client.UserID, "workspace", client.WorkspaceID())
}

func (h *Hub) flushAll() {
	h.mu.RLock()
	clients := make([]*Client, 0, len(h.clients))
	for _, c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	slog.Info("saving open workspaces", "count", len(clients))
	for _, c := range clients {
		c.autosave.Cancel()
		c.session.Blur()
		h.save(c)
	}
}

func (h *Hub) handleMessage(sender *Client, msg *Message) {
	replies, err := sender.session.Handle(msg)
	if err != nil {
		slog.Debug("message rejected", "type", msg.Type, "error", err, "user", sender.UserID)
		reply := newMessage(TypeError, ErrorPayload{Code: errorCode(err), Message: err.Error()})
		reply.Seq = msg.Seq
		sender.Send(reply)
		return
	}
	for _, r := range replies {
		sender.Send(r)
	}

	switch msg.Type {
	case TypePointerDown:
		slog.Debug("gesture started", "client", sender.ClientID, "workspace", sender.WorkspaceID())
	case TypePointerUp:
		slog.Debug("gesture ended", "client", sender.ClientID, "workspace", sender.WorkspaceID())
	case TypeWindowBlur:
		slog.Debug("gesture force-terminated", "client", sender.ClientID, "workspace", sender.WorkspaceID())
	}

	if sender.session.Dirty() {
		sender.autosave.Trigger(func() { h.save(sender) })
	}
}

func (h *Hub) save(client *Client) {
	if !client.session.Dirty() {
		return
	}
	ws, revision := client.session.Snapshot()

	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	if err := h.store.Save(ctx, ws); err != nil {
		slog.Error("save workspace", "error", err, "workspace", ws.ID)
		return
	}
	client.session.MarkSaved(ws, revision)
	slog.Debug("workspace saved", "workspace", ws.ID, "version", ws.Version)
}
