package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/panelspace/panelspace/internal/auth"
	"github.com/panelspace/panelspace/internal/engine"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Mount registers the workspace routes on r, which is expected to run the
// auth middleware.
func (h *Handler) Mount(r *mux.Router) {
	r.HandleFunc("/workspaces", h.List).Methods("GET")
	r.HandleFunc("/workspaces", h.Create).Methods("POST")
	r.HandleFunc("/workspaces/{workspaceId}", h.Get).Methods("GET")
	r.HandleFunc("/workspaces/{workspaceId}", h.Delete).Methods("DELETE")
	r.HandleFunc("/workspaces/{workspaceId}/cull", h.Cull).Methods("POST")
	r.HandleFunc("/workspaces/{workspaceId}/hit", h.HitTest).Methods("POST")
	r.HandleFunc("/workspaces/{workspaceId}/folders", h.CreateFolder).Methods("POST")
	r.HandleFunc("/workspaces/{workspaceId}/folders/{folderId}", h.UpdateFolder).Methods("PATCH")
	r.HandleFunc("/workspaces/{workspaceId}/folders/{folderId}", h.DeleteFolder).Methods("DELETE")
	r.HandleFunc("/workspaces/{workspaceId}/panels/{panelId}/folder", h.MovePanel).Methods("PUT")
	r.HandleFunc("/workspaces/{workspaceId}/order", h.Reorder).Methods("PUT")
	r.HandleFunc("/workspaces/{workspaceId}/drop", h.Drop).Methods("POST")
	r.HandleFunc("/workspaces/{workspaceId}/group", h.Group).Methods("POST")
}

type createRequest struct {
	Name   string `json:"name"`
	Sample bool   `json:"sample"`
}

type hitRequest struct {
	View
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type folderRequest struct {
	Name   *string `json:"name,omitempty"`
	Toggle bool    `json:"toggleExpanded,omitempty"`
}

type moveRequest struct {
	FolderID string `json:"folderId"`
}

type reorderRequest struct {
	PanelIDs []string `json:"panelIds"`
}

type dropRequest struct {
	PanelID  string `json:"panelId"`
	TargetID string `json:"targetId,omitempty"`
	FolderID string `json:"folderId,omitempty"`
	Position string `json:"position,omitempty"`
	Root     bool   `json:"root,omitempty"`
}

type groupRequest struct {
	By string `json:"by"` // "type" or "relationship"
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if req.Name == "" && !req.Sample {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	ws, err := h.service.Create(r.Context(), req.Name, userID, req.Sample)
	if err != nil {
		slog.Error("create workspace failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	writeJSON(w, http.StatusCreated, ws)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	workspaceID := mux.Vars(r)["workspaceId"]

	ws, err := h.service.Get(r.Context(), workspaceID, userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ws)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	list, err := h.service.List(r.Context(), userID)
	if err != nil {
		slog.Error("list workspaces failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	writeJSON(w, http.StatusOK, list)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	workspaceID := mux.Vars(r)["workspaceId"]

	if err := h.service.Delete(r.Context(), workspaceID, userID); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Cull(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	workspaceID := mux.Vars(r)["workspaceId"]

	var view View
	if err := json.NewDecoder(r.Body).Decode(&view); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	result, err := h.service.Cull(r.Context(), workspaceID, userID, view)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) HitTest(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	workspaceID := mux.Vars(r)["workspaceId"]

	var req hitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	result, err := h.service.HitTest(r.Context(), workspaceID, userID, req.View, req.X, req.Y)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	workspaceID := mux.Vars(r)["workspaceId"]

	var req folderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	var folderID string
	_, err := h.service.Mutate(r.Context(), workspaceID, userID, func(e *engine.Engine) error {
		name := ""
		if req.Name != nil {
			name = *req.Name
		}
		folderID = e.CreateFolder(name)
		return nil
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"folderId": folderID})
}

func (h *Handler) UpdateFolder(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	vars := mux.Vars(r)

	var req folderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	ws, err := h.service.Mutate(r.Context(), vars["workspaceId"], userID, func(e *engine.Engine) error {
		if _, ok := e.Workspace().Folder(vars["folderId"]); !ok {
			return ErrNotFound
		}
		if req.Name != nil {
			e.RenameFolder(vars["folderId"], *req.Name)
		}
		if req.Toggle {
			e.ToggleFolderExpanded(vars["folderId"])
		}
		return nil
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ws.Folders)
}

func (h *Handler) DeleteFolder(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	vars := mux.Vars(r)
	keepPanels := r.URL.Query().Get("keepPanels") == "true"

	_, err := h.service.Mutate(r.Context(), vars["workspaceId"], userID, func(e *engine.Engine) error {
		if _, ok := e.Workspace().Folder(vars["folderId"]); !ok {
			return ErrNotFound
		}
		if keepPanels {
			e.DeleteFolderContentsOnly(vars["folderId"])
		} else {
			e.DeleteFolder(vars["folderId"])
		}
		return nil
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) MovePanel(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	vars := mux.Vars(r)

	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	ws, err := h.service.Mutate(r.Context(), vars["workspaceId"], userID, func(e *engine.Engine) error {
		if _, ok := e.Panel(vars["panelId"]); !ok {
			return engine.ErrPanelNotFound
		}
		e.MovePanelToFolder(vars["panelId"], req.FolderID)
		return nil
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ws.Panels)
}

func (h *Handler) Reorder(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	workspaceID := mux.Vars(r)["workspaceId"]

	var req reorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	ws, err := h.service.Mutate(r.Context(), workspaceID, userID, func(e *engine.Engine) error {
		if len(req.PanelIDs) != len(e.Workspace().Panels) {
			return ErrInvalid
		}
		e.ReorderPanels(req.PanelIDs)
		return nil
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ws.Panels)
}

func (h *Handler) Drop(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	workspaceID := mux.Vars(r)["workspaceId"]

	var req dropRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	ws, err := h.service.Mutate(r.Context(), workspaceID, userID, func(e *engine.Engine) error {
		switch {
		case req.Root:
			return e.DropOnRoot(req.PanelID)
		case req.FolderID != "":
			return e.DropOnFolder(req.PanelID, req.FolderID)
		case req.TargetID != "":
			return e.DropOnPanel(req.PanelID, req.TargetID, engine.ParseDropPosition(req.Position))
		default:
			return ErrInvalid
		}
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ws.Panels)
}

func (h *Handler) Group(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	workspaceID := mux.Vars(r)["workspaceId"]

	var req groupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	ws, err := h.service.Mutate(r.Context(), workspaceID, userID, func(e *engine.Engine) error {
		switch req.By {
		case "type":
			e.GroupByType()
		case "relationship":
			e.GroupByRelationship()
		default:
			return ErrInvalid
		}
		return nil
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ws)
}

func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, engine.ErrPanelNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	case errors.Is(err, ErrForbidden):
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "forbidden"})
	case errors.Is(err, ErrInvalid):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, engine.ErrDragDisabled):
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	default:
		slog.Error("service error", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
