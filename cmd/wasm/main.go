//go:build js && wasm

package main

import (
	"encoding/json"
	"syscall/js"

	"github.com/panelspace/panelspace/internal/engine"
	"github.com/panelspace/panelspace/internal/geom"
	"github.com/panelspace/panelspace/internal/workspace"
)

var eng *engine.Engine

func main() {
	eng = engine.NewEngine(engine.Options{})

	// Create the engine API object
	panelEngine := js.Global().Get("Object").New()

	// --- Commands (frontend → engine) ---
	panelEngine.Set("loadDocument", js.FuncOf(loadDocument))
	panelEngine.Set("loadSampleDocument", js.FuncOf(loadSampleDocument))
	panelEngine.Set("setViewport", js.FuncOf(setViewport))
	panelEngine.Set("setContainer", js.FuncOf(setContainer))
	panelEngine.Set("zoomAt", js.FuncOf(zoomAt))
	panelEngine.Set("fitAll", js.FuncOf(fitAll))
	panelEngine.Set("addPanel", js.FuncOf(addPanel))
	panelEngine.Set("removePanel", js.FuncOf(removePanel))
	panelEngine.Set("togglePanelVisible", js.FuncOf(togglePanelVisible))
	panelEngine.Set("togglePanelLocked", js.FuncOf(togglePanelLocked))
	panelEngine.Set("setPanelExpanded", js.FuncOf(setPanelExpanded))
	panelEngine.Set("focus", js.FuncOf(focus))
	panelEngine.Set("pointerDown", js.FuncOf(pointerDown))
	panelEngine.Set("pointerMove", js.FuncOf(pointerMove))
	panelEngine.Set("pointerUp", js.FuncOf(pointerUp))
	panelEngine.Set("blur", js.FuncOf(blur))
	panelEngine.Set("createFolder", js.FuncOf(createFolder))
	panelEngine.Set("deleteFolder", js.FuncOf(deleteFolder))
	panelEngine.Set("renameFolder", js.FuncOf(renameFolder))
	panelEngine.Set("toggleFolderExpanded", js.FuncOf(toggleFolderExpanded))
	panelEngine.Set("movePanelToFolder", js.FuncOf(movePanelToFolder))
	panelEngine.Set("reorderPanels", js.FuncOf(reorderPanels))
	panelEngine.Set("dropOnPanel", js.FuncOf(dropOnPanel))
	panelEngine.Set("dropOnFolder", js.FuncOf(dropOnFolder))
	panelEngine.Set("dropOnRoot", js.FuncOf(dropOnRoot))
	panelEngine.Set("groupByType", js.FuncOf(groupByType))
	panelEngine.Set("groupByRelationship", js.FuncOf(groupByRelationship))
	panelEngine.Set("setSearchTerm", js.FuncOf(setSearchTerm))

	// --- Queries (frontend ← engine) ---
	panelEngine.Set("render", js.FuncOf(render))
	panelEngine.Set("hitTest", js.FuncOf(hitTest))
	panelEngine.Set("getDocument", js.FuncOf(getDocument))
	panelEngine.Set("getGestureState", js.FuncOf(getGestureState))
	panelEngine.Set("takeUpdates", js.FuncOf(takeUpdates))
	panelEngine.Set("getFilteredPanels", js.FuncOf(getFilteredPanels))
	panelEngine.Set("getRevision", js.FuncOf(getRevision))

	// A pointer-up that happens outside the window never reaches us.
	js.Global().Call("addEventListener", "blur", js.FuncOf(blur))
	js.Global().Get("document").Call("addEventListener", "visibilitychange", js.FuncOf(visibilityChange))

	// Register on global scope
	js.Global().Set("panelEngine", panelEngine)

	// Signal that WASM is ready
	js.Global().Set("panelWasmReady", js.ValueOf(true))

	// Keep Go runtime alive
	select {}
}

func ok() interface{} {
	return js.ValueOf(map[string]interface{}{"ok": true})
}

func fail(err error) interface{} {
	return js.ValueOf(map[string]interface{}{"error": err.Error()})
}

func str(args []js.Value, i int) string {
	if len(args) <= i || args[i].Type() != js.TypeString {
		return ""
	}
	return args[i].String()
}

func num(args []js.Value, i int) float64 {
	if len(args) <= i || args[i].Type() != js.TypeNumber {
		return 0
	}
	return args[i].Float()
}

func toJSON(v interface{}) string {
	data, err := json.Marshal(v)
	if err != nil {
		return "null"
	}
	return string(data)
}

// --- Command Handlers ---

func loadDocument(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(map[string]interface{}{"error": "missing document JSON"})
	}
	if err := eng.LoadJSON([]byte(args[0].String())); err != nil {
		return fail(err)
	}
	return ok()
}

func loadSampleDocument(this js.Value, args []js.Value) interface{} {
	workspaceID := "ws_sample"
	if id := str(args, 0); id != "" {
		workspaceID = id
	}
	eng.Load(workspace.NewSample(workspaceID))
	return ok()
}

func setViewport(this js.Value, args []js.Value) interface{} {
	eng.SetViewport(geom.Viewport{X: num(args, 0), Y: num(args, 1), Zoom: num(args, 2)})
	return nil
}

func setContainer(this js.Value, args []js.Value) interface{} {
	eng.SetContainer(num(args, 0), num(args, 1))
	return nil
}

func zoomAt(this js.Value, args []js.Value) interface{} {
	if factor := num(args, 2); factor > 0 {
		eng.ZoomAt(num(args, 0), num(args, 1), factor)
	}
	return nil
}

func fitAll(this js.Value, args []js.Value) interface{} {
	eng.FitAll(num(args, 0))
	return nil
}

func addPanel(this js.Value, args []js.Value) interface{} {
	var p workspace.Panel
	if err := json.Unmarshal([]byte(str(args, 0)), &p); err != nil {
		return fail(err)
	}
	return js.ValueOf(eng.AddPanel(p))
}

func removePanel(this js.Value, args []js.Value) interface{} {
	eng.RemovePanel(str(args, 0))
	return nil
}

func togglePanelVisible(this js.Value, args []js.Value) interface{} {
	eng.TogglePanelVisible(str(args, 0))
	return nil
}

func togglePanelLocked(this js.Value, args []js.Value) interface{} {
	eng.TogglePanelLocked(str(args, 0))
	return nil
}

func setPanelExpanded(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	eng.SetPanelExpanded(str(args, 0), args[1].Truthy())
	return nil
}

func focus(this js.Value, args []js.Value) interface{} {
	eng.Focus(str(args, 0))
	return nil
}

// pointerDown(panelId, handle, x, y); handle is "" for a drag.
func pointerDown(this js.Value, args []js.Value) interface{} {
	if err := eng.PointerDown(str(args, 0), str(args, 1), num(args, 2), num(args, 3)); err != nil {
		return fail(err)
	}
	return ok()
}

func pointerMove(this js.Value, args []js.Value) interface{} {
	eng.PointerMove(num(args, 0), num(args, 1))
	return nil
}

func pointerUp(this js.Value, args []js.Value) interface{} {
	eng.PointerUp(num(args, 0), num(args, 1))
	return nil
}

func blur(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.Blur())
}

func visibilityChange(this js.Value, args []js.Value) interface{} {
	if js.Global().Get("document").Get("hidden").Truthy() {
		eng.Blur()
	}
	return nil
}

func createFolder(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.CreateFolder(str(args, 0)))
}

// deleteFolder(folderId, keepPanels)
func deleteFolder(this js.Value, args []js.Value) interface{} {
	if len(args) > 1 && args[1].Truthy() {
		eng.DeleteFolderContentsOnly(str(args, 0))
	} else {
		eng.DeleteFolder(str(args, 0))
	}
	return nil
}

func renameFolder(this js.Value, args []js.Value) interface{} {
	eng.RenameFolder(str(args, 0), str(args, 1))
	return nil
}

func toggleFolderExpanded(this js.Value, args []js.Value) interface{} {
	eng.ToggleFolderExpanded(str(args, 0))
	return nil
}

func movePanelToFolder(this js.Value, args []js.Value) interface{} {
	eng.MovePanelToFolder(str(args, 0), str(args, 1))
	return nil
}

func reorderPanels(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 || args[0].Type() != js.TypeObject {
		return nil
	}
	arr := args[0]
	ids := make([]string, arr.Length())
	for i := range ids {
		ids[i] = arr.Index(i).String()
	}
	eng.ReorderPanels(ids)
	return nil
}

// dropOnPanel(draggedId, targetId, "before" | "after")
func dropOnPanel(this js.Value, args []js.Value) interface{} {
	if err := eng.DropOnPanel(str(args, 0), str(args, 1), engine.ParseDropPosition(str(args, 2))); err != nil {
		return fail(err)
	}
	return ok()
}

func dropOnFolder(this js.Value, args []js.Value) interface{} {
	if err := eng.DropOnFolder(str(args, 0), str(args, 1)); err != nil {
		return fail(err)
	}
	return ok()
}

func dropOnRoot(this js.Value, args []js.Value) interface{} {
	if err := eng.DropOnRoot(str(args, 0)); err != nil {
		return fail(err)
	}
	return ok()
}

func groupByType(this js.Value, args []js.Value) interface{} {
	eng.GroupByType()
	return nil
}

func groupByRelationship(this js.Value, args []js.Value) interface{} {
	eng.GroupByRelationship()
	return nil
}

func setSearchTerm(this js.Value, args []js.Value) interface{} {
	eng.SetSearchTerm(str(args, 0))
	return nil
}

// --- Query Handlers ---

func render(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.Render())
}

// hitTest(x, y) returns {panelId, x, y, screen} as JSON.
func hitTest(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(toJSON(eng.Hit(num(args, 0), num(args, 1))))
}

func getDocument(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.GetDocument())
}

func getGestureState(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.GetGestureState())
}

func takeUpdates(this js.Value, args []js.Value) interface{} {
	updates := eng.TakeUpdates()
	if updates == nil {
		return js.ValueOf("[]")
	}
	return js.ValueOf(toJSON(updates))
}

func getFilteredPanels(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(toJSON(eng.FilteredPanels()))
}

func getRevision(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(float64(eng.Revision()))
}
