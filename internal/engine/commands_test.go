package engine

import (
	"encoding/json"
	"testing"

	"github.com/panelspace/panelspace/internal/geom"
	"github.com/panelspace/panelspace/internal/workspace"
)

func TestCompileDrawCommands(t *testing.T) {
	sorted := []workspace.Panel{
		panel("a", workspace.KindDataset, 0, 0, 100, 50, 1),
		panel("b", workspace.KindGraph, 100, 100, 200, 100, 2),
	}
	vp := geom.Viewport{X: 10, Y: 20, Zoom: 2}

	cmds := CompileDrawCommands(sorted, vp, "b")
	if len(cmds) != 2 {
		t.Fatalf("len = %d", len(cmds))
	}
	want := geom.Rect{X: 210, Y: 220, Width: 400, Height: 200}
	if cmds[1].Screen != want {
		t.Errorf("screen = %+v, want %+v", cmds[1].Screen, want)
	}
	if cmds[0].ZIndex != 0 || cmds[1].ZIndex != 1 {
		t.Error("z index does not follow paint order")
	}
	if cmds[0].Active || !cmds[1].Active {
		t.Error("active flag")
	}
	if cmds[1].Icon == "" || cmds[1].Op != "panel" {
		t.Errorf("command = %+v", cmds[1])
	}
}

func TestDrawCommandsToJSON(t *testing.T) {
	if got, _ := DrawCommandsToJSON(nil); got != "[]" {
		t.Errorf("nil = %s", got)
	}
	cmds := CompileDrawCommands([]workspace.Panel{panel("a", workspace.KindModel, 0, 0, 320, 240, 1)}, geom.DefaultViewport(), "")
	s, err := DrawCommandsToJSON(cmds)
	if err != nil {
		t.Fatal(err)
	}
	var decoded []map[string]any
	if err := json.Unmarshal([]byte(s), &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded[0]["panelId"] != "a" || decoded[0]["kind"] != "model" {
		t.Errorf("decoded = %v", decoded[0])
	}
}
