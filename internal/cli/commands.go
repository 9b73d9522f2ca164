package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/panelspace/panelspace/internal/engine"
	"github.com/panelspace/panelspace/internal/geom"
	"github.com/panelspace/panelspace/internal/typeid"
	"github.com/panelspace/panelspace/internal/workspace"
)

func (c *CLI) sampleCommand() *cobra.Command {
	var output, id string

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Write a sample workspace covering every panel kind",
		RunE: func(cmd *cobra.Command, args []string) error {
			if id == "" {
				id = typeid.NewWorkspaceID()
			}
			ws := workspace.NewSample(id)
			c.Logger.Debug("Built sample", "panels", len(ws.Panels), "folders", len(ws.Folders))
			return c.writeJSON(ws, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVar(&id, "id", "", "workspace id (generated if empty)")
	return cmd
}

// viewFlags are shared by the commands that need a canvas.
type viewFlags struct {
	width, height float64
	buffer        float64
	x, y, zoom    float64
}

func (v *viewFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&v.width, "width", 1280, "container width in pixels")
	cmd.Flags().Float64Var(&v.height, "height", 800, "container height in pixels")
	cmd.Flags().Float64Var(&v.buffer, "buffer", engine.DefaultCullBuffer, "culling margin in pixels")
	cmd.Flags().Float64Var(&v.x, "pan-x", 0, "viewport pan x")
	cmd.Flags().Float64Var(&v.y, "pan-y", 0, "viewport pan y")
	cmd.Flags().Float64Var(&v.zoom, "zoom", 1, "viewport zoom")
}

func (v *viewFlags) apply(cmd *cobra.Command, e *engine.Engine) {
	if cmd.Flags().Changed("pan-x") || cmd.Flags().Changed("pan-y") || cmd.Flags().Changed("zoom") {
		e.SetViewport(geom.Viewport{X: v.x, Y: v.y, Zoom: v.zoom})
	}
	e.SetContainer(v.width, v.height)
	e.SetBuffer(v.buffer)
}

type cullOutput struct {
	Viewport geom.Viewport        `json:"viewport"`
	Bounds   geom.Rect            `json:"bounds"`
	Visible  []string             `json:"visible"`
	Sorted   []string             `json:"sorted"`
	Commands []engine.DrawCommand `json:"commands,omitempty"`
}

func (c *CLI) cullCommand() *cobra.Command {
	var view viewFlags
	var commands bool

	cmd := &cobra.Command{
		Use:   "cull <workspace.json>",
		Short: "List the panels a viewport would render",
		Long: `List the panels a viewport would render, in paint order.

The stored viewport is used unless --pan-x, --pan-y or --zoom is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := readWorkspace(args[0])
			if err != nil {
				return err
			}
			view.apply(cmd, e)

			result := e.Cull()
			out := cullOutput{
				Viewport: e.Viewport(),
				Bounds:   result.Bounds,
				Visible:  panelIDs(result.Visible),
				Sorted:   panelIDs(result.Sorted),
			}
			if commands {
				out.Commands = e.DrawCommands()
			}
			c.Logger.Info("Culled", "visible", len(result.Visible), "total", len(e.Workspace().Panels))
			return c.writeJSON(out, "")
		},
	}

	view.register(cmd)
	cmd.Flags().BoolVar(&commands, "commands", false, "include draw commands")
	return cmd
}

func (c *CLI) hitCommand() *cobra.Command {
	var view viewFlags
	var sx, sy float64

	cmd := &cobra.Command{
		Use:   "hit <workspace.json>",
		Short: "Report the topmost panel at a screen position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := readWorkspace(args[0])
			if err != nil {
				return err
			}
			view.apply(cmd, e)

			id := e.HitTest(sx, sy)
			if id == "" {
				c.Logger.Info("No panel at position", "x", sx, "y", sy)
			}
			return c.writeJSON(map[string]string{"panelId": id}, "")
		},
	}

	view.register(cmd)
	cmd.Flags().Float64Var(&sx, "x", 0, "screen x")
	cmd.Flags().Float64Var(&sy, "y", 0, "screen y")
	return cmd
}

func (c *CLI) groupCommand() *cobra.Command {
	var output, by string

	cmd := &cobra.Command{
		Use:   "group <workspace.json>",
		Short: "Put related panels into folders",
		Example: `  # One folder per panel kind with more than one panel
  panelctl group ws.json --by type -o grouped.json

  # One folder per dataset family
  panelctl group ws.json --by relationship`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := readWorkspace(args[0])
			if err != nil {
				return err
			}
			switch by {
			case "type":
				e.GroupByType()
			case "relationship":
				e.GroupByRelationship()
			default:
				return fmt.Errorf("unknown grouping %q (want type or relationship)", by)
			}

			ws := e.Workspace()
			for name, n := range countFolders(ws) {
				c.Logger.Debug("Folder", "name", name, "panels", n)
			}
			return c.writeJSON(ws, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVar(&by, "by", "type", "grouping: type or relationship")
	return cmd
}

func (c *CLI) reorderCommand() *cobra.Command {
	var output, panelID, before, after, folder string
	var root bool

	cmd := &cobra.Command{
		Use:   "reorder <workspace.json>",
		Short: "Move a panel in the list as a drag-and-drop would",
		Example: `  panelctl reorder ws.json --panel panel_01h... --after panel_01j...
  panelctl reorder ws.json --panel panel_01h... --folder folder_01k...
  panelctl reorder ws.json --panel panel_01h... --root`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			set := 0
			for _, s := range []string{before, after, folder} {
				if s != "" {
					set++
				}
			}
			if root {
				set++
			}
			if panelID == "" || set != 1 {
				return errors.New("need --panel and exactly one of --before, --after, --folder, --root")
			}

			e, err := readWorkspace(args[0])
			if err != nil {
				return err
			}
			if _, ok := e.Panel(panelID); !ok {
				return fmt.Errorf("panel %s: %w", panelID, engine.ErrPanelNotFound)
			}

			switch {
			case before != "":
				err = e.DropOnPanel(panelID, before, engine.DropBefore)
			case after != "":
				err = e.DropOnPanel(panelID, after, engine.DropAfter)
			case folder != "":
				err = e.DropOnFolder(panelID, folder)
			default:
				err = e.DropOnRoot(panelID)
			}
			if err != nil {
				return err
			}
			return c.writeJSON(e.Workspace(), output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVar(&panelID, "panel", "", "panel to move")
	cmd.Flags().StringVar(&before, "before", "", "drop before this panel")
	cmd.Flags().StringVar(&after, "after", "", "drop after this panel")
	cmd.Flags().StringVar(&folder, "folder", "", "drop on this folder's header")
	cmd.Flags().BoolVar(&root, "root", false, "move to the root level")
	return cmd
}

func panelIDs(panels []workspace.Panel) []string {
	out := make([]string, len(panels))
	for i, p := range panels {
		out[i] = p.ID
	}
	return out
}
