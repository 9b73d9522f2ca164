// Package cli implements panelctl, an offline tool that runs the workspace
// engine over JSON snapshots on disk.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/panelspace/panelspace/internal/engine"
	"github.com/panelspace/panelspace/internal/workspace"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Out    io.Writer
}

// New creates a CLI that logs to w and writes results to stdout.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
		Out: os.Stdout,
	}
}

func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "panelctl",
		Short:        "panelctl inspects and edits panel workspace snapshots",
		SilenceUsage: true,
	}

	root.AddCommand(c.sampleCommand())
	root.AddCommand(c.cullCommand())
	root.AddCommand(c.hitCommand())
	root.AddCommand(c.groupCommand())
	root.AddCommand(c.reorderCommand())

	return root
}

func readWorkspace(path string) (*engine.Engine, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	e := engine.NewEngine(engine.Options{})
	if err := e.LoadJSON(data); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return e, nil
}

// writeJSON writes v to path, or to c.Out when path is empty.
func (c *CLI) writeJSON(v any, path string) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	if path == "" {
		_, err = c.Out.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	c.Logger.Info("Wrote workspace", "path", path)
	return nil
}

func countFolders(ws *workspace.Workspace) map[string]int {
	out := make(map[string]int, len(ws.Folders))
	for _, f := range ws.Folders {
		out[f.Name] = len(ws.Members(f.ID))
	}
	return out
}
