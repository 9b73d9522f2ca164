package typeid

import (
	"fmt"

	"go.jetify.com/typeid/v2"
)

const (
	PrefixUser      = "user"
	PrefixWorkspace = "ws"
	PrefixPanel     = "panel"
	PrefixFolder    = "folder"
	PrefixSession   = "sess"
)

func New(prefix string) string {
	id := typeid.MustGenerate(prefix)
	return id.String()
}

func NewUserID() string      { return New(PrefixUser) }
func NewWorkspaceID() string { return New(PrefixWorkspace) }
func NewPanelID() string     { return New(PrefixPanel) }
func NewFolderID() string    { return New(PrefixFolder) }
func NewSessionID() string   { return New(PrefixSession) }

func Validate(id, expectedPrefix string) error {
	parsed, err := typeid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid typeid %q: %w", id, err)
	}
	if parsed.Prefix() != expectedPrefix {
		return fmt.Errorf("expected prefix %q but got %q in id %q", expectedPrefix, parsed.Prefix(), id)
	}
	return nil
}
