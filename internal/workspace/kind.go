package workspace

import "fmt"

// Kind is the content family of a panel. It only drives presentation (icon,
// color), size floors and which geometry operations the panel accepts; the
// panel's content payload is never interpreted.
type Kind string

const (
	KindDataset    Kind = "dataset"
	KindGraph      Kind = "graph"
	KindModel      Kind = "model"
	KindDataEditor Kind = "data-editor"
	KindMerge      Kind = "merge"
	KindReport     Kind = "report"
)

// Kinds lists every panel kind in display order.
var Kinds = []Kind{KindDataset, KindGraph, KindModel, KindDataEditor, KindMerge, KindReport}

// Operation is a geometry operation a panel kind may or may not support.
type Operation int

const (
	OpDrag Operation = iota
	OpResize
	OpAutoSize
)

// Default minimum panel size.
const (
	DefaultMinWidth  = 300.0
	DefaultMinHeight = 200.0
)

// ParseKind converts a string into a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !k.Valid() {
		return "", fmt.Errorf("unknown panel kind %q", s)
	}
	return k, nil
}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindDataset, KindGraph, KindModel, KindDataEditor, KindMerge, KindReport:
		return true
	}
	return false
}

// Label is the singular display name.
func (k Kind) Label() string {
	switch k {
	case KindDataset:
		return "Dataset"
	case KindGraph:
		return "Graph"
	case KindModel:
		return "Model"
	case KindDataEditor:
		return "Data Editor"
	case KindMerge:
		return "Merge"
	case KindReport:
		return "Report"
	default:
		return "Panel"
	}
}

// Plural is the folder name used when grouping panels of this kind.
func (k Kind) Plural() string {
	return k.Label() + "s"
}

// Icon names the icon the frontend shows in the panel header.
func (k Kind) Icon() string {
	switch k {
	case KindDataset:
		return "table"
	case KindGraph:
		return "chart-bar"
	case KindModel:
		return "cpu"
	case KindDataEditor:
		return "pencil"
	case KindMerge:
		return "git-merge"
	case KindReport:
		return "clipboard"
	default:
		return "square"
	}
}

// Color is the header accent color.
func (k Kind) Color() string {
	switch k {
	case KindDataset:
		return "#3b82f6"
	case KindGraph:
		return "#10b981"
	case KindModel:
		return "#8b5cf6"
	case KindDataEditor:
		return "#f59e0b"
	case KindMerge:
		return "#ec4899"
	case KindReport:
		return "#64748b"
	default:
		return "#9ca3af"
	}
}

// MinSize is the resize floor for panels of this kind.
func (k Kind) MinSize() (width, height float64) {
	switch k {
	case KindGraph:
		return 360, 260
	case KindModel:
		return 320, 240
	case KindDataEditor:
		return 400, 260
	case KindDataset, KindMerge, KindReport:
		return DefaultMinWidth, DefaultMinHeight
	default:
		return DefaultMinWidth, DefaultMinHeight
	}
}

// Allows reports whether panels of this kind accept op. Report panels size
// themselves from their content and cannot be resized by hand.
func (k Kind) Allows(op Operation) bool {
	switch op {
	case OpDrag:
		return true
	case OpResize:
		return k != KindReport
	case OpAutoSize:
		return k == KindReport
	default:
		return false
	}
}
