package engine

import (
	"testing"

	"github.com/panelspace/panelspace/internal/workspace"
)

func TestDragEnabled(t *testing.T) {
	tests := map[string]bool{"": true, "   ": true, "sal": false}
	for term, want := range tests {
		if got := DragEnabled(term); got != want {
			t.Errorf("DragEnabled(%q) = %v", term, got)
		}
	}
}

func TestFilterPanels(t *testing.T) {
	panels := []workspace.Panel{
		kindPanel("1", workspace.KindDataset, "sales.csv", ""),
		kindPanel("2", workspace.KindGraph, "Revenue by region", ""),
		kindPanel("3", workspace.KindModel, "Churn classifier", ""),
	}

	if got := FilterPanels(panels, " "); len(got) != 3 {
		t.Errorf("blank term filtered: %v", ids(got))
	}

	got := FilterPanels(panels, "churn")
	if len(got) != 1 || got[0].ID != "3" {
		t.Errorf("churn = %v", ids(got))
	}

	got = FilterPanels(panels, "graph")
	if len(got) == 0 || got[0].ID != "2" {
		t.Errorf("match on kind label = %v", ids(got))
	}

	if got := FilterPanels(panels, "qqqq"); len(got) != 0 {
		t.Errorf("qqqq = %v", ids(got))
	}
}
