package engine

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/panelspace/panelspace/internal/workspace"
)

// GroupByType puts every kind with more than one panel into a folder named
// after the kind. Kinds with a single panel stay where they are.
//
// Running the grouping twice reuses the folders from the first run instead of
// creating duplicates.
func GroupByType(panels []workspace.Panel, folders []workspace.Folder) ([]workspace.Panel, []workspace.Folder) {
	var order []workspace.Kind
	members := make(map[workspace.Kind][]int)
	for i, p := range panels {
		if _, ok := members[p.Kind]; !ok {
			order = append(order, p.Kind)
		}
		members[p.Kind] = append(members[p.Kind], i)
	}

	partitions := make([]partition, 0, len(order))
	for _, k := range order {
		partitions = append(partitions, partition{name: k.Plural(), indexes: members[k]})
	}
	return applyPartitions(panels, folders, partitions)
}

// GroupByRelationship puts related panels into one folder per family. Two
// panels are related when one names the other as its parent, or when both
// are datasets with the same display name. Relations are transitive. The
// folder is named after the family's first root panel in list order.
func GroupByRelationship(panels []workspace.Panel, folders []workspace.Folder) ([]workspace.Panel, []workspace.Folder) {
	uf := newUnionFind(len(panels))
	index := make(map[string]int, len(panels))
	for i, p := range panels {
		index[p.ID] = i
	}

	datasetByName := make(map[string]int)
	for i, p := range panels {
		if p.ParentID != "" {
			if j, ok := index[p.ParentID]; ok {
				uf.union(i, j)
			}
		}
		if p.Kind == workspace.KindDataset && p.Name != "" {
			if j, ok := datasetByName[p.Name]; ok {
				uf.union(i, j)
			} else {
				datasetByName[p.Name] = i
			}
		}
	}

	var roots []int
	families := make(map[int][]int)
	for i := range panels {
		r := uf.find(i)
		if _, ok := families[r]; !ok {
			roots = append(roots, r)
		}
		families[r] = append(families[r], i)
	}

	partitions := make([]partition, 0, len(roots))
	for _, r := range roots {
		idx := families[r]
		partitions = append(partitions, partition{name: familyName(panels, idx, index), indexes: idx})
	}
	return applyPartitions(panels, folders, partitions)
}

type partition struct {
	name    string
	indexes []int
}

// applyPartitions gives every partition with more than one member its own
// folder. An existing folder is reused only when it carries the partition's
// name (or a numbered variant of it), no other partition of this call has
// taken it, and it holds no panel from outside the partition. Otherwise a new
// folder is created, numbered when the name is already in use.
func applyPartitions(panels []workspace.Panel, folders []workspace.Folder, partitions []partition) ([]workspace.Panel, []workspace.Folder) {
	outPanels := slices.Clone(panels)
	outFolders := slices.Clone(folders)
	claimed := make(map[string]bool)
	for _, part := range partitions {
		if len(part.indexes) < 2 {
			continue
		}
		folderID := reusableFolder(outPanels, outFolders, part, claimed)
		if folderID == "" {
			f := NewFolder(outFolders, uniqueFolderName(outFolders, part.name))
			outFolders = append(outFolders, f)
			folderID = f.ID
		}
		claimed[folderID] = true
		for _, i := range part.indexes {
			outPanels[i].FolderID = folderID
		}
	}
	return outPanels, outFolders
}

func reusableFolder(panels []workspace.Panel, folders []workspace.Folder, part partition, claimed map[string]bool) string {
	inPart := make(map[int]bool, len(part.indexes))
	for _, i := range part.indexes {
		inPart[i] = true
	}
	for _, f := range folders {
		if claimed[f.ID] || !isGeneratedName(f.Name, part.name) {
			continue
		}
		foreign := false
		for i, p := range panels {
			if p.FolderID == f.ID && !inPart[i] {
				foreign = true
				break
			}
		}
		if !foreign {
			return f.ID
		}
	}
	return ""
}

// isGeneratedName reports whether name is base or "base (n)".
func isGeneratedName(name, base string) bool {
	if name == base {
		return true
	}
	rest, ok := strings.CutPrefix(name, base+" (")
	if !ok {
		return false
	}
	num, ok := strings.CutSuffix(rest, ")")
	if !ok {
		return false
	}
	n, err := strconv.Atoi(num)
	return err == nil && n > 1
}

func uniqueFolderName(folders []workspace.Folder, base string) string {
	taken := func(name string) bool {
		return slices.ContainsFunc(folders, func(f workspace.Folder) bool { return f.Name == name })
	}
	if !taken(base) {
		return base
	}
	for n := 2; ; n++ {
		if name := fmt.Sprintf("%s (%d)", base, n); !taken(name) {
			return name
		}
	}
}

// familyName picks the first member whose parent is not itself in the list.
func familyName(panels []workspace.Panel, idx []int, index map[string]int) string {
	for _, i := range idx {
		if _, ok := index[panels[i].ParentID]; panels[i].ParentID == "" || !ok {
			if panels[i].Name != "" {
				return panels[i].Name
			}
		}
	}
	return panels[idx[0]].Kind.Plural()
}

type unionFind struct {
	parent []int
}

func newUnionFind(n int) *unionFind {
	uf := &unionFind{parent: make([]int, n)}
	for i := range uf.parent {
		uf.parent[i] = i
	}
	return uf
}

func (u *unionFind) find(i int) int {
	for u.parent[i] != i {
		u.parent[i] = u.parent[u.parent[i]]
		i = u.parent[i]
	}
	return i
}

// union keeps the smaller index as root so family order follows list order.
func (u *unionFind) union(a, b int) {
	ra, rb := u.find(a), u.find(b)
	if ra == rb {
		return
	}
	if ra < rb {
		u.parent[rb] = ra
	} else {
		u.parent[ra] = rb
	}
}
