package menu

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/bizxr/erp-portal/models"
)

// Row column names as produced by the menu query
const (
	ColumnID       = "id"
	ColumnTitle    = "title"
	ColumnPath     = "path"
	ColumnParentID = "parentId"
	ColumnSort     = "sort"
)

// ParseRow coerces a loosely typed query row into a MenuRow.
// Missing id and title become empty strings, missing path and parentId stay nil,
// and a sort value that is missing or not a number becomes 0.
func ParseRow(raw map[string]any) models.MenuRow {
	return models.MenuRow{
		ID:       textOf(raw[ColumnID]),
		Title:    textOf(raw[ColumnTitle]),
		Path:     optionalTextOf(raw[ColumnPath]),
		ParentID: optionalTextOf(raw[ColumnParentID]),
		Sort:     sortOf(raw[ColumnSort]),
	}
}

// ParseRows applies ParseRow to every row, keeping order
func ParseRows(raw []map[string]any) []models.MenuRow {
	rows := make([]models.MenuRow, 0, len(raw))
	for _, r := range raw {
		rows = append(rows, ParseRow(r))
	}
	return rows
}

func textOf(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}

func optionalTextOf(v any) *string {
	if v == nil {
		return nil
	}
	s := textOf(v)
	return &s
}

func sortOf(v any) int {
	switch t := v.(type) {
	case nil:
		return 0
	case int:
		return t
	case int8:
		return int(t)
	case int16:
		return int(t)
	case int32:
		return int(t)
	case int64:
		return int(t)
	case uint8:
		return int(t)
	case uint16:
		return int(t)
	case uint32:
		return int(t)
	case uint64:
		return int(t)
	case float32:
		return int(t)
	case float64:
		return int(t)
	}

	n, err := strconv.Atoi(strings.TrimSpace(textOf(v)))
	if err != nil {
		return 0
	}
	return n
}

// BuildTree assembles the flat rows into a forest ordered by Sort.
//
// Rows are indexed by ID; a later row with the same ID replaces the earlier
// one but keeps its position. A row whose parent is nil, blank or not among
// the rows becomes a root. Siblings are stably sorted, so equal Sort values
// keep input order. Nodes that only take part in a parent cycle are never
// reachable from a root and are dropped.
//
// The result and every Children slice are never nil.
func BuildTree(rows []models.MenuRow) []models.MenuNode {
	index := make(map[string]int, len(rows))
	arena := make([]models.MenuRow, 0, len(rows))
	for _, row := range rows {
		if i, ok := index[row.ID]; ok {
			arena[i] = row
			continue
		}
		index[row.ID] = len(arena)
		arena = append(arena, row)
	}

	roots := make([]int, 0)
	children := make([][]int, len(arena))
	for i, row := range arena {
		parent, ok := parentIndex(row, index)
		if !ok {
			roots = append(roots, i)
			continue
		}
		children[parent] = append(children[parent], i)
	}

	bySort := func(group []int) {
		sort.SliceStable(group, func(a, b int) bool {
			return arena[group[a]].Sort < arena[group[b]].Sort
		})
	}
	bySort(roots)
	for _, group := range children {
		bySort(group)
	}

	var materialize func(i int) models.MenuNode
	materialize = func(i int) models.MenuNode {
		row := arena[i]
		node := models.MenuNode{
			ID:       row.ID,
			Title:    row.Title,
			Path:     row.Path,
			Children: make([]models.MenuNode, 0, len(children[i])),
		}
		for _, c := range children[i] {
			node.Children = append(node.Children, materialize(c))
		}
		return node
	}

	tree := make([]models.MenuNode, 0, len(roots))
	for _, r := range roots {
		tree = append(tree, materialize(r))
	}
	return tree
}

func parentIndex(row models.MenuRow, index map[string]int) (int, bool) {
	if row.ParentID == nil || strings.TrimSpace(*row.ParentID) == "" {
		return 0, false
	}
	i, ok := index[*row.ParentID]
	return i, ok
}
