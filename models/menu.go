package models

// MenuRow is a single menu entry after coercion from the raw query row.
// Rows reach the service already filtered to what the caller may see.
type MenuRow struct {
	ID       string
	Title    string
	Path     *string // Nil for folder entries
	ParentID *string // Nil or blank for top-level entries
	Sort     int
}

// MenuNode is one node of the menu tree served to the client
type MenuNode struct {
	ID       string     `json:"id"`
	Title    string     `json:"title"`
	Path     *string    `json:"path"`
	Children []MenuNode `json:"children"`
}
