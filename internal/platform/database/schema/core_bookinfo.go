package schema

// CoreBookInfoTable represents the 'core.bookinfo' table
type CoreBookInfoTable struct {
	Table       string
	Book        string
	Name        string
	Description string
	UpdatedAt   string
}

// CoreBookInfo is the schema definition for core.bookinfo
var CoreBookInfo = CoreBookInfoTable{
	Table:       "core.bookinfo",
	Book:        "book",
	Name:        "name",
	Description: "description",
	UpdatedAt:   "updatedat",
}

func (t CoreBookInfoTable) Columns() []string {
	return []string{t.Book, t.Name, t.Description, t.UpdatedAt}
}
