package schema

// CoreCategoryTable represents the 'core.category' table
type CoreCategoryTable struct {
	Table string
	ID    string
	Name  string
}

// CoreCategory is the schema definition for core.category
var CoreCategory = CoreCategoryTable{
	Table: "core.category",
	ID:    "id",
	Name:  "name",
}

func (t CoreCategoryTable) Columns() []string {
	return []string{t.ID, t.Name}
}
