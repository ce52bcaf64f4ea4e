package schema

// CoreFieldTypeTable represents the 'core.fieldtype' table
type CoreFieldTypeTable struct {
	Table string
	ID    string
	Slug  string
	Name  string
	Mask  string
}

// CoreFieldType is the schema definition for core.fieldtype
var CoreFieldType = CoreFieldTypeTable{
	Table: "core.fieldtype",
	ID:    "id",
	Slug:  "slug",
	Name:  "name",
	Mask:  "mask",
}

func (t CoreFieldTypeTable) Columns() []string {
	return []string{t.ID, t.Slug, t.Name, t.Mask}
}
