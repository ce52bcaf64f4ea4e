package schema

// CoreFieldGroupTable represents the 'core.fieldgroup' table
type CoreFieldGroupTable struct {
	Table      string
	ID         string
	TemplateID string
	Name       string
	Position   string
}

// CoreFieldGroup is the schema definition for core.fieldgroup
var CoreFieldGroup = CoreFieldGroupTable{
	Table:      "core.fieldgroup",
	ID:         "id",
	TemplateID: "templateid",
	Name:       "name",
	Position:   "position",
}

func (t CoreFieldGroupTable) Columns() []string {
	return []string{t.ID, t.TemplateID, t.Name, t.Position}
}
