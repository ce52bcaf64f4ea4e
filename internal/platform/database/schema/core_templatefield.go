package schema

// CoreTemplateFieldTable represents the 'core.templatefield' table
type CoreTemplateFieldTable struct {
	Table        string
	ID           string
	TemplateID   string
	GroupID      string
	Tag          string
	Name         string
	FieldTypeID  string
	Length       string
	Mask         string
	DefaultValue string
	Hint         string
	Position     string
}

// CoreTemplateField is the schema definition for core.templatefield
var CoreTemplateField = CoreTemplateFieldTable{
	Table:        "core.templatefield",
	ID:           "id",
	TemplateID:   "templateid",
	GroupID:      "groupid",
	Tag:          "tag",
	Name:         "name",
	FieldTypeID:  "fieldtypeid",
	Length:       "length",
	Mask:         "mask",
	DefaultValue: "defaultvalue",
	Hint:         "hint",
	Position:     "position",
}

func (t CoreTemplateFieldTable) Columns() []string {
	return []string{t.ID, t.TemplateID, t.GroupID, t.Tag, t.Name, t.FieldTypeID, t.Length, t.Mask, t.DefaultValue, t.Hint, t.Position}
}
