package schema

// CoreDocumentFieldTable represents the 'core.documentfield' table
type CoreDocumentFieldTable struct {
	Table           string
	ID              string
	DocumentID      string
	TemplateFieldID string
	Value           string
}

// CoreDocumentField is the schema definition for core.documentfield
var CoreDocumentField = CoreDocumentFieldTable{
	Table:           "core.documentfield",
	ID:              "id",
	DocumentID:      "documentid",
	TemplateFieldID: "templatefieldid",
	Value:           "value",
}

func (t CoreDocumentFieldTable) Columns() []string {
	return []string{t.ID, t.DocumentID, t.TemplateFieldID, t.Value}
}
