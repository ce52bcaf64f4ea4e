package schema

// CoreDocumentTable represents the 'core.document' table
type CoreDocumentTable struct {
	Table      string
	ID         string
	TemplateID string
	OwnerID    string
	Name       string
	Completed  string
	CreatedAt  string
	UpdatedAt  string
}

// CoreDocument is the schema definition for core.document
var CoreDocument = CoreDocumentTable{
	Table:      "core.document",
	ID:         "id",
	TemplateID: "templateid",
	OwnerID:    "ownerid",
	Name:       "name",
	Completed:  "completed",
	CreatedAt:  "createdat",
	UpdatedAt:  "updatedat",
}

func (t CoreDocumentTable) Columns() []string {
	return []string{t.ID, t.TemplateID, t.OwnerID, t.Name, t.Completed, t.CreatedAt, t.UpdatedAt}
}
