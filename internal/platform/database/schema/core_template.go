package schema

// CoreTemplateTable represents the 'core.template' table
type CoreTemplateTable struct {
	Table       string
	ID          string
	OwnerID     string
	CategoryID  string
	Name        string
	Description string
	FileName    string
	FileID      string
	PreviewID   string
	Deleted     string
	CreatedAt   string
	UpdatedAt   string
}

// CoreTemplate is the schema definition for core.template
var CoreTemplate = CoreTemplateTable{
	Table:       "core.template",
	ID:          "id",
	OwnerID:     "ownerid",
	CategoryID:  "categoryid",
	Name:        "name",
	Description: "description",
	FileName:    "filename",
	FileID:      "fileid",
	PreviewID:   "previewid",
	Deleted:     "deleted",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

func (t CoreTemplateTable) Columns() []string {
	return []string{t.ID, t.OwnerID, t.CategoryID, t.Name, t.Description, t.FileName, t.FileID, t.PreviewID, t.Deleted, t.CreatedAt, t.UpdatedAt}
}
