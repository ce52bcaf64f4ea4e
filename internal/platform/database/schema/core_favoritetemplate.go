package schema

// CoreFavoriteTemplateTable represents the 'core.favoritetemplate' table
type CoreFavoriteTemplateTable struct {
	Table      string
	ID         string
	AccountID  string
	TemplateID string
	CreatedAt  string
}

// CoreFavoriteTemplate is the schema definition for core.favoritetemplate
var CoreFavoriteTemplate = CoreFavoriteTemplateTable{
	Table:      "core.favoritetemplate",
	ID:         "id",
	AccountID:  "accountid",
	TemplateID: "templateid",
	CreatedAt:  "createdat",
}

func (t CoreFavoriteTemplateTable) Columns() []string {
	return []string{t.ID, t.AccountID, t.TemplateID, t.CreatedAt}
}
