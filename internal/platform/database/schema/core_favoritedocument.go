package schema

// CoreFavoriteDocumentTable represents the 'core.favoritedocument' table
type CoreFavoriteDocumentTable struct {
	Table      string
	ID         string
	AccountID  string
	DocumentID string
	CreatedAt  string
}

// CoreFavoriteDocument is the schema definition for core.favoritedocument
var CoreFavoriteDocument = CoreFavoriteDocumentTable{
	Table:      "core.favoritedocument",
	ID:         "id",
	AccountID:  "accountid",
	DocumentID: "documentid",
	CreatedAt:  "createdat",
}

func (t CoreFavoriteDocumentTable) Columns() []string {
	return []string{t.ID, t.AccountID, t.DocumentID, t.CreatedAt}
}
