package schema

// UsersAccountTable represents the 'users.account' table
type UsersAccountTable struct {
	Table        string
	ID           string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Role         string
	IsActive     string
	CreatedAt    string
	UpdatedAt    string
}

// UsersAccount is the schema definition for users.account
var UsersAccount = UsersAccountTable{
	Table:        "users.account",
	ID:           "id",
	Email:        "email",
	PasswordHash: "passwordhash",
	FirstName:    "firstname",
	LastName:     "lastname",
	Role:         "role",
	IsActive:     "isactive",
	CreatedAt:    "createdat",
	UpdatedAt:    "updatedat",
}

func (t UsersAccountTable) Columns() []string {
	return []string{t.ID, t.Email, t.PasswordHash, t.FirstName, t.LastName, t.Role, t.IsActive, t.CreatedAt, t.UpdatedAt}
}
