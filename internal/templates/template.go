// Copyright (c) 2026 Document Template Engine. All rights reserved.
// Author: a.velichko.dev@gmail.com

package templates

import "time"

// Template is a reusable office document blueprint: a stored .docx binary
// plus the declared fields that fill its placeholder tags.
//
// CategoryID is nil for uncategorized templates. PreviewID references an
// optional preview image in the blob store.
type Template struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	CategoryID  *string   `json:"category_id,omitempty"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	FileName    string    `json:"file_name,omitempty"`
	FileID      string    `json:"-"`
	PreviewID   string    `json:"-"`
	Deleted     bool      `json:"deleted"`
	Favorite    bool      `json:"favorite"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// FieldGroup is a named, ordered section of template fields used to
// structure input forms.
type FieldGroup struct {
	ID         string `json:"id"`
	TemplateID string `json:"-"`
	Name       string `json:"name"`
	Position   int    `json:"position"`
}

// TemplateField declares one placeholder of a template: the tag embedded in
// the binary, its display name, type, and input constraints.
//
// GroupID is nil for ungrouped fields.
type TemplateField struct {
	ID           string  `json:"id"`
	TemplateID   string  `json:"-"`
	GroupID      *string `json:"group_id,omitempty"`
	Tag          string  `json:"tag"`
	Name         string  `json:"name"`
	FieldTypeID  string  `json:"field_type_id"`
	Length       int     `json:"length,omitempty"`
	Mask         string  `json:"mask,omitempty"`
	DefaultValue string  `json:"default_value,omitempty"`
	Hint         string  `json:"hint,omitempty"`
	Position     int     `json:"position"`
}

// GroupedFields is the form-oriented field listing: fields bundled under
// their group, ungrouped fields reported with a nil Group.
type GroupedFields struct {
	Group  *FieldGroup     `json:"group"`
	Fields []TemplateField `json:"fields"`
}
