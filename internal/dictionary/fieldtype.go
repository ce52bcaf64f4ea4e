// Copyright (c) 2026 Document Template Engine. All rights reserved.
// Author: a.velichko.dev@gmail.com

package dictionary

// FieldType is a controlled-vocabulary entry describing how a template
// field is typed and rendered on input forms.
type FieldType struct {
	ID   string `json:"id"`
	Slug string `json:"slug"`
	Name string `json:"name"`
	Mask string `json:"mask,omitempty"`
}

// Well-known field type slugs seeded by the migrations.
const (
	SlugString  = "string"
	SlugInteger = "integer"
	SlugDate    = "date"
)
