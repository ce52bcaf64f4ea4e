// Copyright (c) 2026 Document Template Engine. All rights reserved.
// Author: a.velichko.dev@gmail.com

package documents

import "time"

// Document is a user-owned instance of a template: a named set of field
// values that can be rendered into the final office file.
type Document struct {
	ID         string    `json:"id"`
	TemplateID string    `json:"template_id"`
	OwnerID    string    `json:"owner_id"`
	Name       string    `json:"name"`
	Completed  bool      `json:"completed"`
	Favorite   bool      `json:"favorite"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// DocumentField holds the value a user entered for one template field.
type DocumentField struct {
	ID              string `json:"id"`
	DocumentID      string `json:"-"`
	TemplateFieldID string `json:"template_field_id"`
	Value           string `json:"value"`
}
