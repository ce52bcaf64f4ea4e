// Copyright (c) 2026 Document Template Engine. All rights reserved.
// Author: a.velichko.dev@gmail.com

package dictionary

// Category is a catalogue rubric templates can be filed under
// ("Договоры", "Заявления", ...).
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
