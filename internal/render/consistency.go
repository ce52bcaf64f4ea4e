// Copyright (c) 2026 Document Template Engine. All rights reserved.
// Author: a.velichko.dev@gmail.com

package render

import (
	"sort"

	"github.com/document-template-engine/backend/internal/platform/constants"
)

// TagDiff is the result of comparing the tags a template file references
// against the tags its declared fields cover.
//
// Comparison is exact: tag names are matched byte for byte, so "ФИО " and
// "фио" are different tags. Authors fix the template or the field, the
// engine never guesses.
type TagDiff struct {
	// ExcessTags are referenced by the file but covered by no field.
	ExcessTags []string
	// ExcessFields are declared as fields but referenced nowhere.
	ExcessFields []string
}

// ConsistencyError is one human-readable finding of a consistency check.
type ConsistencyError struct {
	Message string   `json:"message"`
	Tags    []string `json:"tags"`
}

// Diff computes the symmetric difference between document and field tags.
// Both result sets come out sorted.
func Diff(docTags, fieldTags []string) TagDiff {
	inDoc := make(map[string]bool, len(docTags))
	for _, tag := range docTags {
		inDoc[tag] = true
	}
	inFields := make(map[string]bool, len(fieldTags))
	for _, tag := range fieldTags {
		inFields[tag] = true
	}

	var diff TagDiff
	for tag := range inDoc {
		if !inFields[tag] {
			diff.ExcessTags = append(diff.ExcessTags, tag)
		}
	}
	for tag := range inFields {
		if !inDoc[tag] {
			diff.ExcessFields = append(diff.ExcessFields, tag)
		}
	}

	sort.Strings(diff.ExcessTags)
	sort.Strings(diff.ExcessFields)

	return diff
}

// Consistent reports whether the template file and its fields agree exactly.
func (d TagDiff) Consistent() bool {
	return len(d.ExcessTags) == 0 && len(d.ExcessFields) == 0
}

// Errors converts the diff into response-ready findings. A consistent diff
// yields nil.
func (d TagDiff) Errors() []ConsistencyError {
	var errs []ConsistencyError
	if len(d.ExcessTags) > 0 {
		errs = append(errs, ConsistencyError{
			Message: constants.MsgTemplateExcessTags,
			Tags:    d.ExcessTags,
		})
	}
	if len(d.ExcessFields) > 0 {
		errs = append(errs, ConsistencyError{
			Message: constants.MsgTemplateExcessFields,
			Tags:    d.ExcessFields,
		})
	}
	return errs
}
