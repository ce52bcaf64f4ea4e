// Copyright (c) 2026 Document Template Engine. All rights reserved.
// Author: a.velichko.dev@gmail.com

/*
Package dictionary serves the controlled vocabularies of the template
catalogue: field types and categories.

Field types (string, integer, date, ...) are seeded by migrations and read
by clients to render input controls with the correct masks. Categories are
admin-managed rubrics templates can be filed under. Template writes
validate their type and category references against these vocabularies.
*/
package dictionary

import (
	"context"

	"github.com/document-template-engine/backend/internal/platform/validate"
	uuidv7 "github.com/document-template-engine/backend/pkg/uuid"
)

// Service implements vocabulary use cases.
type Service struct {
	fieldTypeRepository FieldTypeRepository
	categoryRepository  CategoryRepository
}

// NewService constructs a new dictionary [Service].
func NewService(fieldTypes FieldTypeRepository, categories CategoryRepository) *Service {
	return &Service{
		fieldTypeRepository: fieldTypes,
		categoryRepository:  categories,
	}
}

// List returns every registered field type.
func (service *Service) List(context context.Context) ([]FieldType, error) {
	return service.fieldTypeRepository.List(context)
}

/*
Index returns the vocabulary keyed by field type ID.

Used by template validation to resolve the type references of a whole
write payload with a single round trip.
*/
func (service *Service) Index(context context.Context) (map[string]FieldType, error) {
	fieldTypes, err := service.fieldTypeRepository.List(context)
	if err != nil {
		return nil, err
	}

	index := make(map[string]FieldType, len(fieldTypes))
	for _, fieldType := range fieldTypes {
		index[fieldType.ID] = fieldType
	}

	return index, nil
}

// Categories returns every template category.
func (service *Service) Categories(context context.Context) ([]Category, error) {
	return service.categoryRepository.List(context)
}

// Category returns a single category or a NotFound error. Used by template
// writes to validate their category reference.
func (service *Service) Category(context context.Context, id string) (*Category, error) {
	return service.categoryRepository.FindByID(context, id)
}

// CreateCategory registers a new category in the vocabulary.
func (service *Service) CreateCategory(context context.Context, name string) (*Category, error) {
	v := &validate.Validator{}
	err := v.
		Required("name", name).
		MaxLen("name", name, 255).
		Err()
	if err != nil {
		return nil, err
	}

	category := &Category{ID: uuidv7.New(), Name: name}
	if err := service.categoryRepository.Create(context, category); err != nil {
		return nil, err
	}

	return category, nil
}
