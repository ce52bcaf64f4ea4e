// Copyright (c) 2026 Document Template Engine. All rights reserved.
// Author: a.velichko.dev@gmail.com

package dictionary

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/document-template-engine/backend/internal/platform/middleware"
	requestutil "github.com/document-template-engine/backend/internal/platform/request"
	"github.com/document-template-engine/backend/internal/platform/respond"
	"github.com/document-template-engine/backend/internal/platform/sec"
	"github.com/document-template-engine/backend/internal/platform/validate"
)

// Handler implements vocabulary HTTP endpoints.
type Handler struct {
	dictionaryService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{dictionaryService: service}
}

// Routes returns a [chi.Router] with the field type routes.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/", handler.list)

	return router
}

// CategoryRoutes returns a [chi.Router] with the category routes.
func (handler *Handler) CategoryRoutes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/", handler.categories)
	router.With(middleware.RequireRole(sec.RoleAdmin)).Post("/", handler.createCategory)

	return router
}

/*
list returns the registered field types.

GET /api/v1/field-types

Response:
  - 200: []FieldType
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	fieldTypes, err := handler.dictionaryService.List(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, fieldTypes)
}

/*
categories returns the registered template categories.

GET /api/v1/categories

Response:
  - 200: []Category
*/
func (handler *Handler) categories(writer http.ResponseWriter, request *http.Request) {
	categories, err := handler.dictionaryService.Categories(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, categories)
}

// categoryCreateRequest is the category creation payload.
type categoryCreateRequest struct {
	Name string `json:"name"`
}

/*
createCategory registers a new template category.

POST /api/v1/categories (admin)

Response:
  - 201: Category
  - 409: Name already registered
*/
func (handler *Handler) createCategory(writer http.ResponseWriter, request *http.Request) {
	var payload categoryCreateRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	category, err := handler.dictionaryService.CreateCategory(request.Context(), payload.Name)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, category)
}
