// Copyright (c) 2026 Document Template Engine. All rights reserved.
// Author: a.velichko.dev@gmail.com

package documents

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/document-template-engine/backend/internal/platform/middleware"
	requestutil "github.com/document-template-engine/backend/internal/platform/request"
	"github.com/document-template-engine/backend/internal/platform/respond"
	"github.com/document-template-engine/backend/internal/platform/sec"
	"github.com/document-template-engine/backend/internal/platform/validate"
	"github.com/document-template-engine/backend/pkg/pagination"
)

// Handler implements document HTTP endpoints.
type Handler struct {
	documentService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{documentService: service}
}

// Routes returns a [chi.Router] configured with document routes.
//
// # Endpoints
//   - GET    /                    : Paginated listing (own documents).
//   - POST   /                    : Create a document over a template.
//   - GET    /{documentID}        : Single document.
//   - PATCH  /{documentID}        : Partial update (values, completion).
//   - DELETE /{documentID}        : Delete.
//   - GET    /{documentID}/fields : Stored field values.
//   - GET    /{documentID}/download : Final render download (?pdf=1).
//   - POST   /{documentID}/favorite / DELETE : Favorite marks.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/", handler.list)
	router.Post("/", handler.create)

	router.Route("/{documentID}", func(r chi.Router) {
		r.Get("/", handler.get)
		r.Patch("/", handler.update)
		r.Delete("/", handler.delete)
		r.Get("/fields", handler.fields)
		r.Get("/download", handler.download)
		r.Post("/favorite", handler.favorite)
		r.Delete("/favorite", handler.unfavorite)
	})

	return router
}

// actorFrom builds the service-level actor from the request claims.
func actorFrom(request *http.Request) (Actor, error) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		return Actor{}, err
	}
	return Actor{UserID: claims.UserID, Role: sec.UserRole(claims.Role)}, nil
}

/*
list returns one page of the caller's documents.

GET /api/v1/documents?page=&limit=&search=&favorites=1

Response:
  - 200: {"items": [...], "meta": {...}}
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	actor, err := actorFrom(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	filter := ListFilter{
		Search: request.URL.Query().Get("search"),
	}
	if request.URL.Query().Get("favorites") == "1" {
		filter.FavoritesOf = actor.UserID
	}

	items, meta, err := handler.documentService.List(
		request.Context(), actor, filter, pagination.FromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		"items": items,
		"meta":  meta,
	})
}

/*
create persists a new document over a template.

POST /api/v1/documents

Response:
  - 201: Document
  - 400: VALIDATION_ERROR with per-field details
  - 404: Unknown or deleted template
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	actor, err := actorFrom(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input CreateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	document, err := handler.documentService.Create(request.Context(), actor, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, document)
}

/*
get returns a single document.

GET /api/v1/documents/{documentID}
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	actor, err := actorFrom(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	document, err := handler.documentService.Get(
		request.Context(), actor, requestutil.ID(request, "documentID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, document)
}

/*
update applies a partial change to a document.

PATCH /api/v1/documents/{documentID}

Description: Omitted members keep their stored values. Submitted field
values replace the stored set wholesale.

Response:
  - 200: Updated Document
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	actor, err := actorFrom(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input UpdateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	document, err := handler.documentService.Update(
		request.Context(), actor, requestutil.ID(request, "documentID"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, document)
}

/*
delete removes a document.

DELETE /api/v1/documents/{documentID}
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	actor, err := actorFrom(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	err = handler.documentService.Delete(
		request.Context(), actor, requestutil.ID(request, "documentID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
fields returns the stored field values of a document.

GET /api/v1/documents/{documentID}/fields
*/
func (handler *Handler) fields(writer http.ResponseWriter, request *http.Request) {
	actor, err := actorFrom(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	fields, err := handler.documentService.Fields(
		request.Context(), actor, requestutil.ID(request, "documentID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, fields)
}

/*
download renders the final document file.

GET /api/v1/documents/{documentID}/download?pdf=1

Response:
  - 200: The rendered .docx or PDF as an attachment
  - 422: The document's template has no uploaded file
*/
func (handler *Handler) download(writer http.ResponseWriter, request *http.Request) {
	actor, err := actorFrom(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	pdf := request.URL.Query().Get("pdf") == "1"
	file, err := handler.documentService.Download(
		request.Context(), actor, requestutil.ID(request, "documentID"), pdf)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.File(writer, file.ContentType, file.FileName, file.Data)
}

/*
favorite marks a document as favorite for the current user.

POST /api/v1/documents/{documentID}/favorite
*/
func (handler *Handler) favorite(writer http.ResponseWriter, request *http.Request) {
	actor, err := actorFrom(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	err = handler.documentService.Favorite(
		request.Context(), actor, requestutil.ID(request, "documentID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
unfavorite clears the favorite mark.

DELETE /api/v1/documents/{documentID}/favorite
*/
func (handler *Handler) unfavorite(writer http.ResponseWriter, request *http.Request) {
	actor, err := actorFrom(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	err = handler.documentService.Unfavorite(
		request.Context(), actor, requestutil.ID(request, "documentID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
