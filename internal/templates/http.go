// Copyright (c) 2026 Document Template Engine. All rights reserved.
// Author: a.velichko.dev@gmail.com

package templates

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/document-template-engine/backend/internal/platform/constants"
	"github.com/document-template-engine/backend/internal/platform/middleware"
	requestutil "github.com/document-template-engine/backend/internal/platform/request"
	"github.com/document-template-engine/backend/internal/platform/respond"
	"github.com/document-template-engine/backend/internal/platform/sec"
	"github.com/document-template-engine/backend/internal/platform/validate"
	"github.com/document-template-engine/backend/pkg/pagination"
)

// Handler implements template catalogue HTTP endpoints.
type Handler struct {
	templateService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{templateService: service}
}

// Routes returns a [chi.Router] configured with template routes.
//
// # Endpoints
//   - GET    /                    : Paginated catalogue listing.
//   - POST   /                    : Create a template with fields.
//   - GET    /{templateID}        : Single template.
//   - DELETE /{templateID}        : Soft delete.
//   - PUT    /{templateID}/file   : Upload/replace the .docx binary.
//   - PUT    /{templateID}/preview : Upload/replace the preview image.
//   - GET    /{templateID}/preview : Preview image download.
//   - GET    /{templateID}/consistency : Tag consistency report (admin).
//   - GET    /{templateID}/draft  : Draft render download (?pdf=1).
//   - GET    /{templateID}/fields : Grouped field listing.
//   - POST   /{templateID}/favorite / DELETE : Favorite marks.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/", handler.list)
	router.Post("/", handler.create)

	router.Route("/{templateID}", func(r chi.Router) {
		r.Get("/", handler.get)
		r.Delete("/", handler.delete)
		r.Put("/file", handler.uploadFile)
		r.Put("/preview", handler.uploadPreview)
		r.Get("/preview", handler.preview)
		r.With(middleware.RequireRole(sec.RoleAdmin)).Get("/consistency", handler.consistency)
		r.Get("/draft", handler.draft)
		r.Get("/fields", handler.fields)
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
list returns one page of the template catalogue.

GET /api/v1/templates?page=&limit=&search=&favorites=1&include_deleted=1

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
		Search:         request.URL.Query().Get("search"),
		IncludeDeleted: request.URL.Query().Get("include_deleted") == "1",
	}
	if request.URL.Query().Get("favorites") == "1" {
		filter.FavoritesOf = actor.UserID
	}

	items, meta, err := handler.templateService.List(
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
create persists a new template with its field declarations.

POST /api/v1/templates

Response:
  - 201: Template
  - 400: VALIDATION_ERROR with per-field details
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

	template, err := handler.templateService.Create(request.Context(), actor, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, template)
}

/*
get returns a single template.

GET /api/v1/templates/{templateID}
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	actor, err := actorFrom(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	template, err := handler.templateService.Get(
		request.Context(), actor, requestutil.ID(request, "templateID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, template)
}

/*
delete soft-deletes a template.

DELETE /api/v1/templates/{templateID}

Response:
  - 204: No Content
  - 403: Not the owner and not an admin
  - 404: Unknown or already deleted
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	actor, err := actorFrom(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	err = handler.templateService.Delete(
		request.Context(), actor, requestutil.ID(request, "templateID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
uploadFile stores the binary .docx of a template.

PUT /api/v1/templates/{templateID}/file?filename=contract.docx

Request: Raw .docx bytes in the body.

Response:
  - 200: UploadResult with consistency findings
  - 415: Payload is not a readable OOXML archive
*/
func (handler *Handler) uploadFile(writer http.ResponseWriter, request *http.Request) {
	actor, err := actorFrom(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	data, err := requestutil.ReadBody(request, constants.MaxTemplateFileSize)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	fileName := request.URL.Query().Get("filename")
	if fileName == "" {
		fileName = "template.docx"
	}

	result, err := handler.templateService.UploadFile(
		request.Context(), actor, requestutil.ID(request, "templateID"), fileName, data)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

/*
uploadPreview stores the preview image of a template.

PUT /api/v1/templates/{templateID}/preview?filename=preview.png

Request: Raw image bytes in the body; Content-Type names the image type.

Response:
  - 200: Template
  - 415: Not a PNG or JPEG payload
*/
func (handler *Handler) uploadPreview(writer http.ResponseWriter, request *http.Request) {
	actor, err := actorFrom(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	data, err := requestutil.ReadBody(request, constants.MaxPreviewImageSize)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	fileName := request.URL.Query().Get("filename")
	if fileName == "" {
		fileName = "preview.png"
	}

	template, err := handler.templateService.UploadPreview(
		request.Context(), actor, requestutil.ID(request, "templateID"),
		fileName, request.Header.Get("Content-Type"), data)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, template)
}

/*
preview downloads the preview image of a template.

GET /api/v1/templates/{templateID}/preview

Response:
  - 200: Image bytes
  - 404: No preview uploaded
*/
func (handler *Handler) preview(writer http.ResponseWriter, request *http.Request) {
	actor, err := actorFrom(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	file, err := handler.templateService.Preview(
		request.Context(), actor, requestutil.ID(request, "templateID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.File(writer, file.ContentType, file.FileName, file.Data)
}

/*
consistency reports whether the stored binary matches the declared fields.

GET /api/v1/templates/{templateID}/consistency

Response:
  - 200: ConsistencyResult
  - 422: Template has no uploaded file
*/
func (handler *Handler) consistency(writer http.ResponseWriter, request *http.Request) {
	actor, err := actorFrom(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.templateService.CheckConsistency(
		request.Context(), actor, requestutil.ID(request, "templateID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

/*
draft downloads the draft render of a template: field display names in
place of their tags, highlighted.

GET /api/v1/templates/{templateID}/draft?pdf=1
*/
func (handler *Handler) draft(writer http.ResponseWriter, request *http.Request) {
	actor, err := actorFrom(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	pdf := request.URL.Query().Get("pdf") == "1"
	file, err := handler.templateService.RenderDraft(
		request.Context(), actor, requestutil.ID(request, "templateID"), pdf)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.File(writer, file.ContentType, file.FileName, file.Data)
}

/*
fields returns the grouped field listing used to build input forms.

GET /api/v1/templates/{templateID}/fields
*/
func (handler *Handler) fields(writer http.ResponseWriter, request *http.Request) {
	actor, err := actorFrom(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	grouped, err := handler.templateService.Fields(
		request.Context(), actor, requestutil.ID(request, "templateID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, grouped)
}

/*
favorite marks a template as favorite for the current user.

POST /api/v1/templates/{templateID}/favorite
*/
func (handler *Handler) favorite(writer http.ResponseWriter, request *http.Request) {
	actor, err := actorFrom(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	err = handler.templateService.Favorite(
		request.Context(), actor, requestutil.ID(request, "templateID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
unfavorite clears the favorite mark.

DELETE /api/v1/templates/{templateID}/favorite
*/
func (handler *Handler) unfavorite(writer http.ResponseWriter, request *http.Request) {
	actor, err := actorFrom(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	err = handler.templateService.Unfavorite(
		request.Context(), actor, requestutil.ID(request, "templateID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
