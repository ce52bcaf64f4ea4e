// Copyright (c) 2026 Document Template Engine. All rights reserved.
// Author: a.velichko.dev@gmail.com

/*
Package templates manages the template catalogue: CRUD over template
records, transactional persistence of field declarations, binary .docx
uploads, tag-consistency checking, and draft renders.

Architecture:

  - Service: validation and orchestration of catalogue use cases.
  - Repository: Postgres persistence (templates, groups, fields, favorites).
  - Blob store: template binaries live outside Postgres, referenced by ID.
  - Render engine: draft renders and tag extraction for consistency checks.
*/
package templates

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/document-template-engine/backend/internal/dictionary"
	"github.com/document-template-engine/backend/internal/platform/apperr"
	"github.com/document-template-engine/backend/internal/platform/blob"
	"github.com/document-template-engine/backend/internal/platform/constants"
	"github.com/document-template-engine/backend/internal/platform/metrics"
	"github.com/document-template-engine/backend/internal/platform/sec"
	"github.com/document-template-engine/backend/internal/platform/validate"
	"github.com/document-template-engine/backend/internal/render"
	"github.com/document-template-engine/backend/pkg/pagination"
	uuidv7 "github.com/document-template-engine/backend/pkg/uuid"
)

// Converter turns a rendered .docx into a PDF.
type Converter interface {
	ToPDF(ctx context.Context, docx []byte) ([]byte, error)
}

// Actor identifies the authenticated account performing an operation.
type Actor struct {
	UserID string
	Role   sec.UserRole
}

// IsAdmin reports whether the actor holds the admin role.
func (a Actor) IsAdmin() bool { return a.Role.IsAdmin() }

// Service implements template catalogue use cases.
type Service struct {
	templateRepository Repository
	dictionaryService  *dictionary.Service
	blobStore          *blob.Store
	analyzer           render.Analyzer
	converter          Converter
	metrics            *metrics.Metrics
	logger             *slog.Logger
}

// NewService constructs a new templates [Service] with its dependencies.
func NewService(
	repository Repository,
	dictionaryService *dictionary.Service,
	blobStore *blob.Store,
	analyzer render.Analyzer,
	converter Converter,
	metrics *metrics.Metrics,
	logger *slog.Logger,
) *Service {
	return &Service{
		templateRepository: repository,
		dictionaryService:  dictionaryService,
		blobStore:          blobStore,
		analyzer:           analyzer,
		converter:          converter,
		metrics:            metrics,
		logger:             logger,
	}
}

// # Creation Flow

// GroupInput declares one field group in a write payload. ClientID is a
// payload-local integer used by fields to reference their group.
type GroupInput struct {
	ClientID int    `json:"id"`
	Name     string `json:"name"`
}

// FieldInput declares one template field in a write payload.
type FieldInput struct {
	Tag          string `json:"tag"`
	Name         string `json:"name"`
	GroupID      *int   `json:"group_id,omitempty"`
	FieldTypeID  string `json:"field_type_id"`
	Length       int    `json:"length,omitempty"`
	Mask         string `json:"mask,omitempty"`
	DefaultValue string `json:"default_value,omitempty"`
	Hint         string `json:"hint,omitempty"`
}

// CreateInput is the full template write payload. CategoryID is an
// optional reference into the category vocabulary.
type CreateInput struct {
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	CategoryID  *string      `json:"category_id,omitempty"`
	Groups      []GroupInput `json:"groups,omitempty"`
	Fields      []FieldInput `json:"fields"`
}

/*
Create validates and persists a new template with its groups and fields.

Description: The whole payload is validated before any write so every
problem is reported at once — duplicate tags, duplicate group identifiers,
dangling group references, and unknown field types are each named in full.
Persistence is transactional: the template appears with all of its rows or
not at all.

Parameters:
  - context: context.Context
  - actor: Actor (becomes the template owner)
  - input: CreateInput

Returns:
  - *Template: Created entity
  - err: Validation or storage errors
*/
func (service *Service) Create(context context.Context, actor Actor, input CreateInput) (*Template, error) {
	fieldTypes, err := service.dictionaryService.Index(context)
	if err != nil {
		return nil, fmt.Errorf("template_service_field_types_failed: %w", err)
	}

	if err := service.validateWrite(input, fieldTypes); err != nil {
		return nil, err
	}

	if input.CategoryID != nil {
		if err := service.checkCategory(context, *input.CategoryID); err != nil {
			return nil, err
		}
	}

	template := &Template{
		ID:          uuidv7.New(),
		OwnerID:     actor.UserID,
		CategoryID:  input.CategoryID,
		Name:        input.Name,
		Description: input.Description,
	}

	groups, groupIDs := buildGroups(input.Groups)

	fields := make([]TemplateField, 0, len(input.Fields))
	for position, fieldInput := range input.Fields {
		var groupID *string
		if fieldInput.GroupID != nil {
			resolved := groupIDs[*fieldInput.GroupID]
			groupID = &resolved
		}
		fields = append(fields, TemplateField{
			ID:           uuidv7.New(),
			GroupID:      groupID,
			Tag:          fieldInput.Tag,
			Name:         fieldInput.Name,
			FieldTypeID:  fieldInput.FieldTypeID,
			Length:       fieldInput.Length,
			Mask:         fieldInput.Mask,
			DefaultValue: fieldInput.DefaultValue,
			Hint:         fieldInput.Hint,
			Position:     position,
		})
	}

	if err := service.templateRepository.Create(context, template, groups, fields); err != nil {
		return nil, fmt.Errorf("template_service_create_failed: %w", err)
	}

	return template, nil
}

/*
validateWrite checks a full write payload and reports every problem in a
single validation error.
*/
func (service *Service) validateWrite(input CreateInput, fieldTypes map[string]dictionary.FieldType) error {
	v := &validate.Validator{}
	v.Required("name", input.Name).
		MaxLen("name", input.Name, 255).
		MaxLen("description", input.Description, 2000)

	// Duplicate field tags: name all of them.
	tags := make([]string, 0, len(input.Fields))
	for _, field := range input.Fields {
		tags = append(tags, field.Tag)
	}
	if duplicates := validate.NonUnique(tags); len(duplicates) > 0 {
		v.Custom("fields", true,
			fmt.Sprintf(constants.MsgFieldTagsNotUnique, strings.Join(duplicates, ", ")))
	}

	// Duplicate client group identifiers: name all of them.
	clientIDs := make([]int, 0, len(input.Groups))
	known := make(map[int]bool, len(input.Groups))
	for _, group := range input.Groups {
		clientIDs = append(clientIDs, group.ClientID)
		known[group.ClientID] = true
	}
	if duplicates := validate.NonUnique(clientIDs); len(duplicates) > 0 {
		v.Custom("groups", true,
			fmt.Sprintf(constants.MsgGroupIDsNotUnique, joinInts(duplicates)))
	}

	// Group references must resolve within the submitted groups.
	var unknownGroups []int
	reported := make(map[int]bool)
	for _, field := range input.Fields {
		if field.GroupID != nil && !known[*field.GroupID] && !reported[*field.GroupID] {
			unknownGroups = append(unknownGroups, *field.GroupID)
			reported[*field.GroupID] = true
		}
	}
	if len(unknownGroups) > 0 {
		v.Custom("fields", true,
			fmt.Sprintf(constants.MsgUnknownGroupID, joinInts(unknownGroups)))
	}

	// Per-field checks with field-path identifiers.
	for index, field := range input.Fields {
		fieldPath := fmt.Sprintf("fields[%d]", index)
		v.Required(fieldPath+".tag", field.Tag).
			MaxLen(fieldPath+".tag", field.Tag, 255).
			Required(fieldPath+".name", field.Name).
			MaxLen(fieldPath+".name", field.Name, 255).
			Custom(fieldPath+".length", field.Length < 0, "Must not be negative")

		if _, ok := fieldTypes[field.FieldTypeID]; !ok {
			v.Custom(fieldPath+".field_type_id", true,
				fmt.Sprintf(constants.MsgUnknownFieldType, field.FieldTypeID))
		}
	}

	for index, group := range input.Groups {
		groupPath := fmt.Sprintf("groups[%d]", index)
		v.Required(groupPath+".name", group.Name).
			MaxLen(groupPath+".name", group.Name, 255)
	}

	return v.Err()
}

// checkCategory resolves a category reference against the vocabulary and
// reports a dangling one as a validation error.
func (service *Service) checkCategory(context context.Context, categoryID string) error {
	_, err := service.dictionaryService.Category(context, categoryID)
	if err == nil {
		return nil
	}

	if appError := apperr.As(err); appError != nil && appError.Code == "NOT_FOUND" {
		v := &validate.Validator{}
		return v.Custom("category_id", true,
			fmt.Sprintf(constants.MsgUnknownCategory, categoryID)).Err()
	}

	return fmt.Errorf("template_service_category_failed: %w", err)
}

/*
buildGroups converts payload groups into entities, assigning server-side
UUIDs. Groups are ordered by client identifier so positions are stable
regardless of payload order.
*/
func buildGroups(inputs []GroupInput) ([]FieldGroup, map[int]string) {
	sorted := make([]GroupInput, len(inputs))
	copy(sorted, inputs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ClientID < sorted[j].ClientID })

	groups := make([]FieldGroup, 0, len(sorted))
	groupIDs := make(map[int]string, len(sorted))
	for position, input := range sorted {
		id := uuidv7.New()
		groupIDs[input.ClientID] = id
		groups = append(groups, FieldGroup{
			ID:       id,
			Name:     input.Name,
			Position: position,
		})
	}

	return groups, groupIDs
}

// joinInts renders a list of integers as "1, 2, 3".
func joinInts(values []int) string {
	parts := make([]string, len(values))
	for index, value := range values {
		parts[index] = strconv.Itoa(value)
	}
	return strings.Join(parts, ", ")
}

// # Read Flow

// List returns one page of templates visible to the actor.
//
// Soft-deleted templates only appear when the actor is an admin and asked
// for them explicitly.
func (service *Service) List(context context.Context, actor Actor, filter ListFilter, params pagination.Params) ([]Template, *pagination.Meta, error) {
	filter.ViewerID = actor.UserID
	if filter.IncludeDeleted && !actor.IsAdmin() {
		filter.IncludeDeleted = false
	}

	items, total, err := service.templateRepository.List(context, filter, params)
	if err != nil {
		return nil, nil, fmt.Errorf("template_service_list_failed: %w", err)
	}

	meta := pagination.NewMeta(params.Page, params.Limit, total)
	return items, &meta, nil
}

/*
Get returns a single template.

Deleted templates stay addressable by their owner and by admins; everyone
else receives NotFound, exactly as if the record never existed.
*/
func (service *Service) Get(context context.Context, actor Actor, id string) (*Template, error) {
	template, err := service.templateRepository.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if template.Deleted && !service.canManage(actor, template) {
		return nil, apperr.NotFound("Template")
	}

	return template, nil
}

// Fields returns the form-oriented field listing of a template: groups in
// position order, each with its fields, ungrouped fields last.
func (service *Service) Fields(context context.Context, actor Actor, id string) ([]GroupedFields, error) {
	if _, err := service.Get(context, actor, id); err != nil {
		return nil, err
	}

	groups, fields, err := service.templateRepository.Fields(context, id)
	if err != nil {
		return nil, fmt.Errorf("template_service_fields_failed: %w", err)
	}

	return groupFields(groups, fields), nil
}

// groupFields bundles fields under their groups, preserving position order.
func groupFields(groups []FieldGroup, fields []TemplateField) []GroupedFields {
	byGroup := make(map[string][]TemplateField)
	var ungrouped []TemplateField
	for _, field := range fields {
		if field.GroupID == nil {
			ungrouped = append(ungrouped, field)
			continue
		}
		byGroup[*field.GroupID] = append(byGroup[*field.GroupID], field)
	}

	result := make([]GroupedFields, 0, len(groups)+1)
	for index := range groups {
		group := groups[index]
		bundle := byGroup[group.ID]
		if bundle == nil {
			bundle = []TemplateField{}
		}
		result = append(result, GroupedFields{Group: &group, Fields: bundle})
	}
	if len(ungrouped) > 0 {
		result = append(result, GroupedFields{Group: nil, Fields: ungrouped})
	}

	return result
}

// # Deletion Flow

/*
Delete soft-deletes a template. Only the owner or an admin may delete;
deleting an already-deleted template reports NotFound.
*/
func (service *Service) Delete(context context.Context, actor Actor, id string) error {
	template, err := service.templateRepository.FindByID(context, id)
	if err != nil {
		return err
	}

	if !service.canManage(actor, template) {
		return apperr.Forbidden("Only the owner or an admin can delete a template")
	}

	if template.Deleted {
		return &apperr.AppError{
			Code:       "NOT_FOUND",
			Message:    constants.MsgTemplateAlreadyDeleted,
			HTTPStatus: 404,
		}
	}

	if err := service.templateRepository.SoftDelete(context, id); err != nil {
		return fmt.Errorf("template_service_delete_failed: %w", err)
	}

	return nil
}

// canManage reports whether the actor may mutate the template.
func (service *Service) canManage(actor Actor, template *Template) bool {
	return actor.IsAdmin() || template.OwnerID == actor.UserID
}

// # Binary Upload Flow

// UploadResult reports a stored binary along with the consistency findings
// between its embedded tags and the declared fields.
type UploadResult struct {
	Template          *Template                 `json:"template"`
	ConsistencyErrors []render.ConsistencyError `json:"consistency_errors"`
}

/*
UploadFile validates, stores, and attaches a .docx binary to a template.

Description: The payload must be a readable OOXML archive. The previous
binary, if any, is released from the blob store after the new one is
attached. The response embeds the tag-consistency findings so callers see
immediately whether the file matches the declared fields.

Parameters:
  - context: context.Context
  - actor: Actor (owner or admin)
  - id: Template UUID
  - fileName: Original client file name
  - data: Raw .docx bytes

Returns:
  - *UploadResult: Updated template plus consistency findings
  - err: Authorization, media, or storage errors
*/
func (service *Service) UploadFile(context context.Context, actor Actor, id, fileName string, data []byte) (*UploadResult, error) {
	template, err := service.templateRepository.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if !service.canManage(actor, template) {
		return nil, apperr.Forbidden("Only the owner or an admin can upload a template file")
	}
	if template.Deleted {
		return nil, apperr.NotFound("Template")
	}

	// Reject non-OOXML payloads before touching storage.
	renderer := render.NewRenderer(data, service.analyzer, service.logger)
	documentTags, err := renderer.Tags()
	if err != nil {
		return nil, err
	}

	meta, err := service.blobStore.Put(context, path.Base(fileName), constants.ContentTypeDocx, data)
	if err != nil {
		return nil, fmt.Errorf("template_service_blob_put_failed: %w", err)
	}

	previousFileID := template.FileID
	if err := service.templateRepository.UpdateFile(context, id, meta.FileName, meta.ID); err != nil {
		return nil, fmt.Errorf("template_service_file_update_failed: %w", err)
	}

	// Release the replaced binary. Failure leaves an orphan blob, which is
	// harmless, so it is only logged.
	if previousFileID != "" {
		if err := service.blobStore.Delete(context, previousFileID); err != nil {
			service.logger.Warn("orphan template blob left behind",
				slog.String("template_id", id),
				slog.String("blob_id", previousFileID),
				slog.String("error", err.Error()))
		}
	}

	service.metrics.TemplateUploadsTotal.Inc()

	template.FileName = meta.FileName
	template.FileID = meta.ID

	diff, err := service.diffAgainstFields(context, id, documentTags)
	if err != nil {
		return nil, err
	}

	return &UploadResult{
		Template:          template,
		ConsistencyErrors: diff.Errors(),
	}, nil
}

// # Preview Image Flow

/*
UploadPreview stores a preview image for a template, replacing any
previous one. Only PNG and JPEG payloads are accepted.

Parameters:
  - context: context.Context
  - actor: Actor (owner or admin)
  - id: Template UUID
  - fileName: Original client file name
  - contentType: Declared image media type
  - data: Raw image bytes

Returns:
  - *Template: Updated entity
  - err: Authorization, media, or storage errors
*/
func (service *Service) UploadPreview(context context.Context, actor Actor, id, fileName, contentType string, data []byte) (*Template, error) {
	template, err := service.templateRepository.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if !service.canManage(actor, template) {
		return nil, apperr.Forbidden("Only the owner or an admin can upload a template preview")
	}
	if template.Deleted {
		return nil, apperr.NotFound("Template")
	}
	if contentType != constants.ContentTypePNG && contentType != constants.ContentTypeJPEG {
		return nil, apperr.UnsupportedMedia("Preview must be a PNG or JPEG image")
	}

	meta, err := service.blobStore.Put(context, path.Base(fileName), contentType, data)
	if err != nil {
		return nil, fmt.Errorf("template_service_blob_put_failed: %w", err)
	}

	previousPreviewID := template.PreviewID
	if err := service.templateRepository.UpdatePreview(context, id, meta.ID); err != nil {
		return nil, fmt.Errorf("template_service_preview_update_failed: %w", err)
	}

	if previousPreviewID != "" {
		if err := service.blobStore.Delete(context, previousPreviewID); err != nil {
			service.logger.Warn("orphan preview blob left behind",
				slog.String("template_id", id),
				slog.String("blob_id", previousPreviewID),
				slog.String("error", err.Error()))
		}
	}

	template.PreviewID = meta.ID
	return template, nil
}

// Preview returns the stored preview image of a template.
func (service *Service) Preview(context context.Context, actor Actor, id string) (*RenderedFile, error) {
	template, err := service.Get(context, actor, id)
	if err != nil {
		return nil, err
	}
	if template.PreviewID == "" {
		return nil, apperr.NotFound("Preview")
	}

	data, meta, err := service.blobStore.Get(context, template.PreviewID)
	if err != nil {
		return nil, fmt.Errorf("template_service_blob_get_failed: %w", err)
	}

	return &RenderedFile{
		FileName:    meta.FileName,
		ContentType: meta.ContentType,
		Data:        data,
	}, nil
}

// # Consistency Flow

// ConsistencyResult is the outcome of a tag-consistency check.
type ConsistencyResult struct {
	Consistent bool                      `json:"consistent"`
	Message    string                    `json:"message"`
	Errors     []render.ConsistencyError `json:"errors,omitempty"`
}

/*
CheckConsistency compares the tags embedded in the stored binary with the
declared field tags of the template.

Comparison is exact: tags match field tags byte for byte or they are
reported, in both directions.
*/
func (service *Service) CheckConsistency(context context.Context, actor Actor, id string) (*ConsistencyResult, error) {
	template, err := service.Get(context, actor, id)
	if err != nil {
		return nil, err
	}
	if template.FileID == "" {
		return nil, apperr.Unprocessable("Template has no uploaded file")
	}

	data, _, err := service.blobStore.Get(context, template.FileID)
	if err != nil {
		return nil, fmt.Errorf("template_service_blob_get_failed: %w", err)
	}

	renderer := render.NewRenderer(data, service.analyzer, service.logger)
	documentTags, err := renderer.Tags()
	if err != nil {
		return nil, err
	}

	diff, err := service.diffAgainstFields(context, id, documentTags)
	if err != nil {
		return nil, err
	}

	result := &ConsistencyResult{
		Consistent: diff.Consistent(),
		Message:    constants.MsgTemplateConsistent,
		Errors:     diff.Errors(),
	}
	if !result.Consistent {
		result.Message = ""
	}

	outcome := "consistent"
	if !result.Consistent {
		outcome = "inconsistent"
	}
	service.metrics.ConsistencyChecksTotal.WithLabelValues(outcome).Inc()

	return result, nil
}

// diffAgainstFields diffs document tags against the declared field tags.
func (service *Service) diffAgainstFields(context context.Context, templateID string, documentTags []string) (render.TagDiff, error) {
	_, fields, err := service.templateRepository.Fields(context, templateID)
	if err != nil {
		return render.TagDiff{}, fmt.Errorf("template_service_fields_failed: %w", err)
	}

	fieldTags := make([]string, 0, len(fields))
	for _, field := range fields {
		fieldTags = append(fieldTags, field.Tag)
	}

	return render.Diff(documentTags, fieldTags), nil
}

// # Draft Render Flow

// RenderedFile is a downloadable render product.
type RenderedFile struct {
	FileName    string
	ContentType string
	Data        []byte
}

/*
RenderDraft produces the review form of the template binary: every known
tag is replaced with the display name of its declared field, filters pass
values through untouched, and every run containing a tag is highlighted.
Tags with no declared field survive verbatim, so a reviewer sees both
where values will land and which tags are still undeclared.

Parameters:
  - context: context.Context
  - actor: Actor
  - id: Template UUID
  - pdf: Convert the result to PDF

Returns:
  - *RenderedFile: Download-ready payload
  - err: NotFound, media, conversion, or storage errors
*/
func (service *Service) RenderDraft(context context.Context, actor Actor, id string, pdf bool) (*RenderedFile, error) {
	template, err := service.Get(context, actor, id)
	if err != nil {
		return nil, err
	}
	if template.FileID == "" {
		return nil, apperr.Unprocessable("Template has no uploaded file")
	}

	data, _, err := service.blobStore.Get(context, template.FileID)
	if err != nil {
		return nil, fmt.Errorf("template_service_blob_get_failed: %w", err)
	}

	_, fields, err := service.templateRepository.Fields(context, id)
	if err != nil {
		return nil, fmt.Errorf("template_service_fields_failed: %w", err)
	}

	names := make(map[string]string, len(fields))
	for _, field := range fields {
		names[field.Tag] = field.Name
	}

	started := time.Now()
	renderer := render.NewRenderer(data, service.analyzer, service.logger)
	rendered, err := renderer.Render(context, names, render.ModeDraft)
	if err != nil {
		service.metrics.RenderErrorsTotal.Inc()
		return nil, err
	}
	service.metrics.RendersTotal.WithLabelValues(render.ModeDraft.String()).Inc()
	service.metrics.RenderDurationSeconds.WithLabelValues(render.ModeDraft.String()).
		Observe(time.Since(started).Seconds())

	result := &RenderedFile{
		FileName:    template.Name + "_draft.docx",
		ContentType: constants.ContentTypeDocx,
		Data:        rendered,
	}

	if pdf {
		converted, err := service.converter.ToPDF(context, rendered)
		if err != nil {
			return nil, err
		}
		result.FileName = template.Name + "_draft.pdf"
		result.ContentType = constants.ContentTypePDF
		result.Data = converted
	}

	return result, nil
}

// # Favorites

// Favorite marks a template as favorite for the actor. Idempotent.
func (service *Service) Favorite(context context.Context, actor Actor, id string) error {
	if _, err := service.Get(context, actor, id); err != nil {
		return err
	}
	if err := service.templateRepository.AddFavorite(context, actor.UserID, id); err != nil {
		return fmt.Errorf("template_service_favorite_failed: %w", err)
	}
	return nil
}

// Unfavorite clears a favorite mark. Idempotent.
func (service *Service) Unfavorite(context context.Context, actor Actor, id string) error {
	if _, err := service.Get(context, actor, id); err != nil {
		return err
	}
	if err := service.templateRepository.RemoveFavorite(context, actor.UserID, id); err != nil {
		return fmt.Errorf("template_service_unfavorite_failed: %w", err)
	}
	return nil
}

// # Internal Collaborators

// Lookup returns a template row without visibility checks. Access control
// belongs to the caller.
func (service *Service) Lookup(context context.Context, id string) (*Template, error) {
	return service.templateRepository.FindByID(context, id)
}

/*
RenderMaterial loads everything the document renderer needs: the template
row, its declared fields, and the stored binary.

Used by the documents domain; access control belongs to the caller.
*/
func (service *Service) RenderMaterial(context context.Context, templateID string) (*Template, []TemplateField, []byte, error) {
	template, err := service.templateRepository.FindByID(context, templateID)
	if err != nil {
		return nil, nil, nil, err
	}
	if template.FileID == "" {
		return nil, nil, nil, apperr.Unprocessable("Template has no uploaded file")
	}

	_, fields, err := service.templateRepository.Fields(context, templateID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("template_service_fields_failed: %w", err)
	}

	data, _, err := service.blobStore.Get(context, template.FileID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("template_service_blob_get_failed: %w", err)
	}

	return template, fields, data, nil
}

// FieldsByID returns the declared fields of a template keyed by field ID.
func (service *Service) FieldsByID(context context.Context, templateID string) (map[string]TemplateField, error) {
	_, fields, err := service.templateRepository.Fields(context, templateID)
	if err != nil {
		return nil, fmt.Errorf("template_service_fields_failed: %w", err)
	}

	index := make(map[string]TemplateField, len(fields))
	for _, field := range fields {
		index[field.ID] = field
	}

	return index, nil
}
