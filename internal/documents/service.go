// Copyright (c) 2026 Document Template Engine. All rights reserved.
// Author: a.velichko.dev@gmail.com

/*
Package documents manages user documents: instances of templates filled
with field values, rendered on demand into final .docx or PDF files.

Architecture:

  - Service: validation, access control, render-context assembly.
  - Repository: Postgres persistence (documents, values, favorites).
  - Template catalogue: supplies field declarations and stored binaries.
  - Mailer: completion notifications, best effort only.
*/
package documents

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/document-template-engine/backend/internal/dictionary"
	"github.com/document-template-engine/backend/internal/platform/apperr"
	"github.com/document-template-engine/backend/internal/platform/constants"
	"github.com/document-template-engine/backend/internal/platform/metrics"
	"github.com/document-template-engine/backend/internal/platform/validate"
	"github.com/document-template-engine/backend/internal/render"
	"github.com/document-template-engine/backend/internal/templates"
	"github.com/document-template-engine/backend/internal/users/auth"
	"github.com/document-template-engine/backend/pkg/pagination"
	uuidv7 "github.com/document-template-engine/backend/pkg/uuid"
)

// Date layouts: values arrive in ISO form and render in the Russian
// day-first convention.
const (
	dateInputLayout  = "2006-01-02"
	dateOutputLayout = "02.01.2006"
)

// TemplateCatalog is the slice of the template domain the document domain
// depends on.
type TemplateCatalog interface {
	// Lookup returns a template row without visibility checks.
	Lookup(ctx context.Context, id string) (*templates.Template, error)

	// FieldsByID returns the declared fields of a template keyed by field ID.
	FieldsByID(ctx context.Context, templateID string) (map[string]templates.TemplateField, error)

	// RenderMaterial loads the template row, its fields, and the binary.
	RenderMaterial(ctx context.Context, templateID string) (*templates.Template, []templates.TemplateField, []byte, error)
}

// Converter turns a rendered .docx into a PDF.
type Converter interface {
	ToPDF(ctx context.Context, docx []byte) ([]byte, error)
}

// Mailer delivers completion notifications.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// AccountDirectory resolves account IDs to user records.
type AccountDirectory interface {
	FindByID(ctx context.Context, id string) (*auth.User, error)
}

// Actor identifies the authenticated account performing an operation.
type Actor = templates.Actor

// Service implements document use cases.
type Service struct {
	documentRepository Repository
	catalog            TemplateCatalog
	dictionaryService  *dictionary.Service
	accounts           AccountDirectory
	mailer             Mailer
	analyzer           render.Analyzer
	converter          Converter
	metrics            *metrics.Metrics
	logger             *slog.Logger
}

// NewService constructs a new documents [Service] with its dependencies.
func NewService(
	repository Repository,
	catalog TemplateCatalog,
	dictionaryService *dictionary.Service,
	accounts AccountDirectory,
	mailer Mailer,
	analyzer render.Analyzer,
	converter Converter,
	metrics *metrics.Metrics,
	logger *slog.Logger,
) *Service {
	return &Service{
		documentRepository: repository,
		catalog:            catalog,
		dictionaryService:  dictionaryService,
		accounts:           accounts,
		mailer:             mailer,
		analyzer:           analyzer,
		converter:          converter,
		metrics:            metrics,
		logger:             logger,
	}
}

// # Creation Flow

// FieldValueInput sets the value of one template field.
type FieldValueInput struct {
	TemplateFieldID string `json:"template_field_id"`
	Value           string `json:"value"`
}

// CreateInput is the document write payload.
type CreateInput struct {
	TemplateID string            `json:"template_id"`
	Name       string            `json:"name"`
	Fields     []FieldValueInput `json:"fields"`
}

/*
Create persists a new document over an existing template.

Description: Every submitted value must reference a field of the chosen
template; values pointing at fields of other templates are rejected
explicitly, all of them named at once, rather than silently dropped.

Parameters:
  - context: context.Context
  - actor: Actor (becomes the document owner)
  - input: CreateInput

Returns:
  - *Document: Created entity
  - err: Validation, NotFound, or storage errors
*/
func (service *Service) Create(context context.Context, actor Actor, input CreateInput) (*Document, error) {
	v := &validate.Validator{}
	v.Required("name", input.Name).
		MaxLen("name", input.Name, 255).
		Required("template_id", input.TemplateID)
	if err := v.Err(); err != nil {
		return nil, err
	}

	template, err := service.catalog.Lookup(context, input.TemplateID)
	if err != nil {
		return nil, err
	}
	if template.Deleted {
		return nil, apperr.NotFound("Template")
	}

	if err := service.validateFieldValues(context, input.TemplateID, input.Fields); err != nil {
		return nil, err
	}

	document := &Document{
		ID:         uuidv7.New(),
		TemplateID: input.TemplateID,
		OwnerID:    actor.UserID,
		Name:       input.Name,
	}

	fields := buildFields(input.Fields)
	if err := service.documentRepository.Create(context, document, fields); err != nil {
		return nil, fmt.Errorf("document_service_create_failed: %w", err)
	}

	return document, nil
}

/*
validateFieldValues checks that every value references a field of the
document's template, reporting all offenders in one validation error.
*/
func (service *Service) validateFieldValues(context context.Context, templateID string, inputs []FieldValueInput) error {
	if len(inputs) == 0 {
		return nil
	}

	declared, err := service.catalog.FieldsByID(context, templateID)
	if err != nil {
		return err
	}

	v := &validate.Validator{}

	ids := make([]string, 0, len(inputs))
	for _, input := range inputs {
		ids = append(ids, input.TemplateFieldID)
	}
	if duplicates := validate.NonUnique(ids); len(duplicates) > 0 {
		v.Custom("fields", true,
			fmt.Sprintf("Duplicate field references: %s", strings.Join(duplicates, ", ")))
	}

	for index, input := range inputs {
		fieldPath := fmt.Sprintf("fields[%d].template_field_id", index)
		if _, ok := declared[input.TemplateFieldID]; !ok {
			v.Custom(fieldPath, true,
				fmt.Sprintf(constants.MsgWrongTemplateField, input.TemplateFieldID))
		}
	}

	return v.Err()
}

// buildFields converts payload values into entities with fresh IDs.
func buildFields(inputs []FieldValueInput) []DocumentField {
	fields := make([]DocumentField, 0, len(inputs))
	for _, input := range inputs {
		fields = append(fields, DocumentField{
			ID:              uuidv7.New(),
			TemplateFieldID: input.TemplateFieldID,
			Value:           input.Value,
		})
	}
	return fields
}

// # Read Flow

// Get returns a single document. Documents are private: only the owner and
// admins may read them.
func (service *Service) Get(context context.Context, actor Actor, id string) (*Document, error) {
	document, err := service.documentRepository.FindByID(context, id)
	if err != nil {
		return nil, err
	}
	if !service.canAccess(actor, document) {
		return nil, apperr.NotFound("Document")
	}
	return document, nil
}

// Fields returns the stored field values of a document.
func (service *Service) Fields(context context.Context, actor Actor, id string) ([]DocumentField, error) {
	if _, err := service.Get(context, actor, id); err != nil {
		return nil, err
	}

	fields, err := service.documentRepository.Fields(context, id)
	if err != nil {
		return nil, fmt.Errorf("document_service_fields_failed: %w", err)
	}

	return fields, nil
}

// List returns one page of the actor's documents. Admins see every
// document; everyone else only their own.
func (service *Service) List(context context.Context, actor Actor, filter ListFilter, params pagination.Params) ([]Document, *pagination.Meta, error) {
	filter.ViewerID = actor.UserID
	if !actor.IsAdmin() {
		filter.OwnerID = actor.UserID
	}

	items, total, err := service.documentRepository.List(context, filter, params)
	if err != nil {
		return nil, nil, fmt.Errorf("document_service_list_failed: %w", err)
	}

	meta := pagination.NewMeta(params.Page, params.Limit, total)
	return items, &meta, nil
}

// canAccess reports whether the actor may read or mutate the document.
func (service *Service) canAccess(actor Actor, document *Document) bool {
	return actor.IsAdmin() || document.OwnerID == actor.UserID
}

// # Update Flow

// UpdateInput is the partial document update payload. Nil members keep the
// stored value; a nil Fields slice keeps the stored field values.
type UpdateInput struct {
	Name      *string           `json:"name,omitempty"`
	Completed *bool             `json:"completed,omitempty"`
	Fields    []FieldValueInput `json:"fields,omitempty"`
}

/*
Update applies a partial change to a document.

Description: Submitted field values replace the stored set wholesale and
pass the same template-membership validation as creation. Marking a
document completed triggers a best-effort mail notification to its owner;
mail failures are logged, never surfaced.
*/
func (service *Service) Update(context context.Context, actor Actor, id string, input UpdateInput) (*Document, error) {
	document, err := service.Get(context, actor, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		v := &validate.Validator{}
		if err := v.Required("name", *input.Name).MaxLen("name", *input.Name, 255).Err(); err != nil {
			return nil, err
		}
		document.Name = *input.Name
	}

	var fields []DocumentField
	if input.Fields != nil {
		if err := service.validateFieldValues(context, document.TemplateID, input.Fields); err != nil {
			return nil, err
		}
		fields = buildFields(input.Fields)
	}

	wasCompleted := document.Completed
	if input.Completed != nil {
		document.Completed = *input.Completed
	}

	if err := service.documentRepository.Update(context, document, fields); err != nil {
		return nil, fmt.Errorf("document_service_update_failed: %w", err)
	}

	if !wasCompleted && document.Completed {
		service.notifyCompleted(context, document)
	}

	return document, nil
}

// notifyCompleted mails the owner that the document is ready. Best effort.
func (service *Service) notifyCompleted(context context.Context, document *Document) {
	user, err := service.accounts.FindByID(context, document.OwnerID)
	if err != nil {
		service.logger.Warn("completion notification skipped",
			slog.String("document_id", document.ID),
			slog.String("error", err.Error()))
		return
	}

	subject := fmt.Sprintf("Документ «%s» готов", document.Name)
	body := fmt.Sprintf(
		"Документ «%s» отмечен как завершённый и доступен для скачивания.",
		document.Name)

	if err := service.mailer.Send(context, user.Email, subject, body); err != nil {
		service.logger.Warn("completion notification failed",
			slog.String("document_id", document.ID),
			slog.String("error", err.Error()))
	}
}

// # Deletion Flow

// Delete removes a document and its values.
func (service *Service) Delete(context context.Context, actor Actor, id string) error {
	if _, err := service.Get(context, actor, id); err != nil {
		return err
	}
	if err := service.documentRepository.Delete(context, id); err != nil {
		return fmt.Errorf("document_service_delete_failed: %w", err)
	}
	return nil
}

// # Render Flow

/*
Download renders the final document file.

Description: The render context is assembled per template field: the stored
document value when present, otherwise the field's default value, otherwise
its display name. Date-typed values are converted from ISO (2006-01-02) to
the day-first form (02.01.2006); values that do not parse pass through
unchanged with a warning.

Parameters:
  - context: context.Context
  - actor: Actor
  - id: Document UUID
  - pdf: Convert the result to PDF

Returns:
  - *templates.RenderedFile: Download-ready payload
  - err: NotFound, media, conversion, or storage errors
*/
func (service *Service) Download(context context.Context, actor Actor, id string, pdf bool) (*templates.RenderedFile, error) {
	document, err := service.Get(context, actor, id)
	if err != nil {
		return nil, err
	}

	_, declaredFields, source, err := service.catalog.RenderMaterial(context, document.TemplateID)
	if err != nil {
		return nil, err
	}

	storedFields, err := service.documentRepository.Fields(context, id)
	if err != nil {
		return nil, fmt.Errorf("document_service_fields_failed: %w", err)
	}

	values, err := service.buildContext(context, declaredFields, storedFields)
	if err != nil {
		return nil, err
	}

	started := time.Now()
	renderer := render.NewRenderer(source, service.analyzer, service.logger)
	rendered, err := renderer.Render(context, values, render.ModeFull)
	if err != nil {
		service.metrics.RenderErrorsTotal.Inc()
		return nil, err
	}
	service.metrics.RendersTotal.WithLabelValues(render.ModeFull.String()).Inc()
	service.metrics.RenderDurationSeconds.WithLabelValues(render.ModeFull.String()).
		Observe(time.Since(started).Seconds())

	result := &templates.RenderedFile{
		FileName:    document.Name + ".docx",
		ContentType: constants.ContentTypeDocx,
		Data:        rendered,
	}
	format := "docx"

	if pdf {
		converted, err := service.converter.ToPDF(context, rendered)
		if err != nil {
			return nil, err
		}
		result.FileName = document.Name + ".pdf"
		result.ContentType = constants.ContentTypePDF
		result.Data = converted
		format = "pdf"
	}

	service.metrics.DocumentDownloadsTotal.WithLabelValues(format).Inc()

	return result, nil
}

/*
buildContext maps template field tags to render values, merging stored
document values over field defaults and display names.
*/
func (service *Service) buildContext(context context.Context, declared []templates.TemplateField, stored []DocumentField) (map[string]string, error) {
	fieldTypes, err := service.dictionaryService.Index(context)
	if err != nil {
		return nil, fmt.Errorf("document_service_field_types_failed: %w", err)
	}

	storedValues := make(map[string]string, len(stored))
	for _, field := range stored {
		storedValues[field.TemplateFieldID] = field.Value
	}

	values := make(map[string]string, len(declared))
	for _, field := range declared {
		value := storedValues[field.ID]
		if strings.TrimSpace(value) == "" {
			value = field.DefaultValue
		}
		if strings.TrimSpace(value) == "" {
			value = field.Name
		}

		if fieldTypes[field.FieldTypeID].Slug == dictionary.SlugDate {
			value = service.formatDate(field.Tag, value)
		}

		values[field.Tag] = value
	}

	return values, nil
}

// formatDate converts an ISO date to day-first form, passing through
// values that do not parse.
func (service *Service) formatDate(tag, value string) string {
	parsed, err := time.Parse(dateInputLayout, value)
	if err != nil {
		service.logger.Warn("date value left unconverted",
			slog.String("tag", tag),
			slog.String("value", value))
		return value
	}
	return parsed.Format(dateOutputLayout)
}

// # Favorites

// Favorite marks a document as favorite for the actor. Idempotent.
func (service *Service) Favorite(context context.Context, actor Actor, id string) error {
	if _, err := service.Get(context, actor, id); err != nil {
		return err
	}
	if err := service.documentRepository.AddFavorite(context, actor.UserID, id); err != nil {
		return fmt.Errorf("document_service_favorite_failed: %w", err)
	}
	return nil
}

// Unfavorite clears a favorite mark. Idempotent.
func (service *Service) Unfavorite(context context.Context, actor Actor, id string) error {
	if _, err := service.Get(context, actor, id); err != nil {
		return err
	}
	if err := service.documentRepository.RemoveFavorite(context, actor.UserID, id); err != nil {
		return fmt.Errorf("document_service_unfavorite_failed: %w", err)
	}
	return nil
}
