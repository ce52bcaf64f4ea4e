// Copyright (c) 2026 Document Template Engine. All rights reserved.
// Author: a.velichko.dev@gmail.com

package documents_test

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/document-template-engine/backend/internal/dictionary"
	"github.com/document-template-engine/backend/internal/docx"
	"github.com/document-template-engine/backend/internal/documents"
	"github.com/document-template-engine/backend/internal/platform/apperr"
	"github.com/document-template-engine/backend/internal/platform/metrics"
	"github.com/document-template-engine/backend/internal/platform/sec"
	"github.com/document-template-engine/backend/internal/render"
	"github.com/document-template-engine/backend/internal/templates"
	"github.com/document-template-engine/backend/internal/users/auth"
	"github.com/document-template-engine/backend/pkg/pagination"
)

// # Test Doubles

// fakeRepository is an in-memory documents.Repository.
type fakeRepository struct {
	items  map[string]*documents.Document
	fields map[string][]documents.DocumentField
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		items:  map[string]*documents.Document{},
		fields: map[string][]documents.DocumentField{},
	}
}

func (f *fakeRepository) Create(_ context.Context, document *documents.Document, fields []documents.DocumentField) error {
	copied := *document
	f.items[document.ID] = &copied
	f.fields[document.ID] = fields
	return nil
}

func (f *fakeRepository) FindByID(_ context.Context, id string) (*documents.Document, error) {
	document, ok := f.items[id]
	if !ok {
		return nil, apperr.NotFound("Document")
	}
	copied := *document
	return &copied, nil
}

func (f *fakeRepository) List(_ context.Context, filter documents.ListFilter, _ pagination.Params) ([]documents.Document, int, error) {
	var result []documents.Document
	for _, document := range f.items {
		if filter.OwnerID != "" && document.OwnerID != filter.OwnerID {
			continue
		}
		result = append(result, *document)
	}
	return result, len(result), nil
}

func (f *fakeRepository) Fields(_ context.Context, documentID string) ([]documents.DocumentField, error) {
	return f.fields[documentID], nil
}

func (f *fakeRepository) Update(_ context.Context, document *documents.Document, fields []documents.DocumentField) error {
	stored, ok := f.items[document.ID]
	if !ok {
		return apperr.NotFound("Document")
	}
	*stored = *document
	if fields != nil {
		f.fields[document.ID] = fields
	}
	return nil
}

func (f *fakeRepository) Delete(_ context.Context, id string) error {
	if _, ok := f.items[id]; !ok {
		return apperr.NotFound("Document")
	}
	delete(f.items, id)
	delete(f.fields, id)
	return nil
}

func (f *fakeRepository) AddFavorite(_ context.Context, _, _ string) error    { return nil }
func (f *fakeRepository) RemoveFavorite(_ context.Context, _, _ string) error { return nil }

// fakeCatalog serves one fixed template.
type fakeCatalog struct {
	template *templates.Template
	fields   []templates.TemplateField
	source   []byte
}

func (f *fakeCatalog) Lookup(_ context.Context, id string) (*templates.Template, error) {
	if f.template == nil || f.template.ID != id {
		return nil, apperr.NotFound("Template")
	}
	copied := *f.template
	return &copied, nil
}

func (f *fakeCatalog) FieldsByID(_ context.Context, _ string) (map[string]templates.TemplateField, error) {
	index := make(map[string]templates.TemplateField, len(f.fields))
	for _, field := range f.fields {
		index[field.ID] = field
	}
	return index, nil
}

func (f *fakeCatalog) RenderMaterial(_ context.Context, _ string) (*templates.Template, []templates.TemplateField, []byte, error) {
	return f.template, f.fields, f.source, nil
}

// fakeFieldTypes serves a fixed vocabulary.
type fakeFieldTypes struct {
	types []dictionary.FieldType
}

func (f *fakeFieldTypes) List(_ context.Context) ([]dictionary.FieldType, error) {
	return f.types, nil
}

func (f *fakeFieldTypes) FindByID(_ context.Context, id string) (*dictionary.FieldType, error) {
	for _, fieldType := range f.types {
		if fieldType.ID == id {
			return &fieldType, nil
		}
	}
	return nil, apperr.NotFound("FieldType")
}

// fakeCategories serves an empty category vocabulary; document flows never
// consult it.
type fakeCategories struct{}

func (fakeCategories) List(_ context.Context) ([]dictionary.Category, error) {
	return nil, nil
}

func (fakeCategories) FindByID(_ context.Context, _ string) (*dictionary.Category, error) {
	return nil, apperr.NotFound("Category")
}

func (fakeCategories) Create(_ context.Context, _ *dictionary.Category) error {
	return nil
}

// fakeAccounts resolves every ID to one user.
type fakeAccounts struct {
	email string
}

func (f *fakeAccounts) FindByID(_ context.Context, id string) (*auth.User, error) {
	return &auth.User{ID: id, Email: f.email}, nil
}

// fakeMailer records deliveries.
type fakeMailer struct {
	sent []string
}

func (f *fakeMailer) Send(_ context.Context, to, subject, _ string) error {
	f.sent = append(f.sent, to+": "+subject)
	return nil
}

// # Fixtures

const (
	typeString = "0192f0c1-0000-7000-8000-000000000001"
	typeDate   = "0192f0c1-0000-7000-8000-000000000003"

	templateID = "0192f0c1-1111-7000-8000-000000000001"
	fieldFIO   = "0192f0c1-2222-7000-8000-000000000001"
	fieldDate  = "0192f0c1-2222-7000-8000-000000000002"
	fieldSum   = "0192f0c1-2222-7000-8000-000000000003"
	fieldCity  = "0192f0c1-2222-7000-8000-000000000004"
)

var (
	owner    = documents.Actor{UserID: "owner-1", Role: sec.RoleUser}
	stranger = documents.Actor{UserID: "stranger-1", Role: sec.RoleUser}
)

/*
buildDocx assembles a minimal .docx archive with one paragraph per text.
*/
func buildDocx(t *testing.T, paragraphs ...string) []byte {
	t.Helper()

	var body strings.Builder
	body.WriteString(`<w:document><w:body>`)
	for _, text := range paragraphs {
		body.WriteString(`<w:p><w:r><w:t>` + text + `</w:t></w:r></w:p>`)
	}
	body.WriteString(`</w:body></w:document>`)

	var buf bytes.Buffer
	writer := zip.NewWriter(&buf)
	for name, content := range map[string]string{
		"[Content_Types].xml": `<?xml version="1.0"?><Types/>`,
		"word/document.xml":   body.String(),
	} {
		w, err := writer.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	return buf.Bytes()
}

func newService(t *testing.T, source []byte) (*documents.Service, *fakeRepository, *fakeMailer) {
	t.Helper()

	repository := newFakeRepository()
	mailer := &fakeMailer{}

	catalog := &fakeCatalog{
		template: &templates.Template{ID: templateID, OwnerID: owner.UserID, Name: "Договор", FileID: "blob-1"},
		fields: []templates.TemplateField{
			{ID: fieldFIO, TemplateID: templateID, Tag: "фио", Name: "ФИО", FieldTypeID: typeString},
			{ID: fieldDate, TemplateID: templateID, Tag: "дата", Name: "Дата", FieldTypeID: typeDate},
			{ID: fieldSum, TemplateID: templateID, Tag: "сумма", Name: "Сумма", FieldTypeID: typeString, DefaultValue: "100"},
			{ID: fieldCity, TemplateID: templateID, Tag: "город", Name: "Город", FieldTypeID: typeString},
		},
		source: source,
	}

	vocabulary := &fakeFieldTypes{types: []dictionary.FieldType{
		{ID: typeString, Slug: dictionary.SlugString, Name: "Строка"},
		{ID: typeDate, Slug: dictionary.SlugDate, Name: "Дата"},
	}}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := documents.NewService(
		repository,
		catalog,
		dictionary.NewService(vocabulary, fakeCategories{}),
		&fakeAccounts{email: "owner@example.com"},
		mailer,
		render.NewRuleAnalyzer(),
		nil,
		metrics.New(),
		logger,
	)

	return service, repository, mailer
}

// # Listing

// TestService_List_PaginationMeta checks that the response metadata carries
// the requested page and limit alongside the repository's total count.
func TestService_List_PaginationMeta(t *testing.T) {
	service, _, _ := newService(t, nil)

	for _, name := range []string{"Договор 1", "Договор 2", "Договор 3"} {
		_, err := service.Create(context.Background(), owner, documents.CreateInput{
			TemplateID: templateID,
			Name:       name,
		})
		require.NoError(t, err)
	}

	_, meta, err := service.List(context.Background(), owner, documents.ListFilter{},
		pagination.Params{Page: 1, Limit: 2})
	require.NoError(t, err)

	require.NotNil(t, meta)
	assert.Equal(t, 1, meta.Page)
	assert.Equal(t, 2, meta.Limit)
	assert.Equal(t, 3, meta.Total)
	assert.Equal(t, 2, meta.TotalPages)
}

// # Creation

func TestService_Create(t *testing.T) {
	service, repository, _ := newService(t, nil)

	document, err := service.Create(context.Background(), owner, documents.CreateInput{
		TemplateID: templateID,
		Name:       "Договор с Ивановым",
		Fields: []documents.FieldValueInput{
			{TemplateFieldID: fieldFIO, Value: "иванов иван петрович"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, owner.UserID, document.OwnerID)
	assert.False(t, document.Completed)

	stored := repository.fields[document.ID]
	require.Len(t, stored, 1)
	assert.Equal(t, fieldFIO, stored[0].TemplateFieldID)
}

/*
TestService_Create_RejectsForeignFields submits a value referencing a field
of another template and expects an explicit, named rejection.
*/
func TestService_Create_RejectsForeignFields(t *testing.T) {
	service, _, _ := newService(t, nil)

	_, err := service.Create(context.Background(), owner, documents.CreateInput{
		TemplateID: templateID,
		Name:       "Договор",
		Fields: []documents.FieldValueInput{
			{TemplateFieldID: fieldFIO, Value: "иванов"},
			{TemplateFieldID: "foreign-field", Value: "x"},
		},
	})
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "VALIDATION_ERROR", appError.Code)
	require.Len(t, appError.Details, 1)
	assert.Contains(t, appError.Details[0].Message, "foreign-field")
	assert.Contains(t, appError.Details[0].Message, "does not belong")
}

func TestService_Create_UnknownTemplate(t *testing.T) {
	service, _, _ := newService(t, nil)

	_, err := service.Create(context.Background(), owner, documents.CreateInput{
		TemplateID: "missing-template",
		Name:       "Договор",
	})
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

// # Access Control

func TestService_Get_PrivateToOwner(t *testing.T) {
	service, _, _ := newService(t, nil)

	document, err := service.Create(context.Background(), owner, documents.CreateInput{
		TemplateID: templateID,
		Name:       "Договор",
	})
	require.NoError(t, err)

	_, err = service.Get(context.Background(), stranger, document.ID)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)

	_, err = service.Get(context.Background(), owner, document.ID)
	assert.NoError(t, err)
}

// # Update and Notification

func TestService_Update_CompletionNotifiesOnce(t *testing.T) {
	service, _, mailer := newService(t, nil)

	document, err := service.Create(context.Background(), owner, documents.CreateInput{
		TemplateID: templateID,
		Name:       "Договор",
	})
	require.NoError(t, err)

	completed := true
	updated, err := service.Update(context.Background(), owner, document.ID,
		documents.UpdateInput{Completed: &completed})
	require.NoError(t, err)
	assert.True(t, updated.Completed)

	require.Len(t, mailer.sent, 1)
	assert.Contains(t, mailer.sent[0], "owner@example.com")

	// Completing an already completed document sends nothing.
	_, err = service.Update(context.Background(), owner, document.ID,
		documents.UpdateInput{Completed: &completed})
	require.NoError(t, err)
	assert.Len(t, mailer.sent, 1)
}

func TestService_Update_ReplacesFieldValues(t *testing.T) {
	service, repository, _ := newService(t, nil)

	document, err := service.Create(context.Background(), owner, documents.CreateInput{
		TemplateID: templateID,
		Name:       "Договор",
		Fields: []documents.FieldValueInput{
			{TemplateFieldID: fieldFIO, Value: "иванов"},
			{TemplateFieldID: fieldSum, Value: "200"},
		},
	})
	require.NoError(t, err)

	_, err = service.Update(context.Background(), owner, document.ID, documents.UpdateInput{
		Fields: []documents.FieldValueInput{
			{TemplateFieldID: fieldFIO, Value: "петров"},
		},
	})
	require.NoError(t, err)

	stored := repository.fields[document.ID]
	require.Len(t, stored, 1)
	assert.Equal(t, "петров", stored[0].Value)
}

// # Render

/*
TestService_Download_BuildsRenderContext covers the value-merging rules:
stored value first, then the field default, then the display name, with
date values converted to the day-first form.
*/
func TestService_Download_BuildsRenderContext(t *testing.T) {
	source := buildDocx(t,
		"{{ фио }}", "{{ дата }}", "{{ сумма }}", "{{ город }}")
	service, _, _ := newService(t, source)

	document, err := service.Create(context.Background(), owner, documents.CreateInput{
		TemplateID: templateID,
		Name:       "Договор",
		Fields: []documents.FieldValueInput{
			{TemplateFieldID: fieldFIO, Value: "иванов иван петрович"},
			{TemplateFieldID: fieldDate, Value: "2026-03-01"},
		},
	})
	require.NoError(t, err)

	file, err := service.Download(context.Background(), owner, document.ID, false)
	require.NoError(t, err)

	assert.Equal(t, "Договор.docx", file.FileName)

	rendered, err := docx.Open(file.Data)
	require.NoError(t, err)
	texts := rendered.ParagraphTexts()
	assert.Equal(t, []string{
		"иванов иван петрович", // stored value
		"01.03.2026",           // ISO date converted
		"100",                  // field default
		"Город",                // display name fallback
	}, texts)
}

func TestService_Download_InvalidDatePassesThrough(t *testing.T) {
	source := buildDocx(t, "{{ дата }}")
	service, _, _ := newService(t, source)

	document, err := service.Create(context.Background(), owner, documents.CreateInput{
		TemplateID: templateID,
		Name:       "Договор",
		Fields: []documents.FieldValueInput{
			{TemplateFieldID: fieldDate, Value: "первое марта"},
		},
	})
	require.NoError(t, err)

	file, err := service.Download(context.Background(), owner, document.ID, false)
	require.NoError(t, err)

	rendered, err := docx.Open(file.Data)
	require.NoError(t, err)
	assert.Equal(t, []string{"первое марта"}, rendered.ParagraphTexts())
}
