// Copyright (c) 2026 Document Template Engine. All rights reserved.
// Author: a.velichko.dev@gmail.com

package templates_test

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/document-template-engine/backend/internal/dictionary"
	"github.com/document-template-engine/backend/internal/docx"
	"github.com/document-template-engine/backend/internal/platform/apperr"
	"github.com/document-template-engine/backend/internal/platform/blob"
	"github.com/document-template-engine/backend/internal/platform/constants"
	"github.com/document-template-engine/backend/internal/platform/metrics"
	"github.com/document-template-engine/backend/internal/platform/sec"
	"github.com/document-template-engine/backend/internal/render"
	"github.com/document-template-engine/backend/internal/templates"
	"github.com/document-template-engine/backend/pkg/pagination"
)

// # Test Doubles

// fakeRepository is an in-memory templates.Repository.
type fakeRepository struct {
	items  map[string]*templates.Template
	groups map[string][]templates.FieldGroup
	fields map[string][]templates.TemplateField
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		items:  map[string]*templates.Template{},
		groups: map[string][]templates.FieldGroup{},
		fields: map[string][]templates.TemplateField{},
	}
}

func (f *fakeRepository) Create(_ context.Context, template *templates.Template, groups []templates.FieldGroup, fields []templates.TemplateField) error {
	copied := *template
	f.items[template.ID] = &copied
	f.groups[template.ID] = groups
	f.fields[template.ID] = fields
	return nil
}

func (f *fakeRepository) FindByID(_ context.Context, id string) (*templates.Template, error) {
	template, ok := f.items[id]
	if !ok {
		return nil, apperr.NotFound("Template")
	}
	copied := *template
	return &copied, nil
}

func (f *fakeRepository) List(_ context.Context, filter templates.ListFilter, _ pagination.Params) ([]templates.Template, int, error) {
	var result []templates.Template
	for _, template := range f.items {
		if template.Deleted && !filter.IncludeDeleted {
			continue
		}
		result = append(result, *template)
	}
	return result, len(result), nil
}

func (f *fakeRepository) Fields(_ context.Context, templateID string) ([]templates.FieldGroup, []templates.TemplateField, error) {
	return f.groups[templateID], f.fields[templateID], nil
}

func (f *fakeRepository) UpdateFile(_ context.Context, id, fileName, fileID string) error {
	template, ok := f.items[id]
	if !ok {
		return apperr.NotFound("Template")
	}
	template.FileName = fileName
	template.FileID = fileID
	return nil
}

func (f *fakeRepository) UpdatePreview(_ context.Context, id, previewID string) error {
	template, ok := f.items[id]
	if !ok {
		return apperr.NotFound("Template")
	}
	template.PreviewID = previewID
	return nil
}

func (f *fakeRepository) SoftDelete(_ context.Context, id string) error {
	template, ok := f.items[id]
	if !ok || template.Deleted {
		return apperr.NotFound("Template")
	}
	template.Deleted = true
	return nil
}

func (f *fakeRepository) AddFavorite(_ context.Context, _, _ string) error    { return nil }
func (f *fakeRepository) RemoveFavorite(_ context.Context, _, _ string) error { return nil }

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

// fakeCategories serves a fixed category vocabulary.
type fakeCategories struct {
	categories []dictionary.Category
}

func (f *fakeCategories) List(_ context.Context) ([]dictionary.Category, error) {
	return f.categories, nil
}

func (f *fakeCategories) FindByID(_ context.Context, id string) (*dictionary.Category, error) {
	for _, category := range f.categories {
		if category.ID == id {
			return &category, nil
		}
	}
	return nil, apperr.NotFound("Category")
}

func (f *fakeCategories) Create(_ context.Context, category *dictionary.Category) error {
	f.categories = append(f.categories, *category)
	return nil
}

// # Fixtures

const (
	typeString        = "0192f0c1-0000-7000-8000-000000000001"
	typeDate          = "0192f0c1-0000-7000-8000-000000000003"
	categoryContracts = "0192f0c1-0000-7000-8000-000000000010"
)

func newService(t *testing.T) (*templates.Service, *fakeRepository) {
	t.Helper()

	repository := newFakeRepository()
	vocabulary := &fakeFieldTypes{types: []dictionary.FieldType{
		{ID: typeString, Slug: dictionary.SlugString, Name: "Строка"},
		{ID: typeDate, Slug: dictionary.SlugDate, Name: "Дата", Mask: "99.99.9999"},
	}}
	categories := &fakeCategories{categories: []dictionary.Category{
		{ID: categoryContracts, Name: "Договоры"},
	}}

	blobStore, err := blob.Open(filepath.Join(t.TempDir(), "blobs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { blobStore.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := templates.NewService(
		repository,
		dictionary.NewService(vocabulary, categories),
		blobStore,
		render.NewRuleAnalyzer(),
		nil,
		metrics.New(),
		logger,
	)

	return service, repository
}

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

var (
	owner    = templates.Actor{UserID: "owner-1", Role: sec.RoleUser}
	stranger = templates.Actor{UserID: "stranger-1", Role: sec.RoleUser}
	admin    = templates.Actor{UserID: "admin-1", Role: sec.RoleAdmin}
)

func groupID(v int) *int { return &v }

// # Creation

/*
TestService_Create_RemapsClientGroupIDs checks that payload-local integer
group identifiers become server-side UUIDs and that fields resolve to the
right group.
*/
func TestService_Create_RemapsClientGroupIDs(t *testing.T) {
	service, repository := newService(t)

	template, err := service.Create(context.Background(), owner, templates.CreateInput{
		Name: "Договор",
		Groups: []templates.GroupInput{
			{ClientID: 7, Name: "Реквизиты"},
			{ClientID: 2, Name: "Стороны"},
		},
		Fields: []templates.FieldInput{
			{Tag: "фио", Name: "ФИО", GroupID: groupID(2), FieldTypeID: typeString},
			{Tag: "дата", Name: "Дата", GroupID: groupID(7), FieldTypeID: typeDate},
			{Tag: "сумма", Name: "Сумма", FieldTypeID: typeString},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, owner.UserID, template.OwnerID)

	groups := repository.groups[template.ID]
	require.Len(t, groups, 2)

	// Groups ordered by client identifier.
	assert.Equal(t, "Стороны", groups[0].Name)
	assert.Equal(t, 0, groups[0].Position)
	assert.Equal(t, "Реквизиты", groups[1].Name)

	fields := repository.fields[template.ID]
	require.Len(t, fields, 3)
	require.NotNil(t, fields[0].GroupID)
	assert.Equal(t, groups[0].ID, *fields[0].GroupID)
	require.NotNil(t, fields[1].GroupID)
	assert.Equal(t, groups[1].ID, *fields[1].GroupID)
	assert.Nil(t, fields[2].GroupID)
}

/*
TestService_Create_ReportsAllProblemsAtOnce submits a payload with four
distinct defects and expects every one of them in a single response.
*/
func TestService_Create_ReportsAllProblemsAtOnce(t *testing.T) {
	service, _ := newService(t)

	_, err := service.Create(context.Background(), owner, templates.CreateInput{
		Name: "Договор",
		Groups: []templates.GroupInput{
			{ClientID: 1, Name: "Стороны"},
			{ClientID: 1, Name: "Реквизиты"},
		},
		Fields: []templates.FieldInput{
			{Tag: "фио", Name: "ФИО", FieldTypeID: typeString},
			{Tag: "фио", Name: "ФИО 2", FieldTypeID: typeString},
			{Tag: "дата", Name: "Дата", GroupID: groupID(9), FieldTypeID: "missing-type"},
		},
	})
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "VALIDATION_ERROR", appError.Code)

	messages := make([]string, 0, len(appError.Details))
	for _, detail := range appError.Details {
		messages = append(messages, detail.Message)
	}
	joined := strings.Join(messages, "\n")

	assert.Contains(t, joined, "non-unique tags: фио")
	assert.Contains(t, joined, "non-unique identifiers: 1")
	assert.Contains(t, joined, "Unknown field group identifiers: 9")
	assert.Contains(t, joined, "Unknown field type: missing-type")
}

func TestService_Create_WithCategory(t *testing.T) {
	service, repository := newService(t)

	category := categoryContracts
	template, err := service.Create(context.Background(), owner, templates.CreateInput{
		Name:       "Договор",
		CategoryID: &category,
	})
	require.NoError(t, err)

	stored := repository.items[template.ID]
	require.NotNil(t, stored.CategoryID)
	assert.Equal(t, categoryContracts, *stored.CategoryID)
}

func TestService_Create_UnknownCategory(t *testing.T) {
	service, _ := newService(t)

	category := "0192f0c1-dead-7000-8000-000000000099"
	_, err := service.Create(context.Background(), owner, templates.CreateInput{
		Name:       "Договор",
		CategoryID: &category,
	})
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "VALIDATION_ERROR", appError.Code)
	require.NotEmpty(t, appError.Details)
	assert.Equal(t, "category_id", appError.Details[0].Field)
}

func TestService_Create_RequiresName(t *testing.T) {
	service, _ := newService(t)

	_, err := service.Create(context.Background(), owner, templates.CreateInput{})
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	require.NotEmpty(t, appError.Details)
	assert.Equal(t, "name", appError.Details[0].Field)
}

// # Listing

// TestService_List_PaginationMeta checks that the response metadata carries
// the requested page and limit alongside the repository's total count.
func TestService_List_PaginationMeta(t *testing.T) {
	service, _ := newService(t)

	for _, name := range []string{"Договор", "Заявление", "Доверенность"} {
		_, err := service.Create(context.Background(), owner, templates.CreateInput{Name: name})
		require.NoError(t, err)
	}

	_, meta, err := service.List(context.Background(), owner, templates.ListFilter{},
		pagination.Params{Page: 2, Limit: 2})
	require.NoError(t, err)

	require.NotNil(t, meta)
	assert.Equal(t, 2, meta.Page)
	assert.Equal(t, 2, meta.Limit)
	assert.Equal(t, 3, meta.Total)
	assert.Equal(t, 2, meta.TotalPages)
}

// # Deletion

func TestService_Delete(t *testing.T) {
	service, _ := newService(t)

	template, err := service.Create(context.Background(), owner, templates.CreateInput{Name: "Договор"})
	require.NoError(t, err)

	t.Run("stranger is forbidden", func(t *testing.T) {
		err := service.Delete(context.Background(), stranger, template.ID)
		require.Error(t, err)
		assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
	})

	t.Run("owner deletes", func(t *testing.T) {
		require.NoError(t, service.Delete(context.Background(), owner, template.ID))
	})

	t.Run("second delete reports not found", func(t *testing.T) {
		err := service.Delete(context.Background(), owner, template.ID)
		require.Error(t, err)
		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Equal(t, 404, appError.HTTPStatus)
		assert.Equal(t, constants.MsgTemplateAlreadyDeleted, appError.Message)
	})
}

func TestService_Get_DeletedVisibility(t *testing.T) {
	service, _ := newService(t)

	template, err := service.Create(context.Background(), owner, templates.CreateInput{Name: "Договор"})
	require.NoError(t, err)
	require.NoError(t, service.Delete(context.Background(), owner, template.ID))

	_, err = service.Get(context.Background(), stranger, template.ID)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)

	_, err = service.Get(context.Background(), owner, template.ID)
	assert.NoError(t, err)

	_, err = service.Get(context.Background(), admin, template.ID)
	assert.NoError(t, err)
}

// # Binary Upload and Consistency

func TestService_UploadFile_ReportsConsistency(t *testing.T) {
	service, _ := newService(t)

	template, err := service.Create(context.Background(), owner, templates.CreateInput{
		Name: "Договор",
		Fields: []templates.FieldInput{
			{Tag: "фио", Name: "ФИО", FieldTypeID: typeString},
		},
	})
	require.NoError(t, err)

	data := buildDocx(t, "От {{ фио }}", "До {{ дата }}")
	result, err := service.UploadFile(context.Background(), owner, template.ID, "contract.docx", data)
	require.NoError(t, err)

	assert.NotEmpty(t, result.Template.FileID)
	assert.Equal(t, "contract.docx", result.Template.FileName)

	require.Len(t, result.ConsistencyErrors, 1)
	assert.Equal(t, constants.MsgTemplateExcessTags, result.ConsistencyErrors[0].Message)
	assert.Equal(t, []string{"дата"}, result.ConsistencyErrors[0].Tags)
}

func TestService_UploadFile_RejectsNonArchive(t *testing.T) {
	service, _ := newService(t)

	template, err := service.Create(context.Background(), owner, templates.CreateInput{Name: "Договор"})
	require.NoError(t, err)

	_, err = service.UploadFile(context.Background(), owner, template.ID, "contract.docx", []byte("not a zip"))
	require.Error(t, err)
	assert.Equal(t, "UNSUPPORTED_MEDIA", apperr.As(err).Code)
}

func TestService_CheckConsistency_Consistent(t *testing.T) {
	service, _ := newService(t)

	template, err := service.Create(context.Background(), owner, templates.CreateInput{
		Name: "Договор",
		Fields: []templates.FieldInput{
			{Tag: "фио", Name: "ФИО", FieldTypeID: typeString},
		},
	})
	require.NoError(t, err)

	data := buildDocx(t, "От {{ фио }}")
	_, err = service.UploadFile(context.Background(), owner, template.ID, "contract.docx", data)
	require.NoError(t, err)

	result, err := service.CheckConsistency(context.Background(), admin, template.ID)
	require.NoError(t, err)
	assert.True(t, result.Consistent)
	assert.Equal(t, constants.MsgTemplateConsistent, result.Message)
	assert.Empty(t, result.Errors)
}

func TestService_CheckConsistency_NoFile(t *testing.T) {
	service, _ := newService(t)

	template, err := service.Create(context.Background(), owner, templates.CreateInput{Name: "Договор"})
	require.NoError(t, err)

	_, err = service.CheckConsistency(context.Background(), admin, template.ID)
	require.Error(t, err)
	assert.Equal(t, "UNPROCESSABLE", apperr.As(err).Code)
}

// # Preview Image

func TestService_UploadPreview(t *testing.T) {
	service, _ := newService(t)

	template, err := service.Create(context.Background(), owner, templates.CreateInput{Name: "Договор"})
	require.NoError(t, err)

	image := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}
	updated, err := service.UploadPreview(context.Background(), owner, template.ID,
		"cover.png", constants.ContentTypePNG, image)
	require.NoError(t, err)
	assert.NotEmpty(t, updated.PreviewID)

	file, err := service.Preview(context.Background(), owner, template.ID)
	require.NoError(t, err)
	assert.Equal(t, "cover.png", file.FileName)
	assert.Equal(t, constants.ContentTypePNG, file.ContentType)
	assert.Equal(t, image, file.Data)
}

func TestService_UploadPreview_RejectsNonImage(t *testing.T) {
	service, _ := newService(t)

	template, err := service.Create(context.Background(), owner, templates.CreateInput{Name: "Договор"})
	require.NoError(t, err)

	_, err = service.UploadPreview(context.Background(), owner, template.ID,
		"notes.txt", "text/plain", []byte("not an image"))
	require.Error(t, err)
	assert.Equal(t, "UNSUPPORTED_MEDIA", apperr.As(err).Code)
}

func TestService_Preview_MissingReportsNotFound(t *testing.T) {
	service, _ := newService(t)

	template, err := service.Create(context.Background(), owner, templates.CreateInput{Name: "Договор"})
	require.NoError(t, err)

	_, err = service.Preview(context.Background(), owner, template.ID)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

// # Draft Render

/*
TestService_RenderDraft checks the review render: declared tags are
replaced with their field display names while undeclared tags survive
verbatim.
*/
func TestService_RenderDraft(t *testing.T) {
	service, _ := newService(t)

	template, err := service.Create(context.Background(), owner, templates.CreateInput{
		Name: "Договор",
		Fields: []templates.FieldInput{
			{Tag: "фио", Name: "ФИО заявителя", FieldTypeID: typeString},
		},
	})
	require.NoError(t, err)

	data := buildDocx(t, "От {{ фио }}", "Дата: {{ дата }}")
	_, err = service.UploadFile(context.Background(), owner, template.ID, "contract.docx", data)
	require.NoError(t, err)

	file, err := service.RenderDraft(context.Background(), owner, template.ID, false)
	require.NoError(t, err)

	assert.Equal(t, "Договор_draft.docx", file.FileName)
	assert.Equal(t, constants.ContentTypeDocx, file.ContentType)

	doc, err := docx.Open(file.Data)
	require.NoError(t, err)

	texts := doc.ParagraphTexts()
	require.Len(t, texts, 2)
	assert.Equal(t, "От ФИО заявителя", texts[0])
	// The undeclared tag stays visible instead of disappearing.
	assert.Equal(t, "Дата: {{ дата }}", texts[1])
}

// # Field Listing

func TestService_Fields_Grouping(t *testing.T) {
	service, _ := newService(t)

	template, err := service.Create(context.Background(), owner, templates.CreateInput{
		Name: "Договор",
		Groups: []templates.GroupInput{
			{ClientID: 1, Name: "Стороны"},
		},
		Fields: []templates.FieldInput{
			{Tag: "фио", Name: "ФИО", GroupID: groupID(1), FieldTypeID: typeString},
			{Tag: "сумма", Name: "Сумма", FieldTypeID: typeString},
		},
	})
	require.NoError(t, err)

	grouped, err := service.Fields(context.Background(), owner, template.ID)
	require.NoError(t, err)
	require.Len(t, grouped, 2)

	require.NotNil(t, grouped[0].Group)
	assert.Equal(t, "Стороны", grouped[0].Group.Name)
	require.Len(t, grouped[0].Fields, 1)
	assert.Equal(t, "фио", grouped[0].Fields[0].Tag)

	assert.Nil(t, grouped[1].Group)
	require.Len(t, grouped[1].Fields, 1)
	assert.Equal(t, "сумма", grouped[1].Fields[0].Tag)
}
