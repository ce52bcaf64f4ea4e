// Copyright (c) 2026 Document Template Engine. All rights reserved.
// Author: a.velichko.dev@gmail.com

package render_test

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

	"github.com/document-template-engine/backend/internal/docx"
	"github.com/document-template-engine/backend/internal/render"
)

/*
buildTemplate assembles a minimal .docx archive whose body consists of one
paragraph per given text.
*/
func buildTemplate(t *testing.T, paragraphs ...string) []byte {
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

func newRenderer(t *testing.T, paragraphs ...string) *render.Renderer {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return render.NewRenderer(buildTemplate(t, paragraphs...), render.NewRuleAnalyzer(), logger)
}

// renderedTexts opens the produced archive and returns its paragraph texts.
func renderedTexts(t *testing.T, data []byte) []string {
	t.Helper()
	doc, err := docx.Open(data)
	require.NoError(t, err)
	return doc.ParagraphTexts()
}

/*
TestRenderer_Tags extracts the variable set, including filter arguments,
deduplicated and sorted.
*/
func TestRenderer_Tags(t *testing.T) {
	renderer := newRenderer(t,
		"Договор с {{ фио | fio_title }}",
		"Срок: {{ срок }} {{ день | noun_plural(срок) }}",
		"Подпись: {{ фио | fio_short }}",
	)

	tags, err := renderer.Tags()
	require.NoError(t, err)
	assert.Equal(t, []string{"день", "срок", "фио"}, tags)
}

func TestRenderer_Tags_SkipsInvalidExpressions(t *testing.T) {
	renderer := newRenderer(t,
		"{{ фио | fio_title }}",
		"{{ not a valid expression }}",
	)

	tags, err := renderer.Tags()
	require.NoError(t, err)
	assert.Equal(t, []string{"фио"}, tags)
}

/*
TestRenderer_RenderFull renders a contract paragraph end to end with name
inflection, count agreement and currency spelling.
*/
func TestRenderer_RenderFull(t *testing.T) {
	renderer := newRenderer(t,
		"От {{ фио | genitive }}",
		"Срок {{ срок }} ({{ день | noun_plural(срок) }})",
		"Сумма: {{ сумма | currency_to_words }}",
	)

	values := map[string]string{
		"фио":   "иванов иван петрович",
		"срок":  "14",
		"день":  "день",
		"сумма": "2135",
	}

	data, err := renderer.Render(context.Background(), values, render.ModeFull)
	require.NoError(t, err)

	texts := renderedTexts(t, data)
	require.Len(t, texts, 3)
	assert.Equal(t, "От иванова ивана петровича", texts[0])
	assert.Equal(t, "Срок 14 (дней)", texts[1])
	assert.Equal(t, "Сумма: две тысячи сто тридцать пять рублей, 00 копеек", texts[2])
}

/*
TestRenderer_RenderDraft: filters are bypassed, values substitute raw, and
tag runs get highlighted.
*/
func TestRenderer_RenderDraft(t *testing.T) {
	renderer := newRenderer(t, "От {{ фио | genitive }}")

	values := map[string]string{"фио": "ФИО заявителя"}

	data, err := renderer.Render(context.Background(), values, render.ModeDraft)
	require.NoError(t, err)

	texts := renderedTexts(t, data)
	require.Len(t, texts, 1)
	assert.Equal(t, "От ФИО заявителя", texts[0])

	doc, err := docx.Open(data)
	require.NoError(t, err)
	assert.Contains(t, doc.Body(), `<w:highlight w:val="yellow"/>`)
}

func TestRenderer_UnresolvedTagStaysVerbatim(t *testing.T) {
	renderer := newRenderer(t, "До {{ дата_окончания }}")

	data, err := renderer.Render(context.Background(), map[string]string{}, render.ModeFull)
	require.NoError(t, err)

	texts := renderedTexts(t, data)
	assert.Equal(t, "До {{ дата_окончания }}", texts[0])
}

func TestRenderer_FilterErrorLeavesTag(t *testing.T) {
	renderer := newRenderer(t, "{{ сумма | currency_to_words }}")

	data, err := renderer.Render(context.Background(),
		map[string]string{"сумма": "не число"}, render.ModeFull)
	require.NoError(t, err)

	texts := renderedTexts(t, data)
	assert.Equal(t, "{{ сумма | currency_to_words }}", texts[0])
}

func TestRenderer_SplitTagAcrossRuns(t *testing.T) {
	// Simulate an editor splitting the tag across two runs.
	body := `<w:document><w:body><w:p>` +
		`<w:r><w:t>От {{ ф</w:t></w:r>` +
		`<w:r><w:t>ио | fio_short }}</w:t></w:r>` +
		`</w:p></w:body></w:document>`

	var buf bytes.Buffer
	writer := zip.NewWriter(&buf)
	w, err := writer.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(body))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	renderer := render.NewRenderer(buf.Bytes(), render.NewRuleAnalyzer(), logger)

	tags, err := renderer.Tags()
	require.NoError(t, err)
	assert.Equal(t, []string{"фио"}, tags)

	data, err := renderer.Render(context.Background(),
		map[string]string{"фио": "иванов иван петрович"}, render.ModeFull)
	require.NoError(t, err)
	assert.Equal(t, []string{"От Иванов И.П."}, renderedTexts(t, data))
}

func TestRenderer_CancelledContext(t *testing.T) {
	renderer := newRenderer(t, "{{ фио }}")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := renderer.Render(ctx, map[string]string{"фио": "x"}, render.ModeFull)
	assert.ErrorIs(t, err, context.Canceled)
}
