// Copyright (c) 2026 Document Template Engine. All rights reserved.
// Author: a.velichko.dev@gmail.com

package docx

import (
	"archive/zip"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/*
buildArchive assembles a minimal .docx archive in memory. Only the parts
the package touches are included; Word would want more, the zip reader
does not care.
*/
func buildArchive(t *testing.T, bodyXML string) []byte {
	t.Helper()

	var buf bytes.Buffer
	writer := zip.NewWriter(&buf)

	parts := map[string]string{
		"[Content_Types].xml": `<?xml version="1.0"?><Types/>`,
		"_rels/.rels":         `<?xml version="1.0"?><Relationships/>`,
		"word/document.xml":   bodyXML,
	}
	for name, content := range parts {
		w, err := writer.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	return buf.Bytes()
}

// run wraps text in a minimal <w:r><w:t> pair.
func run(text string) string {
	return `<w:r><w:t>` + text + `</w:t></w:r>`
}

// para wraps runs in a <w:p> element.
func para(runs ...string) string {
	return `<w:p>` + strings.Join(runs, "") + `</w:p>`
}

func body(paragraphs ...string) string {
	return `<w:document><w:body>` + strings.Join(paragraphs, "") + `</w:body></w:document>`
}

func TestOpenRejectsBadArchive(t *testing.T) {
	_, err := Open([]byte("this is not a zip file"))
	assert.ErrorIs(t, err, ErrBadArchive)
}

func TestOpenRejectsMissingBody(t *testing.T) {
	var buf bytes.Buffer
	writer := zip.NewWriter(&buf)
	w, err := writer.Create("mimetype")
	require.NoError(t, err)
	_, err = w.Write([]byte("application/epub+zip"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	_, err = Open(buf.Bytes())
	assert.ErrorIs(t, err, ErrMissingBody)
}

func TestParagraphTexts(t *testing.T) {
	data := buildArchive(t, body(
		para(run("Hello "), run("world")),
		para(run("Smith &amp; Sons")),
	))

	doc, err := Open(data)
	require.NoError(t, err)

	texts := doc.ParagraphTexts()
	require.Len(t, texts, 2)
	assert.Equal(t, "Hello world", texts[0])
	assert.Equal(t, "Smith & Sons", texts[1])
}

func TestNormalizeMergesSplitTag(t *testing.T) {
	data := buildArchive(t, body(
		para(run("Dear {{cli"), run("ent_name}}, welcome")),
	))

	doc, err := Open(data)
	require.NoError(t, err)
	doc.Normalize()

	// Whole paragraph text now lives in the first node.
	assert.Contains(t, doc.Body(), `<w:t xml:space="preserve">Dear {{client_name}}, welcome</w:t>`)
	assert.Contains(t, doc.Body(), `<w:t xml:space="preserve"></w:t>`)

	texts := doc.ParagraphTexts()
	require.Len(t, texts, 1)
	assert.Equal(t, "Dear {{client_name}}, welcome", texts[0])
}

func TestNormalizeLeavesIntactParagraphsAlone(t *testing.T) {
	original := body(
		para(run("No tags at all")),
		para(run("{{whole_tag}}")),
	)
	doc, err := Open(buildArchive(t, original))
	require.NoError(t, err)

	doc.Normalize()

	// Neither paragraph needed merging, so the body is untouched.
	assert.Equal(t, original, doc.Body())
}

func TestReplaceTags(t *testing.T) {
	data := buildArchive(t, body(
		para(run("Client: {{ client_name }}")),
		para(run("Missing: {{unknown}}")),
	))

	doc, err := Open(data)
	require.NoError(t, err)

	doc.ReplaceTags(func(expr string) (string, bool) {
		if expr == "client_name" {
			return `Smith & "Sons"`, true
		}
		return "", false
	})

	// Substituted value is escaped, unresolved tag stays verbatim.
	assert.Contains(t, doc.Body(), "Client: Smith &amp; &quot;Sons&quot;")
	assert.Contains(t, doc.Body(), "Missing: {{unknown}}")
}

func TestReplaceTagsAfterNormalize(t *testing.T) {
	data := buildArchive(t, body(
		para(run("Sum: {{amo"), run("unt}} rub.")),
	))

	doc, err := Open(data)
	require.NoError(t, err)
	doc.Normalize()
	doc.ReplaceTags(func(expr string) (string, bool) {
		require.Equal(t, "amount", expr)
		return "1000", true
	})

	texts := doc.ParagraphTexts()
	require.Len(t, texts, 1)
	assert.Equal(t, "Sum: 1000 rub.", texts[0])
}

func TestHighlightTags(t *testing.T) {
	data := buildArchive(t, body(
		para(run("{{tag}}")),
		para(`<w:r><w:rPr><w:b/></w:rPr><w:t>{{styled}}</w:t></w:r>`),
		para(run("plain text")),
	))

	doc, err := Open(data)
	require.NoError(t, err)
	doc.HighlightTags()

	// A run without properties gets a fresh rPr.
	assert.Contains(t, doc.Body(), `<w:r><w:rPr><w:highlight w:val="yellow"/></w:rPr><w:t>{{tag}}</w:t></w:r>`)
	// A run with properties keeps them and gains the highlight.
	assert.Contains(t, doc.Body(), `<w:rPr><w:highlight w:val="yellow"/><w:b/></w:rPr>`)
	// Untagged runs are untouched.
	assert.Contains(t, doc.Body(), `<w:r><w:t>plain text</w:t></w:r>`)
}

func TestBytesRoundTrip(t *testing.T) {
	data := buildArchive(t, body(para(run("{{name}}"))))

	doc, err := Open(data)
	require.NoError(t, err)
	doc.ReplaceTags(func(string) (string, bool) { return "Ivanov", true })

	repacked, err := doc.Bytes()
	require.NoError(t, err)

	reopened, err := Open(repacked)
	require.NoError(t, err)
	assert.Equal(t, []string{"Ivanov"}, reopened.ParagraphTexts())

	// Non-body parts survive repacking.
	reader, err := zip.NewReader(bytes.NewReader(repacked), int64(len(repacked)))
	require.NoError(t, err)
	names := make([]string, 0, len(reader.File))
	for _, f := range reader.File {
		names = append(names, f.Name)
	}
	assert.ElementsMatch(t, []string{"[Content_Types].xml", "_rels/.rels", "word/document.xml"}, names)
}
