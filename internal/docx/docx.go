// Copyright (c) 2026 Document Template Engine. All rights reserved.
// Author: a.velichko.dev@gmail.com

// Package docx reads and rewrites Office Open XML word documents.
//
// # Overview
//
// A .docx file is a zip archive whose main part, word/document.xml, holds the
// text as a tree of paragraphs (<w:p>), runs (<w:r>) and text nodes (<w:t>).
// This package gives the rendering engine exactly what it needs from that
// format and nothing more:
//
//   - open an archive and extract the body part
//   - normalize runs so a {{tag}} never spans run boundaries
//   - substitute tag expressions inside text nodes
//   - highlight tag runs for draft output
//   - repack the archive byte-for-byte except for the body
//
// # Run splitting
//
// Word editors freely split a typed "{{client_name}}" across several runs
// (spellcheck marks, formatting changes, revision saves). Normalize merges
// the text of any paragraph where a delimiter pair is split, keeping the
// formatting of the paragraph's first run. This mirrors what every template
// engine over OOXML has to do before substitution is possible.
package docx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/document-template-engine/backend/internal/platform/apperr"
)

const bodyPart = "word/document.xml"

var (
	// ErrBadArchive is returned when the uploaded file is not a readable zip.
	ErrBadArchive = apperr.UnsupportedMedia("File is not a valid .docx archive")
	// ErrMissingBody is returned when the archive has no word/document.xml part.
	ErrMissingBody = apperr.UnsupportedMedia("Archive does not contain a document body")
)

var (
	paragraphRe = regexp.MustCompile(`(?s)<w:p(?:>|\s[^>]*>).*?</w:p>`)
	runRe       = regexp.MustCompile(`(?s)<w:r(?:>|\s[^>]*>).*?</w:r>`)
	textRe      = regexp.MustCompile(`(?s)<w:t(?:>|\s[^>]*>)(.*?)</w:t>`)
	runPropsRe  = regexp.MustCompile(`<w:rPr(?:>|\s[^>]*>)`)
	runOpenRe   = regexp.MustCompile(`^<w:r(?:>|\s[^>]*>)`)
	tagRe       = regexp.MustCompile(`\{\{(.*?)\}\}`)
)

// zipEntry preserves one archive member in its original order.
type zipEntry struct {
	name string
	data []byte
}

// Document is an opened .docx archive with a mutable body part.
type Document struct {
	entries []zipEntry
	body    string
}

// Open parses data as a .docx archive and extracts the body part.
func Open(data []byte) (*Document, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, ErrBadArchive
	}

	doc := &Document{}
	for _, file := range reader.File {
		rc, err := file.Open()
		if err != nil {
			return nil, ErrBadArchive
		}
		content, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return nil, ErrBadArchive
		}
		doc.entries = append(doc.entries, zipEntry{name: file.Name, data: content})
		if file.Name == bodyPart {
			doc.body = string(content)
		}
	}

	if doc.body == "" {
		return nil, ErrMissingBody
	}

	return doc, nil
}

// Bytes repacks the archive. Every part except the body is written back
// unchanged, in the original member order.
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	writer := zip.NewWriter(&buf)

	for _, entry := range d.entries {
		w, err := writer.Create(entry.name)
		if err != nil {
			return nil, fmt.Errorf("docx: failed to create archive member %q: %w", entry.name, err)
		}

		data := entry.data
		if entry.name == bodyPart {
			data = []byte(d.body)
		}
		if _, err := w.Write(data); err != nil {
			return nil, fmt.Errorf("docx: failed to write archive member %q: %w", entry.name, err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("docx: failed to finalize archive: %w", err)
	}

	return buf.Bytes(), nil
}

// Body returns the current body part XML.
func (d *Document) Body() string {
	return d.body
}

// ParagraphTexts returns the plain (unescaped) text of every paragraph.
//
// Paragraphs are scanned flat, so text inside tables is included too.
func (d *Document) ParagraphTexts() []string {
	paragraphs := paragraphRe.FindAllString(d.body, -1)

	texts := make([]string, 0, len(paragraphs))
	for _, paragraph := range paragraphs {
		texts = append(texts, paragraphText(paragraph))
	}
	return texts
}

// Normalize merges run text in paragraphs where a {{...}} delimiter pair is
// split across run boundaries.
//
// After Normalize every complete tag expression sits inside a single <w:t>
// node, which is the precondition for ReplaceTags.
func (d *Document) Normalize() {
	d.body = paragraphRe.ReplaceAllStringFunc(d.body, func(paragraph string) string {
		joined := paragraphText(paragraph)
		if !strings.Contains(joined, "{{") && !strings.Contains(joined, "}}") {
			return paragraph
		}
		if !delimitersSplit(paragraph, joined) {
			return paragraph
		}
		return mergeParagraphText(paragraph, joined)
	})
}

// ReplaceTags rewrites every {{...}} occurrence in the body's text nodes.
//
// The callback receives the trimmed expression between the delimiters and
// returns the replacement text. When it reports false the tag is left in the
// document verbatim, so unresolved expressions stay visible to the reader.
func (d *Document) ReplaceTags(replace func(expr string) (string, bool)) {
	d.body = textRe.ReplaceAllStringFunc(d.body, func(node string) string {
		match := textRe.FindStringSubmatch(node)
		content := unescapeXML(match[1])
		if !strings.Contains(content, "{{") {
			return node
		}

		replaced := tagRe.ReplaceAllStringFunc(content, func(tag string) string {
			inner := strings.TrimSpace(tag[2 : len(tag)-2])
			value, ok := replace(inner)
			if !ok {
				return tag
			}
			return value
		})

		prefix := node[:len(node)-len(match[1])-len("</w:t>")]
		return prefix + escapeXML(replaced) + "</w:t>"
	})
}

// HighlightTags marks every run that contains a tag delimiter with a yellow
// text highlight. Draft renders use this so reviewers can see where values
// were substituted.
func (d *Document) HighlightTags() {
	d.body = runRe.ReplaceAllStringFunc(d.body, func(run string) string {
		text := runText(run)
		if !strings.Contains(text, "{{") && !strings.Contains(text, "}}") {
			return run
		}
		return highlightRun(run)
	})
}

// paragraphText joins and unescapes all text nodes of one paragraph.
func paragraphText(paragraph string) string {
	var b strings.Builder
	for _, match := range textRe.FindAllStringSubmatch(paragraph, -1) {
		b.WriteString(unescapeXML(match[1]))
	}
	return b.String()
}

// runText joins and unescapes all text nodes of one run.
func runText(run string) string {
	var b strings.Builder
	for _, match := range textRe.FindAllStringSubmatch(run, -1) {
		b.WriteString(unescapeXML(match[1]))
	}
	return b.String()
}

// delimitersSplit reports whether any tag crosses a run boundary: the joined
// paragraph text then contains more complete tags (or more delimiters) than
// the individual text nodes do.
func delimitersSplit(paragraph, joined string) bool {
	var nodeTags, nodeDelims int
	for _, match := range textRe.FindAllStringSubmatch(paragraph, -1) {
		content := unescapeXML(match[1])
		nodeTags += len(tagRe.FindAllString(content, -1))
		nodeDelims += strings.Count(content, "{{") + strings.Count(content, "}}")
	}

	joinedTags := len(tagRe.FindAllString(joined, -1))
	joinedDelims := strings.Count(joined, "{{") + strings.Count(joined, "}}")

	return joinedTags > nodeTags || joinedDelims > nodeDelims
}

// mergeParagraphText moves the paragraph's whole text into its first text
// node and empties the rest. Formatting of the first run wins.
func mergeParagraphText(paragraph, joined string) string {
	first := true
	return textRe.ReplaceAllStringFunc(paragraph, func(string) string {
		if first {
			first = false
			return `<w:t xml:space="preserve">` + escapeXML(joined) + `</w:t>`
		}
		return `<w:t xml:space="preserve"></w:t>`
	})
}

// highlightRun injects a yellow <w:highlight> into the run's properties,
// creating the <w:rPr> element when the run has none.
func highlightRun(run string) string {
	const highlight = `<w:highlight w:val="yellow"/>`

	if loc := runPropsRe.FindStringIndex(run); loc != nil {
		return run[:loc[1]] + highlight + run[loc[1]:]
	}

	open := runOpenRe.FindString(run)
	if open == "" {
		return run
	}
	return open + `<w:rPr>` + highlight + `</w:rPr>` + run[len(open):]
}

// xmlReplacer escapes the five predefined XML entities.
var xmlReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// xmlUnreplacer reverses xmlReplacer. &amp; must come last so that
// double-escaped input is not unescaped twice.
var xmlUnreplacer = strings.NewReplacer(
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&apos;", "'",
	"&amp;", "&",
)

func escapeXML(s string) string   { return xmlReplacer.Replace(s) }
func unescapeXML(s string) string { return xmlUnreplacer.Replace(s) }
