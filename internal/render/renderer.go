// Copyright (c) 2026 Document Template Engine. All rights reserved.
// Author: a.velichko.dev@gmail.com

// Package render is the template rendering engine.
//
// # Overview
//
// A template is a .docx file whose text contains {{tag}} expressions with an
// optional filter chain, e.g. {{ фио | genitive }} or
// {{ продолжительность | noun_plural(продолжительность) }}. The engine
//
//   - extracts the set of variables a template references (for the
//     consistency check against the declared template fields)
//   - renders a final document by substituting context values with filters
//     applied (ModeFull)
//   - renders a review draft with filters bypassed and tag locations
//     highlighted (ModeDraft)
//
// Unresolvable tags are left in the output verbatim rather than dropped, so
// a template problem is always visible in the produced document instead of
// silently eating text.
package render

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/document-template-engine/backend/internal/docx"
)

// Renderer renders one template source against different contexts.
//
// # Concurrency
//
// The source bytes are never mutated; every call opens a fresh document, so
// a Renderer is safe for concurrent use.
type Renderer struct {
	source   []byte
	analyzer Analyzer
	logger   *slog.Logger
}

// NewRenderer wraps template source bytes.
func NewRenderer(source []byte, analyzer Analyzer, logger *slog.Logger) *Renderer {
	return &Renderer{source: source, analyzer: analyzer, logger: logger}
}

// Tags returns the sorted set of context variables the template references.
//
// Expressions that fail to parse are skipped with a warning; their variables
// cannot be known, and the substitution pass will leave them visible anyway.
func (r *Renderer) Tags() ([]string, error) {
	doc, err := docx.Open(r.source)
	if err != nil {
		return nil, err
	}
	doc.Normalize()

	seen := make(map[string]bool)
	for _, text := range doc.ParagraphTexts() {
		for _, match := range tagPattern.FindAllStringSubmatch(text, -1) {
			inner := match[1]
			expr, err := ParseExpression(strings.TrimSpace(inner))
			if err != nil {
				r.logger.Warn("template_expression_invalid",
					slog.String("expression", inner),
					slog.Any("error", err),
				)
				continue
			}
			for _, name := range expr.Variables() {
				seen[name] = true
			}
		}
	}

	tags := make([]string, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	return tags, nil
}

// Render produces a document for the given context values.
//
// Tags whose variables are missing from values, or whose filter chain
// fails, remain in the output verbatim.
func (r *Renderer) Render(ctx context.Context, values map[string]string, mode Mode) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := docx.Open(r.source)
	if err != nil {
		return nil, err
	}

	doc.Normalize()
	if mode == ModeDraft {
		doc.HighlightTags()
	}

	filters := NewFilterSet(r.analyzer, mode, r.logger)
	doc.ReplaceTags(func(inner string) (string, bool) {
		return r.evaluate(inner, values, filters)
	})

	return doc.Bytes()
}

// evaluate resolves one tag expression against the context.
func (r *Renderer) evaluate(inner string, values map[string]string, filters *FilterSet) (string, bool) {
	expr, err := ParseExpression(inner)
	if err != nil {
		r.logger.Warn("template_expression_invalid",
			slog.String("expression", inner),
			slog.Any("error", err),
		)
		return "", false
	}

	value, ok := r.resolveOperand(expr.Term, values)
	if !ok {
		return "", false
	}

	for _, call := range expr.Filters {
		args := make([]string, 0, len(call.Args))
		for _, arg := range call.Args {
			resolved, ok := r.resolveOperand(arg, values)
			if !ok {
				return "", false
			}
			args = append(args, resolved)
		}

		value, err = filters.Apply(call.Name, value, args)
		if err != nil {
			r.logger.Warn("template_filter_failed",
				slog.String("expression", inner),
				slog.String("filter", call.Name),
				slog.Any("error", err),
			)
			return "", false
		}
	}

	return value, true
}

// resolveOperand returns the operand's text, looking up references in the
// context values.
func (r *Renderer) resolveOperand(op Operand, values map[string]string) (string, bool) {
	if op.IsLiteral {
		return op.Literal, true
	}

	value, ok := values[op.Name]
	if !ok {
		r.logger.Warn("template_variable_unresolved", slog.String("variable", op.Name))
		return "", false
	}
	return value, true
}
