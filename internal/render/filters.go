// Copyright (c) 2026 Document Template Engine. All rights reserved.
// Author: a.velichko.dev@gmail.com

package render

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Mode selects how a template is rendered.
type Mode int

const (
	// ModeFull renders the final document with every filter applied.
	ModeFull Mode = iota
	// ModeDraft renders a review copy: tag positions are highlighted and
	// the text-transforming filters pass values through untouched, so the
	// reviewer sees raw field values where they will appear.
	ModeDraft
)

// String implements fmt.Stringer for logging and metrics labels.
func (m Mode) String() string {
	if m == ModeDraft {
		return "draft"
	}
	return "full"
}

// FilterFunc transforms a tag value. Args are already resolved to strings.
type FilterFunc func(value string, args []string) (string, error)

// FilterSet is the registry of template filters bound to an analyzer and a
// render mode.
//
// # Draft behavior
//
// In ModeDraft every filter is an identity function. The mode is fixed at
// construction; a set is never toggled mid-render.
type FilterSet struct {
	analyzer Analyzer
	mode     Mode
	logger   *slog.Logger
	filters  map[string]FilterFunc
}

// NewFilterSet builds the standard filter registry.
func NewFilterSet(analyzer Analyzer, mode Mode, logger *slog.Logger) *FilterSet {
	f := &FilterSet{
		analyzer: analyzer,
		mode:     mode,
		logger:   logger,
	}
	f.filters = map[string]FilterFunc{
		"fio_short":         f.fioShort,
		"fio_title":         f.fioTitle,
		"genitive":          f.caseFilter(Genitive),
		"dative":            f.caseFilter(Dative),
		"ablt":              f.caseFilter(Instrumental),
		"noun_plural":       f.nounPlural,
		"adj_plural":        f.adjPlural,
		"currency_to_words": f.currencyToWords,
		"split":             f.split,
	}
	return f
}

// Names returns the registered filter names, for diagnostics.
func (f *FilterSet) Names() []string {
	names := make([]string, 0, len(f.filters))
	for name := range f.filters {
		names = append(names, name)
	}
	return names
}

// Apply runs the named filter on value.
//
// Unknown filter names are an error; in draft mode known filters return the
// value unchanged.
func (f *FilterSet) Apply(name, value string, args []string) (string, error) {
	filter, ok := f.filters[name]
	if !ok {
		return "", fmt.Errorf("render: unknown filter %q", name)
	}
	if f.mode == ModeDraft {
		return value, nil
	}
	return filter(value, args)
}

// fioShort turns "фамилия имя отчество" into "Фамилия И.О.".
func (f *FilterSet) fioShort(value string, _ []string) (string, error) {
	fields := strings.Fields(value)
	if len(fields) == 0 {
		return value, nil
	}

	var initials strings.Builder
	for _, field := range fields[1:] {
		runes := []rune(field)
		initials.WriteRune(unicode.ToUpper(runes[0]))
		initials.WriteString(".")
	}

	surname := capitalizeWord(fields[0])
	if initials.Len() == 0 {
		return surname, nil
	}
	return surname + " " + initials.String(), nil
}

// fioTitle turns "фамилия имя отчество" into "Фамилия Имя Отчество".
func (f *FilterSet) fioTitle(value string, _ []string) (string, error) {
	return cases.Title(language.Russian).String(value), nil
}

// caseFilter builds a filter that inflects every word of a full name into
// the given case. Word position decides the declension paradigm: first word
// surname, second given name, third patronymic.
func (f *FilterSet) caseFilter(c Case) FilterFunc {
	roles := []NameRole{RoleSurname, RoleGiven, RolePatronymic}

	return func(value string, _ []string) (string, error) {
		words := strings.Fields(value)
		for i, word := range words {
			role := RoleGeneric
			if i < len(roles) {
				role = roles[i]
			}

			form, ok := f.analyzer.InflectName(word, role, c)
			if !ok {
				f.logger.Warn("word_inflection_failed",
					slog.String("word", word),
					slog.Int("case", int(c)),
				)
				continue
			}
			words[i] = form
		}
		return strings.Join(words, " "), nil
	}
}

// nounPlural agrees a noun with a count: "день" with 2 becomes "дня",
// with 5 "дней", with 21 "день" again.
func (f *FilterSet) nounPlural(value string, args []string) (string, error) {
	n, err := filterCount(args)
	if err != nil {
		return "", fmt.Errorf("render: noun_plural: %w", err)
	}

	switch Agreement(n) {
	case One:
		return value, nil
	case Few:
		form, ok := f.analyzer.Inflect(value, Genitive)
		if !ok {
			f.logger.Warn("noun_agreement_failed", slog.String("word", value))
			return value, nil
		}
		return form, nil
	default:
		form, ok := f.analyzer.GenitivePlural(value)
		if !ok {
			f.logger.Warn("noun_agreement_failed", slog.String("word", value))
			return value, nil
		}
		return form, nil
	}
}

// adjectivePluralSuffixes maps nominative adjective endings to their
// genitive plural endings.
var adjectivePluralSuffixes = [][2]string{
	{"ний", "них"},
	{"ий", "их"},
	{"ый", "ых"},
	{"ой", "ых"},
	{"яя", "их"},
	{"ая", "ых"},
	{"ее", "их"},
	{"ое", "ых"},
}

// adjPlural agrees an adjective with a count: "календарный" with 2 becomes
// "календарных", with 21 stays "календарный".
func (f *FilterSet) adjPlural(value string, args []string) (string, error) {
	n, err := filterCount(args)
	if err != nil {
		return "", fmt.Errorf("render: adj_plural: %w", err)
	}

	if Agreement(n) == One {
		return value, nil
	}

	lower := strings.ToLower(value)
	for _, pair := range adjectivePluralSuffixes {
		if strings.HasSuffix(lower, pair[0]) {
			return strings.TrimSuffix(lower, pair[0]) + pair[1], nil
		}
	}

	f.logger.Warn("adjective_agreement_failed", slog.String("word", value))
	return value, nil
}

// currencyToWords spells out a decimal ruble amount.
func (f *FilterSet) currencyToWords(value string, _ []string) (string, error) {
	return CurrencyToWords(value)
}

// split divides the value and returns one part or the parts re-joined with
// a single space.
//
// # Arguments
//
//	split              — split on whitespace
//	split(",")         — split on a separator
//	split(",", 1)      — split and take the part at a zero-based index
func (f *FilterSet) split(value string, args []string) (string, error) {
	var parts []string
	if len(args) == 0 || args[0] == "" {
		parts = strings.Fields(value)
	} else {
		parts = strings.Split(value, args[0])
	}

	if len(args) < 2 {
		return strings.Join(parts, " "), nil
	}

	index, err := strconv.Atoi(args[1])
	if err != nil {
		return "", fmt.Errorf("render: split: index %q is not a number", args[1])
	}
	if index < 0 || index >= len(parts) {
		return "", fmt.Errorf("render: split: index %d out of range (%d parts)", index, len(parts))
	}
	return parts[index], nil
}

// filterCount parses the required count argument of an agreement filter.
func filterCount(args []string) (int64, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("count argument is required")
	}
	n, err := strconv.ParseInt(strings.TrimSpace(args[0]), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("count %q is not an integer", args[0])
	}
	return n, nil
}

// capitalizeWord uppercases the first letter and lowercases the rest.
func capitalizeWord(word string) string {
	runes := []rune(word)
	if len(runes) == 0 {
		return word
	}

	var b strings.Builder
	b.WriteRune(unicode.ToUpper(runes[0]))
	b.WriteString(strings.ToLower(string(runes[1:])))
	return b.String()
}
