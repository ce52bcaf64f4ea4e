// Copyright (c) 2026 Document Template Engine. All rights reserved.
// Author: a.velichko.dev@gmail.com

package render_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/document-template-engine/backend/internal/render"
)

/*
TestInflectName_MasculineFullName checks the three words of a masculine
full name in the oblique cases used by the name filters.
*/
func TestInflectName_MasculineFullName(t *testing.T) {
	analyzer := render.NewRuleAnalyzer()

	tests := []struct {
		name string
		word string
		role render.NameRole
		c    render.Case
		want string
	}{
		{"surname_genitive", "иванов", render.RoleSurname, render.Genitive, "иванова"},
		{"surname_dative", "иванов", render.RoleSurname, render.Dative, "иванову"},
		{"surname_instrumental", "иванов", render.RoleSurname, render.Instrumental, "ивановым"},
		{"given_genitive", "иван", render.RoleGiven, render.Genitive, "ивана"},
		{"given_dative", "иван", render.RoleGiven, render.Dative, "ивану"},
		{"patronymic_genitive", "петрович", render.RolePatronymic, render.Genitive, "петровича"},
		{"patronymic_dative", "петрович", render.RolePatronymic, render.Dative, "петровичу"},
		{"patronymic_instrumental", "петрович", render.RolePatronymic, render.Instrumental, "петровичем"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := analyzer.InflectName(tt.word, tt.role, tt.c)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

/*
TestInflectName_FeminineFullName checks the feminine paradigm, where the
surname takes -ой in every oblique case.
*/
func TestInflectName_FeminineFullName(t *testing.T) {
	analyzer := render.NewRuleAnalyzer()

	tests := []struct {
		name string
		word string
		role render.NameRole
		c    render.Case
		want string
	}{
		{"surname_genitive", "иванова", render.RoleSurname, render.Genitive, "ивановой"},
		{"surname_dative", "иванова", render.RoleSurname, render.Dative, "ивановой"},
		{"surname_instrumental", "иванова", render.RoleSurname, render.Instrumental, "ивановой"},
		{"given_genitive", "ирина", render.RoleGiven, render.Genitive, "ирины"},
		{"given_dative", "ирина", render.RoleGiven, render.Dative, "ирине"},
		{"given_instrumental", "ирина", render.RoleGiven, render.Instrumental, "ириной"},
		{"patronymic_genitive", "петровна", render.RolePatronymic, render.Genitive, "петровны"},
		{"patronymic_dative", "петровна", render.RolePatronymic, render.Dative, "петровне"},
		{"patronymic_instrumental", "петровна", render.RolePatronymic, render.Instrumental, "петровной"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := analyzer.InflectName(tt.word, tt.role, tt.c)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

/*
TestInflectName_Vocative checks the derived address form: truncating given
names drop the final vowel, every other word falls back to the nominative.
*/
func TestInflectName_Vocative(t *testing.T) {
	analyzer := render.NewRuleAnalyzer()

	tests := []struct {
		name string
		word string
		role render.NameRole
		want string
	}{
		{"truncating_given_a", "ирина", render.RoleGiven, "ирин"},
		{"truncating_given_ya", "катя", render.RoleGiven, "кать"},
		{"given_in_iya_unchanged", "мария", render.RoleGiven, "мария"},
		{"consonant_given_unchanged", "иван", render.RoleGiven, "иван"},
		{"surname_unchanged", "иванова", render.RoleSurname, "иванова"},
		{"generic_unchanged", "договор", render.RoleGeneric, "договор"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := analyzer.InflectName(tt.word, tt.role, render.Vocative)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

/*
TestInflect_IrregularNouns covers the lexicon entries the currency and
duration filters depend on.
*/
func TestInflect_IrregularNouns(t *testing.T) {
	analyzer := render.NewRuleAnalyzer()

	tests := []struct {
		word string
		c    render.Case
		want string
	}{
		{"день", render.Genitive, "дня"},
		{"день", render.Dative, "дню"},
		{"день", render.Instrumental, "днём"},
		{"рубль", render.Genitive, "рубля"},
		{"копейка", render.Genitive, "копейки"},
		{"год", render.Genitive, "года"},
	}

	for _, tt := range tests {
		t.Run(tt.word+"_"+tt.want, func(t *testing.T) {
			got, ok := analyzer.Inflect(tt.word, tt.c)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGenitivePlural(t *testing.T) {
	analyzer := render.NewRuleAnalyzer()

	tests := []struct {
		word string
		want string
	}{
		{"день", "дней"},
		{"рубль", "рублей"},
		{"копейка", "копеек"},
		{"год", "лет"},
		{"месяц", "месяцев"},
		{"договор", "договоров"},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			got, ok := analyzer.GenitivePlural(tt.word)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInflect_UnknownWordKeptUnchanged(t *testing.T) {
	analyzer := render.NewRuleAnalyzer()

	got, ok := analyzer.Inflect("XYZ-42", render.Genitive)
	assert.False(t, ok)
	assert.Equal(t, "XYZ-42", got)
}

/*
TestAgreement verifies the East Slavic count agreement rules: teens are
always Many, the last digit decides everything else.
*/
func TestAgreement(t *testing.T) {
	tests := []struct {
		n    int64
		want render.Plurality
	}{
		{1, render.One},
		{2, render.Few},
		{4, render.Few},
		{5, render.Many},
		{10, render.Many},
		{11, render.Many},
		{12, render.Many},
		{14, render.Many},
		{21, render.One},
		{22, render.Few},
		{25, render.Many},
		{100, render.Many},
		{101, render.One},
		{111, render.Many},
		{0, render.Many},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, render.Agreement(tt.n), "n=%d", tt.n)
	}
}
