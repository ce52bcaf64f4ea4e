// Copyright (c) 2026 Document Template Engine. All rights reserved.
// Author: a.velichko.dev@gmail.com

package render

import "strings"

// Case is a Russian grammatical case.
type Case int

const (
	Nominative Case = iota
	Genitive
	Dative
	Accusative
	Instrumental
	Prepositional
	// Vocative is the modern address form. Only truncating given names
	// have a distinct form (Катя → Кать); everything else keeps the
	// nominative.
	Vocative
)

// NameRole tells the analyzer which part of a full name a word is.
//
// Role matters because declension is ambiguous on the surface: "Ильина" is
// a surname (instrumental "Ильиной") while "Ирина" is a given name
// (instrumental "Ириной" via the common -а declension, genitive "Ирины"
// not "Ильиной"-style). Name-aware filters know word positions and pass
// the role; everything else uses RoleGeneric.
type NameRole int

const (
	RoleGeneric NameRole = iota
	RoleSurname
	RoleGiven
	RolePatronymic
)

// Analyzer inflects a single lowercase word into a grammatical case.
//
// Implementations report false when the word cannot be inflected; callers
// are expected to keep the original word in that situation so a failed
// inflection never corrupts a document.
type Analyzer interface {
	// Inflect returns the singular form of word in the given case.
	Inflect(word string, c Case) (string, bool)
	// InflectName inflects a word of a personal name.
	InflectName(word string, role NameRole, c Case) (string, bool)
	// GenitivePlural returns the genitive plural form of word.
	GenitivePlural(word string) (string, bool)
}

// lexeme is an irregular word with all singular case forms spelled out.
type lexeme struct {
	// forms is indexed by Case, Nominative through Prepositional;
	// Nominative holds the dictionary form. The vocative is derived, never
	// stored.
	forms [6]string
	// genPlural is the genitive plural ("дней", "рублей").
	genPlural string
}

// RuleAnalyzer inflects personal names and common measure words using
// declension suffix rules plus a small lexicon of irregular nouns.
//
// # Coverage
//
// The rule set targets what document templates actually inflect: full names
// (surname, given name, patronymic) and the nouns that appear next to
// numbers in contracts. It is not a general-purpose morphology engine and
// deliberately returns the input unchanged for anything it cannot classify.
type RuleAnalyzer struct {
	exceptions map[string]lexeme
}

// NewRuleAnalyzer builds an analyzer with the built-in irregular lexicon.
func NewRuleAnalyzer() *RuleAnalyzer {
	return &RuleAnalyzer{
		exceptions: map[string]lexeme{
			"день": {
				forms:     [6]string{"день", "дня", "дню", "день", "днём", "дне"},
				genPlural: "дней",
			},
			"рубль": {
				forms:     [6]string{"рубль", "рубля", "рублю", "рубль", "рублём", "рубле"},
				genPlural: "рублей",
			},
			"копейка": {
				forms:     [6]string{"копейка", "копейки", "копейке", "копейку", "копейкой", "копейке"},
				genPlural: "копеек",
			},
			"год": {
				forms:     [6]string{"год", "года", "году", "год", "годом", "годе"},
				genPlural: "лет",
			},
			"месяц": {
				forms:     [6]string{"месяц", "месяца", "месяцу", "месяц", "месяцем", "месяце"},
				genPlural: "месяцев",
			},
			"неделя": {
				forms:     [6]string{"неделя", "недели", "неделе", "неделю", "неделей", "неделе"},
				genPlural: "недель",
			},
		},
	}
}

// Letter groups driving suffix choice.
const (
	// hushing consonants take -ем/-ей instead of -ом/-ой.
	hushing = "жчшщц"
	// velars and hushings forbid -ы after the stem.
	noYVowel = "гкхжчшщ"
)

// Inflect returns the singular form of word in the given case.
func (a *RuleAnalyzer) Inflect(word string, c Case) (string, bool) {
	return a.InflectName(word, RoleGeneric, c)
}

// InflectName inflects a word of a personal name according to its role.
func (a *RuleAnalyzer) InflectName(word string, role NameRole, c Case) (string, bool) {
	if c == Nominative || word == "" {
		return word, true
	}
	if c == Vocative {
		return vocative(word, role), true
	}

	lower := strings.ToLower(word)
	if lex, ok := a.exceptions[lower]; ok {
		return lex.forms[c], true
	}

	if role == RoleSurname {
		if form, ok := inflectSurname(lower, c); ok {
			return form, true
		}
	}

	if form, ok := inflectCommon(lower, c); ok {
		return form, true
	}

	return word, false
}

// vocative returns the modern address form: truncating given names drop
// the final -а/-я (Катя → кать, Ирина → ирин). Names in -ия/-ья and every
// other word have no distinct form and keep the nominative.
func vocative(word string, role NameRole) string {
	if role != RoleGiven {
		return word
	}

	lower := strings.ToLower(word)
	if hasSuffix(lower, "ия", "ья") {
		return word
	}
	if stem, ok := trimSuffix([]rune(lower), "а", "я"); ok {
		return stem
	}
	return word
}

// inflectSurname handles the -ов/-ев/-ин surname declension, which differs
// from common nouns in the instrumental (Ивановым, not Ивановом) and has a
// dedicated feminine paradigm (Ивановой).
func inflectSurname(lower string, c Case) (string, bool) {
	runes := []rune(lower)

	// Feminine: Иванова, Сергеева, Ильина.
	if hasSuffix(lower, "ова", "ева", "ёва", "ина", "ына") && len(runes) > 4 {
		base := string(runes[:len(runes)-1])
		switch c {
		case Genitive, Dative, Instrumental, Prepositional:
			return base + "ой", true
		case Accusative:
			return base + "у", true
		}
	}

	// Masculine: Иванов, Сергеев, Ильин.
	if hasSuffix(lower, "ов", "ев", "ёв", "ин", "ын") && len(runes) > 3 {
		switch c {
		case Genitive, Accusative:
			return lower + "а", true
		case Dative:
			return lower + "у", true
		case Instrumental:
			return lower + "ым", true
		case Prepositional:
			return lower + "е", true
		}
	}

	return "", false
}

// inflectCommon applies the regular declension paradigms shared by given
// names, patronymics and common nouns.
func inflectCommon(lower string, c Case) (string, bool) {
	runes := []rune(lower)
	if len(runes) < 2 {
		return "", false
	}

	// Nouns and names in -ия: Мария, Анастасия.
	if stem, ok := trimSuffix(runes, "ия"); ok {
		switch c {
		case Genitive, Dative, Prepositional:
			return stem + "ии", true
		case Accusative:
			return stem + "ию", true
		case Instrumental:
			return stem + "ией", true
		}
	}

	// First declension in -а: Ирина, Петровна, бумага.
	if stem, ok := trimSuffix(runes, "а"); ok {
		last := runes[len(runes)-2]
		switch c {
		case Genitive:
			if strings.ContainsRune(noYVowel, last) {
				return stem + "и", true
			}
			return stem + "ы", true
		case Dative, Prepositional:
			return stem + "е", true
		case Accusative:
			return stem + "у", true
		case Instrumental:
			if strings.ContainsRune(hushing, last) {
				return stem + "ей", true
			}
			return stem + "ой", true
		}
	}

	// First declension in -я: Катя, Илья.
	if stem, ok := trimSuffix(runes, "я"); ok {
		switch c {
		case Genitive:
			return stem + "и", true
		case Dative, Prepositional:
			return stem + "е", true
		case Accusative:
			return stem + "ю", true
		case Instrumental:
			return stem + "ей", true
		}
	}

	// Second declension in -й: Сергей, Николай.
	if stem, ok := trimSuffix(runes, "й"); ok {
		switch c {
		case Genitive, Accusative:
			return stem + "я", true
		case Dative:
			return stem + "ю", true
		case Instrumental:
			return stem + "ем", true
		case Prepositional:
			return stem + "е", true
		}
	}

	// Soft-sign masculine: Игорь, житель.
	if stem, ok := trimSuffix(runes, "ь"); ok {
		switch c {
		case Genitive, Accusative:
			return stem + "я", true
		case Dative:
			return stem + "ю", true
		case Instrumental:
			return stem + "ем", true
		case Prepositional:
			return stem + "е", true
		}
	}

	// Neuter in -о: окно, письмо.
	if stem, ok := trimSuffix(runes, "о"); ok {
		switch c {
		case Genitive:
			return stem + "а", true
		case Dative:
			return stem + "у", true
		case Accusative:
			return lower, true
		case Instrumental:
			return stem + "ом", true
		case Prepositional:
			return stem + "е", true
		}
	}

	// Hard-consonant masculine: Иван, Петрович, договор.
	last := runes[len(runes)-1]
	if isRussianConsonant(last) {
		switch c {
		case Genitive, Accusative:
			return lower + "а", true
		case Dative:
			return lower + "у", true
		case Instrumental:
			if strings.ContainsRune(hushing, last) {
				return lower + "ем", true
			}
			return lower + "ом", true
		case Prepositional:
			return lower + "е", true
		}
	}

	return "", false
}

// GenitivePlural returns the genitive plural form of word ("5 рублей").
func (a *RuleAnalyzer) GenitivePlural(word string) (string, bool) {
	lower := strings.ToLower(word)
	if lex, ok := a.exceptions[lower]; ok {
		return lex.genPlural, true
	}

	runes := []rune(lower)
	if len(runes) < 2 {
		return word, false
	}

	// -ка inserts a fleeting vowel: справка → справок is lexical, but the
	// document vocabulary (копейка is in the lexicon anyway) declines with
	// -ек after soft stems, so prefer that.
	if stem, ok := trimSuffix(runes, "ка"); ok {
		return stem + "ек", true
	}

	if stem, ok := trimSuffix(runes, "ия"); ok {
		return stem + "ий", true
	}

	// -а/-я feminine: zero ending.
	if stem, ok := trimSuffix(runes, "а"); ok {
		return stem, true
	}
	if stem, ok := trimSuffix(runes, "я"); ok {
		return stem + "ь", true
	}

	if stem, ok := trimSuffix(runes, "й"); ok {
		return stem + "ев", true
	}
	if stem, ok := trimSuffix(runes, "ь"); ok {
		return stem + "ей", true
	}

	last := runes[len(runes)-1]
	if isRussianConsonant(last) {
		if strings.ContainsRune(hushing, last) {
			return lower + "ей", true
		}
		return lower + "ов", true
	}

	return word, false
}

// hasSuffix reports whether the word ends with any of the suffixes.
func hasSuffix(word string, suffixes ...string) bool {
	for _, suffix := range suffixes {
		if strings.HasSuffix(word, suffix) {
			return true
		}
	}
	return false
}

// trimSuffix returns the stem when the word ends with any of the suffixes.
func trimSuffix(runes []rune, suffixes ...string) (string, bool) {
	word := string(runes)
	for _, suffix := range suffixes {
		if strings.HasSuffix(word, suffix) && len(word) > len(suffix) {
			return strings.TrimSuffix(word, suffix), true
		}
	}
	return "", false
}

// isRussianConsonant reports whether r is a Russian consonant letter.
func isRussianConsonant(r rune) bool {
	return strings.ContainsRune("бвгджзйклмнпрстфхцчшщ", r)
}

// Plurality is the agreement category a count imposes on a noun.
type Plurality int

const (
	// One: 1, 21, 101 — nominative singular.
	One Plurality = iota
	// Few: 2–4, 22–24 — genitive singular.
	Few
	// Many: 0, 5–20, 25–30 — genitive plural.
	Many
)

// Agreement returns the plurality category for n under East Slavic count
// agreement rules. Teens (11–14) always count as Many.
func Agreement(n int64) Plurality {
	if n < 0 {
		n = -n
	}

	switch {
	case n%100 >= 11 && n%100 <= 14:
		return Many
	case n%10 == 1:
		return One
	case n%10 >= 2 && n%10 <= 4:
		return Few
	default:
		return Many
	}
}
