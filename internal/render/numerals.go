// Copyright (c) 2026 Document Template Engine. All rights reserved.
// Author: a.velichko.dev@gmail.com

package render

import (
	"fmt"
	"strconv"
	"strings"
)

// Spelled-out number vocabulary. Units exist in two genders because
// thousands are feminine ("одна тысяча") while rubles and the larger
// scales are masculine ("один миллион").
var (
	unitsMasculine = []string{"", "один", "два", "три", "четыре", "пять", "шесть", "семь", "восемь", "девять"}
	unitsFeminine  = []string{"", "одна", "две", "три", "четыре", "пять", "шесть", "семь", "восемь", "девять"}
	teens          = []string{"десять", "одиннадцать", "двенадцать", "тринадцать", "четырнадцать", "пятнадцать", "шестнадцать", "семнадцать", "восемнадцать", "девятнадцать"}
	tens           = []string{"", "", "двадцать", "тридцать", "сорок", "пятьдесят", "шестьдесят", "семьдесят", "восемьдесят", "девяносто"}
	hundreds       = []string{"", "сто", "двести", "триста", "четыреста", "пятьсот", "шестьсот", "семьсот", "восемьсот", "девятьсот"}
)

// scale is a thousand-group name with its three agreement forms.
type scale struct {
	feminine bool
	// forms are indexed by Plurality: one, few, many.
	forms [3]string
}

var scales = []scale{
	{}, // the units group has no scale word
	{feminine: true, forms: [3]string{"тысяча", "тысячи", "тысяч"}},
	{forms: [3]string{"миллион", "миллиона", "миллионов"}},
	{forms: [3]string{"миллиард", "миллиарда", "миллиардов"}},
	{forms: [3]string{"триллион", "триллиона", "триллионов"}},
}

var (
	rubleForms  = [3]string{"рубль", "рубля", "рублей"}
	kopeckForms = [3]string{"копейка", "копейки", "копеек"}
)

// maxSpellable is the largest integer the scale table covers.
const maxSpellable = 999_999_999_999_999

// CurrencyToWords converts a decimal amount of rubles into its spelled-out
// form: "1021.00" becomes "одна тысяча двадцать один рубль, 00 копеек".
//
// # Format
//
// The integer part is written in words with correct gender and count
// agreement; kopecks stay numeric with two digits, agreeing in form with
// their value. This matches how Russian contracts state monetary amounts.
func CurrencyToWords(amount string) (string, error) {
	rubles, kopecks, err := parseAmount(amount)
	if err != nil {
		return "", err
	}

	words := spellInteger(rubles)
	rubleWord := rubleForms[Agreement(rubles)]
	kopeckWord := kopeckForms[Agreement(kopecks)]

	return fmt.Sprintf("%s %s, %02d %s", words, rubleWord, kopecks, kopeckWord), nil
}

// parseAmount splits a decimal string into ruble and kopeck parts.
//
// The fractional part is normalized to exactly two digits: "3.2" means
// 20 kopecks, extra precision is truncated.
func parseAmount(amount string) (rubles int64, kopecks int64, err error) {
	trimmed := strings.TrimSpace(amount)
	if trimmed == "" {
		return 0, 0, fmt.Errorf("render: empty amount")
	}

	intPart := trimmed
	fracPart := ""
	if dot := strings.IndexAny(trimmed, ".,"); dot >= 0 {
		intPart = trimmed[:dot]
		fracPart = trimmed[dot+1:]
	}

	rubles, err = strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("render: invalid amount %q", amount)
	}
	if rubles < 0 {
		return 0, 0, fmt.Errorf("render: negative amount %q", amount)
	}
	if rubles > maxSpellable {
		return 0, 0, fmt.Errorf("render: amount %q is too large to spell out", amount)
	}

	switch {
	case fracPart == "":
		kopecks = 0
	default:
		normalized := (fracPart + "00")[:2]
		kopecks, err = strconv.ParseInt(normalized, 10, 64)
		if err != nil {
			return 0, 0, fmt.Errorf("render: invalid amount %q", amount)
		}
	}

	return rubles, kopecks, nil
}

// spellInteger writes n in words with masculine agreement in the units group.
func spellInteger(n int64) string {
	if n == 0 {
		return "ноль"
	}

	// Split into thousand-groups, least significant first.
	var groups []int64
	for rest := n; rest > 0; rest /= 1000 {
		groups = append(groups, rest%1000)
	}

	var parts []string
	for i := len(groups) - 1; i >= 0; i-- {
		group := groups[i]
		if group == 0 {
			continue
		}

		parts = append(parts, spellTriplet(group, scales[i].feminine)...)
		if i > 0 {
			parts = append(parts, scales[i].forms[Agreement(group)])
		}
	}

	return strings.Join(parts, " ")
}

// spellTriplet writes a group of up to three digits in words.
func spellTriplet(n int64, feminine bool) []string {
	units := unitsMasculine
	if feminine {
		units = unitsFeminine
	}

	var parts []string
	if h := n / 100; h > 0 {
		parts = append(parts, hundreds[h])
	}

	rest := n % 100
	switch {
	case rest >= 10 && rest <= 19:
		parts = append(parts, teens[rest-10])
	default:
		if t := rest / 10; t > 0 {
			parts = append(parts, tens[t])
		}
		if u := rest % 10; u > 0 {
			parts = append(parts, units[u])
		}
	}

	return parts
}
