// Copyright (c) 2026 Document Template Engine. All rights reserved.
// Author: a.velichko.dev@gmail.com

package render_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/document-template-engine/backend/internal/render"
)

func TestDiff_Consistent(t *testing.T) {
	diff := render.Diff(
		[]string{"фио", "дата", "сумма"},
		[]string{"сумма", "фио", "дата"},
	)

	assert.True(t, diff.Consistent())
	assert.Empty(t, diff.ExcessTags)
	assert.Empty(t, diff.ExcessFields)
	assert.Nil(t, diff.Errors())
}

func TestDiff_BothDirections(t *testing.T) {
	diff := render.Diff(
		[]string{"фио", "дата", "подпись"},
		[]string{"фио", "сумма", "адрес"},
	)

	assert.False(t, diff.Consistent())
	assert.Equal(t, []string{"дата", "подпись"}, diff.ExcessTags)
	assert.Equal(t, []string{"адрес", "сумма"}, diff.ExcessFields)

	errs := diff.Errors()
	require.Len(t, errs, 2)
	assert.Equal(t, []string{"дата", "подпись"}, errs[0].Tags)
	assert.Equal(t, []string{"адрес", "сумма"}, errs[1].Tags)
	assert.NotEqual(t, errs[0].Message, errs[1].Message)
}

/*
TestDiff_ExactMatching: comparison is byte-for-byte. Case and whitespace
variants are different tags, never fuzzy-matched.
*/
func TestDiff_ExactMatching(t *testing.T) {
	diff := render.Diff(
		[]string{"ФИО", "дата "},
		[]string{"фио", "дата"},
	)

	assert.False(t, diff.Consistent())
	assert.Equal(t, []string{"ФИО", "дата "}, diff.ExcessTags)
	assert.Equal(t, []string{"дата", "фио"}, diff.ExcessFields)
}

func TestDiff_Empty(t *testing.T) {
	assert.True(t, render.Diff(nil, nil).Consistent())

	diff := render.Diff([]string{"тег"}, nil)
	assert.Equal(t, []string{"тег"}, diff.ExcessTags)
	assert.Empty(t, diff.ExcessFields)
}
