// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAnswer(t *testing.T) {
	tests := []struct {
		response string
		relaxed  Answer
		strict   Answer
	}{
		{"y", AnswerYes, AnswerYes},
		{"Y", AnswerYes, AnswerUnknown},
		{"yes", AnswerYes, AnswerUnknown},
		{"YES", AnswerYes, AnswerUnknown},
		{" y ", AnswerYes, AnswerYes},
		{"n", AnswerNo, AnswerNo},
		{"No", AnswerNo, AnswerUnknown},
		{"", AnswerUnknown, AnswerUnknown},
		{"sure", AnswerUnknown, AnswerUnknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.relaxed, PolicyRelaxed.ParseAnswer(tt.response), "relaxed %q", tt.response)
		assert.Equal(t, tt.strict, PolicyStrict.ParseAnswer(tt.response), "strict %q", tt.response)
	}
}

func TestAffirmative_UnknownDeclines(t *testing.T) {
	assert.False(t, PolicyRelaxed.Affirmative("maybe"))
	assert.False(t, PolicyStrict.Affirmative("yes"))
	assert.True(t, PolicyStrict.Affirmative("y"))
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("STRICT")
	require.NoError(t, err)
	assert.Equal(t, PolicyStrict, p)

	p, err = ParsePolicy("")
	require.NoError(t, err)
	assert.Equal(t, PolicyRelaxed, p)

	_, err = ParsePolicy("lenient")
	assert.Error(t, err)
}

func TestAnswerString(t *testing.T) {
	assert.Equal(t, "yes", AnswerYes.String())
	assert.Equal(t, "no", AnswerNo.String())
	assert.Equal(t, "unknown", AnswerUnknown.String())
}
