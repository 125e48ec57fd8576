// Copyright (c) 2026 SunnahTH. All rights reserved.
// Author: admin@sunnahthai.com

package oracle_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunnahth/hadith-api/internal/oracle"
)

/*
TestParseTranslation exercises the response cleanup pipeline: markdown
fences, list-wrapped objects, and plain JSON must all decode to the same
translation.
*/
func TestParseTranslation(t *testing.T) {
	expected := oracle.Translation{
		KitabTh:   "หมวดการเริ่มต้นของวะฮีย์",
		BabTh:     "บทที่หนึ่ง",
		ContentTh: "การงานทั้งหลายขึ้นอยู่กับเจตนา",
		Notes:     "",
	}
	body := `{"kitab_th":"หมวดการเริ่มต้นของวะฮีย์","bab_th":"บทที่หนึ่ง","content_th":"การงานทั้งหลายขึ้นอยู่กับเจตนา","notes":""}`

	tests := []struct {
		name string
		raw  string
	}{
		{"plain_object", body},
		{"fenced_with_language_tag", "```json\n" + body + "\n```"},
		{"fenced_without_language_tag", "```\n" + body + "\n```"},
		{"surrounding_whitespace", "\n  " + body + "  \n"},
		{"list_wrapped_object", "[" + body + "]"},
		{"fenced_list", "```json\n[" + body + "]\n```"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			parsed, err := oracle.ParseTranslation(tc.raw)
			require.NoError(t, err)
			assert.Equal(t, expected, parsed)
		})
	}
}

/*
TestParseTranslation_Malformed verifies that unparseable responses surface
as provider errors, never panics or partial values.
*/
func TestParseTranslation_Malformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not_json", "Sorry, I cannot translate this."},
		{"truncated_object", `{"kitab_th":"หมวด`},
		{"empty_list", "[]"},
		{"empty_string", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := oracle.ParseTranslation(tc.raw)
			require.Error(t, err)

			var providerErr *oracle.ProviderError
			assert.True(t, errors.As(err, &providerErr))
			assert.Equal(t, "parser", providerErr.Provider)
		})
	}
}

/*
TestParseRecovery verifies the backfill response schema.
*/
func TestParseRecovery(t *testing.T) {
	parsed, err := oracle.ParseRecovery(`{"arabic":"نص مستعاد","thai":"คำแปล"}`)
	require.NoError(t, err)
	assert.Equal(t, "نص مستعاد", parsed.Arabic)
	assert.Equal(t, "คำแปล", parsed.Thai)

	// Unknown keys (e.g. the model's error field) are tolerated
	parsed, err = oracle.ParseRecovery(`{"arabic":"","thai":"","error":"Could not find hadith"}`)
	require.NoError(t, err)
	assert.Empty(t, parsed.Arabic)
}
