// Copyright (c) 2026 SunnahTH. All rights reserved.
// Author: admin@sunnahthai.com

package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const hadithAPIPayload = `{
	"status": 200,
	"hadiths": {
		"total": "120",
		"data": [
			{
				"hadithNumber": "1",
				"hadithArabic": " إنما الأعمال بالنيات ",
				"headingArabic": "باب كيف كان بدء الوحي",
				"headingEnglish": "How the revelation began",
				"status": "Sahih",
				"chapter": {"id": "1", "chapterArabic": "كتاب بدء الوحي", "chapterEnglish": "Revelation"}
			},
			{
				"hadithNumber": "2",
				"hadithArabic": "",
				"headingArabic": "",
				"headingEnglish": "",
				"status": "Sahih",
				"chapter": {"id": "1", "chapterArabic": "كتاب بدء الوحي", "chapterEnglish": "Revelation"}
			}
		]
	}
}`

/*
TestHadithAPIAdapter_Parse verifies the paged format: embedded chapter
fields map onto the draft and empty Arabic text counts as a skip.
*/
func TestHadithAPIAdapter_Parse(t *testing.T) {
	adapter := &HadithAPIAdapter{}

	drafts, stats, err := adapter.Parse("muslim", []byte(hadithAPIPayload))
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Parsed)
	assert.Equal(t, 1, stats.Skipped)
	require.Len(t, drafts, 1)

	draft := drafts[0]
	assert.Equal(t, "muslim", draft.Book)
	assert.Equal(t, "1", draft.Number)
	assert.Equal(t, "إنما الأعمال بالنيات", draft.ContentAr, "content is trimmed")
	assert.Equal(t, 1, draft.KitabOrdinal)
	assert.Equal(t, "كتاب بدء الوحي", draft.KitabAr)
	assert.Equal(t, "Revelation", draft.KitabEn)
	assert.Equal(t, "باب كيف كان بدء الوحي", draft.BabAr)
	assert.Equal(t, "Sahih", draft.Grade)
}

/*
TestHadithAPIAdapter_PageCount verifies paging arithmetic from the total.
*/
func TestHadithAPIAdapter_PageCount(t *testing.T) {
	adapter := &HadithAPIAdapter{}

	pages, err := adapter.PageCount([]byte(hadithAPIPayload))
	require.NoError(t, err)
	assert.Equal(t, 3, pages, "120 records at 50 per page")
}

/*
TestHadithAPIAdapter_RejectsErrorStatus verifies that a non-200 envelope
fails the parse.
*/
func TestHadithAPIAdapter_RejectsErrorStatus(t *testing.T) {
	payload := `{"status": 403, "hadiths": {"total": 0, "data": []}}`

	_, _, err := (&HadithAPIAdapter{}).Parse("muslim", []byte(payload))
	require.Error(t, err)
}
