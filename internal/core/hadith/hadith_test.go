// Copyright (c) 2026 SunnahTH. All rights reserved.
// Author: admin@sunnahthai.com

package hadith_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sunnahth/hadith-api/internal/core/hadith"
)

/*
TestComposeID verifies the composite record identifier format.
*/
func TestComposeID(t *testing.T) {
	assert.Equal(t, "bukhari_1", hadith.ComposeID("bukhari", "1"))
	assert.Equal(t, "muslim_1846b", hadith.ComposeID("muslim", "1846b"))
}

/*
TestNormalizeNumber tests canonicalization of raw feed numbers.
*/
func TestNormalizeNumber(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain_integer", "5770", "5770"},
		{"float_artifact", "5770.0", "5770"},
		{"real_fraction_kept", "1570.5", "1570.5"},
		{"surrounding_whitespace", " 12 ", "12"},
		{"suffixed_number", "1846b", "1846b"},
		{"non_numeric_dot_zero", "abc.0", "abc.0"},
		{"empty", "", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, hadith.NormalizeNumber(tc.raw))
		})
	}
}

/*
TestSortKey verifies numeric ordering keys, with unparseable numbers
sorting last.
*/
func TestSortKey(t *testing.T) {
	assert.Equal(t, 12.0, hadith.SortKey("12"))
	assert.Equal(t, 1570.5, hadith.SortKey("1570.5"))
	assert.True(t, math.IsInf(hadith.SortKey("1846b"), 1))
	assert.True(t, math.IsInf(hadith.SortKey(""), 1))

	assert.Less(t, hadith.SortKey("2"), hadith.SortKey("10"),
		"ordering must be numeric, not lexicographic")
}

/*
TestStatus_IsValid checks the status enum boundary.
*/
func TestStatus_IsValid(t *testing.T) {
	assert.True(t, hadith.StatusPending.IsValid())
	assert.True(t, hadith.StatusTranslated.IsValid())
	assert.False(t, hadith.Status("verified").IsValid())
	assert.False(t, hadith.Status("").IsValid())
}
