// Copyright (c) 2026 SunnahTH. All rights reserved.
// Author: admin@sunnahthai.com

package kitab_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sunnahth/hadith-api/internal/core/kitab"
)

/*
TestComposeID verifies the chapter identifier format.
*/
func TestComposeID(t *testing.T) {
	assert.Equal(t, "bukhari_kitab_1", kitab.ComposeID("bukhari", 1))
	assert.Equal(t, "muslim_kitab_42", kitab.ComposeID("muslim", 42))
}

/*
TestDisambiguateID verifies that collision suffixes keep the base ID as a
prefix and never produce the same ID twice.
*/
func TestDisambiguateID(t *testing.T) {
	base := kitab.ComposeID("bukhari", 3)

	first := kitab.DisambiguateID(base)
	second := kitab.DisambiguateID(base)

	assert.True(t, strings.HasPrefix(first, base+"_"))
	assert.True(t, strings.HasPrefix(second, base+"_"))
	assert.NotEqual(t, first, second)
}
