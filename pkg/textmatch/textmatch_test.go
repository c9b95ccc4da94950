package textmatch_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/anbar/anbar-api/pkg/textmatch"
)

func TestEqual(t *testing.T) {
	assert.True(t, textmatch.Equal("ABC-01", "abc-01"))
	assert.True(t, textmatch.Equal("QARA ÇAY", "qara çay"))
	assert.False(t, textmatch.Equal("abc", "abd"))
}

func TestContains(t *testing.T) {
	assert.True(t, textmatch.Contains("Qara Çay", "çay"))
	assert.True(t, textmatch.Contains("anything", ""))
	assert.False(t, textmatch.Contains("", "x"))
}

func TestHasPrefix(t *testing.T) {
	assert.True(t, textmatch.HasPrefix("Bosch GSR", "bos"))
	assert.False(t, textmatch.HasPrefix("Bosch GSR", "gsr"))
}
