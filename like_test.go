package scalarval

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLikeLiteralMatch(t *testing.T) {
	assert.True(t, Like([]byte("abc"), []byte("abc")))
	assert.False(t, Like([]byte("abc"), []byte("abd")))
}

func TestLikePercentWildcard(t *testing.T) {
	assert.True(t, Like([]byte("abcde"), []byte("a%e")))
	assert.True(t, Like([]byte("abcde"), []byte("%")))
	assert.True(t, Like([]byte("abcde"), []byte("a%c_e")))
	assert.False(t, Like([]byte("abcde"), []byte("a%z")))
}

func TestLikeUnderscoreWildcard(t *testing.T) {
	assert.True(t, Like([]byte("abc"), []byte("a_c")))
	assert.False(t, Like([]byte("ac"), []byte("a_c")))
}

func TestLikeEmptyPatternMatchesEmptyValue(t *testing.T) {
	assert.True(t, Like([]byte(""), []byte("")))
	assert.False(t, Like([]byte("x"), []byte("")))
}

func TestLikeTrailingPercentMatchesAnySuffix(t *testing.T) {
	assert.True(t, Like([]byte("hello world"), []byte("hello%")))
}

func TestLikeMultiByteCodePoints(t *testing.T) {
	assert.True(t, Like([]byte("héllo"), []byte("h_llo")))
	assert.True(t, Like([]byte("héllo"), []byte("h%o")))
}

func TestLikeNoEscapeCharacter(t *testing.T) {
	assert.True(t, Like([]byte("abcXdef"), []byte("a%c_def")))
	assert.False(t, Like([]byte("abc"), []byte("ab")))
	// No escape support: '\' is a literal code point, '%' is still a
	// wildcard even immediately after it.
	assert.False(t, Like([]byte("a%b"), []byte(`a\%b`)))
}

func TestCodePointCountMultiByte(t *testing.T) {
	assert.Equal(t, 5, CodePointCount([]byte("héllo")))
	assert.Equal(t, 0, CodePointCount([]byte("")))
	assert.Equal(t, 3, CodePointCount([]byte("abc")))
}
