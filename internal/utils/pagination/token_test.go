package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeIDToken(t *testing.T) {
	token := EncodeIDToken("sale", 1234)
	assert.NotEmpty(t, token, "Token should not be empty")

	id, err := DecodeIDToken("sale", token)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.Equal(t, int64(1234), id, "ID should match after decode")

	zero, err := DecodeIDToken("sale", EncodeIDToken("sale", 0))
	assert.NoError(t, err)
	assert.Equal(t, int64(0), zero)
}

func TestDecodeIDTokenError(t *testing.T) {
	// Test invalid base64
	_, err := DecodeIDToken("sale", "this is not base64!")
	assert.Error(t, err, "Should return an error for invalid base64")
	assert.Contains(t, err.Error(), "base64 decode", "Error should mention base64 decoding")

	// Test token minted for another listing
	_, err = DecodeIDToken("sale", EncodeIDToken("register", 5))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "scope")

	// Test missing separator
	_, err = DecodeIDToken("sale", EncodeMultiFieldToken("sale"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "split")

	// Test non-numeric id
	_, err = DecodeIDToken("sale", EncodeMultiFieldToken("sale", "abc"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "id parse")
}

func TestMultiFieldToken(t *testing.T) {
	token := EncodeMultiFieldToken("a", "b", "c")

	fields, err := DecodeMultiFieldToken(token)
	assert.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, fields)
}
