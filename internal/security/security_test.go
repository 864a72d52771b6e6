package security

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestValidateURL(t *testing.T) {
	t.Run("accepts http and https", func(t *testing.T) {
		assert.NoError(t, ValidateURL("https://example.com/path", true))
		assert.NoError(t, ValidateURL("http://example.com", true))
	})

	t.Run("rejects other schemes", func(t *testing.T) {
		assert.Error(t, ValidateURL("ftp://x", false))
		assert.Error(t, ValidateURL("javascript:alert(1)", false))
		assert.Error(t, ValidateURL("not a url", false))
	})

	t.Run("production blocks internal hosts", func(t *testing.T) {
		blocked := []string{
			"http://localhost/x",
			"http://127.0.0.1/admin",
			"http://[::1]/",
			"http://10.0.0.5/",
			"http://172.16.1.1/",
			"http://192.168.1.1/router",
			"http://169.254.0.10/",
			"http://169.254.169.254/latest/meta-data/",
			"http://169.200.1.1/", // the whole 169/8 literal range, not just link-local
		}
		for _, url := range blocked {
			assert.Error(t, ValidateURL(url, true), "expected %s to be blocked in production", url)
		}
	})

	t.Run("development allows internal hosts", func(t *testing.T) {
		assert.NoError(t, ValidateURL("http://localhost:3000/x", false))
		assert.NoError(t, ValidateURL("http://192.168.1.1/", false))
	})
}

func TestValidateAlias(t *testing.T) {
	assert.NoError(t, ValidateAlias("my-link_01"))
	assert.NoError(t, ValidateAlias("a"))

	assert.Error(t, ValidateAlias(""))
	assert.Error(t, ValidateAlias("has space"))
	assert.Error(t, ValidateAlias("emoji✨"))
	assert.Error(t, ValidateAlias("this-alias-is-way-too-long-to-be-accepted-by-the-validator-because-it-exceeds-fifty"))

	// Reserved words collide regardless of case.
	assert.Error(t, ValidateAlias("api"))
	assert.Error(t, ValidateAlias("Admin"))
	assert.Error(t, ValidateAlias("dashboard"))
}

func TestSanitizeName(t *testing.T) {
	cleaned, err := SanitizeName("  My <b>Link</b> ")
	assert.NoError(t, err)
	assert.Equal(t, "My Link", cleaned)

	_, err = SanitizeName("<script></script>")
	assert.Error(t, err, "a name that is only markup sanitizes to empty")

	_, err = SanitizeName("")
	assert.Error(t, err)

	// Length is counted in characters, not bytes.
	cleaned, err = SanitizeName(strings.Repeat("ü", 100))
	assert.NoError(t, err)
	assert.Equal(t, 100, utf8.RuneCountInString(cleaned))

	_, err = SanitizeName(strings.Repeat("ü", 101))
	assert.Error(t, err)
}

func TestHashIP(t *testing.T) {
	hashed := HashIP("203.0.113.7")
	assert.Len(t, hashed, 64)
	assert.NotContains(t, hashed, "203.0.113.7")
	assert.Equal(t, hashed, HashIP("203.0.113.7"), "hash must be stable")
	assert.NotEqual(t, hashed, HashIP("203.0.113.8"))
	assert.Empty(t, HashIP(""))
}
