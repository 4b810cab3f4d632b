package templater

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func tree() map[string]interface{} {
	return map[string]interface{}{
		"name": "h1",
		"db":   map[string]interface{}{"name": "prod"},
	}
}

func TestSubstituteNoTokensRoundTrips(t *testing.T) {
	out, unmatched := Substitute("echo hello", tree())
	assert.Equal(t, "echo hello", out)
	assert.Empty(t, unmatched)
}

func TestSubstituteResolvesNestedPath(t *testing.T) {
	out, unmatched := Substitute(":::db.name|dev::: ping", tree())
	assert.Equal(t, "prod ping", out)
	assert.Empty(t, unmatched)
}

func TestSubstituteUsesDefaultWhenMissing(t *testing.T) {
	out, unmatched := Substitute(":::a.b|fallback:::", tree())
	assert.Equal(t, "fallback", out)
	assert.Empty(t, unmatched)
}

func TestSubstituteReportsUnmatchedWithoutDefault(t *testing.T) {
	out, unmatched := Substitute(":::missing:::", tree())
	assert.Equal(t, ":::missing:::", out)
	assert.Equal(t, []string{"missing"}, unmatched)
}

func TestSubstituteReportsMultipleUnmatchedInOrder(t *testing.T) {
	_, unmatched := Substitute(":::a::: :::b::: :::a:::", tree())
	assert.Equal(t, []string{"a", "b"}, unmatched)
}
