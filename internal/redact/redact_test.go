package redact

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskReplacesSensitiveKeysOnly(t *testing.T) {
	in := map[string]interface{}{
		"name":     "host1",
		"password": "hunter2",
		"nested":   map[string]interface{}{"password": "untouched"},
	}
	out := Mask(in, []string{"password"})

	assert.Equal(t, "host1", out["name"])
	assert.Equal(t, maskValue, out["password"])
	assert.Equal(t, in["nested"], out["nested"], "nested maps are not descended into")
}

func TestMaskIsIdempotent(t *testing.T) {
	in := map[string]interface{}{"token": "s3cr3t"}
	once := Mask(in, []string{"token"})
	twice := Mask(once, []string{"token"})
	assert.Equal(t, once, twice)
}

func TestMaskMissingKeyIsNoop(t *testing.T) {
	in := map[string]interface{}{"name": "host1"}
	out := Mask(in, []string{"does-not-exist"})
	assert.Equal(t, in, out)
}

func TestMaskNilInput(t *testing.T) {
	assert.Nil(t, Mask(nil, []string{"x"}))
}

func TestMaskDoesNotMutateInput(t *testing.T) {
	in := map[string]interface{}{"password": "hunter2"}
	_ = Mask(in, []string{"password"})
	assert.Equal(t, "hunter2", in["password"])
}
