package extension

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapRegistryLookup(t *testing.T) {
	r := NewMapRegistry()
	r.Register("ping", Ping{})

	runner, ok := r.Lookup("ping")
	assert.True(t, ok)
	assert.NotNil(t, runner)

	_, ok = r.Lookup("missing")
	assert.False(t, ok)
}

func TestPingSafeRunReportsOK(t *testing.T) {
	var output string
	var status int
	Ping{}.SafeRun(context.Background(), nil, func(o string, s int) {
		output, status = o, s
	})
	assert.Equal(t, "pong", output)
	assert.Equal(t, 0, status)
}
