package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemStoreDottedLookup(t *testing.T) {
	s := NewMemStore(map[string]interface{}{
		"client": map[string]interface{}{
			"name": "h1",
			"socket": map[string]interface{}{
				"port": 4040,
			},
		},
	})

	assert.Equal(t, "h1", s.GetString("client.name", ""))
	assert.Equal(t, 4040, s.Get("client.socket.port"))
	assert.Equal(t, "fallback", s.GetString("client.missing", "fallback"))
}

func TestMemStoreChecks(t *testing.T) {
	s := NewMemStore(map[string]interface{}{
		"checks": map[string]interface{}{
			"disk": map[string]interface{}{"command": "df -h", "standalone": true},
		},
	})

	assert.True(t, s.HasCheck("disk"))
	def, ok := s.Check("disk")
	assert.True(t, ok)
	assert.Equal(t, "df -h", def["command"])

	assert.False(t, s.HasCheck("missing"))
	all := s.Checks()
	assert.Len(t, all, 1)
}
