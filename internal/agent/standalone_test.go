package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/relaymon/agent/internal/settings"
)

func TestStandaloneCandidatesFiltersNonStandalone(t *testing.T) {
	store := settings.NewMemStore(map[string]interface{}{
		"checks": map[string]interface{}{
			"disk": map[string]interface{}{"command": "df -h", "standalone": true, "interval": 30},
			"mem":  map[string]interface{}{"command": "free -h", "standalone": false},
		},
	})
	out := standaloneCandidates(store)
	assert.Len(t, out, 1)
	assert.Equal(t, "disk", out[0].Name)
}

func TestStandaloneCandidatesExcludesCommandWithoutInterval(t *testing.T) {
	store := settings.NewMemStore(map[string]interface{}{
		"checks": map[string]interface{}{
			"disk": map[string]interface{}{"command": "df -h", "standalone": true},
		},
	})
	out := standaloneCandidates(store)
	assert.Empty(t, out)
}

func TestStandaloneCandidatesExcludesExtensionWithoutInterval(t *testing.T) {
	store := settings.NewMemStore(map[string]interface{}{
		"checks": map[string]interface{}{
			"ping_ext": map[string]interface{}{"extension": "ping", "standalone": true},
		},
	})
	out := standaloneCandidates(store)
	assert.Empty(t, out)
}

func TestStandaloneCandidatesIncludesExtensionWithInterval(t *testing.T) {
	store := settings.NewMemStore(map[string]interface{}{
		"checks": map[string]interface{}{
			"ping_ext": map[string]interface{}{"extension": "ping", "standalone": true, "interval": 60},
		},
	})
	out := standaloneCandidates(store)
	assert.Len(t, out, 1)
}

func TestScheduleStandaloneInTestModeRegistersTimer(t *testing.T) {
	tree := baseTree(map[string]interface{}{
		"checks": map[string]interface{}{
			"disk": map[string]interface{}{"command": "echo ok", "standalone": true, "interval": 30},
		},
	})
	a, _ := newTestAgent(t, tree, &fakeRunner{})
	a.testMode = true

	a.scheduleStandalone()
	assert.GreaterOrEqual(t, a.timers.len(), 1, "at least the splay timer is registered")
}
