package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/relaymon/agent/internal/transport"
)

func TestResolveBindingDirect(t *testing.T) {
	b := resolveBinding("direct:web", "host1", "1.0.0", 1700000000)
	assert.Equal(t, transport.Direct, b.pattern)
	assert.Equal(t, "direct:web", b.pipe)
	assert.Equal(t, "direct:web", b.funnel)
}

func TestResolveBindingRoundRobin(t *testing.T) {
	b := resolveBinding("roundrobin:workers", "host1", "1.0.0", 1700000000)
	assert.Equal(t, transport.Direct, b.pattern)
	assert.Equal(t, "roundrobin:workers", b.pipe)
	assert.Equal(t, "roundrobin:workers", b.funnel)
}

func TestResolveBindingFanout(t *testing.T) {
	b := resolveBinding("web", "host1", "1.0.0", 1700000000)
	assert.Equal(t, transport.Fanout, b.pattern)
	assert.Equal(t, "web", b.pipe)
	assert.Equal(t, "host1-1.0.0-1700000000", b.funnel)
}
