package agent

import (
	"encoding/json"
	"time"

	"github.com/relaymon/agent/internal/redact"
	"github.com/relaymon/agent/internal/transport"
	"github.com/relaymon/agent/pkg/log"
)

const (
	keepalivePipe   = "keepalives"
	keepaliveCadence = 20 * time.Second
)

// buildKeepalivePayload builds the keepalive payload (§3): the client
// settings section merged with version and timestamp, redacted per the
// client's sensitive-key list (§4.2).
func (a *Agent) buildKeepalivePayload() []byte {
	client := a.settings.AsMap()["client"]
	clientMap, _ := client.(map[string]interface{})
	if clientMap == nil {
		clientMap = map[string]interface{}{}
	}

	payload := map[string]interface{}{}
	for k, v := range clientMap {
		payload[k] = v
	}
	payload["version"] = a.version
	payload["timestamp"] = a.clock.Now().Unix()

	redacted := redact.Mask(payload, a.client.Redact)
	body, err := json.Marshal(redacted)
	if err != nil {
		log.Errorf("keepalive: failed to marshal payload: %v", err)
		return nil
	}
	return body
}

// publishKeepalive builds and publishes one keepalive beacon. Publish
// errors are logged but not retried (§4.2).
func (a *Agent) publishKeepalive() {
	body := a.buildKeepalivePayload()
	if body == nil {
		return
	}
	a.transport.Publish(keepalivePipe, transport.Direct, body, func(err error) {
		if err != nil {
			log.Errorf("keepalive: publish failed: %v (payload=%s)", err, body)
		}
	})
}

// scheduleKeepalives publishes once immediately then installs the fixed
// 20s cadence (§3 invariant 4, §4.2). The cadence is not configurable.
func (a *Agent) scheduleKeepalives() {
	a.publishKeepalive()
	a.timers.runEvery(a.clock, "keepalive", keepaliveCadence, a.publishKeepalive)
}
