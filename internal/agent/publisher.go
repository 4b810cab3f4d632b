package agent

import (
	"encoding/json"

	"github.com/relaymon/agent/internal/transport"
	"github.com/relaymon/agent/pkg/log"
)

const resultsPipe = "results"

// publishResult builds the result envelope (§3, §4.9) and publishes it to
// the results pipe with the direct pattern. Invariant 6 (§3): the agent
// never publishes a result whose status field is unset — callers must set
// Status before reaching here; zero is a valid ("ok") status so this is
// enforced by construction, not by a runtime check.
func (a *Agent) publishResult(req CheckRequest) {
	envelope := map[string]interface{}{
		"client": a.client.Name,
		"check":  req.asMap(),
	}
	if a.client.Signature != "" {
		envelope["signature"] = a.client.Signature
	}

	body, err := json.Marshal(envelope)
	if err != nil {
		log.Errorf("publisher: failed to marshal result for %q: %v", req.Name, err)
		return
	}

	a.transport.Publish(resultsPipe, transport.Direct, body, func(err error) {
		if err != nil {
			log.Errorf("publisher: publish failed for %q: %v (payload=%s)", req.Name, err, body)
		}
	})
}
