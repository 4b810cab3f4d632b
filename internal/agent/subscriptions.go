package agent

import (
	"strconv"
	"strings"

	"github.com/relaymon/agent/internal/transport"
	"github.com/relaymon/agent/pkg/log"
)

// binding is the resolved transport binding for one subscription string
// (§4.3).
type binding struct {
	pattern transport.Pattern
	pipe    string
	funnel  string
}

// resolveBinding applies the subscription-prefix rule (§4.3 table).
func resolveBinding(subscription, clientName, version string, startEpoch int64) binding {
	switch {
	case strings.HasPrefix(subscription, "direct:"):
		return binding{pattern: transport.Direct, pipe: subscription, funnel: subscription}
	case strings.HasPrefix(subscription, "roundrobin:"):
		return binding{pattern: transport.Direct, pipe: subscription, funnel: subscription}
	default:
		funnel := clientName + "-" + version + "-" + strconv.FormatInt(startEpoch, 10)
		return binding{pattern: transport.Fanout, pipe: subscription, funnel: funnel}
	}
}

// establishSubscriptions binds the transport to every subscription declared
// in client settings and routes delivered messages to the dispatcher
// (§4.3).
func (a *Agent) establishSubscriptions() {
	for _, sub := range a.client.Subscriptions {
		b := resolveBinding(sub, a.client.Name, a.version, a.startEpoch)
		handler := func(raw []byte) {
			req, err := decodeCheckRequest(raw)
			if err != nil {
				log.Errorf("subscription %q: failed to decode message: %v (raw=%s)", sub, err, raw)
				return
			}
			a.dispatch(req)
		}
		subscription, err := a.transport.Subscribe(b.pipe, b.funnel, b.pattern, handler)
		if err != nil {
			log.Errorf("subscription %q: subscribe failed: %v", sub, err)
			continue
		}
		a.subscriptions = append(a.subscriptions, subscription)
	}
}

// teardownSubscriptions unsubscribes from every active subscription (§4.1
// pause).
func (a *Agent) teardownSubscriptions() {
	for _, s := range a.subscriptions {
		s.Unsubscribe()
	}
	a.subscriptions = nil
}
