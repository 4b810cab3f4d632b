package agent

import (
	"sort"
	"time"

	"github.com/samber/lo"

	"github.com/relaymon/agent/internal/settings"
)

// standaloneCandidates selects local checks with standalone==true AND a
// positive integer interval, command or extension alike (§4.4).
func standaloneCandidates(store settings.Store) []CheckRequest {
	all := store.Checks()
	names := lo.Keys(all)
	sort.Strings(names) // deterministic scheduling order for tests

	var out []CheckRequest
	for _, name := range names {
		def := all[name]
		req := requestFromMap(def)
		if req.Name == "" {
			req.Name = name
		}
		if !req.Standalone {
			continue
		}
		if req.Interval <= 0 {
			// no positive integer interval, command or extension: excluded,
			// else scheduleStandalone would hand a zero period to a ticker.
			continue
		}
		out = append(out, req)
	}
	return out
}

// scheduleStandalone installs the splay-delayed first firing and the
// steady periodic timer for every standalone candidate (§4.4).
func (a *Agent) scheduleStandalone() {
	for _, req := range standaloneCandidates(a.settings) {
		req := req

		var splay float64
		var period time.Duration
		if a.testMode {
			splay = 0
			period = 500 * time.Millisecond
		} else {
			splay = splaySeconds(a.client.Name, req.Name, a.clock.Now().UnixMilli(), req.Interval)
			period = time.Duration(req.Interval) * time.Second
		}

		fire := func() {
			issued := req.Clone()
			issued.Issued = a.clock.Now().Unix()
			a.dispatch(issued)
		}

		timerName := "standalone:" + req.Name
		splayDuration := time.Duration(splay * float64(time.Second))
		a.timers.runAfter(a.clock, timerName+":splay", splayDuration, func() {
			fire()
			a.timers.runEvery(a.clock, timerName, period, fire)
		})
	}
}
