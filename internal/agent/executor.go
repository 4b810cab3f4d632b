package agent

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/relaymon/agent/internal/templater"
	"github.com/relaymon/agent/pkg/log"
)

// executeCommand is the command executor (§4.6).
func (a *Agent) executeCommand(req CheckRequest) {
	if !a.inProgress.tryInsert(req.Name) {
		log.Warnf("executor: %q already in progress; dropping duplicate request", req.Name)
		return
	}

	clientTree, _ := a.settings.AsMap()["client"].(map[string]interface{})
	substituted, unmatched := templater.Substitute(req.Command, clientTree)
	if len(unmatched) > 0 {
		req.Output = "Unmatched command tokens: " + strings.Join(unmatched, ", ")
		req.Status = 3
		req.Handle = boolPtr(false)
		a.publishResult(req)
		a.inProgress.remove(req.Name)
		return
	}

	req.Executed = a.clock.Now().Unix()
	start := a.clock.Now()

	timeout := time.Duration(req.Timeout * float64(time.Second))
	a.subprocess.Run(context.Background(), substituted, timeout, func(output string, status int) {
		req.Duration = roundToMillis(a.clock.Now().Sub(start))
		req.Output = output
		req.Status = status
		a.publishResult(req)
		a.inProgress.remove(req.Name)
	})
}

// roundToMillis rounds a duration to the nearest millisecond and returns it
// as seconds with 3-decimal precision (§4.6 step 3).
func roundToMillis(d time.Duration) float64 {
	ms := d.Round(time.Millisecond).Milliseconds()
	s, err := strconv.ParseFloat(fmt.Sprintf("%.3f", float64(ms)/1000.0), 64)
	if err != nil {
		return float64(ms) / 1000.0
	}
	return s
}
