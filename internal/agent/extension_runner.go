package agent

import (
	"context"

	"github.com/relaymon/agent/internal/extension"
)

// runExtension is the extension runner (§4.7). Errors raised by the
// extension are the extension's own responsibility: the core does not wrap
// or recover them.
func (a *Agent) runExtension(req CheckRequest, extName string, runner extension.Runner) {
	req.Executed = a.clock.Now().Unix()
	runner.SafeRun(context.Background(), req.asMap(), func(output string, status int) {
		req.Output = output
		req.Status = status
		a.publishResult(req)
	})
}
