package agent

import (
	"github.com/relaymon/agent/pkg/log"
)

// dispatch implements the request dispatcher (§4.5): merge local
// definitions over the request, then route to the command executor, a
// safe-mode rejection, the extension runner, or a dropped-with-warning log.
func (a *Agent) dispatch(req CheckRequest) {
	local, hasLocal := a.settings.Check(req.Name)
	merged := mergeLocal(req, local)

	if merged.HasCommand() {
		if a.client.SafeMode && !hasLocal {
			a.rejectSafeMode(merged)
			return
		}
		a.executeCommand(merged)
		return
	}

	extName := merged.Extension
	if extName == "" {
		extName = merged.Name
	}
	runner, ok := a.extensions.Lookup(extName)
	if !ok {
		// §9 open question: preserved asymmetry — unknown extensions are
		// dropped silently (logged only), never published as a synthetic
		// result, unlike safe-mode and unmatched-token rejections.
		log.Warnf("dispatcher: no extension registered for %q (check %q); dropping", extName, merged.Name)
		return
	}
	a.runExtension(merged, extName, runner)
}

// rejectSafeMode synthesizes the safe-mode rejection result (§4.5 step 2,
// §7).
func (a *Agent) rejectSafeMode(req CheckRequest) {
	req.Output = "Check is not locally defined (safe mode)"
	req.Status = 3
	req.Handle = boolPtr(false)
	req.Executed = a.clock.Now().Unix()
	a.publishResult(req)
}
