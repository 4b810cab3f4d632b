package extension

import "context"

// Ping is a bundled example extension: it always reports ok. Useful for
// exercising the extension-runner path in tests and as a template for real
// extensions registered by the process embedding this core.
type Ping struct{}

func (Ping) SafeRun(_ context.Context, _ map[string]interface{}, done Complete) {
	done("pong", 0)
}
