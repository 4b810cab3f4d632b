package agent

import (
	"context"
	"sync"
	"time"

	"github.com/relaymon/agent/internal/execrunner"
	"github.com/relaymon/agent/internal/transport"
)

// fakeTransport is an in-memory transport.Transport for tests: Publish
// records every payload, Subscribe is a no-op registry (tests drive the
// dispatcher directly instead of round-tripping through a handler).
type fakeTransport struct {
	mu        sync.Mutex
	connected bool
	published []publishedMessage
}

type publishedMessage struct {
	pipe    string
	pattern transport.Pattern
	payload []byte
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{connected: true}
}

func (f *fakeTransport) Publish(pipe string, pattern transport.Pattern, payload []byte, done transport.PublishComplete) {
	f.mu.Lock()
	f.published = append(f.published, publishedMessage{pipe: pipe, pattern: pattern, payload: append([]byte(nil), payload...)})
	f.mu.Unlock()
	done(nil)
}

func (f *fakeTransport) Subscribe(pipe, funnel string, pattern transport.Pattern, handler transport.Handler) (transport.Subscription, error) {
	return noopSubscription{}, nil
}

func (f *fakeTransport) Connected() bool { return f.connected }

func (f *fakeTransport) Close() error { return nil }

func (f *fakeTransport) messages(pipe string) []publishedMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []publishedMessage
	for _, m := range f.published {
		if m.pipe == pipe {
			out = append(out, m)
		}
	}
	return out
}

type noopSubscription struct{}

func (noopSubscription) Unsubscribe() {}

// fakeRunner is an execrunner.Runner that completes after a configurable
// delay, recording every command it was asked to run.
type fakeRunner struct {
	mu       sync.Mutex
	commands []string
	delay    time.Duration
	output   string
	status   int
}

func (r *fakeRunner) Run(ctx context.Context, command string, timeout time.Duration, done execrunner.Complete) {
	r.mu.Lock()
	r.commands = append(r.commands, command)
	r.mu.Unlock()
	go func() {
		if r.delay > 0 {
			time.Sleep(r.delay)
		}
		done(r.output, r.status)
	}()
}

func (r *fakeRunner) calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.commands...)
}
