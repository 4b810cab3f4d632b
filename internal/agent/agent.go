// Package agent is the core of the monitoring agent: lifecycle controller,
// keepalive engine, subscription dispatcher, standalone scheduler, command
// executor, extension runner, command templater, and result publisher.
// Everything it depends on — the transport, the settings store, the
// extension registry, and the subprocess runner — is an external
// collaborator passed in at construction time.
package agent

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/hashicorp/go-multierror"

	"github.com/relaymon/agent/internal/execrunner"
	"github.com/relaymon/agent/internal/extension"
	"github.com/relaymon/agent/internal/settings"
	"github.com/relaymon/agent/internal/socketserver"
	"github.com/relaymon/agent/internal/transport"
	"github.com/relaymon/agent/pkg/log"
)

// Options configures a new Agent. Transport, Settings, Extensions, and
// Subprocess are external collaborators (§2); everything else tunes the
// core's own behavior.
type Options struct {
	Transport  transport.Transport
	Settings   settings.Store
	Extensions extension.Registry
	Subprocess execrunner.Runner

	Version string // build-time constant, §6
	Clock   clock.Clock // defaults to the real clock if nil

	// TestMode overrides splay to 0 and standalone interval to 0.5s (§4.4).
	TestMode bool
}

// Agent owns the lifecycle, keepalive timer, subscription dispatcher,
// standalone scheduler, in-progress tracking, and signal handling (§4.1).
type Agent struct {
	client     ClientIdentity
	settings   settings.Store
	transport  transport.Transport
	extensions extension.Registry
	subprocess execrunner.Runner
	clock      clock.Clock

	version    string
	startEpoch int64
	testMode   bool

	state         stateBox
	timers        *timerLedger
	inProgress    *inProgressSet
	subscriptions []transport.Subscription
	sockets       []func() error

	signals chan os.Signal
	done    chan struct{}
}

// New constructs an Agent in the Initialized state. It does not connect to
// anything; call Start for that.
func New(opts Options) *Agent {
	clk := opts.Clock
	if clk == nil {
		clk = clock.New()
	}

	a := &Agent{
		client:     loadClientIdentity(opts.Settings),
		settings:   opts.Settings,
		transport:  opts.Transport,
		extensions: opts.Extensions,
		subprocess: opts.Subprocess,
		clock:      clk,
		version:    opts.Version,
		startEpoch: clk.Now().Unix(),
		testMode:   opts.TestMode,
		timers:     newTimerLedger(),
		inProgress: newInProgressSet(),
		done:       make(chan struct{}),
	}
	a.state.set(Initialized)
	return a
}

// State returns the agent's current lifecycle state.
func (a *Agent) State() State { return a.state.get() }

// Done is closed once Stop has fully drained and closed every resource
// (§4.11: stopping -> stopped). A process embedding the core should exit
// after this closes.
func (a *Agent) Done() <-chan struct{} { return a.done }

// Start requires a transport that is already connected and returns an
// error otherwise; it does not open the connection itself. It then binds
// the result sockets and bootstraps the agent into Running (§4.1, §4.11).
// Socket bind failures are fatal.
func (a *Agent) Start() error {
	if !a.transport.Connected() {
		return fmt.Errorf("agent: transport is not connected")
	}

	addr := fmt.Sprintf("%s:%d", a.client.SocketBind, a.client.SocketPort)
	server, err := socketserver.Listen(addr, a.handleExternalResult)
	if err != nil {
		return fmt.Errorf("agent: socket bind failed: %w", err)
	}
	a.sockets = append(a.sockets, server.TCPCloser(), server.UDPCloser())

	a.trapSignals()
	a.bootstrap()
	return nil
}

// bootstrap schedules keepalives, establishes subscriptions, schedules
// standalone checks, and sets state Running (§4.1). Safe to call again
// from resume.
func (a *Agent) bootstrap() {
	a.scheduleKeepalives()
	a.establishSubscriptions()
	a.scheduleStandalone()
	a.state.set(Running)
}

// Pause cancels every scheduled timer and unsubscribes from the transport,
// idempotently (§4.1, §4.11).
func (a *Agent) Pause() {
	switch a.state.get() {
	case Pausing, Paused:
		return
	}
	a.state.set(Pausing)
	a.timers.clear()
	a.teardownSubscriptions()
	a.state.set(Paused)
}

// Resume polls every second until the agent is Paused and the transport
// reports connected, then bootstraps again (§4.1).
func (a *Agent) Resume() {
	ticker := a.clock.Ticker(1 * time.Second)
	go func() {
		defer ticker.Stop()
		for range ticker.C {
			if a.state.get() == Paused && a.transport.Connected() {
				a.bootstrap()
				return
			}
		}
	}()
}

// Stop logs a warning, pauses, waits for the in-progress set to drain,
// closes the sockets and transport, and closes Done (§4.1, §4.11). It does
// not exit the process itself.
func (a *Agent) Stop() error {
	if a.state.get() == Stopping || a.state.get() == Stopped {
		return nil
	}

	log.Warnf("agent: stop requested")
	a.Pause()
	a.state.set(Stopping)

	a.inProgress.waitEmpty()

	var result *multierror.Error
	for _, closeFn := range a.sockets {
		if err := closeFn(); err != nil {
			result = multierror.Append(result, err)
		}
	}
	a.sockets = nil
	if err := a.transport.Close(); err != nil {
		result = multierror.Append(result, err)
	}

	a.state.set(Stopped)
	close(a.done)
	return result.ErrorOrNil()
}

// trapSignals invokes Stop on SIGINT/SIGTERM (§4.1).
func (a *Agent) trapSignals() {
	a.signals = make(chan os.Signal, 1)
	signal.Notify(a.signals, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig, ok := <-a.signals
		if !ok {
			return
		}
		log.Warnf("agent: received signal %v", sig)
		_ = a.Stop()
	}()
}

// handleExternalResult parses a socket-submitted payload and publishes it
// through the result publisher, keeping its output, status, and other
// fields (§4.10). Malformed payloads are logged and dropped.
func (a *Agent) handleExternalResult(payload []byte) {
	req, err := decodeCheckRequest(payload)
	if err != nil {
		log.Errorf("socket: failed to decode result payload: %v (raw=%s)", err, payload)
		return
	}
	a.publishResult(req)
}
