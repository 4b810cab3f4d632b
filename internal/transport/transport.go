// Package transport defines the Transport adapter contract the agent core
// depends on (§2 of the agent spec: "external"). The wire implementation of
// the message transport is explicitly out of the core's scope; this package
// only carries the interface. See internal/transport/amqp for a concrete
// implementation.
package transport

// Pattern is a pub/sub delivery pattern.
type Pattern string

const (
	Direct     Pattern = "direct"
	Fanout     Pattern = "fanout"
	RoundRobin Pattern = "roundrobin"
)

// PublishComplete reports the outcome of a single publish attempt. err is
// nil on success. The core never retries a failed publish (§1 Non-goals).
type PublishComplete func(err error)

// Handler decodes and reacts to one delivered message. raw is the
// transport-level payload before JSON decoding; decode failures are the
// caller's responsibility to log and drop (§4.3).
type Handler func(raw []byte)

// Subscription is returned by Subscribe and can be torn down independently.
type Subscription interface {
	Unsubscribe()
}

// Transport is the external message-bus collaborator.
type Transport interface {
	// Publish sends payload to pipe using pattern, invoking done with the
	// outcome. Publishing never blocks the caller past the point of
	// handing the message to the transport's own send path.
	Publish(pipe string, pattern Pattern, payload []byte, done PublishComplete)

	// Subscribe binds funnel to pipe with pattern and delivers every
	// message to handler until the returned Subscription is torn down.
	Subscribe(pipe, funnel string, pattern Pattern, handler Handler) (Subscription, error)

	// Connected reports whether the transport currently has a live
	// connection to the broker.
	Connected() bool

	// Close releases the transport's connection. Safe to call once.
	Close() error
}
