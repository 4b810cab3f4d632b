// Package amqp is a concrete transport.Transport backed by
// rabbitmq/amqp091-go, the maintained successor to the archived
// streadway/amqp driver. It maps the three delivery patterns onto AMQP
// exchange kinds: direct and roundrobin both publish to a "direct" exchange
// (roundrobin distribution falls out for free when multiple agents share
// one queue name as competing consumers); fanout publishes to a "fanout"
// exchange so every subscriber's own funnel queue gets an independent copy.
package amqp

import (
	"context"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/cenkalti/backoff/v4"

	"github.com/relaymon/agent/internal/transport"
	"github.com/relaymon/agent/pkg/log"
)

// Transport connects to a single AMQP broker and satisfies transport.Transport.
type Transport struct {
	url string

	mu      sync.RWMutex
	conn    *amqp.Connection
	channel *amqp.Channel

	redialCancel context.CancelFunc
}

// Dial connects to url (an amqp:// URI) and starts a background redial loop
// that keeps the connection alive across broker outages.
func Dial(url string) (*Transport, error) {
	t := &Transport{url: url}
	if err := t.connect(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.redialCancel = cancel
	go t.watchAndRedial(ctx)

	return t, nil
}

func (t *Transport) connect() error {
	conn, err := amqp.Dial(t.url)
	if err != nil {
		return err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return err
	}

	t.mu.Lock()
	t.conn = conn
	t.channel = ch
	t.mu.Unlock()
	return nil
}

func (t *Transport) watchAndRedial(ctx context.Context) {
	for {
		t.mu.RLock()
		conn := t.conn
		t.mu.RUnlock()
		if conn == nil {
			return
		}

		closeCh := make(chan *amqp.Error, 1)
		conn.NotifyClose(closeCh)

		select {
		case <-ctx.Done():
			return
		case err := <-closeCh:
			if err != nil {
				log.Warnf("amqp transport: connection closed: %v; redialing", err)
			}
		}

		b := backoff.NewExponentialBackOff()
		b.MaxElapsedTime = 0
		redialErr := backoff.Retry(func() error {
			if ctx.Err() != nil {
				return backoff.Permanent(ctx.Err())
			}
			return t.connect()
		}, backoff.WithContext(b, ctx))
		if redialErr != nil {
			log.Warnf("amqp transport: giving up redialing: %v", redialErr)
			return
		}
		log.Infof("amqp transport: reconnected")
	}
}

func exchangeKind(p transport.Pattern) string {
	switch p {
	case transport.Fanout:
		return "fanout"
	default: // Direct and RoundRobin both ride a direct exchange.
		return "direct"
	}
}

// Publish declares pipe as an exchange of the kind implied by pattern and
// publishes payload with a routing key equal to pipe. Failures are reported
// through done and never retried, per the agent spec.
func (t *Transport) Publish(pipe string, pattern transport.Pattern, payload []byte, done transport.PublishComplete) {
	t.mu.RLock()
	ch := t.channel
	t.mu.RUnlock()
	if ch == nil {
		done(fmt.Errorf("amqp transport: not connected"))
		return
	}

	kind := exchangeKind(pattern)
	if err := ch.ExchangeDeclare(pipe, kind, true, false, false, false, nil); err != nil {
		done(err)
		return
	}
	err := ch.PublishWithContext(context.Background(), pipe, pipe, false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        payload,
	})
	done(err)
}

type subscription struct {
	cancel context.CancelFunc
}

func (s *subscription) Unsubscribe() { s.cancel() }

// Subscribe declares pipe as an exchange of the kind implied by pattern,
// declares (or joins, for roundrobin) a queue named funnel, binds it to
// pipe, and delivers every message body to handler until torn down.
func (t *Transport) Subscribe(pipe, funnel string, pattern transport.Pattern, handler transport.Handler) (transport.Subscription, error) {
	t.mu.RLock()
	ch := t.channel
	t.mu.RUnlock()
	if ch == nil {
		return nil, fmt.Errorf("amqp transport: not connected")
	}

	kind := exchangeKind(pattern)
	if err := ch.ExchangeDeclare(pipe, kind, true, false, false, false, nil); err != nil {
		return nil, err
	}
	q, err := ch.QueueDeclare(funnel, true, kind == "fanout", false, false, nil)
	if err != nil {
		return nil, err
	}
	if err := ch.QueueBind(q.Name, pipe, pipe, false, nil); err != nil {
		return nil, err
	}
	deliveries, err := ch.Consume(q.Name, "", true, false, false, false, nil)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case d, ok := <-deliveries:
				if !ok {
					return
				}
				handler(d.Body)
			}
		}
	}()

	return &subscription{cancel: cancel}, nil
}

// Connected reports whether the underlying AMQP connection is open.
func (t *Transport) Connected() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.conn != nil && !t.conn.IsClosed()
}

// Close stops the redial loop and closes the channel and connection.
func (t *Transport) Close() error {
	if t.redialCancel != nil {
		t.redialCancel()
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.channel != nil {
		_ = t.channel.Close()
	}
	if t.conn != nil {
		return t.conn.Close()
	}
	return nil
}

var _ transport.Transport = (*Transport)(nil)
