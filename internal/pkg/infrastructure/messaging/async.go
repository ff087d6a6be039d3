package messaging

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"
)

var (
	ErrQueueFull = errors.New("publish queue is full")
	ErrClosed    = errors.New("publisher is closed")
)

type queuedMessage struct {
	ctx     context.Context
	message TopicMessage
}

// AsyncPublisher hands messages to a single background worker so that callers
// never wait on brokers or subscribers. Messages are delivered in the order
// they were queued.
type AsyncPublisher struct {
	next  Publisher
	queue chan queuedMessage
	done  chan struct{}
	log   zerolog.Logger

	mu     sync.RWMutex
	closed bool
}

func NewAsync(next Publisher, size int, log zerolog.Logger) *AsyncPublisher {
	if size <= 0 {
		size = 1
	}

	a := &AsyncPublisher{
		next:  next,
		queue: make(chan queuedMessage, size),
		done:  make(chan struct{}),
		log:   log,
	}

	go a.run()

	return a
}

// PublishOnTopic queues the message. It fails with ErrQueueFull instead of
// blocking when the worker has fallen behind.
func (a *AsyncPublisher) PublishOnTopic(ctx context.Context, message TopicMessage) error {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.closed {
		return ErrClosed
	}

	select {
	case a.queue <- queuedMessage{ctx: context.WithoutCancel(ctx), message: message}:
		return nil
	default:
		return ErrQueueFull
	}
}

// Close stops accepting messages and waits until the queued ones are sent.
func (a *AsyncPublisher) Close() {
	a.mu.Lock()
	if !a.closed {
		a.closed = true
		close(a.queue)
	}
	a.mu.Unlock()

	<-a.done
}

func (a *AsyncPublisher) run() {
	defer close(a.done)

	for q := range a.queue {
		if err := a.next.PublishOnTopic(q.ctx, q.message); err != nil {
			a.log.Error().Err(err).Str("topic", q.message.TopicName()).Msg("failed to publish message")
		}
	}
}
