package notify

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/field-service-api/internal/metrics"
)

const sendTimeout = 10 * time.Second

// Sender performs one delivery attempt. There are no retries.
type Sender interface {
	Send(ctx context.Context, msg Message) error
	Name() string
}

// AsyncDispatcher hands messages to a single worker. A full queue drops the
// message, and send failures are only logged.
type AsyncDispatcher struct {
	sender Sender
	queue  chan Message
	done   chan struct{}
	once   sync.Once
}

func NewAsyncDispatcher(sender Sender, size int) *AsyncDispatcher {
	if size <= 0 {
		size = 100
	}
	d := &AsyncDispatcher{
		sender: sender,
		queue:  make(chan Message, size),
		done:   make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *AsyncDispatcher) worker() {
	defer close(d.done)
	for msg := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		err := d.sender.Send(ctx, msg)
		cancel()

		if err != nil {
			metrics.SMSSent.WithLabelValues(string(msg.Kind), "failed").Inc()
			log.Error().Err(err).
				Str("kind", string(msg.Kind)).
				Str("sender", d.sender.Name()).
				Msg("sms delivery failed")
			continue
		}
		metrics.SMSSent.WithLabelValues(string(msg.Kind), "sent").Inc()
	}
}

func (d *AsyncDispatcher) Dispatch(msgs ...Message) {
	for _, msg := range msgs {
		if msg.To == "" {
			log.Debug().Str("kind", string(msg.Kind)).Msg("sms skipped, no recipient")
			continue
		}
		select {
		case d.queue <- msg:
		default:
			metrics.SMSDropped.Inc()
			log.Warn().Str("kind", string(msg.Kind)).Msg("sms queue full, dropping message")
		}
	}
}

// Close drains pending messages and stops the worker.
func (d *AsyncDispatcher) Close() {
	d.once.Do(func() {
		close(d.queue)
		<-d.done
	})
}
