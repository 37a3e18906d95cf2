package audit

import (
	"sync"

	"github.com/rs/zerolog/log"
)

type Event struct {
	UserID   *uint
	Action   string
	Entity   string
	EntityID *uint
	Metadata any
}

// Dispatcher writes audit events off the request path. A full queue drops
// the event; auditing must never fail an API call.
type Dispatcher struct {
	logger *Logger
	queue  chan Event
	done   chan struct{}
	once   sync.Once
}

func NewDispatcher(logger *Logger) *Dispatcher {
	d := &Dispatcher{
		logger: logger,
		queue:  make(chan Event, 100),
		done:   make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for ev := range d.queue {
		if err := d.logger.Log(
			ev.UserID,
			ev.Action,
			ev.Entity,
			ev.EntityID,
			ev.Metadata,
		); err != nil {
			log.Error().Err(err).Str("action", ev.Action).Msg("audit write failed")
		}
	}
}

// Dispatch is safe on a nil Dispatcher so callers can run without auditing.
func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}
	select {
	case d.queue <- ev:
	default:
		log.Warn().Str("action", ev.Action).Msg("audit queue full, dropping event")
	}
}

// Close drains pending events and stops the worker.
func (d *Dispatcher) Close() {
	if d == nil {
		return
	}
	d.once.Do(func() {
		close(d.queue)
		<-d.done
	})
}
