package remote

import (
	"context"
	"log/slog"

	"sidequest/internal/engine"
)

// Dispatcher turns committed-action events into fire-and-forget submits.
// It runs one worker goroutine; events are queued on a buffered channel and
// dropped when the queue is full. A failed submit is logged at warn and
// never surfaces to the caller; the local record was already saved.
type Dispatcher struct {
	client *Client
	log    *slog.Logger
	queue  chan Activity
	done   chan struct{}
}

func NewDispatcher(client *Client, log *slog.Logger) *Dispatcher {
	if log == nil {
		log = slog.Default()
	}
	d := &Dispatcher{
		client: client,
		log:    log,
		queue:  make(chan Activity, 16),
		done:   make(chan struct{}),
	}
	go d.run()
	return d
}

// ActionCommitted implements engine.Notifier. It never blocks: when the
// queue is full the event is dropped, which is tolerated indefinitely since
// local state stays authoritative.
func (d *Dispatcher) ActionCommitted(profile string, e engine.Entry) {
	a := Activity{
		Name:      profile,
		Date:      e.Date,
		Title:     e.Title,
		Category:  e.Category,
		Points:    e.Points,
		Timestamp: e.Timestamp,
	}
	select {
	case d.queue <- a:
	default:
		d.log.Debug("sync queue full, dropping activity", "profile", profile, "title", e.Title)
	}
}

func (d *Dispatcher) run() {
	defer close(d.done)
	for a := range d.queue {
		if err := d.client.SubmitActivity(context.Background(), a); err != nil {
			d.log.Warn("activity sync failed", "profile", a.Name, "title", a.Title, "error", err)
			continue
		}
		d.log.Debug("activity synced", "profile", a.Name, "title", a.Title)
	}
}

// Close drains the queue and stops the worker. Pending submits get their
// single attempt before Close returns.
func (d *Dispatcher) Close() {
	close(d.queue)
	<-d.done
}
