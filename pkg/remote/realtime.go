package remote

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/lib/pq"

	"tableflip.dev/planner/pkg/model"
)

// Channel is the notification channel the events trigger publishes on.
const Channel = "planner_events"

// listener is the part of *pq.Listener used for realtime delivery.
type listener interface {
	Listen(channel string) error
	NotificationChannel() <-chan *pq.Notification
	Close() error
}

func newPQListener(dsn string) listener {
	return pq.NewListener(dsn, 10*time.Second, time.Minute, func(ev pq.ListenerEventType, err error) {
		if err != nil {
			log.Printf("remote: realtime: %v", err)
		}
	})
}

// notification is the payload built by planner_notify_event.
type notification struct {
	Op     string      `json:"op"`
	UserID string      `json:"user_id"`
	Record eventRecord `json:"record"`
}

type eventRecord struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Type      string          `json:"type"`
	Color     string          `json:"color"`
	Budget    *float64        `json:"budget"`
	CreatedAt model.Timestamp `json:"created_at"`
}

// decodeEvent parses a notification and reports whether it is an insert or
// update of one of userID's events.
func decodeEvent(payload, userID string) (model.Event, bool) {
	var n notification
	if err := json.Unmarshal([]byte(payload), &n); err != nil {
		log.Printf("remote: realtime: bad payload: %v", err)
		return model.Event{}, false
	}
	if n.UserID != userID || n.Record.ID == "" {
		return model.Event{}, false
	}
	if n.Op != "INSERT" && n.Op != "UPDATE" {
		return model.Event{}, false
	}
	return model.Event{
		ID:        n.Record.ID,
		Name:      n.Record.Name,
		Type:      model.EventType(n.Record.Type),
		Color:     n.Record.Color,
		Budget:    n.Record.Budget,
		CreatedAt: n.Record.CreatedAt,
	}, true
}

// SubscribeEvents listens on Channel and hands matching events to fn on a
// dedicated goroutine.
func (p *Postgres) SubscribeEvents(ctx context.Context, fn func(model.Event)) bool {
	p.UnsubscribeAll()

	l := p.newListener(p.dsn)
	if err := l.Listen(Channel); err != nil {
		p.fail("subscribe events", err)
		_ = l.Close()
		return false
	}

	ctx, cancel := context.WithCancel(ctx)
	p.mu.Lock()
	p.cancel = cancel
	p.mu.Unlock()

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer l.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case n, ok := <-l.NotificationChannel():
				if !ok {
					return
				}
				// nil follows a reconnect; nothing was delivered.
				if n == nil || n.Channel != Channel {
					continue
				}
				if e, ok := decodeEvent(n.Extra, p.userID); ok {
					fn(e)
				}
			}
		}
	}()
	return true
}

// UnsubscribeAll stops the realtime goroutine and waits for it to exit, so
// no handler runs after it returns.
func (p *Postgres) UnsubscribeAll() {
	p.mu.Lock()
	cancel := p.cancel
	p.cancel = nil
	p.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	p.wg.Wait()
}
