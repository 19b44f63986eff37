package repository

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pesio-ai/be-ops-workflow/pkg/database"
	"github.com/pesio-ai/be-ops-workflow/pkg/logger"
)

// ChangeChannel is the Postgres notification channel written by the
// notify_ops_change trigger.
const ChangeChannel = "ops_changes"

const subscriberBuffer = 64

type subscriber struct {
	filter ChangeFilter
	ch     chan ChangeEvent
}

// ChangeFeed fans Postgres row notifications out to in-process subscribers.
// One pooled connection is held for LISTEN while Run is active.
type ChangeFeed struct {
	db  *database.DB
	log *logger.Logger

	mu     sync.Mutex
	nextID int
	subs   map[int]*subscriber
}

// NewChangeFeed creates a ChangeFeed. Call Run to start listening.
func NewChangeFeed(db *database.DB, log *logger.Logger) *ChangeFeed {
	return &ChangeFeed{
		db:   db,
		log:  log.Named("change_feed"),
		subs: make(map[int]*subscriber),
	}
}

// Run listens until ctx is cancelled, reconnecting after failures.
func (f *ChangeFeed) Run(ctx context.Context) error {
	backoff := time.Second
	for {
		err := f.db.Listen(ctx, ChangeChannel, f.handle)
		if ctx.Err() != nil {
			return nil
		}
		f.log.Warn().Err(err).Dur("retry_in", backoff).Msg("Change feed listener stopped")

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(backoff):
		}
		if backoff < 30*time.Second {
			backoff *= 2
		}
	}
}

// Subscribe registers a subscriber until ctx is done, after which the
// returned channel is closed. Events are dropped for a subscriber whose
// buffer is full.
func (f *ChangeFeed) Subscribe(ctx context.Context, filter ChangeFilter) (<-chan ChangeEvent, error) {
	sub := &subscriber{filter: filter, ch: make(chan ChangeEvent, subscriberBuffer)}

	f.mu.Lock()
	id := f.nextID
	f.nextID++
	f.subs[id] = sub
	f.mu.Unlock()

	go func() {
		<-ctx.Done()
		f.mu.Lock()
		delete(f.subs, id)
		f.mu.Unlock()
		close(sub.ch)
	}()

	return sub.ch, nil
}

func (f *ChangeFeed) handle(n *pgconn.Notification) {
	var ev ChangeEvent
	if err := json.Unmarshal([]byte(n.Payload), &ev); err != nil {
		f.log.Warn().Err(err).Str("payload", n.Payload).Msg("Malformed change notification")
		return
	}
	f.Publish(ev)
}

// Publish delivers ev to every matching subscriber without blocking.
func (f *ChangeFeed) Publish(ev ChangeEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, sub := range f.subs {
		if !sub.filter.Matches(ev) {
			continue
		}
		select {
		case sub.ch <- ev:
		default:
			f.log.Debug().Str("table", ev.Table).Str("id", ev.RowID).Msg("Dropped change event for slow subscriber")
		}
	}
}
