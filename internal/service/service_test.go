package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pesio-ai/be-ops-workflow/internal/repository"
	"github.com/pesio-ai/be-ops-workflow/internal/repository/memstore"
	"github.com/pesio-ai/be-ops-workflow/pkg/logger"
)

type sentNotification struct {
	EventType  string
	ResourceID string
	ActorID    string
	Recipients []string
	Payload    map[string]interface{}
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []sentNotification
}

func (n *recordingNotifier) Notify(_ context.Context, eventType, _, resourceID, actorID string, recipients []string, payload map[string]interface{}) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sentNotification{eventType, resourceID, actorID, recipients, payload})
}

func (n *recordingNotifier) events(eventType string) []sentNotification {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []sentNotification
	for _, s := range n.sent {
		if s.EventType == eventType {
			out = append(out, s)
		}
	}
	return out
}

// stepClock returns a time source that advances one minute per call.
func stepClock(start time.Time) func() time.Time {
	var mu sync.Mutex
	t := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t = t.Add(time.Minute)
		return t
	}
}

type fixture struct {
	store    *memstore.Store
	notifier *recordingNotifier
	approval *ApprovalService
	pipeline *PipelineService
	vendors  *VendorService
	activity *ActivityService

	admin   *repository.UserProfile
	admin2  *repository.UserProfile
	partner *repository.UserProfile
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	log := logger.Nop()
	store := memstore.New(log)
	notifier := &recordingNotifier{}

	f := &fixture{
		store:    store,
		notifier: notifier,
		approval: NewApprovalService(store.Records(), store.Users(), store.Activity(), notifier, log),
		pipeline: NewPipelineService(store.Products(), store.Users(), store.Activity(), notifier, log),
		vendors:  NewVendorService(store.Vendors(), store.Users(), store.Activity(), log),
		activity: NewActivityService(store.Activity(), log),
	}
	f.pipeline.now = stepClock(time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC))

	f.admin = f.addUser(t, "ada@example.com", "Ada", repository.RoleAdmin, repository.AccountApproved)
	f.admin2 = f.addUser(t, "grace@example.com", "Grace", repository.RoleAdmin, repository.AccountApproved)
	f.partner = f.addUser(t, "linus@example.com", "Linus", repository.RolePartner, repository.AccountApproved)
	return f
}

func (f *fixture) addUser(t *testing.T, email, name, role, status string) *repository.UserProfile {
	t.Helper()
	u := &repository.UserProfile{Email: email, Name: name, Role: role, ApprovalStatus: status}
	require.NoError(t, f.store.Users().Create(context.Background(), u))
	return u
}
