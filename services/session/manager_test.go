package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"svdiagnostic/database/kv"
	"svdiagnostic/models"
	"svdiagnostic/services/booking"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type sentMessage struct {
	mobile  string
	message string
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []sentMessage
	err  error
}

func (n *recordingNotifier) Send(_ context.Context, mobile, message string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sentMessage{mobile, message})
	return n.err
}

type sequenceIDs struct {
	ids []string
	i   int
}

func (g *sequenceIDs) NewID() string {
	id := g.ids[g.i%len(g.ids)]
	g.i++
	return id
}

func newTestManager(t *testing.T, notifier *recordingNotifier, ids *sequenceIDs) (*Manager, *kv.MemoryStore, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	store := kv.NewMemoryStore()
	var gen booking.IDGenerator
	if ids != nil {
		gen = ids
	}
	return NewManager(store, notifier, gen, zap.New(core)), store, logs
}

func prepareCheckout(t *testing.T, m *Manager, deviceID string) {
	t.Helper()
	ctx := context.Background()
	steps := []Action{
		AddToCart{TestID: "t1"},
		Navigate{Page: PageBooking},
		UpdateDraft{Draft: models.BookingDetails{
			Name:           "Ravi",
			Mobile:         "9000000001",
			CollectionType: models.CollectionCentre,
			Date:           "2026-10-20",
			Slot:           "08:00 AM - 09:00 AM",
		}},
	}
	for _, a := range steps {
		if _, err := m.Dispatch(ctx, deviceID, a); err != nil {
			t.Fatalf("%T: %v", a, err)
		}
	}
}

func TestManager_FinalizeNotifiesAndPersists(t *testing.T) {
	notifier := &recordingNotifier{}
	m, store, _ := newTestManager(t, notifier, &sequenceIDs{ids: []string{"SVAAAA"}})
	ctx := context.Background()

	prepareCheckout(t, m, "dev-1")
	s, err := m.Dispatch(ctx, "dev-1", FinalizeBooking{})
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if s.ActiveBooking == nil || s.ActiveBooking.ID != "SVAAAA" {
		t.Fatalf("expected generated id, got %+v", s.ActiveBooking)
	}
	if len(notifier.sent) != 1 || notifier.sent[0].mobile != "9000000001" {
		t.Errorf("expected one SMS to the patient, got %+v", notifier.sent)
	}

	raw, ok, err := kv.Scoped(store, "dev-1").Get(ctx, KeyHistory)
	if err != nil || !ok || len(raw) == 0 {
		t.Fatalf("history not persisted: ok=%v err=%v", ok, err)
	}

	fresh := NewManager(store, notifier, nil, zap.NewNop())
	restored, err := fresh.State(ctx, "dev-1")
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	if len(restored.History) != 1 || restored.History[0].ID != "SVAAAA" || restored.IsNewCustomer {
		t.Errorf("state not restored from storage: %+v", restored)
	}
	if len(restored.Cart) != 0 {
		t.Errorf("cart should not survive a restart, got %v", restored.Cart)
	}
}

func TestManager_RegeneratesCollidingID(t *testing.T) {
	m, _, _ := newTestManager(t, &recordingNotifier{}, &sequenceIDs{ids: []string{"SV1", "SV1", "SV2"}})
	ctx := context.Background()

	prepareCheckout(t, m, "dev-1")
	if _, err := m.Dispatch(ctx, "dev-1", FinalizeBooking{}); err != nil {
		t.Fatal(err)
	}
	prepareCheckout(t, m, "dev-1")
	s, err := m.Dispatch(ctx, "dev-1", FinalizeBooking{})
	if err != nil {
		t.Fatal(err)
	}
	if s.History[0].ID != "SV2" || s.History[1].ID != "SV1" {
		t.Errorf("expected collision to be regenerated, got %s, %s", s.History[0].ID, s.History[1].ID)
	}
}

func TestManager_NotificationFailureDoesNotFailBooking(t *testing.T) {
	notifier := &recordingNotifier{err: errors.New("gateway down")}
	m, _, logs := newTestManager(t, notifier, nil)

	prepareCheckout(t, m, "dev-1")
	s, err := m.Dispatch(context.Background(), "dev-1", FinalizeBooking{})
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if len(s.History) != 1 {
		t.Errorf("booking not recorded: %+v", s.History)
	}
	if logs.FilterMessage("notification failed").Len() != 1 {
		t.Error("expected a warning for the failed notification")
	}
}

func TestManager_ErrorKeepsState(t *testing.T) {
	m, store, _ := newTestManager(t, &recordingNotifier{}, nil)
	ctx := context.Background()

	if _, err := m.Dispatch(ctx, "dev-1", AddToCart{TestID: "t2"}); err != nil {
		t.Fatal(err)
	}
	s, err := m.Dispatch(ctx, "dev-1", FinalizeBooking{})
	if err == nil {
		t.Fatal("expected validation error for blank draft")
	}
	if len(s.Cart) != 1 || len(s.History) != 0 {
		t.Errorf("state changed on error: %+v", s)
	}
	if store.Len() != 0 {
		t.Errorf("nothing should be stored, got %d keys", store.Len())
	}
}

func TestManager_LogoutClearsStorage(t *testing.T) {
	m, store, _ := newTestManager(t, &recordingNotifier{}, nil)
	ctx := context.Background()

	if _, err := m.Dispatch(ctx, "dev-1", Login{Mobile: "9876543210"}); err != nil {
		t.Fatal(err)
	}
	if _, err := m.Dispatch(ctx, "dev-1", MarkInstalled{}); err != nil {
		t.Fatal(err)
	}
	if _, err := m.Dispatch(ctx, "dev-2", MarkInstalled{}); err != nil {
		t.Fatal(err)
	}
	if store.Len() == 0 {
		t.Fatal("expected durable keys after login")
	}

	if _, err := m.Dispatch(ctx, "dev-1", Logout{Confirmed: true}); err != nil {
		t.Fatal(err)
	}
	for _, k := range StorageKeys() {
		if _, ok, _ := kv.Scoped(store, "dev-1").Get(ctx, k); ok {
			t.Errorf("key %s survived logout", k)
		}
	}
	if _, ok, _ := kv.Scoped(store, "dev-2").Get(ctx, KeyAppInstalled); !ok {
		t.Error("logout cleared another device")
	}
}

func TestManager_FeedbackIsLogged(t *testing.T) {
	m, _, logs := newTestManager(t, &recordingNotifier{}, nil)
	ctx := context.Background()

	if _, err := m.Dispatch(ctx, "dev-1", Login{Mobile: "9876543210"}); err != nil {
		t.Fatal(err)
	}
	if _, err := m.Dispatch(ctx, "dev-1", SubmitFeedback{Feedback: models.Feedback{Rating: 5, Comment: "great"}}); err != nil {
		t.Fatal(err)
	}
	entries := logs.FilterMessage("feedback received").All()
	if len(entries) != 1 || entries[0].ContextMap()["rating"] != int64(5) {
		t.Errorf("unexpected feedback log %+v", entries)
	}
}

// failingStore rejects writes to one key of every device. It has no
// ApplyBatch, so writes go key by key.
type failingStore struct {
	mem     *kv.MemoryStore
	failKey string
}

var errStoreDown = errors.New("write failed")

func (f *failingStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return f.mem.Get(ctx, key)
}

func (f *failingStore) Set(ctx context.Context, key string, value []byte) error {
	if strings.HasSuffix(key, ":"+f.failKey) {
		return errStoreDown
	}
	return f.mem.Set(ctx, key, value)
}

func (f *failingStore) Delete(ctx context.Context, keys ...string) error {
	return f.mem.Delete(ctx, keys...)
}

func TestManager_PartialWriteLeavesStorageConsistent(t *testing.T) {
	for _, key := range []string{KeyNewCustomer, KeyUser, KeyHistory} {
		t.Run(key, func(t *testing.T) {
			ctx := context.Background()
			store := &failingStore{mem: kv.NewMemoryStore(), failKey: key}
			m := NewManager(store, &recordingNotifier{}, nil, zap.NewNop())

			prepareCheckout(t, m, "dev-1")
			s, err := m.Dispatch(ctx, "dev-1", FinalizeBooking{})
			if !errors.Is(err, errStoreDown) {
				t.Fatalf("expected storage error, got %v", err)
			}
			if len(s.History) != 0 || !s.IsNewCustomer {
				t.Errorf("in-memory state advanced on failed write: %+v", s)
			}

			restored, err := NewManager(store.mem, &recordingNotifier{}, nil, zap.NewNop()).State(ctx, "dev-1")
			if err != nil {
				t.Fatalf("state: %v", err)
			}
			if len(restored.History) != 0 || !restored.IsNewCustomer || restored.User.IsLoggedIn {
				t.Errorf("storage half-written: history=%d new=%v user=%+v",
					len(restored.History), restored.IsNewCustomer, restored.User)
			}
		})
	}
}

func TestManager_ConcurrentGuardedAddsKeepOneCopy(t *testing.T) {
	m, _, _ := newTestManager(t, &recordingNotifier{}, nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := m.Dispatch(ctx, "dev-1", AddToCart{TestID: "t3", IfAbsent: true}); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	rejected := 0
	for err := range errs {
		if !errors.Is(err, ErrAlreadyInCart) {
			t.Fatalf("unexpected error: %v", err)
		}
		rejected++
	}
	s, _ := m.State(ctx, "dev-1")
	if len(s.Cart) != 1 || rejected != 15 {
		t.Errorf("expected one copy and 15 rejections, got cart=%v rejected=%d", s.Cart, rejected)
	}
}
