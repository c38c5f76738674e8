package session

import (
	"context"
	"fmt"
	"sync"

	"svdiagnostic/database/kv"
	"svdiagnostic/services/booking"
	"svdiagnostic/services/notification"

	"go.uber.org/zap"
)

// maxIDAttempts bounds how often a colliding booking id is regenerated.
const maxIDAttempts = 5

// Manager owns the live state of every device, hydrating it from storage on
// first use and mirroring durable changes after each transition.
type Manager struct {
	store    kv.Store
	notifier notification.Notifier
	ids      booking.IDGenerator
	logger   *zap.Logger

	mu      sync.Mutex
	devices map[string]*device
}

type device struct {
	mu     sync.Mutex
	loaded bool
	state  State
}

func NewManager(store kv.Store, notifier notification.Notifier, ids booking.IDGenerator, logger *zap.Logger) *Manager {
	if ids == nil {
		ids = booking.UUIDGenerator{}
	}
	return &Manager{
		store:    store,
		notifier: notifier,
		ids:      ids,
		logger:   logger,
		devices:  make(map[string]*device),
	}
}

func (m *Manager) device(deviceID string) *device {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.devices[deviceID]
	if !ok {
		d = &device{}
		m.devices[deviceID] = d
	}
	return d
}

// load must be called with d.mu held.
func (m *Manager) load(ctx context.Context, deviceID string, d *device) error {
	if d.loaded {
		return nil
	}
	s, err := Hydrate(ctx, kv.Scoped(m.store, deviceID))
	if err != nil {
		return err
	}
	d.state = s
	d.loaded = true
	return nil
}

// State returns a snapshot of the device's current state.
func (m *Manager) State(ctx context.Context, deviceID string) (State, error) {
	d := m.device(deviceID)
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := m.load(ctx, deviceID, d); err != nil {
		return State{}, err
	}
	return d.state.Clone(), nil
}

// Dispatch runs one action for a device. Transitions for the same device are
// serialised. On error the stored state is left as it was.
func (m *Manager) Dispatch(ctx context.Context, deviceID string, a Action) (State, error) {
	d := m.device(deviceID)
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := m.load(ctx, deviceID, d); err != nil {
		return State{}, err
	}
	prev := d.state

	if fb, ok := a.(FinalizeBooking); ok && fb.BookingID == "" {
		fb.BookingID = m.uniqueID(prev)
		a = fb
	}

	next, effects, err := Reduce(prev, a)
	if err != nil {
		return prev.Clone(), err
	}

	store := kv.Scoped(m.store, deviceID)
	if hasClear(effects) {
		if err := Clear(ctx, store); err != nil {
			return prev.Clone(), err
		}
	} else if err := Persist(ctx, store, prev, next); err != nil {
		return prev.Clone(), err
	}

	d.state = next
	m.logger.Debug("session transition",
		zap.String("device", deviceID),
		zap.String("action", a.actionName()),
		zap.String("page", string(next.Page)),
	)

	m.runEffects(ctx, deviceID, effects)
	return next.Clone(), nil
}

func (m *Manager) uniqueID(s State) string {
	id := m.ids.NewID()
	for i := 1; i < maxIDAttempts; i++ {
		if _, taken := s.FindBooking(id); !taken {
			break
		}
		id = m.ids.NewID()
	}
	return id
}

func (m *Manager) runEffects(ctx context.Context, deviceID string, effects []Effect) {
	for _, e := range effects {
		switch e := e.(type) {
		case SendNotification:
			if err := m.notifier.Send(ctx, e.Mobile, e.Message); err != nil {
				m.logger.Warn("notification failed", zap.String("device", deviceID), zap.Error(err))
			}
		case RecordFeedback:
			m.logger.Info("feedback received",
				zap.String("device", deviceID),
				zap.Int("rating", e.Feedback.Rating),
				zap.String("comment", e.Feedback.Comment),
				zap.String("patient", e.Feedback.PatientName),
			)
		case ClearStorage:
			// Handled before the transition is committed.
		default:
			m.logger.Warn("unknown effect", zap.String("effect", fmt.Sprintf("%T", e)))
		}
	}
}

func hasClear(effects []Effect) bool {
	for _, e := range effects {
		if _, ok := e.(ClearStorage); ok {
			return true
		}
	}
	return false
}
