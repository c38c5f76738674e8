package payment

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"svdiagnostic/models"
	"svdiagnostic/services/session"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// settledRetention is how long finished checkouts stay queryable.
const settledRetention = 10 * time.Minute

// Sessions is the slice of session.Manager the checkout needs.
type Sessions interface {
	State(ctx context.Context, deviceID string) (session.State, error)
	Dispatch(ctx context.Context, deviceID string, a session.Action) (session.State, error)
}

type pending struct {
	record     models.Checkout
	cancel     context.CancelFunc
	finalizing bool
}

// Checkout runs the pay-then-book flow. A charge runs in the background; the
// booking is finalized only if the charge succeeds and was not cancelled.
type Checkout struct {
	sessions Sessions
	gateway  Gateway
	currency string
	logger   *zap.Logger

	mu       sync.Mutex
	payments map[string]*pending
	wg       sync.WaitGroup
}

func NewCheckout(sessions Sessions, gateway Gateway, currency string, logger *zap.Logger) *Checkout {
	return &Checkout{
		sessions: sessions,
		gateway:  gateway,
		currency: currency,
		logger:   logger,
		payments: make(map[string]*pending),
	}
}

// Begin validates the device's cart and draft, quotes the total and starts
// charging it. method defaults to card.
func (c *Checkout) Begin(ctx context.Context, deviceID, method string) (models.Checkout, error) {
	if method == "" {
		method = MethodCard
	}
	if !validMethod(method) {
		return models.Checkout{}, fmt.Errorf("%w: %s", ErrUnsupportedMethod, method)
	}

	state, err := c.sessions.State(ctx, deviceID)
	if err != nil {
		return models.Checkout{}, err
	}
	// The booking is built from this snapshot, so edits to the cart or form
	// while the charge runs cannot change what was paid for.
	order := state.PendingOrder()
	if err := order.Validate(); err != nil {
		return models.Checkout{}, err
	}
	price := order.Price()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.pruneLocked(time.Now())
	for _, p := range c.payments {
		if p.record.DeviceID == deviceID && p.record.Status == models.CheckoutProcessing {
			return models.Checkout{}, ErrCheckoutInProgress
		}
	}

	now := time.Now()
	record := models.Checkout{
		ID:        uuid.New().String(),
		DeviceID:  deviceID,
		Amount:    price.Total,
		Method:    method,
		Status:    models.CheckoutProcessing,
		StartedAt: now,
		UpdatedAt: now,
	}
	// The charge outlives the request that started it.
	runCtx, cancel := context.WithCancel(context.Background())
	c.payments[record.ID] = &pending{record: record, cancel: cancel}

	req := models.ChargeRequest{
		PaymentID:   record.ID,
		DeviceID:    deviceID,
		Amount:      price.Total,
		Currency:    c.currency,
		Method:      method,
		Description: "Sri Venkateswara Diagnostic booking",
	}

	c.wg.Add(1)
	go c.run(runCtx, req, order)

	c.logger.Info("Checkout started",
		zap.String("payment", record.ID),
		zap.String("device", deviceID),
		zap.Int("amount", record.Amount),
	)
	return record, nil
}

func (c *Checkout) run(ctx context.Context, req models.ChargeRequest, order session.Order) {
	defer c.wg.Done()

	receipt, err := c.gateway.Charge(ctx, req)

	c.mu.Lock()
	p, ok := c.payments[req.PaymentID]
	if !ok || p.record.Status != models.CheckoutProcessing {
		// Cancelled while charging; the completion is dropped.
		c.mu.Unlock()
		return
	}
	if err != nil {
		c.settleLocked(p, models.CheckoutFailed, "", err)
		c.mu.Unlock()
		c.logger.Warn("Payment failed", zap.String("payment", req.PaymentID), zap.Error(err))
		return
	}
	p.finalizing = true
	c.mu.Unlock()

	state, err := c.sessions.Dispatch(context.Background(), req.DeviceID, session.FinalizeBooking{Order: &order})

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.settleLocked(p, models.CheckoutFailed, "", err)
		c.logger.Error("Booking finalization failed after payment",
			zap.String("payment", req.PaymentID),
			zap.String("reference", receipt.Reference),
			zap.Error(err),
		)
		return
	}
	bookingID := ""
	if state.ActiveBooking != nil {
		bookingID = state.ActiveBooking.ID
		if state.ActiveBooking.TotalAmount != req.Amount {
			c.logger.Error("Booking total differs from amount charged",
				zap.String("payment", req.PaymentID),
				zap.Int("charged", req.Amount),
				zap.Int("booked", state.ActiveBooking.TotalAmount),
			)
		}
	}
	c.settleLocked(p, models.CheckoutSucceeded, bookingID, nil)
	c.logger.Info("Booking paid",
		zap.String("payment", req.PaymentID),
		zap.String("booking", bookingID),
		zap.String("reference", receipt.Reference),
	)
}

// settleLocked must be called with c.mu held.
func (c *Checkout) settleLocked(p *pending, status models.CheckoutStatus, bookingID string, err error) {
	p.record.Status = status
	p.record.BookingID = bookingID
	if err != nil {
		p.record.Error = err.Error()
	}
	p.record.UpdatedAt = time.Now()
	p.finalizing = false
	p.cancel()
}

func (c *Checkout) lookupLocked(deviceID, id string) (*pending, error) {
	p, ok := c.payments[id]
	if !ok || p.record.DeviceID != deviceID {
		return nil, ErrPaymentNotFound
	}
	return p, nil
}

// Status reports a checkout owned by deviceID.
func (c *Checkout) Status(deviceID, id string) (models.Checkout, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, err := c.lookupLocked(deviceID, id)
	if err != nil {
		return models.Checkout{}, err
	}
	return p.record, nil
}

// Cancel aborts a charge that has not yet cleared. The booking is never
// created for a cancelled checkout.
func (c *Checkout) Cancel(deviceID, id string) (models.Checkout, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, err := c.lookupLocked(deviceID, id)
	if err != nil {
		return models.Checkout{}, err
	}
	if p.record.Status != models.CheckoutProcessing || p.finalizing {
		return p.record, ErrCheckoutSettled
	}
	c.settleLocked(p, models.CheckoutCancelled, "", nil)
	c.logger.Info("Checkout cancelled", zap.String("payment", id), zap.String("device", deviceID))
	return p.record, nil
}

// CancelDevice aborts every in-flight charge for deviceID and returns how
// many were cancelled.
func (c *Checkout) CancelDevice(deviceID string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for id, p := range c.payments {
		if p.record.DeviceID != deviceID || p.record.Status != models.CheckoutProcessing || p.finalizing {
			continue
		}
		c.settleLocked(p, models.CheckoutCancelled, "", nil)
		c.logger.Info("Checkout cancelled", zap.String("payment", id), zap.String("device", deviceID))
		n++
	}
	return n
}

// Close cancels outstanding charges and waits for their goroutines, or for
// ctx to expire.
func (c *Checkout) Close(ctx context.Context) error {
	c.mu.Lock()
	for _, p := range c.payments {
		if p.record.Status == models.CheckoutProcessing && !p.finalizing {
			c.settleLocked(p, models.CheckoutCancelled, "", errors.New("server shutting down"))
		}
	}
	c.mu.Unlock()

	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Checkout) pruneLocked(now time.Time) {
	for id, p := range c.payments {
		if p.record.Status != models.CheckoutProcessing && now.Sub(p.record.UpdatedAt) > settledRetention {
			delete(c.payments, id)
		}
	}
}
