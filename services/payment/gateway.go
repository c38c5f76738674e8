// Package payment charges the booking total through a pluggable gateway and
// finalizes the booking once the charge clears.
package payment

import (
	"context"
	"time"

	"svdiagnostic/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Supported checkout methods.
const (
	MethodCard       = "card"
	MethodUPI        = "upi"
	MethodNetBanking = "netbanking"
)

// Gateway charges a patient. Implementations must return ctx.Err() when the
// context is cancelled before the charge completes.
type Gateway interface {
	Charge(ctx context.Context, req models.ChargeRequest) (*models.Receipt, error)
}

// SimulatedGateway always succeeds after Delay.
type SimulatedGateway struct {
	Delay  time.Duration
	logger *zap.Logger
}

func NewSimulatedGateway(delay time.Duration, logger *zap.Logger) *SimulatedGateway {
	return &SimulatedGateway{Delay: delay, logger: logger}
}

func (g *SimulatedGateway) Charge(ctx context.Context, req models.ChargeRequest) (*models.Receipt, error) {
	timer := time.NewTimer(g.Delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
	}

	receipt := &models.Receipt{
		PaymentID: req.PaymentID,
		Reference: "pi_sim_" + uuid.New().String(),
		Amount:    req.Amount,
		Currency:  req.Currency,
		Method:    req.Method,
		PaidAt:    time.Now(),
	}
	g.logger.Info("Simulated payment successful",
		zap.String("payment", req.PaymentID),
		zap.Int("amount", req.Amount),
		zap.String("method", req.Method),
	)
	return receipt, nil
}

func validMethod(m string) bool {
	switch m {
	case MethodCard, MethodUPI, MethodNetBanking:
		return true
	}
	return false
}
