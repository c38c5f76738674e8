package payment

import (
	"context"
	"fmt"
	"time"

	"svdiagnostic/models"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.uber.org/zap"
)

// StripeGateway charges through a confirmed PaymentIntent. stripe.Key must be
// set before use.
type StripeGateway struct {
	paymentMethod string
	logger        *zap.Logger

	newIntent func(*stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
}

// NewStripeGateway charges every intent against paymentMethod, e.g. a saved
// method id or "pm_card_visa" in test mode.
func NewStripeGateway(paymentMethod string, logger *zap.Logger) *StripeGateway {
	return &StripeGateway{
		paymentMethod: paymentMethod,
		logger:        logger,
		newIntent:     paymentintent.New,
	}
}

func (g *StripeGateway) Charge(ctx context.Context, req models.ChargeRequest) (*models.Receipt, error) {
	params := &stripe.PaymentIntentParams{
		// Amounts are whole rupees; stripe wants the minor unit.
		Amount:        stripe.Int64(int64(req.Amount) * 100),
		Currency:      stripe.String(req.Currency),
		PaymentMethod: stripe.String(g.paymentMethod),
		Confirm:       stripe.Bool(true),
		Description:   stripe.String(req.Description),
	}
	params.AutomaticPaymentMethods = &stripe.PaymentIntentAutomaticPaymentMethodsParams{
		Enabled:        stripe.Bool(true),
		AllowRedirects: stripe.String("never"),
	}
	params.Context = ctx
	params.SetIdempotencyKey(req.PaymentID)
	params.AddMetadata("payment_id", req.PaymentID)
	params.AddMetadata("device_id", req.DeviceID)
	params.AddMetadata("method", req.Method)

	pi, err := g.newIntent(params)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("stripe payment intent: %w", err)
	}
	if pi.Status != stripe.PaymentIntentStatusSucceeded {
		return nil, fmt.Errorf("%w: intent %s is %s", ErrPaymentDeclined, pi.ID, pi.Status)
	}

	g.logger.Info("Card payment successful", zap.String("payment", req.PaymentID), zap.String("intent", pi.ID))
	return &models.Receipt{
		PaymentID: req.PaymentID,
		Reference: pi.ID,
		Amount:    req.Amount,
		Currency:  req.Currency,
		Method:    req.Method,
		PaidAt:    time.Now(),
	}, nil
}
