package payment

import (
	"context"
	"errors"
	"testing"

	"svdiagnostic/models"

	"github.com/stripe/stripe-go/v76"
	"go.uber.org/zap"
)

func TestStripeGateway_Charge(t *testing.T) {
	var got *stripe.PaymentIntentParams
	g := NewStripeGateway("pm_card_visa", zap.NewNop())
	g.newIntent = func(p *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
		got = p
		return &stripe.PaymentIntent{ID: "pi_123", Status: stripe.PaymentIntentStatusSucceeded}, nil
	}

	receipt, err := g.Charge(context.Background(), models.ChargeRequest{
		PaymentID: "pay-1",
		DeviceID:  "dev-1",
		Amount:    450,
		Currency:  "inr",
		Method:    MethodCard,
	})
	if err != nil {
		t.Fatalf("charge: %v", err)
	}
	if receipt.Reference != "pi_123" || receipt.Amount != 450 {
		t.Errorf("unexpected receipt %+v", receipt)
	}
	if *got.Amount != 45000 || *got.Currency != "inr" || !*got.Confirm {
		t.Errorf("unexpected intent params amount=%d currency=%s", *got.Amount, *got.Currency)
	}
	if got.IdempotencyKey == nil || *got.IdempotencyKey != "pay-1" {
		t.Error("expected payment id as idempotency key")
	}
	if got.Metadata["device_id"] != "dev-1" {
		t.Errorf("expected device metadata, got %v", got.Metadata)
	}
}

func TestStripeGateway_Declined(t *testing.T) {
	g := NewStripeGateway("pm_card_visa", zap.NewNop())
	g.newIntent = func(*stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
		return &stripe.PaymentIntent{ID: "pi_9", Status: stripe.PaymentIntentStatusRequiresPaymentMethod}, nil
	}
	if _, err := g.Charge(context.Background(), models.ChargeRequest{PaymentID: "p", Amount: 1}); !errors.Is(err, ErrPaymentDeclined) {
		t.Errorf("expected ErrPaymentDeclined, got %v", err)
	}
}

func TestStripeGateway_ContextCancelled(t *testing.T) {
	g := NewStripeGateway("pm_card_visa", zap.NewNop())
	g.newIntent = func(*stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
		return nil, errors.New("request aborted")
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := g.Charge(ctx, models.ChargeRequest{PaymentID: "p", Amount: 1}); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
