package notification

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Notifier delivers a text message to a patient's phone. Sends are
// fire-and-forget: no retry, no queue.
type Notifier interface {
	Send(ctx context.Context, mobileNumber, message string) error
}

// LogNotifier stands in for an SMS/WhatsApp gateway by writing the message to
// the operational log.
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Send(_ context.Context, mobileNumber, message string) error {
	n.logger.Info(fmt.Sprintf("[SMS Gateway] To: %s", mobileNumber),
		zap.String("to", mobileNumber),
		zap.String("message", message),
	)
	return nil
}
