package notification

import (
	"context"
	"errors"
	"fmt"
	"strings"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// TopicPrefix is prepended to the mobile number to form the FCM topic the
// patient's app subscribes to.
const TopicPrefix = "sms-"

// MessageSender is the part of *messaging.Client the notifier uses.
type MessageSender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// FCMNotifier pushes booking confirmations through Firebase Cloud Messaging.
type FCMNotifier struct {
	client MessageSender
	logger *zap.Logger
}

func NewFCMNotifier(client MessageSender, logger *zap.Logger) *FCMNotifier {
	return &FCMNotifier{client: client, logger: logger}
}

// NewFCMClient initializes the Firebase App and Messaging client.
func NewFCMClient(ctx context.Context, credentialsFile string) (*messaging.Client, error) {
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("firebase: error initializing app: %w", err)
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase: error getting Messaging client: %w", err)
	}
	return client, nil
}

// ErrNoTopic is returned when a mobile number has no digits to address.
var ErrNoTopic = errors.New("fcm: mobile number has no digits")

// Topic maps a mobile number to its FCM topic. Only digits are kept and a
// leading country code is dropped, so "+91 98765 43210" and "9876543210"
// address the same topic.
func Topic(mobileNumber string) (string, error) {
	var b strings.Builder
	for _, r := range mobileNumber {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if digits == "" {
		return "", ErrNoTopic
	}
	if len(digits) > 10 {
		digits = digits[len(digits)-10:]
	}
	return TopicPrefix + digits, nil
}

func (n *FCMNotifier) Send(ctx context.Context, mobileNumber, message string) error {
	topic, err := Topic(mobileNumber)
	if err != nil {
		return fmt.Errorf("fcm send to %q: %w", mobileNumber, err)
	}
	msg := &messaging.Message{
		Topic: topic,
		Notification: &messaging.Notification{
			Title: "Booking confirmed",
			Body:  message,
		},
		Data: map[string]string{
			"type": "booking_confirmation",
		},
		Android: &messaging.AndroidConfig{
			Priority: "high",
		},
	}

	id, err := n.client.Send(ctx, msg)
	if err != nil {
		return fmt.Errorf("fcm send to %s: %w", mobileNumber, err)
	}
	n.logger.Debug("fcm message sent", zap.String("to", mobileNumber), zap.String("id", id))
	return nil
}
