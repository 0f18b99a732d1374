package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/bwaremarkt/storefront/internal/service/models/order"
)

// ConfirmationTopic carries order snapshots from checkout to the outbound
// email sender.
const ConfirmationTopic = "order.confirmation"

// Confirmation is the snapshot handed to the email sender. It is frozen at
// publish time; the sender never reads the order collection.
type Confirmation struct {
	OrderNumber     string                `json:"orderNumber"`
	Email           string                `json:"email"`
	Items           []order.Item          `json:"items"`
	Total           float64               `json:"total"`
	ShippingAddress order.ShippingAddress `json:"shippingAddress"`
	Phone           string                `json:"phone"`
	DeliveryTime    string                `json:"deliveryTime"`
}

// Publisher hands order confirmations to the pipeline. Delivery is
// best-effort: a failed publish is reported to the caller, who logs it and
// moves on.
type Publisher struct {
	pub message.Publisher
}

// NewPublisher creates a publisher over the given pub/sub.
func NewPublisher(pub message.Publisher) *Publisher {
	return &Publisher{pub: pub}
}

// SendOrderConfirmation publishes the order snapshot for the given email.
func (p *Publisher) SendOrderConfirmation(ctx context.Context, o order.Order, email string) error {
	payload, err := json.Marshal(Confirmation{
		OrderNumber:     o.OrderNumber,
		Email:           email,
		Items:           o.Items,
		Total:           o.Total,
		ShippingAddress: o.ShippingAddress,
		Phone:           o.Phone,
		DeliveryTime:    o.DeliveryTime,
	})
	if err != nil {
		return fmt.Errorf("failed to serialize confirmation: %w", err)
	}

	return p.pub.Publish(ConfirmationTopic, message.NewMessage(watermill.NewUUID(), payload))
}

// Sender delivers a confirmation email. Implementations must treat failure
// as their own problem; the pipeline acks regardless.
type Sender interface {
	SendOrderConfirmation(ctx context.Context, c Confirmation) error
}

// LogSender is the simulated delivery backend: it records the confirmation
// in the log instead of talking to a mail provider.
type LogSender struct{}

func (LogSender) SendOrderConfirmation(_ context.Context, c Confirmation) error {
	slog.Info("Order confirmation email sent",
		"order_number", c.OrderNumber,
		"email", c.Email,
		"items", len(c.Items),
		"total", c.Total,
	)

	return nil
}

// Consumer drains the confirmation topic and forwards each snapshot to the
// sender. Every message is acked, failures included: confirmations are
// best-effort and must never pile up behind a broken sender.
type Consumer struct {
	sub    message.Subscriber
	sender Sender
}

// NewConsumer creates a consumer over the given pub/sub and sender.
func NewConsumer(sub message.Subscriber, sender Sender) *Consumer {
	return &Consumer{
		sub:    sub,
		sender: sender,
	}
}

// Start subscribes to the confirmation topic and processes messages until
// the context is cancelled.
func (c *Consumer) Start(ctx context.Context) error {
	messages, err := c.sub.Subscribe(ctx, ConfirmationTopic)
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", ConfirmationTopic, err)
	}

	go func() {
		for msg := range messages {
			c.process(ctx, msg)
			msg.Ack()
		}
	}()

	return nil
}

func (c *Consumer) process(ctx context.Context, msg *message.Message) {
	var confirmation Confirmation
	if err := json.Unmarshal(msg.Payload, &confirmation); err != nil {
		slog.Error("Failed to decode confirmation message", "message_id", msg.UUID, "error", err)

		return
	}

	if err := c.sender.SendOrderConfirmation(ctx, confirmation); err != nil {
		slog.Error("Failed to deliver order confirmation",
			"order_number", confirmation.OrderNumber,
			"error", err,
		)
	}
}
