package commander

import (
	"context"
	"fmt"
	"time"
)

//go:generate mockery --name RabbitMQPublisher --filename rabbitmqpublisher.go

// DefaultPublishTimeout is how long Send waits for broker to accept message.
const DefaultPublishTimeout = 5 * time.Second

// RabbitMQPublisher is RabbitMQ messages publisher.
type RabbitMQPublisher interface {
	Publish(context.Context, string, []byte) error
}

// SenderOption is custom configuration of RabbitMQSender.
type SenderOption func(s *RabbitMQSender)

// WithPublishTimeout sets how long Send waits for broker to accept message.
func WithPublishTimeout(d time.Duration) SenderOption {
	return func(s *RabbitMQSender) {
		s.timeout = d
	}
}

// RabbitMQSender sends import commands to RMQ routing key.
type RabbitMQSender struct {
	publisher     RabbitMQPublisher
	cmdRoutingKey string
	timeout       time.Duration
}

// NewRabbitMQSender returns new RabbitMQSender using provided publisher for sending messages to provided routing key.
func NewRabbitMQSender(publisher RabbitMQPublisher, cmdRoutingKey string, ops ...SenderOption) RabbitMQSender {
	sender := RabbitMQSender{
		publisher:     publisher,
		cmdRoutingKey: cmdRoutingKey,
		timeout:       DefaultPublishTimeout,
	}

	for _, op := range ops {
		op(&sender)
	}

	return sender
}

// Send publishes message to RabbitMQSender's routing key.
func (s RabbitMQSender) Send(ctx context.Context, msg []byte) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.publisher.Publish(ctx, s.cmdRoutingKey, msg); err != nil {
		return fmt.Errorf("can't publish command to %q: %w", s.cmdRoutingKey, err)
	}

	return nil
}
