package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/wb-go/wbf/rabbitmq"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/circlepot/notifier/internal/model"
)

const (
	ExchangeName   = "push-exchange"
	MainQueueName  = "push-queue"
	RetryQueueName = "push-retry"
	DLQName        = "push-dlq"
	RoutingKey     = "push"
)

// Message kinds carried on the push queue.
const (
	KindPush        = "push"         // deliver an OS-level notification
	KindConfigure   = "configure"    // foreground hands the worker its API base URL
	KindRevoke      = "revoke"       // account unsubscribed, drop its registration
	KindSkipWaiting = "skip_waiting" // activate a staged worker update immediately
)

// PushMessage is the envelope the notifier publishes for the push worker.
//
// For KindPush the payload fields mirror the web push contract: any of them
// may be absent, and the worker must degrade to a generic notification rather
// than drop the message.
type PushMessage struct {
	Kind    string `json:"kind"`
	Account string `json:"account,omitempty"`
	Token   string `json:"token,omitempty"`

	Title          string            `json:"title,omitempty"`
	Body           string            `json:"body,omitempty"`
	Icon           string            `json:"icon,omitempty"`
	Badge          string            `json:"badge,omitempty"`
	Tag            string            `json:"tag,omitempty"`
	Priority       string            `json:"priority,omitempty"`
	RequiresAction bool              `json:"requires_action,omitempty"`
	Action         *model.Action     `json:"action,omitempty"`
	Data           map[string]string `json:"data,omitempty"`

	// Configure payload.
	APIURL string `json:"api_url,omitempty"`
}

type PushQueue struct {
	Publisher *rabbitmq.Publisher
	Consumer  *rabbitmq.Consumer
}

// NewPushQueue declares the push exchange, main queue, retry queue, and DLQ,
// and binds them together.
func NewPushQueue(ch *rabbitmq.Channel) (*PushQueue, error) {
	exchange := rabbitmq.NewExchange(ExchangeName, "direct")
	if err := exchange.BindToChannel(ch); err != nil {
		return nil, fmt.Errorf("failed to bind to exchange: %w", err)
	}

	qm := rabbitmq.NewQueueManager(ch)

	_, err := qm.DeclareQueue(DLQName, rabbitmq.QueueConfig{Durable: true})
	if err != nil {
		return nil, fmt.Errorf("failed to declare DLQ queue: %w", err)
	}

	retryArgs := map[string]interface{}{
		"x-dead-letter-exchange":    "",
		"x-dead-letter-routing-key": MainQueueName,
		"x-message-ttl":             int32(5000),
	}

	_, err = qm.DeclareQueue(RetryQueueName, rabbitmq.QueueConfig{
		Durable: true,
		Args:    retryArgs,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to declare retry queue: %w", err)
	}

	mainArgs := map[string]interface{}{
		"x-dead-letter-exchange":    "",
		"x-dead-letter-routing-key": DLQName,
	}

	mainQ, err := qm.DeclareQueue(MainQueueName, rabbitmq.QueueConfig{
		Durable: true,
		Args:    mainArgs,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to declare main queue: %w", err)
	}

	if err := ch.QueueBind(mainQ.Name, RoutingKey, exchange.Name(), false, nil); err != nil {
		return nil, fmt.Errorf("failed to bind the exchange to the main queue: %w", err)
	}

	pub := rabbitmq.NewPublisher(ch, exchange.Name())
	cons := rabbitmq.NewConsumer(ch, rabbitmq.NewConsumerConfig(mainQ.Name))

	return &PushQueue{Publisher: pub, Consumer: cons}, nil
}

// Publish sends a message to the push exchange.
func (q *PushQueue) Publish(msg PushMessage, strategy retry.Strategy) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	return q.Publisher.PublishWithRetry(body, RoutingKey, "application/json", strategy)
}

// Consume forwards raw queue payloads to out. Payloads that do not decode as
// a PushMessage are passed through as plain-text bodies so one malformed
// producer cannot poison the channel.
func (q *PushQueue) Consume(ctx context.Context, out chan<- PushMessage, strategy retry.Strategy) error {
	msgChan := make(chan []byte)

	go func() {
		for m := range msgChan {
			var msg PushMessage
			if err := json.Unmarshal(m, &msg); err != nil {
				zlog.Logger.Warn().Err(err).Msg("malformed push payload, delivering as plain text")
				msg = PushMessage{Kind: KindPush, Body: string(m)}
			}

			select {
			case <-ctx.Done():
				return
			case out <- msg:
			}
		}
	}()

	return q.Consumer.ConsumeWithRetry(msgChan, strategy)
}
