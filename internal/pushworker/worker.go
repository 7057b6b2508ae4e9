// Package pushworker is the background delivery process. It consumes push
// messages from the queue, renders them as OS-level notifications through
// FCM, and keeps its own private registration state so it can run while the
// notifier is down.
package pushworker

import (
	"context"
	"errors"
	"sync"

	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/circlepot/notifier/internal/pushworker/store"
	"github.com/circlepot/notifier/internal/rabbitmq/queue"
	"github.com/circlepot/notifier/pkg/fcm"
)

type pushConsumer interface {
	Consume(ctx context.Context, out chan<- queue.PushMessage, strategy retry.Strategy) error
}

type pushSender interface {
	Send(ctx context.Context, token string, n fcm.Notification) error
}

type workerStore interface {
	SetAPIURL(ctx context.Context, url string) error
	Subscription(ctx context.Context, account string) (store.WorkerSubscription, error)
	UpsertSubscription(ctx context.Context, account, token, status string) error
	MarkStale(ctx context.Context, account string) error
	Delete(ctx context.Context, account string) error
}

// Worker drains the push queue and displays notifications.
type Worker struct {
	consumer pushConsumer
	sender   pushSender
	store    workerStore
	strategy retry.Strategy
}

func New(consumer pushConsumer, sender pushSender, st workerStore, strategy retry.Strategy) *Worker {
	return &Worker{
		consumer: consumer,
		sender:   sender,
		store:    st,
		strategy: strategy,
	}
}

// Run consumes the push queue with workerCount handlers until ctx is
// cancelled. Handling failures are logged and never stop the loop: a message
// the worker cannot act on is abandoned, not retried forever.
func (w *Worker) Run(ctx context.Context, workerCount int) {
	msgChan := make(chan queue.PushMessage)

	go func() {
		if err := w.consumer.Consume(ctx, msgChan, w.strategy); err != nil {
			zlog.Logger.Error().Err(err).Msg("failed to consume push messages")
		}
	}()

	var wg sync.WaitGroup
	for i := 0; i < workerCount; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for {
				select {
				case <-ctx.Done():
					return
				case msg, ok := <-msgChan:
					if !ok {
						return
					}

					if err := w.handle(ctx, msg); err != nil {
						zlog.Logger.Error().
							Err(err).
							Str("kind", msg.Kind).
							Str("account", msg.Account).
							Msg("failed to handle push message")
					}
				}
			}
		}()
	}

	wg.Wait()
}

func (w *Worker) handle(ctx context.Context, msg queue.PushMessage) error {
	switch msg.Kind {
	case queue.KindConfigure:
		return w.configure(ctx, msg)
	case queue.KindRevoke:
		return w.revoke(ctx, msg)
	case queue.KindSkipWaiting:
		// Nothing is staged in this process model; acknowledge and move on.
		zlog.Logger.Info().Msg("skip-waiting received, worker already active")
		return nil
	case queue.KindPush, "":
		return w.deliver(ctx, msg)
	default:
		zlog.Logger.Warn().Str("kind", msg.Kind).Msg("unknown push message kind, dropping")
		return nil
	}
}

// configure records the API base URL and (re)registers the account's token.
// Configure is the only way out of a stale registration.
func (w *Worker) configure(ctx context.Context, msg queue.PushMessage) error {
	if msg.APIURL != "" {
		if err := w.store.SetAPIURL(ctx, msg.APIURL); err != nil {
			return err
		}
	}

	if msg.Account == "" || msg.Token == "" {
		return nil
	}

	next, err := w.advance(ctx, msg.Account, EventConfigured)
	if err != nil {
		return err
	}

	return w.store.UpsertSubscription(ctx, msg.Account, msg.Token, string(next))
}

// revoke forgets an account's registration entirely. Stale records are
// deleted too: a revoke is authoritative regardless of lifecycle position.
func (w *Worker) revoke(ctx context.Context, msg queue.PushMessage) error {
	if msg.Account == "" {
		return nil
	}

	if _, err := w.advance(ctx, msg.Account, EventUnsubscribed); err != nil {
		zlog.Logger.Debug().Err(err).Str("account", msg.Account).Msg("revoking outside the normal lifecycle")
	}

	return w.store.Delete(ctx, msg.Account)
}

func (w *Worker) deliver(ctx context.Context, msg queue.PushMessage) error {
	token := msg.Token
	if token == "" && msg.Account != "" {
		sub, err := w.store.Subscription(ctx, msg.Account)
		if err != nil {
			return err
		}
		token = sub.Token
	}
	if token == "" {
		zlog.Logger.Warn().Str("account", msg.Account).Msg("push message without a token, dropping")
		return nil
	}

	if err := w.sender.Send(ctx, token, displayFor(msg)); err != nil {
		if errors.Is(err, fcm.ErrTokenInvalid) && msg.Account != "" {
			zlog.Logger.Warn().
				Str("account", msg.Account).
				Msg("push token invalidated by the platform, marking stale")
			return w.store.MarkStale(ctx, msg.Account)
		}

		return err
	}

	if msg.Account != "" {
		if next, err := w.advance(ctx, msg.Account, EventDelivered); err == nil {
			if err := w.store.UpsertSubscription(ctx, msg.Account, token, string(next)); err != nil {
				zlog.Logger.Warn().Err(err).Msg("failed to record delivery confirmation")
			}
		}
	}

	zlog.Logger.Info().
		Str("account", msg.Account).
		Str("tag", msg.Tag).
		Msg("push notification delivered")

	return nil
}

// advance reads the account's current registration state and applies one
// lifecycle event. An account with no record starts unregistered.
func (w *Worker) advance(ctx context.Context, account string, event RegistrationEvent) (RegistrationState, error) {
	current := StateUnregistered

	sub, err := w.store.Subscription(ctx, account)
	switch {
	case err == nil:
		current = RegistrationState(sub.Status)
	case errors.Is(err, store.ErrUnknownSubscription):
	default:
		return current, err
	}

	return Advance(current, event)
}
