package notification

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/circlepot/notifier/internal/model"
	"github.com/circlepot/notifier/internal/rabbitmq/queue"
	"github.com/circlepot/notifier/internal/repository/subscription"
)

// ErrPermissionDenied marks a subscribe attempt with platform permission
// denied. Terminal for the session: the caller must not retry without user
// action outside this app.
var ErrPermissionDenied = errors.New("notification permission denied")

//go:generate mockgen -source=service.go -destination=../../mocks/service/notification/mock.go -package=mocks

type notificationRepository interface {
	Append(ctx context.Context, n model.Notification) (uuid.UUID, error)
	List(ctx context.Context, account string) ([]model.Notification, error)
	MarkRead(ctx context.Context, account string, id uuid.UUID) error
	MarkAllRead(ctx context.Context, account string) error
	Remove(ctx context.Context, account string, id uuid.UUID) error
	Clear(ctx context.Context, account string) error
	UnreadCount(ctx context.Context, account string) (int, error)
	Pending(ctx context.Context, account string, limit int) ([]model.Notification, error)
}

type preferencesRepository interface {
	Get(ctx context.Context, account string) (model.Preferences, error)
	Update(ctx context.Context, account string, patch model.PreferencesPatch) (model.Preferences, error)
}

type subscriptionRepository interface {
	Save(ctx context.Context, account, token string) error
	Get(ctx context.Context, account string) (model.PushSubscription, error)
	Delete(ctx context.Context, account string) error
}

type pushPublisher interface {
	Publish(msg queue.PushMessage, strategy retry.Strategy) error
}

type cache interface {
	SetWithRetry(ctx context.Context, strategy retry.Strategy, key string, value interface{}) error
	GetWithRetry(ctx context.Context, strategy retry.Strategy, key string) (string, error)
}

// Service coordinates the notification repository, preference gating, the
// unread-count cache, and push publication.
type Service struct {
	repo     notificationRepository
	prefs    preferencesRepository
	subs     subscriptionRepository
	queue    pushPublisher
	cache    cache
	strategy retry.Strategy
	apiURL   string
}

// NewService creates a notification service. apiURL is the externally
// reachable base URL of this API, handed to the push worker at subscribe
// time for its background sync.
func NewService(
	repo notificationRepository,
	prefs preferencesRepository,
	subs subscriptionRepository,
	queue pushPublisher,
	cache cache,
	strategy retry.Strategy,
	apiURL string,
) *Service {
	return &Service{
		repo:     repo,
		prefs:    prefs,
		subs:     subs,
		queue:    queue,
		cache:    cache,
		strategy: strategy,
		apiURL:   apiURL,
	}
}

func unreadKey(account string) string {
	return "unread:" + account
}

// Append persists a new notification record and, for high-priority records of
// push-enabled accounts with a live subscription, publishes it for
// out-of-band delivery. Push delivery is best effort: a publish failure never
// fails the append.
func (s *Service) Append(ctx context.Context, n model.Notification) error {
	id, err := s.repo.Append(ctx, n)
	if err != nil {
		return fmt.Errorf("append notification: %w", err)
	}
	n.ID = id

	s.refreshUnread(ctx, n.Account)

	if n.Priority != model.PriorityHigh {
		return nil
	}

	prefs, err := s.prefs.Get(ctx, n.Account)
	if err != nil {
		zlog.Logger.Error().Err(err).Str("account", n.Account).Msg("failed to load preferences for push gating")
		return nil
	}
	if !prefs.PushEnabled {
		return nil
	}

	sub, err := s.subs.Get(ctx, n.Account)
	if err != nil {
		if !errors.Is(err, subscription.ErrSubscriptionNotFound) {
			zlog.Logger.Error().Err(err).Str("account", n.Account).Msg("failed to load push subscription")
		}
		return nil
	}

	msg := queue.PushMessage{
		Kind:     queue.KindPush,
		Account:  n.Account,
		Token:    sub.Token,
		Title:    n.Title,
		Body:     n.Message,
		Tag:      n.Type,
		Priority: string(n.Priority),
		Action:   n.Action,
		Data:     n.Data,
	}

	if err := s.queue.Publish(msg, s.strategy); err != nil {
		zlog.Logger.Error().Err(err).Str("account", n.Account).Msg("failed to publish push message")
	}

	return nil
}

// List returns all notifications for an account, newest first.
func (s *Service) List(ctx context.Context, account string) ([]model.Notification, error) {
	notifications, err := s.repo.List(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}

	return notifications, nil
}

// MarkRead marks one notification read and refreshes the unread cache.
func (s *Service) MarkRead(ctx context.Context, account string, id uuid.UUID) error {
	if err := s.repo.MarkRead(ctx, account, id); err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}

	s.refreshUnread(ctx, account)

	return nil
}

// MarkAllRead marks every notification for an account read.
func (s *Service) MarkAllRead(ctx context.Context, account string) error {
	if err := s.repo.MarkAllRead(ctx, account); err != nil {
		return fmt.Errorf("mark all notifications read: %w", err)
	}

	s.refreshUnread(ctx, account)

	return nil
}

// Remove deletes a single notification.
func (s *Service) Remove(ctx context.Context, account string, id uuid.UUID) error {
	if err := s.repo.Remove(ctx, account, id); err != nil {
		return fmt.Errorf("remove notification: %w", err)
	}

	s.refreshUnread(ctx, account)

	return nil
}

// Clear deletes every notification for an account.
func (s *Service) Clear(ctx context.Context, account string) error {
	if err := s.repo.Clear(ctx, account); err != nil {
		return fmt.Errorf("clear notifications: %w", err)
	}

	s.refreshUnread(ctx, account)

	return nil
}

// UnreadCount returns the unread count, served from cache when warm.
func (s *Service) UnreadCount(ctx context.Context, account string) (int, error) {
	cached, err := s.cache.GetWithRetry(ctx, s.strategy, unreadKey(account))
	if err != nil && !errors.Is(err, redis.Nil) {
		zlog.Logger.Error().Err(err).Str("account", account).Msg("failed to get unread count from cache")
	}

	if err == nil {
		if count, convErr := strconv.Atoi(cached); convErr == nil {
			return count, nil
		}
	}

	count, err := s.repo.UnreadCount(ctx, account)
	if err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}

	if err := s.cache.SetWithRetry(ctx, s.strategy, unreadKey(account), strconv.Itoa(count)); err != nil {
		zlog.Logger.Error().Err(err).Str("account", account).Msg("failed to cache unread count")
	}

	return count, nil
}

// Pending returns the small set of unread high-priority notifications the
// background sync channel asks for.
func (s *Service) Pending(ctx context.Context, account string, limit int) ([]model.Notification, error) {
	notifications, err := s.repo.Pending(ctx, account, limit)
	if err != nil {
		return nil, fmt.Errorf("list pending notifications: %w", err)
	}

	return notifications, nil
}

// GetPreferences returns the stored (or default) preferences for an account.
func (s *Service) GetPreferences(ctx context.Context, account string) (model.Preferences, error) {
	prefs, err := s.prefs.Get(ctx, account)
	if err != nil {
		return model.Preferences{}, fmt.Errorf("get preferences: %w", err)
	}

	return prefs, nil
}

// UpdatePreferences merges a partial update and persists it synchronously.
func (s *Service) UpdatePreferences(ctx context.Context, account string, patch model.PreferencesPatch) (model.Preferences, error) {
	prefs, err := s.prefs.Update(ctx, account, patch)
	if err != nil {
		return model.Preferences{}, fmt.Errorf("update preferences: %w", err)
	}

	return prefs, nil
}

// Subscribe registers a push subscription for an account. A denied platform
// permission is terminal; a default (unanswered) permission is rejected the
// same way, since delivery without a grant is impossible.
//
// On success the account's preference row is materialized so the poller
// starts tracking it, and the worker is handed the API base URL it needs for
// periodic background sync.
func (s *Service) Subscribe(ctx context.Context, account, token string, permission model.Permission) error {
	if permission != model.PermissionGranted {
		return ErrPermissionDenied
	}

	if err := s.subs.Save(ctx, account, token); err != nil {
		return fmt.Errorf("save subscription: %w", err)
	}

	if _, err := s.prefs.Update(ctx, account, model.PreferencesPatch{}); err != nil {
		zlog.Logger.Error().Err(err).Str("account", account).Msg("failed to materialize preferences")
	}

	msg := queue.PushMessage{
		Kind:    queue.KindConfigure,
		Account: account,
		Token:   token,
		APIURL:  s.apiURL,
	}

	if err := s.queue.Publish(msg, s.strategy); err != nil {
		zlog.Logger.Error().Err(err).Str("account", account).Msg("failed to publish configure message")
	}

	return nil
}

// Unsubscribe removes the push subscription for an account and tells the
// worker to drop its registration.
func (s *Service) Unsubscribe(ctx context.Context, account string) error {
	if err := s.subs.Delete(ctx, account); err != nil {
		return fmt.Errorf("delete subscription: %w", err)
	}

	msg := queue.PushMessage{
		Kind:    queue.KindRevoke,
		Account: account,
	}

	if err := s.queue.Publish(msg, s.strategy); err != nil {
		zlog.Logger.Error().Err(err).Str("account", account).Msg("failed to publish revoke message")
	}

	return nil
}

// refreshUnread recomputes and caches the unread count after a mutation.
// Cache failures are logged, never propagated.
func (s *Service) refreshUnread(ctx context.Context, account string) {
	count, err := s.repo.UnreadCount(ctx, account)
	if err != nil {
		zlog.Logger.Error().Err(err).Str("account", account).Msg("failed to recount unread notifications")
		return
	}

	if err := s.cache.SetWithRetry(ctx, s.strategy, unreadKey(account), strconv.Itoa(count)); err != nil {
		zlog.Logger.Error().Err(err).Str("account", account).Msg("failed to cache unread count")
	}
}
