package pushworker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/wb-go/wbf/zlog"

	"github.com/circlepot/notifier/internal/model"
	"github.com/circlepot/notifier/internal/pushworker/store"
	"github.com/circlepot/notifier/pkg/fcm"
)

const (
	checkPath  = "/api/push/check"
	checkLimit = 10

	// reminderGap is the minimum interval between two reminder-class
	// notifications shown to the same account by background sync.
	reminderGap = 4 * time.Hour
)

// reminderTypes are the notification types subject to the per-account
// reminder throttle. Everything else is shown unconditionally.
var reminderTypes = map[string]bool{
	model.TypeContributionDue:      true,
	model.TypeGoalDeadlineReminder: true,
}

type syncStore interface {
	APIURL(ctx context.Context) (string, error)
	ActiveSubscriptions(ctx context.Context) ([]store.WorkerSubscription, error)
	MarkStale(ctx context.Context, account string) error
	ReminderState(ctx context.Context, account string) (store.ReminderState, error)
	SetReminderState(ctx context.Context, state store.ReminderState) error
}

// Syncer periodically asks the notifier for pending high-priority
// notifications and displays them, covering accounts whose device was
// unreachable when the original push went out.
//
// The sync is best effort by design: the notifier may be down, the URL may
// not be configured yet, the network may be gone. Every failure is abandoned
// silently until the next tick.
type Syncer struct {
	store    syncStore
	sender   pushSender
	client   *http.Client
	interval time.Duration
	timeout  time.Duration
	now      func() time.Time
}

func NewSyncer(st syncStore, sender pushSender, interval, timeout time.Duration) *Syncer {
	return &Syncer{
		store:    st,
		sender:   sender,
		client:   &http.Client{Timeout: timeout},
		interval: interval,
		timeout:  timeout,
		now:      time.Now,
	}
}

// Run syncs once per interval until ctx is cancelled.
func (s *Syncer) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.syncOnce(ctx)
		}
	}
}

func (s *Syncer) syncOnce(ctx context.Context) {
	apiURL, err := s.store.APIURL(ctx)
	if err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to read api url")
		return
	}
	if apiURL == "" {
		zlog.Logger.Debug().Msg("api url not configured yet, skipping background sync")
		return
	}

	subs, err := s.store.ActiveSubscriptions(ctx)
	if err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to list subscriptions")
		return
	}

	for _, sub := range subs {
		if ctx.Err() != nil {
			return
		}
		s.syncAccount(ctx, apiURL, sub)
	}
}

func (s *Syncer) syncAccount(ctx context.Context, apiURL string, sub store.WorkerSubscription) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	pending, err := s.fetchPending(ctx, apiURL, sub.Account)
	if err != nil {
		zlog.Logger.Debug().Err(err).Str("account", sub.Account).Msg("background sync check failed")
		return
	}

	for _, n := range pending {
		if reminderTypes[n.Type] && !s.reminderAllowed(ctx, sub.Account) {
			continue
		}

		if err := s.display(ctx, sub, n); err != nil {
			zlog.Logger.Debug().Err(err).Str("account", sub.Account).Msg("background display failed")
			return
		}

		if reminderTypes[n.Type] {
			s.recordReminder(ctx, sub.Account)
		}
	}
}

func (s *Syncer) fetchPending(ctx context.Context, apiURL, account string) ([]model.Notification, error) {
	checkURL := fmt.Sprintf("%s%s?account=%s&limit=%d",
		apiURL, checkPath, url.QueryEscape(account), checkLimit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, checkURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building check request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("checking pending notifications: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("check returned status %d", resp.StatusCode)
	}

	var body struct {
		Data []model.Notification `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding check response: %w", err)
	}

	return body.Data, nil
}

func (s *Syncer) display(ctx context.Context, sub store.WorkerSubscription, n model.Notification) error {
	notification := fcm.Notification{
		Title: n.Title,
		Body:  n.Message,
		Tag:   n.Type,
		Data:  n.Data,
	}
	if notification.Title == "" {
		notification.Title = fallbackTitle
	}
	if notification.Tag == "" {
		notification.Tag = fallbackTag
	}
	if n.Action != nil {
		notification.Link = n.Action.Route
	}

	if err := s.sender.Send(ctx, sub.Token, notification); err != nil {
		if errors.Is(err, fcm.ErrTokenInvalid) {
			zlog.Logger.Warn().Str("account", sub.Account).Msg("push token invalidated during background sync")
			return s.store.MarkStale(ctx, sub.Account)
		}

		return err
	}

	return nil
}

// reminderAllowed applies the per-account throttle: reminders can be disabled
// outright, snoozed until a point in time, or rate limited by the last time
// one was shown.
func (s *Syncer) reminderAllowed(ctx context.Context, account string) bool {
	state, err := s.store.ReminderState(ctx, account)
	if err != nil {
		zlog.Logger.Error().Err(err).Str("account", account).Msg("failed to read reminder state")
		return false
	}

	now := s.now()
	if !state.Enabled {
		return false
	}
	if now.Before(state.SnoozeUntil) {
		return false
	}
	if !state.LastShown.IsZero() && now.Sub(state.LastShown) < reminderGap {
		return false
	}

	return true
}

func (s *Syncer) recordReminder(ctx context.Context, account string) {
	state, err := s.store.ReminderState(ctx, account)
	if err != nil {
		zlog.Logger.Error().Err(err).Str("account", account).Msg("failed to read reminder state")
		return
	}

	state.LastShown = s.now()
	if err := s.store.SetReminderState(ctx, state); err != nil {
		zlog.Logger.Error().Err(err).Str("account", account).Msg("failed to record reminder state")
	}
}
