package mapper

import (
	"context"
	"fmt"

	"github.com/circlepot/notifier/internal/model"
)

func (m *Mapper) processReputation(ctx context.Context, account string, prefs model.Preferences, events []model.ReputationEvent) {
	for _, ev := range events {
		key := ReputationKey(ev.Type, ev.ID)

		if ev.Increase {
			m.emit(ctx, prefs, key, model.Notification{
				Account:  account,
				Type:     model.TypeReputationIncrease,
				Title:    "Reputation Increased",
				Message:  fmt.Sprintf("Your reputation went up by %d points.", ev.Points),
				Priority: model.PriorityLow,
				Data:     map[string]string{"eventId": ev.ID},
			})
			continue
		}

		m.emit(ctx, prefs, key, model.Notification{
			Account:  account,
			Type:     model.TypeReputationDecrease,
			Title:    "Reputation Decreased",
			Message:  fmt.Sprintf("Your reputation dropped by %d points. On-time contributions restore it.", ev.Points),
			Priority: model.PriorityMedium,
			Data:     map[string]string{"eventId": ev.ID},
		})
	}
}
