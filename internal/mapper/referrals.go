package mapper

import (
	"context"
	"fmt"

	"github.com/circlepot/notifier/internal/model"
)

func (m *Mapper) processReferralRewards(ctx context.Context, account string, prefs model.Preferences, events []model.ReferralRewardEvent) {
	for _, ev := range events {
		m.emit(ctx, prefs, ReferralRewardKey(ev.ID), model.Notification{
			Account:  account,
			Type:     model.TypeReferralReward,
			Title:    "Referral Reward",
			Message: fmt.Sprintf(
				"You earned %s because %s joined Circlepot.",
				FormatTokenAmount(ev.RewardAmount),
				nonEmpty(ev.RefereeUsername, memberPlaceholder),
			),
			Priority: model.PriorityMedium,
			Data:     map[string]string{"eventId": ev.ID},
		})
	}
}
