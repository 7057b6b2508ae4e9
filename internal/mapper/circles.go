package mapper

import (
	"context"
	"fmt"

	"github.com/circlepot/notifier/internal/model"
)

const circleNamePlaceholder = "Unknown Circle"

func (m *Mapper) processCircles(ctx context.Context, account string, prefs model.Preferences, circles []model.CircleEvent) {
	for _, circle := range circles {
		name := nonEmpty(circle.Name, circleNamePlaceholder)

		if circle.IsStarted {
			m.emit(ctx, prefs, CircleStartedKey(circle.ID), model.Notification{
				Account:  account,
				Type:     model.TypeCircleStarted,
				Title:    "Circle Started",
				Message:  fmt.Sprintf("%q has started! Your first contribution is due.", name),
				Priority: model.PriorityHigh,
				Data:     map[string]string{"circleId": circle.ID},
			})
		}

		// One contribution reminder per round, not per poll.
		if circle.IsStarted && circle.CurrentRound > 0 && !circle.HasContributed {
			m.emit(ctx, prefs, ContributionDueKey(circle.ID, circle.CurrentRound), model.Notification{
				Account:  account,
				Type:     model.TypeContributionDue,
				Title:    "Contribution Due",
				Message:  fmt.Sprintf("Round %d of %q is underway. Time to contribute.", circle.CurrentRound, name),
				Priority: model.PriorityHigh,
				Data:     map[string]string{"circleId": circle.ID},
			})
		}

		if circle.IsCompleted {
			m.emit(ctx, prefs, CircleCompletedKey(circle.ID), model.Notification{
				Account:  account,
				Type:     model.TypeCircleCompleted,
				Title:    "Circle Completed",
				Message:  fmt.Sprintf("%q has finished. Check your payout history.", name),
				Priority: model.PriorityLow,
				Data:     map[string]string{"circleId": circle.ID},
			})
		}
	}
}
