package mapper

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/circlepot/notifier/internal/model"
)

const goalNamePlaceholder = "Unknown Goal"

// goalReminderWindow is the only reminder granularity with a schedule behind
// it. The 24h/1h late-payment reminders exist as preference flags only.
const goalReminderWindow = 7 * 24 * time.Hour

func (m *Mapper) processGoals(ctx context.Context, account string, prefs model.Preferences, goals []model.GoalEvent) {
	now := m.now()

	for _, goal := range goals {
		name := nonEmpty(goal.Name, goalNamePlaceholder)

		if !goal.IsActive && goal.GoalAmount > 0 && goal.CurrentAmount >= goal.GoalAmount {
			m.emit(ctx, prefs, GoalCompletedKey(goal.ID), model.Notification{
				Account:  account,
				Type:     model.TypeGoalCompleted,
				Title:    "Goal Completed",
				Message:  fmt.Sprintf("You reached your target for %q!", name),
				Priority: model.PriorityHigh,
				Data:     map[string]string{"goalId": goal.ID},
			})
		}

		// Single reminder when the deadline enters the 7-day window. The key
		// has no date component, so re-checking daily never repeats it.
		if goal.IsActive && goal.Deadline != nil {
			remaining := goal.Deadline.Sub(now)
			if remaining > 0 && remaining <= goalReminderWindow {
				days := int(math.Ceil(remaining.Hours() / 24))
				m.emit(ctx, prefs, GoalReminderKey(goal.ID), model.Notification{
					Account:  account,
					Type:     model.TypeGoalDeadlineReminder,
					Title:    "Goal Deadline Approaching",
					Message:  fmt.Sprintf("%q ends in %d days. Keep saving!", name, days),
					Priority: model.PriorityMedium,
					Data:     map[string]string{"goalId": goal.ID},
				})
			}
		}
	}
}
