package mapper

import (
	"context"
	"fmt"

	"github.com/circlepot/notifier/internal/model"
)

// categoryNames is the fixed member-category ladder, indexed by the numeric
// category reported by the indexer.
var categoryNames = []string{"Newcomer", "Bronze", "Silver", "Gold", "Platinum"}

// categorySentinel labels indices outside the known ladder.
const categorySentinel = "Member"

func categoryName(index int) string {
	if index < 0 || index >= len(categoryNames) {
		return categorySentinel
	}
	return categoryNames[index]
}

func (m *Mapper) processCategoryChanges(ctx context.Context, account string, prefs model.Preferences, events []model.CategoryChangeEvent) {
	for _, ev := range events {
		name := categoryName(ev.NewCategory)
		key := CategoryChangeKey(ev.ID)

		if ev.NewCategory > ev.OldCategory {
			m.emit(ctx, prefs, key, model.Notification{
				Account:  account,
				Type:     model.TypeCategoryChange,
				Title:    "Category Promotion",
				Message:  fmt.Sprintf("Congratulations! You've been promoted to %s.", name),
				Priority: model.PriorityHigh,
				Data:     map[string]string{"eventId": ev.ID},
			})
			continue
		}

		m.emit(ctx, prefs, key, model.Notification{
			Account:  account,
			Type:     model.TypeCategoryChange,
			Title:    "Category Changed",
			Message:  fmt.Sprintf("Your member category is now %s.", name),
			Priority: model.PriorityMedium,
			Data:     map[string]string{"eventId": ev.ID},
		})
	}
}
