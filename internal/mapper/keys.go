package mapper

import "fmt"

// Dedup key builders. A key uniquely identifies one notifiable occurrence;
// keys are permanent, so the same occurrence can never re-fire.

func CircleStartedKey(circleID string) string {
	return "circle_started_" + circleID
}

func ContributionDueKey(circleID string, round int) string {
	return fmt.Sprintf("contribution_due_%s_%d", circleID, round)
}

func CircleCompletedKey(circleID string) string {
	return "circle_completed_" + circleID
}

func GoalCompletedKey(goalID string) string {
	return "goal_completed_" + goalID
}

func GoalReminderKey(goalID string) string {
	return "goal_reminder_" + goalID + "_7days"
}

func TransactionKey(typePrefix, txID string) string {
	return typePrefix + "_" + txID
}

func ReputationKey(eventType, id string) string {
	return "rep_" + eventType + "_" + id
}

func CategoryChangeKey(id string) string {
	return "cat_change_" + id
}

func ReferralRewardKey(id string) string {
	return "ref_reward_" + id
}
