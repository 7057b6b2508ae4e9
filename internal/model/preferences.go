package model

// Preferences gate notification creation and delivery for one account.
//
// InAppEnabled and PushEnabled are master switches: when a master switch is
// off, no notification of that channel is created or delivered regardless of
// per-category flags. Categories maps a notification type (plus a few
// reminder-granularity flags that currently have no schedule behind them) to
// an enabled flag; keys absent from the map fall back to their default.
type Preferences struct {
	InAppEnabled bool            `json:"inAppEnabled"`
	PushEnabled  bool            `json:"pushEnabled"`
	Categories   map[string]bool `json:"categories"`
}

// Reminder-granularity preference flags. The labels exist in the settings
// surface, but only the 7-day goal reminder has a schedule behind it; the
// late-payment 24h/1h reminders are a documented gap.
const (
	PrefLatePaymentReminder24h = "late_payment_reminder_24h"
	PrefLatePaymentReminder1h  = "late_payment_reminder_1h"
)

// disabledByDefault lists the categories that ship disabled: milestone-only
// low-priority items and "invite accepted".
var disabledByDefault = map[string]bool{
	TypeGoalMilestone50: true,
	TypeGoalMilestone75: true,
	TypeInviteAccepted:  true,
}

// categoryKeys is the full set of known per-category flags.
var categoryKeys = []string{
	TypeCircleCreated, TypeCircleStarted, TypeCircleCompleted, TypeCircleCancelled,
	TypeCircleMemberJoined, TypeCircleMemberLeft, TypeCircleRoundStarted,
	TypeCircleRoundCompleted, TypeContributionDue, TypeContributionReceived,
	TypePayoutSent, TypePayoutReceived, TypeLatePayment,
	TypeGoalCreated, TypeGoalCompleted, TypeGoalMilestone50, TypeGoalMilestone75,
	TypeGoalDeadlineReminder, TypeGoalContribution,
	TypeDepositReceived, TypeWithdrawalCompleted, TypeYieldEarned, TypeVaultDeposit,
	TypeInviteAccepted, TypeReferralReward, TypeFriendJoined,
	TypeReputationIncrease, TypeReputationDecrease, TypeCategoryChange,
	TypeSystemAnnouncement, TypeSecurityAlert,
	PrefLatePaymentReminder24h, PrefLatePaymentReminder1h,
}

// DefaultPreferences returns the documented defaults: both channels on and
// every category enabled except the disabledByDefault set.
func DefaultPreferences() Preferences {
	categories := make(map[string]bool, len(categoryKeys))
	for _, key := range categoryKeys {
		categories[key] = !disabledByDefault[key]
	}

	return Preferences{
		InAppEnabled: true,
		PushEnabled:  true,
		Categories:   categories,
	}
}

// CategoryEnabled reports whether a category flag is on, falling back to the
// category's default when the flag was never persisted.
func (p Preferences) CategoryEnabled(key string) bool {
	if enabled, ok := p.Categories[key]; ok {
		return enabled
	}
	return !disabledByDefault[key]
}

// Merge applies a partial update on top of p, leaving unset fields untouched.
// Merge semantics, not replace: categories absent from the patch survive.
func (p Preferences) Merge(patch PreferencesPatch) Preferences {
	merged := Preferences{
		InAppEnabled: p.InAppEnabled,
		PushEnabled:  p.PushEnabled,
		Categories:   make(map[string]bool, len(p.Categories)),
	}
	for key, enabled := range p.Categories {
		merged.Categories[key] = enabled
	}

	if patch.InAppEnabled != nil {
		merged.InAppEnabled = *patch.InAppEnabled
	}
	if patch.PushEnabled != nil {
		merged.PushEnabled = *patch.PushEnabled
	}
	for key, enabled := range patch.Categories {
		merged.Categories[key] = enabled
	}

	return merged
}

// PreferencesPatch is a partial preferences update.
type PreferencesPatch struct {
	InAppEnabled *bool           `json:"inAppEnabled,omitempty"`
	PushEnabled  *bool           `json:"pushEnabled,omitempty"`
	Categories   map[string]bool `json:"categories,omitempty"`
}
