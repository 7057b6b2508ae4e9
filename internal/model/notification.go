package model

import (
	"time"

	"github.com/google/uuid"
)

// Priority ranks how prominently a notification should be surfaced.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Notification types, grouped by family. The string values double as
// per-category preference keys and as push tags.
const (
	// Circle lifecycle.
	TypeCircleCreated        = "circle_created"
	TypeCircleStarted        = "circle_started"
	TypeCircleCompleted      = "circle_completed"
	TypeCircleCancelled      = "circle_cancelled"
	TypeCircleMemberJoined   = "circle_member_joined"
	TypeCircleMemberLeft     = "circle_member_left"
	TypeCircleRoundStarted   = "circle_round_started"
	TypeCircleRoundCompleted = "circle_round_completed"
	TypeContributionDue      = "contribution_due"
	TypeContributionReceived = "contribution_received"
	TypePayoutSent           = "payout_sent"
	TypePayoutReceived       = "payout_received"
	TypeLatePayment          = "late_payment"

	// Goal lifecycle.
	TypeGoalCreated          = "goal_created"
	TypeGoalCompleted        = "goal_completed"
	TypeGoalMilestone50      = "goal_milestone_50"
	TypeGoalMilestone75      = "goal_milestone_75"
	TypeGoalDeadlineReminder = "goal_deadline_reminder"
	TypeGoalContribution     = "goal_contribution"

	// Financial.
	TypeDepositReceived     = "deposit_received"
	TypeWithdrawalCompleted = "withdrawal_completed"
	TypeYieldEarned         = "yield_earned"
	TypeVaultDeposit        = "vault_deposit"

	// Social.
	TypeInviteAccepted = "invite_accepted"
	TypeReferralReward = "referral_reward"
	TypeFriendJoined   = "friend_joined"

	// System.
	TypeReputationIncrease = "reputation_increase"
	TypeReputationDecrease = "reputation_decrease"
	TypeCategoryChange     = "category_change"
	TypeSystemAnnouncement = "system_announcement"
	TypeSecurityAlert      = "security_alert"
)

// Action describes where a notification click should navigate.
type Action struct {
	Label string `json:"label"`
	Route string `json:"route"`
}

// Notification is a single user-facing notification record.
//
// Records are created exactly once per dedup key, mutated only by read
// toggling, and listed newest first.
type Notification struct {
	ID        uuid.UUID         `json:"id"`
	Account   string            `json:"account"`
	Type      string            `json:"type"`
	Title     string            `json:"title"`
	Message   string            `json:"message"`
	Priority  Priority          `json:"priority"`
	Read      bool              `json:"read"`
	Action    *Action           `json:"action,omitempty"`
	Data      map[string]string `json:"data,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

// PushSubscription associates a push delivery token with exactly one account.
// The platform can silently invalidate the token; invalidation is detected by
// a failed send, never pushed to us.
type PushSubscription struct {
	ID        uuid.UUID `json:"id"`
	Account   string    `json:"account"`
	Token     string    `json:"token"`
	CreatedAt time.Time `json:"created_at"`
}

// Permission mirrors the platform notification permission states.
type Permission string

const (
	PermissionDefault Permission = "default"
	PermissionGranted Permission = "granted"
	PermissionDenied  Permission = "denied"
)
