package model

import "time"

// Domain events as reported by the subgraph indexer. These are snapshots of
// current state, not a log: the same event can be observed any number of
// times, so notification creation must dedup on stable keys.

// CircleEvent is the observed state of one savings circle for an account.
type CircleEvent struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	IsStarted      bool   `json:"isStarted"`
	IsCompleted    bool   `json:"isCompleted"`
	CurrentRound   int    `json:"currentRound"`
	HasContributed bool   `json:"hasContributed"`
}

// GoalEvent is the observed state of one personal savings goal.
type GoalEvent struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	IsActive      bool       `json:"isActive"`
	CurrentAmount float64    `json:"currentAmount"`
	GoalAmount    float64    `json:"goalAmount"`
	Deadline      *time.Time `json:"deadline,omitempty"`
}

// Transaction kinds surfaced as notifications.
const (
	TxPayout       = "payout"
	TxLatePayment  = "late_payment"
	TxContribution = "contribution"
)

// TransactionEvent is one on-chain transaction involving the account.
// Amount is a base-10 integer string scaled by 10^18.
type TransactionEvent struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	Amount     string    `json:"amount"`
	CircleName string    `json:"circleName"`
	Member     string    `json:"member"`
	Timestamp  time.Time `json:"timestamp"`
}

// ReputationEvent is one reputation history entry.
type ReputationEvent struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Increase bool   `json:"increase"`
	Points   int    `json:"points"`
}

// CategoryChangeEvent records a move between member categories,
// identified by numeric index into the category ladder.
type CategoryChangeEvent struct {
	ID          string `json:"id"`
	OldCategory int    `json:"oldCategory"`
	NewCategory int    `json:"newCategory"`
}

// ReferralRewardEvent records a reward earned for a successful referral.
// RewardAmount is a base-10 integer string scaled by 10^18.
type ReferralRewardEvent struct {
	ID              string `json:"id"`
	RewardAmount    string `json:"rewardAmount"`
	RefereeUsername string `json:"refereeUsername"`
}

// Snapshot bundles everything the indexer currently reports for one account.
// The orchestrator treats it as an opaque input recomputed on an external
// cadence; feeding the same snapshot repeatedly must be harmless.
type Snapshot struct {
	Account         string
	Circles         []CircleEvent
	Goals           []GoalEvent
	Transactions    []TransactionEvent
	Reputation      []ReputationEvent
	CategoryChanges []CategoryChangeEvent
	ReferralRewards []ReferralRewardEvent
}
