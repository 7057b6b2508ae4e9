// Package routes holds the navigation conventions shared by the notifier
// engine and the push worker. The two processes never coordinate at runtime,
// so routing and tagging must agree by compile-time contract only.
package routes

import (
	"encoding/json"

	"github.com/circlepot/notifier/internal/model"
)

// App routes notifications can navigate to.
const (
	Home         = "/"
	Circles      = "/circles"
	Goals        = "/goals"
	Transactions = "/transactions"
	Profile      = "/profile"
	Referrals    = "/referrals"
)

// typeRoutes is the fixed type-to-route table used both for new records and
// for backfilling actions onto legacy persisted records.
var typeRoutes = map[string]model.Action{
	model.TypeCircleCreated:        {Label: "View Circle", Route: Circles},
	model.TypeCircleStarted:        {Label: "View Circle", Route: Circles},
	model.TypeCircleCompleted:      {Label: "View History", Route: Transactions},
	model.TypeCircleCancelled:      {Label: "View Circles", Route: Circles},
	model.TypeCircleMemberJoined:   {Label: "View Circle", Route: Circles},
	model.TypeCircleMemberLeft:     {Label: "View Circle", Route: Circles},
	model.TypeCircleRoundStarted:   {Label: "View Circle", Route: Circles},
	model.TypeCircleRoundCompleted: {Label: "View Circle", Route: Circles},
	model.TypeContributionDue:      {Label: "Contribute", Route: Circles},
	model.TypeContributionReceived: {Label: "View Circle", Route: Circles},
	model.TypePayoutSent:           {Label: "View History", Route: Transactions},
	model.TypePayoutReceived:       {Label: "View History", Route: Transactions},
	model.TypeLatePayment:          {Label: "View Circle", Route: Circles},
	model.TypeGoalCreated:          {Label: "View Goal", Route: Goals},
	model.TypeGoalCompleted:        {Label: "View Goal", Route: Goals},
	model.TypeGoalMilestone50:      {Label: "View Goal", Route: Goals},
	model.TypeGoalMilestone75:      {Label: "View Goal", Route: Goals},
	model.TypeGoalDeadlineReminder: {Label: "View Goal", Route: Goals},
	model.TypeGoalContribution:     {Label: "View Goal", Route: Goals},
	model.TypeDepositReceived:      {Label: "View History", Route: Transactions},
	model.TypeWithdrawalCompleted:  {Label: "View History", Route: Transactions},
	model.TypeYieldEarned:          {Label: "View History", Route: Transactions},
	model.TypeVaultDeposit:         {Label: "View History", Route: Transactions},
	model.TypeInviteAccepted:       {Label: "View Referrals", Route: Referrals},
	model.TypeReferralReward:       {Label: "View Referrals", Route: Referrals},
	model.TypeFriendJoined:         {Label: "View Referrals", Route: Referrals},
	model.TypeReputationIncrease:   {Label: "View Profile", Route: Profile},
	model.TypeReputationDecrease:   {Label: "View Profile", Route: Profile},
	model.TypeCategoryChange:       {Label: "View Profile", Route: Profile},
	model.TypeSystemAnnouncement:   {Label: "Open App", Route: Home},
	model.TypeSecurityAlert:        {Label: "View Profile", Route: Profile},
}

// TypeRoutes returns a copy of the full type-to-route table, keyed by
// notification type. Used by the startup migration that backfills actions
// onto legacy persisted records.
func TypeRoutes() map[string]model.Action {
	table := make(map[string]model.Action, len(typeRoutes))
	for t, action := range typeRoutes {
		table[t] = action
	}
	return table
}

// ActionForType returns the routing action for a notification type, or the
// generic home action for unknown types.
func ActionForType(notificationType string) model.Action {
	if action, ok := typeRoutes[notificationType]; ok {
		return action
	}
	return model.Action{Label: "Open App", Route: Home}
}

// ResolveClickTarget extracts the navigation path from a notification's
// attached action data. It supports both the object shape
// {"label":...,"route":...} and the legacy bare-string form, defaulting to
// the home route for anything unreadable.
func ResolveClickTarget(raw string) string {
	if raw == "" {
		return Home
	}

	var action struct {
		Route  string `json:"route"`
		Action string `json:"action"`
	}
	if err := json.Unmarshal([]byte(raw), &action); err == nil {
		if action.Route != "" {
			return action.Route
		}
		if action.Action != "" {
			return action.Action
		}
	}

	// Legacy records stored the route as a bare JSON string.
	var legacy string
	if err := json.Unmarshal([]byte(raw), &legacy); err == nil && legacy != "" {
		return legacy
	}

	return Home
}
