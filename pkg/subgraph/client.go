// Package subgraph provides a read-only client for the Circlepot subgraph,
// the GraphQL index over on-chain event logs that the notifier treats as its
// event source.
package subgraph

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/circlepot/notifier/internal/model"
)

// Client represents a subgraph client used to fetch account snapshots.
type Client struct {
	url    string       // subgraph query endpoint
	client *http.Client // HTTP client used to make requests
}

// NewClient creates a new subgraph Client for the given query endpoint.
func NewClient(url string, timeout time.Duration) *Client {
	return &Client{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

const snapshotQuery = `
query AccountSnapshot($account: String!) {
  circles(where: {members_contains: [$account]}) {
    id name isStarted isCompleted currentRound
    contributions(where: {member: $account}) { round }
  }
  goals(where: {owner: $account}) {
    id name isActive currentAmount goalAmount deadline
  }
  transactions(where: {member: $account}, orderBy: timestamp, orderDirection: desc, first: 100) {
    id type amount timestamp
    circle { name }
    member { username }
  }
  reputationEvents(where: {account: $account}) { id type increase points }
  categoryChanges(where: {account: $account}) { id oldCategory newCategory }
  referralRewards(where: {referrer: $account}) {
    id rewardAmount
    referee { username }
  }
}`

type graphqlRequest struct {
	Query     string            `json:"query"`
	Variables map[string]string `json:"variables"`
}

type graphqlError struct {
	Message string `json:"message"`
}

type snapshotResponse struct {
	Data struct {
		Circles []struct {
			ID            string `json:"id"`
			Name          string `json:"name"`
			IsStarted     bool   `json:"isStarted"`
			IsCompleted   bool   `json:"isCompleted"`
			CurrentRound  int    `json:"currentRound"`
			Contributions []struct {
				Round int `json:"round"`
			} `json:"contributions"`
		} `json:"circles"`
		Goals []struct {
			ID            string  `json:"id"`
			Name          string  `json:"name"`
			IsActive      bool    `json:"isActive"`
			CurrentAmount float64 `json:"currentAmount"`
			GoalAmount    float64 `json:"goalAmount"`
			Deadline      string  `json:"deadline"`
		} `json:"goals"`
		Transactions []struct {
			ID        string `json:"id"`
			Type      string `json:"type"`
			Amount    string `json:"amount"`
			Timestamp string `json:"timestamp"`
			Circle    struct {
				Name string `json:"name"`
			} `json:"circle"`
			Member struct {
				Username string `json:"username"`
			} `json:"member"`
		} `json:"transactions"`
		ReputationEvents []struct {
			ID       string `json:"id"`
			Type     string `json:"type"`
			Increase bool   `json:"increase"`
			Points   int    `json:"points"`
		} `json:"reputationEvents"`
		CategoryChanges []struct {
			ID          string `json:"id"`
			OldCategory int    `json:"oldCategory"`
			NewCategory int    `json:"newCategory"`
		} `json:"categoryChanges"`
		ReferralRewards []struct {
			ID           string `json:"id"`
			RewardAmount string `json:"rewardAmount"`
			Referee      struct {
				Username string `json:"username"`
			} `json:"referee"`
		} `json:"referralRewards"`
	} `json:"data"`
	Errors []graphqlError `json:"errors"`
}

// Snapshot fetches the current domain-event snapshot for one account.
func (c *Client) Snapshot(ctx context.Context, account string) (model.Snapshot, error) {
	reqBody := graphqlRequest{
		Query:     snapshotQuery,
		Variables: map[string]string{"account": account},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewBuffer(body))
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return model.Snapshot{}, fmt.Errorf("subgraph API error: %s", resp.Status)
	}

	var decoded snapshotResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return model.Snapshot{}, fmt.Errorf("decode response: %w", err)
	}

	if len(decoded.Errors) > 0 {
		return model.Snapshot{}, fmt.Errorf("subgraph query error: %s", decoded.Errors[0].Message)
	}

	return c.toSnapshot(account, decoded), nil
}

func (c *Client) toSnapshot(account string, resp snapshotResponse) model.Snapshot {
	snap := model.Snapshot{Account: account}

	for _, circle := range resp.Data.Circles {
		contributed := false
		for _, contribution := range circle.Contributions {
			if contribution.Round == circle.CurrentRound {
				contributed = true
				break
			}
		}

		snap.Circles = append(snap.Circles, model.CircleEvent{
			ID:             circle.ID,
			Name:           circle.Name,
			IsStarted:      circle.IsStarted,
			IsCompleted:    circle.IsCompleted,
			CurrentRound:   circle.CurrentRound,
			HasContributed: contributed,
		})
	}

	for _, goal := range resp.Data.Goals {
		event := model.GoalEvent{
			ID:            goal.ID,
			Name:          goal.Name,
			IsActive:      goal.IsActive,
			CurrentAmount: goal.CurrentAmount,
			GoalAmount:    goal.GoalAmount,
		}
		if deadline, ok := parseUnix(goal.Deadline); ok {
			event.Deadline = &deadline
		}
		snap.Goals = append(snap.Goals, event)
	}

	for _, tx := range resp.Data.Transactions {
		timestamp, ok := parseUnix(tx.Timestamp)
		if !ok {
			// Without a timestamp we cannot place the transaction in the
			// 24-hour window; skip it rather than guess.
			continue
		}

		snap.Transactions = append(snap.Transactions, model.TransactionEvent{
			ID:         tx.ID,
			Type:       tx.Type,
			Amount:     tx.Amount,
			CircleName: tx.Circle.Name,
			Member:     tx.Member.Username,
			Timestamp:  timestamp,
		})
	}

	for _, ev := range resp.Data.ReputationEvents {
		snap.Reputation = append(snap.Reputation, model.ReputationEvent(ev))
	}

	for _, ev := range resp.Data.CategoryChanges {
		snap.CategoryChanges = append(snap.CategoryChanges, model.CategoryChangeEvent(ev))
	}

	for _, reward := range resp.Data.ReferralRewards {
		snap.ReferralRewards = append(snap.ReferralRewards, model.ReferralRewardEvent{
			ID:              reward.ID,
			RewardAmount:    reward.RewardAmount,
			RefereeUsername: reward.Referee.Username,
		})
	}

	return snap
}

// parseUnix parses the subgraph's string-encoded unix-seconds timestamps.
func parseUnix(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}

	seconds, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}, false
	}

	return time.Unix(seconds, 0), true
}
