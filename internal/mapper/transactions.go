package mapper

import (
	"context"
	"fmt"
	"time"

	"github.com/circlepot/notifier/internal/model"
)

// txWindow is the sliding window of transactions considered notifiable.
// Older transactions are assumed already processed and silently skipped;
// the boundary is inclusive (txTime >= now-24h).
const txWindow = 24 * time.Hour

const memberPlaceholder = "A member"

func (m *Mapper) processTransactions(ctx context.Context, account string, prefs model.Preferences, txs []model.TransactionEvent) {
	cutoff := m.now().Add(-txWindow)

	for _, tx := range txs {
		if tx.Timestamp.Before(cutoff) {
			continue
		}

		circle := nonEmpty(tx.CircleName, circleNamePlaceholder)
		amount := FormatTokenAmount(tx.Amount)

		switch tx.Type {
		case model.TxPayout:
			m.emit(ctx, prefs, TransactionKey(model.TxPayout, tx.ID), model.Notification{
				Account:  account,
				Type:     model.TypePayoutReceived,
				Title:    "Payout Received",
				Message:  fmt.Sprintf("You received %s from %q.", amount, circle),
				Priority: model.PriorityHigh,
				Data:     map[string]string{"transactionId": tx.ID},
			})
		case model.TxLatePayment:
			m.emit(ctx, prefs, TransactionKey(model.TxLatePayment, tx.ID), model.Notification{
				Account:  account,
				Type:     model.TypeLatePayment,
				Title:    "Late Payment",
				Message:  fmt.Sprintf("%s made a late payment of %s to %q.", nonEmpty(tx.Member, memberPlaceholder), amount, circle),
				Priority: model.PriorityHigh,
				Data:     map[string]string{"transactionId": tx.ID},
			})
		case model.TxContribution:
			m.emit(ctx, prefs, TransactionKey(model.TxContribution, tx.ID), model.Notification{
				Account:  account,
				Type:     model.TypeContributionReceived,
				Title:    "Contribution Received",
				Message:  fmt.Sprintf("%s contributed %s to %q.", nonEmpty(tx.Member, memberPlaceholder), amount, circle),
				Priority: model.PriorityMedium,
				Data:     map[string]string{"transactionId": tx.ID},
			})
		}
	}
}
