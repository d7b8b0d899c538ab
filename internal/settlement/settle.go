package settlement

import (
	"fmt"

	"github.com/mmynk/settleup/internal/pqueue"
)

// Settle computes the payments that clear all debts among n participants.
//
// Participants are loaded in id order. Those with a positive balance go into
// the creditor queue; everyone else, including zero balances, goes into the
// debtor queue. While both queues are non-empty the largest of each is
// matched, the smaller amount is paid, and whoever still has an outstanding
// amount is put back. Ties on amount go to the participant queued first (see
// pqueue.Queue).
//
// An empty edge list, or one where everything nets to zero, yields no
// transactions.
func Settle(n int, edges []DebtEdge) ([]Transaction, error) {
	if err := Validate(n, edges); err != nil {
		return nil, err
	}
	return settleBalances(Balances(n, edges))
}

func settleBalances(balances []int64) ([]Transaction, error) {
	creditors := pqueue.New(len(balances))
	debtors := pqueue.New(len(balances))
	for i, b := range balances {
		p := i + 1
		if b > 0 {
			creditors.Insert(pqueue.Entry{Magnitude: b, Participant: p})
		} else {
			debtors.Insert(pqueue.Entry{Magnitude: -b, Participant: p})
		}
	}

	var txs []Transaction
	for !creditors.IsEmpty() && !debtors.IsEmpty() {
		credit, err := creditors.ExtractMax()
		if err != nil {
			return nil, fmt.Errorf("failed to extract creditor: %w", err)
		}
		debit, err := debtors.ExtractMax()
		if err != nil {
			return nil, fmt.Errorf("failed to extract debtor: %w", err)
		}

		amount := min(credit.Magnitude, debit.Magnitude)
		if amount > 0 {
			txs = append(txs, Transaction{From: debit.Participant, To: credit.Participant, Amount: amount})
		}

		switch {
		case credit.Magnitude > debit.Magnitude:
			creditors.Insert(pqueue.Entry{Magnitude: credit.Magnitude - amount, Participant: credit.Participant})
		case credit.Magnitude < debit.Magnitude:
			debtors.Insert(pqueue.Entry{Magnitude: debit.Magnitude - amount, Participant: debit.Participant})
		}
	}

	return txs, nil
}
