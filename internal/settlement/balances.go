package settlement

import "math"

// Validate checks that every edge references participants in [1, n], is not a
// self loop, carries a positive amount, and that no two edges share the same
// unordered pair. It also rejects inputs where what a participant owes or is
// owed in total does not fit in an int64, which keeps every balance exact.
// It returns a *MalformedEdgeError for the first offender.
func Validate(n int, edges []DebtEdge) error {
	seen := make(map[pairKey]int, len(edges))
	// Totals are non-negative, so in-out of two in-range totals cannot overflow.
	owed := make(map[Participant]int64)
	owes := make(map[Participant]int64)
	for i, e := range edges {
		bad := func(reason string) error {
			return &MalformedEdgeError{Index: i, From: e.From, To: e.To, Amount: e.Amount, Reason: reason}
		}
		switch {
		case e.From < 1 || e.From > n || e.To < 1 || e.To > n:
			return bad("participant out of range")
		case e.From == e.To:
			return bad("self loop")
		case e.Amount <= 0:
			return bad("amount must be positive")
		}
		k := keyOf(e.From, e.To)
		if _, dup := seen[k]; dup {
			return bad("duplicate participant pair")
		}
		seen[k] = i

		if !addTotal(owed, e.To, e.Amount) || !addTotal(owes, e.From, e.Amount) {
			return bad("balance overflows")
		}
	}
	return nil
}

func addTotal(totals map[Participant]int64, p Participant, amount int64) bool {
	if totals[p] > math.MaxInt64-amount {
		return false
	}
	totals[p] += amount
	return true
}

// Balances returns the net balance of each participant: what they are owed
// minus what they owe. Index p-1 holds participant p. The values always sum to
// zero. Edges must already be valid for n.
func Balances(n int, edges []DebtEdge) []int64 {
	if n < 0 {
		n = 0
	}
	balances := make([]int64, n)
	for _, e := range edges {
		balances[e.To-1] += e.Amount
		balances[e.From-1] -= e.Amount
	}
	return balances
}

// Apply replays payments onto a copy of balances. Paying reduces what the
// creditor is owed and what the debtor owes, so a complete settlement leaves
// every entry at zero.
func Apply(balances []int64, txs []Transaction) []int64 {
	out := make([]int64, len(balances))
	copy(out, balances)
	for _, tx := range txs {
		out[tx.From-1] += tx.Amount
		out[tx.To-1] -= tx.Amount
	}
	return out
}
