package settlement

import "fmt"

// Participant is a 1-based participant id.
type Participant = int

// DebtEdge says From owes Amount to To.
type DebtEdge struct {
	From   Participant
	To     Participant
	Amount int64
}

// Transaction is a payment of Amount from From to To.
type Transaction struct {
	From   Participant
	To     Participant
	Amount int64
}

// MalformedEdgeError reports an input edge or pair the engine refuses to use.
type MalformedEdgeError struct {
	Index  int // position in the input slice
	From   Participant
	To     Participant
	Amount int64
	Reason string
}

func (e *MalformedEdgeError) Error() string {
	return fmt.Sprintf("malformed edge #%d (%d -> %d, %d): %s", e.Index, e.From, e.To, e.Amount, e.Reason)
}

type pairKey struct{ low, high int }

func keyOf(a, b int) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{a, b}
}
