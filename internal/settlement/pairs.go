package settlement

import (
	"math"
	"sort"
)

// Pair is a signed amount between two participants with Low < High, as
// entered on the "amount from person Low to person High" form. A positive
// Amount means Low owes High; a negative one means High owes Low.
type Pair struct {
	Low    Participant
	High   Participant
	Amount int64
}

// EdgesFromPairs resolves signed pair amounts into directed debt edges,
// dropping pairs that net to zero. Output is ordered by (Low, High) so the
// result does not depend on input order.
func EdgesFromPairs(n int, pairs []Pair) ([]DebtEdge, error) {
	seen := make(map[pairKey]bool, len(pairs))
	sorted := make([]Pair, 0, len(pairs))
	for i, p := range pairs {
		bad := func(reason string) error {
			return &MalformedEdgeError{Index: i, From: p.Low, To: p.High, Amount: p.Amount, Reason: reason}
		}
		if p.Low < 1 || p.High > n {
			return nil, bad("participant out of range")
		}
		if p.Low >= p.High {
			return nil, bad("pair must satisfy low < high")
		}
		if p.Amount == math.MinInt64 {
			return nil, bad("amount out of range")
		}
		k := keyOf(p.Low, p.High)
		if seen[k] {
			return nil, bad("duplicate participant pair")
		}
		seen[k] = true
		sorted = append(sorted, p)
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Low != sorted[j].Low {
			return sorted[i].Low < sorted[j].Low
		}
		return sorted[i].High < sorted[j].High
	})

	var edges []DebtEdge
	for _, p := range sorted {
		switch {
		case p.Amount > 0:
			edges = append(edges, DebtEdge{From: p.Low, To: p.High, Amount: p.Amount})
		case p.Amount < 0:
			edges = append(edges, DebtEdge{From: p.High, To: p.Low, Amount: -p.Amount})
		}
	}
	return edges, nil
}
