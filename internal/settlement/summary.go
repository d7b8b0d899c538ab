package settlement

// Summary describes how much a settlement simplified the debt graph.
type Summary struct {
	Participants int
	Edges        int
	Transactions int
	// DebtVolume is the sum of all input edge amounts.
	DebtVolume int64
	// SettledVolume is the sum of all transaction amounts, which equals the
	// total positive balance.
	SettledVolume int64
}

// Summarize builds a Summary for a settlement of edges into txs.
func Summarize(n int, edges []DebtEdge, txs []Transaction) Summary {
	s := Summary{Participants: n, Edges: len(edges), Transactions: len(txs)}
	for _, e := range edges {
		s.DebtVolume += e.Amount
	}
	for _, tx := range txs {
		s.SettledVolume += tx.Amount
	}
	return s
}
