// Package settlement computes net balances from pairwise debts and turns them
// into a short list of payments that clears every balance.
//
// Settle uses a greedy largest-creditor/largest-debtor match: repeatedly take
// whoever is owed the most and whoever owes the most, settle the smaller of
// the two amounts between them, and put the remainder back. The result is at
// most N-1 payments. It is not guaranteed to be the fewest possible payments.
//
// Participants are identified by 1-based integer ids in [1, N]. All functions
// are pure and safe to call concurrently.
package settlement
