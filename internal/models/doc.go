// Package models defines the persisted domain models for Settleup.
//
// # Models
//
//   - Group: a set of N participants who owe each other money, protected by a passphrase
//   - PairAmount: the signed amount recorded between two participants of a group
//   - Plan: a computed settlement for a group, with its ordered Transfers
//
// Participants are 1-based integer ids within their group. Display names are
// optional and only used for presentation.
//
// # Design Principles
//
//  1. Balances are never stored; they are derived from the pair amounts each time a plan is computed
//  2. Plans are immutable once saved, so the history of settlements is preserved
//  3. Relationships use ID strings instead of pointers
package models
