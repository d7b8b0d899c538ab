package models

import "fmt"

// Group is a fixed set of participants whose debts are settled together.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group (e.g., "Lisbon Trip").
	Name string

	// Participants is the number of people in the group. Ids run from 1 to Participants.
	Participants int

	// Names optionally labels participants; Names[i] belongs to participant i+1.
	Names []string

	// PassphraseHash is the bcrypt hash of the passphrase guarding writes.
	PassphraseHash string

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}

// ParticipantName returns the label of participant id, falling back to "Person id".
func (g *Group) ParticipantName(id int) string {
	if id >= 1 && id <= len(g.Names) && g.Names[id-1] != "" {
		return g.Names[id-1]
	}
	return fmt.Sprintf("Person %d", id)
}

// PairAmount is the amount recorded between participants Low and High of a group.
// Positive means Low owes High, negative means High owes Low.
type PairAmount struct {
	GroupID string
	Low     int
	High    int
	Amount  int64
}
