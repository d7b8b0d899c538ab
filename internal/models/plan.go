package models

// Plan is a settlement computed for a group at a point in time.
type Plan struct {
	// ID is the unique identifier for the plan (UUID format).
	ID string

	// GroupID is the group this plan settles.
	GroupID string

	// Transfers are the payments that clear every balance, in the order they were computed.
	Transfers []Transfer

	// CreatedAt is the Unix timestamp when the plan was computed.
	CreatedAt int64
}

// Transfer is one payment of a plan: From pays Amount to To.
type Transfer struct {
	From   int
	To     int
	Amount int64
}
