package service

// Debt is a directed debt: From owes Amount to To.
type Debt struct {
	From   int   `json:"from"`
	To     int   `json:"to"`
	Amount int64 `json:"amount"`
}

// Transfer is a settling payment from From to To.
type Transfer struct {
	From     int    `json:"from"`
	To       int    `json:"to"`
	Amount   int64  `json:"amount"`
	FromName string `json:"from_name,omitempty"`
	ToName   string `json:"to_name,omitempty"`
}

// Balance is the net position of one participant. Positive means owed money.
type Balance struct {
	Participant int    `json:"participant"`
	Name        string `json:"name,omitempty"`
	Amount      int64  `json:"amount"`
}

// PairAmount is a signed amount between Low and High (Low < High).
// Positive means Low owes High.
type PairAmount struct {
	Low    int   `json:"low"`
	High   int   `json:"high"`
	Amount int64 `json:"amount"`
}

type Group struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Participants int      `json:"participants"`
	Names        []string `json:"names,omitempty"`
	CreatedAt    int64    `json:"created_at"`
}

type Plan struct {
	ID        string     `json:"id"`
	GroupID   string     `json:"group_id"`
	Transfers []Transfer `json:"transfers"`
	CreatedAt int64      `json:"created_at"`
}

type SettleRequest struct {
	Participants int    `json:"participants"`
	Debts        []Debt `json:"debts"`
}

type SettleResponse struct {
	Transfers []Transfer `json:"transfers"`
	Balances  []Balance  `json:"balances"`
}

type CreateGroupRequest struct {
	Name         string   `json:"name"`
	Participants int      `json:"participants"`
	Names        []string `json:"names,omitempty"`
	Passphrase   string   `json:"passphrase"`
}

type CreateGroupResponse struct {
	Group *Group `json:"group"`
	Token string `json:"token"`
}

type IssueTokenRequest struct {
	GroupID    string `json:"group_id"`
	Passphrase string `json:"passphrase"`
}

type IssueTokenResponse struct {
	Token string `json:"token"`
}

type GetGroupRequest struct {
	GroupID string `json:"group_id"`
}

type GetGroupResponse struct {
	Group   *Group       `json:"group"`
	Amounts []PairAmount `json:"amounts"`
}

type ListGroupsRequest struct{}

type ListGroupsResponse struct {
	Groups []*Group `json:"groups"`
}

type SetAmountsRequest struct {
	GroupID string       `json:"group_id"`
	Amounts []PairAmount `json:"amounts"`
}

type SetAmountsResponse struct {
	Amounts []PairAmount `json:"amounts"`
}

type SolveGroupRequest struct {
	GroupID string `json:"group_id"`
}

type SolveGroupResponse struct {
	Plan     *Plan     `json:"plan"`
	Balances []Balance `json:"balances"`
}

type ListPlansRequest struct {
	GroupID string `json:"group_id"`
}

type ListPlansResponse struct {
	Plans []*Plan `json:"plans"`
}

type DeleteGroupRequest struct {
	GroupID string `json:"group_id"`
}

type DeleteGroupResponse struct{}

func (r *IssueTokenRequest) GetGroupID() string { return r.GroupID }
func (r *GetGroupRequest) GetGroupID() string { return r.GroupID }
func (r *SetAmountsRequest) GetGroupID() string { return r.GroupID }
func (r *SolveGroupRequest) GetGroupID() string { return r.GroupID }
func (r *ListPlansRequest) GetGroupID() string { return r.GroupID }
func (r *DeleteGroupRequest) GetGroupID() string { return r.GroupID }

// TransferCount reports how many transfers the settlement produced.
func (r *SettleResponse) TransferCount() int { return len(r.Transfers) }

// TransferCount reports how many transfers the stored plan holds.
func (r *SolveGroupResponse) TransferCount() int {
	if r.Plan == nil {
		return 0
	}
	return len(r.Plan.Transfers)
}
