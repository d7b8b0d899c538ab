package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/settleup/internal/auth"
	"github.com/mmynk/settleup/internal/middleware"
	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/settlement"
	"github.com/mmynk/settleup/internal/storage"
)

var _ GroupServiceHandler = (*GroupService)(nil)

// GroupService manages persisted groups, their pair amounts and settlement plans.
type GroupService struct {
	store   storage.Store
	jwt     *auth.JWTManager
	metrics *middleware.Metrics
}

// NewGroupService creates a new GroupService. metrics may be nil.
func NewGroupService(store storage.Store, jwt *auth.JWTManager, metrics *middleware.Metrics) *GroupService {
	return &GroupService{store: store, jwt: jwt, metrics: metrics}
}

// requireGroupAccess checks that the caller holds a token for groupID.
func requireGroupAccess(ctx context.Context, groupID string) error {
	tokenGroup := middleware.GetGroupID(ctx)
	if tokenGroup == "" {
		return connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}
	if tokenGroup != groupID {
		return connect.NewError(connect.CodePermissionDenied, fmt.Errorf("token does not grant access to group %s", groupID))
	}
	return nil
}

// storeError maps storage errors to Connect codes.
func storeError(err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return connect.NewError(connect.CodeNotFound, err)
	}
	return connect.NewError(connect.CodeInternal, err)
}

func toGroup(g *models.Group) *Group {
	return &Group{
		ID:           g.ID,
		Name:         g.Name,
		Participants: g.Participants,
		Names:        g.Names,
		CreatedAt:    g.CreatedAt,
	}
}

func toPlan(p *models.Plan, g *models.Group) *Plan {
	out := &Plan{ID: p.ID, GroupID: p.GroupID, CreatedAt: p.CreatedAt, Transfers: make([]Transfer, len(p.Transfers))}
	for i, t := range p.Transfers {
		out.Transfers[i] = Transfer{
			From:     t.From,
			To:       t.To,
			Amount:   t.Amount,
			FromName: g.ParticipantName(t.From),
			ToName:   g.ParticipantName(t.To),
		}
	}
	return out
}

func toPairAmounts(amounts []models.PairAmount) []PairAmount {
	out := make([]PairAmount, len(amounts))
	for i, a := range amounts {
		out[i] = PairAmount{Low: a.Low, High: a.High, Amount: a.Amount}
	}
	return out
}

// CreateGroup creates a new group and returns a token for it.
func (s *GroupService) CreateGroup(ctx context.Context, req *connect.Request[CreateGroupRequest]) (*connect.Response[CreateGroupResponse], error) {
	slog.Info("CreateGroup request received",
		"name", req.Msg.Name,
		"participants", req.Msg.Participants,
	)

	if req.Msg.Name == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("name required"))
	}
	if req.Msg.Participants < 1 || req.Msg.Participants > MaxParticipants {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("participants must be between 1 and %d", MaxParticipants))
	}
	if len(req.Msg.Names) > req.Msg.Participants {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("more names than participants"))
	}

	hash, err := auth.HashPassphrase(req.Msg.Passphrase)
	if err != nil {
		if errors.Is(err, auth.ErrWeakPassphrase) {
			return nil, connect.NewError(connect.CodeInvalidArgument, err)
		}
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	group := &models.Group{
		Name:           req.Msg.Name,
		Participants:   req.Msg.Participants,
		Names:          req.Msg.Names,
		PassphraseHash: hash,
	}
	if err := s.store.CreateGroup(ctx, group); err != nil {
		slog.Error("CreateGroup failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	token, err := s.jwt.Generate(group.ID)
	if err != nil {
		slog.Error("CreateGroup token generation failed", "group_id", group.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	slog.Info("Group created", "group_id", group.ID)

	return connect.NewResponse(&CreateGroupResponse{
		Group: toGroup(group),
		Token: token,
	}), nil
}

// IssueToken exchanges a group passphrase for a token.
func (s *GroupService) IssueToken(ctx context.Context, req *connect.Request[IssueTokenRequest]) (*connect.Response[IssueTokenResponse], error) {
	slog.Info("IssueToken request received", "group_id", req.Msg.GroupID)

	group, err := s.store.GetGroup(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, storeError(err)
	}

	if err := auth.CheckPassphrase(group.PassphraseHash, req.Msg.Passphrase); err != nil {
		slog.Warn("IssueToken rejected", "group_id", group.ID)
		if errors.Is(err, auth.ErrInvalidPassphrase) {
			return nil, connect.NewError(connect.CodeUnauthenticated, err)
		}
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	token, err := s.jwt.Generate(group.ID)
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	return connect.NewResponse(&IssueTokenResponse{Token: token}), nil
}

// GetGroup retrieves a group with its recorded amounts.
func (s *GroupService) GetGroup(ctx context.Context, req *connect.Request[GetGroupRequest]) (*connect.Response[GetGroupResponse], error) {
	slog.Info("GetGroup request received", "group_id", req.Msg.GroupID)

	group, err := s.store.GetGroup(ctx, req.Msg.GroupID)
	if err != nil {
		slog.Error("GetGroup failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, storeError(err)
	}

	amounts, err := s.store.ListPairAmounts(ctx, group.ID)
	if err != nil {
		slog.Error("GetGroup failed - could not list amounts", "group_id", group.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	return connect.NewResponse(&GetGroupResponse{
		Group:   toGroup(group),
		Amounts: toPairAmounts(amounts),
	}), nil
}

// ListGroups retrieves all groups.
func (s *GroupService) ListGroups(ctx context.Context, req *connect.Request[ListGroupsRequest]) (*connect.Response[ListGroupsResponse], error) {
	slog.Info("ListGroups request received")

	groups, err := s.store.ListGroups(ctx)
	if err != nil {
		slog.Error("ListGroups failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	out := make([]*Group, len(groups))
	for i, g := range groups {
		out[i] = toGroup(g)
	}

	slog.Info("ListGroups successful", "count", len(groups))

	return connect.NewResponse(&ListGroupsResponse{Groups: out}), nil
}

// SetAmounts records signed pair amounts for a group. A zero amount clears a pair.
func (s *GroupService) SetAmounts(ctx context.Context, req *connect.Request[SetAmountsRequest]) (*connect.Response[SetAmountsResponse], error) {
	groupID := req.Msg.GroupID
	slog.Info("SetAmounts request received", "group_id", groupID, "amounts_count", len(req.Msg.Amounts))

	if err := requireGroupAccess(ctx, groupID); err != nil {
		return nil, err
	}

	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, storeError(err)
	}

	pairs := make([]settlement.Pair, len(req.Msg.Amounts))
	amounts := make([]models.PairAmount, len(req.Msg.Amounts))
	for i, a := range req.Msg.Amounts {
		pairs[i] = settlement.Pair{Low: a.Low, High: a.High, Amount: a.Amount}
		amounts[i] = models.PairAmount{GroupID: groupID, Low: a.Low, High: a.High, Amount: a.Amount}
	}
	// Rejects out-of-range, reversed and repeated pairs before anything is written.
	if _, err := settlement.EdgesFromPairs(group.Participants, pairs); err != nil {
		return nil, settleError(err)
	}

	if err := s.store.SetPairAmounts(ctx, groupID, amounts); err != nil {
		slog.Error("SetAmounts failed", "group_id", groupID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	stored, err := s.store.ListPairAmounts(ctx, groupID)
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	slog.Info("Amounts updated", "group_id", groupID, "pairs", len(stored))

	return connect.NewResponse(&SetAmountsResponse{Amounts: toPairAmounts(stored)}), nil
}

// SolveGroup settles the group's current amounts and stores the resulting plan.
func (s *GroupService) SolveGroup(ctx context.Context, req *connect.Request[SolveGroupRequest]) (*connect.Response[SolveGroupResponse], error) {
	groupID := req.Msg.GroupID
	slog.Info("SolveGroup request received", "group_id", groupID)

	if err := requireGroupAccess(ctx, groupID); err != nil {
		return nil, err
	}

	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, storeError(err)
	}

	amounts, err := s.store.ListPairAmounts(ctx, groupID)
	if err != nil {
		slog.Error("SolveGroup failed - could not list amounts", "group_id", groupID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	pairs := make([]settlement.Pair, len(amounts))
	for i, a := range amounts {
		pairs[i] = settlement.Pair{Low: a.Low, High: a.High, Amount: a.Amount}
	}
	edges, err := settlement.EdgesFromPairs(group.Participants, pairs)
	if err != nil {
		slog.Error("SolveGroup failed - stored amounts are inconsistent", "group_id", groupID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	txs, err := settlement.Settle(group.Participants, edges)
	if err != nil {
		slog.Error("SolveGroup failed - settlement error", "group_id", groupID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	s.metrics.ObserveSettlement(len(txs))

	plan := &models.Plan{GroupID: groupID, Transfers: make([]models.Transfer, len(txs))}
	for i, tx := range txs {
		plan.Transfers[i] = models.Transfer{From: tx.From, To: tx.To, Amount: tx.Amount}
	}
	if err := s.store.SavePlan(ctx, plan); err != nil {
		slog.Error("SolveGroup failed - could not save plan", "group_id", groupID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	slog.Info("SolveGroup successful",
		"group_id", groupID,
		"plan_id", plan.ID,
		"edges", len(edges),
		"transfers", len(txs),
	)

	return connect.NewResponse(&SolveGroupResponse{
		Plan:     toPlan(plan, group),
		Balances: toBalances(settlement.Balances(group.Participants, edges), group.ParticipantName),
	}), nil
}

// ListPlans returns the stored plans of a group, newest first.
func (s *GroupService) ListPlans(ctx context.Context, req *connect.Request[ListPlansRequest]) (*connect.Response[ListPlansResponse], error) {
	slog.Info("ListPlans request received", "group_id", req.Msg.GroupID)

	group, err := s.store.GetGroup(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, storeError(err)
	}

	plans, err := s.store.ListPlans(ctx, group.ID)
	if err != nil {
		slog.Error("ListPlans failed", "group_id", group.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	out := make([]*Plan, len(plans))
	for i, p := range plans {
		out[i] = toPlan(p, group)
	}

	return connect.NewResponse(&ListPlansResponse{Plans: out}), nil
}

// DeleteGroup removes a group by ID.
func (s *GroupService) DeleteGroup(ctx context.Context, req *connect.Request[DeleteGroupRequest]) (*connect.Response[DeleteGroupResponse], error) {
	slog.Info("DeleteGroup request received", "group_id", req.Msg.GroupID)

	if err := requireGroupAccess(ctx, req.Msg.GroupID); err != nil {
		return nil, err
	}

	if err := s.store.DeleteGroup(ctx, req.Msg.GroupID); err != nil {
		slog.Error("DeleteGroup failed", "error", err)
		return nil, storeError(err)
	}

	slog.Info("Group deleted", "group_id", req.Msg.GroupID)

	return connect.NewResponse(&DeleteGroupResponse{}), nil
}
