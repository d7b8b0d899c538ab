// Package service implements the Connect RPC services of Settleup.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/settleup/internal/middleware"
	"github.com/mmynk/settleup/internal/settlement"
)

// MaxParticipants bounds the size of a single settlement request.
const MaxParticipants = 1000

var _ SettleServiceHandler = (*SettleService)(nil)

// SettleService settles an ad-hoc list of debts without storing anything.
type SettleService struct {
	metrics *middleware.Metrics
}

// NewSettleService creates a SettleService. metrics may be nil.
func NewSettleService(metrics *middleware.Metrics) *SettleService {
	return &SettleService{metrics: metrics}
}

// Settle computes the settling transfers for the given debts.
func (s *SettleService) Settle(ctx context.Context, req *connect.Request[SettleRequest]) (*connect.Response[SettleResponse], error) {
	slog.Info("Settle request received",
		"participants", req.Msg.Participants,
		"debts_count", len(req.Msg.Debts),
	)

	if err := validateParticipants(req.Msg.Participants); err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	edges := make([]settlement.DebtEdge, len(req.Msg.Debts))
	for i, d := range req.Msg.Debts {
		edges[i] = settlement.DebtEdge{From: d.From, To: d.To, Amount: d.Amount}
	}

	txs, err := settlement.Settle(req.Msg.Participants, edges)
	if err != nil {
		slog.Error("Settle failed", "error", err)
		return nil, settleError(err)
	}
	s.metrics.ObserveSettlement(len(txs))

	summary := settlement.Summarize(req.Msg.Participants, edges, txs)
	slog.Info("Settle successful",
		"participants", summary.Participants,
		"edges", summary.Edges,
		"transfers", summary.Transactions,
		"settled_volume", summary.SettledVolume,
	)

	return connect.NewResponse(&SettleResponse{
		Transfers: toTransfers(txs, nil),
		Balances:  toBalances(settlement.Balances(req.Msg.Participants, edges), nil),
	}), nil
}

func validateParticipants(n int) error {
	if n < 0 || n > MaxParticipants {
		return fmt.Errorf("participants must be between 0 and %d", MaxParticipants)
	}
	return nil
}

// settleError maps engine errors to Connect codes. Malformed input is the
// caller's fault; anything else is a defect.
func settleError(err error) error {
	var malformed *settlement.MalformedEdgeError
	if errors.As(err, &malformed) {
		return connect.NewError(connect.CodeInvalidArgument, err)
	}
	return connect.NewError(connect.CodeInternal, err)
}

// namer resolves a participant id to a display name. A nil namer leaves names empty.
type namer func(int) string

func toTransfers(txs []settlement.Transaction, name namer) []Transfer {
	out := make([]Transfer, len(txs))
	for i, tx := range txs {
		out[i] = Transfer{From: tx.From, To: tx.To, Amount: tx.Amount}
		if name != nil {
			out[i].FromName = name(tx.From)
			out[i].ToName = name(tx.To)
		}
	}
	return out
}

func toBalances(balances []int64, name namer) []Balance {
	out := make([]Balance, len(balances))
	for i, b := range balances {
		out[i] = Balance{Participant: i + 1, Amount: b}
		if name != nil {
			out[i].Name = name(i + 1)
		}
	}
	return out
}
