package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/settleup/internal/models"
)

// SavePlan persists a plan and its transfers in order.
func (s *SQLiteStore) SavePlan(ctx context.Context, plan *models.Plan) error {
	if plan.ID == "" {
		plan.ID = uuid.New().String()
	}
	if plan.CreatedAt == 0 {
		plan.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO plans (id, group_id, created_at) VALUES (?, ?, ?)",
		plan.ID, plan.GroupID, plan.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert plan: %w", err)
	}

	for i, t := range plan.Transfers {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO plan_transfers (plan_id, seq, from_participant, to_participant, amount)
			 VALUES (?, ?, ?, ?, ?)`,
			plan.ID, i, t.From, t.To, t.Amount,
		)
		if err != nil {
			return fmt.Errorf("failed to insert transfer: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ListPlans returns the plans of a group, newest first, with their transfers.
func (s *SQLiteStore) ListPlans(ctx context.Context, groupID string) ([]*models.Plan, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, group_id, created_at FROM plans WHERE group_id = ? ORDER BY created_at DESC, rowid DESC",
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}

	var plans []*models.Plan
	for rows.Next() {
		plan := &models.Plan{}
		if err := rows.Scan(&plan.ID, &plan.GroupID, &plan.CreatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan plan: %w", err)
		}
		plans = append(plans, plan)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate plans: %w", err)
	}

	for _, plan := range plans {
		if err := s.loadTransfers(ctx, plan); err != nil {
			return nil, err
		}
	}
	return plans, nil
}

func (s *SQLiteStore) loadTransfers(ctx context.Context, plan *models.Plan) error {
	rows, err := s.db.QueryContext(ctx,
		"SELECT from_participant, to_participant, amount FROM plan_transfers WHERE plan_id = ? ORDER BY seq",
		plan.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get transfers: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var t models.Transfer
		if err := rows.Scan(&t.From, &t.To, &t.Amount); err != nil {
			return fmt.Errorf("failed to scan transfer: %w", err)
		}
		plan.Transfers = append(plan.Transfers, t)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate transfers: %w", err)
	}
	return nil
}
