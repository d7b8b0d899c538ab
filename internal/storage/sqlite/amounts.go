package sqlite

import (
	"context"
	"fmt"

	"github.com/mmynk/settleup/internal/models"
)

// SetPairAmounts upserts the given amounts for a group. A zero amount clears the pair.
func (s *SQLiteStore) SetPairAmounts(ctx context.Context, groupID string, amounts []models.PairAmount) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, a := range amounts {
		if a.Amount == 0 {
			_, err = tx.ExecContext(ctx,
				"DELETE FROM pair_amounts WHERE group_id = ? AND low = ? AND high = ?",
				groupID, a.Low, a.High,
			)
			if err != nil {
				return fmt.Errorf("failed to clear pair amount: %w", err)
			}
			continue
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO pair_amounts (group_id, low, high, amount) VALUES (?, ?, ?, ?)
			 ON CONFLICT (group_id, low, high) DO UPDATE SET amount = excluded.amount`,
			groupID, a.Low, a.High, a.Amount,
		)
		if err != nil {
			return fmt.Errorf("failed to upsert pair amount: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ListPairAmounts returns the recorded amounts of a group ordered by (low, high).
func (s *SQLiteStore) ListPairAmounts(ctx context.Context, groupID string) ([]models.PairAmount, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT low, high, amount FROM pair_amounts WHERE group_id = ? ORDER BY low, high",
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list pair amounts: %w", err)
	}
	defer rows.Close()

	var amounts []models.PairAmount
	for rows.Next() {
		a := models.PairAmount{GroupID: groupID}
		if err := rows.Scan(&a.Low, &a.High, &a.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan pair amount: %w", err)
		}
		amounts = append(amounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate pair amounts: %w", err)
	}
	return amounts, nil
}
