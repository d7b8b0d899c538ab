package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/storage"
)

// CreateGroup persists a new group and its participant names.
func (s *SQLiteStore) CreateGroup(ctx context.Context, group *models.Group) error {
	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	if group.CreatedAt == 0 {
		group.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO groups (id, name, participants, passphrase_hash, created_at) VALUES (?, ?, ?, ?, ?)",
		group.ID, group.Name, group.Participants, group.PassphraseHash, group.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert group: %w", err)
	}

	for i, name := range group.Names {
		if name == "" {
			continue
		}
		_, err = tx.ExecContext(ctx,
			"INSERT INTO participant_names (group_id, participant, name) VALUES (?, ?, ?)",
			group.ID, i+1, name,
		)
		if err != nil {
			return fmt.Errorf("failed to insert participant name: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetGroup retrieves a group by ID, including participant names.
func (s *SQLiteStore) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	group := &models.Group{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, participants, passphrase_hash, created_at FROM groups WHERE id = ?",
		groupID,
	).Scan(&group.ID, &group.Name, &group.Participants, &group.PassphraseHash, &group.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("group %s: %w", groupID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	if err := s.loadNames(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

// ListGroups retrieves all groups, newest first.
func (s *SQLiteStore) ListGroups(ctx context.Context) ([]*models.Group, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, participants, passphrase_hash, created_at FROM groups ORDER BY created_at DESC, id",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}

	var groups []*models.Group
	for rows.Next() {
		group := &models.Group{}
		if err := rows.Scan(&group.ID, &group.Name, &group.Participants, &group.PassphraseHash, &group.CreatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, group)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate groups: %w", err)
	}

	for _, group := range groups {
		if err := s.loadNames(ctx, group); err != nil {
			return nil, err
		}
	}
	return groups, nil
}

// DeleteGroup removes a group. Amounts, names and plans cascade.
func (s *SQLiteStore) DeleteGroup(ctx context.Context, groupID string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM groups WHERE id = ?", groupID)
	if err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("group %s: %w", groupID, storage.ErrNotFound)
	}
	return nil
}

func (s *SQLiteStore) loadNames(ctx context.Context, group *models.Group) error {
	rows, err := s.db.QueryContext(ctx,
		"SELECT participant, name FROM participant_names WHERE group_id = ? ORDER BY participant",
		group.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get participant names: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var participant int
		var name string
		if err := rows.Scan(&participant, &name); err != nil {
			return fmt.Errorf("failed to scan participant name: %w", err)
		}
		if participant < 1 || participant > group.Participants {
			continue
		}
		for len(group.Names) < participant {
			group.Names = append(group.Names, "")
		}
		group.Names[participant-1] = name
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate participant names: %w", err)
	}
	return nil
}
