// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/settleup/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the interface for group and settlement storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	// CreateGroup persists a new group.
	// The group.ID and group.CreatedAt fields will be populated by the store.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group by its ID.
	// Returns an error wrapping ErrNotFound if the group does not exist.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	// ListGroups retrieves all groups, newest first.
	ListGroups(ctx context.Context) ([]*models.Group, error)

	// DeleteGroup removes a group with its amounts and plans.
	DeleteGroup(ctx context.Context, groupID string) error

	// SetPairAmounts upserts pair amounts for a group in one transaction.
	// A zero amount removes the pair.
	SetPairAmounts(ctx context.Context, groupID string, amounts []models.PairAmount) error

	// ListPairAmounts returns the non-zero pair amounts of a group ordered by (Low, High).
	ListPairAmounts(ctx context.Context, groupID string) ([]models.PairAmount, error)

	// SavePlan persists a computed plan. plan.ID and plan.CreatedAt are populated by the store.
	SavePlan(ctx context.Context, plan *models.Plan) error

	// ListPlans returns the plans of a group, newest first.
	ListPlans(ctx context.Context, groupID string) ([]*models.Plan, error)

	// Close releases any resources held by the store.
	Close() error
}
