package ports

import (
	"context"

	"github.com/authgrid/auth-service/internal/core/domain"
)

// HistoryRepository is the append-only activity log. Entries are
// immutable once written.
type HistoryRepository interface {
	Append(ctx context.Context, userID, activity string) error
	// List returns one page of a user's history, newest first.
	List(ctx context.Context, userID string, page, perPage int64) ([]domain.HistoryEntry, error)
}
