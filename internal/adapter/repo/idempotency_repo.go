package repo

import (
	"context"
	"fmt"
	"time"

	"globalfund/internal/domain"
	"globalfund/internal/infra"
	"globalfund/internal/sqlinline"
)

// IdempotencyKeys implements domain.IdempotencyGuard. Claiming a key is a
// single conditional upsert, so the outcome is read from rows affected rather
// than from a unique-violation error.
type IdempotencyKeys struct {
	q   infra.SQLExecutor
	now func() time.Time
}

func NewIdempotencyKeys(q infra.SQLExecutor) *IdempotencyKeys {
	return &IdempotencyKeys{q: q, now: time.Now}
}

func (r *IdempotencyKeys) Begin(ctx context.Context, key, userID string, lease time.Duration) (domain.BeginResult, error) {
	tag, err := r.q.Exec(ctx, sqlinline.QBeginIdempotency, key, userID, r.now().Add(lease))
	if err != nil {
		return domain.BeginResult{}, fmt.Errorf("claim idempotency key: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return domain.BeginResult{Outcome: domain.BeginFresh}, nil
	}

	rec, err := r.get(ctx, key)
	if err != nil {
		if infra.IsNoRows(err) {
			// Claimed and rolled back between our two statements; the
			// retry will succeed.
			return domain.BeginResult{Outcome: domain.BeginInFlight}, nil
		}
		return domain.BeginResult{}, err
	}
	if rec.Status == domain.IdempotencyCompleted && len(rec.Response) > 0 {
		return domain.BeginResult{Outcome: domain.BeginReplayed, Response: rec.Response}, nil
	}
	return domain.BeginResult{Outcome: domain.BeginInFlight}, nil
}

func (r *IdempotencyKeys) Complete(ctx context.Context, key string, response []byte) error {
	tag, err := r.q.Exec(ctx, sqlinline.QCompleteIdempotencyKey, key, response)
	if err != nil {
		return fmt.Errorf("complete idempotency key: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("complete idempotency key %q: %w", key, domain.ErrNotFound)
	}
	return nil
}

func (r *IdempotencyKeys) get(ctx context.Context, key string) (*domain.IdempotencyRecord, error) {
	var rec domain.IdempotencyRecord
	row := r.q.QueryRow(ctx, sqlinline.QSelectIdempotencyKey, key)
	if err := row.Scan(&rec.Key, &rec.UserID, &rec.Status, &rec.Response, &rec.LeaseExpiresAt, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		return nil, err
	}
	return &rec, nil
}

var _ domain.IdempotencyGuard = (*IdempotencyKeys)(nil)
