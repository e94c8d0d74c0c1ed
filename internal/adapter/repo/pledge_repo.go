package repo

import (
	"context"
	"fmt"

	"globalfund/internal/domain"
	"globalfund/internal/infra"
	"globalfund/internal/sqlinline"
)

// Pledges implements domain.PledgeStore.
type Pledges struct {
	q infra.SQLExecutor
}

func NewPledges(q infra.SQLExecutor) *Pledges {
	return &Pledges{q: q}
}

func (r *Pledges) Create(ctx context.Context, p *domain.Pledge) error {
	row := r.q.QueryRow(ctx, sqlinline.QInsertPledge, p.CampaignID, p.DonorID, p.Amount, p.DonorCountry)
	if err := row.Scan(&p.ID, &p.CreatedAt); err != nil {
		return fmt.Errorf("create pledge: %w", err)
	}
	p.Status = domain.PledgePending
	return nil
}

func (r *Pledges) ListPendingByCampaign(ctx context.Context, campaignID string) ([]domain.Pledge, error) {
	rows, err := r.q.Query(ctx, sqlinline.QListPendingPledges, campaignID)
	if err != nil {
		return nil, fmt.Errorf("list pending pledges: %w", err)
	}
	defer rows.Close()

	var items []domain.Pledge
	for rows.Next() {
		var p domain.Pledge
		if err := rows.Scan(&p.ID, &p.CampaignID, &p.DonorID, &p.Amount, &p.Status, &p.DonorCountry, &p.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *Pledges) MarkRefunded(ctx context.Context, pledgeID string) error {
	tag, err := r.q.Exec(ctx, sqlinline.QMarkPledgeRefunded, pledgeID)
	if err != nil {
		return fmt.Errorf("mark pledge refunded: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var _ domain.PledgeStore = (*Pledges)(nil)
