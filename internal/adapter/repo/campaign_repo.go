package repo

import (
	"context"
	"fmt"
	"time"

	"globalfund/internal/domain"
	"globalfund/internal/infra"
	"globalfund/internal/sqlinline"
)

// Campaigns implements domain.CampaignStore. Status transitions are guarded
// in SQL (`where status = 'ACTIVE'`) so terminal campaigns never change.
type Campaigns struct {
	q infra.SQLExecutor
}

func NewCampaigns(q infra.SQLExecutor) *Campaigns {
	return &Campaigns{q: q}
}

func (r *Campaigns) Create(ctx context.Context, c *domain.Campaign) error {
	row := r.q.QueryRow(ctx, sqlinline.QInsertCampaign, c.OwnerID, c.Title, c.Description, c.GoalAmount, c.EndDate)
	if err := row.Scan(&c.ID, &c.CreatedAt); err != nil {
		return fmt.Errorf("create campaign: %w", err)
	}
	c.Status = domain.CampaignActive
	c.FundedAmount = 0
	return nil
}

func (r *Campaigns) GetByID(ctx context.Context, id string) (*domain.Campaign, error) {
	return r.get(ctx, sqlinline.QSelectCampaign, id)
}

func (r *Campaigns) GetByIDForUpdate(ctx context.Context, id string) (*domain.Campaign, error) {
	return r.get(ctx, sqlinline.QSelectCampaignForUpdate, id)
}

func (r *Campaigns) get(ctx context.Context, query, id string) (*domain.Campaign, error) {
	row := r.q.QueryRow(ctx, query, id)
	c, err := scanCampaign(row)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("load campaign: %w", err)
	}
	return c, nil
}

func (r *Campaigns) List(ctx context.Context, limit int) ([]domain.Campaign, error) {
	rows, err := r.q.Query(ctx, sqlinline.QListCampaigns, limit)
	if err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	defer rows.Close()

	var items []domain.Campaign
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *Campaigns) RecordFunding(ctx context.Context, id string, amount int64) (*domain.Campaign, error) {
	if amount <= 0 {
		return nil, domain.ErrInvalidInput
	}
	row := r.q.QueryRow(ctx, sqlinline.QRecordFunding, id, amount)
	c, err := scanCampaign(row)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, domain.ErrCampaignNotActive
		}
		return nil, fmt.Errorf("record funding: %w", err)
	}
	return c, nil
}

func (r *Campaigns) ListExpiredActiveIDs(ctx context.Context, now time.Time) ([]string, error) {
	rows, err := r.q.Query(ctx, sqlinline.QListExpiredActiveCampaigns, now)
	if err != nil {
		return nil, fmt.Errorf("list expired campaigns: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *Campaigns) SettleExpired(ctx context.Context, id string, status domain.CampaignStatus) error {
	if !status.Terminal() {
		return domain.ErrInvalidInput
	}
	if _, err := r.q.Exec(ctx, sqlinline.QSettleCampaign, id, string(status)); err != nil {
		return fmt.Errorf("settle campaign: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCampaign(row rowScanner) (*domain.Campaign, error) {
	var c domain.Campaign
	if err := row.Scan(&c.ID, &c.OwnerID, &c.Title, &c.Description, &c.GoalAmount, &c.FundedAmount, &c.EndDate, &c.Status, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

var _ domain.CampaignStore = (*Campaigns)(nil)
