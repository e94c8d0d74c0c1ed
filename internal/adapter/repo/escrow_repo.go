package repo

import (
	"context"
	"fmt"

	"globalfund/internal/domain"
	"globalfund/internal/infra"
	"globalfund/internal/sqlinline"
)

// EscrowAccounts implements domain.EscrowAccounts.
type EscrowAccounts struct {
	q infra.SQLExecutor
}

func NewEscrowAccounts(q infra.SQLExecutor) *EscrowAccounts {
	return &EscrowAccounts{q: q}
}

func (r *EscrowAccounts) Create(ctx context.Context, campaignID string) error {
	if _, err := r.q.Exec(ctx, sqlinline.QInsertEscrowAccount, campaignID); err != nil {
		return fmt.Errorf("create escrow account: %w", err)
	}
	return nil
}

func (r *EscrowAccounts) GetByCampaignID(ctx context.Context, campaignID string) (*domain.EscrowAccount, error) {
	var e domain.EscrowAccount
	row := r.q.QueryRow(ctx, sqlinline.QSelectEscrowByCampaign, campaignID)
	if err := row.Scan(&e.ID, &e.CampaignID, &e.Balance, &e.CreatedAt); err != nil {
		if infra.IsNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("load escrow account: %w", err)
	}
	return &e, nil
}

func (r *EscrowAccounts) Credit(ctx context.Context, campaignID string, amount int64) error {
	return r.adjust(ctx, sqlinline.QCreditEscrow, campaignID, amount)
}

func (r *EscrowAccounts) Debit(ctx context.Context, campaignID string, amount int64) error {
	return r.adjust(ctx, sqlinline.QDebitEscrow, campaignID, amount)
}

func (r *EscrowAccounts) adjust(ctx context.Context, query, campaignID string, amount int64) error {
	if amount <= 0 {
		return domain.ErrInvalidInput
	}
	tag, err := r.q.Exec(ctx, query, campaignID, amount)
	if err != nil {
		return fmt.Errorf("adjust escrow balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var _ domain.EscrowAccounts = (*EscrowAccounts)(nil)
