package repo

import (
	"context"

	"globalfund/internal/domain"
	"globalfund/internal/infra"
)

// UnitOfWork implements domain.UnitOfWork over the pgx-backed SQL client.
// Each Within call runs its callback against repositories bound to a single
// transaction.
type UnitOfWork struct {
	sql infra.SQLClient
}

func NewUnitOfWork(sql infra.SQLClient) *UnitOfWork {
	return &UnitOfWork{sql: sql}
}

func (u *UnitOfWork) Within(ctx context.Context, fn func(domain.TxRepos) error) error {
	return u.sql.WithTx(ctx, func(q infra.SQLExecutor) error {
		return fn(domain.TxRepos{
			Users:       NewUsers(q),
			Wallets:     NewWalletLedger(q),
			Escrow:      NewEscrowAccounts(q),
			Campaigns:   NewCampaigns(q),
			Pledges:     NewPledges(q),
			Idempotency: NewIdempotencyKeys(q),
		})
	})
}

var _ domain.UnitOfWork = (*UnitOfWork)(nil)
