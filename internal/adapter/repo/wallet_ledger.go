package repo

import (
	"context"
	"fmt"

	"globalfund/internal/domain"
	"globalfund/internal/infra"
	"globalfund/internal/sqlinline"
)

// WalletLedger implements domain.WalletLedger over a transaction-scoped
// executor. Every balance change writes its ledger entry in the same
// transaction.
type WalletLedger struct {
	q infra.SQLExecutor
}

func NewWalletLedger(q infra.SQLExecutor) *WalletLedger {
	return &WalletLedger{q: q}
}

func (r *WalletLedger) Create(ctx context.Context, userID string) (*domain.Wallet, error) {
	var w domain.Wallet
	row := r.q.QueryRow(ctx, sqlinline.QInsertWallet, userID)
	if err := row.Scan(&w.ID, &w.UserID, &w.Balance, &w.CreatedAt); err != nil {
		return nil, fmt.Errorf("create wallet: %w", err)
	}
	return &w, nil
}

func (r *WalletLedger) GetByUserID(ctx context.Context, userID string) (*domain.Wallet, error) {
	return r.getByUser(ctx, sqlinline.QSelectWalletByUser, userID)
}

func (r *WalletLedger) GetByUserIDForUpdate(ctx context.Context, userID string) (*domain.Wallet, error) {
	return r.getByUser(ctx, sqlinline.QSelectWalletByUserForUpdate, userID)
}

func (r *WalletLedger) getByUser(ctx context.Context, query, userID string) (*domain.Wallet, error) {
	var w domain.Wallet
	row := r.q.QueryRow(ctx, query, userID)
	if err := row.Scan(&w.ID, &w.UserID, &w.Balance, &w.CreatedAt); err != nil {
		if infra.IsNoRows(err) {
			return nil, domain.ErrWalletNotFound
		}
		return nil, fmt.Errorf("load wallet: %w", err)
	}
	return &w, nil
}

// Debit decrements the balance and appends a DEBIT ledger entry. It returns
// ErrInsufficientBalance when the balance cannot cover the amount.
func (r *WalletLedger) Debit(ctx context.Context, walletID string, amount int64, ref domain.ReferenceType, refID string) error {
	if amount <= 0 {
		return domain.ErrInvalidInput
	}
	tag, err := r.q.Exec(ctx, sqlinline.QDebitWallet, walletID, amount)
	if err != nil {
		return fmt.Errorf("debit wallet: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInsufficientBalance
	}
	return r.appendEntry(ctx, walletID, domain.TransactionDebit, amount, ref, refID)
}

// Credit increments the balance and appends a CREDIT ledger entry.
func (r *WalletLedger) Credit(ctx context.Context, walletID string, amount int64, ref domain.ReferenceType, refID string) error {
	if amount <= 0 {
		return domain.ErrInvalidInput
	}
	tag, err := r.q.Exec(ctx, sqlinline.QCreditWallet, walletID, amount)
	if err != nil {
		return fmt.Errorf("credit wallet: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrWalletNotFound
	}
	return r.appendEntry(ctx, walletID, domain.TransactionCredit, amount, ref, refID)
}

func (r *WalletLedger) appendEntry(ctx context.Context, walletID string, typ domain.TransactionType, amount int64, ref domain.ReferenceType, refID string) error {
	if _, err := r.q.Exec(ctx, sqlinline.QInsertWalletTransaction, walletID, string(typ), amount, string(ref), refID); err != nil {
		return fmt.Errorf("append ledger entry: %w", err)
	}
	return nil
}

func (r *WalletLedger) ListTransactions(ctx context.Context, walletID string, limit int) ([]domain.WalletTransaction, error) {
	rows, err := r.q.Query(ctx, sqlinline.QListWalletTransactions, walletID, limit)
	if err != nil {
		return nil, fmt.Errorf("list wallet transactions: %w", err)
	}
	defer rows.Close()

	var items []domain.WalletTransaction
	for rows.Next() {
		var t domain.WalletTransaction
		if err := rows.Scan(&t.ID, &t.WalletID, &t.Type, &t.Amount, &t.Status, &t.ReferenceType, &t.ReferenceID, &t.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

var _ domain.WalletLedger = (*WalletLedger)(nil)
