package handlers

import (
	"context"
	"errors"
	"time"

	"globalfund/internal/domain"
	"globalfund/internal/engine"
)

var errStubUnexpected = errors.New("unexpected call")

// stubUoW runs the callback directly against the configured repos, standing
// in for a real transaction.
type stubUoW struct {
	repos domain.TxRepos
	err   error
	calls int
}

func (s *stubUoW) Within(_ context.Context, fn func(domain.TxRepos) error) error {
	s.calls++
	if s.err != nil {
		return s.err
	}
	return fn(s.repos)
}

type stubPledgeService struct {
	fn     func(ctx context.Context, in engine.PledgeInput) (engine.PledgeResult, error)
	inputs []engine.PledgeInput
}

func (s *stubPledgeService) Pledge(ctx context.Context, in engine.PledgeInput) (engine.PledgeResult, error) {
	s.inputs = append(s.inputs, in)
	if s.fn == nil {
		return engine.PledgeResult{}, errStubUnexpected
	}
	return s.fn(ctx, in)
}

type stubUsers struct {
	create     func(ctx context.Context, u *domain.User) error
	getByEmail func(ctx context.Context, email string) (*domain.User, error)
	getByID    func(ctx context.Context, id string) (*domain.User, error)
}

func (s *stubUsers) Create(ctx context.Context, u *domain.User) error {
	if s.create == nil {
		return errStubUnexpected
	}
	return s.create(ctx, u)
}

func (s *stubUsers) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if s.getByEmail == nil {
		return nil, errStubUnexpected
	}
	return s.getByEmail(ctx, email)
}

func (s *stubUsers) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if s.getByID == nil {
		return nil, errStubUnexpected
	}
	return s.getByID(ctx, id)
}

type stubWallets struct {
	create           func(ctx context.Context, userID string) (*domain.Wallet, error)
	getByUserID      func(ctx context.Context, userID string) (*domain.Wallet, error)
	listTransactions func(ctx context.Context, walletID string, limit int) ([]domain.WalletTransaction, error)
}

func (s *stubWallets) Create(ctx context.Context, userID string) (*domain.Wallet, error) {
	if s.create == nil {
		return nil, errStubUnexpected
	}
	return s.create(ctx, userID)
}

func (s *stubWallets) GetByUserID(ctx context.Context, userID string) (*domain.Wallet, error) {
	if s.getByUserID == nil {
		return nil, errStubUnexpected
	}
	return s.getByUserID(ctx, userID)
}

func (s *stubWallets) GetByUserIDForUpdate(context.Context, string) (*domain.Wallet, error) {
	return nil, errStubUnexpected
}

func (s *stubWallets) Debit(context.Context, string, int64, domain.ReferenceType, string) error {
	return errStubUnexpected
}

func (s *stubWallets) Credit(context.Context, string, int64, domain.ReferenceType, string) error {
	return errStubUnexpected
}

func (s *stubWallets) ListTransactions(ctx context.Context, walletID string, limit int) ([]domain.WalletTransaction, error) {
	if s.listTransactions == nil {
		return nil, errStubUnexpected
	}
	return s.listTransactions(ctx, walletID, limit)
}

type stubCampaigns struct {
	create  func(ctx context.Context, c *domain.Campaign) error
	getByID func(ctx context.Context, id string) (*domain.Campaign, error)
	list    func(ctx context.Context, limit int) ([]domain.Campaign, error)
}

func (s *stubCampaigns) Create(ctx context.Context, c *domain.Campaign) error {
	if s.create == nil {
		return errStubUnexpected
	}
	return s.create(ctx, c)
}

func (s *stubCampaigns) GetByID(ctx context.Context, id string) (*domain.Campaign, error) {
	if s.getByID == nil {
		return nil, errStubUnexpected
	}
	return s.getByID(ctx, id)
}

func (s *stubCampaigns) GetByIDForUpdate(context.Context, string) (*domain.Campaign, error) {
	return nil, errStubUnexpected
}

func (s *stubCampaigns) List(ctx context.Context, limit int) ([]domain.Campaign, error) {
	if s.list == nil {
		return nil, errStubUnexpected
	}
	return s.list(ctx, limit)
}

func (s *stubCampaigns) RecordFunding(context.Context, string, int64) (*domain.Campaign, error) {
	return nil, errStubUnexpected
}

func (s *stubCampaigns) ListExpiredActiveIDs(context.Context, time.Time) ([]string, error) {
	return nil, errStubUnexpected
}

func (s *stubCampaigns) SettleExpired(context.Context, string, domain.CampaignStatus) error {
	return errStubUnexpected
}

type stubEscrow struct {
	create func(ctx context.Context, campaignID string) error
}

func (s *stubEscrow) Create(ctx context.Context, campaignID string) error {
	if s.create == nil {
		return errStubUnexpected
	}
	return s.create(ctx, campaignID)
}

func (s *stubEscrow) GetByCampaignID(context.Context, string) (*domain.EscrowAccount, error) {
	return nil, errStubUnexpected
}

func (s *stubEscrow) Credit(context.Context, string, int64) error {
	return errStubUnexpected
}

func (s *stubEscrow) Debit(context.Context, string, int64) error {
	return errStubUnexpected
}
