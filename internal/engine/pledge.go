// Package engine holds the pledge transaction engine and the campaign expiry
// scan. Both run their effects through a unit of work so every multi-entity
// change commits or rolls back as one.
package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"globalfund/internal/domain"
	"globalfund/internal/infra/metrics"
)

const defaultIdempotencyLease = 30 * time.Second

// PledgeInput carries one pledge request into the engine.
type PledgeInput struct {
	UserID         string
	CampaignID     string
	Amount         int64
	IdempotencyKey string
	DonorCountry   string
}

// PledgeReceipt is the result cached under the idempotency key. Replays of
// the same key return this exact payload.
type PledgeReceipt struct {
	Message  string `json:"message"`
	PledgeID string `json:"pledgeId,omitempty"`
}

// PledgeResult is the typed outcome of a pledge attempt. Replayed marks a
// response served from the idempotency cache with no new side effects.
type PledgeResult struct {
	Receipt  PledgeReceipt
	Replayed bool
}

// PledgeEngine orchestrates a single pledge: idempotency claim, wallet debit,
// escrow credit, campaign funding update, pledge record, and ledger entry,
// all inside one transaction.
type PledgeEngine struct {
	uow    domain.UnitOfWork
	logger zerolog.Logger
	lease  time.Duration
}

func NewPledgeEngine(uow domain.UnitOfWork, logger zerolog.Logger, lease time.Duration) *PledgeEngine {
	if lease <= 0 {
		lease = defaultIdempotencyLease
	}
	return &PledgeEngine{uow: uow, logger: logger, lease: lease}
}

func (in PledgeInput) validate() error {
	if strings.TrimSpace(in.UserID) == "" {
		return fmt.Errorf("%w: user id required", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(in.CampaignID) == "" {
		return fmt.Errorf("%w: campaign id required", domain.ErrInvalidInput)
	}
	if in.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(in.IdempotencyKey) == "" {
		return fmt.Errorf("%w: idempotency key required", domain.ErrInvalidInput)
	}
	return nil
}

// Pledge moves funds from the donor's wallet into the campaign's escrow.
// Validation failures reject before any storage access; any failure inside
// the unit of work rolls every effect back.
func (e *PledgeEngine) Pledge(ctx context.Context, in PledgeInput) (PledgeResult, error) {
	if err := in.validate(); err != nil {
		metrics.PledgesTotal.WithLabelValues("invalid_input").Inc()
		return PledgeResult{}, err
	}

	var res PledgeResult
	err := e.uow.Within(ctx, func(r domain.TxRepos) error {
		begin, err := r.Idempotency.Begin(ctx, in.IdempotencyKey, in.UserID, e.lease)
		if err != nil {
			return err
		}
		switch begin.Outcome {
		case domain.BeginReplayed:
			var cached PledgeReceipt
			if err := json.Unmarshal(begin.Response, &cached); err != nil {
				return fmt.Errorf("decode cached response: %w", err)
			}
			res = PledgeResult{Receipt: cached, Replayed: true}
			return nil
		case domain.BeginInFlight:
			return domain.ErrDuplicateInFlight
		}

		wallet, err := r.Wallets.GetByUserIDForUpdate(ctx, in.UserID)
		if err != nil {
			return err
		}
		if wallet.Balance < in.Amount {
			return domain.ErrInsufficientBalance
		}

		campaign, err := r.Campaigns.GetByIDForUpdate(ctx, in.CampaignID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.ErrCampaignNotActive
			}
			return err
		}
		if campaign.Status != domain.CampaignActive {
			return domain.ErrCampaignNotActive
		}

		if err := r.Wallets.Debit(ctx, wallet.ID, in.Amount, domain.ReferencePledge, in.CampaignID); err != nil {
			return err
		}
		if err := r.Escrow.Credit(ctx, in.CampaignID, in.Amount); err != nil {
			return err
		}
		updated, err := r.Campaigns.RecordFunding(ctx, in.CampaignID, in.Amount)
		if err != nil {
			return err
		}

		pledge := &domain.Pledge{
			CampaignID:   in.CampaignID,
			DonorID:      in.UserID,
			Amount:       in.Amount,
			DonorCountry: in.DonorCountry,
		}
		if err := r.Pledges.Create(ctx, pledge); err != nil {
			return err
		}

		receipt := PledgeReceipt{Message: "Pledge successful", PledgeID: pledge.ID}
		body, err := json.Marshal(receipt)
		if err != nil {
			return fmt.Errorf("encode receipt: %w", err)
		}
		if err := r.Idempotency.Complete(ctx, in.IdempotencyKey, body); err != nil {
			return err
		}

		if updated.Status == domain.CampaignSuccessful {
			e.logger.Info().
				Str("campaign_id", updated.ID).
				Int64("funded", updated.FundedAmount).
				Int64("goal", updated.GoalAmount).
				Msg("campaign reached its goal")
		}
		res = PledgeResult{Receipt: receipt}
		return nil
	})
	if err != nil {
		metrics.PledgesTotal.WithLabelValues(pledgeResultLabel(err)).Inc()
		return PledgeResult{}, err
	}

	if res.Replayed {
		metrics.PledgesTotal.WithLabelValues("replayed").Inc()
		return res, nil
	}
	metrics.PledgesTotal.WithLabelValues("success").Inc()
	metrics.PledgedAmount.Add(float64(in.Amount))
	e.logger.Info().
		Str("pledge_id", res.Receipt.PledgeID).
		Str("campaign_id", in.CampaignID).
		Str("user_id", in.UserID).
		Int64("amount", in.Amount).
		Msg("pledge committed")
	return res, nil
}

func pledgeResultLabel(err error) string {
	switch {
	case errors.Is(err, domain.ErrDuplicateInFlight):
		return "duplicate_in_flight"
	case errors.Is(err, domain.ErrInsufficientBalance):
		return "insufficient_balance"
	case errors.Is(err, domain.ErrWalletNotFound):
		return "wallet_not_found"
	case errors.Is(err, domain.ErrCampaignNotActive):
		return "campaign_not_active"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid_input"
	default:
		return "error"
	}
}
