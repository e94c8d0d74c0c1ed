package engine

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"globalfund/internal/domain"
	"globalfund/internal/infra/metrics"
)

// ScanReport summarizes one expiry scan pass.
type ScanReport struct {
	Scanned    int
	Successful int
	Failed     int
	Refunded   int
	Errors     int
}

// RefundEngine settles campaigns whose deadline has passed: successful ones
// are finalized, failed ones have every pending pledge refunded. Each
// campaign settles in its own transaction so one failure never blocks the
// rest of the scan, and it is safe to run concurrently with itself.
type RefundEngine struct {
	uow    domain.UnitOfWork
	logger zerolog.Logger
	clock  func() time.Time
}

func NewRefundEngine(uow domain.UnitOfWork, logger zerolog.Logger) *RefundEngine {
	return &RefundEngine{uow: uow, logger: logger, clock: time.Now}
}

// Scan settles every ACTIVE campaign whose end date is in the past.
func (e *RefundEngine) Scan(ctx context.Context) (ScanReport, error) {
	started := e.clock()
	defer func() {
		metrics.ScanDuration.Observe(time.Since(started).Seconds())
	}()

	var ids []string
	err := e.uow.Within(ctx, func(r domain.TxRepos) error {
		var err error
		ids, err = r.Campaigns.ListExpiredActiveIDs(ctx, started)
		return err
	})
	if err != nil {
		return ScanReport{}, err
	}

	report := ScanReport{Scanned: len(ids)}
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		status, refunded, err := e.settle(ctx, id, started)
		if err != nil {
			report.Errors++
			metrics.ScanErrors.Inc()
			e.logger.Error().Err(err).Str("campaign_id", id).Msg("campaign settlement failed")
			continue
		}
		report.Refunded += refunded
		switch status {
		case domain.CampaignSuccessful:
			report.Successful++
		case domain.CampaignFailed:
			report.Failed++
		}
	}
	return report, nil
}

// settle decides one campaign inside a single transaction. The campaign row
// is re-locked and re-checked so a concurrent scan or a live pledge that
// already moved it is left alone.
func (e *RefundEngine) settle(ctx context.Context, campaignID string, now time.Time) (domain.CampaignStatus, int, error) {
	var settled domain.CampaignStatus
	var refunded int

	err := e.uow.Within(ctx, func(r domain.TxRepos) error {
		campaign, err := r.Campaigns.GetByIDForUpdate(ctx, campaignID)
		if err != nil {
			return err
		}
		if campaign.Status != domain.CampaignActive || !campaign.Expired(now) {
			return nil
		}

		if campaign.GoalReached() {
			if err := r.Campaigns.SettleExpired(ctx, campaignID, domain.CampaignSuccessful); err != nil {
				return err
			}
			settled = domain.CampaignSuccessful
			return nil
		}

		pledges, err := r.Pledges.ListPendingByCampaign(ctx, campaignID)
		if err != nil {
			return err
		}
		for _, pledge := range pledges {
			wallet, err := r.Wallets.GetByUserID(ctx, pledge.DonorID)
			if errors.Is(err, domain.ErrWalletNotFound) {
				e.logger.Warn().
					Str("pledge_id", pledge.ID).
					Str("donor_id", pledge.DonorID).
					Msg("refund skipped: donor wallet missing")
				continue
			}
			if err != nil {
				return err
			}
			if err := r.Wallets.Credit(ctx, wallet.ID, pledge.Amount, domain.ReferenceRefund, campaignID); err != nil {
				return err
			}
			if err := r.Escrow.Debit(ctx, campaignID, pledge.Amount); err != nil {
				return err
			}
			if err := r.Pledges.MarkRefunded(ctx, pledge.ID); err != nil {
				return err
			}
			refunded++
		}

		// funded_amount is left as the historical total raised.
		if err := r.Campaigns.SettleExpired(ctx, campaignID, domain.CampaignFailed); err != nil {
			return err
		}
		settled = domain.CampaignFailed
		return nil
	})
	if err != nil {
		return "", 0, err
	}

	if settled != "" {
		metrics.CampaignsSettled.WithLabelValues(string(settled)).Inc()
		if refunded > 0 {
			metrics.RefundsTotal.Add(float64(refunded))
		}
		e.logger.Info().
			Str("campaign_id", campaignID).
			Str("outcome", string(settled)).
			Int("refunded_pledges", refunded).
			Msg("campaign settled")
	}
	return settled, refunded, nil
}
