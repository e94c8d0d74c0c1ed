package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"globalfund/internal/domain"
	"globalfund/internal/middleware"
)

const campaignListLimit = 50

type campaignRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	GoalAmount  int64  `json:"goalAmount"`
	EndDate     string `json:"endDate"`
}

// CampaignsCreate opens a campaign and its escrow account atomically.
func (a *App) CampaignsCreate(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "authentication required")
		return
	}

	var req campaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	req.Title = strings.Join(strings.Fields(req.Title), " ")
	if req.Title == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "title required")
		return
	}
	if req.GoalAmount <= 0 {
		a.error(w, http.StatusBadRequest, "bad_request", "goalAmount must be positive")
		return
	}
	endDate, err := time.Parse(time.RFC3339, req.EndDate)
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "endDate must be RFC 3339")
		return
	}
	if !endDate.After(time.Now()) {
		a.error(w, http.StatusBadRequest, "bad_request", "endDate must be in the future")
		return
	}

	campaign := &domain.Campaign{
		OwnerID:     userID,
		Title:       req.Title,
		Description: strings.TrimSpace(req.Description),
		GoalAmount:  req.GoalAmount,
		EndDate:     endDate,
	}
	err = a.UoW.Within(r.Context(), func(repos domain.TxRepos) error {
		if err := repos.Campaigns.Create(r.Context(), campaign); err != nil {
			return err
		}
		return repos.Escrow.Create(r.Context(), campaign.ID)
	})
	if err != nil {
		a.Logger.Error().Err(err).Msg("campaign create failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to create campaign")
		return
	}

	a.json(w, http.StatusCreated, campaignPayload(campaign))
}

func (a *App) CampaignsList(w http.ResponseWriter, r *http.Request) {
	var campaigns []domain.Campaign
	err := a.UoW.Within(r.Context(), func(repos domain.TxRepos) error {
		var err error
		campaigns, err = repos.Campaigns.List(r.Context(), campaignListLimit)
		return err
	})
	if err != nil {
		a.Logger.Error().Err(err).Msg("campaign list failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to list campaigns")
		return
	}

	items := make([]map[string]any, 0, len(campaigns))
	for i := range campaigns {
		items = append(items, campaignPayload(&campaigns[i]))
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}

func (a *App) CampaignShow(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "campaign id required")
		return
	}

	var campaign *domain.Campaign
	err := a.UoW.Within(r.Context(), func(repos domain.TxRepos) error {
		var err error
		campaign, err = repos.Campaigns.GetByID(r.Context(), id)
		return err
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "not_found", "campaign not found")
			return
		}
		a.Logger.Error().Err(err).Msg("campaign show failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load campaign")
		return
	}

	a.json(w, http.StatusOK, campaignPayload(campaign))
}

func campaignPayload(c *domain.Campaign) map[string]any {
	return map[string]any{
		"id":           c.ID,
		"title":        c.Title,
		"description":  c.Description,
		"goalAmount":   c.GoalAmount,
		"fundedAmount": c.FundedAmount,
		"endDate":      c.EndDate.Format(time.RFC3339),
		"status":       string(c.Status),
		"createdAt":    c.CreatedAt,
	}
}
