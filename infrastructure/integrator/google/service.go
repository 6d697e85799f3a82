package google

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	googledomain "github.com/wmarczak/reporting-api/infrastructure/integrator/google/domain"
	"github.com/wmarczak/reporting-api/infrastructure/integrator/google/googleclient"
	"github.com/wmarczak/reporting-api/internal/config"
	"github.com/wmarczak/reporting-api/internal/domain"
	"github.com/wmarczak/reporting-api/pkg/utils"
)

// GoogleIntegrator converte os relatórios do Google Ads para o modelo
// normalizado do domínio
type GoogleIntegrator struct {
	cfg    *config.Config
	Client googleclient.Client
}

func New(cfg *config.Config, client googleclient.Client) *GoogleIntegrator {
	return &GoogleIntegrator{
		cfg:    cfg,
		Client: client,
	}
}

// Platform identifica a plataforma deste integrador
func (s *GoogleIntegrator) Platform() domain.Platform {
	return domain.PlatformGoogle
}

// FetchCampaignInsights busca e normaliza o relatório por campanha
func (s *GoogleIntegrator) FetchCampaignInsights(ctx context.Context, customerID string, startDate, endDate time.Time) ([]domain.UnifiedCampaign, error) {
	rows, err := s.Client.GetCampaignReport(ctx, customerID, startDate, endDate)
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"customer_id": customerID,
			"start_date":  startDate.Format(time.DateOnly),
			"end_date":    endDate.Format(time.DateOnly),
		}).Error("insights: falha ao buscar relatório de campanhas do Google Ads")
		return nil, err
	}

	campaigns := make([]domain.UnifiedCampaign, 0, len(rows))
	for _, row := range rows {
		campaigns = append(campaigns, s.normalizeCampaign(row))
	}

	return campaigns, nil
}

// FetchDailyKpis busca o relatório diário e converte cada dia em uma linha de
// KPI pronta para upsert
func (s *GoogleIntegrator) FetchDailyKpis(ctx context.Context, clientID, customerID string, startDate, endDate time.Time) ([]*domain.DailyKpiEntry, error) {
	rows, err := s.Client.GetDailyReport(ctx, customerID, startDate, endDate)
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"customer_id": customerID,
			"start_date":  startDate.Format(time.DateOnly),
			"end_date":    endDate.Format(time.DateOnly),
		}).Error("insights: falha ao buscar relatório diário do Google Ads")
		return nil, err
	}

	entries := make([]*domain.DailyKpiEntry, 0, len(rows))
	for _, row := range rows {
		date, err := time.Parse(time.DateOnly, row.Date)
		if err != nil {
			logrus.WithError(err).WithField("date", row.Date).Warn("insights: data inválida em relatório diário do Google Ads, ignorando")
			continue
		}

		spend := microsToAmount(row.CostMicros)
		impressions := int(row.Impressions)
		clicks := int(row.Clicks)
		funnel := ParseConversions(row.Conversions, customerID)

		entry := &domain.DailyKpiEntry{
			ClientID:    clientID,
			Date:        date,
			Platform:    domain.PlatformGoogle,
			Spend:       spend,
			Impressions: impressions,
			Clicks:      clicks,
			Conversions: funnel.Reservations,
			Funnel:      funnel,
		}

		if impressions > 0 {
			entry.AverageCtr = utils.RoundWithTwoDecimalPlace(float64(clicks) / float64(impressions) * 100)
		}
		if clicks > 0 {
			entry.AverageCpc = utils.RoundWithTwoDecimalPlace(spend / float64(clicks))
		}

		entries = append(entries, entry)
	}

	return entries, nil
}

func (s *GoogleIntegrator) normalizeCampaign(row googledomain.CampaignRow) domain.UnifiedCampaign {
	spend := microsToAmount(row.CostMicros)
	impressions := int(row.Impressions)
	clicks := int(row.Clicks)
	funnel := ParseConversions(row.Conversions, row.CampaignName)

	campaign := domain.UnifiedCampaign{
		CampaignID:   row.CampaignID,
		CampaignName: row.CampaignName,
		Platform:     domain.PlatformGoogle,
		Spend:        spend,
		Impressions:  impressions,
		Clicks:       clicks,
		Conversions:  funnel.Reservations,
		Funnel:       funnel,
	}

	if impressions > 0 {
		campaign.CTR = utils.RoundWithTwoDecimalPlace(float64(clicks) / float64(impressions) * 100)
	}
	if clicks > 0 {
		campaign.CPC = utils.RoundWithTwoDecimalPlace(spend / float64(clicks))
	}

	return campaign
}

// microsToAmount converte custo em micros (padrão da API do Google Ads) para
// o valor monetário com 2 casas
func microsToAmount(micros int64) float64 {
	return utils.RoundWithTwoDecimalPlace(float64(micros) / 1_000_000)
}
