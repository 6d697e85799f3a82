package meta

import (
	"context"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	metadomain "github.com/wmarczak/reporting-api/infrastructure/integrator/meta/domain"
	"github.com/wmarczak/reporting-api/infrastructure/integrator/meta/metaclient"
	"github.com/wmarczak/reporting-api/internal/config"
	"github.com/wmarczak/reporting-api/internal/domain"
	"github.com/wmarczak/reporting-api/pkg/utils"
)

// MetaIntegrator converte as respostas brutas da Graph API para o modelo
// normalizado do domínio
type MetaIntegrator struct {
	cfg    *config.Config
	Client metaclient.Client
}

func New(cfg *config.Config, client metaclient.Client) *MetaIntegrator {
	return &MetaIntegrator{
		cfg:    cfg,
		Client: client,
	}
}

// Platform identifica a plataforma deste integrador
func (s *MetaIntegrator) Platform() domain.Platform {
	return domain.PlatformMeta
}

// FetchCampaignInsights busca e normaliza os insights de campanhas da conta
func (s *MetaIntegrator) FetchCampaignInsights(ctx context.Context, accountID string, startDate, endDate time.Time) ([]domain.UnifiedCampaign, error) {
	rawCampaigns, err := s.Client.GetCampaignInsights(ctx, accountID, startDate, endDate)
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"account_id": accountID,
			"start_date": startDate.Format(time.DateOnly),
			"end_date":   endDate.Format(time.DateOnly),
		}).Error("insights: falha ao buscar insights de campanhas do Meta")
		return nil, err
	}

	campaigns := make([]domain.UnifiedCampaign, 0, len(rawCampaigns))
	for _, raw := range rawCampaigns {
		campaigns = append(campaigns, s.normalizeCampaign(raw))
	}

	logrus.WithFields(logrus.Fields{
		"account_id": accountID,
		"campaigns":  len(campaigns),
	}).Debug("insights: campanhas do Meta normalizadas")

	return campaigns, nil
}

// FetchDailyKpis busca os insights segmentados por dia e converte cada dia em
// uma linha de KPI diário pronta para upsert
func (s *MetaIntegrator) FetchDailyKpis(ctx context.Context, clientID, accountID string, startDate, endDate time.Time) ([]*domain.DailyKpiEntry, error) {
	rawDays, err := s.Client.GetDailyInsights(ctx, accountID, startDate, endDate)
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"account_id": accountID,
			"start_date": startDate.Format(time.DateOnly),
			"end_date":   endDate.Format(time.DateOnly),
		}).Error("insights: falha ao buscar insights diários do Meta")
		return nil, err
	}

	entries := make([]*domain.DailyKpiEntry, 0, len(rawDays))
	for _, raw := range rawDays {
		date, err := time.Parse(time.DateOnly, raw.DateStart)
		if err != nil {
			logrus.WithError(err).WithField("date_start", raw.DateStart).Warn("insights: data inválida em insight diário do Meta, ignorando")
			continue
		}

		spend := parseFloat(raw.Spend)
		impressions := parseInt(raw.Impressions)
		clicks := parseInt(raw.Clicks)
		funnel := ParseActions(raw.Actions, raw.ActionValues, raw.AccountID)

		entry := &domain.DailyKpiEntry{
			ClientID:    clientID,
			Date:        date,
			Platform:    domain.PlatformMeta,
			Spend:       utils.RoundWithTwoDecimalPlace(spend),
			Impressions: impressions,
			Clicks:      clicks,
			Conversions: funnel.Reservations,
			Funnel:      funnel,
		}

		// Derivados recalculados na escrita, a partir dos totais do dia
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

func (s *MetaIntegrator) normalizeCampaign(raw metadomain.CampaignInsight) domain.UnifiedCampaign {
	spend := parseFloat(raw.Spend)
	impressions := parseInt(raw.Impressions)
	clicks := parseInt(raw.Clicks)
	funnel := ParseActions(raw.Actions, raw.ActionValues, raw.CampaignName)

	campaign := domain.UnifiedCampaign{
		CampaignID:   raw.CampaignID,
		CampaignName: raw.CampaignName,
		Platform:     domain.PlatformMeta,
		Spend:        utils.RoundWithTwoDecimalPlace(spend),
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

func parseFloat(value string) float64 {
	if value == "" {
		return 0
	}

	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		logrus.WithField("value", value).Warn("insights: erro ao converter valor numérico do Meta")
		return 0
	}

	return parsed
}

func parseInt(value string) int {
	if value == "" {
		return 0
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		logrus.WithField("value", value).Warn("insights: erro ao converter valor inteiro do Meta")
		return 0
	}

	return parsed
}
