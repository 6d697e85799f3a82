package domain

import (
	"github.com/wmarczak/reporting-api/pkg/utils"
)

// UnifiedCampaign representa uma campanha normalizada, independente da
// plataforma de origem. Construída por requisição, nunca persistida neste formato.
type UnifiedCampaign struct {
	CampaignID   string        `json:"campaign_id"`
	CampaignName string        `json:"campaign_name"`
	Platform     Platform      `json:"platform"`
	Spend        float64       `json:"spend"`
	Impressions  int           `json:"impressions"`
	Clicks       int           `json:"clicks"`
	Conversions  int           `json:"conversions"`
	CTR          float64       `json:"ctr"`
	CPC          float64       `json:"cpc"`
	Funnel       FunnelMetrics `json:"funnel"`
}

// PlatformTotals representa o agregado de uma plataforma (ou da combinação
// de plataformas) em um período
type PlatformTotals struct {
	Spend       float64       `json:"spend"`
	Impressions int           `json:"impressions"`
	Clicks      int           `json:"clicks"`
	Conversions int           `json:"conversions"`
	AverageCtr  float64       `json:"average_ctr"`
	AverageCpc  float64       `json:"average_cpc"`
	AverageCpa  float64       `json:"average_cpa"`
	Funnel      FunnelMetrics `json:"funnel"`
}

// RecomputeDerived recalcula as métricas derivadas a partir dos totais somados.
// CTR e CPC nunca podem ser obtidos pela média das razões diárias ou por
// plataforma: a média de médias ignora o peso de volumes diferentes.
func (t *PlatformTotals) RecomputeDerived() {
	t.Spend = utils.RoundWithTwoDecimalPlace(t.Spend)
	t.Funnel.Round()

	if t.Impressions > 0 {
		t.AverageCtr = utils.RoundWithTwoDecimalPlace(float64(t.Clicks) / float64(t.Impressions) * 100)
	} else {
		t.AverageCtr = 0
	}

	if t.Clicks > 0 {
		t.AverageCpc = utils.RoundWithTwoDecimalPlace(t.Spend / float64(t.Clicks))
	} else {
		t.AverageCpc = 0
	}

	if t.Conversions > 0 {
		t.AverageCpa = utils.RoundWithTwoDecimalPlace(t.Spend / float64(t.Conversions))
	} else {
		t.AverageCpa = 0
	}
}

// CombinePlatformTotals combina os agregados do Meta e do Google em um total
// unificado. Campos aditivos são somados e as razões derivadas recalculadas
// sobre as somas. A falha total de uma plataforma entra como contribuição zero:
// dados parciais são sempre preferíveis a nenhum dado no dashboard.
func CombinePlatformTotals(meta, google *PlatformTotals) *PlatformTotals {
	combined := &PlatformTotals{}

	for _, totals := range []*PlatformTotals{meta, google} {
		if totals == nil {
			continue
		}

		combined.Spend += totals.Spend
		combined.Impressions += totals.Impressions
		combined.Clicks += totals.Clicks
		combined.Conversions += totals.Conversions
		combined.Funnel.Add(totals.Funnel)
	}

	combined.RecomputeDerived()

	return combined
}

// AggregateFunnelMetrics soma as métricas de funil de uma lista de campanhas,
// arredondando novamente após a soma
func AggregateFunnelMetrics(campaigns []UnifiedCampaign) FunnelMetrics {
	total := FunnelMetrics{}

	for _, campaign := range campaigns {
		total.Add(campaign.Funnel)
	}

	total.Round()

	return total
}
