package googledomain

// ConversionAction representa uma ação de conversão do Google Ads. Os nomes
// são definidos pelos gestores das contas, em polonês na maior parte dos
// clientes ("Telefon", "Rezerwacja - krok 2", ...).
type ConversionAction struct {
	Name        string  `json:"name"`
	Conversions float64 `json:"conversions"`
	Value       float64 `json:"value"`
}

// CampaignRow é uma linha do relatório por campanha
type CampaignRow struct {
	CampaignID   string             `json:"campaign_id"`
	CampaignName string             `json:"campaign_name"`
	CostMicros   int64              `json:"cost_micros"`
	Impressions  int64              `json:"impressions"`
	Clicks       int64              `json:"clicks"`
	Conversions  []ConversionAction `json:"conversions"`
}

// DailyRow é uma linha do relatório segmentado por dia
type DailyRow struct {
	Date        string             `json:"date"`
	CostMicros  int64              `json:"cost_micros"`
	Impressions int64              `json:"impressions"`
	Clicks      int64              `json:"clicks"`
	Conversions []ConversionAction `json:"conversions"`
}
