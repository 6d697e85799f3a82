package metadomain

// RawAction representa uma ação bruta retornada pela Graph API nos campos
// "actions" e "action_values". Modelos de atribuição podem produzir valores
// fracionários, por isso Value chega como string.
type RawAction struct {
	ActionType string `json:"action_type"`
	Value      string `json:"value"`
}

// CampaignInsight é o insight bruto de uma campanha retornado pela Graph API
type CampaignInsight struct {
	CampaignID   string      `json:"campaign_id"`
	CampaignName string      `json:"campaign_name"`
	Spend        string      `json:"spend"`
	Impressions  string      `json:"impressions"`
	Clicks       string      `json:"clicks"`
	Actions      []RawAction `json:"actions"`
	ActionValues []RawAction `json:"action_values"`
	DateStart    string      `json:"date_start"`
	DateStop     string      `json:"date_stop"`
}

// DailyInsight é o insight bruto de um dia (time_increment=1) por conta
type DailyInsight struct {
	AccountID    string      `json:"account_id"`
	Spend        string      `json:"spend"`
	Impressions  string      `json:"impressions"`
	Clicks       string      `json:"clicks"`
	Actions      []RawAction `json:"actions"`
	ActionValues []RawAction `json:"action_values"`
	DateStart    string      `json:"date_start"`
	DateStop     string      `json:"date_stop"`
}
