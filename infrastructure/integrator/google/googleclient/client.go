package googleclient

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	googledomain "github.com/wmarczak/reporting-api/infrastructure/integrator/google/domain"
	"github.com/wmarczak/reporting-api/internal/config"
)

// Client define a interface do cliente do serviço de relatórios do Google Ads
type Client interface {
	GetCampaignReport(ctx context.Context, customerID string, startDate, endDate time.Time) ([]googledomain.CampaignRow, error)
	GetDailyReport(ctx context.Context, customerID string, startDate, endDate time.Time) ([]googledomain.DailyRow, error)
}

type GoogleClient struct {
	cfg        *config.Config
	httpClient *http.Client
}

func NewClient(cfg *config.Config) Client {
	return &GoogleClient{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Google.RequestTimeoutSeconds) * time.Second,
		},
	}
}

type reportRequest struct {
	CustomerID string `json:"customer_id"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	Segment    string `json:"segment,omitempty"`
}

type campaignReportResponse struct {
	Results []googledomain.CampaignRow `json:"results"`
}

type dailyReportResponse struct {
	Results []googledomain.DailyRow `json:"results"`
}

// GetCampaignReport busca o relatório por campanha no intervalo
func (c *GoogleClient) GetCampaignReport(ctx context.Context, customerID string, startDate, endDate time.Time) ([]googledomain.CampaignRow, error) {
	var response campaignReportResponse

	err := c.doReportRequest(ctx, "/reports/campaigns", reportRequest{
		CustomerID: customerID,
		StartDate:  startDate.Format(time.DateOnly),
		EndDate:    endDate.Format(time.DateOnly),
	}, &response)
	if err != nil {
		return nil, err
	}

	return response.Results, nil
}

// GetDailyReport busca o relatório segmentado por dia no intervalo
func (c *GoogleClient) GetDailyReport(ctx context.Context, customerID string, startDate, endDate time.Time) ([]googledomain.DailyRow, error) {
	var response dailyReportResponse

	err := c.doReportRequest(ctx, "/reports/daily", reportRequest{
		CustomerID: customerID,
		StartDate:  startDate.Format(time.DateOnly),
		EndDate:    endDate.Format(time.DateOnly),
		Segment:    "date",
	}, &response)
	if err != nil {
		return nil, err
	}

	return response.Results, nil
}

func (c *GoogleClient) doReportRequest(ctx context.Context, endpointPath string, payload reportRequest, out any) error {
	endpoint, err := url.Parse(c.cfg.Google.URL)
	if err != nil {
		return errors.Wrap(err, "analisando a URL base do Google Ads")
	}
	endpoint.Path = path.Join(endpoint.Path, endpointPath)

	body, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "serializando requisição de relatório")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "criando requisição de relatório")
	}

	req.Header.Set("Authorization", "Bearer "+c.cfg.Google.AccessToken)
	req.Header.Set("developer-token", c.cfg.Google.DeveloperToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "executando requisição de relatório")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logrus.WithFields(logrus.Fields{
			"customer_id": payload.CustomerID,
			"status_code": resp.StatusCode,
			"path":        endpointPath,
		}).Error("Serviço de relatórios do Google Ads retornou status de erro")
		return errors.Errorf("relatório do google ads falhou com status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(err, "decodificando resposta de relatório")
	}

	return nil
}
