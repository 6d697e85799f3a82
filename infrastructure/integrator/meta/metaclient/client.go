package metaclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	metadomain "github.com/wmarczak/reporting-api/infrastructure/integrator/meta/domain"
	"github.com/wmarczak/reporting-api/internal/config"
)

// Client define a interface do cliente da Graph API do Meta
type Client interface {
	GetCampaignInsights(ctx context.Context, accountID string, startDate, endDate time.Time) ([]metadomain.CampaignInsight, error)
	GetDailyInsights(ctx context.Context, accountID string, startDate, endDate time.Time) ([]metadomain.DailyInsight, error)
}

type MetaClient struct {
	cfg        *config.Config
	httpClient *http.Client
}

func NewClient(cfg *config.Config) Client {
	return &MetaClient{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Meta.RequestTimeoutSeconds) * time.Second,
		},
	}
}

type insightsResponse[T any] struct {
	Data []T `json:"data"`
}

// GetCampaignInsights busca os insights por campanha de uma conta no intervalo
func (c *MetaClient) GetCampaignInsights(ctx context.Context, accountID string, startDate, endDate time.Time) ([]metadomain.CampaignInsight, error) {
	params := &url.Values{}
	params.Add("fields", "campaign_id,campaign_name,spend,impressions,clicks,actions,action_values")
	params.Add("level", "campaign")

	body, err := c.doInsightsRequest(ctx, accountID, startDate, endDate, params)
	if err != nil {
		return nil, err
	}

	var response insightsResponse[metadomain.CampaignInsight]
	if err := json.Unmarshal(body, &response); err != nil {
		logrus.WithError(err).Error("Erro ao decodificar JSON de insights de campanhas do Meta")
		return nil, errors.Wrap(err, "decodificando insights de campanhas")
	}

	return response.Data, nil
}

// GetDailyInsights busca os insights segmentados por dia (time_increment=1)
func (c *MetaClient) GetDailyInsights(ctx context.Context, accountID string, startDate, endDate time.Time) ([]metadomain.DailyInsight, error) {
	params := &url.Values{}
	params.Add("fields", "account_id,spend,impressions,clicks,actions,action_values")
	params.Add("time_increment", "1")

	body, err := c.doInsightsRequest(ctx, accountID, startDate, endDate, params)
	if err != nil {
		return nil, err
	}

	var response insightsResponse[metadomain.DailyInsight]
	if err := json.Unmarshal(body, &response); err != nil {
		logrus.WithError(err).Error("Erro ao decodificar JSON de insights diários do Meta")
		return nil, errors.Wrap(err, "decodificando insights diários")
	}

	return response.Data, nil
}

func (c *MetaClient) doInsightsRequest(ctx context.Context, accountID string, startDate, endDate time.Time, params *url.Values) ([]byte, error) {
	baseURL := fmt.Sprintf("%s/act_%s/insights", c.cfg.Meta.URL, accountID)

	timeRange := fmt.Sprintf("{\"since\":\"%s\",\"until\":\"%s\"}", startDate.Format(time.DateOnly), endDate.Format(time.DateOnly))
	params.Add("time_range", timeRange)
	params.Add("access_token", c.cfg.Meta.AccessToken)

	requestURL := baseURL + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "criando requisição para a Graph API")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "executando requisição para a Graph API")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "lendo resposta da Graph API")
	}

	if resp.StatusCode != http.StatusOK {
		logrus.WithFields(logrus.Fields{
			"account_id":  accountID,
			"status_code": resp.StatusCode,
			"body":        string(body),
		}).Error("Graph API retornou status de erro")
		return nil, errors.Errorf("graph api retornou status %d", resp.StatusCode)
	}

	return body, nil
}
