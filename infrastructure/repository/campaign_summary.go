package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/wmarczak/reporting-api/infrastructure/database/postgres"
	"github.com/wmarczak/reporting-api/internal/domain"
)

const (
	campaignSummariesTable = "campaign_summaries cs"
)

type CampaignSummaryRepository interface {
	GetByPeriod(clientID string, summaryType domain.Granularity, summaryDate time.Time, platform domain.Platform) (*domain.PeriodSummaryEntry, error)
	GetByDateRange(clientID string, summaryType domain.Granularity, startDate, endDate time.Time) ([]*domain.PeriodSummaryEntry, error)
	SaveOrUpdate(summary *domain.PeriodSummaryEntry) error
	DeleteOlderThanMonths(months int) (int64, error)
}

type campaignSummaryRepository struct {
	conn *postgres.Connection
}

func NewCampaignSummaryRepository(conn *postgres.Connection) CampaignSummaryRepository {
	return &campaignSummaryRepository{
		conn: conn,
	}
}

func (r *campaignSummaryRepository) GetByPeriod(clientID string, summaryType domain.Granularity, summaryDate time.Time, platform domain.Platform) (*domain.PeriodSummaryEntry, error) {
	query, args, err := squirrel.
		Select("cs.id, cs.client_id, cs.summary_type, cs.summary_date, cs.platform, cs.totals, cs.campaigns, cs.roas, cs.cost_per_reservation, cs.data_source, cs.last_updated, cs.created_at").
		From(campaignSummariesTable).
		Where(squirrel.Eq{
			"cs.client_id":    clientID,
			"cs.summary_type": summaryType,
			"cs.summary_date": summaryDate.Format("2006-01-02"),
			"cs.platform":     platform,
		}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
		}
		return nil, nil
	}

	summary, err := r.scanSummary(rows)
	if err != nil {
		return nil, fmt.Errorf("erro ao escanear resumo de período: %w", err)
	}

	return summary, nil
}

func (r *campaignSummaryRepository) GetByDateRange(clientID string, summaryType domain.Granularity, startDate, endDate time.Time) ([]*domain.PeriodSummaryEntry, error) {
	query, args, err := squirrel.
		Select("cs.id, cs.client_id, cs.summary_type, cs.summary_date, cs.platform, cs.totals, cs.campaigns, cs.roas, cs.cost_per_reservation, cs.data_source, cs.last_updated, cs.created_at").
		From(campaignSummariesTable).
		Where(squirrel.Eq{"cs.client_id": clientID, "cs.summary_type": summaryType}).
		Where(squirrel.GtOrEq{"cs.summary_date": startDate.Format("2006-01-02")}).
		Where(squirrel.LtOrEq{"cs.summary_date": endDate.Format("2006-01-02")}).
		OrderBy("cs.summary_date ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	summaries := make([]*domain.PeriodSummaryEntry, 0)
	for rows.Next() {
		summary, err := r.scanSummary(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear resumo de período: %w", err)
		}
		summaries = append(summaries, summary)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return summaries, nil
}

// SaveOrUpdate grava o resumo de um período fechado. O upsert torna a virada
// de período idempotente: reprocessar o mesmo período sobrescreve a mesma linha.
func (r *campaignSummaryRepository) SaveOrUpdate(summary *domain.PeriodSummaryEntry) error {
	totalsJSON, err := json.Marshal(summary.Totals)
	if err != nil {
		return fmt.Errorf("erro ao serializar totais para JSON: %w", err)
	}

	var campaignsJSON []byte
	if summary.Campaigns != nil {
		campaignsJSON, err = json.Marshal(summary.Campaigns)
		if err != nil {
			return fmt.Errorf("erro ao serializar campanhas para JSON: %w", err)
		}
	}

	query := squirrel.StatementBuilder.
		Insert("campaign_summaries").
		Columns("client_id", "summary_type", "summary_date", "platform", "totals", "campaigns", "roas", "cost_per_reservation", "data_source", "last_updated").
		Values(
			summary.ClientID,
			summary.SummaryType,
			summary.SummaryDate.Format("2006-01-02"),
			summary.Platform,
			totalsJSON,
			campaignsJSON,
			summary.ROAS,
			summary.CostPerReservation,
			summary.DataSource,
			summary.LastUpdated,
		).
		Suffix(`
			ON CONFLICT (client_id, summary_type, summary_date, platform) DO UPDATE SET
				totals = EXCLUDED.totals,
				campaigns = EXCLUDED.campaigns,
				roas = EXCLUDED.roas,
				cost_per_reservation = EXCLUDED.cost_per_reservation,
				data_source = EXCLUDED.data_source,
				last_updated = EXCLUDED.last_updated
		`).
		PlaceholderFormat(squirrel.Dollar)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(sqlQuery, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

func (r *campaignSummaryRepository) DeleteOlderThanMonths(months int) (int64, error) {
	cutoffDate := time.Now().AddDate(0, -months, 0).Format("2006-01-02")

	query, args, err := squirrel.
		Delete("campaign_summaries").
		Where(squirrel.Lt{"summary_date": cutoffDate}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(query, args...)
	if err != nil {
		return 0, fmt.Errorf("erro ao executar a query: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	return rowsAffected, nil
}

func (r *campaignSummaryRepository) scanSummary(rows *sql.Rows) (*domain.PeriodSummaryEntry, error) {
	summary := &domain.PeriodSummaryEntry{}
	var totalsJSON, campaignsJSON []byte

	err := rows.Scan(
		&summary.ID,
		&summary.ClientID,
		&summary.SummaryType,
		&summary.SummaryDate,
		&summary.Platform,
		&totalsJSON,
		&campaignsJSON,
		&summary.ROAS,
		&summary.CostPerReservation,
		&summary.DataSource,
		&summary.LastUpdated,
		&summary.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if totalsJSON != nil {
		if err := json.Unmarshal(totalsJSON, &summary.Totals); err != nil {
			return nil, fmt.Errorf("erro ao deserializar JSON de totals: %w", err)
		}
	}

	if campaignsJSON != nil {
		if err := json.Unmarshal(campaignsJSON, &summary.Campaigns); err != nil {
			return nil, fmt.Errorf("erro ao deserializar JSON de campaigns: %w", err)
		}
	}

	return summary, nil
}
