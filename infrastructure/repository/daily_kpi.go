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
	dailyKpisTable = "daily_kpis dk"
)

type DailyKpiRepository interface {
	GetByDateRange(clientID string, platform domain.Platform, startDate, endDate time.Time) ([]*domain.DailyKpiEntry, error)
	GetMostRecent(clientID string, platform domain.Platform, limit int) ([]*domain.DailyKpiEntry, error)
	SaveOrUpdate(entry *domain.DailyKpiEntry) error
	SumClicks(clientID string, platform domain.Platform, startDate, endDate time.Time) (int, error)
	DeleteOlderThan(days int) (int64, error)
}

type dailyKpiRepository struct {
	conn *postgres.Connection
}

func NewDailyKpiRepository(conn *postgres.Connection) DailyKpiRepository {
	return &dailyKpiRepository{
		conn: conn,
	}
}

// GetByDateRange retorna as linhas diárias do intervalo ordenadas pela data
// ascendente. A ordenação é garantida aqui para que a agregação não dependa
// da ordem física da tabela.
func (r *dailyKpiRepository) GetByDateRange(clientID string, platform domain.Platform, startDate, endDate time.Time) ([]*domain.DailyKpiEntry, error) {
	query, args, err := squirrel.
		Select("dk.id, dk.client_id, dk.date, dk.platform, dk.spend, dk.impressions, dk.clicks, dk.conversions, dk.funnel_metrics, dk.average_ctr, dk.average_cpc, dk.created_at, dk.updated_at").
		From(dailyKpisTable).
		Where(squirrel.Eq{"dk.client_id": clientID, "dk.platform": platform}).
		Where(squirrel.GtOrEq{"dk.date": startDate.Format("2006-01-02")}).
		Where(squirrel.LtOrEq{"dk.date": endDate.Format("2006-01-02")}).
		OrderBy("dk.date ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.queryEntries(query, args)
}

// GetMostRecent retorna as últimas linhas disponíveis em ordem decrescente de
// data, usadas como fallback quando o período pedido não tem dados
func (r *dailyKpiRepository) GetMostRecent(clientID string, platform domain.Platform, limit int) ([]*domain.DailyKpiEntry, error) {
	query, args, err := squirrel.
		Select("dk.id, dk.client_id, dk.date, dk.platform, dk.spend, dk.impressions, dk.clicks, dk.conversions, dk.funnel_metrics, dk.average_ctr, dk.average_cpc, dk.created_at, dk.updated_at").
		From(dailyKpisTable).
		Where(squirrel.Eq{"dk.client_id": clientID, "dk.platform": platform}).
		OrderBy("dk.date DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.queryEntries(query, args)
}

func (r *dailyKpiRepository) SaveOrUpdate(entry *domain.DailyKpiEntry) error {
	funnelJSON, err := json.Marshal(entry.Funnel)
	if err != nil {
		return fmt.Errorf("erro ao serializar métricas de funil para JSON: %w", err)
	}

	query := squirrel.StatementBuilder.
		Insert("daily_kpis").
		Columns("client_id", "date", "platform", "spend", "impressions", "clicks", "conversions", "funnel_metrics", "average_ctr", "average_cpc").
		Values(
			entry.ClientID,
			entry.Date.Format("2006-01-02"),
			entry.Platform,
			entry.Spend,
			entry.Impressions,
			entry.Clicks,
			entry.Conversions,
			funnelJSON,
			entry.AverageCtr,
			entry.AverageCpc,
		).
		Suffix(`
			ON CONFLICT (client_id, date, platform) DO UPDATE SET
				spend = EXCLUDED.spend,
				impressions = EXCLUDED.impressions,
				clicks = EXCLUDED.clicks,
				conversions = EXCLUDED.conversions,
				funnel_metrics = EXCLUDED.funnel_metrics,
				average_ctr = EXCLUDED.average_ctr,
				average_cpc = EXCLUDED.average_cpc,
				updated_at = NOW()
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

// SumClicks calcula a soma de cliques diretamente no banco, como verificação
// independente da agregação feita em memória
func (r *dailyKpiRepository) SumClicks(clientID string, platform domain.Platform, startDate, endDate time.Time) (int, error) {
	query, args, err := squirrel.
		Select("COALESCE(SUM(dk.clicks), 0)").
		From(dailyKpisTable).
		Where(squirrel.Eq{"dk.client_id": clientID, "dk.platform": platform}).
		Where(squirrel.GtOrEq{"dk.date": startDate.Format("2006-01-02")}).
		Where(squirrel.LtOrEq{"dk.date": endDate.Format("2006-01-02")}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var total int
	if err := r.conn.QueryRow(query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("erro ao somar cliques: %w", err)
	}

	return total, nil
}

func (r *dailyKpiRepository) DeleteOlderThan(days int) (int64, error) {
	cutoffDate := time.Now().AddDate(0, 0, -days).Format("2006-01-02")

	query, args, err := squirrel.
		Delete("daily_kpis").
		Where(squirrel.Lt{"date": cutoffDate}).
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

func (r *dailyKpiRepository) queryEntries(query string, args []interface{}) ([]*domain.DailyKpiEntry, error) {
	rows, err := r.conn.Query(query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	entries := make([]*domain.DailyKpiEntry, 0)
	for rows.Next() {
		entry, err := r.scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear KPI diário: %w", err)
		}
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return entries, nil
}

func (r *dailyKpiRepository) scanEntry(rows *sql.Rows) (*domain.DailyKpiEntry, error) {
	entry := &domain.DailyKpiEntry{}
	var funnelJSON []byte

	err := rows.Scan(
		&entry.ID,
		&entry.ClientID,
		&entry.Date,
		&entry.Platform,
		&entry.Spend,
		&entry.Impressions,
		&entry.Clicks,
		&entry.Conversions,
		&funnelJSON,
		&entry.AverageCtr,
		&entry.AverageCpc,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if funnelJSON != nil {
		if err := json.Unmarshal(funnelJSON, &entry.Funnel); err != nil {
			return nil, fmt.Errorf("erro ao deserializar JSON de funnel_metrics: %w", err)
		}
	}

	return entry, nil
}
