package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/wmarczak/reporting-api/infrastructure/database/postgres"
	"github.com/wmarczak/reporting-api/internal/domain"
)

// As tabelas de cache do período corrente são espelhadas: uma para o mês e
// outra para a semana ISO, com o mesmo formato de linha
const (
	currentMonthCacheTable = "current_month_cache"
	currentWeekCacheTable  = "current_week_cache"
)

type CurrentPeriodCacheRepository interface {
	GetByClientAndPlatform(granularity domain.Granularity, clientID string, platform domain.Platform) (*domain.CurrentPeriodCacheEntry, error)
	Upsert(granularity domain.Granularity, entry *domain.CurrentPeriodCacheEntry) error
	ListExpired(granularity domain.Granularity, currentPeriodID string) ([]*domain.CurrentPeriodCacheEntry, error)
	Delete(granularity domain.Granularity, id int64) error
}

type currentPeriodCacheRepository struct {
	conn *postgres.Connection
}

func NewCurrentPeriodCacheRepository(conn *postgres.Connection) CurrentPeriodCacheRepository {
	return &currentPeriodCacheRepository{
		conn: conn,
	}
}

func tableFor(granularity domain.Granularity) (string, error) {
	switch granularity {
	case domain.GranularityMonth:
		return currentMonthCacheTable, nil
	case domain.GranularityWeek:
		return currentWeekCacheTable, nil
	default:
		return "", fmt.Errorf("granularidade desconhecida: %s", granularity)
	}
}

func (r *currentPeriodCacheRepository) GetByClientAndPlatform(granularity domain.Granularity, clientID string, platform domain.Platform) (*domain.CurrentPeriodCacheEntry, error) {
	table, err := tableFor(granularity)
	if err != nil {
		return nil, err
	}

	query, args, err := squirrel.
		Select("id, client_id, platform, period_id, payload, last_updated, created_at").
		From(table).
		Where(squirrel.Eq{"client_id": clientID, "platform": platform}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)
	entry, err := r.scanEntry(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear cache de período: %w", err)
	}

	return entry, nil
}

// Upsert grava o payload do período corrente. O conflito por
// (client_id, platform) garante no máximo uma linha por cliente e plataforma:
// a virada de período troca o period_id na mesma linha.
func (r *currentPeriodCacheRepository) Upsert(granularity domain.Granularity, entry *domain.CurrentPeriodCacheEntry) error {
	table, err := tableFor(granularity)
	if err != nil {
		return err
	}

	var payloadJSON []byte
	if entry.Payload != nil {
		payloadJSON, err = json.Marshal(entry.Payload)
		if err != nil {
			return fmt.Errorf("erro ao serializar payload para JSON: %w", err)
		}
	}

	query := squirrel.StatementBuilder.
		Insert(table).
		Columns("client_id", "platform", "period_id", "payload", "last_updated").
		Values(
			entry.ClientID,
			entry.Platform,
			entry.PeriodID,
			payloadJSON,
			entry.LastUpdated,
		).
		Suffix(`
			ON CONFLICT (client_id, platform) DO UPDATE SET
				period_id = EXCLUDED.period_id,
				payload = EXCLUDED.payload,
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

// ListExpired retorna as linhas cujo period_id não é mais o período corrente,
// candidatas a arquivamento na virada de período
func (r *currentPeriodCacheRepository) ListExpired(granularity domain.Granularity, currentPeriodID string) ([]*domain.CurrentPeriodCacheEntry, error) {
	table, err := tableFor(granularity)
	if err != nil {
		return nil, err
	}

	query, args, err := squirrel.
		Select("id, client_id, platform, period_id, payload, last_updated, created_at").
		From(table).
		Where(squirrel.NotEq{"period_id": currentPeriodID}).
		OrderBy("client_id ASC, platform ASC").
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

	entries := make([]*domain.CurrentPeriodCacheEntry, 0)
	for rows.Next() {
		entry, err := r.scanEntryRows(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear cache de período: %w", err)
		}
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return entries, nil
}

func (r *currentPeriodCacheRepository) Delete(granularity domain.Granularity, id int64) error {
	table, err := tableFor(granularity)
	if err != nil {
		return err
	}

	query, args, err := squirrel.
		Delete(table).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

func (r *currentPeriodCacheRepository) scanEntry(row *sql.Row) (*domain.CurrentPeriodCacheEntry, error) {
	entry := &domain.CurrentPeriodCacheEntry{}
	var payloadJSON []byte

	err := row.Scan(
		&entry.ID,
		&entry.ClientID,
		&entry.Platform,
		&entry.PeriodID,
		&payloadJSON,
		&entry.LastUpdated,
		&entry.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := r.decodePayload(entry, payloadJSON); err != nil {
		return nil, err
	}

	return entry, nil
}

func (r *currentPeriodCacheRepository) scanEntryRows(rows *sql.Rows) (*domain.CurrentPeriodCacheEntry, error) {
	entry := &domain.CurrentPeriodCacheEntry{}
	var payloadJSON []byte

	err := rows.Scan(
		&entry.ID,
		&entry.ClientID,
		&entry.Platform,
		&entry.PeriodID,
		&payloadJSON,
		&entry.LastUpdated,
		&entry.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := r.decodePayload(entry, payloadJSON); err != nil {
		return nil, err
	}

	return entry, nil
}

func (r *currentPeriodCacheRepository) decodePayload(entry *domain.CurrentPeriodCacheEntry, payloadJSON []byte) error {
	if payloadJSON == nil {
		return nil
	}

	payload := &domain.PeriodPayload{}
	if err := json.Unmarshal(payloadJSON, payload); err != nil {
		return fmt.Errorf("erro ao deserializar JSON de payload: %w", err)
	}
	entry.Payload = payload

	return nil
}
