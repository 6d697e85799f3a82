package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	_ "github.com/lib/pq"
	"github.com/wmarczak/reporting-api/infrastructure/database/postgres"
	"github.com/wmarczak/reporting-api/internal/domain"
)

const (
	clientsTable = "clients c"
)

type ClientRepository interface {
	GetByID(clientID string) (*domain.Client, error)
	ListClients(availableStatus []domain.ClientStatus) ([]*domain.Client, error)
	SaveOrUpdate(client *domain.Client) error
	UpdateClient(client *domain.UpdateClientRequest) error
}

type clientRepository struct {
	conn *postgres.Connection
}

func NewClientRepository(conn *postgres.Connection) ClientRepository {
	return &clientRepository{
		conn: conn,
	}
}

func (r *clientRepository) GetByID(clientID string) (*domain.Client, error) {
	query, args, err := squirrel.
		Select("c.id, c.name, c.meta_account_id, c.google_account_id, c.status, c.created_at, c.updated_at").
		From(clientsTable).
		Where(squirrel.Eq{"c.id": clientID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)

	client := &domain.Client{}
	err = row.Scan(
		&client.ID,
		&client.Name,
		&client.MetaAccountID,
		&client.GoogleAccountID,
		&client.Status,
		&client.CreatedAt,
		&client.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear cliente: %w", err)
	}

	return client, nil
}

func (r *clientRepository) ListClients(availableStatus []domain.ClientStatus) ([]*domain.Client, error) {
	queryBuilder := squirrel.
		Select("c.id, c.name, c.meta_account_id, c.google_account_id, c.status, c.created_at, c.updated_at").
		From(clientsTable).
		OrderBy("c.name ASC").
		PlaceholderFormat(squirrel.Dollar)

	if len(availableStatus) > 0 {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"c.status": availableStatus})
	}

	query, args, err := queryBuilder.ToSql()
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

	clients := make([]*domain.Client, 0)
	for rows.Next() {
		client := &domain.Client{}
		err := rows.Scan(
			&client.ID,
			&client.Name,
			&client.MetaAccountID,
			&client.GoogleAccountID,
			&client.Status,
			&client.CreatedAt,
			&client.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear cliente: %w", err)
		}
		clients = append(clients, client)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return clients, nil
}

func (r *clientRepository) SaveOrUpdate(client *domain.Client) error {
	query := squirrel.StatementBuilder.
		Insert("clients").
		Columns("id", "name", "meta_account_id", "google_account_id", "status").
		Values(
			client.ID,
			client.Name,
			client.MetaAccountID,
			client.GoogleAccountID,
			client.Status,
		).
		Suffix(`
			ON CONFLICT (id) DO UPDATE SET
				name = EXCLUDED.name,
				meta_account_id = EXCLUDED.meta_account_id,
				google_account_id = EXCLUDED.google_account_id,
				status = EXCLUDED.status,
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

func (r *clientRepository) UpdateClient(client *domain.UpdateClientRequest) error {
	if client.ID == "" {
		return errors.New("ID is required")
	}

	queryBuilder := squirrel.
		Update("clients").
		Where(squirrel.Eq{"id": client.ID}).
		Set("updated_at", squirrel.Expr("NOW()")).
		PlaceholderFormat(squirrel.Dollar)

	// Atualiza apenas os campos fornecidos
	if client.Name != nil {
		queryBuilder = queryBuilder.Set("name", *client.Name)
	}

	if client.MetaAccountID != nil {
		queryBuilder = queryBuilder.Set("meta_account_id", *client.MetaAccountID)
	}

	if client.GoogleAccountID != nil {
		queryBuilder = queryBuilder.Set("google_account_id", *client.GoogleAccountID)
	}

	if client.Status != nil {
		queryBuilder = queryBuilder.Set("status", *client.Status)
	}

	sqlQuery, args, err := queryBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(sqlQuery, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	if rowsAffected == 0 {
		return errors.New("client not found")
	}

	return nil
}
