package clients

import (
	"errors"
	"fmt"
)

// Erros específicos para o contexto de clientes
var (
	// Erros de validação
	ErrClientIDRequired = errors.New("client ID is required")
	ErrClientNotFound   = errors.New("client not found")

	// Erros de banco de dados
	ErrDatabaseOperation = errors.New("database operation error")
	ErrUpdateClient      = errors.New("error updating client")
	ErrFetchClients      = errors.New("error fetching clients from database")
)

// ClientError é um erro com contexto adicional para clientes
type ClientError struct {
	Err      error  // Erro base
	Code     string // Código de erro para API
	ClientID string // ID do cliente envolvido (quando aplicável)
	Details  string // Detalhes adicionais
}

// Error implementa a interface error
func (e *ClientError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *ClientError) Unwrap() error {
	return e.Err
}

// NewClientError cria um novo ClientError
func NewClientError(err error, code string, details string) *ClientError {
	return &ClientError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}

// NewClientErrorWithID cria um novo ClientError com ID do cliente
func NewClientErrorWithID(err error, code string, clientID string, details string) *ClientError {
	return &ClientError{
		Err:      err,
		Code:     code,
		ClientID: clientID,
		Details:  details,
	}
}
