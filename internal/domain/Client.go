package domain

import (
	"time"
)

type ClientStatus string

const (
	ClientStatusActive   ClientStatus = "ACTIVE"
	ClientStatusInactive ClientStatus = "INACTIVE"
)

// Client representa um cliente da plataforma de relatórios, com os
// identificadores das contas de anúncios em cada plataforma
type Client struct {
	ID              string       `json:"id"`
	Name            string       `json:"name"`
	MetaAccountID   *string      `json:"meta_account_id"`
	GoogleAccountID *string      `json:"google_account_id"`
	Status          ClientStatus `json:"status"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

// UpdateClientRequest carrega os campos opcionais de atualização de um cliente
type UpdateClientRequest struct {
	ID              string        `json:"id"`
	Name            *string       `json:"name,omitempty"`
	MetaAccountID   *string       `json:"meta_account_id,omitempty"`
	GoogleAccountID *string       `json:"google_account_id,omitempty"`
	Status          *ClientStatus `json:"status,omitempty"`
}

// HasMeta indica se o cliente tem conta Meta Ads configurada
func (c *Client) HasMeta() bool {
	return c.MetaAccountID != nil && *c.MetaAccountID != ""
}

// HasGoogle indica se o cliente tem conta Google Ads configurada
func (c *Client) HasGoogle() bool {
	return c.GoogleAccountID != nil && *c.GoogleAccountID != ""
}
