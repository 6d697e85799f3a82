package domain

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims são as claims dos tokens de serviço emitidos para os consumidores
// da API (camada de rotas do produto e agendadores externos)
type Claims struct {
	Subject string `json:"sub_name"`
	Role    string `json:"role"`
	jwt.RegisteredClaims
}

const (
	RoleAdmin   = "admin"
	RoleService = "service"
	RoleViewer  = "viewer"
)
