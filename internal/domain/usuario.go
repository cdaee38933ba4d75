package domain

import (
	"fmt"
	"time"
)

// Role enumerates the closed set of user roles. Role checks go through
// auth.Allowed; raw string comparison against the column value is not used
// anywhere else.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleTecnico Role = "tecnico"
)

// ParseRole validates a stored role value against the closed enumeration.
func ParseRole(value string) (Role, error) {
	switch Role(value) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleTecnico:
		return RoleTecnico, nil
	default:
		return "", fmt.Errorf("role desconhecida: %q", value)
	}
}

// Usuario is an internal operator (admin or technician).
type Usuario struct {
	ID              string
	Email           string
	SenhaHash       string
	Nome            string
	Role            Role
	UltimoAcesso    *time.Time
	Ativo           bool
	DataCriacao     time.Time
	DataAtualizacao time.Time
}
