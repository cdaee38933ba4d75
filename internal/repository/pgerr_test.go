package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func TestIsUniqueViolation(t *testing.T) {
	unique := &pgconn.PgError{Code: "23505", ConstraintName: "ux_tickets_numero"}

	require.True(t, IsUniqueViolation(unique, "ux_tickets_numero"))
	require.True(t, IsUniqueViolation(unique, ""))
	require.False(t, IsUniqueViolation(unique, "ux_faturamento_ticket_ativo"))

	wrapped := fmt.Errorf("insert ticket: %w", unique)
	require.True(t, IsUniqueViolation(wrapped, "ux_tickets_numero"))

	require.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}, ""))
	require.False(t, IsUniqueViolation(errors.New("boom"), ""))
	require.False(t, IsUniqueViolation(nil, ""))
}
