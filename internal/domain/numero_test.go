package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTicketNumeroPrefixForDate(t *testing.T) {
	date := time.Date(2026, 2, 22, 15, 30, 0, 0, time.UTC)
	require.Equal(t, "TPT-20260222-", TicketNumeroPrefixForDate(date))
}

func TestNextTicketNumero(t *testing.T) {
	date := time.Date(2026, 2, 22, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		last    string
		want    string
		wantErr bool
	}{
		{name: "first of the day", last: "", want: "TPT-20260222-001"},
		{name: "increments sequence", last: "TPT-20260222-001", want: "TPT-20260222-002"},
		{name: "keeps padding below 100", last: "TPT-20260222-041", want: "TPT-20260222-042"},
		{name: "crosses to three digits", last: "TPT-20260222-099", want: "TPT-20260222-100"},
		{name: "widens past 999", last: "TPT-20260222-999", want: "TPT-20260222-1000"},
		{name: "keeps widening", last: "TPT-20260222-1000", want: "TPT-20260222-1001"},
		{name: "rejects other day", last: "TPT-20260221-007", wantErr: true},
		{name: "rejects malformed suffix", last: "TPT-20260222-abc", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NextTicketNumero(tt.last, date)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestTicketNumeroSequence(t *testing.T) {
	seq, err := TicketNumeroSequence("TPT-20260222-042")
	require.NoError(t, err)
	require.Equal(t, 42, seq)

	_, err = TicketNumeroSequence("TPT-20260222-")
	require.Error(t, err)
}

func TestValidMesReferencia(t *testing.T) {
	require.True(t, ValidMesReferencia("2026-02"))
	require.True(t, ValidMesReferencia("1999-12"))
	require.False(t, ValidMesReferencia("2026-2"))
	require.False(t, ValidMesReferencia("02-2026"))
	require.False(t, ValidMesReferencia("2026/02"))
	require.False(t, ValidMesReferencia(""))
}

func TestMesReferenciaAtual(t *testing.T) {
	// 22:30 local on Jan 31st is already February in UTC.
	now := time.Date(2026, 1, 31, 22, 30, 0, 0, time.FixedZone("BRT", -3*3600))
	require.Equal(t, "2026-02", MesReferenciaAtual(now))
}
