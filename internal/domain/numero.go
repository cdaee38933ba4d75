package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TicketNumeroPrefix is the literal prefix of every ticket number.
const TicketNumeroPrefix = "TPT"

// TicketNumeroPrefixForDate returns the date-scoped prefix, trailing dash
// included, e.g. "TPT-20260222-".
func TicketNumeroPrefixForDate(t time.Time) string {
	return fmt.Sprintf("%s-%s-", TicketNumeroPrefix, t.Format("20060102"))
}

// TicketNumeroSequence extracts the numeric suffix of a ticket number.
func TicketNumeroSequence(numero string) (int, error) {
	idx := strings.LastIndex(numero, "-")
	if idx < 0 || idx == len(numero)-1 {
		return 0, fmt.Errorf("numero de ticket malformado: %q", numero)
	}
	seq, err := strconv.Atoi(numero[idx+1:])
	if err != nil {
		return 0, fmt.Errorf("numero de ticket malformado: %q", numero)
	}
	return seq, nil
}

// NextTicketNumero computes the successor of the greatest existing number for
// the date. An empty last number starts the day at 001. The suffix is padded
// to three digits and widens naturally past 999, so callers selecting the
// greatest existing number must order by length before value.
func NextTicketNumero(last string, date time.Time) (string, error) {
	prefix := TicketNumeroPrefixForDate(date)
	seq := 1
	if last != "" {
		if !strings.HasPrefix(last, prefix) {
			return "", fmt.Errorf("numero %q fora do prefixo %q", last, prefix)
		}
		parsed, err := TicketNumeroSequence(last)
		if err != nil {
			return "", err
		}
		seq = parsed + 1
	}
	return fmt.Sprintf("%s%03d", prefix, seq), nil
}
