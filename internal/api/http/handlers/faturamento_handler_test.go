package handlers

import (
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "github.com/gestao-tpt/helpdesk/pkg/util"
)

func TestParseFaturadoFilter(t *testing.T) {
	cases := []struct {
		value string
		want  *bool
	}{
		{value: "", want: nil},
		{value: "true", want: boolPtr(true)},
		{value: "1", want: boolPtr(true)},
		{value: "false", want: boolPtr(false)},
		{value: "0", want: boolPtr(false)},
	}
	for _, tc := range cases {
		t.Run("valor "+tc.value, func(t *testing.T) {
			got, err := parseFaturadoFilter(tc.value)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestParseFaturadoFilterRejectsNonBool(t *testing.T) {
	for _, value := range []string{"bananas", "sim", "TRUEish", "2"} {
		got, err := parseFaturadoFilter(value)
		require.Nil(t, got)
		require.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"), "valor %q", value)
	}
}

func boolPtr(v bool) *bool { return &v }
