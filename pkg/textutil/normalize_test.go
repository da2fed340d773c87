package textutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tu-usuario/autosqp-api/pkg/textutil"
)

func TestFoldSearchTerm(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Muñoz", "munoz"},
		{"  José Pérez  ", "jose perez"},
		{"CAMIÓN", "camion"},
		{"toyota", "toyota"},
		{"", ""},
		{"   ", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, textutil.FoldSearchTerm(tc.in), "entrada: %q", tc.in)
	}
}

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"+57 300 123 4567", "573001234567"},
		{"573001234567", "573001234567"},
		{"(300) 123-4567", "3001234567"},
		{"sin dígitos", ""},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, textutil.NormalizePhone(tc.in), "entrada: %q", tc.in)
	}
}
