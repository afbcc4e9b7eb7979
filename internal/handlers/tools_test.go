package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculate(t *testing.T) {
	cases := []struct {
		expr string
		want string
	}{
		{"2+3", "5"},
		{"2 + 3 * 4", "14"},
		{"(2+3)*4", "20"},
		{"10/4", "2.5"},
		{"-5+3", "-2"},
		{"2*(3+(4-1))", "12"},
		{"2^10", "1024"},
		{"2^3^2", "512"},
		{"sqrt(16)", "4"},
		{"sqrt(9)+1", "4"},
	}
	for _, tc := range cases {
		resp, err := calculate(tc.expr)
		require.NoError(t, err, "expr %q", tc.expr)
		assert.Contains(t, resp.Body, "*"+tc.want+"*", "expr %q", tc.expr)
	}
}

func TestCalculateRejectsGarbage(t *testing.T) {
	for _, expr := range []string{"", "2+", "(2+3", "2**3", "rm -rf /", "1/0"} {
		_, err := calculate(expr)
		assert.Error(t, err, "expr %q should not evaluate", expr)
	}
}
