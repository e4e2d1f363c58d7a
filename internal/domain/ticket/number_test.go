package ticket

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "0001", FormatNumber(1))
	assert.Equal(t, "0042", FormatNumber(42))
	assert.Equal(t, "12345", FormatNumber(12345))
}

func TestParseNumber(t *testing.T) {
	for _, in := range []string{"7", "0007", " 007 "} {
		n, err := ParseNumber(in)
		require.NoError(t, err, in)
		assert.Equal(t, 7, n)
	}

	for _, in := range []string{"", "abc", "0", "-3"} {
		_, err := ParseNumber(in)
		assert.Error(t, err, in)
	}
}

func TestNextNumber(t *testing.T) {
	assert.Equal(t, 1, NextNumber(nil))

	tickets := make([]*Ticket, 0, 3)
	for _, n := range []int{1, 2, 3} {
		tk := newValidTicket(t)
		require.NoError(t, tk.SetNumber(n))
		tickets = append(tickets, tk)
	}
	assert.Equal(t, 4, NextNumber(tickets))
}
