package ticket

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatNumber renders a ticket number zero-padded to four digits.
func FormatNumber(n int) string {
	return fmt.Sprintf("%04d", n)
}

// ParseNumber accepts a number with or without padding ("7" or "0007").
func ParseNumber(s string) (int, error) {
	s = strings.TrimSpace(s)
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid ticket number: %q", s)
	}
	return n, nil
}

// NextNumber returns max(existing)+1. Tickets are never deleted, so for a
// store written only by this code it equals len(existing)+1.
func NextNumber(existing []*Ticket) int {
	max := 0
	for _, t := range existing {
		if t.number > max {
			max = t.number
		}
	}
	return max + 1
}
