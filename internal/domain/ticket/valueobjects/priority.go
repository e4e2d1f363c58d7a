package valueobjects

import (
	"fmt"
	"strings"
)

type Priority string

const (
	PriorityLow    Priority = "Baixa"
	PriorityMedium Priority = "Média"
	PriorityHigh   Priority = "Alta"
)

// DefaultPriority is preselected on the submission form.
const DefaultPriority = PriorityMedium

var AllPriorities = []Priority{
	PriorityLow,
	PriorityMedium,
	PriorityHigh,
}

var priorityCodes = map[Priority]string{
	PriorityLow:    "low",
	PriorityMedium: "medium",
	PriorityHigh:   "high",
}

func (p Priority) String() string {
	return string(p)
}

func (p Priority) Code() string {
	return priorityCodes[p]
}

func (p Priority) IsValid() bool {
	_, ok := priorityCodes[p]
	return ok
}

// NewPriority parses a label or code; empty input yields the default.
func NewPriority(s string) (Priority, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultPriority, nil
	}
	for label, code := range priorityCodes {
		if strings.EqualFold(s, string(label)) || strings.EqualFold(s, code) {
			return label, nil
		}
	}
	return "", fmt.Errorf("invalid priority: %s", s)
}
