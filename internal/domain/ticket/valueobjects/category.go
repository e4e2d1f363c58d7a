package valueobjects

import (
	"fmt"
	"strings"
)

type Category string

const (
	CategorySystem        Category = "Sistema em si"
	CategorySystemData    Category = "Dados do Sistema"
	CategoryCustomization Category = "Customização do Sistema"
	CategoryTicketPortal  Category = "Portal de tickets"
)

var AllCategories = []Category{
	CategorySystem,
	CategorySystemData,
	CategoryCustomization,
	CategoryTicketPortal,
}

var categoryCodes = map[Category]string{
	CategorySystem:        "system",
	CategorySystemData:    "system_data",
	CategoryCustomization: "customization",
	CategoryTicketPortal:  "ticket_portal",
}

func (c Category) String() string {
	return string(c)
}

func (c Category) Code() string {
	return categoryCodes[c]
}

func (c Category) IsValid() bool {
	_, ok := categoryCodes[c]
	return ok
}

func NewCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	for label, code := range categoryCodes {
		if strings.EqualFold(s, string(label)) || strings.EqualFold(s, code) {
			return label, nil
		}
	}
	return "", fmt.Errorf("invalid category: %s", s)
}
