package models

import (
	"fmt"
	"strings"
)

// Location is where a reported issue is. It has no lifecycle of its own and
// is embedded in IssueReport.
type Location struct {
	Address    string `json:"address" validate:"required,notblank,max=500"`
	Area       string `json:"area" validate:"max=100"`
	City       string `json:"city" validate:"max=100"`
	PostalCode string `json:"postalCode" validate:"max=20"`
}

// String joins the parts as "address, area, city postalCode" with dangling
// separators trimmed, so missing trailing parts do not leave ", ," behind.
func (l Location) String() string {
	s := fmt.Sprintf("%s, %s, %s %s", l.Address, l.Area, l.City, l.PostalCode)
	return strings.Trim(s, " ,")
}
