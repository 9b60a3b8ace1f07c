package dto

import (
	"realty/internal/domain/shared/dates"
)

// Calendar feeds the date-picker: the client greys out every day listed
// in Disabled. Days are ISO dates, day granularity only.
type Calendar struct {
	PropertyID  string   `json:"property_id"`
	From        string   `json:"from"`
	To          string   `json:"to"`
	Today       string   `json:"today"`
	CheckInFrom *string  `json:"checkin_date,omitempty"`
	CheckOutBy  *string  `json:"checkout_date,omitempty"`
	Disabled    []string `json:"disabled_dates"`
}

func MapCalendar(propertyID string, from, to, today dates.Day, checkInFrom, checkOutBy *dates.Day, disabled []dates.Day) Calendar {
	cal := Calendar{
		PropertyID: propertyID,
		From:       from.String(),
		To:         to.String(),
		Today:      today.String(),
		Disabled:   make([]string, 0, len(disabled)),
	}
	if checkInFrom != nil {
		s := checkInFrom.String()
		cal.CheckInFrom = &s
	}
	if checkOutBy != nil {
		s := checkOutBy.String()
		cal.CheckOutBy = &s
	}
	for _, d := range disabled {
		cal.Disabled = append(cal.Disabled, d.String())
	}
	return cal
}
