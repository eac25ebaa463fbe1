package domain

import "errors"

var ErrLocationNotFound = errors.New("partner location not found")

// ScheduleEntry is one weekday of a partner's opening hours.
// DayOfWeek: 0=Monday .. 6=Sunday. Times are "HH:MM" strings.
type ScheduleEntry struct {
	ID        string `json:"id"`
	PartnerID string `json:"partner_id"`
	DayOfWeek int    `json:"day_of_week"`
	OpenTime  string `json:"open_time,omitempty"`
	CloseTime string `json:"close_time,omitempty"`
	Closed    bool   `json:"is_closed"`
}

// Location is a partner's geographic point of sale.
type Location struct {
	ID        string  `json:"id"`
	PartnerID string  `json:"partner_id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address,omitempty"`
}
