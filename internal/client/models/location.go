package models

import "strings"

// Location is a resolved geographic place attached to a journal entry.
// An absent location is represented by a nil pointer, never by a zeroed
// struct: historical records with latitude=longitude=0 and no name are a
// legacy artifact and are rejected at the input boundary (see Validate).
type Location struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Country   string  `json:"country,omitempty"`
	City      string  `json:"city,omitempty"`
	Place     string  `json:"placeName,omitempty"`
}

// IsZeroSentinel reports whether the location is the ambiguous
// origin-with-no-name record that older data used to mean "unset".
func (l *Location) IsZeroSentinel() bool {
	return l != nil && l.Latitude == 0 && l.Longitude == 0 &&
		strings.TrimSpace(l.Name) == "" && strings.TrimSpace(l.Place) == ""
}

// Validate checks coordinate ranges and rejects the zero sentinel.
func (l *Location) Validate() error {
	if l == nil {
		return nil
	}
	if l.IsZeroSentinel() {
		return ErrAmbiguousLocation
	}
	if l.Latitude < -90 || l.Latitude > 90 {
		return ErrLatitudeOutOfRange
	}
	if l.Longitude < -180 || l.Longitude > 180 {
		return ErrLongitudeOutOfRange
	}
	return nil
}
