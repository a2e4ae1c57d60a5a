package models

import (
	"fmt"
	"strings"
	"time"
)

// Event represents an upcoming race.
type Event struct {
	// ID is the surrogate primary key assigned by the database.
	ID int64

	Name string
	Date time.Time

	// CompetitorCount caches the number of ledger rows for this event.
	CompetitorCount int

	// Location is optional free text (e.g. "base lodge, north side").
	Location *string

	City  string
	State string
	Zip   string
	Venue string

	Division   string
	Discipline string

	// CreatorID is the owning account. The column is nullable at the
	// schema level but application logic always sets it.
	CreatorID int64

	// Fee is the optional entry fee.
	Fee *float64

	// URL optionally points at more information.
	URL *string
}

// EventParams carries the mutable fields for creating or updating an event.
type EventParams struct {
	Name       string
	Date       time.Time
	Location   string
	City       string
	State      string
	Zip        string
	Venue      string
	Discipline string
	Division   string
	Fee        *float64
	URL        string
}

// Validate normalizes the params and reports every missing or invalid
// required field as a single ValidationError.
func (p *EventParams) Validate() error {
	p.Name = strings.TrimSpace(p.Name)
	p.Location = strings.TrimSpace(p.Location)
	p.City = strings.TrimSpace(p.City)
	p.State = strings.ToUpper(strings.TrimSpace(p.State))
	p.Zip = strings.TrimSpace(p.Zip)
	p.Venue = strings.TrimSpace(p.Venue)
	p.URL = strings.TrimSpace(p.URL)

	var missing []string
	if p.Name == "" {
		missing = append(missing, "name")
	}
	if p.Date.IsZero() {
		missing = append(missing, "date")
	}
	if p.City == "" {
		missing = append(missing, "city")
	}
	if len(p.State) != 2 {
		missing = append(missing, "state")
	}
	if p.Zip == "" {
		missing = append(missing, "zip")
	}
	if p.Venue == "" {
		missing = append(missing, "venue")
	}
	if !IsDiscipline(p.Discipline) {
		missing = append(missing, "discipline")
	}
	if !IsDivision(p.Division) {
		missing = append(missing, "division")
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}

// OptionalLocation returns the location, or nil when absent.
func (p *EventParams) OptionalLocation() *string { return optional(p.Location) }

// OptionalURL returns the URL, or nil when absent.
func (p *EventParams) OptionalURL() *string { return optional(p.URL) }

// EventFilter narrows an event listing. Zero-value fields are ignored.
type EventFilter struct {
	// Search matches case-insensitively against name, city and venue.
	Search string
	// State matches exactly against the two-letter state code.
	State string
	// Discipline matches exactly against the event discipline.
	Discipline string
}

// ValidationError reports the required fields missing from an input.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}
