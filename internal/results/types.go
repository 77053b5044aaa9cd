package results

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Gender is the athlete gender as reported by the results API.
type Gender string

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
)

// Athlete mirrors the nested athlete payload of a race result.
type Athlete struct {
	ID          string `json:"id"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Gender      Gender `json:"gender"`
	YearOfBirth int    `json:"yearOfBirth"`
}

// FullName returns "Last First", the order results are listed in.
func (a Athlete) FullName() string {
	return strings.TrimSpace(a.LastName + " " + a.FirstName)
}

// Race mirrors the nested race payload of a race result.
type Race struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Date     Date   `json:"date"`
	Location string `json:"location,omitempty"`
}

// AthleteRaceResult is a single finishing record.
type AthleteRaceResult struct {
	ID         string  `json:"id"`
	Athlete    Athlete `json:"athlete"`
	Race       Race    `json:"race"`
	TimeSecs   float64 `json:"timeSeconds"`
	GapSecs    float64 `json:"gapSeconds"`
	PaceMinKm  float64 `json:"paceMinKm"`
	Category   string  `json:"category"`
	BibNumber  int     `json:"bibNumber"`
	SportsClub string  `json:"sportsClub"`
	Position   int     `json:"position"`
}

// Date is a calendar day. The API sends either YYYY-MM-DD or a full
// RFC3339 timestamp.
type Date struct {
	time.Time
}

// NewDate builds a Date at midnight UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		d.Time = time.Time{}
		return nil
	}
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("race date: %w", err)
	}
	t, err := parseDate(raw)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format(dateLayout))
}

// String renders the day as YYYY-MM-DD, or "" for the zero value.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}

func parseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}
	for _, layout := range []string{dateLayout, time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("race date %q: unrecognized format", value)
}
