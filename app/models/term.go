package models

import "time"

// CustomDate handles date-only JSON parsing
type CustomDate struct {
	time.Time
}

func (cd *CustomDate) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return err
	}
	cd.Time = t
	return nil
}

// Term represents a term/semester within an academic year. The current term
// bounds the term-to-date fairness window.
type Term struct {
	ID        string     `json:"id" db:"id"`
	Name      string     `json:"name" db:"name"`
	StartDate CustomDate `json:"start_date" db:"start_date"`
	EndDate   CustomDate `json:"end_date" db:"end_date"`
	IsCurrent bool       `json:"is_current" db:"is_current"`
}

// IsCurrentByDate checks if the term is current based on today's date
func (t *Term) IsCurrentByDate() bool {
	now := time.Now()
	return now.After(t.StartDate.Time) && now.Before(t.EndDate.Time)
}

// Contains reports whether a YYYY-MM-DD date string falls inside the term.
func (t *Term) Contains(date string) bool {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return false
	}
	return !d.Before(t.StartDate.Time) && !d.After(t.EndDate.Time)
}
