package types

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

var clockLayouts = []string{"15:04", "15:04:05"}

// Date is a calendar day on the wire. Clients send "2006-01-02"; full RFC3339
// timestamps are accepted as well. It marshals back to "2006-01-02".
type Date struct {
	time.Time
}

func NewDate(t time.Time) Date {
	return Date{t}
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		*d = Date{}
		return nil
	}
	if t, err := time.Parse(dateLayout, raw); err == nil {
		*d = Date{t}
		return nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		*d = Date{t}
		return nil
	}
	return fmt.Errorf("invalid date %q, want YYYY-MM-DD", raw)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format(dateLayout))
}

// TimePtr returns the underlying time, or nil for a nil date.
func (d *Date) TimePtr() *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}

// Clock is a time of day on the wire, e.g. "08:30". Seconds and full RFC3339
// timestamps are accepted as well; bare clock values are anchored to
// 1970-01-01 UTC. It marshals back to "15:04".
type Clock struct {
	time.Time
}

func NewClock(t time.Time) Clock {
	return Clock{t}
}

func (c *Clock) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("time must be a string: %w", err)
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		*c = Clock{}
		return nil
	}
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			*c = Clock{time.Date(1970, time.January, 1, t.Hour(), t.Minute(), t.Second(), 0, time.UTC)}
			return nil
		}
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		*c = Clock{t}
		return nil
	}
	return fmt.Errorf("invalid time %q, want HH:MM", raw)
}

func (c Clock) MarshalJSON() ([]byte, error) {
	if c.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(c.Format("15:04"))
}

// TimePtr returns the underlying time, or nil for a nil clock.
func (c *Clock) TimePtr() *time.Time {
	if c == nil {
		return nil
	}
	t := c.Time
	return &t
}
