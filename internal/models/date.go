package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a day-granular timestamp. Entity audit fields and the customer
// creation-date filters operate on whole days, so the time-of-day part is
// always truncated away.
type Date struct {
	time.Time
}

// Today returns the current date truncated to day granularity.
func Today() Date {
	return DateOf(time.Now())
}

// DateOf truncates t to day granularity in UTC.
func DateOf(t time.Time) Date {
	return Date{time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a date in 2006-01-02 form.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: expected format %s", s, dateLayout)
	}
	return Date{t}, nil
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value implements driver.Valuer so a Date can be bound to a DATE column.
func (d Date) Value() (driver.Value, error) {
	return d.Time, nil
}

// Scan implements sql.Scanner.
func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		*d = DateOf(v)
		return nil
	case nil:
		*d = Date{}
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Date", src)
	}
}
