package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

const (
	DateLayout          = "2006-01-02"
	LocalDateTimeLayout = "2006-01-02T15:04:05"
)

// LocalDateTime - момент без часового пояса, как его хранит колонка timestamp.
// В JSON сериализуется как "2024-08-31T12:30:00".
type LocalDateTime struct {
	time.Time
}

func NewLocalDateTime(date time.Time, hour, minute int) LocalDateTime {
	return LocalDateTime{Time: time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, time.UTC)}
}

func (t LocalDateTime) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Format(LocalDateTimeLayout))
}

func (t *LocalDateTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	parsed, err := time.Parse(LocalDateTimeLayout, s)
	if err != nil {
		return fmt.Errorf("invalid datetime %q: %w", s, err)
	}
	t.Time = parsed
	return nil
}

func (t LocalDateTime) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return t.Format(LocalDateTimeLayout), nil
}

func (t *LocalDateTime) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		t.Time = time.Time{}
	case time.Time:
		t.Time = time.Date(v.Year(), v.Month(), v.Day(), v.Hour(), v.Minute(), v.Second(), 0, time.UTC)
	default:
		return fmt.Errorf("cannot scan %T into LocalDateTime", src)
	}
	return nil
}

// Date - календарная дата (колонка date), в JSON "2006-01-02".
type Date struct {
	time.Time
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format(DateLayout))
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		d.Time = time.Time{}
		return nil
	}
	parsed, err := time.Parse(DateLayout, s)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", s, err)
	}
	d.Time = parsed
	return nil
}

func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.Format(DateLayout), nil
}

func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		d.Time = time.Time{}
	case time.Time:
		d.Time = time.Date(v.Year(), v.Month(), v.Day(), 0, 0, 0, 0, time.UTC)
	default:
		return fmt.Errorf("cannot scan %T into Date", src)
	}
	return nil
}
