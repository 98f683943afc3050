package helpers

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire and storage format for calendar dates
const DateLayout = "2006-01-02"

// timestampLayouts are the text forms a TIMESTAMP column may come back in.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05.999999999-07:00",
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	DateLayout,
}

// GetNullString converts a string pointer to sql.NullString.
// If the pointer is nil, returns an empty NullString.
func GetNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// GetContentNullString converts a string value to sql.NullString.
// If the string is empty, returns an empty NullString.
func GetContentNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// NullTime scans TIMESTAMP columns from either engine. SQLite may hand back
// text while PostgreSQL returns time.Time.
type NullTime struct {
	Time  time.Time
	Valid bool
}

// Scan implements sql.Scanner.
func (n *NullTime) Scan(value interface{}) error {
	n.Time, n.Valid = time.Time{}, false
	switch v := value.(type) {
	case nil:
		return nil
	case time.Time:
		n.Time, n.Valid = v.UTC(), true
		return nil
	case string:
		return n.parse(v)
	case []byte:
		return n.parse(string(v))
	case int64:
		n.Time, n.Valid = time.Unix(v, 0).UTC(), true
		return nil
	default:
		return fmt.Errorf("cannot scan %T into NullTime", value)
	}
}

func (n *NullTime) parse(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			n.Time, n.Valid = t.UTC(), true
			return nil
		}
	}
	return fmt.Errorf("unrecognised timestamp %q", text)
}

// NullDate scans DATE columns into their "YYYY-MM-DD" text form.
type NullDate struct {
	String string
	Valid  bool
}

// Scan implements sql.Scanner.
func (n *NullDate) Scan(value interface{}) error {
	var t NullTime
	if err := t.Scan(value); err != nil {
		return err
	}
	n.String, n.Valid = "", t.Valid
	if t.Valid {
		n.String = t.Time.Format(DateLayout)
	}
	return nil
}

// Ptr returns the date text or nil when the column was NULL.
func (n NullDate) Ptr() *string {
	if !n.Valid {
		return nil
	}
	s := n.String
	return &s
}
