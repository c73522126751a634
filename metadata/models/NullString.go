package models

import (
	"database/sql"
	"encoding/json"
)

// NullString wraps sql.NullString so NULL columns marshal as empty strings in JSON
// output instead of the Valid/String struct form.
type NullString struct {
	sql.NullString
}

// ToNullString returns a valid NullString for s.
func ToNullString(s string) NullString {
	return NullString{sql.NullString{String: s, Valid: true}}
}

// MarshalJSON renders NULL as an empty string.
func (ns NullString) MarshalJSON() ([]byte, error) {
	if !ns.Valid {
		return []byte(`""`), nil
	}
	return json.Marshal(ns.String)
}
