package models

import (
	"database/sql"
	"encoding/json"
	"time"
)

// NullTime wraps sql.NullTime so NULL timestamps marshal as null in JSON output.
type NullTime struct {
	sql.NullTime
}

// ToNullTime returns a valid NullTime for t.
func ToNullTime(t time.Time) NullTime {
	return NullTime{sql.NullTime{Time: t, Valid: true}}
}

// MarshalJSON renders NULL as a JSON null.
func (nt NullTime) MarshalJSON() ([]byte, error) {
	if !nt.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(nt.Time)
}
