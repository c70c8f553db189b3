package entity

import (
	"fmt"
	"strings"
	"time"
)

// Timestamp es un time.Time que acepta en JSON tanto RFC3339 como fechas simples
// ("2006-01-02"). El cliente histórico exportaba ambos formatos según el campo,
// así que el import debe tolerar los dos. Siempre serializa RFC3339.
type Timestamp struct {
	time.Time
}

// NewTimestamp construye un Timestamp desde un time.Time.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

// UnmarshalJSON acepta RFC3339, RFC3339 con milisegundos y "2006-01-02".
func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		ts.Time = time.Time{}
		return nil
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			ts.Time = t
			return nil
		}
	}
	return fmt.Errorf("fecha no reconocida: %q", s)
}

// MarshalJSON serializa siempre en RFC3339.
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	if ts.Time.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(`"` + ts.Time.Format(time.RFC3339) + `"`), nil
}
