package models

import (
	"encoding/json"
	"fmt"
)

// Status is the attendance status of one student for one session.
// The wire values are the exact strings the database stores; anything
// else is treated as unknown and reconciles to StatusUnset.
type Status int

const (
	StatusUnset Status = iota
	StatusAttended
	StatusLate
	StatusAbsent
)

const (
	statusAttendedWire = "Katıldı"
	statusLateWire     = "Geç Kaldı"
	statusAbsentWire   = "Katılmadı"
)

// ParseStatus maps a stored status string to its Status value.
// Unknown strings return (StatusUnset, false) and must never be counted.
func ParseStatus(s string) (Status, bool) {
	switch s {
	case statusAttendedWire:
		return StatusAttended, true
	case statusLateWire:
		return StatusLate, true
	case statusAbsentWire:
		return StatusAbsent, true
	}
	return StatusUnset, false
}

func (s Status) String() string {
	switch s {
	case StatusAttended:
		return statusAttendedWire
	case StatusLate:
		return statusLateWire
	case StatusAbsent:
		return statusAbsentWire
	}
	return ""
}

// IsValid reports whether the status is one of the three recordable values.
func (s Status) IsValid() bool {
	return s == StatusAttended || s == StatusLate || s == StatusAbsent
}

// MarshalJSON renders the display string; StatusUnset renders as "".
func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON accepts the three display strings; anything else becomes
// StatusUnset without an error.
func (s *Status) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("status must be a string: %w", err)
	}
	parsed, _ := ParseStatus(raw)
	*s = parsed
	return nil
}
