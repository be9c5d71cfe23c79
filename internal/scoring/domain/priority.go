package domain

import (
	"errors"
	"strings"
)

// Priority represents a goal's priority tier, which determines its
// weight in the weekly focus score.
type Priority string

const (
	PriorityMajor    Priority = "major"
	PriorityMinor    Priority = "minor"
	PriorityOptional Priority = "optional"
)

var ErrInvalidPriority = errors.New("invalid priority value")

// ParsePriority creates a Priority from a string. Both the long names and
// the legacy single-letter codes ("M", "m", "O") are accepted.
func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "major":
		return PriorityMajor, nil
	case "minor":
		return PriorityMinor, nil
	case "optional":
		return PriorityOptional, nil
	}
	// Single-letter codes are case-sensitive: "M" is Major, "m" is Minor.
	switch strings.TrimSpace(s) {
	case "M":
		return PriorityMajor, nil
	case "m":
		return PriorityMinor, nil
	case "O", "o":
		return PriorityOptional, nil
	}
	return PriorityMinor, ErrInvalidPriority
}

// PriorityFromRecord converts a stored priority value, falling back to
// Minor for unknown or empty values instead of rejecting the record.
func PriorityFromRecord(s string) Priority {
	p, err := ParsePriority(s)
	if err != nil {
		return PriorityMinor
	}
	return p
}

// String returns the string representation of the priority.
func (p Priority) String() string {
	return string(p)
}

// IsValid returns true if the priority is a known tier.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityMajor, PriorityMinor, PriorityOptional:
		return true
	default:
		return false
	}
}

// Weight returns the scoring weight for the priority tier.
// Unknown tiers weigh the same as Minor.
func (p Priority) Weight() float64 {
	switch p {
	case PriorityMajor:
		return 2.0
	case PriorityOptional:
		return 0.5
	default:
		return 1.0
	}
}
