package domain

import (
	"errors"
	"strings"
)

// Priority is a goal's priority tier as entered by the user.
type Priority string

const (
	PriorityMajor    Priority = "major"
	PriorityMinor    Priority = "minor"
	PriorityOptional Priority = "optional"
)

var ErrInvalidPriority = errors.New("invalid priority value")

// ParsePriority creates a Priority from user input. Long names and the
// legacy single-letter codes ("M", "m", "O") are accepted.
func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "major":
		return PriorityMajor, nil
	case "minor":
		return PriorityMinor, nil
	case "optional":
		return PriorityOptional, nil
	}
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

func (p Priority) String() string {
	return string(p)
}
