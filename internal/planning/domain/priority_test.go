package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePriority(t *testing.T) {
	tests := []struct {
		input string
		want  Priority
	}{
		{"major", PriorityMajor},
		{"MAJOR", PriorityMajor},
		{" minor ", PriorityMinor},
		{"optional", PriorityOptional},
		{"M", PriorityMajor},
		{"m", PriorityMinor},
		{"O", PriorityOptional},
		{"o", PriorityOptional},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePriority(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePriority_Invalid(t *testing.T) {
	for _, input := range []string{"", "high", "Maj"} {
		_, err := ParsePriority(input)
		assert.ErrorIs(t, err, ErrInvalidPriority, "input %q", input)
	}
}
