package contract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, time.November, 3, 10, 0, 0, 0, time.UTC)

// TestParseRelativeTimeUnit covers various valid and invalid cases.
func TestParseRelativeTimeUnit(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    time.Time
		expectError bool
	}{
		{
			name:     "valid plural months (mixed case)",
			input:    "3 MoNtHs AgO",
			expected: fixedNow.AddDate(0, -3, 0),
		},
		{
			name:     "valid singular week (capitalized)",
			input:    "1 Week Ago",
			expected: fixedNow.AddDate(0, 0, -7),
		},
		{
			name:     "valid 30 days (upper case)",
			input:    "30 DAYS AGO",
			expected: fixedNow.AddDate(0, 0, -30),
		},
		{
			name:     "valid hours",
			input:    "12 hours ago",
			expected: fixedNow.Add(-12 * time.Hour),
		},
		{
			name:        "invalid missing ago",
			input:       "2 years",
			expectError: true,
		},
		{
			name:        "invalid bad unit (decades)",
			input:       "4 decades ago",
			expectError: true,
		},
		{
			name:        "invalid non-numeric value",
			input:       "one year ago",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tResult, err := ParseRelativeTime(tt.input, fixedNow)

			if tt.expectError {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, tResult, "Parsed time mismatch")
			}
		})
	}
}

func TestParseTimeInput(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    time.Time
		expectError bool
	}{
		{
			name:     "rfc3339",
			input:    "2025-10-01T08:00:00Z",
			expected: time.Date(2025, time.October, 1, 8, 0, 0, 0, time.UTC),
		},
		{
			name:     "date only",
			input:    "2025-10-01",
			expected: time.Date(2025, time.October, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "relative",
			input:    "2 weeks ago",
			expected: fixedNow.AddDate(0, 0, -14),
		},
		{
			name:        "garbage",
			input:       "yesterday-ish",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimeInput(tt.input, fixedNow)
			if tt.expectError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.expected.Equal(got), "expected %v, got %v", tt.expected, got)
		})
	}
}

func TestParseTimeout(t *testing.T) {
	d, err := ParseTimeout("")
	require.NoError(t, err)
	assert.Zero(t, d)

	d, err = ParseTimeout("0")
	require.NoError(t, err)
	assert.Zero(t, d)

	d, err = ParseTimeout("30s")
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, d)

	_, err = ParseTimeout("-5s")
	require.Error(t, err)

	_, err = ParseTimeout("soon")
	require.Error(t, err)
}

func FuzzParseRelativeTime(f *testing.F) {
	f.Add("3 months ago")
	f.Add("1 week ago")
	f.Add("")
	f.Add("999999 years ago")
	f.Fuzz(func(t *testing.T, s string) {
		// Must never panic; errors are fine.
		_, _ = ParseRelativeTime(s, fixedNow)
	})
}
