package period

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabel(t *testing.T) {
	assert.Equal(t, "March 2024", Label(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "December 1999", FormatLabel(1999, 12))
}

func TestParseLabel(t *testing.T) {
	tests := []struct {
		label     string
		wantYear  int
		wantMonth int
	}{
		{"March 2024", 2024, 3},
		{"January 2023", 2023, 1},
		{" September 2021 ", 2021, 9},
	}
	for _, tt := range tests {
		y, m, err := ParseLabel(tt.label)
		require.NoError(t, err, "ParseLabel(%q)", tt.label)
		assert.Equal(t, tt.wantYear, y)
		assert.Equal(t, tt.wantMonth, m)
	}
}

func TestParseLabel_Invalid(t *testing.T) {
	for _, bad := range []string{"", "2024-03", "Marchember 2024", "March"} {
		_, _, err := ParseLabel(bad)
		assert.Error(t, err, "ParseLabel(%q)", bad)
	}
}

func TestKey(t *testing.T) {
	assert.Equal(t, "2024-03", Key(2024, 3))
	assert.Equal(t, "0999-12", Key(999, 12))
}

func TestSortLabels_Chronological(t *testing.T) {
	got, err := SortLabels([]string{"February 2024", "January 2024", "March 2023"})
	require.NoError(t, err)
	assert.Equal(t, []string{"March 2023", "January 2024", "February 2024"}, got)
}

func TestSortLabels_NotLexical(t *testing.T) {
	got, err := SortLabels([]string{"April 2024", "January 2024", "December 2023"})
	require.NoError(t, err)
	assert.Equal(t, []string{"December 2023", "January 2024", "April 2024"}, got)
}

func TestSortLabels_InvalidLast(t *testing.T) {
	got, err := SortLabels([]string{"bogus", "May 2024", "April 2024"})
	assert.Error(t, err)
	assert.Equal(t, []string{"April 2024", "May 2024", "bogus"}, got)
}

func TestSortLabels_DoesNotModifyInput(t *testing.T) {
	in := []string{"May 2024", "April 2024"}
	_, err := SortLabels(in)
	require.NoError(t, err)
	assert.Equal(t, []string{"May 2024", "April 2024"}, in)
}
