package attendance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_NewBreakdown(t *testing.T) {
	records := []Record{
		rec("s1", "2026-01-05", 1, StatusPresent, ""),
		rec("s1", "2026-01-06", 1, StatusLate, ""),
		rec("s1", "2026-01-07", 1, StatusAbsent, AbsenceExempted),
		rec("s1", "2026-01-08", 1, StatusAbsent, AbsenceInformed),
		rec("s1", "2026-01-09", 1, StatusAbsent, ""),
	}

	b := NewBreakdown(records)

	assert.Equal(t, 1, b.Present)
	assert.Equal(t, 1, b.Late)
	assert.Equal(t, 1, b.Exempted)
	assert.Equal(t, 2, b.Absent)
	assert.Equal(t, 3, b.Attended)
	assert.Equal(t, 5, b.Total)
	assert.Equal(t, b.Present+b.Late+b.Absent+b.Exempted, b.Total)
	assert.Equal(t, 60.0, b.Percentage)
}

func Test_NewBreakdown_rounding(t *testing.T) {
	// 1/3 attended: 33.333... rounds to 33.33
	b := NewBreakdown([]Record{
		rec("s1", "2026-01-05", 1, StatusPresent, ""),
		rec("s1", "2026-01-06", 1, StatusAbsent, ""),
		rec("s1", "2026-01-07", 1, StatusAbsent, ""),
	})
	assert.Equal(t, 33.33, b.Percentage)

	// 2/3 attended: 66.666... rounds to 66.67
	b = NewBreakdown([]Record{
		rec("s1", "2026-01-05", 1, StatusPresent, ""),
		rec("s1", "2026-01-06", 1, StatusPresent, ""),
		rec("s1", "2026-01-07", 1, StatusAbsent, ""),
	})
	assert.Equal(t, 66.67, b.Percentage)
}

func Test_NewBreakdown_empty(t *testing.T) {
	b := NewBreakdown(nil)
	assert.Equal(t, Breakdown{}, b)
}

func Test_NewCohortBreakdown_meanOfSessions(t *testing.T) {
	// session 1 has two records (1 attended, 50%), session 2 has one (100%).
	// The mean of session percentages is 75; attended over total would be 66.67.
	records := []Record{
		rec("s1", "2026-01-05", 1, StatusPresent, ""),
		rec("s2", "2026-01-05", 1, StatusAbsent, ""),
		rec("s1", "2026-01-06", 1, StatusPresent, ""),
	}

	b := NewCohortBreakdown(records)

	assert.Equal(t, 75.0, b.Percentage)
	assert.Equal(t, 3, b.Total)
	assert.Equal(t, 2, b.Attended)
}

func Test_NewCohortBreakdown_sameDateDistinctSessions(t *testing.T) {
	// two sessions share a date; they weigh separately
	records := []Record{
		rec("s1", "2026-01-05", 1, StatusPresent, ""),
		rec("s2", "2026-01-05", 1, StatusPresent, ""),
		rec("s1", "2026-01-05", 2, StatusAbsent, ""),
		rec("s2", "2026-01-05", 2, StatusAbsent, ""),
	}

	b := NewCohortBreakdown(records)

	assert.Equal(t, 50.0, b.Percentage)
}

func Test_NewCohortBreakdown_empty(t *testing.T) {
	b := NewCohortBreakdown(nil)
	assert.Equal(t, Breakdown{}, b)
}
