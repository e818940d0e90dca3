package attendance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func absences(student string, days []string, types []string) []Record {
	records := make([]Record, 0, len(days))
	for i, d := range days {
		records = append(records, rec(student, d, 1, StatusAbsent, types[i]))
	}
	return records
}

func Test_consecutiveUnexplained(t *testing.T) {
	// u, u, i, u, u, u: the informed absence on day 3 breaks the run, leaving
	// 3 consecutive unexplained absences from the most recent backwards
	records := absences("s1",
		[]string{"2026-01-05", "2026-01-06", "2026-01-07", "2026-01-08", "2026-01-09", "2026-01-10"},
		[]string{AbsenceUninformed, AbsenceUninformed, AbsenceInformed, AbsenceUninformed, AbsenceUninformed, AbsenceUninformed},
	)
	assert.Equal(t, 3, consecutiveUnexplained(records))
}

func Test_consecutiveUnexplained_attendanceBreaksRun(t *testing.T) {
	records := []Record{
		rec("s1", "2026-01-05", 1, StatusAbsent, ""),
		rec("s1", "2026-01-06", 1, StatusPresent, ""),
		rec("s1", "2026-01-07", 1, StatusAbsent, ""),
		rec("s1", "2026-01-08", 1, StatusAbsent, AbsenceUninformed),
	}
	assert.Equal(t, 2, consecutiveUnexplained(records))
}

func Test_NewCandidate(t *testing.T) {
	t.Run("below threshold is not flagged", func(t *testing.T) {
		records := absences("s1",
			[]string{"2026-01-05", "2026-01-06"},
			[]string{AbsenceUninformed, AbsenceUninformed},
		)
		_, ok := NewCandidate(Member{ID: "s1", Name: "Amani"}, records)
		assert.False(t, ok)
	})

	t.Run("flagged with last attendance", func(t *testing.T) {
		records := append([]Record{
			rec("s1", "2026-01-05", 1, StatusPresent, ""),
			rec("s1", "2026-01-06", 1, StatusLate, ""),
		}, absences("s1",
			[]string{"2026-01-07", "2026-01-08", "2026-01-09"},
			[]string{"", AbsenceUninformed, ""},
		)...)

		c, ok := NewCandidate(Member{ID: "s1", Name: "Amani"}, records)

		assert.True(t, ok)
		assert.Equal(t, 3, c.ConsecutiveUninformed)
		assert.Equal(t, SeverityMedium, c.Severity)
		assert.True(t, c.LastAttendanceDate.Valid)
		assert.Equal(t, "2026-01-06", c.LastAttendanceDate.Time.Format(dateLayout))
		assert.Equal(t, 3, c.TotalAbsences)
		assert.Equal(t, 5, c.TotalSessions)
	})

	t.Run("never attended", func(t *testing.T) {
		records := absences("s1",
			[]string{"2026-01-05", "2026-01-06", "2026-01-07", "2026-01-08"},
			[]string{"", "", "", ""},
		)

		c, ok := NewCandidate(Member{ID: "s1", Name: "Amani"}, records)

		assert.True(t, ok)
		assert.False(t, c.LastAttendanceDate.Valid)
		assert.Equal(t, 4, c.TotalAbsences)
	})
}

func Test_severityFor(t *testing.T) {
	tests := []struct {
		count int
		want  string
	}{
		{count: 3, want: SeverityMedium},
		{count: 4, want: SeverityMedium},
		{count: 5, want: SeverityHigh},
		{count: 6, want: SeverityHigh},
		{count: 7, want: SeverityCritical},
		{count: 12, want: SeverityCritical},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, severityFor(tt.count), "count=%d", tt.count)
	}
}

func Test_sortCandidates(t *testing.T) {
	candidates := []Candidate{
		{Name: "Baraka", ConsecutiveUninformed: 3},
		{Name: "Amani", ConsecutiveUninformed: 8},
		{Name: "Chris", ConsecutiveUninformed: 3},
	}

	sortCandidates(candidates)

	assert.Equal(t, "Amani", candidates[0].Name)
	assert.Equal(t, "Baraka", candidates[1].Name)
	assert.Equal(t, "Chris", candidates[2].Name)
}
