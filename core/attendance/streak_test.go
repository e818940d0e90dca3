package attendance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_NewStreak(t *testing.T) {
	tests := []struct {
		name        string
		records     []Record
		wantCurrent int
		wantLongest int
	}{
		{name: "empty", records: nil},
		{
			name: "unbroken run",
			records: []Record{
				rec("s1", "2026-01-05", 1, StatusPresent, ""),
				rec("s1", "2026-01-06", 1, StatusLate, ""),
				rec("s1", "2026-01-07", 1, StatusPresent, ""),
			},
			wantCurrent: 3,
			wantLongest: 3,
		},
		{
			name: "absence resets current but longest survives",
			records: []Record{
				rec("s1", "2026-01-05", 1, StatusPresent, ""),
				rec("s1", "2026-01-06", 1, StatusPresent, ""),
				rec("s1", "2026-01-07", 1, StatusPresent, ""),
				rec("s1", "2026-01-08", 1, StatusAbsent, AbsenceUninformed),
				rec("s1", "2026-01-09", 1, StatusPresent, ""),
			},
			wantCurrent: 1,
			wantLongest: 3,
		},
		{
			name: "exempted absence does not break the run",
			records: []Record{
				rec("s1", "2026-01-05", 1, StatusPresent, ""),
				rec("s1", "2026-01-06", 1, StatusAbsent, AbsenceExempted),
				rec("s1", "2026-01-07", 1, StatusPresent, ""),
			},
			wantCurrent: 3,
			wantLongest: 3,
		},
		{
			name: "informed absence breaks the run",
			records: []Record{
				rec("s1", "2026-01-05", 1, StatusPresent, ""),
				rec("s1", "2026-01-06", 1, StatusPresent, ""),
				rec("s1", "2026-01-07", 1, StatusAbsent, AbsenceInformed),
			},
			wantCurrent: 0,
			wantLongest: 2,
		},
		{
			name: "all absent",
			records: []Record{
				rec("s1", "2026-01-05", 1, StatusAbsent, ""),
				rec("s1", "2026-01-06", 1, StatusAbsent, AbsenceInformed),
			},
			wantCurrent: 0,
			wantLongest: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStreak(tt.records)
			assert.Equal(t, tt.wantCurrent, s.Current, "current")
			assert.Equal(t, tt.wantLongest, s.Longest, "longest")
		})
	}
}

func Test_NewStreak_inputOrderIndependent(t *testing.T) {
	ordered := []Record{
		rec("s1", "2026-01-05", 1, StatusPresent, ""),
		rec("s1", "2026-01-06", 1, StatusAbsent, ""),
		rec("s1", "2026-01-07", 1, StatusPresent, ""),
		rec("s1", "2026-01-08", 1, StatusPresent, ""),
	}
	shuffled := []Record{ordered[2], ordered[0], ordered[3], ordered[1]}

	assert.Equal(t, NewStreak(ordered), NewStreak(shuffled))
}

func Test_NewStreak_multipleSessionsPerDay(t *testing.T) {
	// session 2 of the same day is more recent than session 1
	records := []Record{
		rec("s1", "2026-01-05", 2, StatusAbsent, ""),
		rec("s1", "2026-01-05", 1, StatusPresent, ""),
	}

	s := NewStreak(records)

	assert.Equal(t, 0, s.Current)
	assert.Equal(t, 1, s.Longest)
}
