package attendance

import "github.com/trezcool/mahudhurio/core"

// Breakdown is the derived present/late/absent/exempted tally over a set of
// records. Never persisted; always recomputed.
//
// Invariants: Attended = Present + Late + Exempted;
// Total = Present + Late + Absent + Exempted; 0 <= Percentage <= 100.
type Breakdown struct {
	Present    int     `json:"presentCount"`
	Late       int     `json:"lateCount"`
	Absent     int     `json:"absentCount"` // regular absences only
	Exempted   int     `json:"exemptedCount"`
	Attended   int     `json:"attendedCount"`
	Total      int     `json:"totalCount"`
	Percentage float64 `json:"attendancePercentage"`
}

func tally(records []Record) Breakdown {
	var b Breakdown
	for _, r := range records {
		switch {
		case r.Status == StatusPresent:
			b.Present++
		case r.Status == StatusLate:
			b.Late++
		case r.Status == StatusAbsent && r.AbsenceType == AbsenceExempted:
			b.Exempted++
		case r.Status == StatusAbsent:
			b.Absent++
		}
	}
	b.Attended = b.Present + b.Late + b.Exempted
	b.Total = len(records)
	return b
}

// NewBreakdown computes a per-student breakdown: records must be scoped to a
// single student, and the percentage is attended over the student's own
// record count.
func NewBreakdown(records []Record) Breakdown {
	b := tally(records)
	if b.Total > 0 {
		b.Percentage = core.Round2(float64(b.Attended) / float64(b.Total) * 100)
	}
	return b
}

// NewCohortBreakdown computes a cohort-wide breakdown over records spanning
// many students and sessions. The percentage is the arithmetic mean of each
// session's own attendance percentage, NOT attended over possible: sessions
// with uneven record counts (late-added students, missing marks) all weigh
// the same. Total stays the raw record count and is informational only.
func NewCohortBreakdown(records []Record) Breakdown {
	b := tally(records)

	grouped, keys := groupBySession(records)
	if len(keys) == 0 {
		return b
	}
	var sum float64
	for _, k := range keys {
		sess := grouped[k]
		attended := 0
		for _, r := range sess {
			if r.CountsAsAttended() {
				attended++
			}
		}
		sum += float64(attended) / float64(len(sess)) * 100
	}
	b.Percentage = core.Round2(sum / float64(len(keys)))
	return b
}
