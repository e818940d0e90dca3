package attendance

import (
	"sort"

	"github.com/volatiletech/null/v8"
)

// Severity bands for sustained unexplained absence.
const (
	SeverityCritical = "critical" // >= 7 consecutive
	SeverityHigh     = "high"     // 5-6
	SeverityMedium   = "medium"   // 3-4
)

// dropOutThreshold is the minimum run of unexplained absences that flags a
// student on the radar.
const dropOutThreshold = 3

// Candidate is one student flagged by the drop-out radar.
type Candidate struct {
	StudentID             string    `json:"studentId"`
	Name                  string    `json:"name"`
	ConsecutiveUninformed int       `json:"consecutiveUninformedAbsences"`
	LastAttendanceDate    null.Time `json:"lastAttendanceDate"` // null if never attended
	TotalAbsences         int       `json:"totalAbsences"`
	TotalSessions         int       `json:"totalSessions"`
	Severity              string    `json:"severity"`
}

type DropOutRadar struct {
	Candidates    []Candidate `json:"candidates"`
	TotalStudents int         `json:"totalStudents"`
}

// consecutiveUnexplained counts unexplained absences back from the most recent
// record. An informed absence breaks the run even though it is still an
// absence; so do attendance and exempted absence.
func consecutiveUnexplained(records []Record) int {
	count := 0
	for _, r := range reverseChronological(records) {
		if !r.IsUnexplainedAbsence() {
			break
		}
		count++
	}
	return count
}

// lastAttendance returns the most recent session the student counted as
// attended, or an invalid (null) time if they never did.
func lastAttendance(records []Record) null.Time {
	for _, r := range reverseChronological(records) {
		if r.CountsAsAttended() {
			return null.TimeFrom(r.SessionDate)
		}
	}
	return null.Time{}
}

func severityFor(count int) string {
	switch {
	case count >= 7:
		return SeverityCritical
	case count >= 5:
		return SeverityHigh
	default:
		return SeverityMedium
	}
}

// NewCandidate evaluates one member against their records; ok is false when
// the member is below the radar threshold.
func NewCandidate(m Member, records []Record) (Candidate, bool) {
	count := consecutiveUnexplained(records)
	if count < dropOutThreshold {
		return Candidate{}, false
	}

	totalAbsences := 0
	for _, r := range records {
		if r.Status == StatusAbsent {
			totalAbsences++
		}
	}
	return Candidate{
		StudentID:             m.ID,
		Name:                  m.Name,
		ConsecutiveUninformed: count,
		LastAttendanceDate:    lastAttendance(records),
		TotalAbsences:         totalAbsences,
		TotalSessions:         len(records),
		Severity:              severityFor(count),
	}, true
}

// sortCandidates orders by consecutive count descending; name keeps the
// output deterministic within a band.
func sortCandidates(candidates []Candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].ConsecutiveUninformed != candidates[j].ConsecutiveUninformed {
			return candidates[i].ConsecutiveUninformed > candidates[j].ConsecutiveUninformed
		}
		return candidates[i].Name < candidates[j].Name
	})
}
