package attendance

import (
	"sort"
	"time"
)

// Attendance statuses.
const (
	StatusPresent = "present"
	StatusLate    = "late"
	StatusAbsent  = "absent"
)

// Absence types; only meaningful when status is "absent".
// An absent record with no type on file is treated as uninformed.
const (
	AbsenceUninformed = "uninformed"
	AbsenceInformed   = "informed"
	AbsenceExempted   = "exempted"
)

// Holiday publication statuses; only published holidays are served.
const (
	HolidayPublished = "published"
	HolidayDraft     = "draft"
)

var (
	Statuses     = []string{StatusPresent, StatusLate, StatusAbsent}
	AbsenceTypes = []string{AbsenceUninformed, AbsenceInformed, AbsenceExempted}
)

// Record is one attendance row per (student, session). The engine never
// writes these; they come from the attendance-marking workflow.
type Record struct {
	ID            string    `json:"id"`
	CohortID      string    `json:"cohortId"`
	EpicID        string    `json:"epicId"`
	StudentID     string    `json:"studentId"`
	SessionDate   time.Time `json:"sessionDate"` // calendar date, UTC midnight
	SessionNumber int       `json:"sessionNumber"`
	Status        string    `json:"status"`
	AbsenceType   string    `json:"absenceType,omitempty"`
	CreatedAt     time.Time `json:"-"` // UTC
	UpdatedAt     time.Time `json:"-"` // UTC
}

// CountsAsAttended reports whether the record counts towards attendance:
// present, late, or an exempted absence.
// This is the single predicate shared by breakdowns, streaks and the radar.
func (r Record) CountsAsAttended() bool {
	switch r.Status {
	case StatusPresent, StatusLate:
		return true
	case StatusAbsent:
		return r.AbsenceType == AbsenceExempted
	}
	return false
}

// IsRegularAbsence reports an absence that interrupts streaks: informed or
// unexplained, but not exempted.
func (r Record) IsRegularAbsence() bool {
	return r.Status == StatusAbsent && r.AbsenceType != AbsenceExempted
}

// IsUnexplainedAbsence reports an absence with no justification on file;
// the trigger condition for the drop-out radar.
func (r Record) IsUnexplainedAbsence() bool {
	return r.Status == StatusAbsent && (r.AbsenceType == "" || r.AbsenceType == AbsenceUninformed)
}

// Member is a student currently active in a cohort. Membership defines the
// denominator for cohort percentages and the universe the leaderboard and
// radar iterate; it is re-read on every invocation.
type Member struct {
	ID       string `json:"id"`
	CohortID string `json:"cohortId"`
	Name     string `json:"name"`
}

// Epic is a named phase of a cohort's program; the scoping key for most stats.
type Epic struct {
	ID       string `json:"id"`
	CohortID string `json:"cohortId"`
	Name     string `json:"name"`
}

// Holiday marks a date non-instructional, globally (empty CohortID) or for
// one cohort.
type Holiday struct {
	ID       string    `json:"id"`
	CohortID string    `json:"cohortId,omitempty"`
	Name     string    `json:"name"`
	Date     time.Time `json:"date"`
	Status   string    `json:"-"`
}

// sessionKey identifies one session: several sessions may share a date.
type sessionKey struct {
	date   string // YYYY-MM-DD
	number int
}

func keyOf(r Record) sessionKey {
	return sessionKey{date: r.SessionDate.Format(dateLayout), number: r.SessionNumber}
}

func (k sessionKey) less(o sessionKey) bool {
	if k.date != o.date {
		return k.date < o.date
	}
	return k.number < o.number
}

// chronological returns a sorted copy ordered by (SessionDate, SessionNumber)
// ascending. Both the streak engine and the radar build on this primitive.
func chronological(records []Record) []Record {
	out := make([]Record, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool { return keyOf(out[i]).less(keyOf(out[j])) })
	return out
}

// reverseChronological returns a sorted copy, most recent session first.
func reverseChronological(records []Record) []Record {
	out := make([]Record, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool { return keyOf(out[j]).less(keyOf(out[i])) })
	return out
}

// Normalize dedupes on (StudentID, SessionDate, SessionNumber) keeping the most
// recently updated row, so a re-marked session wins over a stale duplicate.
// The result is in chronological order.
func Normalize(records []Record) []Record {
	type dupKey struct {
		student string
		session sessionKey
	}
	keep := make(map[dupKey]Record, len(records))
	for _, r := range records {
		k := dupKey{student: r.StudentID, session: keyOf(r)}
		if prev, ok := keep[k]; !ok || r.UpdatedAt.After(prev.UpdatedAt) {
			keep[k] = r
		}
	}
	out := make([]Record, 0, len(keep))
	for _, r := range keep {
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		ki, kj := keyOf(out[i]), keyOf(out[j])
		if ki != kj {
			return ki.less(kj)
		}
		return out[i].StudentID < out[j].StudentID
	})
	return out
}

// groupByStudent splits records per student; order within a group is preserved.
func groupByStudent(records []Record) map[string][]Record {
	grouped := make(map[string][]Record)
	for _, r := range records {
		grouped[r.StudentID] = append(grouped[r.StudentID], r)
	}
	return grouped
}

// groupBySession splits records per (date, number) and returns the keys sorted.
func groupBySession(records []Record) (map[sessionKey][]Record, []sessionKey) {
	grouped := make(map[sessionKey][]Record)
	for _, r := range records {
		k := keyOf(r)
		grouped[k] = append(grouped[k], r)
	}
	keys := make([]sessionKey, 0, len(grouped))
	for k := range grouped {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].less(keys[j]) })
	return grouped, keys
}
