package attendance

// Streak holds one student's consecutive-attendance runs.
type Streak struct {
	Current int `json:"current"`
	Longest int `json:"longest"`
}

// NewStreak computes the current and longest streaks for one student's
// records, in any input order. The two passes sort independently: current
// walks back from the most recent session, longest scans forward.
// A regular absence (informed or unexplained) breaks a run; an exempted
// absence does not.
func NewStreak(records []Record) Streak {
	var s Streak

	for _, r := range reverseChronological(records) {
		if !r.CountsAsAttended() {
			break
		}
		s.Current++
	}

	var run int
	for _, r := range chronological(records) {
		if r.CountsAsAttended() {
			run++
			if run > s.Longest {
				s.Longest = run
			}
		} else {
			run = 0
		}
	}
	return s
}
