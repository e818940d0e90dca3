package attendance

import (
	"time"

	"github.com/trezcool/mahudhurio/core"
)

const (
	dateLayout  = "2006-01-02"
	monthLayout = "2006-01"
)

// SessionSummary is the per-cohort view of one session.
type SessionSummary struct {
	SessionDate   string `json:"sessionDate"`
	SessionNumber int    `json:"sessionNumber"`
	Breakdown
	TotalStudents int  `json:"totalStudents"`
	IsCancelled   bool `json:"isCancelled"`
}

type CalendarDay struct {
	Date              string           `json:"date"`
	Sessions          []SessionSummary `json:"sessions"`
	TotalSessions     int              `json:"totalSessions"`
	OverallAttendance float64          `json:"overallAttendance"`
	IsHoliday         bool             `json:"isHoliday"`
	Holidays          []Holiday        `json:"holidays,omitempty"`
}

type Calendar struct {
	Month              string        `json:"month"`
	Days               []CalendarDay `json:"days"`
	DaysWithAttendance int           `json:"daysWithAttendance"`
	TotalSessions      int           `json:"totalSessions"`
	AverageAttendance  float64       `json:"averageAttendance"`
}

// NewSessionSummary builds the cohort breakdown for one session. A session
// with active enrollment but no records at all was cancelled — that is a
// signal, not an error.
func NewSessionSummary(date time.Time, number int, records []Record, totalStudents int) SessionSummary {
	return SessionSummary{
		SessionDate:   date.Format(dateLayout),
		SessionNumber: number,
		Breakdown:     NewCohortBreakdown(records),
		TotalStudents: totalStudents,
		IsCancelled:   totalStudents > 0 && len(records) == 0,
	}
}

// MonthBounds returns the first and last calendar day of the month `m` falls
// in; time.Date normalization makes this leap-year correct.
func MonthBounds(m time.Time) (time.Time, time.Time) {
	first := time.Date(m.Year(), m.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return first, last
}

// NewCalendar produces one entry per calendar day of the month, each carrying
// its session summaries and holiday overlay, plus the month rollups. Days with
// no sessions contribute 0 to the month average — they are not excluded.
func NewCalendar(month time.Time, records []Record, holidays []Holiday, totalStudents int) Calendar {
	first, last := MonthBounds(month)

	grouped, keys := groupBySession(records)
	sessionsByDate := make(map[string][]SessionSummary)
	for _, k := range keys {
		date, _ := time.Parse(dateLayout, k.date)
		sessionsByDate[k.date] = append(sessionsByDate[k.date], NewSessionSummary(date, k.number, grouped[k], totalStudents))
	}

	holidaysByDate := make(map[string][]Holiday)
	for _, h := range holidays {
		key := h.Date.Format(dateLayout)
		holidaysByDate[key] = append(holidaysByDate[key], h)
	}

	cal := Calendar{Month: first.Format(monthLayout)}
	var pctSum float64
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		key := d.Format(dateLayout)
		sessions := sessionsByDate[key]
		if sessions == nil {
			sessions = []SessionSummary{}
		}

		var overall float64
		if len(sessions) > 0 {
			var sum float64
			for _, s := range sessions {
				sum += s.Percentage
			}
			overall = core.Round2(sum / float64(len(sessions)))
			cal.DaysWithAttendance++
			cal.TotalSessions += len(sessions)
		}
		pctSum += overall

		cal.Days = append(cal.Days, CalendarDay{
			Date:              key,
			Sessions:          sessions,
			TotalSessions:     len(sessions),
			OverallAttendance: overall,
			IsHoliday:         len(holidaysByDate[key]) > 0,
			Holidays:          holidaysByDate[key],
		})
	}
	cal.AverageAttendance = core.Round2(pctSum / float64(len(cal.Days)))
	return cal
}
