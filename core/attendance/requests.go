package attendance

import (
	"time"

	"github.com/trezcool/mahudhurio/core"
)

// Request payloads for the dispatch actions. Dates are ISO calendar dates
// (YYYY-MM-DD); months are YYYY-MM. All are validated before any record fetch.

type SessionStatsRequest struct {
	CohortID      string `json:"cohortId" validate:"required"`
	EpicID        string `json:"epicId" validate:"required"`
	SessionDate   string `json:"sessionDate" validate:"required,isodate"`
	SessionNumber int    `json:"sessionNumber" validate:"required,min=1"`
}

func (r *SessionStatsRequest) Validate() error {
	r.CohortID = core.CleanString(r.CohortID)
	r.EpicID = core.CleanString(r.EpicID)
	r.SessionDate = core.CleanString(r.SessionDate)
	return core.Validate.Struct(r)
}

func (r SessionStatsRequest) Date() time.Time {
	t, _ := time.Parse(dateLayout, r.SessionDate)
	return t
}

type EpicStatsRequest struct {
	CohortID string `json:"cohortId" validate:"required"`
	EpicID   string `json:"epicId" validate:"required"`
	DateFrom string `json:"dateFrom" validate:"omitempty,isodate"`
	DateTo   string `json:"dateTo" validate:"omitempty,isodate"`
}

func (r *EpicStatsRequest) Validate() error {
	r.CohortID = core.CleanString(r.CohortID)
	r.EpicID = core.CleanString(r.EpicID)
	r.DateFrom = core.CleanString(r.DateFrom)
	r.DateTo = core.CleanString(r.DateTo)
	return core.Validate.Struct(r)
}

func (r EpicStatsRequest) Range() (from, to time.Time) {
	from, _ = time.Parse(dateLayout, r.DateFrom)
	to, _ = time.Parse(dateLayout, r.DateTo)
	return from, to
}

type CalendarRequest struct {
	CohortID string `json:"cohortId" validate:"required"`
	EpicID   string `json:"epicId" validate:"required"`
	Month    string `json:"month" validate:"required,yyyymm"`
}

func (r *CalendarRequest) Validate() error {
	r.CohortID = core.CleanString(r.CohortID)
	r.EpicID = core.CleanString(r.EpicID)
	r.Month = core.CleanString(r.Month)
	return core.Validate.Struct(r)
}

func (r CalendarRequest) MonthTime() time.Time {
	t, _ := time.Parse(monthLayout, r.Month)
	return t
}

type LeaderboardRequest struct {
	CohortID string `json:"cohortId" validate:"required"`
	EpicID   string `json:"epicId" validate:"required"`
	Limit    int    `json:"limit" validate:"omitempty,min=1"`
	Offset   int    `json:"offset" validate:"omitempty,min=1"`
}

func (r *LeaderboardRequest) Validate() error {
	r.CohortID = core.CleanString(r.CohortID)
	r.EpicID = core.CleanString(r.EpicID)
	return core.Validate.Struct(r)
}

type StudentStatsRequest struct {
	CohortID  string `json:"cohortId" validate:"required"`
	StudentID string `json:"studentId" validate:"required"`
	EpicID    string `json:"epicId" validate:"required"`
	DateFrom  string `json:"dateFrom" validate:"omitempty,isodate"`
	DateTo    string `json:"dateTo" validate:"omitempty,isodate"`
}

func (r *StudentStatsRequest) Validate() error {
	r.CohortID = core.CleanString(r.CohortID)
	r.StudentID = core.CleanString(r.StudentID)
	r.EpicID = core.CleanString(r.EpicID)
	r.DateFrom = core.CleanString(r.DateFrom)
	r.DateTo = core.CleanString(r.DateTo)
	return core.Validate.Struct(r)
}

func (r StudentStatsRequest) Range() (from, to time.Time) {
	from, _ = time.Parse(dateLayout, r.DateFrom)
	to, _ = time.Parse(dateLayout, r.DateTo)
	return from, to
}

type StudentStreaksRequest struct {
	CohortID  string `json:"cohortId" validate:"required"`
	EpicID    string `json:"epicId" validate:"required"`
	StudentID string `json:"studentId"` // empty: streaks for all members
}

func (r *StudentStreaksRequest) Validate() error {
	r.CohortID = core.CleanString(r.CohortID)
	r.EpicID = core.CleanString(r.EpicID)
	r.StudentID = core.CleanString(r.StudentID)
	return core.Validate.Struct(r)
}

type DropOutRadarRequest struct {
	CohortID string `json:"cohortId" validate:"required"`
	EpicID   string `json:"epicId" validate:"required"`
}

func (r *DropOutRadarRequest) Validate() error {
	r.CohortID = core.CleanString(r.CohortID)
	r.EpicID = core.CleanString(r.EpicID)
	return core.Validate.Struct(r)
}
