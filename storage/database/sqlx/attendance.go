package sqlxrepos

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/mahudhurio/core"
	"github.com/trezcool/mahudhurio/core/attendance"
)

// memberActiveStatus is the dropped_out_status value of an active member.
const memberActiveStatus = "active"

type attendanceRepository struct {
	db *sqlx.DB
}

var _ attendance.Repository = (*attendanceRepository)(nil) // interface compliance check

func NewAttendanceRepository(db *sqlx.DB) *attendanceRepository {
	return &attendanceRepository{db: db}
}

type recordRow struct {
	ID            string      `db:"id"`
	CohortID      string      `db:"cohort_id"`
	EpicID        string      `db:"epic_id"`
	StudentID     string      `db:"student_id"`
	SessionDate   time.Time   `db:"session_date"`
	SessionNumber int         `db:"session_number"`
	Status        string      `db:"status"`
	AbsenceType   null.String `db:"absence_type"`
	CreatedAt     time.Time   `db:"created_at"`
	UpdatedAt     time.Time   `db:"updated_at"`
}

func (r recordRow) record() attendance.Record {
	return attendance.Record{
		ID:            r.ID,
		CohortID:      r.CohortID,
		EpicID:        r.EpicID,
		StudentID:     r.StudentID,
		SessionDate:   r.SessionDate.UTC(),
		SessionNumber: r.SessionNumber,
		Status:        r.Status,
		AbsenceType:   r.AbsenceType.String,
		CreatedAt:     r.CreatedAt.UTC(),
		UpdatedAt:     r.UpdatedAt.UTC(),
	}
}

type memberRow struct {
	ID       string `db:"id"`
	CohortID string `db:"cohort_id"`
	Name     string `db:"name"`
}

type holidayRow struct {
	ID       string      `db:"id"`
	CohortID null.String `db:"cohort_id"`
	Name     string      `db:"name"`
	Date     time.Time   `db:"date"`
	Status   string      `db:"status"`
}

func (repo attendanceRepository) QueryRecords(ctx context.Context, filter attendance.RecordFilter) ([]attendance.Record, error) {
	q := new(strings.Builder)
	q.WriteString(`SELECT id, cohort_id, epic_id, student_id, session_date, session_number, status, absence_type, created_at, updated_at
FROM attendance_record`)

	var args []interface{}
	where := func(cond string, arg interface{}) {
		args = append(args, arg)
		kw := " AND "
		if len(args) == 1 {
			kw = " WHERE "
		}
		_, _ = fmt.Fprintf(q, "%s%s", kw, fmt.Sprintf(cond, len(args)))
	}

	if filter.CohortID != "" {
		where("cohort_id = $%d", filter.CohortID)
	}
	if filter.EpicID != "" {
		where("epic_id = $%d", filter.EpicID)
	}
	if filter.StudentID != "" {
		where("student_id = $%d", filter.StudentID)
	}
	if !filter.SessionDate.IsZero() {
		where("session_date = $%d", filter.SessionDate)
	}
	if filter.SessionNumber > 0 {
		where("session_number = $%d", filter.SessionNumber)
	}
	if !filter.DateFrom.IsZero() {
		where("session_date >= $%d", filter.DateFrom)
	}
	if !filter.DateTo.IsZero() {
		where("session_date <= $%d", filter.DateTo)
	}

	ord := core.DBOrdering{Field: "session_date", Ascending: true}
	_, _ = fmt.Fprintf(q, " ORDER BY %s, session_number ASC, updated_at ASC", ord)

	var rows []recordRow
	if err := repo.db.SelectContext(ctx, &rows, q.String(), args...); err != nil {
		return nil, errors.Wrap(err, "selecting attendance records")
	}

	records := make([]attendance.Record, 0, len(rows))
	for _, r := range rows {
		records = append(records, r.record())
	}
	return records, nil
}

func (repo attendanceRepository) QueryActiveMembers(ctx context.Context, cohortID string) ([]attendance.Member, error) {
	q := `SELECT id, cohort_id, name
FROM cohort_member
WHERE cohort_id = $1 AND dropped_out_status = $2
ORDER BY name ASC, id ASC`

	var rows []memberRow
	if err := repo.db.SelectContext(ctx, &rows, q, cohortID, memberActiveStatus); err != nil {
		return nil, errors.Wrap(err, "selecting active cohort members")
	}

	members := make([]attendance.Member, 0, len(rows))
	for _, r := range rows {
		members = append(members, attendance.Member{ID: r.ID, CohortID: r.CohortID, Name: r.Name})
	}
	return members, nil
}

func (repo attendanceRepository) QueryPublishedHolidays(ctx context.Context, cohortID string, from, to time.Time) ([]attendance.Holiday, error) {
	q := `SELECT id, cohort_id, name, date, status
FROM holiday
WHERE status = $1 AND (cohort_id IS NULL OR cohort_id = $2) AND date BETWEEN $3 AND $4
ORDER BY date ASC, name ASC`

	var rows []holidayRow
	if err := repo.db.SelectContext(ctx, &rows, q, attendance.HolidayPublished, cohortID, from, to); err != nil {
		return nil, errors.Wrap(err, "selecting holidays")
	}

	holidays := make([]attendance.Holiday, 0, len(rows))
	for _, r := range rows {
		holidays = append(holidays, attendance.Holiday{
			ID:       r.ID,
			CohortID: r.CohortID.String,
			Name:     r.Name,
			Date:     r.Date.UTC(),
			Status:   r.Status,
		})
	}
	return holidays, nil
}
