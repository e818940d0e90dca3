package dummydb

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/trezcool/mahudhurio/core/attendance"
)

type AttendanceRepository struct {
	db *attendanceTable
}

var _ attendance.Repository = (*AttendanceRepository)(nil) // interface compliance check

func NewAttendanceRepository(db *DB) *AttendanceRepository {
	return &AttendanceRepository{db: db.attendance}
}

// Seeding helpers; ids are assigned when left empty.

func (repo *AttendanceRepository) AddRecord(rec attendance.Record) attendance.Record {
	repo.db.Lock()
	defer repo.db.Unlock()

	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	if rec.UpdatedAt.IsZero() {
		rec.UpdatedAt = rec.CreatedAt
	}
	repo.db.records = append(repo.db.records, rec)
	return rec
}

func (repo *AttendanceRepository) AddMember(m attendance.Member, active bool) attendance.Member {
	repo.db.Lock()
	defer repo.db.Unlock()

	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	repo.db.members = append(repo.db.members, memberEntry{member: m, active: active})
	return m
}

func (repo *AttendanceRepository) AddHoliday(h attendance.Holiday) attendance.Holiday {
	repo.db.Lock()
	defer repo.db.Unlock()

	if h.ID == "" {
		h.ID = uuid.New().String()
	}
	if h.Status == "" {
		h.Status = attendance.HolidayPublished
	}
	repo.db.holidays = append(repo.db.holidays, h)
	return h
}

func (repo *AttendanceRepository) QueryRecords(_ context.Context, filter attendance.RecordFilter) ([]attendance.Record, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	matched := make([]attendance.Record, 0, len(repo.db.records))
	for _, r := range repo.db.records {
		if filter.CohortID != "" && r.CohortID != filter.CohortID {
			continue
		}
		if filter.EpicID != "" && r.EpicID != filter.EpicID {
			continue
		}
		if filter.StudentID != "" && r.StudentID != filter.StudentID {
			continue
		}
		if !filter.SessionDate.IsZero() && !sameDate(r.SessionDate, filter.SessionDate) {
			continue
		}
		if filter.SessionNumber > 0 && r.SessionNumber != filter.SessionNumber {
			continue
		}
		if !filter.DateFrom.IsZero() && r.SessionDate.Before(filter.DateFrom) {
			continue
		}
		if !filter.DateTo.IsZero() && r.SessionDate.After(filter.DateTo) {
			continue
		}
		matched = append(matched, r)
	}
	return matched, nil
}

func (repo *AttendanceRepository) QueryActiveMembers(_ context.Context, cohortID string) ([]attendance.Member, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	members := make([]attendance.Member, 0, len(repo.db.members))
	for _, e := range repo.db.members {
		if e.active && e.member.CohortID == cohortID {
			members = append(members, e.member)
		}
	}
	return members, nil
}

func (repo *AttendanceRepository) QueryPublishedHolidays(_ context.Context, cohortID string, from, to time.Time) ([]attendance.Holiday, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	holidays := make([]attendance.Holiday, 0, len(repo.db.holidays))
	for _, h := range repo.db.holidays {
		if h.Status != attendance.HolidayPublished {
			continue
		}
		if h.CohortID != "" && h.CohortID != cohortID {
			continue
		}
		if h.Date.Before(from) || h.Date.After(to) {
			continue
		}
		holidays = append(holidays, h)
	}
	return holidays, nil
}

func sameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
