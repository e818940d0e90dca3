// Package dummydb provides an in-memory record store for tests and local dev.
package dummydb

import (
	"sync"

	"github.com/trezcool/mahudhurio/core/attendance"
)

type (
	DB struct {
		attendance *attendanceTable
	}

	memberEntry struct {
		member attendance.Member
		active bool
	}

	attendanceTable struct {
		sync.RWMutex
		records  []attendance.Record
		members  []memberEntry
		holidays []attendance.Holiday
	}
)

func Open() (*DB, error) {
	return &DB{attendance: &attendanceTable{}}, nil
}

func (db *DB) Reset() {
	db.attendance.Lock()
	defer db.attendance.Unlock()
	db.attendance.records = nil
	db.attendance.members = nil
	db.attendance.holidays = nil
}
