package testutil

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/trezcool/mahudhurio/core/attendance"
)

// Default scope for seeded fixtures.
const (
	Cohort = "chtJan26"
	Epic   = "epicWebDev"
)

func Date(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", value)
	if err != nil {
		t.Fatalf("Date(%q) failed: %v", value, err)
	}
	return d
}

// NewRecord builds an attendance record scoped to the default cohort and epic.
func NewRecord(studentID string, date time.Time, number int, status, absenceType string, updatedAt ...time.Time) attendance.Record {
	tstamp := time.Now().UTC()
	if len(updatedAt) > 0 {
		tstamp = updatedAt[0].UTC()
	}
	return attendance.Record{
		CohortID:      Cohort,
		EpicID:        Epic,
		StudentID:     studentID,
		SessionDate:   date,
		SessionNumber: number,
		Status:        status,
		AbsenceType:   absenceType,
		CreatedAt:     tstamp,
		UpdatedAt:     tstamp,
	}
}

func NewMember(id, name string) attendance.Member {
	return attendance.Member{ID: id, CohortID: Cohort, Name: name}
}

// CheckJSON fails with a unified diff when got and want do not serialize to the
// same JSON.
func CheckJSON(t *testing.T, got, want interface{}) {
	t.Helper()
	g, err := json.MarshalIndent(got, "", "  ")
	if err != nil {
		t.Fatalf("CheckJSON() failed to marshal got: %v", err)
	}
	w, err := json.MarshalIndent(want, "", "  ")
	if err != nil {
		t.Fatalf("CheckJSON() failed to marshal want: %v", err)
	}
	if bytes.Equal(g, w) {
		return
	}
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(w)),
		B:        difflib.SplitLines(string(g)),
		FromFile: "want",
		ToFile:   "got",
		Context:  3,
	})
	if err != nil {
		t.Fatalf("CheckJSON() failed to diff: %v", err)
	}
	t.Errorf("unexpected payload:\n%s", diff)
}
