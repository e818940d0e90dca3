package attendance

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/mahudhurio/core"
)

var (
	// errors
	ErrStudentNotFound = errors.New("student is not an active member of this cohort")
)

// Epic status labels derived from the cohort-wide percentage.
const (
	EpicStatusExcellent = "excellent" // >= 95
	EpicStatusGood      = "good"      // >= 85
	EpicStatusFair      = "fair"      // >= 75
	EpicStatusPoor      = "poor"      // >= 60
	EpicStatusCritical  = "critical"
)

// poorAttendanceCutoff marks a student's percentage as poor in epic stats.
const poorAttendanceCutoff = 75.0

type (
	// RecordFilter narrows the attendance rows fetched for one calculation.
	// Zero values mean "not filtered on".
	RecordFilter struct {
		CohortID      string
		EpicID        string
		StudentID     string
		SessionDate   time.Time
		SessionNumber int
		DateFrom      time.Time
		DateTo        time.Time
	}

	// Repository is the read-only record store the engine queries. Any error
	// aborts the whole calculation; the engine never mutates the store.
	Repository interface {
		QueryRecords(ctx context.Context, filter RecordFilter) ([]Record, error)
		QueryActiveMembers(ctx context.Context, cohortID string) ([]Member, error)
		QueryPublishedHolidays(ctx context.Context, cohortID string, from, to time.Time) ([]Holiday, error)
	}

	// Service is the attendance analytics engine: a pure, synchronous
	// function of each request and a fresh snapshot of the store.
	Service interface {
		SessionStats(ctx context.Context, req SessionStatsRequest) (*SessionStats, error)
		EpicStats(ctx context.Context, req EpicStatsRequest) (*EpicStats, error)
		CalendarData(ctx context.Context, req CalendarRequest) (*Calendar, error)
		Leaderboard(ctx context.Context, req LeaderboardRequest) (*Leaderboard, error)
		PublicLeaderboard(ctx context.Context, req LeaderboardRequest) (*Leaderboard, error)
		StudentStats(ctx context.Context, req StudentStatsRequest) (*StudentStats, error)
		StudentStreaks(ctx context.Context, req StudentStreaksRequest) (*StudentStreaks, error)
		DropOutRadar(ctx context.Context, req DropOutRadarRequest) (*DropOutRadar, error)
	}

	service struct {
		repo    Repository
		workers int
	}
)

var _ Service = (*service)(nil) // interface compliance check

func NewService(repo Repository, conf *core.Config) Service {
	workers := 1
	if conf != nil && conf.Workers > 1 {
		workers = conf.Workers
	}
	return &service{repo: repo, workers: workers}
}

// Result payloads.

type SessionStats struct {
	CohortID string `json:"cohortId"`
	EpicID   string `json:"epicId"`
	SessionSummary
}

type EpicStats struct {
	CohortID string `json:"cohortId"`
	EpicID   string `json:"epicId"`
	Breakdown
	TotalStudents          int    `json:"totalStudents"`
	TotalSessions          int    `json:"totalSessions"`
	TopStreak              int    `json:"topStreak"`
	Status                 string `json:"status"`
	PerfectAttendanceCount int    `json:"perfectAttendanceCount"`
	PoorAttendanceCount    int    `json:"poorAttendanceCount"`
}

type StudentStats struct {
	StudentID string `json:"studentId"`
	Name      string `json:"name"`
	Breakdown
	Streak Streak `json:"streak"`
	Rank   int    `json:"rank"`
}

type StudentStreak struct {
	StudentID string `json:"studentId"`
	Name      string `json:"name"`
	Streak
}

type StudentStreaks struct {
	Streaks         []StudentStreak `json:"streaks"`
	CohortTopStreak int             `json:"cohortTopStreak"`
}

// forEachMember fans fn out over a bounded worker pool; each member's
// calculation only reads its own record subset so results are written to
// index-addressed slots and the output is deterministic. Falls back to
// sequential iteration with no change in output.
func (svc *service) forEachMember(members []Member, fn func(i int, m Member)) {
	if svc.workers <= 1 || len(members) < 2 {
		for i, m := range members {
			fn(i, m)
		}
		return
	}

	sem := make(chan struct{}, svc.workers)
	var wg sync.WaitGroup
	for i, m := range members {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, m Member) {
			defer wg.Done()
			defer func() { <-sem }()
			fn(i, m)
		}(i, m)
	}
	wg.Wait()
}

func (svc *service) fetch(ctx context.Context, filter RecordFilter) ([]Record, []Member, error) {
	members, err := svc.repo.QueryActiveMembers(ctx, filter.CohortID)
	if err != nil {
		return nil, nil, errors.Wrap(err, "querying active members")
	}
	records, err := svc.repo.QueryRecords(ctx, filter)
	if err != nil {
		return nil, nil, errors.Wrap(err, "querying attendance records")
	}
	return Normalize(records), members, nil
}

func (svc *service) SessionStats(ctx context.Context, req SessionStatsRequest) (*SessionStats, error) {
	records, members, err := svc.fetch(ctx, RecordFilter{
		CohortID:      req.CohortID,
		EpicID:        req.EpicID,
		SessionDate:   req.Date(),
		SessionNumber: req.SessionNumber,
	})
	if err != nil {
		return nil, err
	}
	return &SessionStats{
		CohortID:       req.CohortID,
		EpicID:         req.EpicID,
		SessionSummary: NewSessionSummary(req.Date(), req.SessionNumber, records, len(members)),
	}, nil
}

func (svc *service) EpicStats(ctx context.Context, req EpicStatsRequest) (*EpicStats, error) {
	from, to := req.Range()
	records, members, err := svc.fetch(ctx, RecordFilter{
		CohortID: req.CohortID,
		EpicID:   req.EpicID,
		DateFrom: from,
		DateTo:   to,
	})
	if err != nil {
		return nil, err
	}

	stats := &EpicStats{
		CohortID:      req.CohortID,
		EpicID:        req.EpicID,
		Breakdown:     NewCohortBreakdown(records),
		TotalStudents: len(members),
	}
	_, keys := groupBySession(records)
	stats.TotalSessions = len(keys)
	stats.Status = epicStatusFor(stats.Percentage)

	grouped := groupByStudent(records)
	breakdowns := make([]Breakdown, len(members))
	streaks := make([]Streak, len(members))
	svc.forEachMember(members, func(i int, m Member) {
		breakdowns[i] = NewBreakdown(grouped[m.ID])
		streaks[i] = NewStreak(grouped[m.ID])
	})
	for i := range members {
		if streaks[i].Current > stats.TopStreak {
			stats.TopStreak = streaks[i].Current
		}
		if breakdowns[i].Total > 0 && breakdowns[i].Percentage == 100 {
			stats.PerfectAttendanceCount++
		}
		if stats.TotalSessions > 0 && breakdowns[i].Percentage < poorAttendanceCutoff {
			stats.PoorAttendanceCount++
		}
	}
	return stats, nil
}

func (svc *service) CalendarData(ctx context.Context, req CalendarRequest) (*Calendar, error) {
	first, last := MonthBounds(req.MonthTime())
	records, members, err := svc.fetch(ctx, RecordFilter{
		CohortID: req.CohortID,
		EpicID:   req.EpicID,
		DateFrom: first,
		DateTo:   last,
	})
	if err != nil {
		return nil, err
	}
	holidays, err := svc.repo.QueryPublishedHolidays(ctx, req.CohortID, first, last)
	if err != nil {
		return nil, errors.Wrap(err, "querying holidays")
	}

	cal := NewCalendar(first, records, holidays, len(members))
	return &cal, nil
}

// computeEntries builds one unranked leaderboard entry per active member.
func (svc *service) computeEntries(members []Member, records []Record) []LeaderboardEntry {
	grouped := groupByStudent(records)
	entries := make([]LeaderboardEntry, len(members))
	svc.forEachMember(members, func(i int, m Member) {
		b := NewBreakdown(grouped[m.ID])
		s := NewStreak(grouped[m.ID])
		entries[i] = LeaderboardEntry{
			StudentID:     m.ID,
			Name:          m.Name,
			Percentage:    b.Percentage,
			CurrentStreak: s.Current,
			Attended:      b.Attended,
			Total:         b.Total,
		}
	})
	return entries
}

func (svc *service) leaderboard(ctx context.Context, req LeaderboardRequest) (*Leaderboard, error) {
	records, members, err := svc.fetch(ctx, RecordFilter{CohortID: req.CohortID, EpicID: req.EpicID})
	if err != nil {
		return nil, err
	}
	ranked := rankEntries(svc.computeEntries(members, records))
	return &Leaderboard{
		Entries:       paginate(ranked, req.Limit, req.Offset),
		TotalStudents: len(members),
		Limit:         req.Limit,
		Offset:        req.Offset,
	}, nil
}

func (svc *service) Leaderboard(ctx context.Context, req LeaderboardRequest) (*Leaderboard, error) {
	return svc.leaderboard(ctx, req)
}

// PublicLeaderboard serves the same standings with identifying details
// stripped: no student ids and names reduced to "First L." form.
func (svc *service) PublicLeaderboard(ctx context.Context, req LeaderboardRequest) (*Leaderboard, error) {
	board, err := svc.leaderboard(ctx, req)
	if err != nil {
		return nil, err
	}
	for i := range board.Entries {
		board.Entries[i].StudentID = ""
		board.Entries[i].Name = publicName(board.Entries[i].Name)
	}
	return board, nil
}

func (svc *service) StudentStats(ctx context.Context, req StudentStatsRequest) (*StudentStats, error) {
	from, to := req.Range()
	records, members, err := svc.fetch(ctx, RecordFilter{
		CohortID: req.CohortID,
		EpicID:   req.EpicID,
		DateFrom: from,
		DateTo:   to,
	})
	if err != nil {
		return nil, err
	}

	var member *Member
	for i := range members {
		if members[i].ID == req.StudentID {
			member = &members[i]
			break
		}
	}
	if member == nil {
		return nil, ErrStudentNotFound
	}

	ranked := rankEntries(svc.computeEntries(members, records))
	stats := &StudentStats{StudentID: member.ID, Name: member.Name}
	for _, e := range ranked {
		if e.StudentID == req.StudentID {
			stats.Rank = e.Rank
			break
		}
	}

	own := groupByStudent(records)[req.StudentID]
	stats.Breakdown = NewBreakdown(own)
	stats.Streak = NewStreak(own)
	return stats, nil
}

func (svc *service) StudentStreaks(ctx context.Context, req StudentStreaksRequest) (*StudentStreaks, error) {
	records, members, err := svc.fetch(ctx, RecordFilter{CohortID: req.CohortID, EpicID: req.EpicID})
	if err != nil {
		return nil, err
	}

	grouped := groupByStudent(records)
	all := make([]StudentStreak, len(members))
	svc.forEachMember(members, func(i int, m Member) {
		all[i] = StudentStreak{StudentID: m.ID, Name: m.Name, Streak: NewStreak(grouped[m.ID])}
	})

	out := &StudentStreaks{}
	for _, s := range all {
		if s.Current > out.CohortTopStreak {
			out.CohortTopStreak = s.Current
		}
	}

	if req.StudentID != "" {
		for _, s := range all {
			if s.StudentID == req.StudentID {
				out.Streaks = []StudentStreak{s}
				return out, nil
			}
		}
		return nil, ErrStudentNotFound
	}

	sort.SliceStable(all, func(i, j int) bool {
		if all[i].Current != all[j].Current {
			return all[i].Current > all[j].Current
		}
		return all[i].Name < all[j].Name
	})
	out.Streaks = all
	return out, nil
}

func (svc *service) DropOutRadar(ctx context.Context, req DropOutRadarRequest) (*DropOutRadar, error) {
	records, members, err := svc.fetch(ctx, RecordFilter{CohortID: req.CohortID, EpicID: req.EpicID})
	if err != nil {
		return nil, err
	}

	grouped := groupByStudent(records)
	found := make([]*Candidate, len(members))
	svc.forEachMember(members, func(i int, m Member) {
		if c, ok := NewCandidate(m, grouped[m.ID]); ok {
			found[i] = &c
		}
	})

	radar := &DropOutRadar{Candidates: []Candidate{}, TotalStudents: len(members)}
	for _, c := range found {
		if c != nil {
			radar.Candidates = append(radar.Candidates, *c)
		}
	}
	sortCandidates(radar.Candidates)
	return radar, nil
}

func epicStatusFor(pct float64) string {
	switch {
	case pct >= 95:
		return EpicStatusExcellent
	case pct >= 85:
		return EpicStatusGood
	case pct >= 75:
		return EpicStatusFair
	case pct >= 60:
		return EpicStatusPoor
	}
	return EpicStatusCritical
}
