package attendance

import (
	"sort"
	"strings"
)

// Badges for the top occupied rank values.
const (
	BadgeGold   = "🥇"
	BadgeSilver = "🥈"
	BadgeBronze = "🥉"
)

type LeaderboardEntry struct {
	Rank          int     `json:"rank"`
	Badge         string  `json:"badge,omitempty"`
	StudentID     string  `json:"studentId,omitempty"`
	Name          string  `json:"name"`
	Percentage    float64 `json:"attendancePercentage"`
	CurrentStreak int     `json:"currentStreak"`
	Attended      int     `json:"attendedCount"`
	Total         int     `json:"totalCount"`
}

type Leaderboard struct {
	Entries       []LeaderboardEntry `json:"entries"`
	TotalStudents int                `json:"totalStudents"`
	Limit         int                `json:"limit"`
	Offset        int                `json:"offset"`
}

// rankEntries sorts by attendance percentage desc then current streak desc and
// applies standard competition ranking: identical (percentage, streak) keys
// share a rank, and the next distinct key gets previousRank + 1 — ranks can
// repeat but never skip. Ties beyond the sort key are genuinely tied; name is
// only used to keep the output deterministic.
func rankEntries(entries []LeaderboardEntry) []LeaderboardEntry {
	out := make([]LeaderboardEntry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Percentage != out[j].Percentage {
			return out[i].Percentage > out[j].Percentage
		}
		if out[i].CurrentStreak != out[j].CurrentStreak {
			return out[i].CurrentStreak > out[j].CurrentStreak
		}
		return out[i].Name < out[j].Name
	})

	rank := 0
	for i := range out {
		if i == 0 || out[i].Percentage != out[i-1].Percentage || out[i].CurrentStreak != out[i-1].CurrentStreak {
			rank++
		}
		out[i].Rank = rank
		out[i].Badge = badgeFor(rank)
	}
	return out
}

// badgeFor assigns per occupied rank value: a 3-way tie for rank 1 gives all
// three gold, and the next group (rank 2) silver.
func badgeFor(rank int) string {
	switch rank {
	case 1:
		return BadgeGold
	case 2:
		return BadgeSilver
	case 3:
		return BadgeBronze
	}
	return ""
}

// paginate slices ranked entries; ranks were assigned beforehand so they are
// stable across pages. limit <= 0 means no limit.
func paginate(entries []LeaderboardEntry, limit, offset int) []LeaderboardEntry {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(entries) {
		return []LeaderboardEntry{}
	}
	entries = entries[offset:]
	if limit > 0 && limit < len(entries) {
		entries = entries[:limit]
	}
	out := make([]LeaderboardEntry, len(entries))
	copy(out, entries)
	return out
}

// publicName reduces "Amani Mwangi" to "Amani M." for the public leaderboard.
func publicName(name string) string {
	parts := strings.Fields(name)
	if len(parts) < 2 {
		return name
	}
	last := parts[len(parts)-1]
	return strings.Join(parts[:len(parts)-1], " ") + " " + string([]rune(last)[0]) + "."
}
