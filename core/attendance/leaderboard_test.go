package attendance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func entry(name string, pct float64, streak int) LeaderboardEntry {
	return LeaderboardEntry{Name: name, Percentage: pct, CurrentStreak: streak}
}

func Test_rankEntries_competitionRanking(t *testing.T) {
	ranked := rankEntries([]LeaderboardEntry{
		entry("Chris", 90, 2),
		entry("Amani", 100, 5),
		entry("Baraka", 100, 5),
		entry("Dalia", 80, 1),
	})

	// tied (percentage, streak) keys share a rank; the next distinct key gets
	// previousRank + 1, never skipping
	assert.Equal(t, "Amani", ranked[0].Name)
	assert.Equal(t, 1, ranked[0].Rank)
	assert.Equal(t, "Baraka", ranked[1].Name)
	assert.Equal(t, 1, ranked[1].Rank)
	assert.Equal(t, 2, ranked[2].Rank)
	assert.Equal(t, 3, ranked[3].Rank)

	assert.Equal(t, BadgeGold, ranked[0].Badge)
	assert.Equal(t, BadgeGold, ranked[1].Badge)
	assert.Equal(t, BadgeSilver, ranked[2].Badge)
	assert.Equal(t, BadgeBronze, ranked[3].Badge)
}

func Test_rankEntries_streakBreaksPercentageTie(t *testing.T) {
	ranked := rankEntries([]LeaderboardEntry{
		entry("Amani", 90, 2),
		entry("Baraka", 90, 6),
	})

	assert.Equal(t, "Baraka", ranked[0].Name)
	assert.Equal(t, 1, ranked[0].Rank)
	assert.Equal(t, "Amani", ranked[1].Name)
	assert.Equal(t, 2, ranked[1].Rank)
}

func Test_rankEntries_noBadgePastThird(t *testing.T) {
	ranked := rankEntries([]LeaderboardEntry{
		entry("A", 100, 0),
		entry("B", 90, 0),
		entry("C", 80, 0),
		entry("D", 70, 0),
	})

	assert.Equal(t, "", ranked[3].Badge)
}

func Test_paginate(t *testing.T) {
	ranked := rankEntries([]LeaderboardEntry{
		entry("A", 100, 0),
		entry("B", 90, 0),
		entry("C", 80, 0),
		entry("D", 70, 0),
	})

	t.Run("limit 0 returns all", func(t *testing.T) {
		assert.Len(t, paginate(ranked, 0, 0), 4)
	})
	t.Run("limit and offset", func(t *testing.T) {
		page := paginate(ranked, 2, 1)
		assert.Len(t, page, 2)
		assert.Equal(t, "B", page[0].Name)
		assert.Equal(t, "C", page[1].Name)
	})
	t.Run("ranks are stable across pages", func(t *testing.T) {
		page := paginate(ranked, 2, 2)
		assert.Equal(t, 3, page[0].Rank)
		assert.Equal(t, 4, page[1].Rank)
	})
	t.Run("offset past the end", func(t *testing.T) {
		assert.Empty(t, paginate(ranked, 2, 10))
	})
}

func Test_publicName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "two-part name", in: "Amani Mwangi", want: "Amani M."},
		{name: "three-part name", in: "Neema Wanjiru Kamau", want: "Neema Wanjiru K."},
		{name: "single name", in: "Amani", want: "Amani"},
		{name: "empty", in: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, publicName(tt.in))
		})
	}
}
