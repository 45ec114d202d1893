package usecase_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fardannozami/accountability-tracker/internal/app/usecase"
	"github.com/fardannozami/accountability-tracker/internal/calendar"
	"github.com/fardannozami/accountability-tracker/internal/domain"
)

// =============================================================================
// LEADERBOARD
// =============================================================================
//
// Keeping 🔥: current streak > 0, ranked by streak then name.
// Broken 💔: streak of 0, listed after everyone keeping theirs.
//
// =============================================================================

func seedTeam(repo *mockRepo) {
	for _, m := range []*domain.Member{
		{UserID: "u1", Name: "Alice"},
		{UserID: "u2", Name: "Bob"},
		{UserID: "u3", Name: "Carol"},
		{UserID: "u4", Name: "Dan"},
	} {
		_ = repo.UpsertMember(context.Background(), m)
	}
	repo.add(completed("u1", "2025-09-19", "2025-09-18")...)
	repo.add(completed("u2", "2025-09-18", "2025-09-17", "2025-09-16")...)
	repo.add(completed("u3", "2025-09-15")...)
	repo.add(completed("u4", "2025-09-19", "2025-09-18")...)
}

func TestLeaderboard_SplitsAndRanks(t *testing.T) {
	repo := newMockRepo()
	seedTeam(repo)
	uc := usecase.NewGetLeaderboardUsecase(repo, repo, calendar.FixedClock(day("2025-09-19")))

	board, err := uc.Execute(context.Background(), domain.KindCommitment)
	require.NoError(t, err)

	var keeping []string
	for _, e := range board.Keeping {
		keeping = append(keeping, e.Name)
	}
	assert.Equal(t, []string{"Bob", "Alice", "Dan"}, keeping)
	require.Len(t, board.Broken, 1)
	assert.Equal(t, "Carol", board.Broken[0].Name)
	assert.Equal(t, day("2025-09-19"), board.Date)
}

func TestLeaderboard_Empty(t *testing.T) {
	repo := newMockRepo()
	uc := usecase.NewGetLeaderboardUsecase(repo, repo, calendar.FixedClock(day("2025-09-19")))

	board, err := uc.Execute(context.Background(), domain.KindPhoneCall)
	require.NoError(t, err)
	assert.Empty(t, board.Keeping)
	assert.Empty(t, board.Broken)
}

func TestLeaderboard_StoreFailure(t *testing.T) {
	repo := newMockRepo()
	seedTeam(repo)
	repo.fetchErr = errStoreDown
	uc := usecase.NewGetLeaderboardUsecase(repo, repo, calendar.FixedClock(day("2025-09-19")))

	_, err := uc.Execute(context.Background(), domain.KindCommitment)
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}

func TestFormatLeaderboard(t *testing.T) {
	repo := newMockRepo()
	seedTeam(repo)
	uc := usecase.NewGetLeaderboardUsecase(repo, repo, calendar.FixedClock(day("2025-09-19")))

	board, err := uc.Execute(context.Background(), domain.KindCommitment)
	require.NoError(t, err)
	msg := usecase.FormatLeaderboard(board)

	assert.Contains(t, msg, "daily commitments (2025-09-19)")
	assert.Contains(t, msg, "3 keeping the streak 🔥")
	assert.Contains(t, msg, "1. Bob - 3 business days 🔥")
	assert.Contains(t, msg, "4. Carol 💔")
	assert.Less(t, strings.Index(msg, "Alice"), strings.Index(msg, "Dan"))
}
