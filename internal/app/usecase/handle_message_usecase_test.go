package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fardannozami/accountability-tracker/internal/app/usecase"
	"github.com/fardannozami/accountability-tracker/internal/calendar"
	"github.com/fardannozami/accountability-tracker/internal/domain"
)

// =============================================================================
// HANDLE MESSAGE USECASE TESTS
// =============================================================================
//
// Tests command routing logic:
// - #done [text]      → completes today's commitment
// - #calls made/target → records today's phone calls
// - #streak, #week, #leaderboard → read-only replies
// - Anything else     → empty reply, sender not registered
//
// =============================================================================

func newHandler(repo *mockRepo, today string) *usecase.HandleMessageUsecase {
	clock := calendar.FixedClock(day(today))
	return usecase.NewHandleMessageUsecase(
		repo,
		usecase.NewRecordActivityUsecase(repo),
		usecase.NewGetStreakUsecase(repo, clock),
		usecase.NewGetWeekReportUsecase(repo, clock),
		usecase.NewGetLeaderboardUsecase(repo, repo, clock),
		clock,
	)
}

func TestHandleMessage_DoneCommand(t *testing.T) {
	repo := newMockRepo()
	repo.add(completed("628111", "2025-09-18")...)
	handler := newHandler(repo, "2025-09-19")

	msg, err := handler.Execute(context.Background(), "628111", "Brian", "#done  Call the Hendersons back")
	require.NoError(t, err)

	assert.Equal(t, "Commitment logged, Brian is on a 2 business day streak. Keep going 🔥", msg)

	records, _ := repo.FetchActivity(context.Background(), "628111", domain.KindCommitment, nil)
	require.Len(t, records, 2)
	assert.Equal(t, day("2025-09-19"), records[0].Date)
	assert.Equal(t, domain.StatusCompleted, records[0].Status)
	assert.Equal(t, "Call the Hendersons back", records[0].Text)
	assert.Equal(t, "Brian", repo.members["628111"].Name)
}

func TestHandleMessage_CaseInsensitiveAndWhitespace(t *testing.T) {
	for _, cmd := range []string{"#DONE", "#Done", "  #done", "#done  ", "\t#done", "\n#done\n"} {
		repo := newMockRepo()
		msg, err := newHandler(repo, "2025-09-19").Execute(context.Background(), "u1", "User", cmd)
		require.NoError(t, err, cmd)
		assert.NotEmpty(t, msg, "%q should be recognized", cmd)
	}
}

func TestHandleMessage_CallsCommand(t *testing.T) {
	repo := newMockRepo()
	handler := newHandler(repo, "2025-09-16")

	msg, err := handler.Execute(context.Background(), "u1", "Ana", "#calls 12 / 20")
	require.NoError(t, err)
	assert.Equal(t, "Calls logged, Ana made 12 of 20 (60%) today 📞", msg)

	records, _ := repo.FetchActivity(context.Background(), "u1", domain.KindPhoneCall, nil)
	require.Len(t, records, 1)
	assert.Equal(t, 20, records[0].TargetCalls)
	assert.Equal(t, 12, records[0].ActualCalls)
}

func TestHandleMessage_CallsUsage(t *testing.T) {
	for _, cmd := range []string{"#calls", "#calls twelve/20", "#calls 12", "#calls -1/20"} {
		repo := newMockRepo()
		msg, err := newHandler(repo, "2025-09-16").Execute(context.Background(), "u1", "Ana", cmd)
		require.NoError(t, err, cmd)
		assert.Contains(t, msg, "Usage: #calls", cmd)
		assert.Zero(t, repo.upserts, "%q should not write", cmd)
	}
}

func TestHandleMessage_StreakCommand(t *testing.T) {
	repo := newMockRepo()
	repo.add(completed("u1", "2025-09-17", "2025-09-18")...)
	repo.add(calls("2025-09-18", 10, 12))

	msg, err := newHandler(repo, "2025-09-19").Execute(context.Background(), "u1", "Ana", "#streak")
	require.NoError(t, err)
	assert.Equal(t, "Ana: 2 day commitment streak, 1 day phone call streak", msg)
}

func TestHandleMessage_WeekCommand(t *testing.T) {
	repo := newMockRepo()
	repo.add(calls("2025-09-15", 50, 55), calls("2025-09-17", 50, 0))

	msg, err := newHandler(repo, "2025-09-19").Execute(context.Background(), "u1", "Ana", "#week")
	require.NoError(t, err)
	assert.Contains(t, msg, "Ana's calls, 2025-09-15 to 2025-09-19")
	assert.Contains(t, msg, "Monday: 55/50 (110%)")
	assert.Contains(t, msg, "Week: 55/100 (55%)")
}

func TestHandleMessage_LeaderboardCommand(t *testing.T) {
	repo := newMockRepo()
	seedTeam(repo)

	msg, err := newHandler(repo, "2025-09-19").Execute(context.Background(), "u9", "Eve", "#LeaderBoard")
	require.NoError(t, err)
	assert.Contains(t, msg, "Accountability board")
	// The sender is registered before the board is built.
	assert.Contains(t, msg, "Eve 💔")
}

func TestHandleMessage_UnknownCommand_ReturnsEmpty(t *testing.T) {
	repo := newMockRepo()
	handler := newHandler(repo, "2025-09-19")

	for _, msg := range []string{"", "   ", "hello", "#invalid", "#help", "done", "leaderboard"} {
		result, err := handler.Execute(context.Background(), "u1", "User", msg)
		require.NoError(t, err, msg)
		assert.Empty(t, result, "%q should not produce a reply", msg)
	}
	assert.Empty(t, repo.members, "unknown messages must not register members")
}
