package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/fardannozami/accountability-tracker/internal/calendar"
	"github.com/fardannozami/accountability-tracker/internal/domain"
)

const leaderboardWorkers = 8

type GetLeaderboardUsecase struct {
	members    domain.MemberRepository
	activities domain.ActivityRepository
	clock      calendar.Clock
}

func NewGetLeaderboardUsecase(members domain.MemberRepository, activities domain.ActivityRepository, clock calendar.Clock) *GetLeaderboardUsecase {
	return &GetLeaderboardUsecase{members: members, activities: activities, clock: clock}
}

func (uc *GetLeaderboardUsecase) Execute(ctx context.Context, kind domain.ActivityKind) (*domain.Leaderboard, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidKind, kind)
	}

	members, err := uc.members.GetAllMembers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list members: %v", domain.ErrStoreUnavailable, err)
	}

	today := uc.clock.Today()
	entries := make([]domain.LeaderboardEntry, len(members))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(leaderboardWorkers)
	for i, m := range members {
		g.Go(func() error {
			records, err := uc.activities.FetchActivity(gctx, m.UserID, kind, nil)
			if err != nil {
				return fmt.Errorf("%w: fetch %s for %s: %v", domain.ErrStoreUnavailable, kind, m.UserID, err)
			}
			entries[i] = domain.LeaderboardEntry{Member: *m, Streak: ComputeStreak(records, today)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	board := &domain.Leaderboard{
		Kind:    kind,
		Date:    today,
		Keeping: []domain.LeaderboardEntry{},
		Broken:  []domain.LeaderboardEntry{},
	}
	for _, e := range entries {
		if e.Streak > 0 {
			board.Keeping = append(board.Keeping, e)
		} else {
			board.Broken = append(board.Broken, e)
		}
	}

	sortEntries(board.Keeping)
	sortEntries(board.Broken)

	return board, nil
}

// Streak descending, then name.
func sortEntries(entries []domain.LeaderboardEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Streak != entries[j].Streak {
			return entries[i].Streak > entries[j].Streak
		}
		return entries[i].Name < entries[j].Name
	})
}

// FormatLeaderboard renders the board as a chat message.
func FormatLeaderboard(board *domain.Leaderboard) string {
	sb := strings.Builder{}
	sb.WriteString(fmt.Sprintf("Accountability board – %s (%s)\n\n", kindLabel(board.Kind), board.Date))

	sb.WriteString(fmt.Sprintf("%d keeping the streak 🔥\n", len(board.Keeping)))
	sb.WriteString(fmt.Sprintf("%d lost the streak 💔\n", len(board.Broken)))
	sb.WriteString("\nStandings:\n")

	rank := 1
	for _, e := range board.Keeping {
		sb.WriteString(fmt.Sprintf("%d. %s - %d business days 🔥\n", rank, e.Name, e.Streak))
		rank++
	}
	for _, e := range board.Broken {
		sb.WriteString(fmt.Sprintf("%d. %s 💔\n", rank, e.Name))
		rank++
	}

	sb.WriteString("\nReport with #done or #calls to get back on the board 💪")

	return sb.String()
}

func kindLabel(kind domain.ActivityKind) string {
	if kind == domain.KindPhoneCall {
		return "phone calls"
	}
	return "daily commitments"
}
