package usecase

import (
	"context"
	"fmt"

	"cloud.google.com/go/civil"

	"github.com/fardannozami/accountability-tracker/internal/calendar"
	"github.com/fardannozami/accountability-tracker/internal/domain"
)

// MaxStreak bounds the backward walk.
const MaxStreak = 365

const (
	recentLimit  = 10
	summaryRunes = 50
)

// ComputeStreak counts consecutive business days with a qualifying record,
// walking back from today. On weekends, or when today has no record yet, the
// walk starts at the previous business day. Weekend records are ignored.
func ComputeStreak(records []domain.ActivityRecord, today civil.Date) int {
	qualified := make(map[civil.Date]struct{})
	for _, r := range records {
		if r.Qualifies() && calendar.IsBusinessDay(r.Date) {
			qualified[r.Date] = struct{}{}
		}
	}
	if len(qualified) == 0 {
		return 0
	}

	cursor := today
	if calendar.IsBusinessDay(cursor) {
		// Today is still open: a missing record only breaks the streak tomorrow.
		if _, ok := qualified[cursor]; !ok {
			cursor = calendar.PreviousBusinessDay(cursor)
		}
	} else {
		cursor = calendar.PreviousBusinessDay(cursor)
	}

	streak := 0
	for {
		if _, ok := qualified[cursor]; !ok {
			return streak
		}
		streak++
		if streak >= MaxStreak {
			return MaxStreak
		}
		cursor = calendar.PreviousBusinessDay(cursor)
	}
}

type GetStreakUsecase struct {
	repo  domain.ActivityRepository
	clock calendar.Clock
}

func NewGetStreakUsecase(repo domain.ActivityRepository, clock calendar.Clock) *GetStreakUsecase {
	return &GetStreakUsecase{repo: repo, clock: clock}
}

func (uc *GetStreakUsecase) Execute(ctx context.Context, userID string, kind domain.ActivityKind) (*domain.StreakResult, error) {
	if userID == "" {
		return nil, domain.ErrMissingUserID
	}
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidKind, kind)
	}

	records, err := uc.repo.FetchActivity(ctx, userID, kind, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch %s for %s: %v", domain.ErrStoreUnavailable, kind, userID, err)
	}

	return &domain.StreakResult{
		UserID: userID,
		Kind:   kind,
		Streak: ComputeStreak(records, uc.clock.Today()),
		Recent: summarize(records, recentLimit),
	}, nil
}

// summarize expects records newest first, the order the repository returns.
func summarize(records []domain.ActivityRecord, limit int) []domain.RecordSummary {
	n := min(len(records), limit)
	out := make([]domain.RecordSummary, 0, n)
	for _, r := range records[:n] {
		text := r.Text
		if r.Kind == domain.KindPhoneCall {
			text = fmt.Sprintf("%d/%d calls", r.ActualCalls, r.TargetCalls)
		}
		out = append(out, domain.RecordSummary{
			Date:      r.Date,
			Status:    r.Status,
			Qualifies: r.Qualifies(),
			Text:      truncate(text, summaryRunes),
		})
	}
	return out
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
