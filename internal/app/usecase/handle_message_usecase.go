package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"cloud.google.com/go/civil"

	"github.com/fardannozami/accountability-tracker/internal/calendar"
	"github.com/fardannozami/accountability-tracker/internal/domain"
)

type ActivityRecorder interface {
	Execute(ctx context.Context, record *domain.ActivityRecord) error
}

type StreakReader interface {
	Execute(ctx context.Context, userID string, kind domain.ActivityKind) (*domain.StreakResult, error)
}

type WeekReader interface {
	Execute(ctx context.Context, userID string, kind domain.ActivityKind, start, end *civil.Date) (*WeekResult, error)
}

type LeaderboardReader interface {
	Execute(ctx context.Context, kind domain.ActivityKind) (*domain.Leaderboard, error)
}

const callsUsage = "Usage: #calls <made>/<target>, for example #calls 12/20"

// HandleMessageUsecase turns chat commands into tracker operations. Messages
// that are not commands produce an empty reply.
type HandleMessageUsecase struct {
	members     domain.MemberRepository
	recorder    ActivityRecorder
	streaks     StreakReader
	weeks       WeekReader
	leaderboard LeaderboardReader
	clock       calendar.Clock
}

func NewHandleMessageUsecase(
	members domain.MemberRepository,
	recorder ActivityRecorder,
	streaks StreakReader,
	weeks WeekReader,
	leaderboard LeaderboardReader,
	clock calendar.Clock,
) *HandleMessageUsecase {
	return &HandleMessageUsecase{
		members:     members,
		recorder:    recorder,
		streaks:     streaks,
		weeks:       weeks,
		leaderboard: leaderboard,
		clock:       clock,
	}
}

func (uc *HandleMessageUsecase) Execute(ctx context.Context, userID, name, msg string) (string, error) {
	fields := strings.Fields(msg)
	if len(fields) == 0 {
		return "", nil
	}
	command := strings.ToLower(fields[0])
	args := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(msg), fields[0]))

	switch command {
	case "#done", "#streak", "#calls", "#week", "#leaderboard":
	default:
		return "", nil
	}

	if err := uc.members.UpsertMember(ctx, &domain.Member{UserID: userID, Name: name}); err != nil {
		return "", fmt.Errorf("register member %s: %w", userID, err)
	}

	switch command {
	case "#done":
		return uc.done(ctx, userID, name, args)
	case "#calls":
		return uc.calls(ctx, userID, name, args)
	case "#streak":
		return uc.streak(ctx, userID, name)
	case "#week":
		return uc.week(ctx, userID, name)
	default:
		board, err := uc.leaderboard.Execute(ctx, domain.KindCommitment)
		if err != nil {
			return "", err
		}
		return FormatLeaderboard(board), nil
	}
}

func (uc *HandleMessageUsecase) done(ctx context.Context, userID, name, text string) (string, error) {
	err := uc.recorder.Execute(ctx, &domain.ActivityRecord{
		UserID: userID,
		Kind:   domain.KindCommitment,
		Date:   uc.clock.Today(),
		Status: domain.StatusCompleted,
		Text:   text,
	})
	if err != nil {
		return "", err
	}

	res, err := uc.streaks.Execute(ctx, userID, domain.KindCommitment)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Commitment logged, %s is on a %d business day streak. Keep going 🔥", name, res.Streak), nil
}

func (uc *HandleMessageUsecase) calls(ctx context.Context, userID, name, args string) (string, error) {
	actual, target, ok := parseCalls(args)
	if !ok {
		return callsUsage, nil
	}

	err := uc.recorder.Execute(ctx, &domain.ActivityRecord{
		UserID:      userID,
		Kind:        domain.KindPhoneCall,
		Date:        uc.clock.Today(),
		TargetCalls: target,
		ActualCalls: actual,
	})
	if errors.Is(err, domain.ErrInvalidRecord) {
		return callsUsage, nil
	}
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("Calls logged, %s made %d of %d (%d%%) today 📞", name, actual, target, completionRate(actual, target)), nil
}

func parseCalls(args string) (actual, target int, ok bool) {
	made, goal, found := strings.Cut(strings.ReplaceAll(args, " ", ""), "/")
	if !found {
		return 0, 0, false
	}
	actual, err := strconv.Atoi(made)
	if err != nil {
		return 0, 0, false
	}
	target, err = strconv.Atoi(goal)
	if err != nil {
		return 0, 0, false
	}
	return actual, target, true
}

func (uc *HandleMessageUsecase) streak(ctx context.Context, userID, name string) (string, error) {
	commitments, err := uc.streaks.Execute(ctx, userID, domain.KindCommitment)
	if err != nil {
		return "", err
	}
	calls, err := uc.streaks.Execute(ctx, userID, domain.KindPhoneCall)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s: %d day commitment streak, %d day phone call streak", name, commitments.Streak, calls.Streak), nil
}

func (uc *HandleMessageUsecase) week(ctx context.Context, userID, name string) (string, error) {
	res, err := uc.weeks.Execute(ctx, userID, domain.KindPhoneCall, nil, nil)
	if err != nil {
		return "", err
	}
	report := res.Report

	sb := strings.Builder{}
	sb.WriteString(fmt.Sprintf("%s's calls, %s to %s\n", name, report.StartDate, report.EndDate))
	for _, d := range report.Days {
		sb.WriteString(fmt.Sprintf("%s: %d/%d (%d%%)\n", d.DayName, d.ActualValue, d.TargetValue, d.CompletionRate))
	}
	sb.WriteString(fmt.Sprintf("Week: %d/%d (%d%%)", report.Totals.TotalActual, report.Totals.TotalTarget, report.Totals.CompletionRate))
	return sb.String(), nil
}
