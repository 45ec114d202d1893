package api

import (
	"context"
	"fmt"

	"cloud.google.com/go/civil"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/fardannozami/accountability-tracker/internal/app/usecase"
	"github.com/fardannozami/accountability-tracker/internal/domain"
)

type ActivityLister interface {
	Execute(ctx context.Context, userID string, kind domain.ActivityKind, rng *domain.DateRange) ([]domain.ActivityRecord, error)
}

type Handler struct {
	streaks     usecase.StreakReader
	weeks       usecase.WeekReader
	leaderboard usecase.LeaderboardReader
	recorder    usecase.ActivityRecorder
	lister      ActivityLister
	log         *zap.Logger
}

func NewHandler(
	streaks usecase.StreakReader,
	weeks usecase.WeekReader,
	leaderboard usecase.LeaderboardReader,
	recorder usecase.ActivityRecorder,
	lister ActivityLister,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		streaks:     streaks,
		weeks:       weeks,
		leaderboard: leaderboard,
		recorder:    recorder,
		lister:      lister,
		log:         logger,
	}
}

type streakResponse struct {
	Streak int         `json:"streak"`
	Debug  streakDebug `json:"debug"`
}

type streakDebug struct {
	UserID        string                 `json:"user_id"`
	Kind          domain.ActivityKind    `json:"kind"`
	RecentRecords []domain.RecordSummary `json:"recent_records"`
}

// GetStreak handles GET /api/streak?userId=&kind=. Kind defaults to commitment.
func (h *Handler) GetStreak(c *fiber.Ctx) error {
	kind, err := kindParam(c, domain.KindCommitment)
	if err != nil {
		return h.fail(c, err, "")
	}

	res, err := h.streaks.Execute(c.UserContext(), c.Query("userId"), kind)
	if err != nil {
		return h.fail(c, err, "Failed to calculate streak")
	}

	return c.JSON(streakResponse{
		Streak: res.Streak,
		Debug: streakDebug{
			UserID:        res.UserID,
			Kind:          res.Kind,
			RecentRecords: res.Recent,
		},
	})
}

type weekSummary struct {
	StartDate      civil.Date `json:"start_date"`
	EndDate        civil.Date `json:"end_date"`
	TotalTarget    int        `json:"total_target"`
	TotalActual    int        `json:"total_actual"`
	CompletionRate int        `json:"completion_rate"`
}

type weekResponse struct {
	Week    weekSummary             `json:"week"`
	Days    []domain.DayStat        `json:"days"`
	Records []domain.ActivityRecord `json:"records"`
}

// GetWeekStats handles GET .../stats?userId=&startDate=&endDate=.
func (h *Handler) GetWeekStats(kind domain.ActivityKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start, err := dateParam(c, "startDate")
		if err != nil {
			return h.fail(c, err, "")
		}
		end, err := dateParam(c, "endDate")
		if err != nil {
			return h.fail(c, err, "")
		}

		res, err := h.weeks.Execute(c.UserContext(), c.Query("userId"), kind, start, end)
		if err != nil {
			return h.fail(c, err, "Failed to fetch weekly statistics")
		}

		r := res.Report
		return c.JSON(weekResponse{
			Week: weekSummary{
				StartDate:      r.StartDate,
				EndDate:        r.EndDate,
				TotalTarget:    r.Totals.TotalTarget,
				TotalActual:    r.Totals.TotalActual,
				CompletionRate: r.Totals.CompletionRate,
			},
			Days:    r.Days,
			Records: res.Records,
		})
	}
}

// GetLeaderboard handles GET /api/leaderboard?kind=.
func (h *Handler) GetLeaderboard(c *fiber.Ctx) error {
	kind, err := kindParam(c, domain.KindCommitment)
	if err != nil {
		return h.fail(c, err, "")
	}

	board, err := h.leaderboard.Execute(c.UserContext(), kind)
	if err != nil {
		return h.fail(c, err, "Failed to build leaderboard")
	}
	return c.JSON(board)
}

// ListActivity handles GET /api/commitments and /api/phone-calls. A start
// date without an end date lists everything from start onwards.
func (h *Handler) ListActivity(kind domain.ActivityKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start, err := dateParam(c, "startDate")
		if err != nil {
			return h.fail(c, err, "")
		}
		end, err := dateParam(c, "endDate")
		if err != nil {
			return h.fail(c, err, "")
		}

		var rng *domain.DateRange
		switch {
		case start != nil && end != nil:
			rng = &domain.DateRange{From: *start, To: *end}
		case start != nil:
			rng = &domain.DateRange{From: *start, To: lastDate}
		case end != nil:
			rng = &domain.DateRange{From: firstDate, To: *end}
		}

		records, err := h.lister.Execute(c.UserContext(), c.Query("userId"), kind, rng)
		if err != nil {
			return h.fail(c, err, "Failed to fetch activity")
		}
		return c.JSON(records)
	}
}

var (
	firstDate = civil.Date{Year: 1, Month: 1, Day: 1}
	lastDate  = civil.Date{Year: 9999, Month: 12, Day: 31}
)

type commitmentRequest struct {
	UserID         string     `json:"userId"`
	Date           civil.Date `json:"date"`
	CommitmentText string     `json:"commitmentText"`
	Status         string     `json:"status"`
}

// RecordCommitment handles POST /api/commitments.
func (h *Handler) RecordCommitment(c *fiber.Ctx) error {
	var req commitmentRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, fmt.Sprintf("invalid body: %v", err))
	}

	record := &domain.ActivityRecord{
		UserID: req.UserID,
		Kind:   domain.KindCommitment,
		Date:   req.Date,
		Status: req.Status,
		Text:   req.CommitmentText,
	}
	if err := h.recorder.Execute(c.UserContext(), record); err != nil {
		return h.fail(c, err, "Failed to save commitment")
	}
	return c.Status(fiber.StatusCreated).JSON(record)
}

type phoneCallRequest struct {
	UserID      string     `json:"userId"`
	Date        civil.Date `json:"date"`
	TargetCalls int        `json:"targetCalls"`
	ActualCalls int        `json:"actualCalls"`
	Notes       string     `json:"notes"`
}

// RecordPhoneCall handles POST /api/phone-calls.
func (h *Handler) RecordPhoneCall(c *fiber.Ctx) error {
	var req phoneCallRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, fmt.Sprintf("invalid body: %v", err))
	}

	record := &domain.ActivityRecord{
		UserID:      req.UserID,
		Kind:        domain.KindPhoneCall,
		Date:        req.Date,
		TargetCalls: req.TargetCalls,
		ActualCalls: req.ActualCalls,
		Notes:       req.Notes,
	}
	if err := h.recorder.Execute(c.UserContext(), record); err != nil {
		return h.fail(c, err, "Failed to save phone call")
	}
	return c.Status(fiber.StatusOK).JSON(record)
}

func dateParam(c *fiber.Ctx, key string) (*civil.Date, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	d, err := civil.ParseDate(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s=%q", domain.ErrInvalidDate, key, raw)
	}
	return &d, nil
}

func kindParam(c *fiber.Ctx, fallback domain.ActivityKind) (domain.ActivityKind, error) {
	raw := c.Query("kind")
	if raw == "" {
		return fallback, nil
	}
	kind := domain.ActivityKind(raw)
	if !kind.Valid() {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidKind, raw)
	}
	return kind, nil
}
