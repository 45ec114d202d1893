package usecase

import (
	"context"
	"fmt"
	"math"

	"cloud.google.com/go/civil"

	"github.com/fardannozami/accountability-tracker/internal/calendar"
	"github.com/fardannozami/accountability-tracker/internal/domain"
)

const businessDaysPerWeek = 5

// ComputeWeekReport lays the records onto the five business days starting at
// start. Days without a record count as zero target and zero actual.
func ComputeWeekReport(records []domain.ActivityRecord, start, end civil.Date) (*domain.WeekReport, error) {
	byDate := make(map[civil.Date]domain.ActivityRecord, len(records))
	for _, r := range records {
		if _, dup := byDate[r.Date]; dup {
			return nil, fmt.Errorf("%w: %s %s", domain.ErrDuplicateRecord, r.UserID, r.Date)
		}
		byDate[r.Date] = r
	}

	report := &domain.WeekReport{
		StartDate: start,
		EndDate:   end,
		Days:      make([]domain.DayStat, 0, businessDaysPerWeek),
	}
	for i := 0; i < businessDaysPerWeek; i++ {
		d := start.AddDays(i)
		day := domain.DayStat{Date: d, DayName: calendar.DayName(d)}
		if r, ok := byDate[d]; ok {
			day.TargetValue = r.Target()
			day.ActualValue = r.Actual()
			day.Notes = r.Notes
		}
		day.CompletionRate = completionRate(day.ActualValue, day.TargetValue)

		report.Totals.TotalTarget += day.TargetValue
		report.Totals.TotalActual += day.ActualValue
		report.Days = append(report.Days, day)
	}
	report.Totals.CompletionRate = completionRate(report.Totals.TotalActual, report.Totals.TotalTarget)

	return report, nil
}

// completionRate is actual/target as a whole percentage, 0 when there is no target.
func completionRate(actual, target int) int {
	if target <= 0 {
		return 0
	}
	return int(math.Round(float64(actual) / float64(target) * 100))
}

type WeekResult struct {
	Report  *domain.WeekReport
	Records []domain.ActivityRecord
}

type GetWeekReportUsecase struct {
	repo  domain.ActivityRepository
	clock calendar.Clock
}

func NewGetWeekReportUsecase(repo domain.ActivityRepository, clock calendar.Clock) *GetWeekReportUsecase {
	return &GetWeekReportUsecase{repo: repo, clock: clock}
}

// Execute builds the report for [start, end]. A nil start selects the current
// business week and a nil end selects the Friday after start.
func (uc *GetWeekReportUsecase) Execute(ctx context.Context, userID string, kind domain.ActivityKind, start, end *civil.Date) (*WeekResult, error) {
	if userID == "" {
		return nil, domain.ErrMissingUserID
	}
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidKind, kind)
	}

	var rng domain.DateRange
	if start != nil {
		rng.From = *start
	} else {
		rng.From = calendar.MondayOfWeekContaining(uc.clock.Today())
	}
	if end != nil {
		rng.To = *end
	} else {
		rng.To = rng.From.AddDays(businessDaysPerWeek - 1)
	}
	if rng.To.Before(rng.From) {
		return nil, fmt.Errorf("%w: %s < %s", domain.ErrInvalidRange, rng.To, rng.From)
	}

	records, err := uc.repo.FetchActivity(ctx, userID, kind, &rng)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch %s for %s: %v", domain.ErrStoreUnavailable, kind, userID, err)
	}

	report, err := ComputeWeekReport(records, rng.From, rng.To)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []domain.ActivityRecord{}
	}

	return &WeekResult{Report: report, Records: records}, nil
}
