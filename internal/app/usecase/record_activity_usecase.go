package usecase

import (
	"context"
	"fmt"

	"github.com/fardannozami/accountability-tracker/internal/domain"
)

type RecordActivityUsecase struct {
	repo domain.ActivityRepository
}

func NewRecordActivityUsecase(repo domain.ActivityRepository) *RecordActivityUsecase {
	return &RecordActivityUsecase{repo: repo}
}

// Execute creates or replaces the record for the record's user, kind and date.
func (uc *RecordActivityUsecase) Execute(ctx context.Context, record *domain.ActivityRecord) error {
	if err := validateRecord(record); err != nil {
		return err
	}

	if err := uc.repo.UpsertActivity(ctx, record); err != nil {
		return fmt.Errorf("%w: upsert %s for %s: %v", domain.ErrStoreUnavailable, record.Kind, record.UserID, err)
	}
	return nil
}

func validateRecord(r *domain.ActivityRecord) error {
	if r.UserID == "" {
		return domain.ErrMissingUserID
	}
	if !r.Kind.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidKind, r.Kind)
	}
	if !r.Date.IsValid() {
		return fmt.Errorf("%w: %s", domain.ErrInvalidDate, r.Date)
	}

	switch r.Kind {
	case domain.KindCommitment:
		if r.Status == "" {
			r.Status = domain.StatusPending
		}
		switch r.Status {
		case domain.StatusPending, domain.StatusCompleted, domain.StatusMissed:
		default:
			return fmt.Errorf("%w: unknown status %q", domain.ErrInvalidRecord, r.Status)
		}
	case domain.KindPhoneCall:
		if r.TargetCalls < 0 || r.ActualCalls < 0 {
			return fmt.Errorf("%w: negative call count", domain.ErrInvalidRecord)
		}
	}
	return nil
}

type ListActivityUsecase struct {
	repo domain.ActivityRepository
}

func NewListActivityUsecase(repo domain.ActivityRepository) *ListActivityUsecase {
	return &ListActivityUsecase{repo: repo}
}

func (uc *ListActivityUsecase) Execute(ctx context.Context, userID string, kind domain.ActivityKind, rng *domain.DateRange) ([]domain.ActivityRecord, error) {
	if userID == "" {
		return nil, domain.ErrMissingUserID
	}
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidKind, kind)
	}
	if rng != nil && rng.To.Before(rng.From) {
		return nil, fmt.Errorf("%w: %s < %s", domain.ErrInvalidRange, rng.To, rng.From)
	}

	records, err := uc.repo.FetchActivity(ctx, userID, kind, rng)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch %s for %s: %v", domain.ErrStoreUnavailable, kind, userID, err)
	}
	if records == nil {
		records = []domain.ActivityRecord{}
	}
	return records, nil
}
