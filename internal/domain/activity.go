package domain

import (
	"context"

	"cloud.google.com/go/civil"
)

type ActivityKind string

const (
	KindCommitment ActivityKind = "commitment"
	KindPhoneCall  ActivityKind = "phone_call"
)

func (k ActivityKind) Valid() bool {
	return k == KindCommitment || k == KindPhoneCall
}

const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusMissed    = "missed"
)

// ActivityRecord is one user's activity on one calendar date. Commitments use
// Status and Text, phone calls use the call counts and Notes.
type ActivityRecord struct {
	UserID      string       `json:"user_id"`
	Kind        ActivityKind `json:"kind"`
	Date        civil.Date   `json:"date"`
	Status      string       `json:"status,omitempty"`
	Text        string       `json:"text,omitempty"`
	TargetCalls int          `json:"target_calls"`
	ActualCalls int          `json:"actual_calls"`
	Notes       string       `json:"notes,omitempty"`
}

// Qualifies reports whether the record counts toward a streak.
func (r ActivityRecord) Qualifies() bool {
	switch r.Kind {
	case KindCommitment:
		return r.Status == StatusCompleted
	case KindPhoneCall:
		return r.ActualCalls > 0 && r.ActualCalls >= r.TargetCalls
	}
	return false
}

// Target is the record's planned value on the weekly aggregation axis.
func (r ActivityRecord) Target() int {
	if r.Kind == KindCommitment {
		return 1
	}
	return r.TargetCalls
}

// Actual is the record's achieved value on the weekly aggregation axis.
func (r ActivityRecord) Actual() int {
	if r.Kind == KindCommitment {
		if r.Status == StatusCompleted {
			return 1
		}
		return 0
	}
	return r.ActualCalls
}

// DateRange is an inclusive range of calendar dates.
type DateRange struct {
	From civil.Date
	To   civil.Date
}

type Member struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
}

type ActivityRepository interface {
	// FetchActivity returns the user's records of the given kind, newest first.
	// A nil range returns every record.
	FetchActivity(ctx context.Context, userID string, kind ActivityKind, rng *DateRange) ([]ActivityRecord, error)
	UpsertActivity(ctx context.Context, record *ActivityRecord) error
}

type MemberRepository interface {
	UpsertMember(ctx context.Context, member *Member) error
	GetAllMembers(ctx context.Context) ([]*Member, error)
}
