package domain

import "cloud.google.com/go/civil"

type DayStat struct {
	Date           civil.Date `json:"date"`
	DayName        string     `json:"day"`
	TargetValue    int        `json:"target_value"`
	ActualValue    int        `json:"actual_value"`
	Notes          string     `json:"notes"`
	CompletionRate int        `json:"completion_rate"`
}

type WeekTotals struct {
	TotalTarget    int `json:"total_target"`
	TotalActual    int `json:"total_actual"`
	CompletionRate int `json:"completion_rate"`
}

// WeekReport is the Monday to Friday breakdown of one user's activity.
type WeekReport struct {
	StartDate civil.Date `json:"start_date"`
	EndDate   civil.Date `json:"end_date"`
	Days      []DayStat  `json:"days"`
	Totals    WeekTotals `json:"totals"`
}

type RecordSummary struct {
	Date      civil.Date `json:"date"`
	Status    string     `json:"status,omitempty"`
	Qualifies bool       `json:"qualifies"`
	Text      string     `json:"text,omitempty"`
}

type StreakResult struct {
	UserID string          `json:"user_id"`
	Kind   ActivityKind    `json:"kind"`
	Streak int             `json:"streak"`
	Recent []RecordSummary `json:"recent"`
}

type LeaderboardEntry struct {
	Member
	Streak int `json:"streak"`
}

// Leaderboard splits the team by whether the current streak is still alive.
type Leaderboard struct {
	Kind    ActivityKind       `json:"kind"`
	Date    civil.Date         `json:"date"`
	Keeping []LeaderboardEntry `json:"keeping"`
	Broken  []LeaderboardEntry `json:"broken"`
}
