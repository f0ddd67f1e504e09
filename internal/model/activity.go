package model

import "time"

// ActivityLog is an append-only audit entry for a user action.
type ActivityLog struct {
	ID         int64
	LoggedAt   time.Time
	UserID     int64
	ActionType string
	Details    string
}

// ActivityLogRow joins an entry with the acting user's name.
type ActivityLogRow struct {
	ID         int64
	LoggedAt   time.Time
	ActionType string
	Details    string
	Username   *string
}
