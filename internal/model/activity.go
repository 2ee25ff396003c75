package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ActivityStore defines persistence operations for activities.
type ActivityStore interface {
	Create(ctx context.Context, activity Activity) (Activity, error)
	GetByID(ctx context.Context, id uuid.UUID) (Activity, error)
	// List returns a newest-first page of all activities with their owners populated.
	List(ctx context.Context, limit, offset int) ([]Activity, error)
	Count(ctx context.Context) (int, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]Activity, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Activity is a post published by a user.
type Activity struct {
	ID          uuid.UUID
	Title       string
	Description string
	Duration    string
	Image       string
	Local       string
	Dif         string
	Maxi        string
	Incluid     string
	Required    string
	UserID      uuid.UUID
	// Owner is populated only by listings that join the users table.
	Owner     *ActivityOwner
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ActivityOwner is the public part of the user that owns an activity.
type ActivityOwner struct {
	ID           uuid.UUID
	Username     string
	ProfileImage string
}

// CreateActivityParams contains parameters to create an activity.
type CreateActivityParams struct {
	UserID      uuid.UUID
	Title       string `validate:"required"`
	Description string `validate:"required"`
	Duration    string `validate:"required"`
	Image       string `validate:"required"`
	Local       string `validate:"required"`
	Dif         string `validate:"required"`
	Maxi        string `validate:"required"`
	Incluid     string `validate:"required"`
	Required    string `validate:"required"`
}

// Page selects a window of the global feed. Page is 1-based.
type Page struct {
	Page  int
	Limit int
}

// ActivityPage is one page of the global feed.
type ActivityPage struct {
	Activities      []Activity
	CurrentPage     int
	TotalActivities int
	TotalPages      int
}
