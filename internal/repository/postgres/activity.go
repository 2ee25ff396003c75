package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Gi2009/cod-back/internal/model"
)

var _ model.ActivityStore = (*ActivityRepository)(nil)

type ActivityRepository struct {
	db DBTX
}

func NewActivityRepository(db DBTX) *ActivityRepository {
	return &ActivityRepository{
		db: db,
	}
}

const activityColumns = `a.id, a.title, a.description, a.duration, a.image, a.local, a.dif, a.maxi,
		       a.incluid, a.required, a.user_id, a.created_at, a.updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func activityDest(a *model.Activity) []any {
	return []any{
		&a.ID, &a.Title, &a.Description, &a.Duration, &a.Image, &a.Local, &a.Dif, &a.Maxi,
		&a.Incluid, &a.Required, &a.UserID, &a.CreatedAt, &a.UpdatedAt,
	}
}

func scanActivity(row scanner) (model.Activity, error) {
	var activity model.Activity
	err := row.Scan(activityDest(&activity)...)
	return activity, err
}

// Create inserts the activity. A missing ID is generated; timestamps are set by the database.
func (r *ActivityRepository) Create(ctx context.Context, activity model.Activity) (model.Activity, error) {
	if activity.ID == uuid.Nil {
		activity.ID = uuid.New()
	}

	query := `
		INSERT INTO activities AS a (id, title, description, duration, image, local, dif, maxi, incluid, required, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + activityColumns

	saved, err := scanActivity(r.db.QueryRowContext(ctx, query,
		activity.ID, activity.Title, activity.Description, activity.Duration, activity.Image,
		activity.Local, activity.Dif, activity.Maxi, activity.Incluid, activity.Required, activity.UserID,
	))
	if err != nil {
		return model.Activity{}, fmt.Errorf("failed to create activity: %w", err)
	}

	return saved, nil
}

func (r *ActivityRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Activity, error) {
	query := `SELECT ` + activityColumns + ` FROM activities a WHERE a.id = $1`

	activity, err := scanActivity(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Activity{}, model.ErrNotFound
		}
		return model.Activity{}, fmt.Errorf("failed to get activity: %w", err)
	}

	return activity, nil
}

// List returns activities newest first, ties broken by insertion order,
// with each owner's public profile attached.
func (r *ActivityRepository) List(ctx context.Context, limit, offset int) ([]model.Activity, error) {
	query := `
		SELECT ` + activityColumns + `, u.id, u.username, u.profile_image
		FROM activities a
		JOIN users u ON u.id = a.user_id
		ORDER BY a.created_at DESC, a.seq DESC
		LIMIT $1 OFFSET $2`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	defer rows.Close()

	activities := []model.Activity{}
	for rows.Next() {
		var (
			activity model.Activity
			owner    model.ActivityOwner
		)
		dest := append(activityDest(&activity), &owner.ID, &owner.Username, &owner.ProfileImage)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		activity.Owner = &owner
		activities = append(activities, activity)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}

	return activities, nil
}

func (r *ActivityRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM activities`).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count activities: %w", err)
	}
	return total, nil
}

func (r *ActivityRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]model.Activity, error) {
	query := `
		SELECT ` + activityColumns + `
		FROM activities a
		WHERE a.user_id = $1
		ORDER BY a.created_at DESC, a.seq DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user activities: %w", err)
	}
	defer rows.Close()

	activities := []model.Activity{}
	for rows.Next() {
		activity, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		activities = append(activities, activity)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to get user activities: %w", err)
	}

	return activities, nil
}

func (r *ActivityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM activities WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete activity: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete activity: %w", err)
	}
	if affected == 0 {
		return model.ErrNotFound
	}
	return nil
}
