package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"path"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/Gi2009/cod-back/internal/logger"
	"github.com/Gi2009/cod-back/internal/model"
)

// MsgAllFieldsRequired is returned when an activity field is missing.
const MsgAllFieldsRequired = "Please provide all fields"

// Paging bounds the global feed window.
type Paging struct {
	DefaultPage  int
	DefaultLimit int
	// MaxLimit of zero leaves the limit uncapped.
	MaxLimit int
}

type Activity struct {
	activityStore model.ActivityStore
	mediaHost     model.MediaHost
	validate      *validator.Validate
	paging        Paging
	logger        *logger.Logger
}

func NewActivity(
	activityStore model.ActivityStore,
	mediaHost model.MediaHost,
	paging Paging,
	logger *logger.Logger,
) *Activity {
	if paging.DefaultPage < 1 {
		paging.DefaultPage = 1
	}
	if paging.DefaultLimit < 1 {
		paging.DefaultLimit = 2
	}
	return &Activity{
		activityStore: activityStore,
		mediaHost:     mediaHost,
		validate:      validator.New(validator.WithRequiredStructEnabled()),
		paging:        paging,
		logger:        logger,
	}
}

// Create checks that every field is present before the image is uploaded,
// then stores the activity with the hosted image URL.
func (s *Activity) Create(ctx context.Context, params model.CreateActivityParams) (model.Activity, error) {
	if err := s.validate.Struct(params); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return model.Activity{}, model.NewValidationError(MsgAllFieldsRequired)
		}
		return model.Activity{}, fmt.Errorf("failed to validate activity: %w", err)
	}

	imageURL, err := s.mediaHost.Upload(ctx, params.Image)
	if err != nil {
		s.logger.Error("Activity service: failed to upload image",
			"user_id", params.UserID,
			"error", err.Error())
		return model.Activity{}, fmt.Errorf("failed to upload image: %w", err)
	}

	activity, err := s.activityStore.Create(ctx, model.Activity{
		ID:          uuid.New(),
		Title:       params.Title,
		Description: params.Description,
		Duration:    params.Duration,
		Image:       imageURL,
		Local:       params.Local,
		Dif:         params.Dif,
		Maxi:        params.Maxi,
		Incluid:     params.Incluid,
		Required:    params.Required,
		UserID:      params.UserID,
	})
	if err != nil {
		s.logger.Error("Activity service: failed to save activity",
			"user_id", params.UserID,
			"error", err.Error())
		return model.Activity{}, fmt.Errorf("failed to save activity: %w", err)
	}

	s.logger.Info("Activity service: activity created",
		"activity_id", activity.ID,
		"user_id", activity.UserID)

	return activity, nil
}

// List returns one page of the global feed, newest first.
func (s *Activity) List(ctx context.Context, page model.Page) (model.ActivityPage, error) {
	page = s.normalize(page)

	total, err := s.activityStore.Count(ctx)
	if err != nil {
		return model.ActivityPage{}, fmt.Errorf("failed to count activities: %w", err)
	}

	result := model.ActivityPage{
		Activities:      []model.Activity{},
		CurrentPage:     page.Page,
		TotalActivities: total,
		TotalPages:      totalPages(total, page.Limit),
	}

	// An offset past math.MaxInt is past any feed the store can hold.
	if page.Page-1 > math.MaxInt/page.Limit {
		return result, nil
	}

	activities, err := s.activityStore.List(ctx, page.Limit, (page.Page-1)*page.Limit)
	if err != nil {
		return model.ActivityPage{}, fmt.Errorf("failed to list activities: %w", err)
	}
	result.Activities = activities

	return result, nil
}

func totalPages(total, limit int) int {
	pages := total / limit
	if total%limit != 0 {
		pages++
	}
	return pages
}

func (s *Activity) normalize(page model.Page) model.Page {
	if page.Page < 1 {
		page.Page = s.paging.DefaultPage
	}
	if page.Limit < 1 {
		page.Limit = s.paging.DefaultLimit
	}
	if s.paging.MaxLimit > 0 && page.Limit > s.paging.MaxLimit {
		page.Limit = s.paging.MaxLimit
	}
	return page
}

// ListMine returns all activities of userID, newest first.
func (s *Activity) ListMine(ctx context.Context, userID uuid.UUID) ([]model.Activity, error) {
	activities, err := s.activityStore.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get activities by user id: %w", err)
	}
	return activities, nil
}

// Delete removes an activity owned by userID. The hosted image is removed on
// a best-effort basis; failing to do so does not keep the record.
func (s *Activity) Delete(ctx context.Context, userID, activityID uuid.UUID) error {
	activity, err := s.activityStore.GetByID(ctx, activityID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.ErrNotFound
		}
		return fmt.Errorf("failed to get activity: %w", err)
	}

	if activity.UserID != userID {
		s.logger.Info("Activity service: delete rejected, caller is not the owner",
			"activity_id", activityID,
			"user_id", userID)
		return model.ErrForbidden
	}

	if activity.Image != "" && s.mediaHost.Owns(activity.Image) {
		if err := s.mediaHost.Destroy(ctx, PublicID(activity.Image)); err != nil {
			s.logger.Error("Activity service: failed to delete image from media host",
				"activity_id", activityID,
				"image", activity.Image,
				"error", err.Error())
		}
	}

	if err := s.activityStore.Delete(ctx, activityID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.ErrNotFound
		}
		return fmt.Errorf("failed to delete activity: %w", err)
	}

	s.logger.Info("Activity service: activity deleted",
		"activity_id", activityID,
		"user_id", userID)

	return nil
}

// PublicID is the last path segment of imageURL without its final extension,
// so "a.b.png" yields "a.b".
func PublicID(imageURL string) string {
	base := path.Base(imageURL)
	return strings.TrimSuffix(base, path.Ext(base))
}
