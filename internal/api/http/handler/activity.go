package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Gi2009/cod-back/internal/logger"
	"github.com/Gi2009/cod-back/internal/model"
	"github.com/Gi2009/cod-back/internal/service"
)

// ActivityService defines activity operations.
type ActivityService interface {
	Create(ctx context.Context, params model.CreateActivityParams) (model.Activity, error)
	List(ctx context.Context, page model.Page) (model.ActivityPage, error)
	ListMine(ctx context.Context, userID uuid.UUID) ([]model.Activity, error)
	Delete(ctx context.Context, userID, activityID uuid.UUID) error
}

// Activity handles HTTP endpoints for activities. All of them expect the
// caller id in the request context.
type Activity struct {
	activityService ActivityService
	contextManager  model.ContextManager
	responder
}

// NewActivity creates a new Activity handler.
func NewActivity(activityService ActivityService, contextManager model.ContextManager, logger *logger.Logger) *Activity {
	return &Activity{
		activityService: activityService,
		contextManager:  contextManager,
		responder:       newResponder(logger),
	}
}

func (h *Activity) callerID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := h.contextManager.GetUserIDFromContext(r.Context())
	if !ok {
		h.Message(w, http.StatusUnauthorized, MsgUnauthorized)
	}
	return userID, ok
}

// Create stores a new activity owned by the caller.
func (h *Activity) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.callerID(w, r)
	if !ok {
		return
	}

	var req createActivityRequest
	if !h.decodeBody(w, r, &req, service.MsgAllFieldsRequired) {
		return
	}

	activity, err := h.activityService.Create(r.Context(), req.toParams(userID))
	if err != nil {
		// upload and persistence failures surface their own message
		h.handleError(w, "Activity handler: create", err, err.Error())
		return
	}

	h.JSON(w, http.StatusCreated, toActivityResponse(activity))
}

// List serves one page of the global feed. Bad page or limit values fall
// back to the defaults.
func (h *Activity) List(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.callerID(w, r); !ok {
		return
	}

	page := model.Page{
		Page:  queryInt(r, "page"),
		Limit: queryInt(r, "limit"),
	}

	result, err := h.activityService.List(r.Context(), page)
	if err != nil {
		h.handleError(w, "Activity handler: list", err, MsgInternal)
		return
	}

	h.JSON(w, http.StatusOK, activityPageResponse{
		Activities:      toActivityResponses(result.Activities),
		CurrentPage:     result.CurrentPage,
		TotalActivities: result.TotalActivities,
		TotalPages:      result.TotalPages,
	})
}

// ListMine serves all of the caller's activities.
func (h *Activity) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.callerID(w, r)
	if !ok {
		return
	}

	activities, err := h.activityService.ListMine(r.Context(), userID)
	if err != nil {
		h.handleError(w, "Activity handler: list mine", err, MsgServer)
		return
	}

	h.JSON(w, http.StatusOK, toActivityResponses(activities))
}

// Delete removes one of the caller's activities.
func (h *Activity) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.callerID(w, r)
	if !ok {
		return
	}

	activityID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.Message(w, http.StatusNotFound, MsgActivityNotFound)
		return
	}

	if err := h.activityService.Delete(r.Context(), userID, activityID); err != nil {
		h.handleError(w, "Activity handler: delete", err, MsgInternal)
		return
	}

	h.Message(w, http.StatusOK, MsgActivityDeleted)
}

func queryInt(r *http.Request, key string) int {
	n, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return 0
	}
	return n
}
