package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/Gi2009/cod-back/internal/model"
)

// flexString accepts a JSON string, number or boolean. Mobile clients send
// numeric fields either way. Zero, false and null decode to "" so they count
// as missing.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || bytes.Equal(b, []byte("null")) || bytes.Equal(b, []byte("false")):
		*f = ""
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
	case bytes.Equal(b, []byte("true")):
		*f = "true"
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return fmt.Errorf("unsupported value %s", b)
		}
		if v, err := strconv.ParseFloat(n.String(), 64); err == nil && v == 0 {
			*f = ""
			return nil
		}
		*f = flexString(n.String())
	}
	return nil
}

type registerRequest struct {
	Email    flexString `json:"email"`
	Username flexString `json:"username"`
	Password flexString `json:"password"`
	Phone    flexString `json:"phone"`
	CPF      flexString `json:"cpf"`
}

type loginRequest struct {
	Email    flexString `json:"email"`
	Password flexString `json:"password"`
}

type userResponse struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	CPF          string    `json:"cpf"`
	Phone        string    `json:"phone"`
	Email        string    `json:"email"`
	ProfileImage string    `json:"profileImage"`
	CreatedAt    time.Time `json:"createdAt"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

func toAuthResponse(s model.Session) authResponse {
	return authResponse{
		Token: s.Token,
		User: userResponse{
			ID:           s.User.ID,
			Username:     s.User.Username,
			CPF:          s.User.CPF,
			Phone:        s.User.Phone,
			Email:        s.User.Email,
			ProfileImage: s.User.ProfileImage,
			CreatedAt:    s.User.CreatedAt,
		},
	}
}

type createActivityRequest struct {
	Title       flexString `json:"title"`
	Description flexString `json:"description"`
	Duration    flexString `json:"duration"`
	Image       flexString `json:"image"`
	Local       flexString `json:"local"`
	Dif         flexString `json:"dif"`
	Maxi        flexString `json:"maxi"`
	Incluid     flexString `json:"incluid"`
	Required    flexString `json:"required"`
}

func (r createActivityRequest) toParams(userID uuid.UUID) model.CreateActivityParams {
	return model.CreateActivityParams{
		UserID:      userID,
		Title:       string(r.Title),
		Description: string(r.Description),
		Duration:    string(r.Duration),
		Image:       string(r.Image),
		Local:       string(r.Local),
		Dif:         string(r.Dif),
		Maxi:        string(r.Maxi),
		Incluid:     string(r.Incluid),
		Required:    string(r.Required),
	}
}

type ownerResponse struct {
	ID           uuid.UUID `json:"_id"`
	Username     string    `json:"username"`
	ProfileImage string    `json:"profileImage"`
}

// activityResponse mirrors the stored document. User is the owner id, or the
// owner's public profile when the listing joined it.
type activityResponse struct {
	ID          uuid.UUID `json:"_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Duration    string    `json:"duration"`
	Image       string    `json:"image"`
	Local       string    `json:"local"`
	Dif         string    `json:"dif"`
	Maxi        string    `json:"maxi"`
	Incluid     string    `json:"incluid"`
	Required    string    `json:"required"`
	User        any       `json:"user"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toActivityResponse(a model.Activity) activityResponse {
	var user any = a.UserID
	if a.Owner != nil {
		user = ownerResponse{
			ID:           a.Owner.ID,
			Username:     a.Owner.Username,
			ProfileImage: a.Owner.ProfileImage,
		}
	}
	return activityResponse{
		ID:          a.ID,
		Title:       a.Title,
		Description: a.Description,
		Duration:    a.Duration,
		Image:       a.Image,
		Local:       a.Local,
		Dif:         a.Dif,
		Maxi:        a.Maxi,
		Incluid:     a.Incluid,
		Required:    a.Required,
		User:        user,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func toActivityResponses(as []model.Activity) []activityResponse {
	out := make([]activityResponse, 0, len(as))
	for _, a := range as {
		out = append(out, toActivityResponse(a))
	}
	return out
}

type activityPageResponse struct {
	Activities      []activityResponse `json:"activities"`
	CurrentPage     int                `json:"currentPage"`
	TotalActivities int                `json:"totalActivities"`
	TotalPages      int                `json:"totalPages"`
}
