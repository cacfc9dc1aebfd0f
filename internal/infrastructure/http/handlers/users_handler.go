package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	appuser "github.com/lehi10/tuagenda-sub000/internal/application/user"
	"github.com/lehi10/tuagenda-sub000/internal/domain"
	"github.com/lehi10/tuagenda-sub000/internal/infrastructure/http/middleware"
)

// UsersHandler handles /users/*.
type UsersHandler struct {
	create *appuser.CreateUser
	get    *appuser.GetUser
	update *appuser.UpdateUser
	list   *appuser.ListUsers
	log    zerolog.Logger
}

// NewUsersHandler creates a handler for user endpoints.
func NewUsersHandler(
	create *appuser.CreateUser,
	get *appuser.GetUser,
	update *appuser.UpdateUser,
	list *appuser.ListUsers,
	log zerolog.Logger,
) *UsersHandler {
	return &UsersHandler{create: create, get: get, update: update, list: list, log: log}
}

// UserResponse is the JSON shape for a user.
type UserResponse struct {
	ID              string `json:"id"`
	Email           string `json:"email"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Phone           string `json:"phone,omitempty"`
	CountryCode     string `json:"country_code,omitempty"`
	Birthday        string `json:"birthday,omitempty"`
	TimeZone        string `json:"time_zone,omitempty"`
	Note            string `json:"note,omitempty"`
	Description     string `json:"description,omitempty"`
	PictureFullPath string `json:"picture_full_path,omitempty"`
	Status          string `json:"status"`
	Role            string `json:"role"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at"`
}

func toUserResponse(u *domain.User) UserResponse {
	s := u.Snapshot()
	resp := UserResponse{
		ID:              s.ID,
		Email:           s.Email,
		FirstName:       s.FirstName,
		LastName:        s.LastName,
		Phone:           s.Phone,
		CountryCode:     s.CountryCode,
		TimeZone:        s.TimeZone,
		Note:            s.Note,
		Description:     s.Description,
		PictureFullPath: s.PictureFullPath,
		Status:          string(s.Status),
		Role:            string(s.Role),
		CreatedAt:       s.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       s.UpdatedAt.Format(time.RFC3339),
	}
	if s.Birthday != nil {
		resp.Birthday = s.Birthday.Format("2006-01-02")
	}
	return resp
}

// Create registers an account, idempotent by id.
func (h *UsersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ID              string     `json:"id"`
		Email           string     `json:"email"`
		FirstName       string     `json:"first_name"`
		LastName        string     `json:"last_name"`
		Phone           string     `json:"phone"`
		CountryCode     string     `json:"country_code"`
		Birthday        *time.Time `json:"birthday"`
		TimeZone        string     `json:"time_zone"`
		Note            string     `json:"note"`
		Description     string     `json:"description"`
		PictureFullPath string     `json:"picture_full_path"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid body")
		return
	}
	result, err := h.create.Execute(r.Context(), appuser.CreateUserInput{
		ID:              body.ID,
		Email:           body.Email,
		FirstName:       body.FirstName,
		LastName:        body.LastName,
		Phone:           body.Phone,
		CountryCode:     body.CountryCode,
		Birthday:        body.Birthday,
		TimeZone:        body.TimeZone,
		Note:            body.Note,
		Description:     body.Description,
		PictureFullPath: body.PictureFullPath,
	})
	if err != nil {
		AuditLog(h.log, r, "user.create", "user", body.ID, false, err.Error())
		writeDomainErr(w, err)
		return
	}
	status := http.StatusCreated
	if result.Existing {
		status = http.StatusOK
	}
	AuditLog(h.log, r, "user.create", "user", result.User.ID(), true, "")
	if !result.Existing {
		middleware.RecordLifecycleEvent("user.created", "user")
	}
	writeJSON(w, status, toUserResponse(result.User))
}

// Get returns one user by id.
func (h *UsersHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	result, err := h.get.Execute(r.Context(), appuser.GetUserInput{ID: id})
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(result.User))
}

// GetByEmail returns one user by email.
func (h *UsersHandler) GetByEmail(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	result, err := h.get.ExecuteByEmail(r.Context(), appuser.GetUserByEmailInput{Email: email})
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(result.User))
}

// Update applies a partial update. Status and role changes go through the
// entity transitions, so their guards apply.
func (h *UsersHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var body struct {
		Email           *string    `json:"email"`
		FirstName       *string    `json:"first_name"`
		LastName        *string    `json:"last_name"`
		Phone           *string    `json:"phone"`
		CountryCode     *string    `json:"country_code"`
		Birthday        *time.Time `json:"birthday"`
		TimeZone        *string    `json:"time_zone"`
		Note            *string    `json:"note"`
		Description     *string    `json:"description"`
		PictureFullPath *string    `json:"picture_full_path"`
		Status          *string    `json:"status"`
		Role            *string    `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid body")
		return
	}
	result, err := h.update.Execute(r.Context(), appuser.UpdateUserInput{
		ID:              id,
		Email:           body.Email,
		FirstName:       body.FirstName,
		LastName:        body.LastName,
		Phone:           body.Phone,
		CountryCode:     body.CountryCode,
		Birthday:        body.Birthday,
		TimeZone:        body.TimeZone,
		Note:            body.Note,
		Description:     body.Description,
		PictureFullPath: body.PictureFullPath,
		Status:          body.Status,
		Role:            body.Role,
	})
	if err != nil {
		AuditLog(h.log, r, "user.update", "user", id, false, err.Error())
		writeDomainErr(w, err)
		return
	}
	AuditLog(h.log, r, "user.update", "user", id, true, "")
	middleware.RecordLifecycleEvent("user.updated", "user")
	writeJSON(w, http.StatusOK, toUserResponse(result.User))
}

// List returns a page of users plus the filter-wide total.
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	input := appuser.ListUsersInput{
		IDs:      q["id"],
		Statuses: q["status"],
		Search:   q.Get("search"),
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid limit")
			return
		}
		input.Limit = n
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid offset")
			return
		}
		input.Offset = n
	}
	var ok bool
	if input.CreatedFrom, ok = timeParam(w, q.Get("created_from"), "created_from"); !ok {
		return
	}
	if input.CreatedTo, ok = timeParam(w, q.Get("created_to"), "created_to"); !ok {
		return
	}
	result, err := h.list.Execute(r.Context(), input)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	items := make([]UserResponse, 0, len(result.Users))
	for _, u := range result.Users {
		items = append(items, toUserResponse(u))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"users": items,
		"total": result.Total,
	})
}
