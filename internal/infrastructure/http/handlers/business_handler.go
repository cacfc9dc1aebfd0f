package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	appbusiness "github.com/lehi10/tuagenda-sub000/internal/application/business"
	"github.com/lehi10/tuagenda-sub000/internal/domain"
	"github.com/lehi10/tuagenda-sub000/internal/infrastructure/http/middleware"
)

// BusinessHandler handles /businesses/*.
type BusinessHandler struct {
	create *appbusiness.CreateBusiness
	get    *appbusiness.GetBusiness
	update *appbusiness.UpdateBusiness
	delete *appbusiness.DeleteBusiness
	list   *appbusiness.ListBusinesses
	log    zerolog.Logger
}

// NewBusinessHandler creates a handler for business endpoints.
func NewBusinessHandler(
	create *appbusiness.CreateBusiness,
	get *appbusiness.GetBusiness,
	update *appbusiness.UpdateBusiness,
	del *appbusiness.DeleteBusiness,
	list *appbusiness.ListBusinesses,
	log zerolog.Logger,
) *BusinessHandler {
	return &BusinessHandler{create: create, get: get, update: update, delete: del, list: list, log: log}
}

// BusinessResponse is the JSON shape for a business.
type BusinessResponse struct {
	ID          int64    `json:"id"`
	Slug        string   `json:"slug"`
	Title       string   `json:"title"`
	Email       string   `json:"email"`
	Phone       string   `json:"phone"`
	Website     string   `json:"website,omitempty"`
	Address     string   `json:"address"`
	City        string   `json:"city"`
	Country     string   `json:"country"`
	State       string   `json:"state,omitempty"`
	PostalCode  string   `json:"postal_code,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	Domain      string   `json:"domain,omitempty"`
	Logo        string   `json:"logo,omitempty"`
	CoverImage  string   `json:"cover_image,omitempty"`
	Description string   `json:"description,omitempty"`
	TimeZone    string   `json:"time_zone"`
	Locale      string   `json:"locale"`
	Currency    string   `json:"currency"`
	Status      string   `json:"status"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
}

func toBusinessResponse(b *domain.Business) BusinessResponse {
	s := b.Snapshot()
	return BusinessResponse{
		ID:          s.ID,
		Slug:        s.Slug,
		Title:       s.Title,
		Email:       s.Email,
		Phone:       s.Phone,
		Website:     s.Website,
		Address:     s.Address,
		City:        s.City,
		Country:     s.Country,
		State:       s.State,
		PostalCode:  s.PostalCode,
		Latitude:    s.Latitude,
		Longitude:   s.Longitude,
		Domain:      s.Domain,
		Logo:        s.Logo,
		CoverImage:  s.CoverImage,
		Description: s.Description,
		TimeZone:    s.TimeZone,
		Locale:      s.Locale,
		Currency:    s.Currency,
		Status:      string(s.Status),
		CreatedAt:   s.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   s.UpdatedAt.Format(time.RFC3339),
	}
}

// Create registers a new business.
func (h *BusinessHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Slug        string   `json:"slug"`
		Title       string   `json:"title"`
		Email       string   `json:"email"`
		Phone       string   `json:"phone"`
		Website     string   `json:"website"`
		Address     string   `json:"address"`
		City        string   `json:"city"`
		Country     string   `json:"country"`
		State       string   `json:"state"`
		PostalCode  string   `json:"postal_code"`
		Latitude    *float64 `json:"latitude"`
		Longitude   *float64 `json:"longitude"`
		Domain      string   `json:"domain"`
		Logo        string   `json:"logo"`
		CoverImage  string   `json:"cover_image"`
		Description string   `json:"description"`
		TimeZone    string   `json:"time_zone"`
		Locale      string   `json:"locale"`
		Currency    string   `json:"currency"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid body")
		return
	}
	result, err := h.create.Execute(r.Context(), appbusiness.CreateBusinessInput{
		Slug:        body.Slug,
		Title:       body.Title,
		Email:       body.Email,
		Phone:       body.Phone,
		Website:     body.Website,
		Address:     body.Address,
		City:        body.City,
		Country:     body.Country,
		State:       body.State,
		PostalCode:  body.PostalCode,
		Latitude:    body.Latitude,
		Longitude:   body.Longitude,
		Domain:      body.Domain,
		Logo:        body.Logo,
		CoverImage:  body.CoverImage,
		Description: body.Description,
		TimeZone:    body.TimeZone,
		Locale:      body.Locale,
		Currency:    body.Currency,
	})
	if err != nil {
		AuditLog(h.log, r, "business.create", "business", body.Slug, false, err.Error())
		writeDomainErr(w, err)
		return
	}
	AuditLog(h.log, r, "business.create", "business", strconv.FormatInt(result.Business.ID(), 10), true, "")
	middleware.RecordLifecycleEvent("business.created", "business")
	writeJSON(w, http.StatusCreated, toBusinessResponse(result.Business))
}

// Get returns one business by id.
func (h *BusinessHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := businessID(w, r)
	if !ok {
		return
	}
	result, err := h.get.Execute(r.Context(), appbusiness.GetBusinessInput{ID: id})
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBusinessResponse(result.Business))
}

// GetBySlug returns one business by its slug.
func (h *BusinessHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	result, err := h.get.ExecuteBySlug(r.Context(), appbusiness.GetBusinessBySlugInput{Slug: slug})
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBusinessResponse(result.Business))
}

// Update applies a partial update. Absent fields stay untouched.
func (h *BusinessHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := businessID(w, r)
	if !ok {
		return
	}
	var body struct {
		Slug        *string  `json:"slug"`
		Title       *string  `json:"title"`
		Email       *string  `json:"email"`
		Phone       *string  `json:"phone"`
		Website     *string  `json:"website"`
		Address     *string  `json:"address"`
		City        *string  `json:"city"`
		Country     *string  `json:"country"`
		State       *string  `json:"state"`
		PostalCode  *string  `json:"postal_code"`
		Description *string  `json:"description"`
		TimeZone    *string  `json:"time_zone"`
		Locale      *string  `json:"locale"`
		Currency    *string  `json:"currency"`
		Logo        *string  `json:"logo"`
		CoverImage  *string  `json:"cover_image"`
		Domain      *string  `json:"domain"`
		Latitude    *float64 `json:"latitude"`
		Longitude   *float64 `json:"longitude"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid body")
		return
	}
	result, err := h.update.Execute(r.Context(), appbusiness.UpdateBusinessInput{
		ID:          id,
		Slug:        body.Slug,
		Title:       body.Title,
		Email:       body.Email,
		Phone:       body.Phone,
		Website:     body.Website,
		Address:     body.Address,
		City:        body.City,
		Country:     body.Country,
		State:       body.State,
		PostalCode:  body.PostalCode,
		Description: body.Description,
		TimeZone:    body.TimeZone,
		Locale:      body.Locale,
		Currency:    body.Currency,
		Logo:        body.Logo,
		CoverImage:  body.CoverImage,
		Domain:      body.Domain,
		Latitude:    body.Latitude,
		Longitude:   body.Longitude,
	})
	if err != nil {
		AuditLog(h.log, r, "business.update", "business", strconv.FormatInt(id, 10), false, err.Error())
		writeDomainErr(w, err)
		return
	}
	AuditLog(h.log, r, "business.update", "business", strconv.FormatInt(id, 10), true, "")
	middleware.RecordLifecycleEvent("business.updated", "business")
	writeJSON(w, http.StatusOK, toBusinessResponse(result.Business))
}

// Delete removes a business.
func (h *BusinessHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := businessID(w, r)
	if !ok {
		return
	}
	if _, err := h.delete.Execute(r.Context(), appbusiness.DeleteBusinessInput{ID: id}); err != nil {
		AuditLog(h.log, r, "business.delete", "business", strconv.FormatInt(id, 10), false, err.Error())
		writeDomainErr(w, err)
		return
	}
	AuditLog(h.log, r, "business.delete", "business", strconv.FormatInt(id, 10), true, "")
	middleware.RecordLifecycleEvent("business.deleted", "business")
	w.WriteHeader(http.StatusNoContent)
}

// List returns a page of businesses plus the filter-wide total.
func (h *BusinessHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	input := appbusiness.ListBusinessesInput{
		Statuses: q["status"],
		Search:   q.Get("search"),
	}
	for _, raw := range q["id"] {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid id")
			return
		}
		input.IDs = append(input.IDs, id)
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
	items := make([]BusinessResponse, 0, len(result.Businesses))
	for _, b := range result.Businesses {
		items = append(items, toBusinessResponse(b))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"businesses": items,
		"total":      result.Total,
	})
}

func businessID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid business id")
		return 0, false
	}
	return id, true
}

func timeParam(w http.ResponseWriter, raw, name string) (*time.Time, bool) {
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid "+name)
		return nil, false
	}
	return &t, true
}
