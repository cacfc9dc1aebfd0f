package domain

import (
	"time"

	domerrors "github.com/lehi10/tuagenda-sub000/internal/domain/errors"
)

// BusinessStatus is the lifecycle status of a business.
type BusinessStatus string

const (
	BusinessStatusActive    BusinessStatus = "active"
	BusinessStatusInactive  BusinessStatus = "inactive"
	BusinessStatusSuspended BusinessStatus = "suspended"
)

// Business is a tenant/organization aggregate. State is private and every
// mutation goes through a method that revalidates changed fields and bumps
// UpdatedAt. Instances are single-owner and request-scoped; they are never
// shared across concurrent calls and need no internal locking.
type Business struct {
	id         int64
	slug       string
	title      string
	email      string
	phone      string
	website    string
	address    string
	city       string
	country    string
	state      string
	postalCode string
	latitude   *float64
	longitude  *float64
	domain     string
	logo       string
	coverImage string
	desc       string
	timeZone   string
	locale     string
	currency   string
	status     BusinessStatus
	createdAt  time.Time
	updatedAt  time.Time
}

// NewBusinessParams carries the fields for a fresh, not-yet-persisted
// business. ID and timestamps are assigned by the constructor/repository.
type NewBusinessParams struct {
	Slug       string
	Title      string
	Email      string
	Phone      string
	Website    string
	Address    string
	City       string
	Country    string
	State      string
	PostalCode string
	Latitude   *float64
	Longitude  *float64
	Domain     string
	Logo       string
	CoverImage string
	Description string
	TimeZone   string
	Locale     string
	Currency   string
}

// NewBusiness constructs a business with status active and both timestamps
// set to now. It never returns a silently-invalid entity: any empty
// required field or malformed email fails construction.
func NewBusiness(p NewBusinessParams) (*Business, error) {
	now := time.Now()
	return BusinessFromSnapshot(BusinessSnapshot{
		Slug:        p.Slug,
		Title:       p.Title,
		Email:       p.Email,
		Phone:       p.Phone,
		Website:     p.Website,
		Address:     p.Address,
		City:        p.City,
		Country:     p.Country,
		State:       p.State,
		PostalCode:  p.PostalCode,
		Latitude:    p.Latitude,
		Longitude:   p.Longitude,
		Domain:      p.Domain,
		Logo:        p.Logo,
		CoverImage:  p.CoverImage,
		Description: p.Description,
		TimeZone:    p.TimeZone,
		Locale:      p.Locale,
		Currency:    p.Currency,
		Status:      BusinessStatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
}

// BusinessSnapshot is the flat, exported view of a business used for
// persistence and transport. Snapshot/BusinessFromSnapshot round-trip
// without loss.
type BusinessSnapshot struct {
	ID          int64
	Slug        string
	Title       string
	Email       string
	Phone       string
	Website     string
	Address     string
	City        string
	Country     string
	State       string
	PostalCode  string
	Latitude    *float64
	Longitude   *float64
	Domain      string
	Logo        string
	CoverImage  string
	Description string
	TimeZone    string
	Locale      string
	Currency    string
	Status      BusinessStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// BusinessFromSnapshot rehydrates a business, enforcing the same invariants
// as NewBusiness. An empty status defaults to active.
func BusinessFromSnapshot(s BusinessSnapshot) (*Business, error) {
	if err := validateSlug(s.Slug); err != nil {
		return nil, err
	}
	for _, f := range []struct{ name, value string }{
		{"title", s.Title},
		{"phone", s.Phone},
		{"address", s.Address},
		{"city", s.City},
		{"country", s.Country},
		{"timeZone", s.TimeZone},
		{"locale", s.Locale},
		{"currency", s.Currency},
	} {
		if err := requireField(f.name, f.value); err != nil {
			return nil, err
		}
	}
	if err := validateEmail(s.Email); err != nil {
		return nil, err
	}
	status := s.Status
	if status == "" {
		status = BusinessStatusActive
	}
	if status != BusinessStatusActive && status != BusinessStatusInactive && status != BusinessStatusSuspended {
		return nil, domerrors.Invariant("status %q is not a valid business status", status)
	}
	return &Business{
		id:         s.ID,
		slug:       s.Slug,
		title:      s.Title,
		email:      s.Email,
		phone:      s.Phone,
		website:    s.Website,
		address:    s.Address,
		city:       s.City,
		country:    s.Country,
		state:      s.State,
		postalCode: s.PostalCode,
		latitude:   copyFloat(s.Latitude),
		longitude:  copyFloat(s.Longitude),
		domain:     s.Domain,
		logo:       s.Logo,
		coverImage: s.CoverImage,
		desc:       s.Description,
		timeZone:   s.TimeZone,
		locale:     s.Locale,
		currency:   s.Currency,
		status:     status,
		createdAt:  s.CreatedAt,
		updatedAt:  s.UpdatedAt,
	}, nil
}

// Snapshot returns the exported view of the business.
func (b *Business) Snapshot() BusinessSnapshot {
	return BusinessSnapshot{
		ID:          b.id,
		Slug:        b.slug,
		Title:       b.title,
		Email:       b.email,
		Phone:       b.phone,
		Website:     b.website,
		Address:     b.address,
		City:        b.city,
		Country:     b.country,
		State:       b.state,
		PostalCode:  b.postalCode,
		Latitude:    copyFloat(b.latitude),
		Longitude:   copyFloat(b.longitude),
		Domain:      b.domain,
		Logo:        b.logo,
		CoverImage:  b.coverImage,
		Description: b.desc,
		TimeZone:    b.timeZone,
		Locale:      b.locale,
		Currency:    b.currency,
		Status:      b.status,
		CreatedAt:   b.createdAt,
		UpdatedAt:   b.updatedAt,
	}
}

// ID returns the persisted id, or 0 if the business has not been saved yet.
func (b *Business) ID() int64 { return b.id }

// SetID assigns the id after the first persist. It does not bump UpdatedAt.
func (b *Business) SetID(id int64) { b.id = id }

// Slug returns the unique URL-safe tenant key.
func (b *Business) Slug() string { return b.slug }

// Title returns the display title.
func (b *Business) Title() string { return b.title }

// Email returns the contact email.
func (b *Business) Email() string { return b.email }

// Status returns the lifecycle status.
func (b *Business) Status() BusinessStatus { return b.status }

// CreatedAt returns the immutable creation time.
func (b *Business) CreatedAt() time.Time { return b.createdAt }

// UpdatedAt returns the time of the last mutation.
func (b *Business) UpdatedAt() time.Time { return b.updatedAt }

// Activate sets the status to active. Transitions are unconditional:
// any status is reachable from any other and re-activating an active
// business is not an error.
func (b *Business) Activate() {
	b.status = BusinessStatusActive
	b.touch()
}

// Deactivate sets the status to inactive.
func (b *Business) Deactivate() {
	b.status = BusinessStatusInactive
	b.touch()
}

// Suspend sets the status to suspended.
func (b *Business) Suspend() {
	b.status = BusinessStatusSuspended
	b.touch()
}

// BusinessInfoUpdate is a partial update: nil fields are left untouched.
// A present-but-empty value is an error for required fields and clears
// optional ones.
type BusinessInfoUpdate struct {
	Slug        *string
	Title       *string
	Email       *string
	Phone       *string
	Website     *string
	Address     *string
	City        *string
	Country     *string
	State       *string
	PostalCode  *string
	Description *string
	TimeZone    *string
	Locale      *string
	Currency    *string
}

// UpdateInfo applies the present fields of u, revalidating each one.
// Nothing is assigned and UpdatedAt is not bumped unless every present
// field validates.
func (b *Business) UpdateInfo(u BusinessInfoUpdate) error {
	if u.Slug != nil {
		if err := validateSlug(*u.Slug); err != nil {
			return err
		}
	}
	if u.Email != nil {
		if err := validateEmail(*u.Email); err != nil {
			return err
		}
	}
	for _, f := range []struct {
		name  string
		value *string
	}{
		{"title", u.Title},
		{"phone", u.Phone},
		{"address", u.Address},
		{"city", u.City},
		{"country", u.Country},
		{"timeZone", u.TimeZone},
		{"locale", u.Locale},
		{"currency", u.Currency},
	} {
		if f.value != nil {
			if err := requireField(f.name, *f.value); err != nil {
				return err
			}
		}
	}

	assign(&b.slug, u.Slug)
	assign(&b.title, u.Title)
	assign(&b.email, u.Email)
	assign(&b.phone, u.Phone)
	assign(&b.website, u.Website)
	assign(&b.address, u.Address)
	assign(&b.city, u.City)
	assign(&b.country, u.Country)
	assign(&b.state, u.State)
	assign(&b.postalCode, u.PostalCode)
	assign(&b.desc, u.Description)
	assign(&b.timeZone, u.TimeZone)
	assign(&b.locale, u.Locale)
	assign(&b.currency, u.Currency)
	b.touch()
	return nil
}

// BusinessBrandingUpdate is a partial update for presentation fields.
type BusinessBrandingUpdate struct {
	Logo       *string
	CoverImage *string
	Domain     *string
}

// UpdateBranding applies the present branding fields. All three are
// optional, so empty values simply clear them.
func (b *Business) UpdateBranding(u BusinessBrandingUpdate) {
	assign(&b.logo, u.Logo)
	assign(&b.coverImage, u.CoverImage)
	assign(&b.domain, u.Domain)
	b.touch()
}

// UpdateLocation always overwrites both coordinates together.
func (b *Business) UpdateLocation(latitude, longitude float64) error {
	if latitude < -90 || latitude > 90 {
		return domerrors.Invariant("latitude must be between -90 and 90")
	}
	if longitude < -180 || longitude > 180 {
		return domerrors.Invariant("longitude must be between -180 and 180")
	}
	lat, lng := latitude, longitude
	b.latitude = &lat
	b.longitude = &lng
	b.touch()
	return nil
}

// IsActive reports whether the business is active.
func (b *Business) IsActive() bool { return b.status == BusinessStatusActive }

// IsInactive reports whether the business is inactive.
func (b *Business) IsInactive() bool { return b.status == BusinessStatusInactive }

// IsSuspended reports whether the business is suspended.
func (b *Business) IsSuspended() bool { return b.status == BusinessStatusSuspended }

// HasLocation reports whether both coordinates are set.
func (b *Business) HasLocation() bool { return b.latitude != nil && b.longitude != nil }

func (b *Business) touch() { b.updatedAt = time.Now() }

func assign(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
