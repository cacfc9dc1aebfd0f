package domain

import (
	"strings"
	"time"

	domerrors "github.com/lehi10/tuagenda-sub000/internal/domain/errors"
)

// UserStatus is the lifecycle status of a user.
type UserStatus string

const (
	UserStatusHidden   UserStatus = "hidden"
	UserStatusVisible  UserStatus = "visible"
	UserStatusDisabled UserStatus = "disabled"
	UserStatusBlocked  UserStatus = "blocked"
)

// UserRole is a privilege level, not a status.
type UserRole string

const (
	UserRoleCustomer   UserRole = "customer"
	UserRoleAdmin      UserRole = "admin"
	UserRoleSuperAdmin UserRole = "superadmin"
)

// User is an account aggregate, customer or staff. The id is an opaque
// string supplied by the external identity provider and is never generated
// here. Same ownership model as Business: single-owner, request-scoped.
//
// Block/Unblock and the admin promotion/demotion pair are guarded against
// no-ops: repeating them is treated as a caller logic error. Disable,
// Enable, Hide and PromoteToSuperAdmin stay unconditional.
type User struct {
	id              string
	email           string
	firstName       string
	lastName        string
	phone           string
	countryCode     string
	birthday        *time.Time
	timeZone        string
	note            string
	desc            string
	pictureFullPath string
	status          UserStatus
	role            UserRole
	createdAt       time.Time
	updatedAt       time.Time
}

// NewUserParams carries the fields for a fresh user.
type NewUserParams struct {
	ID              string
	Email           string
	FirstName       string
	LastName        string
	Phone           string
	CountryCode     string
	Birthday        *time.Time
	TimeZone        string
	Note            string
	Description     string
	PictureFullPath string
}

// NewUser constructs a visible customer with both timestamps set to now.
func NewUser(p NewUserParams) (*User, error) {
	now := time.Now()
	return UserFromSnapshot(UserSnapshot{
		ID:              p.ID,
		Email:           p.Email,
		FirstName:       p.FirstName,
		LastName:        p.LastName,
		Phone:           p.Phone,
		CountryCode:     p.CountryCode,
		Birthday:        p.Birthday,
		TimeZone:        p.TimeZone,
		Note:            p.Note,
		Description:     p.Description,
		PictureFullPath: p.PictureFullPath,
		Status:          UserStatusVisible,
		Role:            UserRoleCustomer,
		CreatedAt:       now,
		UpdatedAt:       now,
	})
}

// UserSnapshot is the flat, exported view of a user used for persistence
// and transport.
type UserSnapshot struct {
	ID              string
	Email           string
	FirstName       string
	LastName        string
	Phone           string
	CountryCode     string
	Birthday        *time.Time
	TimeZone        string
	Note            string
	Description     string
	PictureFullPath string
	Status          UserStatus
	Role            UserRole
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// UserFromSnapshot rehydrates a user, enforcing the constructor invariants.
// Empty status defaults to visible, empty role to customer.
func UserFromSnapshot(s UserSnapshot) (*User, error) {
	if err := requireField("id", s.ID); err != nil {
		return nil, err
	}
	if err := validateEmail(s.Email); err != nil {
		return nil, err
	}
	if err := requireField("firstName", s.FirstName); err != nil {
		return nil, err
	}
	if err := requireField("lastName", s.LastName); err != nil {
		return nil, err
	}
	status := s.Status
	if status == "" {
		status = UserStatusVisible
	}
	switch status {
	case UserStatusHidden, UserStatusVisible, UserStatusDisabled, UserStatusBlocked:
	default:
		return nil, domerrors.Invariant("status %q is not a valid user status", status)
	}
	role := s.Role
	if role == "" {
		role = UserRoleCustomer
	}
	switch role {
	case UserRoleCustomer, UserRoleAdmin, UserRoleSuperAdmin:
	default:
		return nil, domerrors.Invariant("role %q is not a valid user role", role)
	}
	var birthday *time.Time
	if s.Birthday != nil {
		b := *s.Birthday
		birthday = &b
	}
	return &User{
		id:              s.ID,
		email:           s.Email,
		firstName:       s.FirstName,
		lastName:        s.LastName,
		phone:           s.Phone,
		countryCode:     s.CountryCode,
		birthday:        birthday,
		timeZone:        s.TimeZone,
		note:            s.Note,
		desc:            s.Description,
		pictureFullPath: s.PictureFullPath,
		status:          status,
		role:            role,
		createdAt:       s.CreatedAt,
		updatedAt:       s.UpdatedAt,
	}, nil
}

// Snapshot returns the exported view of the user.
func (u *User) Snapshot() UserSnapshot {
	var birthday *time.Time
	if u.birthday != nil {
		b := *u.birthday
		birthday = &b
	}
	return UserSnapshot{
		ID:              u.id,
		Email:           u.email,
		FirstName:       u.firstName,
		LastName:        u.lastName,
		Phone:           u.phone,
		CountryCode:     u.countryCode,
		Birthday:        birthday,
		TimeZone:        u.timeZone,
		Note:            u.note,
		Description:     u.desc,
		PictureFullPath: u.pictureFullPath,
		Status:          u.status,
		Role:            u.role,
		CreatedAt:       u.createdAt,
		UpdatedAt:       u.updatedAt,
	}
}

// ID returns the identity-provider-supplied id.
func (u *User) ID() string { return u.id }

// Email returns the unique email.
func (u *User) Email() string { return u.email }

// FullName joins first and last name.
func (u *User) FullName() string {
	return strings.TrimSpace(u.firstName + " " + u.lastName)
}

// Status returns the lifecycle status.
func (u *User) Status() UserStatus { return u.status }

// Role returns the privilege level.
func (u *User) Role() UserRole { return u.role }

// CreatedAt returns the immutable creation time.
func (u *User) CreatedAt() time.Time { return u.createdAt }

// UpdatedAt returns the time of the last mutation.
func (u *User) UpdatedAt() time.Time { return u.updatedAt }

// Block marks the user blocked. Blocking an already-blocked user is an
// error so that redundant calls surface caller bugs instead of silently
// succeeding.
func (u *User) Block() error {
	if u.status == UserStatusBlocked {
		return domerrors.Invariant("user is already blocked")
	}
	u.status = UserStatusBlocked
	u.touch()
	return nil
}

// Unblock restores a blocked user to visible. Errors if the user is not
// blocked.
func (u *User) Unblock() error {
	if u.status != UserStatusBlocked {
		return domerrors.Invariant("user is not blocked")
	}
	u.status = UserStatusVisible
	u.touch()
	return nil
}

// Disable marks the user disabled. Unconditional.
func (u *User) Disable() {
	u.status = UserStatusDisabled
	u.touch()
}

// Enable restores the user to visible. Unconditional.
func (u *User) Enable() {
	u.status = UserStatusVisible
	u.touch()
}

// Hide marks the user hidden. Unconditional.
func (u *User) Hide() {
	u.status = UserStatusHidden
	u.touch()
}

// PromoteToAdmin raises a customer to admin. Errors if the user is already
// admin or superadmin.
func (u *User) PromoteToAdmin() error {
	if u.role == UserRoleAdmin || u.role == UserRoleSuperAdmin {
		return domerrors.Invariant("user is already an admin")
	}
	u.role = UserRoleAdmin
	u.touch()
	return nil
}

// PromoteToSuperAdmin raises the user to superadmin. Unconditional.
func (u *User) PromoteToSuperAdmin() {
	u.role = UserRoleSuperAdmin
	u.touch()
}

// DemoteToCustomer lowers the user to customer. Errors if the user is
// already a customer.
func (u *User) DemoteToCustomer() error {
	if u.role == UserRoleCustomer {
		return domerrors.Invariant("user is already a customer")
	}
	u.role = UserRoleCustomer
	u.touch()
	return nil
}

// UserProfileUpdate is a partial update: nil fields are left untouched.
type UserProfileUpdate struct {
	FirstName       *string
	LastName        *string
	Phone           *string
	CountryCode     *string
	Birthday        *time.Time
	TimeZone        *string
	Description     *string
	PictureFullPath *string
}

// UpdateProfile applies the present fields of p. FirstName and LastName
// stay required; the rest may be cleared with an empty value.
func (u *User) UpdateProfile(p UserProfileUpdate) error {
	if p.FirstName != nil {
		if err := requireField("firstName", *p.FirstName); err != nil {
			return err
		}
	}
	if p.LastName != nil {
		if err := requireField("lastName", *p.LastName); err != nil {
			return err
		}
	}
	assign(&u.firstName, p.FirstName)
	assign(&u.lastName, p.LastName)
	assign(&u.phone, p.Phone)
	assign(&u.countryCode, p.CountryCode)
	if p.Birthday != nil {
		b := *p.Birthday
		u.birthday = &b
	}
	assign(&u.timeZone, p.TimeZone)
	assign(&u.desc, p.Description)
	assign(&u.pictureFullPath, p.PictureFullPath)
	u.touch()
	return nil
}

// UpdateEmail replaces the email, always revalidating the format.
func (u *User) UpdateEmail(email string) error {
	if err := validateEmail(email); err != nil {
		return err
	}
	u.email = email
	u.touch()
	return nil
}

// AddNote sets the free-text note. No validation.
func (u *User) AddNote(note string) {
	u.note = note
	u.touch()
}

// IsAdmin reports whether the user is admin or superadmin.
func (u *User) IsAdmin() bool {
	return u.role == UserRoleAdmin || u.role == UserRoleSuperAdmin
}

// IsSuperAdmin reports whether the user is superadmin.
func (u *User) IsSuperAdmin() bool { return u.role == UserRoleSuperAdmin }

// IsCustomer reports whether the user is a customer.
func (u *User) IsCustomer() bool { return u.role == UserRoleCustomer }

// IsVisible reports whether the user is visible.
func (u *User) IsVisible() bool { return u.status == UserStatusVisible }

// IsBlocked reports whether the user is blocked.
func (u *User) IsBlocked() bool { return u.status == UserStatusBlocked }

func (u *User) touch() { u.updatedAt = time.Now() }
