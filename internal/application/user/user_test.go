package user

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/lehi10/tuagenda-sub000/internal/application/ports"
	domerrors "github.com/lehi10/tuagenda-sub000/internal/domain/errors"
	"github.com/lehi10/tuagenda-sub000/internal/infrastructure/persistence/memory"
)

// spyUserRepo counts uniqueness lookups so tests can assert the idempotent
// path skips them.
type spyUserRepo struct {
	*memory.UserRepository
	emailExistsCalls int
}

func (r *spyUserRepo) EmailExists(ctx context.Context, email, excludeID string) (bool, error) {
	r.emailExistsCalls++
	return r.UserRepository.EmailExists(ctx, email, excludeID)
}

func validCreateInput(id, email string) CreateUserInput {
	return CreateUserInput{
		ID:        id,
		Email:     email,
		FirstName: "María",
		LastName:  "Quispe",
	}
}

func TestCreateUserIdempotentByID(t *testing.T) {
	repo := &spyUserRepo{UserRepository: memory.NewUserRepository()}
	uc := NewCreateUser(repo, nil, zerolog.Nop())

	first, err := uc.Execute(context.Background(), validCreateInput("auth0|64f1c2", "maria@example.com"))
	if err != nil {
		t.Fatalf("first create error = %v", err)
	}
	if first.Existing {
		t.Error("first create should not report an existing user")
	}
	callsAfterFirst := repo.emailExistsCalls

	// Same id, different payload: the stored user comes back unchanged.
	again := validCreateInput("auth0|64f1c2", "otra@example.com")
	again.FirstName = "Mariana"
	second, err := uc.Execute(context.Background(), again)
	if err != nil {
		t.Fatalf("second create error = %v", err)
	}
	if !second.Existing {
		t.Error("second create should report the existing user")
	}
	if second.User.ID() != first.User.ID() {
		t.Errorf("ids differ: %q vs %q", second.User.ID(), first.User.ID())
	}
	if second.User.Email() != "maria@example.com" {
		t.Errorf("existing user mutated: email = %q", second.User.Email())
	}
	if repo.emailExistsCalls != callsAfterFirst {
		t.Error("idempotent path must not run the email uniqueness check")
	}
}

func TestCreateUserEmailConflict(t *testing.T) {
	repo := &spyUserRepo{UserRepository: memory.NewUserRepository()}
	uc := NewCreateUser(repo, nil, zerolog.Nop())

	if _, err := uc.Execute(context.Background(), validCreateInput("id-1", "maria@example.com")); err != nil {
		t.Fatal(err)
	}
	_, err := uc.Execute(context.Background(), validCreateInput("id-2", "maria@example.com"))
	if err == nil {
		t.Fatal("different id with a taken email should fail")
	}
	if k := domerrors.KindOf(err); k != domerrors.KindConflict {
		t.Errorf("error kind = %v, want conflict", k)
	}
	if !strings.Contains(err.Error(), "already exists") {
		t.Errorf("message = %q, want it to mention %q", err.Error(), "already exists")
	}
}

func TestCreateUserValidation(t *testing.T) {
	uc := NewCreateUser(memory.NewUserRepository(), nil, zerolog.Nop())
	tests := []struct {
		name   string
		mutate func(*CreateUserInput)
		want   string
	}{
		{"missing id", func(i *CreateUserInput) { i.ID = "" }, "id is required"},
		{"missing email", func(i *CreateUserInput) { i.Email = "" }, "email is required"},
		{"malformed email", func(i *CreateUserInput) { i.Email = "nope" }, "email must be a valid email"},
		{"missing first name", func(i *CreateUserInput) { i.FirstName = "" }, "firstName is required"},
		{"missing last name", func(i *CreateUserInput) { i.LastName = "" }, "lastName is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validCreateInput("auth0|64f1c2", "maria@example.com")
			tt.mutate(&input)
			_, err := uc.Execute(context.Background(), input)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if k := domerrors.KindOf(err); k != domerrors.KindValidation {
				t.Errorf("error kind = %v, want validation", k)
			}
			if err.Error() != tt.want {
				t.Errorf("message = %q, want %q", err.Error(), tt.want)
			}
		})
	}
}

func TestGetUserNotFound(t *testing.T) {
	uc := NewGetUser(memory.NewUserRepository(), zerolog.Nop())
	_, err := uc.Execute(context.Background(), GetUserInput{ID: "missing"})
	if err == nil || err.Error() != "User not found" {
		t.Fatalf("error = %v, want %q", err, "User not found")
	}
}

func TestGetUserFound(t *testing.T) {
	repo := memory.NewUserRepository()
	if _, err := NewCreateUser(repo, nil, zerolog.Nop()).Execute(context.Background(), validCreateInput("auth0|64f1c2", "maria@example.com")); err != nil {
		t.Fatal(err)
	}
	res, err := NewGetUser(repo, zerolog.Nop()).Execute(context.Background(), GetUserInput{ID: "auth0|64f1c2"})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if res.User.Email() != "maria@example.com" {
		t.Errorf("email = %q", res.User.Email())
	}
}

func TestUpdateUserEmailConflict(t *testing.T) {
	repo := memory.NewUserRepository()
	create := NewCreateUser(repo, nil, zerolog.Nop())
	if _, err := create.Execute(context.Background(), validCreateInput("id-1", "maria@example.com")); err != nil {
		t.Fatal(err)
	}
	if _, err := create.Execute(context.Background(), validCreateInput("id-2", "jose@example.com")); err != nil {
		t.Fatal(err)
	}

	email := "maria@example.com"
	_, err := NewUpdateUser(repo, nil, zerolog.Nop()).Execute(context.Background(), UpdateUserInput{
		ID:    "id-2",
		Email: &email,
	})
	if err == nil || domerrors.KindOf(err) != domerrors.KindConflict {
		t.Fatalf("taking another user's email should conflict, got %v", err)
	}

	// The user's own email is never a conflict.
	own := "jose@example.com"
	if _, err := NewUpdateUser(repo, nil, zerolog.Nop()).Execute(context.Background(), UpdateUserInput{
		ID:    "id-2",
		Email: &own,
	}); err != nil {
		t.Fatalf("keeping the current email should succeed, got %v", err)
	}
}

func TestUpdateUserGuardedStatusTransition(t *testing.T) {
	repo := memory.NewUserRepository()
	if _, err := NewCreateUser(repo, nil, zerolog.Nop()).Execute(context.Background(), validCreateInput("id-1", "maria@example.com")); err != nil {
		t.Fatal(err)
	}
	update := NewUpdateUser(repo, nil, zerolog.Nop())

	blocked := "blocked"
	if _, err := update.Execute(context.Background(), UpdateUserInput{ID: "id-1", Status: &blocked}); err != nil {
		t.Fatalf("first block error = %v", err)
	}
	_, err := update.Execute(context.Background(), UpdateUserInput{ID: "id-1", Status: &blocked})
	if err == nil {
		t.Fatal("blocking an already-blocked user should fail")
	}
	if k := domerrors.KindOf(err); k != domerrors.KindInvariant {
		t.Errorf("error kind = %v, want invariant", k)
	}

	visible := "visible"
	if _, err := update.Execute(context.Background(), UpdateUserInput{ID: "id-1", Status: &visible}); err != nil {
		t.Fatalf("unblock error = %v", err)
	}
}

func TestUpdateUserRoleTransitions(t *testing.T) {
	repo := memory.NewUserRepository()
	if _, err := NewCreateUser(repo, nil, zerolog.Nop()).Execute(context.Background(), validCreateInput("id-1", "maria@example.com")); err != nil {
		t.Fatal(err)
	}
	update := NewUpdateUser(repo, nil, zerolog.Nop())

	admin := "admin"
	res, err := update.Execute(context.Background(), UpdateUserInput{ID: "id-1", Role: &admin})
	if err != nil {
		t.Fatalf("promote error = %v", err)
	}
	if !res.User.IsAdmin() {
		t.Error("expected admin")
	}
	if _, err := update.Execute(context.Background(), UpdateUserInput{ID: "id-1", Role: &admin}); err == nil {
		t.Error("second promotion should fail")
	}

	customer := "customer"
	if _, err := update.Execute(context.Background(), UpdateUserInput{ID: "id-1", Role: &customer}); err != nil {
		t.Fatalf("demote error = %v", err)
	}
}

func TestUpdateUserNote(t *testing.T) {
	repo := memory.NewUserRepository()
	if _, err := NewCreateUser(repo, nil, zerolog.Nop()).Execute(context.Background(), validCreateInput("id-1", "maria@example.com")); err != nil {
		t.Fatal(err)
	}
	note := "prefers morning slots"
	res, err := NewUpdateUser(repo, nil, zerolog.Nop()).Execute(context.Background(), UpdateUserInput{ID: "id-1", Note: &note})
	if err != nil {
		t.Fatal(err)
	}
	if res.User.Snapshot().Note != note {
		t.Errorf("note = %q", res.User.Snapshot().Note)
	}
}

func TestListUsers(t *testing.T) {
	repo := memory.NewUserRepository()
	create := NewCreateUser(repo, nil, zerolog.Nop())
	seed := []struct{ id, email, first string }{
		{"id-1", "maria@example.com", "María"},
		{"id-2", "jose@example.com", "José"},
		{"id-3", "ana@example.com", "Ana"},
	}
	for _, s := range seed {
		input := validCreateInput(s.id, s.email)
		input.FirstName = s.first
		if _, err := create.Execute(context.Background(), input); err != nil {
			t.Fatal(err)
		}
	}

	res, err := NewListUsers(repo, zerolog.Nop()).Execute(context.Background(), ListUsersInput{Limit: 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Users) != 2 {
		t.Errorf("page size = %d, want 2", len(res.Users))
	}
	if res.Total != 3 {
		t.Errorf("total = %d, want 3", res.Total)
	}

	byName, err := NewListUsers(repo, zerolog.Nop()).Execute(context.Background(), ListUsersInput{Search: "ana"})
	if err != nil {
		t.Fatal(err)
	}
	if byName.Total != 1 || byName.Users[0].ID() != "id-3" {
		t.Errorf("search result = %+v", byName)
	}
}

var _ ports.UserRepository = (*spyUserRepo)(nil)
