package memory

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/lehi10/tuagenda-sub000/internal/application/ports"
	"github.com/lehi10/tuagenda-sub000/internal/domain"
	domerrors "github.com/lehi10/tuagenda-sub000/internal/domain/errors"
)

func newBusiness(t *testing.T, slug, title, city string) *domain.Business {
	t.Helper()
	b, err := domain.NewBusiness(domain.NewBusinessParams{
		Slug:     slug,
		Title:    title,
		Email:    slug + "@example.com",
		Phone:    "+51 1 555 0100",
		Address:  "Av. Principal 123",
		City:     city,
		Country:  "PE",
		TimeZone: "America/Lima",
		Locale:   "es-PE",
		Currency: "PEN",
	})
	if err != nil {
		t.Fatalf("NewBusiness: %v", err)
	}
	return b
}

func TestBusinessRepositoryCreateAssignsSequentialIDs(t *testing.T) {
	repo := NewBusinessRepository()
	ctx := context.Background()

	first, err := repo.Create(ctx, newBusiness(t, "acme", "Acme", "Lima"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	second, err := repo.Create(ctx, newBusiness(t, "globex", "Globex", "Cusco"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if first.ID() == 0 || second.ID() != first.ID()+1 {
		t.Fatalf("ids not sequential: %d, %d", first.ID(), second.ID())
	}
}

func TestBusinessRepositoryCreateRejectsDuplicateSlug(t *testing.T) {
	repo := NewBusinessRepository()
	ctx := context.Background()

	if _, err := repo.Create(ctx, newBusiness(t, "acme", "Acme", "Lima")); err != nil {
		t.Fatalf("Create: %v", err)
	}
	_, err := repo.Create(ctx, newBusiness(t, "acme", "Acme Two", "Cusco"))
	if domerrors.KindOf(err) != domerrors.KindConflict {
		t.Fatalf("want conflict, got %v", err)
	}
	if !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("conflict message = %q", err.Error())
	}
}

func TestBusinessRepositoryFindByIDs(t *testing.T) {
	repo := NewBusinessRepository()
	ctx := context.Background()

	a, _ := repo.Create(ctx, newBusiness(t, "acme", "Acme", "Lima"))
	repo.Create(ctx, newBusiness(t, "globex", "Globex", "Cusco"))
	c, _ := repo.Create(ctx, newBusiness(t, "initech", "Initech", "Lima"))

	got, err := repo.FindByIDs(ctx, []int64{c.ID(), a.ID(), 999})
	if err != nil {
		t.Fatalf("FindByIDs: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
}

func TestBusinessRepositoryFindAllAndCountAgree(t *testing.T) {
	repo := NewBusinessRepository()
	ctx := context.Background()

	for _, tc := range []struct{ slug, title, city string }{
		{"acme", "Acme", "Lima"},
		{"globex", "Globex", "Cusco"},
		{"initech", "Initech", "Lima"},
		{"umbrella", "Umbrella", "Lima"},
	} {
		if _, err := repo.Create(ctx, newBusiness(t, tc.slug, tc.title, tc.city)); err != nil {
			t.Fatalf("Create %s: %v", tc.slug, err)
		}
	}

	filter := ports.BusinessFilter{Search: "Lima", Limit: 2}
	page, err := repo.FindAll(ctx, filter)
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if len(page) != 2 {
		t.Fatalf("page len = %d, want 2", len(page))
	}
	total, err := repo.Count(ctx, filter)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if total != 3 {
		t.Fatalf("Count = %d, want 3", total)
	}
}

func TestBusinessRepositoryStatusFilter(t *testing.T) {
	repo := NewBusinessRepository()
	ctx := context.Background()

	b, _ := repo.Create(ctx, newBusiness(t, "acme", "Acme", "Lima"))
	repo.Create(ctx, newBusiness(t, "globex", "Globex", "Cusco"))

	b.Suspend()
	if err := repo.Update(ctx, b); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := repo.FindAll(ctx, ports.BusinessFilter{
		Statuses: []domain.BusinessStatus{domain.BusinessStatusSuspended},
	})
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if len(got) != 1 || got[0].ID() != b.ID() {
		t.Fatalf("suspended filter returned %d rows", len(got))
	}
}

func TestBusinessRepositoryUpdateMissing(t *testing.T) {
	repo := NewBusinessRepository()
	b := newBusiness(t, "acme", "Acme", "Lima")
	b.SetID(42)
	if err := repo.Update(context.Background(), b); err == nil {
		t.Fatal("expected error updating unknown business")
	}
}

func TestBusinessRepositorySlugExistsExcludesSelf(t *testing.T) {
	repo := NewBusinessRepository()
	ctx := context.Background()

	b, _ := repo.Create(ctx, newBusiness(t, "acme", "Acme", "Lima"))

	taken, err := repo.SlugExists(ctx, "acme", b.ID())
	if err != nil {
		t.Fatalf("SlugExists: %v", err)
	}
	if taken {
		t.Fatal("slug should not count against its own business")
	}
	taken, _ = repo.SlugExists(ctx, "acme", 0)
	if !taken {
		t.Fatal("slug should be taken for other businesses")
	}
}

func newUser(t *testing.T, id, email string) *domain.User {
	t.Helper()
	u, err := domain.NewUser(domain.NewUserParams{
		ID:        id,
		Email:     email,
		FirstName: "Maria",
		LastName:  "Quispe",
	})
	if err != nil {
		t.Fatalf("NewUser: %v", err)
	}
	return u
}

func TestUserRepositoryCreateRejectsDuplicates(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	if err := repo.Create(ctx, newUser(t, "auth0|1", "maria@example.com")); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.Create(ctx, newUser(t, "auth0|1", "other@example.com")); err == nil {
		t.Fatal("expected error for duplicate id")
	}
	err := repo.Create(ctx, newUser(t, "auth0|2", "maria@example.com"))
	if domerrors.KindOf(err) != domerrors.KindConflict {
		t.Fatalf("want conflict for duplicate email, got %v", err)
	}
}

func TestUserRepositoryEmailExistsExcludesSelf(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	repo.Create(ctx, newUser(t, "auth0|1", "maria@example.com"))

	taken, err := repo.EmailExists(ctx, "maria@example.com", "auth0|1")
	if err != nil {
		t.Fatalf("EmailExists: %v", err)
	}
	if taken {
		t.Fatal("email should not count against its own user")
	}
	taken, _ = repo.EmailExists(ctx, "maria@example.com", "")
	if !taken {
		t.Fatal("email should be taken for other users")
	}
}

func TestUserRepositorySearchAndPagination(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	repo.Create(ctx, newUser(t, "auth0|1", "maria@example.com"))
	repo.Create(ctx, newUser(t, "auth0|2", "jose@example.com"))
	repo.Create(ctx, newUser(t, "auth0|3", "maria.flores@example.com"))

	got, err := repo.FindAll(ctx, ports.UserFilter{Search: "maria", Limit: 1, Offset: 1})
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	total, _ := repo.Count(ctx, ports.UserFilter{Search: "maria"})
	if total != 2 {
		t.Fatalf("Count = %d, want 2", total)
	}
}

func TestUserRepositoryCreatedRangeFilter(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	repo.Create(ctx, newUser(t, "auth0|1", "maria@example.com"))

	future := time.Now().Add(time.Hour)
	got, err := repo.FindAll(ctx, ports.UserFilter{CreatedFrom: &future})
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("future window returned %d rows", len(got))
	}
	past := time.Now().Add(-time.Hour)
	got, _ = repo.FindAll(ctx, ports.UserFilter{CreatedFrom: &past, CreatedTo: &future})
	if len(got) != 1 {
		t.Fatalf("open window returned %d rows", len(got))
	}
}
