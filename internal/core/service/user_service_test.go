package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/globetrotter/trip-planner-api/internal/core/domain"
)

func seedUser(repo *stubUserRepo, role string) *domain.User {
	repo.seq++
	u := &domain.User{
		ID:         "user-" + role,
		Email:      role + "@example.com",
		Role:       role,
		IsVerified: true,
	}
	repo.users[u.ID] = u
	return u
}

func TestUserService_ChangeRole_AdminPromotesAnother(t *testing.T) {
	repo := newStubUserRepo()
	admin := seedUser(repo, domain.RoleAdmin)
	target := seedUser(repo, domain.RoleUser)
	svc := NewUserService(repo, zerolog.Nop())

	updated, err := svc.ChangeRole(context.Background(), admin, target.ID, domain.RoleAdmin)
	if err != nil {
		t.Fatalf("change role failed: %v", err)
	}
	if updated.Role != domain.RoleAdmin {
		t.Fatalf("role not updated: %s", updated.Role)
	}
}

func TestUserService_ChangeRole_SelfDemotionForbidden(t *testing.T) {
	repo := newStubUserRepo()
	admin := seedUser(repo, domain.RoleAdmin)
	svc := NewUserService(repo, zerolog.Nop())

	if _, err := svc.ChangeRole(context.Background(), admin, admin.ID, domain.RoleUser); err != domain.ErrSelfDemotion {
		t.Fatalf("expected ErrSelfDemotion, got %v", err)
	}
	if repo.users[admin.ID].Role != domain.RoleAdmin {
		t.Fatalf("role must be unchanged after refusal")
	}
}

func TestUserService_ChangeRole_InvalidRole(t *testing.T) {
	repo := newStubUserRepo()
	admin := seedUser(repo, domain.RoleAdmin)
	target := seedUser(repo, domain.RoleUser)
	svc := NewUserService(repo, zerolog.Nop())

	if _, err := svc.ChangeRole(context.Background(), admin, target.ID, "superuser"); err != domain.ErrInvalidRole {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestUserService_ChangeRole_UnknownTarget(t *testing.T) {
	repo := newStubUserRepo()
	admin := seedUser(repo, domain.RoleAdmin)
	svc := NewUserService(repo, zerolog.Nop())

	if _, err := svc.ChangeRole(context.Background(), admin, "missing", domain.RoleAdmin); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
