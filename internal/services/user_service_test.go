package services

import (
	"context"
	"testing"

	"dailyshop-backend/internal/auth"
	"dailyshop-backend/internal/config"
	"dailyshop-backend/internal/models"
	"dailyshop-backend/internal/repositories"
	"dailyshop-backend/internal/store"
)

func newUserService(t *testing.T) *UserService {
	t.Helper()
	s, err := store.NewCSVStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	repo := repositories.NewUserRepository(s)
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpirationHours = 1
	cfg.JWT.Issuer = "dailyshop-backend"
	return NewUserService(repo, auth.NewJWTManager(cfg), NewTOTPService(repo, cfg.JWT.Issuer))
}

func TestEnsureDefaultAdminIsIdempotent(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	if err := svc.EnsureDefaultAdmin(ctx); err != nil {
		t.Fatalf("first ensure: %v", err)
	}
	if err := svc.EnsureDefaultAdmin(ctx); err != nil {
		t.Fatalf("second ensure: %v", err)
	}

	users, err := svc.ListUsers(ctx)
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("got %d users, want 1", len(users))
	}
	admin := users[0]
	if admin.Mobile != DefaultAdminMobile || admin.Role != models.RoleAdmin || !admin.Active {
		t.Errorf("bootstrap admin = %+v", admin)
	}
}

func TestEnsureDefaultAdminSkipsNonEmptyTable(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	if _, err := svc.CreateUser(ctx, &models.CreateUserRequest{
		Name:     "Ravi",
		Mobile:   "9000000001",
		Password: "pass1234",
		Role:     models.RoleStaff,
	}); err != nil {
		t.Fatalf("create user: %v", err)
	}
	if err := svc.EnsureDefaultAdmin(ctx); err != nil {
		t.Fatalf("ensure: %v", err)
	}

	users, err := svc.ListUsers(ctx)
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if len(users) != 1 {
		t.Errorf("admin was bootstrapped into a non-empty table: %d users", len(users))
	}
}

func TestLoginWithDefaultAdmin(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	if err := svc.EnsureDefaultAdmin(ctx); err != nil {
		t.Fatalf("ensure: %v", err)
	}

	resp, err := svc.Login(ctx, &models.LoginRequest{Mobile: DefaultAdminMobile, Password: defaultAdminPassword})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.Token == "" {
		t.Error("empty token")
	}
	if resp.User.Role != models.RoleAdmin {
		t.Errorf("role = %q", resp.User.Role)
	}

	if _, err := svc.Login(ctx, &models.LoginRequest{Mobile: DefaultAdminMobile, Password: "wrong"}); err == nil {
		t.Error("wrong password accepted")
	}
	if _, err := svc.Login(ctx, &models.LoginRequest{Mobile: "1111111111", Password: defaultAdminPassword}); err == nil {
		t.Error("unknown mobile accepted")
	}
}

func TestDeactivatedUserCannotLogin(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, &models.CreateUserRequest{
		Name:     "Ravi",
		Mobile:   "9000000001",
		Password: "pass1234",
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if err := svc.DeactivateUser(ctx, user.UserID); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	if _, err := svc.Login(ctx, &models.LoginRequest{Mobile: "9000000001", Password: "pass1234"}); err == nil {
		t.Error("inactive account logged in")
	}

	// Soft delete: the row is still listed.
	users, err := svc.ListUsers(ctx)
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if len(users) != 1 || users[0].Active {
		t.Errorf("users after deactivate = %+v", users)
	}
}

func TestSignupCreatesCustomer(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	resp, err := svc.Signup(ctx, &models.SignupRequest{
		Name:     "Meena",
		Mobile:   "9000000002",
		Password: "pass1234",
	})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if resp.User.Role != models.RoleCustomer {
		t.Errorf("role = %q, want customer", resp.User.Role)
	}
	if resp.Token == "" {
		t.Error("empty token")
	}

	// Mobile numbers are unique.
	if _, err := svc.Signup(ctx, &models.SignupRequest{
		Name:     "Meena again",
		Mobile:   "9000000002",
		Password: "other",
	}); err == nil {
		t.Error("duplicate mobile accepted")
	}
}

func TestUpdateUserKeepsPasswordWhenBlank(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, &models.CreateUserRequest{
		Name:     "Ravi",
		Mobile:   "9000000001",
		Password: "pass1234",
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	updated, err := svc.UpdateUser(ctx, user.UserID, &models.UpdateUserRequest{Name: "Ravi K"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Ravi K" {
		t.Errorf("name = %q", updated.Name)
	}

	if _, err := svc.Login(ctx, &models.LoginRequest{Mobile: "9000000001", Password: "pass1234"}); err != nil {
		t.Errorf("old password no longer works after name-only update: %v", err)
	}
}
