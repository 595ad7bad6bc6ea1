package service

import (
	"context"
	"testing"

	infraRepo "github.com/rihlahq/rihla-api/internal/infrastructure/repository"
	"github.com/rihlahq/rihla-api/pkg/utils"
)

func newAuthService(t *testing.T, env *testEnv) *AuthService {
	t.Helper()
	jwtManager := utils.NewJWTManager("test-secret", 1, 24)
	return NewAuthService(
		infraRepo.NewUserRepository(env.db),
		infraRepo.NewRoleRepository(env.db),
		jwtManager,
	)
}

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)
	auth := newAuthService(t, env)
	ctx := context.Background()

	user, err := auth.Register(ctx, &RegisterInput{
		FirstName: "Layla",
		LastName:  "Hassan",
		Email:     "layla@example.com",
		Password:  "s3cret-pass",
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if user.Password == "s3cret-pass" {
		t.Fatal("password stored in plain text")
	}

	out, err := auth.Login(ctx, &LoginInput{
		Email:    "layla@example.com",
		Password: "s3cret-pass",
	})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if out.AccessToken == "" || out.RefreshToken == "" {
		t.Error("expected both tokens")
	}
	if out.User.Email != "layla@example.com" {
		t.Errorf("Email = %q", out.User.Email)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	env := newTestEnv(t)
	auth := newAuthService(t, env)
	ctx := context.Background()

	if _, err := auth.Register(ctx, &RegisterInput{
		FirstName: "Layla",
		Email:     "layla@example.com",
		Password:  "s3cret-pass",
	}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if _, err := auth.Login(ctx, &LoginInput{
		Email:    "layla@example.com",
		Password: "wrong",
	}); err == nil {
		t.Fatal("expected invalid credentials")
	}
	if _, err := auth.Login(ctx, &LoginInput{
		Email:    "nobody@example.com",
		Password: "s3cret-pass",
	}); err == nil {
		t.Fatal("expected invalid credentials for unknown email")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	auth := newAuthService(t, env)
	ctx := context.Background()

	input := &RegisterInput{FirstName: "Layla", Email: "layla@example.com", Password: "s3cret-pass"}
	if _, err := auth.Register(ctx, input); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if _, err := auth.Register(ctx, input); err == nil {
		t.Fatal("expected conflict for duplicate email")
	}
}

func TestRefreshToken(t *testing.T) {
	env := newTestEnv(t)
	auth := newAuthService(t, env)
	ctx := context.Background()

	if _, err := auth.Register(ctx, &RegisterInput{
		FirstName: "Layla",
		Email:     "layla@example.com",
		Password:  "s3cret-pass",
	}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	out, err := auth.Login(ctx, &LoginInput{Email: "layla@example.com", Password: "s3cret-pass"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	refreshed, err := auth.RefreshToken(ctx, out.RefreshToken)
	if err != nil {
		t.Fatalf("RefreshToken() error = %v", err)
	}
	if refreshed.AccessToken == "" {
		t.Error("expected a new access token")
	}

	if _, err := auth.RefreshToken(ctx, "not-a-token"); err == nil {
		t.Fatal("expected error for a garbage refresh token")
	}
}

func TestChangePassword(t *testing.T) {
	env := newTestEnv(t)
	auth := newAuthService(t, env)
	ctx := context.Background()

	user, err := auth.Register(ctx, &RegisterInput{
		FirstName: "Layla",
		Email:     "layla@example.com",
		Password:  "old-pass-123",
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if err := auth.ChangePassword(ctx, &ChangePasswordInput{
		UserID:          user.ID,
		CurrentPassword: "wrong",
		NewPassword:     "new-pass-123",
	}); err == nil {
		t.Fatal("expected error for wrong current password")
	}

	if err := auth.ChangePassword(ctx, &ChangePasswordInput{
		UserID:          user.ID,
		CurrentPassword: "old-pass-123",
		NewPassword:     "new-pass-123",
	}); err != nil {
		t.Fatalf("ChangePassword() error = %v", err)
	}

	if _, err := auth.Login(ctx, &LoginInput{Email: "layla@example.com", Password: "new-pass-123"}); err != nil {
		t.Errorf("login with new password failed: %v", err)
	}
}
