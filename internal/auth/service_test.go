package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/harikrishnagadicharla/unicart/internal/users"
	pkgAuth "github.com/harikrishnagadicharla/unicart/pkg/auth"
	"github.com/harikrishnagadicharla/unicart/pkg/config"
	"github.com/harikrishnagadicharla/unicart/pkg/db/models"
	pkgerrors "github.com/harikrishnagadicharla/unicart/pkg/errors"
	"github.com/harikrishnagadicharla/unicart/pkg/security"
	"gorm.io/gorm"
)

type stubUserRepo struct {
	byEmail map[string]*models.User
	created []users.CreateUserDTO
}

func (s *stubUserRepo) Create(_ context.Context, dto users.CreateUserDTO) (*models.User, error) {
	s.created = append(s.created, dto)
	user := &models.User{
		ID:           uuid.New(),
		Email:        dto.Email,
		PasswordHash: dto.PasswordHash,
		FirstName:    dto.FirstName,
		LastName:     dto.LastName,
		Role:         dto.Role,
		IsActive:     true,
	}
	if s.byEmail == nil {
		s.byEmail = map[string]*models.User{}
	}
	s.byEmail[dto.Email] = user
	return user, nil
}

func (s *stubUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	if user, ok := s.byEmail[email]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepo) UpdateLastLogin(context.Context, uuid.UUID, time.Time) error {
	return nil
}

type stubSessionManager struct {
	registered []string
	revoked    []string
}

func (s *stubSessionManager) Register(_ context.Context, accessID string) error {
	s.registered = append(s.registered, accessID)
	return nil
}

func (s *stubSessionManager) Revoke(_ context.Context, accessID string) error {
	s.revoked = append(s.revoked, accessID)
	return nil
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "secret",
		Issuer:            "unicart",
		ExpirationMinutes: 30,
	}
}

func buildTestService(t *testing.T, repo *stubUserRepo) (Service, *stubSessionManager) {
	t.Helper()
	sessions := &stubSessionManager{}
	svc, err := NewService(ServiceParams{
		UserRepo:       repo,
		SessionManager: sessions,
		JWTConfig:      testJWTConfig(),
		AdminEmail:     "admin@example.com",
	})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc, sessions
}

func mustHashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := security.HashPassword(password, config.PasswordConfig{})
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return hash
}

func seededRepo(t *testing.T, email, password string) *stubUserRepo {
	t.Helper()
	return &stubUserRepo{byEmail: map[string]*models.User{
		email: {
			ID:           uuid.New(),
			Email:        email,
			PasswordHash: mustHashPassword(t, password),
			Role:         models.RoleCustomer,
			IsActive:     true,
		},
	}}
}

func TestServiceLoginIssuesSession(t *testing.T) {
	repo := seededRepo(t, "shopper@example.com", "Secret@123")
	svc, sessions := buildTestService(t, repo)

	result, err := svc.Login(context.Background(), LoginRequest{
		Email:    "Shopper@Example.com",
		Password: "Secret@123",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	claims, err := pkgAuth.ParseAccessToken(testJWTConfig(), result.Token)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if claims.ID == "" {
		t.Fatal("expected token jti")
	}
	if len(sessions.registered) != 1 || sessions.registered[0] != claims.ID {
		t.Fatalf("expected session registered under jti, got %v", sessions.registered)
	}
	if result.User == nil || result.User.Email != "shopper@example.com" {
		t.Fatalf("expected sanitized user, got %+v", result.User)
	}
}

func TestServiceLoginWrongPassword(t *testing.T) {
	repo := seededRepo(t, "shopper@example.com", "Secret@123")
	svc, _ := buildTestService(t, repo)

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "shopper@example.com",
		Password: "wrong",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestServiceLoginInactiveUser(t *testing.T) {
	repo := seededRepo(t, "shopper@example.com", "Secret@123")
	repo.byEmail["shopper@example.com"].IsActive = false
	svc, _ := buildTestService(t, repo)

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "shopper@example.com",
		Password: "Secret@123",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized for inactive user, got %v", err)
	}
}

func TestServiceRegisterLogsUserIn(t *testing.T) {
	repo := &stubUserRepo{}
	svc, sessions := buildTestService(t, repo)

	result, err := svc.Register(context.Background(), RegisterRequest{
		Email:     "New@Example.com",
		Password:  "Secret@123",
		FirstName: "New",
		LastName:  "Shopper",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if result.Token == "" {
		t.Fatal("expected session token from registration")
	}
	if len(sessions.registered) != 1 {
		t.Fatalf("expected one registered session, got %d", len(sessions.registered))
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected one created user, got %d", len(repo.created))
	}
	created := repo.created[0]
	if created.Email != "new@example.com" {
		t.Fatalf("expected lowercased email, got %q", created.Email)
	}
	if created.Role != models.RoleCustomer {
		t.Fatalf("expected customer role, got %q", created.Role)
	}
	if !strings.HasPrefix(created.PasswordHash, "$argon2id$") {
		t.Fatalf("expected argon2id hash, got %q", created.PasswordHash)
	}
}

func TestServiceRegisterReservedEmail(t *testing.T) {
	svc, _ := buildTestService(t, &stubUserRepo{})

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "Admin@Example.com",
		Password: "Secret@123",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeEmailReserved {
		t.Fatalf("expected EMAIL_RESERVED, got %v", err)
	}
}

func TestServiceRegisterDuplicateEmail(t *testing.T) {
	repo := seededRepo(t, "taken@example.com", "Secret@123")
	svc, _ := buildTestService(t, repo)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "taken@example.com",
		Password: "Secret@123",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeEmailTaken {
		t.Fatalf("expected EMAIL_TAKEN, got %v", err)
	}
}

func TestServiceLogoutRevokesSession(t *testing.T) {
	svc, sessions := buildTestService(t, &stubUserRepo{})

	if err := svc.Logout(context.Background(), "access-id"); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if len(sessions.revoked) != 1 || sessions.revoked[0] != "access-id" {
		t.Fatalf("expected revoked access id, got %v", sessions.revoked)
	}

	// a blank access id is a no-op
	if err := svc.Logout(context.Background(), "  "); err != nil {
		t.Fatalf("logout blank: %v", err)
	}
	if len(sessions.revoked) != 1 {
		t.Fatalf("expected no extra revocation, got %v", sessions.revoked)
	}
}
