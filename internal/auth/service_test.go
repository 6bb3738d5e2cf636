package auth

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	pkgAuth "github.com/campuslabs/labtrack-backend/pkg/auth"
	"github.com/campuslabs/labtrack-backend/pkg/config"
	"github.com/campuslabs/labtrack-backend/pkg/db/models"
	"github.com/campuslabs/labtrack-backend/pkg/enums"
	pkgerrors "github.com/campuslabs/labtrack-backend/pkg/errors"
	"github.com/campuslabs/labtrack-backend/pkg/security"
)

type stubUserRepo struct {
	byEmail map[string]*models.User
}

func (s *stubUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if u, ok := s.byEmail[email]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepo) FindByIDWithLab(ctx context.Context, id int64) (*models.User, error) {
	for _, u := range s.byEmail {
		if u.UserID == id {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type stubSessionManager struct {
	created   []string
	revoked   []string
	createErr error
}

func (s *stubSessionManager) Create(ctx context.Context, accessID string) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.created = append(s.created, accessID)
	return nil
}

func (s *stubSessionManager) Revoke(ctx context.Context, accessID string) error {
	s.revoked = append(s.revoked, accessID)
	return nil
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "login-test-secret",
		Issuer:            "labtrack-test",
		ExpirationMinutes: 60,
	}
}

func testUser(t *testing.T, password string) *models.User {
	t.Helper()
	hash, err := security.HashPassword(password, config.PasswordConfig{
		ArgonMemoryKB:    8,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	})
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return &models.User{
		UserID:       11,
		FullName:     "Iris Gale",
		Email:        "iris@school.edu",
		PasswordHash: hash,
		Role:         enums.RoleCustodian,
	}
}

func newLoginService(t *testing.T, repo userRepository, sessions sessionManager) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		UserRepo:       repo,
		SessionManager: sessions,
		JWTConfig:      testJWTConfig(),
	})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestLoginSuccess(t *testing.T) {
	user := testUser(t, "correct horse battery")
	repo := &stubUserRepo{byEmail: map[string]*models.User{user.Email: user}}
	sessions := &stubSessionManager{}
	svc := newLoginService(t, repo, sessions)

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "  Iris@School.edu ",
		Password: "correct horse battery",
	})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("expected a signed token")
	}
	if resp.User == nil || resp.User.Email != user.Email {
		t.Fatalf("unexpected user payload: %+v", resp.User)
	}
	if len(sessions.created) != 1 {
		t.Fatalf("expected one session marker, got %d", len(sessions.created))
	}

	claims, err := pkgAuth.ParseAccessToken(testJWTConfig(), resp.Token)
	if err != nil {
		t.Fatalf("parse minted token: %v", err)
	}
	if claims.UserID != user.UserID {
		t.Fatalf("expected user id %d in claims, got %d", user.UserID, claims.UserID)
	}
	if claims.ID != sessions.created[0] {
		t.Fatalf("token jti %q should match the stored session %q", claims.ID, sessions.created[0])
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := newLoginService(t, &stubUserRepo{byEmail: map[string]*models.User{}}, &stubSessionManager{})

	_, err := svc.Login(context.Background(), LoginRequest{Email: "nobody@school.edu", Password: "whatever"})
	if err == nil {
		t.Fatal("expected unauthorized error")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if typed.Message() != invalidCredentialsMessage {
		t.Fatalf("unknown emails must not be distinguishable, got %q", typed.Message())
	}
}

func TestLoginWrongPassword(t *testing.T) {
	user := testUser(t, "right password")
	repo := &stubUserRepo{byEmail: map[string]*models.User{user.Email: user}}
	svc := newLoginService(t, repo, &stubSessionManager{})

	_, err := svc.Login(context.Background(), LoginRequest{Email: user.Email, Password: "wrong password"})
	if err == nil {
		t.Fatal("expected unauthorized error")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestLoginSessionStoreDown(t *testing.T) {
	user := testUser(t, "some password")
	repo := &stubUserRepo{byEmail: map[string]*models.User{user.Email: user}}
	sessions := &stubSessionManager{createErr: errors.New("redis: connection refused")}
	svc := newLoginService(t, repo, sessions)

	_, err := svc.Login(context.Background(), LoginRequest{Email: user.Email, Password: "some password"})
	if err == nil {
		t.Fatal("expected dependency error")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

func TestLogout(t *testing.T) {
	sessions := &stubSessionManager{}
	svc := newLoginService(t, &stubUserRepo{byEmail: map[string]*models.User{}}, sessions)

	if err := svc.Logout(context.Background(), "access-123"); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if len(sessions.revoked) != 1 || sessions.revoked[0] != "access-123" {
		t.Fatalf("expected revoked session, got %v", sessions.revoked)
	}

	if err := svc.Logout(context.Background(), "  "); err == nil {
		t.Fatal("expected error for blank session id")
	}
}
