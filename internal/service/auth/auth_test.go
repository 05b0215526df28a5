package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kgahlisomanunu-byte/TerraLearn/internal/app_errors"
	"github.com/kgahlisomanunu-byte/TerraLearn/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type nopLog struct{}

func (nopLog) Debug(string, ...interface{})           {}
func (nopLog) Info(string, ...interface{})            {}
func (nopLog) Warn(string, ...interface{})            {}
func (nopLog) Error(string, ...interface{})           {}
func (nopLog) ErrorErr(string, error, ...interface{}) {}
func (nopLog) Fatal(string, ...interface{})           {}
func (nopLog) FatalErr(string, error, ...interface{}) {}

type fakeUserRepo struct {
	byEmail map[string]*models.User
	byID    map[uuid.UUID]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byEmail: map[string]*models.User{},
		byID:    map[uuid.UUID]*models.User{},
	}
}

func (f *fakeUserRepo) CreateUser(_ context.Context, user models.User) (*models.User, error) {
	if _, exists := f.byEmail[user.Email]; exists {
		return nil, app_errors.ErrUserExists
	}
	user.ID = uuid.New()
	f.byEmail[user.Email] = &user
	f.byID[user.ID] = &user
	return &user, nil
}

func (f *fakeUserRepo) UserByEmail(_ context.Context, email string) (*models.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return nil, app_errors.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) UserByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	user, ok := f.byID[id]
	if !ok {
		return nil, app_errors.ErrUserNotFound
	}
	return user, nil
}

type fakeTokenRepo struct {
	tokens map[uuid.UUID]*models.RefreshToken
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: map[uuid.UUID]*models.RefreshToken{}}
}

func (f *fakeTokenRepo) Create(_ context.Context, userID uuid.UUID, token *jwt.Token) (*models.RefreshToken, error) {
	expiresAt, err := token.Claims.GetExpirationTime()
	if err != nil {
		return nil, err
	}
	record := &models.RefreshToken{
		UserID:    userID,
		ExpiresAt: expiresAt.Time,
		CreatedAt: time.Now(),
	}
	f.tokens[userID] = record
	return record, nil
}

func (f *fakeTokenRepo) ByPrimaryKey(_ context.Context, userID uuid.UUID, _ *jwt.Token) (*models.RefreshToken, error) {
	record, ok := f.tokens[userID]
	if !ok {
		return nil, app_errors.ErrTokenNotFound
	}
	return record, nil
}

func (f *fakeTokenRepo) DeleteUserTokens(_ context.Context, userID uuid.UUID) error {
	delete(f.tokens, userID)
	return nil
}

func newTestService() (*AuthService, *fakeUserRepo, *fakeTokenRepo) {
	manager := NewJWTManager("test-secret", "terralearn", 15*time.Minute, 24*time.Hour)
	uRepo := newFakeUserRepo()
	tRepo := newFakeTokenRepo()
	return NewAuthService(nopLog{}, manager, uRepo, tRepo), uRepo, tRepo
}

func TestRegisterAndLogin(t *testing.T) {
	svc, uRepo, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Register(ctx, models.User{
		Name:     "Thandi",
		Email:    "thandi@example.com",
		Password: "s3cret-pass",
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if created.Role != models.LearnerRole {
		t.Errorf("Role = %q, want default learner", created.Role)
	}
	if !created.IsActive {
		t.Error("new user should be active")
	}
	if stored := uRepo.byEmail["thandi@example.com"]; stored.Password == "s3cret-pass" {
		t.Error("password should be stored hashed")
	}

	access, refresh, err := svc.Login(ctx, "thandi@example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if access == "" || refresh == "" {
		t.Fatal("Login() returned empty tokens")
	}

	userID, role, err := svc.AccessClaims(ctx, access)
	if err != nil {
		t.Fatalf("AccessClaims() error = %v", err)
	}
	if userID != created.ID {
		t.Errorf("claims user = %s, want %s", userID, created.ID)
	}
	if role != models.LearnerRole {
		t.Errorf("claims role = %q, want learner", role)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, models.User{
		Name: "Sam", Email: "sam@example.com", Password: "correct-horse",
	}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	_, _, err := svc.Login(ctx, "sam@example.com", "wrong-horse")
	if !errors.Is(err, app_errors.ErrIncorrectPassword) {
		t.Fatalf("Login() error = %v, want ErrIncorrectPassword", err)
	}

	_, _, err = svc.Login(ctx, "nobody@example.com", "whatever")
	if !errors.Is(err, app_errors.ErrUserNotFound) {
		t.Fatalf("Login() error = %v, want ErrUserNotFound", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Register(context.Background(), models.User{
		Name: "NoEmail", Password: "short",
	})
	var validationErr *app_errors.ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("Register() error = %v, want ValidationError", err)
	}
}

func TestRefreshTokensRotates(t *testing.T) {
	svc, _, tRepo := newTestService()
	ctx := context.Background()

	created, err := svc.Register(ctx, models.User{
		Name: "Rot", Email: "rot@example.com", Password: "rotate-me",
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	_, refresh, err := svc.Login(ctx, "rot@example.com", "rotate-me")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	pair, err := svc.RefreshTokens(ctx, refresh)
	if err != nil {
		t.Fatalf("RefreshTokens() error = %v", err)
	}
	if pair.AccessToken.Raw == "" || pair.RefreshToken.Raw == "" {
		t.Fatal("RefreshTokens() returned empty pair")
	}
	if _, ok := tRepo.tokens[created.ID]; !ok {
		t.Error("rotated refresh token should be stored")
	}

	userID, _, err := svc.AccessClaims(ctx, pair.AccessToken.Raw)
	if err != nil {
		t.Fatalf("AccessClaims() on refreshed token error = %v", err)
	}
	if userID != created.ID {
		t.Errorf("refreshed claims user = %s, want %s", userID, created.ID)
	}
}
