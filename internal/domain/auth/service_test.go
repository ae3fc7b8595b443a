package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"handyconnect/internal/domain/profile"
	jwtsvc "handyconnect/internal/pkg/jwt"
)

type fakeProfiles struct {
	mu      sync.Mutex
	created []string
}

func (f *fakeProfiles) CreateForAccount(ctx context.Context, userID string, accountType profile.AccountType, fullName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, userID+":"+string(accountType))
	return nil
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []string
	done chan struct{}
}

func (f *fakeMailer) SendWelcome(email, fullName, accountType string) error {
	f.mu.Lock()
	f.sent = append(f.sent, email)
	f.mu.Unlock()
	close(f.done)
	return nil
}

func setupTestService(t *testing.T, mailer WelcomeMailer) (*Service, *fakeProfiles) {
	t.Helper()
	dsn := fmt.Sprintf("file:auth_test_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(
		gormsqlite.New(gormsqlite.Config{DriverName: "sqlite", DSN: dsn}),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	if err != nil {
		t.Fatalf("failed to open sqlite db: %v", err)
	}
	if err := db.AutoMigrate(&User{}); err != nil {
		t.Fatalf("failed to migrate db: %v", err)
	}

	profiles := &fakeProfiles{}
	j := jwtsvc.New("test-secret", time.Hour)
	return NewService(NewRepository(db), profiles, j, mailer, zap.NewNop()), profiles
}

func TestRegisterCreatesUserProfileAndToken(t *testing.T) {
	svc, profiles := setupTestService(t, nil)

	resp, err := svc.Register(context.Background(), RegisterRequest{
		Email:       "Jane@Example.com",
		Password:    "supersecret",
		FullName:    "Jane Doe",
		AccountType: "professional",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("expected a token")
	}
	if resp.User.Email != "jane@example.com" {
		t.Fatalf("expected normalized email, got %q", resp.User.Email)
	}
	if resp.User.PasswordHash == "supersecret" {
		t.Fatal("password must be hashed")
	}
	if len(profiles.created) != 1 || profiles.created[0] != resp.User.ID+":professional" {
		t.Fatalf("expected role profile created, got %v", profiles.created)
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _ := setupTestService(t, nil)
	ctx := context.Background()

	req := RegisterRequest{
		Email:       "dup@example.com",
		Password:    "supersecret",
		FullName:    "First",
		AccountType: "customer",
	}
	if _, err := svc.Register(ctx, req); err != nil {
		t.Fatalf("first Register returned error: %v", err)
	}

	req.FullName = "Second"
	if _, err := svc.Register(ctx, req); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestRegisterSendsWelcomeEmailInBackground(t *testing.T) {
	mailer := &fakeMailer{done: make(chan struct{})}
	svc, _ := setupTestService(t, mailer)

	if _, err := svc.Register(context.Background(), RegisterRequest{
		Email:       "welcome@example.com",
		Password:    "supersecret",
		FullName:    "Jane Doe",
		AccountType: "customer",
	}); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	select {
	case <-mailer.done:
	case <-time.After(2 * time.Second):
		t.Fatal("welcome email was never sent")
	}
	if mailer.sent[0] != "welcome@example.com" {
		t.Fatalf("unexpected recipient %q", mailer.sent[0])
	}
}

func TestLoginRoundTrip(t *testing.T) {
	svc, _ := setupTestService(t, nil)
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterRequest{
		Email:       "login@example.com",
		Password:    "supersecret",
		FullName:    "Jane Doe",
		AccountType: "customer",
	}); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	resp, err := svc.Login(ctx, LoginRequest{Email: "LOGIN@example.com", Password: "supersecret"})
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("expected a token")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := setupTestService(t, nil)
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterRequest{
		Email:       "wrong@example.com",
		Password:    "supersecret",
		FullName:    "Jane Doe",
		AccountType: "customer",
	}); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	if _, err := svc.Login(ctx, LoginRequest{Email: "wrong@example.com", Password: "nope-nope"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginUnknownUser(t *testing.T) {
	svc, _ := setupTestService(t, nil)

	if _, err := svc.Login(context.Background(), LoginRequest{Email: "ghost@example.com", Password: "whatever"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
