package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"handyconnect/internal/domain/profile"
	jwtsvc "handyconnect/internal/pkg/jwt"
)

// ProfileCreator is implemented by the profile service.
type ProfileCreator interface {
	CreateForAccount(ctx context.Context, userID string, accountType profile.AccountType, fullName string) error
}

// WelcomeMailer sends the post-registration email. Delivery failure must
// never surface to the registering user.
type WelcomeMailer interface {
	SendWelcome(email, fullName, accountType string) error
}

type Service struct {
	repo     Repository
	profiles ProfileCreator
	jwt      *jwtsvc.Service
	mailer   WelcomeMailer
	log      *zap.Logger
}

func NewService(repo Repository, profiles ProfileCreator, jwt *jwtsvc.Service, mailer WelcomeMailer, log *zap.Logger) *Service {
	return &Service{repo: repo, profiles: profiles, jwt: jwt, mailer: mailer, log: log}
}

// Register creates the user, their role profile, and issues a token. The
// welcome email is fired in the background.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		AccountType:  req.AccountType,
		FullName:     req.FullName,
		CreatedAt:    time.Now(),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	if err := s.profiles.CreateForAccount(ctx, user.ID, profile.AccountType(req.AccountType), req.FullName); err != nil {
		return nil, err
	}

	if s.mailer != nil {
		go func(email, name, accountType string) {
			if err := s.mailer.SendWelcome(email, name, accountType); err != nil {
				s.log.Warn("welcome email failed",
					zap.String("email", email),
					zap.Error(err),
				)
			}
		}(user.Email, user.FullName, user.AccountType)
	}

	token, err := s.jwt.GenerateToken(user.ID, user.AccountType)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{Token: token, User: user}, nil
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.repo.GetByEmail(ctx, email)
	if errors.Is(err, ErrUserNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(user.ID, user.AccountType)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{Token: token, User: user}, nil
}
