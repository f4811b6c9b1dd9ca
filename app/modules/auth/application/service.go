package authservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	authdomain "github.com/runmoore/scrabble-score/app/modules/auth/domain"
	authjwt "github.com/runmoore/scrabble-score/app/modules/auth/infrastructure/jwt"
	authdb "github.com/runmoore/scrabble-score/app/modules/auth/infrastructure/repositories"
	"github.com/runmoore/scrabble-score/app/observability/attr"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/crypto/bcrypt"
)

const (
	DefaultTokenTTL   = 30 * 24 * time.Hour
	MinPasswordLength = 8
)

// Config holds the configuration for the auth service.
type Config struct {
	DefaultTTL time.Duration
	BcryptCost int
}

// service implements the Service interface.
type service struct {
	repo        authdb.Repository
	jwtProvider authjwt.Provider
	config      Config
	logger      *slog.Logger
	tracer      trace.Tracer
}

// NewService creates a new auth service.
func NewService(
	jwtProvider authjwt.Provider,
	repo authdb.Repository,
	config Config,
	logger *slog.Logger,
	tracer trace.Tracer,
) Service {
	if config.DefaultTTL <= 0 {
		config.DefaultTTL = DefaultTokenTTL
	}
	if config.BcryptCost == 0 {
		config.BcryptCost = bcrypt.DefaultCost
	}
	return &service{
		repo:        repo,
		jwtProvider: jwtProvider,
		config:      config,
		logger:      logger,
		tracer:      tracer,
	}
}

// Register creates an account and signs it in.
func (s *service) Register(ctx context.Context, email, password string) (*Session, error) {
	ctx, span := s.tracer.Start(ctx, "AuthService.Register")
	defer span.End()

	email = normalizeEmail(email)
	if err := validateCredentials(email, password); err != nil {
		return nil, err
	}
	if len(password) < MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	_, err := s.repo.GetUserByEmail(ctx, nil, email)
	switch {
	case err == nil:
		return nil, ErrEmailTaken
	case !errors.Is(err, authdb.ErrNotFound):
		span.SetStatus(codes.Error, "lookup failed")
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.config.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &authdb.User{Email: email, PasswordHash: string(hash)}
	if err := s.repo.CreateUser(ctx, nil, user); err != nil {
		if errors.Is(err, authdb.ErrEmailTaken) {
			return nil, ErrEmailTaken
		}
		span.SetStatus(codes.Error, "create failed")
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.InfoContext(ctx, "User registered", attr.UserID(user.ID))
	return s.newSession(user)
}

// Login checks credentials and starts a session.
func (s *service) Login(ctx context.Context, email, password string) (*Session, error) {
	ctx, span := s.tracer.Start(ctx, "AuthService.Login")
	defer span.End()

	email = normalizeEmail(email)
	if err := validateCredentials(email, password); err != nil {
		return nil, err
	}

	user, err := s.repo.GetUserByEmail(ctx, nil, email)
	if err != nil {
		if errors.Is(err, authdb.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		span.SetStatus(codes.Error, "lookup failed")
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.WarnContext(ctx, "Login rejected", attr.UserID(user.ID))
		return nil, ErrInvalidCredentials
	}

	return s.newSession(user)
}

// ValidateToken validates a session token and returns the claims if valid.
func (s *service) ValidateToken(ctx context.Context, tokenString string) (*authdomain.Claims, error) {
	_, span := s.tracer.Start(ctx, "AuthService.ValidateToken")
	defer span.End()

	claims, err := s.jwtProvider.ValidateToken(tokenString)
	if err != nil {
		if errors.Is(err, authjwt.ErrExpiredToken) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *service) newSession(user *authdb.User) (*Session, error) {
	expiresAt := time.Now().Add(s.config.DefaultTTL)
	token, err := s.jwtProvider.GenerateToken(&authdomain.Claims{
		UserID: user.ID,
		Email:  user.Email,
	}, s.config.DefaultTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &Session{Token: token, UserID: user.ID, Email: user.Email, ExpiresAt: expiresAt}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateCredentials(email, password string) error {
	if len(email) <= 3 || !strings.Contains(email, "@") {
		return ErrInvalidEmail
	}
	if password == "" {
		return ErrPasswordRequired
	}
	return nil
}
