// Package auth authenticates callers with bearer tokens and enforces the
// user-management authorization rules.
package auth

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/vaughan-dsouza/rentwheels/internal/apperrors"
	"github.com/vaughan-dsouza/rentwheels/internal/models"
	"github.com/vaughan-dsouza/rentwheels/internal/repository"
	"github.com/vaughan-dsouza/rentwheels/internal/validation"
)

const tokenName = "auth_token"

// Service implements login, signup, logout, bearer authentication and the
// user-management operations.
type Service struct {
	users    *repository.UserRepository
	tokens   *repository.TokenRepository
	secret   string
	ttl      time.Duration
	hashCost int
	now      func() time.Time
}

// Option customizes a Service.
type Option func(*Service)

// WithHashCost sets the bcrypt cost used for new password hashes.
func WithHashCost(cost int) Option {
	return func(s *Service) { s.hashCost = cost }
}

// WithClock replaces time.Now for token issuance and expiry checks.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(store *repository.Store, secret string, ttl time.Duration, opts ...Option) *Service {
	s := &Service{
		users:    store.Users,
		tokens:   store.Tokens,
		secret:   secret,
		ttl:      ttl,
		hashCost: bcrypt.DefaultCost,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Session is the result of a successful login or signup.
type Session struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *models.User `json:"user"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type SignupInput struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required,oneof=admin owner renter"`
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Login checks the credentials and issues a new token.
func (s *Service) Login(ctx context.Context, in LoginInput) (*Session, error) {
	in.Email = normalizeEmail(in.Email)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	u, err := s.users.GetByEmail(ctx, in.Email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.Unauthorized("Invalid credentials")
	}
	if err != nil {
		return nil, apperrors.Internal("db error", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(in.Password)); err != nil {
		return nil, apperrors.Unauthorized("Invalid credentials")
	}
	return s.issue(ctx, u)
}

// Signup creates a user with a hashed password and issues its first token.
func (s *Service) Signup(ctx context.Context, in SignupInput) (*Session, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	taken, err := s.users.EmailTaken(ctx, in.Email, 0)
	if err != nil {
		return nil, apperrors.Internal("db error", err)
	}
	if taken {
		return nil, emailTaken()
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.hashCost)
	if err != nil {
		return nil, apperrors.Internal("internal error", err)
	}
	u := &models.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: string(hash),
		Role:     models.Role(in.Role),
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, emailTaken()
		}
		return nil, apperrors.Internal("db error", err)
	}
	return s.issue(ctx, u)
}

// Logout revokes only the token that authenticated the principal.
func (s *Service) Logout(ctx context.Context, p *Principal) error {
	if p == nil || p.User == nil || p.TokenID == "" {
		return apperrors.Unauthorized("Not authenticated")
	}
	err := s.tokens.Delete(ctx, p.TokenID)
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.Unauthorized("Not authenticated")
	}
	if err != nil {
		return apperrors.Internal("db error", err)
	}
	return nil
}

// Authenticate resolves a bearer token to its principal. Any failure is Unauthorized.
func (s *Service) Authenticate(ctx context.Context, bearer string) (*Principal, error) {
	claims, err := verifyToken(bearer, s.secret)
	if err != nil {
		return nil, apperrors.Unauthorized("Unauthenticated")
	}

	tok, err := s.tokens.Get(ctx, claims.ID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.Unauthorized("Unauthenticated")
	}
	if err != nil {
		return nil, apperrors.Internal("db error", err)
	}
	now := s.now()
	if tok.UserID != claims.SubjectInt() || !now.Before(tok.ExpiresAt) {
		return nil, apperrors.Unauthorized("Unauthenticated")
	}

	u, err := s.users.GetByID(ctx, tok.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.Unauthorized("Unauthenticated")
	}
	if err != nil {
		return nil, apperrors.Internal("db error", err)
	}

	if err := s.tokens.Touch(ctx, tok.ID, now); err != nil {
		log.Printf("auth: touch token %s: %v", tok.ID, err)
	}
	return &Principal{User: u, TokenID: tok.ID}, nil
}

func (s *Service) issue(ctx context.Context, u *models.User) (*Session, error) {
	issuedAt := s.now().UTC().Truncate(time.Second)
	tok := &models.AccessToken{
		ID:        uuid.NewString(),
		UserID:    u.ID,
		Name:      tokenName,
		ExpiresAt: issuedAt.Add(s.ttl),
	}
	signed, err := signToken(s.secret, u.ID, string(u.Role), tok.ID, issuedAt, tok.ExpiresAt)
	if err != nil {
		return nil, apperrors.Internal("token error", err)
	}
	if err := s.tokens.Create(ctx, tok); err != nil {
		return nil, apperrors.Internal("db error", err)
	}
	return &Session{Token: signed, ExpiresAt: tok.ExpiresAt, User: u}, nil
}

func emailTaken() error {
	return apperrors.Field("email", "The email has already been taken.")
}
