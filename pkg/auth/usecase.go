package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/artem13815/folio/pkg/validation"
)

const MinPasswordLen = 6

// SignUpInput mirrors the registration form.
type SignUpInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
}

func (in SignUpInput) Validate() validation.Violations {
	v := validation.Violations{}
	if !validation.IsEmail(strings.TrimSpace(in.Email)) {
		v.Add("email", "Please enter a valid email")
	}
	if len([]rune(in.Password)) < MinPasswordLen {
		v.Add("password", "Password must be at least 6 characters")
	}
	validation.MinLen("fullName", in.FullName, 2, "Name must be at least 2 characters", v)
	return v
}

// UseCase describes the identity provider the rest of the service relies on.
type UseCase interface {
	SignUp(ctx context.Context, in SignUpInput) (Result, error)
	SignInWithPassword(ctx context.Context, email, password string) (Result, error)
	// GetSession returns ErrNoSession for unknown, expired or signed-out tokens.
	GetSession(ctx context.Context, token string) (Session, error)
	SignOut(ctx context.Context, s Session) error
	OnSessionChange(fn func(Event)) (unsubscribe func())
}

type service struct {
	repo    UserRepository
	tokens  TokenIssuer
	revoker Revoker
	seeder  ProfileSeeder
	hub     *Hub
	log     *zap.Logger
	now     func() time.Time
}

// NewService returns default implementation of UseCase.
func NewService(repo UserRepository, tokens TokenIssuer, revoker Revoker, seeder ProfileSeeder, hub *Hub, log *zap.Logger) UseCase {
	if hub == nil {
		hub = NewHub()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &service{
		repo:    repo,
		tokens:  tokens,
		revoker: revoker,
		seeder:  seeder,
		hub:     hub,
		log:     log,
		now:     time.Now,
	}
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func (s *service) SignUp(ctx context.Context, in SignUpInput) (Result, error) {
	if err := in.Validate().Err(); err != nil {
		return Result{}, err
	}
	email := normalizeEmail(in.Email)

	// If user exists, fail fast (best-effort check)
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return Result{}, ErrUserAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return Result{}, err
	}
	user := User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    s.now().UTC(),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return Result{}, err
	}
	if s.seeder != nil {
		if err := s.seeder.Seed(ctx, user.ID, in.FullName, email); err != nil {
			// the account exists; the profile editor can create the profile later
			s.log.Warn("seed profile failed", zap.String("user", user.ID.String()), zap.Error(err))
		}
	}
	return s.startSession(ctx, user)
}

func (s *service) SignInWithPassword(ctx context.Context, email, password string) (Result, error) {
	user, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, ErrNotFound) {
		return Result{}, ErrInvalidCredentials
	}
	if err != nil {
		return Result{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return Result{}, ErrInvalidCredentials
	}
	return s.startSession(ctx, user)
}

func (s *service) startSession(ctx context.Context, user User) (Result, error) {
	sid := uuid.NewString()
	token, exp, err := s.tokens.Issue(ctx, user, sid, s.now().UTC())
	if err != nil {
		return Result{}, fmt.Errorf("issue token: %w", err)
	}
	sess := Session{UserID: user.ID, SessionID: sid, ExpiresAt: exp}
	s.hub.Publish(Event{Kind: SignedIn, Session: sess})
	return Result{User: user, Token: token, Session: sess}, nil
}

func (s *service) GetSession(ctx context.Context, token string) (Session, error) {
	if strings.TrimSpace(token) == "" {
		return Session{}, ErrNoSession
	}
	sess, err := s.tokens.Parse(token)
	if err != nil {
		return Session{}, ErrNoSession
	}
	revoked, err := s.revoker.IsRevoked(ctx, sess.SessionID)
	if err != nil {
		return Session{}, fmt.Errorf("check session: %w", err)
	}
	if revoked {
		return Session{}, ErrNoSession
	}
	return sess, nil
}

func (s *service) SignOut(ctx context.Context, sess Session) error {
	if err := s.revoker.Revoke(ctx, sess.SessionID, sess.ExpiresAt); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	s.hub.Publish(Event{Kind: SignedOut, Session: sess})
	return nil
}

func (s *service) OnSessionChange(fn func(Event)) func() {
	return s.hub.Subscribe(fn)
}
