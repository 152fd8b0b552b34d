package service

import (
	"context"
	"errors"
	"time"

	"github.com/egovmeet/video-verification/internal/cache"
	"github.com/egovmeet/video-verification/internal/model"
	"github.com/egovmeet/video-verification/internal/repository"
	"github.com/egovmeet/video-verification/internal/utils"
)

// UserStore is the durable account storage the session service needs.
type UserStore interface {
	Create(ctx context.Context, username, passwordHash, firstName, lastName, role string) (model.User, error)
	GetByUsername(ctx context.Context, username string) (model.User, error)
	GetByID(ctx context.Context, id string) (model.User, error)
	TouchLastLogin(ctx context.Context, id string, at time.Time) error
}

// TokenStore is the ephemeral session storage: the bidirectional
// user ↔ refresh-token-hash mapping.
type TokenStore interface {
	Save(ctx context.Context, userID, tokenHash string, ttl time.Duration) error
	UserIDByToken(ctx context.Context, tokenHash string) (string, error)
	Delete(ctx context.Context, userID string) (bool, error)
}

// SessionConfig carries the token and hashing parameters.
type SessionConfig struct {
	JWTSecret      string
	AccessTTLMin   int
	RefreshTTLDays int
	BcryptCost     int
}

// TokenPair is what a successful register, login or refresh hands back.
type TokenPair struct {
	Access  utils.AccessToken
	Refresh utils.RefreshToken
}

// SessionService owns registration, login, refresh rotation and logout. Each
// user has at most one live session: opening a new one displaces the old
// refresh token.
type SessionService struct {
	users  UserStore
	tokens TokenStore
	cfg    SessionConfig
	now    func() time.Time
}

func NewSessionService(users UserStore, tokens TokenStore, cfg SessionConfig) *SessionService {
	return &SessionService{users: users, tokens: tokens, cfg: cfg, now: time.Now}
}

// Register creates an account and opens its first session.
func (s *SessionService) Register(ctx context.Context, username, password, firstName, lastName, role string) (model.User, TokenPair, error) {
	hash, err := utils.HashPassword(password, s.cfg.BcryptCost)
	if err != nil {
		return model.User{}, TokenPair{}, err
	}
	u, err := s.users.Create(ctx, username, hash, firstName, lastName, role)
	if err != nil {
		return model.User{}, TokenPair{}, err
	}
	pair, err := s.openSession(ctx, u)
	if err != nil {
		return model.User{}, TokenPair{}, err
	}
	return u, pair, nil
}

// Login verifies credentials and opens a session, displacing any previous
// one. A missing user and a wrong password are indistinguishable to the
// caller.
func (s *SessionService) Login(ctx context.Context, username, password string) (model.User, TokenPair, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.User{}, TokenPair{}, ErrAuthentication
		}
		return model.User{}, TokenPair{}, err
	}
	if !utils.VerifyPassword(u.PasswordHash, password) {
		return model.User{}, TokenPair{}, ErrAuthentication
	}
	loginAt := s.now()
	if err := s.users.TouchLastLogin(ctx, u.ID, loginAt); err != nil {
		return model.User{}, TokenPair{}, err
	}
	u.LastLoginAt = &loginAt
	pair, err := s.openSession(ctx, u)
	if err != nil {
		return model.User{}, TokenPair{}, err
	}
	return u, pair, nil
}

// Refresh trades a live refresh token for a new pair. The presented token is
// consumed: after a successful rotation it no longer resolves.
func (s *SessionService) Refresh(ctx context.Context, rawRefresh string) (TokenPair, error) {
	userID, err := s.tokens.UserIDByToken(ctx, utils.HashRefreshRaw(rawRefresh))
	if err != nil {
		if errors.Is(err, cache.ErrNotFound) {
			return TokenPair{}, ErrAuthentication
		}
		return TokenPair{}, err
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return TokenPair{}, ErrAuthentication
		}
		return TokenPair{}, err
	}
	return s.openSession(ctx, u)
}

// Logout drops the user's session. The returned bool reports whether one
// existed; either way the outcome is the same.
func (s *SessionService) Logout(ctx context.Context, userID string) (bool, error) {
	return s.tokens.Delete(ctx, userID)
}

func (s *SessionService) openSession(ctx context.Context, u model.User) (TokenPair, error) {
	access, err := utils.NewAccessToken(s.cfg.JWTSecret, utils.Identity{
		UserID:   u.ID,
		Username: u.Username,
		Role:     u.Role,
	}, s.cfg.AccessTTLMin)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := utils.NewRefreshToken(s.cfg.RefreshTTLDays)
	if err != nil {
		return TokenPair{}, err
	}
	ttl := time.Duration(s.cfg.RefreshTTLDays) * 24 * time.Hour
	if err := s.tokens.Save(ctx, u.ID, utils.HashRefreshRaw(refresh.Raw), ttl); err != nil {
		return TokenPair{}, err
	}
	return TokenPair{Access: access, Refresh: refresh}, nil
}
