package service

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/gomarket/market-system/internal/core/domain"
	"github.com/gomarket/market-system/internal/core/ports"
)

const minPasswordLen = 6

// AuthService implements registration, login and session resolution.
type AuthService struct {
	users      ports.UserRepository
	sessions   ports.SessionStore
	secret     []byte
	sessionTTL time.Duration
}

func NewAuthService(users ports.UserRepository, sessions ports.SessionStore, secret string, sessionTTL time.Duration) *AuthService {
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	return &AuthService{
		users:      users,
		sessions:   sessions,
		secret:     []byte(secret),
		sessionTTL: sessionTTL,
	}
}

func (s *AuthService) Register(ctx context.Context, email, name, password string) (*domain.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	name = strings.TrimSpace(name)
	if email == "" || !strings.Contains(email, "@") || name == "" {
		return nil, domain.ErrInvalidInput
	}
	if len(password) < minPasswordLen {
		return nil, domain.ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		Role:         domain.RoleMember,
		Balance:      0,
		CreatedAt:    time.Now().UTC(),
	}

	return s.users.Create(ctx, user)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		// A missing account reads the same as a wrong password.
		if err == domain.ErrUserNotFound {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	session, err := s.sessions.Create(ctx, user.ID, s.sessionTTL)
	if err != nil {
		return "", nil, err
	}

	token, err := s.signToken(session)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

func (s *AuthService) Resolve(ctx context.Context, token string) (*domain.Session, *domain.User, error) {
	sid, err := s.parseToken(token)
	if err != nil {
		return nil, nil, domain.ErrSessionNotFound
	}

	session, err := s.sessions.Get(ctx, sid)
	if err != nil {
		return nil, nil, err
	}
	if time.Now().After(session.ExpiresAt) {
		_ = s.sessions.Delete(ctx, session.ID)
		return nil, nil, domain.ErrSessionNotFound
	}

	user, err := s.users.FindByID(ctx, session.UserID)
	if err != nil {
		return nil, nil, err
	}

	return session, user, nil
}

func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	return s.sessions.Delete(ctx, sessionID)
}

func (s *AuthService) signToken(session *domain.Session) (string, error) {
	claims := jwt.MapClaims{
		"sid": session.ID,
		"uid": session.UserID,
		"exp": session.ExpiresAt.Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

func (s *AuthService) parseToken(token string) (string, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !tkn.Valid {
		return "", domain.ErrSessionNotFound
	}

	sid, _ := claims["sid"].(string)
	if sid == "" {
		return "", domain.ErrSessionNotFound
	}
	return sid, nil
}
