package auth

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	autherrors "github.com/abbie-leigh/hr-portal/internal/auth/errors"
	"github.com/abbie-leigh/hr-portal/internal/shared/contextutil"
	"github.com/abbie-leigh/hr-portal/internal/user"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
)

// CredentialStore is the slice of the user repository the auth flow needs.
// user.Repository satisfies it.
type CredentialStore interface {
	FindByUsername(ctx context.Context, username string) (*user.User, error)
	FindByID(ctx context.Context, id string) (*user.User, error)
}

type Service interface {
	Login(ctx context.Context, req LoginRequest) (TokenPairResponse, error)
	Refresh(ctx context.Context, refreshToken string) (TokenPairResponse, error)
	Session(ctx context.Context, userID string) (SessionResponse, error)
}

type service struct {
	store  CredentialStore
	logger *zap.Logger
}

func NewService(store CredentialStore, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{store: store, logger: l}
}

func (s *service) Login(ctx context.Context, req LoginRequest) (TokenPairResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	u, err := s.store.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Same error as a bad password so the response does not
			// leak which usernames exist.
			return TokenPairResponse{}, autherrors.ErrInvalidCredentials
		}
		l.Error("login lookup failed", zap.Error(err))
		return TokenPairResponse{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Password)) != nil {
		l.Warn("login rejected", zap.String("username", req.Username))
		return TokenPairResponse{}, autherrors.ErrInvalidCredentials
	}

	pair, err := issueTokenPair(u)
	if err != nil {
		l.Error("token signing failed", zap.Error(err))
		return TokenPairResponse{}, err
	}

	l.Info("login succeeded", zap.String("username", req.Username), zap.String("role", u.Role))
	return pair, nil
}

// Refresh exchanges a valid refresh token for a fresh pair. The user row
// is re-read so a role change or deletion takes effect on the next cycle.
func (s *service) Refresh(ctx context.Context, refreshToken string) (TokenPairResponse, error) {
	claims, err := parseToken(refreshToken)
	if err != nil {
		return TokenPairResponse{}, autherrors.ErrInvalidRefreshToken
	}

	tokenType, _ := claims["token_type"].(string)
	if tokenType != "refresh" {
		return TokenPairResponse{}, autherrors.ErrInvalidRefreshToken
	}

	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return TokenPairResponse{}, autherrors.ErrInvalidRefreshToken
	}

	u, err := s.store.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TokenPairResponse{}, autherrors.ErrInvalidRefreshToken
		}
		return TokenPairResponse{}, err
	}

	return issueTokenPair(u)
}

func (s *service) Session(ctx context.Context, userID string) (SessionResponse, error) {
	u, err := s.store.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SessionResponse{}, autherrors.ErrUserNotFound
		}
		return SessionResponse{}, err
	}

	return SessionResponse{
		UserID:    u.ID.String(),
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
	}, nil
}

func issueTokenPair(u *user.User) (TokenPairResponse, error) {
	now := time.Now()

	access, err := signToken(jwt.MapClaims{
		"user_id":    u.ID.String(),
		"username":   u.Username,
		"role":       u.Role,
		"token_type": "access",
		"iat":        now.Unix(),
		"exp":        now.Add(accessTokenTTL).Unix(),
	})
	if err != nil {
		return TokenPairResponse{}, err
	}

	refresh, err := signToken(jwt.MapClaims{
		"user_id":    u.ID.String(),
		"token_type": "refresh",
		"iat":        now.Unix(),
		"exp":        now.Add(refreshTokenTTL).Unix(),
	})
	if err != nil {
		return TokenPairResponse{}, err
	}

	return TokenPairResponse{AccessToken: access, RefreshToken: refresh}, nil
}

func signToken(claims jwt.MapClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

func parseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return nil, autherrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, autherrors.ErrInvalidToken
	}
	return claims, nil
}
