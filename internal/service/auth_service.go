package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"quizly/internal/config"
	"quizly/internal/domain"
	"quizly/internal/dto"
	"quizly/internal/logger"
	"quizly/internal/repository"
	"quizly/internal/util"
	"quizly/internal/validation"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

var ErrInvalidJWTToken = errors.New("invalid jwt token")

// AuthService defines the interface for authentication operations.
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, username, password string) (accessToken, refreshToken string, user *dto.UserResponse, err error)
	Logout(ctx context.Context, refreshTokenString string) error
	Refresh(ctx context.Context, refreshTokenString string) (newAccessToken string, err error)
	ValidateAccessToken(ctx context.Context, tokenString string) (*dto.AuthClaims, error)
}

type authServiceImpl struct {
	userRepo  repository.UserRepository
	blacklist domain.TokenBlacklist
	appConfig *config.Config
	validator *validation.Validator
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(userRepo repository.UserRepository, blacklist domain.TokenBlacklist, appConfig *config.Config) (AuthService, error) {
	if len(appConfig.JWT.SecretKey) < 32 {
		return nil, errors.New("JWT secret key must be at least 32 bytes long")
	}
	return &authServiceImpl{
		userRepo:  userRepo,
		blacklist: blacklist,
		appConfig: appConfig,
		validator: validation.NewValidator(),
	}, nil
}

// Register creates a new user after validating the payload and
// hashing the password. Duplicate username/email surfaces as a
// DUPLICATE_ENTRY error from the repository.
func (s *authServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	if errs := s.validator.ValidateRegisterRequest(req.Username, req.Email, req.Password, req.ConfirmedPassword); len(errs) > 0 {
		return nil, errs
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, domain.NewInternalError("Failed to hash password", err)
	}

	user := &domain.User{
		ID:           util.NewULID(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
	}
	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	logger.Get().Info("User registered", zap.String("user_id", user.ID), zap.String("username", user.Username))
	return &dto.UserResponse{ID: user.ID, Username: user.Username, Email: user.Email}, nil
}

// Login verifies the credentials and issues an access/refresh token
// pair. The same UNAUTHORIZED error covers unknown username and wrong
// password so the response does not leak which one failed.
func (s *authServiceImpl) Login(ctx context.Context, username, password string) (string, string, *dto.UserResponse, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return "", "", nil, domain.NewInternalError("Failed to look up user", err)
	}
	if user == nil {
		return "", "", nil, domain.NewUnauthorizedError("Invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", "", nil, domain.NewUnauthorizedError("Invalid credentials")
	}

	accessToken, err := s.createJWT(user.ID, s.appConfig.JWT.AccessTokenTTL, tokenTypeAccess)
	if err != nil {
		return "", "", nil, domain.NewInternalError("Failed to create access token", err)
	}
	refreshToken, err := s.createJWT(user.ID, s.appConfig.JWT.RefreshTokenTTL, tokenTypeRefresh)
	if err != nil {
		return "", "", nil, domain.NewInternalError("Failed to create refresh token", err)
	}

	logger.Get().Info("User logged in", zap.String("user_id", user.ID))
	return accessToken, refreshToken, &dto.UserResponse{ID: user.ID, Username: user.Username, Email: user.Email}, nil
}

// Logout blacklists the refresh token for its remaining lifetime. An
// already-invalid token is not an error: the caller ends up logged out
// either way.
func (s *authServiceImpl) Logout(ctx context.Context, refreshTokenString string) error {
	claims, err := s.validateJWT(refreshTokenString)
	if err != nil {
		return nil
	}
	if claims.TokenType != tokenTypeRefresh || claims.ExpiresAt == nil {
		return nil
	}

	ttl := int64(time.Until(claims.ExpiresAt.Time).Seconds())
	if err := s.blacklist.Revoke(ctx, claims.ID, ttl); err != nil {
		return domain.NewInternalError("Failed to revoke refresh token", err)
	}
	logger.Get().Info("Refresh token revoked", zap.String("user_id", claims.UserID))
	return nil
}

// Refresh validates the refresh token, rejects revoked ones, and
// issues a fresh access token.
func (s *authServiceImpl) Refresh(ctx context.Context, refreshTokenString string) (string, error) {
	claims, err := s.validateJWT(refreshTokenString)
	if err != nil {
		return "", domain.NewUnauthorizedError("Invalid refresh token")
	}
	if claims.TokenType != tokenTypeRefresh {
		return "", domain.NewUnauthorizedError("Not a refresh token")
	}

	revoked, err := s.blacklist.IsRevoked(ctx, claims.ID)
	if err != nil {
		return "", domain.NewInternalError("Failed to check token blacklist", err)
	}
	if revoked {
		return "", domain.NewUnauthorizedError("Refresh token has been revoked")
	}

	user, err := s.userRepo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		return "", domain.NewInternalError("Failed to look up user", err)
	}
	if user == nil {
		return "", domain.NewUnauthorizedError("User no longer exists")
	}

	newAccessToken, err := s.createJWT(user.ID, s.appConfig.JWT.AccessTokenTTL, tokenTypeAccess)
	if err != nil {
		return "", domain.NewInternalError("Failed to create access token", err)
	}
	logger.Get().Info("Access token refreshed", zap.String("user_id", user.ID))
	return newAccessToken, nil
}

// ValidateAccessToken parses the token and ensures it is an access
// token. Used by the auth middleware.
func (s *authServiceImpl) ValidateAccessToken(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
	claims, err := s.validateJWT(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != tokenTypeAccess {
		return nil, fmt.Errorf("%w: expected access token, got %s", ErrInvalidJWTToken, claims.TokenType)
	}
	return claims, nil
}

func (s *authServiceImpl) createJWT(userID string, ttl time.Duration, tokenType string) (string, error) {
	now := time.Now()
	claims := dto.AuthClaims{
		UserID:    userID,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        util.NewULID(),
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.appConfig.JWT.SecretKey))
}

func (s *authServiceImpl) validateJWT(tokenString string) (*dto.AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &dto.AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.appConfig.JWT.SecretKey), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJWTToken, err)
	}
	if claims, ok := token.Claims.(*dto.AuthClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, ErrInvalidJWTToken
}
