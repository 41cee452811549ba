package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/macrolog/backend/internal/models"
	"github.com/macrolog/backend/internal/types"
)

const tokenLifetime = 24 * time.Hour

// AuthService issues and validates session tokens. When a Redis client is
// configured, issued tokens are tracked so sign-out actually invalidates
// the session instead of waiting for expiry.
type AuthService struct {
	db        *gorm.DB
	jwtSecret string
	redis     *redis.Client
}

func NewAuthService(db *gorm.DB, jwtSecret string, redisClient *redis.Client) *AuthService {
	return &AuthService{
		db:        db,
		jwtSecret: jwtSecret,
		redis:     redisClient,
	}
}

// Register creates a user plus their profile record and returns a session token.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*models.User, string, error) {
	var existing models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, "", ErrUserExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashed),
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	profile := models.Profile{
		UserID:   user.ID,
		Email:    email,
		FullName: name,
	}
	if err := s.db.WithContext(ctx).Create(&profile).Error; err != nil {
		return nil, "", fmt.Errorf("failed to create profile: %w", err)
	}

	token, err := s.GenerateToken(ctx, user.ID, user.Email)
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

// Login verifies credentials and returns a session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.GenerateToken(ctx, user.ID, user.Email)
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

// GenerateToken signs a session JWT and registers it in the session store.
func (s *AuthService) GenerateToken(ctx context.Context, userID uuid.UUID, email string) (string, error) {
	now := time.Now()
	claims := types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenLifetime)),
		},
		UserID: userID,
		Email:  email,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims)
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", err
	}

	if s.redis != nil {
		key := sessionKey(claims.ID)
		if err := s.redis.Set(ctx, key, userID.String(), tokenLifetime).Err(); err != nil {
			log.Printf("auth: failed to register session %s: %v", claims.ID, err)
		}
	}

	return signed, nil
}

// ValidateToken parses a session JWT and, when a session store is
// configured, confirms the session has not been signed out.
func (s *AuthService) ValidateToken(ctx context.Context, tokenString string) (*types.TokenClaims, error) {
	var claims types.TokenClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	if s.redis != nil && claims.ID != "" {
		if err := s.redis.Get(ctx, sessionKey(claims.ID)).Err(); err == redis.Nil {
			return nil, errors.New("session expired")
		}
	}

	return &claims, nil
}

// Logout invalidates the session behind the given token. Unknown or
// already-expired tokens are a no-op.
func (s *AuthService) Logout(ctx context.Context, tokenString string) error {
	claims, err := s.ValidateToken(ctx, tokenString)
	if err != nil {
		return nil
	}
	if s.redis != nil && claims.ID != "" {
		return s.redis.Del(ctx, sessionKey(claims.ID)).Err()
	}
	return nil
}

func sessionKey(tokenID string) string {
	return "session:" + tokenID
}
