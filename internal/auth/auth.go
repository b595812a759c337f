package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/unilanding/cms-backend/internal"
	"golang.org/x/crypto/bcrypt"
)

type ServiceAPI interface {
	Register(dto RegisterDTO) (*RegisteredUser, error)
	RegisterSeed(dto RegisterDTO) (*RegisteredUser, error)
	Login(dto LoginDTO) (*RegisteredUser, error)
	CheckStatus(userID int64) (*RegisteredUser, error)
	ValidateAccessToken(tokenString string) (*Claims, error)
	GetAuthUser(userID int64) (*internal.AuthUser, error)
	UpdateUser(idOrCode string, dto UpdateUserDTO) (*User, error)
	Disable(idOrCode string) (*User, error)
	Enable(idOrCode string) (*User, error)
	ActiveUser(idOrCode string) (*User, error)
}

type TokenGeneratorAPI interface {
	GenerateAccessToken(userID string, email string) (string, error)
	GenerateRefreshToken(userID string, email string) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

// User is the sanitized account view returned by lifecycle operations.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	ExternalCode string    `json:"external_code"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RegisteredUser pairs an account with freshly issued tokens, the response
// shape for register and login.
type RegisteredUser struct {
	User   User       `json:"user"`
	Tokens AuthTokens `json:"tokens"`
}

type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Claims represents JWT token claims
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

type JWTTokenGenerator struct {
	AccessTokenSecret  []byte
	RefreshTokenSecret []byte
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
}

var (
	ErrUserNotFound        = internal.NewNotFoundError("User not found", internal.ErrCodeUserNotFound)
	ErrUserAlreadyDisabled = internal.NewConflictError("User is already disabled", internal.ErrCodeUserAlreadyDisabled)
	ErrUserAlreadyActive   = internal.NewConflictError("User is already active", internal.ErrCodeUserAlreadyActive)
	ErrDuplicateUser       = internal.NewConflictError("A user with this email or code already exists", internal.ErrCodeDuplicateUser)
)

// NewJWTTokenGenerator creates a new JWT token generator
func NewJWTTokenGenerator(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *JWTTokenGenerator {
	return &JWTTokenGenerator{
		AccessTokenSecret:  []byte(accessSecret),
		RefreshTokenSecret: []byte(refreshSecret),
		AccessTokenTTL:     accessTTL,
		RefreshTokenTTL:    refreshTTL,
	}
}

// GenerateAccessToken creates a new access token
func (j *JWTTokenGenerator) GenerateAccessToken(userID string, email string) (string, error) {
	return j.sign(userID, email, j.AccessTokenSecret, j.AccessTokenTTL)
}

// GenerateRefreshToken creates a new refresh token
func (j *JWTTokenGenerator) GenerateRefreshToken(userID string, email string) (string, error) {
	return j.sign(userID, email, j.RefreshTokenSecret, j.RefreshTokenTTL)
}

func (j *JWTTokenGenerator) sign(userID, email string, secret []byte, ttl time.Duration) (string, error) {
	expiresAt := time.Now().Add(ttl)

	claims := &Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   userID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ValidateToken validates a JWT token and returns claims
func (j *JWTTokenGenerator) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		// Refresh tokens live long enough that the remaining lifetime tells
		// the two secrets apart.
		if claims, ok := token.Claims.(*Claims); ok {
			if time.Until(claims.ExpiresAt.Time) > j.AccessTokenTTL {
				return j.RefreshTokenSecret, nil
			}
		}
		return j.AccessTokenSecret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, internal.ErrTokenExpired
		}
		return nil, internal.ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, internal.ErrInvalidToken
}

func VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
