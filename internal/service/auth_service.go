package service

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"gayish/internal/model"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// AuthService issues and validates anonymous device tokens. The app has no
// accounts; a device registers once and keeps its token.
type AuthService struct {
	jwtSecret []byte
}

// NewAuthService creates a new auth service.
func NewAuthService() *AuthService {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "super-secret-key-change-in-production"
	}
	return &AuthService{jwtSecret: []byte(secret)}
}

// RegisterDevice mints a fresh device identity and its permanent token.
func (s *AuthService) RegisterDevice() (*model.RegisterDeviceResponse, error) {
	deviceID := "dev_" + uuid.New().String()[:8]

	claims := &model.DeviceClaims{
		DeviceID: deviceID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(time.Now()),
			// No expiry - the token is the device's only identity
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, err
	}

	return &model.RegisterDeviceResponse{
		Token:    tokenString,
		DeviceID: deviceID,
	}, nil
}

// ValidateDeviceToken validates a device JWT and returns its claims.
func (s *AuthService) ValidateDeviceToken(tokenString string) (*model.DeviceClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &model.DeviceClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*model.DeviceClaims)
	if !ok || !token.Valid || claims.DeviceID == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
