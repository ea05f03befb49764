// Package auth implements registration, credential checks and bearer-token
// issuance. Passwords are stored as bcrypt hashes and never leave storage.
package auth

import (
	"strconv"
	"time"

	"grievance/backend/internal/apperr"
	"grievance/backend/internal/models"

	jwt "github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// UserStore is the slice of storage the auth service needs.
type UserStore interface {
	CreateUser(user *models.User) error
	GetUserByEmail(email string) (*models.User, error)
}

// Failed logins use one message for unknown emails and wrong passwords so
// callers cannot probe which accounts exist.
const invalidCredentials = "invalid credentials"

// Claims is the JWT payload for authenticated callers.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// Service handles identity operations.
type Service struct {
	Storage  UserStore
	Secret   []byte
	TokenTTL time.Duration
}

// NewService creates a new auth service.
func NewService(s UserStore, secret string, tokenTTL time.Duration) *Service {
	return &Service{Storage: s, Secret: []byte(secret), TokenTTL: tokenTTL}
}

// Register creates a general-role user with a hashed password. It reports
// every missing field at once, and fails without side effects when the email
// is already taken.
func (s *Service) Register(name, email, password, address, pincode string) (*models.User, error) {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"name", name},
		{"email", email},
		{"password", password},
		{"address", address},
		{"pincode", pincode},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return nil, apperr.Validation(missing...)
	}

	existing, err := s.Storage.GetUserByEmail(email)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if existing != nil {
		return nil, apperr.Conflict("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Storage(err)
	}

	user := &models.User{
		Name:     name,
		Email:    email,
		Password: string(hash),
		Address:  address,
		Pincode:  pincode,
		Type:     models.RoleGeneral,
	}
	if err := s.Storage.CreateUser(user); err != nil {
		return nil, apperr.Storage(err)
	}
	return user, nil
}

// Authenticate checks credentials and returns the user together with a
// signed bearer token.
func (s *Service) Authenticate(email, password string) (*models.User, string, error) {
	if email == "" || password == "" {
		var missing []string
		if email == "" {
			missing = append(missing, "email")
		}
		if password == "" {
			missing = append(missing, "password")
		}
		return nil, "", apperr.Validation(missing...)
	}

	user, err := s.Storage.GetUserByEmail(email)
	if err != nil {
		return nil, "", apperr.Storage(err)
	}
	if user == nil {
		return nil, "", apperr.Auth(invalidCredentials)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, "", apperr.Auth(invalidCredentials)
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return nil, "", apperr.Storage(err)
	}
	return user, token, nil
}

// IssueToken signs a bearer token carrying the user id and role.
func (s *Service) IssueToken(user *models.User) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "grievance-service",
		},
		Role: user.Type,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.Secret)
}

// ParseToken validates a bearer token and returns its claims.
func (s *Service) ParseToken(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return s.Secret, nil
	})
	if err != nil || !token.Valid {
		return nil, apperr.Auth("invalid token")
	}
	if claims.Subject == "" {
		return nil, apperr.Auth("invalid token subject")
	}
	return claims, nil
}
