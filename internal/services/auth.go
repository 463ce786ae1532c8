package services

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthService checks the single configured admin credential and issues
// bearer tokens. With a zero ttl tokens carry no exp claim and stay valid
// until the secret changes.
type AuthService struct {
	username     string
	passwordHash []byte
	secret       []byte
	method       jwt.SigningMethod
	ttl          time.Duration
	now          func() time.Time
}

type AuthConfig struct {
	Username     string
	Password     string
	PasswordHash string
	Secret       string
	Algorithm    string
	TTL          time.Duration
}

func NewAuthService(cfg AuthConfig) (*AuthService, error) {
	method := jwt.GetSigningMethod(cfg.Algorithm)
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, errors.New("unsupported signing algorithm: " + cfg.Algorithm)
	}

	hash := []byte(cfg.PasswordHash)
	if len(hash) == 0 {
		var err error
		hash, err = bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
	}

	return &AuthService{
		username:     cfg.Username,
		passwordHash: hash,
		secret:       []byte(cfg.Secret),
		method:       method,
		ttl:          cfg.TTL,
		now:          time.Now,
	}, nil
}

func (s *AuthService) Login(username, password string) (string, error) {
	if username != s.username {
		return "", newError(ErrUnauthorized, "incorrect username or password")
	}
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		return "", newError(ErrUnauthorized, "incorrect username or password")
	}
	return s.GenerateToken(username)
}

func (s *AuthService) GenerateToken(subject string) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:  subject,
		IssuedAt: jwt.NewNumericDate(now),
		ID:       uuid.NewString(),
	}
	if s.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.ttl))
	}
	token := jwt.NewWithClaims(s.method, claims)
	return token.SignedString(s.secret)
}

// ValidateToken returns the admin username carried by a valid token.
func (s *AuthService) ValidateToken(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{s.method.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid {
		return "", newError(ErrUnauthorized, "invalid credentials")
	}

	if claims.Subject == "" || claims.Subject != s.username {
		return "", newError(ErrUnauthorized, "invalid credentials")
	}
	return claims.Subject, nil
}
