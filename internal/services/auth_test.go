package services

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuth(t *testing.T, ttl time.Duration) *AuthService {
	t.Helper()
	s, err := NewAuthService(AuthConfig{
		Username:  "admin",
		Password:  "s3cret",
		Secret:    "signing-key",
		Algorithm: "HS256",
		TTL:       ttl,
	})
	if err != nil {
		t.Fatalf("NewAuthService() error = %v", err)
	}
	return s
}

func TestLogin(t *testing.T) {
	s := newTestAuth(t, 0)

	tests := []struct {
		name     string
		username string
		password string
		wantErr  bool
	}{
		{"valid", "admin", "s3cret", false},
		{"wrong password", "admin", "nope", true},
		{"wrong username", "root", "s3cret", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := s.Login(tt.username, tt.password)
			if tt.wantErr {
				if !errors.Is(err, ErrUnauthorized) {
					t.Fatalf("Login() error = %v, want ErrUnauthorized", err)
				}
				return
			}
			if err != nil || token == "" {
				t.Fatalf("Login() = (%q, %v), want token", token, err)
			}
		})
	}
}

func TestLoginWithPrecomputedHash(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("from-hash"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	s, err := NewAuthService(AuthConfig{
		Username:     "admin",
		PasswordHash: string(hash),
		Secret:       "k",
		Algorithm:    "HS384",
	})
	if err != nil {
		t.Fatalf("NewAuthService() error = %v", err)
	}
	if _, err := s.Login("admin", "from-hash"); err != nil {
		t.Fatalf("Login() error = %v", err)
	}
}

func TestTokenHasNoExpiryByDefault(t *testing.T) {
	s := newTestAuth(t, 0)

	token, err := s.Login("admin", "s3cret")
	if err != nil {
		t.Fatal(err)
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		t.Fatal(err)
	}
	if _, ok := claims["exp"]; ok {
		t.Error("token carries exp claim, want none")
	}
	if claims["sub"] != "admin" {
		t.Errorf("sub = %v, want admin", claims["sub"])
	}

	// Far in the future the token is still accepted.
	s.now = func() time.Time { return time.Now().AddDate(10, 0, 0) }
	if sub, err := s.ValidateToken(token); err != nil || sub != "admin" {
		t.Fatalf("ValidateToken() = (%q, %v), want admin", sub, err)
	}
}

func TestTokenExpiresWhenConfigured(t *testing.T) {
	s := newTestAuth(t, time.Minute)

	token, err := s.Login("admin", "s3cret")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.ValidateToken(token); err != nil {
		t.Fatalf("fresh token rejected: %v", err)
	}

	s.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	if _, err := s.ValidateToken(token); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expired token error = %v, want ErrUnauthorized", err)
	}
}

func TestValidateTokenRejects(t *testing.T) {
	s := newTestAuth(t, 0)

	rotated, err := NewAuthService(AuthConfig{Username: "admin", Password: "s3cret", Secret: "other-key", Algorithm: "HS256"})
	if err != nil {
		t.Fatal(err)
	}
	otherSecretToken, _ := rotated.GenerateToken("admin")
	wrongSubject, _ := s.GenerateToken("mallory")
	emptySubject, _ := s.GenerateToken("")
	hs512, _ := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.RegisteredClaims{Subject: "admin"}).SignedString([]byte("signing-key"))

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"rotated secret", otherSecretToken},
		{"wrong subject", wrongSubject},
		{"empty subject", emptySubject},
		{"other algorithm", hs512},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.ValidateToken(tt.token); !errors.Is(err, ErrUnauthorized) {
				t.Errorf("ValidateToken() error = %v, want ErrUnauthorized", err)
			}
		})
	}
}

func TestNewAuthServiceRejectsNonHMAC(t *testing.T) {
	_, err := NewAuthService(AuthConfig{Username: "admin", Password: "x", Secret: "k", Algorithm: "RS256"})
	if err == nil {
		t.Fatal("NewAuthService(RS256) succeeded")
	}
}
