package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 15 * time.Minute

var ErrInvalidCredentials = errors.New("invalid credentials")

// Authenticator checks the operator credentials and issues the bearer tokens
// required by write routes.
type Authenticator struct {
	secret       []byte
	username     string
	passwordHash []byte
}

func NewAuthenticator(secret, username, passwordHash string) *Authenticator {
	return &Authenticator{
		secret:       []byte(secret),
		username:     username,
		passwordHash: []byte(passwordHash),
	}
}

// Login returns a token when username and password match the operator account.
func (a *Authenticator) Login(username, password string) (string, error) {
	if username != a.username || len(a.passwordHash) == 0 {
		return "", ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password)) != nil {
		return "", ErrInvalidCredentials
	}
	return a.GenerateToken(username)
}

func (a *Authenticator) GenerateToken(username string) (string, error) {
	claims := jwt.MapClaims{
		"sub": username,
		"exp": time.Now().Add(tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.secret)
}

// ParseToken validates tokenStr and returns its subject.
func (a *Authenticator) ParseToken(tokenStr string) (string, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", fmt.Errorf("parse token: %w", err)
	}

	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", errors.New("token has no subject")
	}
	return sub, nil
}

// HashPassword is used by productctl to produce AUTH_ADMIN_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}
