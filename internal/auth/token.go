package auth

import (
	"crypto/rsa"
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// TokenUser is the identity embedded in issued tokens.
type TokenUser struct {
	ID string `json:"id"`
}

// Claims describes the JWT payload. The user object carries the subject id.
type Claims struct {
	User TokenUser `json:"user"`
	jwt.RegisteredClaims
}

// TokenManager handles issuing and verifying RS256 JWT tokens.
type TokenManager struct {
	private *rsa.PrivateKey
	public  *rsa.PublicKey
	ttl     time.Duration
}

// NewTokenManager builds a new manager.
func NewTokenManager(private *rsa.PrivateKey, public *rsa.PublicKey, ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = 48 * time.Hour
	}
	return &TokenManager{private: private, public: public, ttl: ttl}
}

// Issue builds and signs a JWT for the user id.
func (tm *TokenManager) Issue(userID string) (string, time.Time, error) {
	expiresAt := time.Now().Add(tm.ttl)
	claims := &Claims{
		User: TokenUser{ID: userID},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	tokenString, err := token.SignedString(tm.private)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// Verify validates a raw token against the public key and returns the
// embedded user.
func (tm *TokenManager) Verify(tokenStr string) (*TokenUser, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodRS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.public, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token claims")
	}
	if claims.User.ID == "" {
		return nil, errors.New("token missing user id")
	}
	return &claims.User, nil
}
