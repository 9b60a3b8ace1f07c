package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"realty/internal/app/services/auth"
)

var ErrTokenInvalid = errors.New("security: token invalid")

const (
	tokenUseAccess  = "access"
	tokenUseRefresh = "refresh"
)

type jwtClaims struct {
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
	Use   string `json:"use"`
	jwt.RegisteredClaims
}

// JWTIssuer signs HS256 access/refresh pairs with a shared secret.
type JWTIssuer struct {
	Secret     []byte
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	Now        func() time.Time
}

func (i JWTIssuer) IssuePair(userID, email, role string) (auth.TokenPair, error) {
	now := i.now()
	accessExp := now.Add(i.accessTTL())

	access, err := i.sign(jwtClaims{
		Email: email,
		Role:  role,
		Use:   tokenUseAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(accessExp),
		},
	})
	if err != nil {
		return auth.TokenPair{}, err
	}
	// The refresh token doubles as the allow-list key, so each one needs
	// a unique id even when two pairs are minted within the same second.
	refresh, err := i.sign(jwtClaims{
		Use: tokenUseRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.refreshTTL())),
		},
	})
	if err != nil {
		return auth.TokenPair{}, err
	}
	return auth.TokenPair{Access: access, Refresh: refresh, ExpiresAt: accessExp}, nil
}

func (i JWTIssuer) ParseAccess(token string) (auth.Claims, error) {
	return i.parse(token, tokenUseAccess)
}

func (i JWTIssuer) ParseRefresh(token string) (auth.Claims, error) {
	return i.parse(token, tokenUseRefresh)
}

func (i JWTIssuer) sign(claims jwtClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.Secret)
	if err != nil {
		return "", fmt.Errorf("security: sign token: %w", err)
	}
	return signed, nil
}

func (i JWTIssuer) parse(raw, use string) (auth.Claims, error) {
	var claims jwtClaims
	token, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("security: unexpected signing method %v", t.Header["alg"])
		}
		return i.Secret, nil
	}, jwt.WithTimeFunc(i.now))
	if err != nil || !token.Valid {
		return auth.Claims{}, ErrTokenInvalid
	}
	if claims.Use != use {
		return auth.Claims{}, ErrTokenInvalid
	}
	return auth.Claims{
		UserID: claims.Subject,
		Email:  claims.Email,
		Role:   claims.Role,
	}, nil
}

func (i JWTIssuer) accessTTL() time.Duration {
	if i.AccessTTL > 0 {
		return i.AccessTTL
	}
	return 15 * time.Minute
}

func (i JWTIssuer) refreshTTL() time.Duration {
	if i.RefreshTTL > 0 {
		return i.RefreshTTL
	}
	return 30 * 24 * time.Hour
}

func (i JWTIssuer) now() time.Time {
	if i.Now != nil {
		return i.Now()
	}
	return time.Now()
}

var _ auth.TokenIssuer = JWTIssuer{}
