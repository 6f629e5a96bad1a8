package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const DefaultTokenTTL = 24 * time.Hour

type Claims struct {
	AccountID    int64  `json:"accountId"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	IsAdmin      bool   `json:"isAdmin"`
	EmployeeID   *int64 `json:"employeeId"`
	DepartmentID *int64 `json:"departmentId,omitempty"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies HS256 session tokens. Now defaults to time.Now.
type Issuer struct {
	Secret []byte
	TTL    time.Duration
	Now    func() time.Time
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &Issuer{Secret: []byte(secret), TTL: ttl, Now: time.Now}
}

func (i *Issuer) now() time.Time {
	if i.Now == nil {
		return time.Now()
	}
	return i.Now()
}

// Issue signs a token for the account's effective identity.
func (i *Issuer) Issue(a Account) (string, time.Time, error) {
	issuedAt := i.now()
	expiresAt := issuedAt.Add(i.TTL)
	claims := Claims{
		AccountID:    a.ID,
		Email:        a.Email,
		Role:         a.EffectiveRole(),
		IsAdmin:      a.IsAdmin(),
		EmployeeID:   a.EmployeeID,
		DepartmentID: a.DepartmentID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(a.ID, 10),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.Secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Parse verifies signature, algorithm and expiry.
func (i *Issuer) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return i.Secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (c *Claims) UserContext() UserContext {
	user := UserContext{
		AccountID:    c.AccountID,
		Email:        c.Email,
		Role:         c.Role,
		IsAdmin:      c.IsAdmin,
		EmployeeID:   c.EmployeeID,
		DepartmentID: c.DepartmentID,
	}
	if c.ExpiresAt != nil {
		user.ExpiresAt = c.ExpiresAt.Time
	}
	return user
}
