package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"procurement.GO/config"
)

// Claims is the bearer token payload: sub is the user id, org the organization id.
type Claims struct {
	Role           Role `json:"role"`
	OrganizationID uint `json:"org"`
	jwt.RegisteredClaims
}

var (
	errInvalidToken = errors.New("invalid token")
	// ErrEmptySecret is returned when signing or verifying with an empty HMAC key.
	ErrEmptySecret = errors.New("auth: empty token secret")
)

// Middleware authenticates Bearer JWTs signed with secret (HS256) and stores the
// resulting Principal on the request.
func Middleware(secret string) echo.MiddlewareFunc {
	skipper := buildSkipper()
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if skipper(c) {
				return next(c)
			}
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token, found := strings.CutPrefix(header, "Bearer ")
			if !found || token == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "missing bearer token"})
			}
			p, err := ParseToken(secret, token)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "invalid token"})
			}
			SetPrincipal(c, p)
			return next(c)
		}
	}
}

func buildSkipper() middleware.Skipper {
	skipPaths := config.GetAuthSkipperPaths()
	return func(c echo.Context) bool {
		path := c.Path()
		for _, skip := range skipPaths {
			if path == skip {
				return true
			}
		}
		return false
	}
}

// ParseToken validates a signed token and converts its claims to a Principal.
func ParseToken(secret, token string) (Principal, error) {
	if secret == "" {
		return Principal{}, ErrEmptySecret
	}
	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return Principal{}, err
	}
	if !claims.Role.Valid() {
		return Principal{}, fmt.Errorf("%w: unknown role %q", errInvalidToken, claims.Role)
	}
	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return Principal{}, fmt.Errorf("%w: subject %q", errInvalidToken, claims.Subject)
	}
	return Principal{ID: uint(id), Role: claims.Role, OrganizationID: claims.OrganizationID}, nil
}

// IssueToken signs a token for p. Used by tooling and tests; login lives elsewhere.
func IssueToken(secret string, p Principal, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", ErrEmptySecret
	}
	now := time.Now()
	claims := Claims{
		Role:           p.Role,
		OrganizationID: p.OrganizationID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(p.ID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
