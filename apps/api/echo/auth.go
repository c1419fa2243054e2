package echoapi

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/kazadi/elimu/core"
	"github.com/kazadi/elimu/core/role"
	"github.com/kazadi/elimu/core/user"
)

var contextClaimsKey = "claims"

type (
	// RoleClaim carries the caller's role inside the token payload.
	RoleClaim struct {
		ID   string `json:"_id,omitempty"`
		Name string `json:"roleName,omitempty"`
	}

	// Claims represents the authorization claims transmitted via a JWT.
	Claims struct {
		jwt.RegisteredClaims
		Role RoleClaim `json:"role,omitempty"`
	}
)

func (c Claims) isInstructor() bool {
	return strings.EqualFold(c.Role.Name, role.Instructor)
}

func GetUserClaims(conf *core.Config, usr user.User, rl role.Role) *Claims {
	now := time.Now()
	return &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    conf.AppName,
			Subject:   usr.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(conf.Server.JWTExpirationDelta)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Role: RoleClaim{ID: rl.ID, Name: rl.Name},
	}
}

// GenerateToken generates a signed JWT token string representing the user Claims.
func GenerateToken(conf *core.Config, claims *Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	ss, err := token.SignedString([]byte(conf.SecretKey))
	if err != nil {
		return "", errors.Wrap(err, "signing token")
	}
	return ss, nil
}

func parseToken(conf *core.Config, raw string) (*Claims, error) {
	claims := new(Claims)
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return []byte(conf.SecretKey), nil
	})
	if err != nil || !token.Valid {
		return nil, errInvalidToken
	}
	return claims, nil
}

// authGuardMiddleware requires a valid bearer token and attaches the decoded
// identity to the request context. Missing token -> 401; bad signature,
// expired token or incomplete payload -> 403.
func authGuardMiddleware(conf *core.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			header := ctx.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return errMissingToken
			}
			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
				return errMissingToken
			}

			claims, err := parseToken(conf, parts[1])
			if err != nil {
				return err
			}
			if claims.Subject == "" || claims.Role.Name == "" {
				return errInvalidPayload
			}

			ctx.Set(contextClaimsKey, *claims)
			return next(ctx)
		}
	}
}

func getContextClaims(ctx echo.Context) (Claims, error) {
	if claims, ok := ctx.Get(contextClaimsKey).(Claims); ok {
		return claims, nil
	}
	return Claims{}, errMissingToken
}

// instructorMiddleware restricts a route to callers whose role is instructor.
// Row-level ownership is not re-checked.
func instructorMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := getContextClaims(ctx)
			if err != nil {
				return errors.Wrap(err, "getting context claims")
			}
			if !claims.isInstructor() {
				return errHttpForbidden
			}
			return next(ctx)
		}
	}
}
