package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"swiftserve/internal/core/domain/model/account"
	"swiftserve/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// actorContextKey is where the session gate stores the authenticated Actor
// on the echo context.
const actorContextKey = "swiftserve.actor"

// accessTokenCookie is the browser-facing token carrier; API clients use
// the Authorization header instead.
const accessTokenCookie = "access_token"

// sessionTokenTTL bounds how long an issued session token stays valid.
const sessionTokenTTL = 24 * time.Hour

// ErrNoSession is returned by ActorFrom when the request carried no valid
// session.
var ErrNoSession = errors.New("request has no authenticated session")

// SessionClaims is the JWT payload the session gate trusts. The identity
// service signs these at login; the core never sees the token itself, only
// the (caller id, role) pair.
type SessionClaims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// SessionGate authenticates requests and attaches the caller's Actor to the
// request context. It accepts the token from the access_token cookie or a
// Bearer Authorization header.
type SessionGate struct {
	secret []byte
}

// NewSessionGate creates a session gate verifying tokens with the given
// HMAC secret.
func NewSessionGate(secret []byte) *SessionGate {
	return &SessionGate{secret: secret}
}

// IssueToken signs a session token for the given actor. Used by tooling and
// tests; production tokens come from the identity service sharing the same
// secret.
func (g *SessionGate) IssueToken(actor account.Actor) (string, error) {
	claims := SessionClaims{
		UserID: actor.ID().String(),
		Role:   actor.Role().String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(sessionTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(g.secret)
}

// Middleware rejects requests without a valid session with 401 and stores
// the authenticated Actor for handlers behind it.
func (g *SessionGate) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenStr, ok := g.extractToken(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}

			actor, err := g.parseActor(tokenStr)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid session")
			}

			c.Set(actorContextKey, actor)
			return next(c)
		}
	}
}

// ActorFrom retrieves the authenticated Actor stored by the middleware.
// Returns ErrNoSession if the handler runs outside the gate.
func ActorFrom(c echo.Context) (account.Actor, error) {
	actor, ok := c.Get(actorContextKey).(account.Actor)
	if !ok {
		return account.Actor{}, ErrNoSession
	}
	return actor, nil
}

func (g *SessionGate) extractToken(c echo.Context) (string, bool) {
	if cookie, err := c.Cookie(accessTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value, true
	}

	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer "), true
	}

	return "", false
}

func (g *SessionGate) parseActor(tokenStr string) (account.Actor, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&SessionClaims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return g.secret, nil
		},
	)
	if err != nil {
		return account.Actor{}, err
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return account.Actor{}, errors.New("invalid token")
	}

	id, err := kernel.UUIDFromString(claims.UserID)
	if err != nil {
		return account.Actor{}, err
	}

	role, err := account.ParseRole(claims.Role)
	if err != nil {
		return account.Actor{}, err
	}

	return account.NewActor(id, role)
}
