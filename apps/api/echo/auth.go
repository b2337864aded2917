package echoapi

import (
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/stepm01/cruzHacks/core"
)

// Identity is fully delegated: tokens are minted by the identity provider
// (or the admin CLI in DEV) and only verified here.
var (
	ExpirationDelta = 24 * time.Hour

	appJWTConfig = middleware.JWTConfig{
		SigningKey:    core.Conf.SecretKey,
		SigningMethod: middleware.AlgorithmHS256,
		ContextKey:    "sessionToken",
		Claims:        new(Claims),
	}
)

// Claims represents the identity claims transmitted via a JWT.
type Claims struct {
	jwt.StandardClaims
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// NewSessionClaims builds claims the way the identity provider issues them.
func NewSessionClaims(uid, name, email string) *Claims {
	now := time.Now()
	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    core.Conf.IdentityIssuer,
			Subject:   uid,
			ExpiresAt: now.Add(ExpirationDelta).Unix(),
			IssuedAt:  now.Unix(),
		},
		Name:  name,
		Email: email,
	}
}

// GenerateToken generates a signed JWT token string representing the Claims.
func GenerateToken(claims *Claims) (string, error) {
	method := jwt.GetSigningMethod(appJWTConfig.SigningMethod)
	token := jwt.NewWithClaims(method, claims)

	ss, err := token.SignedString(appJWTConfig.SigningKey)
	if err != nil {
		return "", errTokenSigningFailed
	}
	return ss, nil
}

func getContextClaims(ctx echo.Context) (Claims, error) {
	if token, ok := ctx.Get(appJWTConfig.ContextKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(*Claims); ok {
			return *claims, nil
		}
	}
	return Claims{}, errUnauthorized
}

// getSession turns verified token claims into an explicit Session. The
// issuer check rejects tokens signed with our key by anything other than the
// identity provider.
func getSession(ctx echo.Context) (core.Session, error) {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return core.Session{}, err
	}
	if !claims.VerifyIssuer(core.Conf.IdentityIssuer, true) {
		return core.Session{}, errUnauthorized
	}
	if claims.Subject == "" {
		return core.Session{}, errUnauthorized
	}
	return core.Session{
		UID:   claims.Subject,
		Name:  claims.Name,
		Email: claims.Email,
	}, nil
}
