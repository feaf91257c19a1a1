package echoapi

import (
	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/yaohuihuang316-coder/darasa/core"
	"github.com/yaohuihuang316-coder/darasa/core/assignment"
)

const actorContextKey = "actorToken"

// Claims are the authorization claims the identity provider signs into its
// tokens. This API only verifies them; it never issues tokens.
type Claims struct {
	jwt.StandardClaims
	Role string `json:"role,omitempty"`
}

func appJWTConfig(conf *core.Config) middleware.JWTConfig {
	return middleware.JWTConfig{
		SigningKey:    []byte(conf.SecretKey),
		SigningMethod: middleware.AlgorithmHS256,
		ContextKey:    actorContextKey,
		Claims:        new(Claims),
	}
}

func getContextClaims(ctx echo.Context) (*Claims, error) {
	if token, ok := ctx.Get(actorContextKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(*Claims); ok {
			return claims, nil
		}
	}
	return nil, errUnauthorized
}

// getContextActor extracts the authenticated Actor from the request token.
func getContextActor(ctx echo.Context) (assignment.Actor, error) {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return assignment.Actor{}, err
	}
	actor := assignment.Actor{
		ID:   claims.Subject,
		Role: assignment.Role(claims.Role),
	}
	if actor.ID == "" || !actor.Role.Valid() {
		return assignment.Actor{}, errUnauthorized
	}
	return actor, nil
}
