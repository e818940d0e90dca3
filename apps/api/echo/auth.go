package echoapi

import (
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/trezcool/mahudhurio/core"
)

const serviceTokenValidity = 24 * time.Hour

// newAppJWTConfig returns the JWT auth middleware config guarding the API.
func newAppJWTConfig(conf *core.Config) middleware.JWTConfig {
	return middleware.JWTConfig{
		SigningKey:    []byte(conf.SecretKey),
		SigningMethod: middleware.AlgorithmHS256,
		ContextKey:    "serviceToken",
		Claims:        new(Claims),
	}
}

// Claims represents the authorization claims transmitted via a JWT.
// The API is called service-to-service; Client names the calling service.
type Claims struct {
	jwt.StandardClaims
	Client string `json:"client,omitempty"`
}

// GenerateServiceToken generates a signed JWT token string for a calling service.
func GenerateServiceToken(conf *core.Config, client string) (string, error) {
	now := time.Now()
	claims := &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    conf.AppName,
			Subject:   client,
			ExpiresAt: now.Add(serviceTokenValidity).Unix(),
			IssuedAt:  now.Unix(),
		},
		Client: client,
	}

	token := jwt.NewWithClaims(jwt.GetSigningMethod(middleware.AlgorithmHS256), claims)
	ss, err := token.SignedString([]byte(conf.SecretKey))
	if err != nil {
		return "", errors.Wrap(err, "signing token")
	}
	return ss, nil
}
