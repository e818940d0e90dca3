package echoapi

import (
	"testing"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
)

func Test_GenerateServiceToken(t *testing.T) {
	conf := testConfig()

	ss, err := GenerateServiceToken(conf, "lms-portal")
	assert.NoError(t, err)
	assert.NotEmpty(t, ss)

	claims := new(Claims)
	token, err := jwt.ParseWithClaims(ss, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(conf.SecretKey), nil
	})
	assert.NoError(t, err)
	assert.True(t, token.Valid)
	assert.Equal(t, "lms-portal", claims.Client)
	assert.Equal(t, "lms-portal", claims.Subject)
	assert.Equal(t, conf.AppName, claims.Issuer)
}
