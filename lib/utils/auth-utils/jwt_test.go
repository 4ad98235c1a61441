package authutils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestSessionToken(t *testing.T) {
	secret := "secret"
	t.Run(`round trip`, func(t *testing.T) {
		tokenString, err := GetSessionToken("s1", secret, time.Hour)
		require.NoError(t, err)

		claims := jwt.MapClaims{}
		_, err = jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		})
		require.NoError(t, err)
		sessionID, err := SessionIDFromClaims(claims)
		require.NoError(t, err)
		require.Equal(t, "s1", sessionID)
	})
	t.Run(`expired token`, func(t *testing.T) {
		tokenString, err := GetSessionToken("s1", secret, -time.Minute)
		require.NoError(t, err)
		_, err = jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		})
		require.ErrorIs(t, err, jwt.ErrTokenExpired)
	})
	t.Run(`foreign claims`, func(t *testing.T) {
		_, err := SessionIDFromClaims(jwt.MapClaims{"sub": "user"})
		require.Error(t, err)
		_, err = SessionIDFromClaims(jwt.MapClaims{"typ": "interview"})
		require.Error(t, err)
	})
}
