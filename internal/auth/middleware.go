package auth

import (
	"fmt"
	"net/http"
	"strings"

	"gamevault/backend/internal/config"

	"github.com/gin-gonic/gin"
	gojwt "github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware rejects requests without a valid bearer token and sets the
// authenticated username on the context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		username, ok := usernameFromHeader(c.GetHeader("Authorization"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		c.Set("username", username)
		c.Next()
	}
}

// OptionalAuthMiddleware inspects for a token and sets the username if present
// and valid, but does not fail if the token is missing or invalid.
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if username, ok := usernameFromHeader(c.GetHeader("Authorization")); ok {
			c.Set("username", username)
		}
		c.Next()
	}
}

func usernameFromHeader(authHeader string) (string, bool) {
	if authHeader == "" {
		return "", false
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}

	token, err := gojwt.Parse(parts[1], func(token *gojwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*gojwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(config.AppConfig.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return "", false
	}

	claims, ok := token.Claims.(gojwt.MapClaims)
	if !ok {
		return "", false
	}
	username, ok := claims["sub"].(string)
	if !ok || username == "" {
		return "", false
	}
	return username, true
}
