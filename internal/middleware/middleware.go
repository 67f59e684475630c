package middleware

import (
	"crypto/subtle"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AuthMiddleware verifies the HS256 access token issued by the identity
// provider and puts the caller's id ("user_id", uuid.UUID) and "email" on
// the context.
func AuthMiddleware(secret string) gin.HandlerFunc {
	jwtSecret := []byte(secret)

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"status":  "error",
				"message": "Authorization header is required",
				"error":   "Missing authorization token",
			})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"status":  "error",
				"message": "Invalid authorization header format",
				"error":   "Use format: Bearer {token}",
			})
			c.Abort()
			return
		}

		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return jwtSecret, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{
				"status":  "error",
				"message": "Invalid or expired token",
				"error":   errorText(err),
			})
			c.Abort()
			return
		}

		sub, _ := claims.GetSubject()
		userID, err := uuid.Parse(sub)
		email, _ := claims["email"].(string)
		if err != nil || userID == uuid.Nil || email == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"status":  "error",
				"message": "Invalid token claims",
				"error":   "Token validation failed",
			})
			c.Abort()
			return
		}

		c.Set("user_id", userID)
		c.Set("email", strings.ToLower(email))
		c.Next()
	}
}

// APIKeyMiddleware admits requests whose x-api-key header equals secret.
func APIKeyMiddleware(secret string) gin.HandlerFunc {
	expected := []byte(secret)

	return func(c *gin.Context) {
		given := []byte(c.GetHeader("x-api-key"))
		if len(expected) == 0 || subtle.ConstantTimeCompare(given, expected) != 1 {
			c.JSON(http.StatusUnauthorized, gin.H{
				"status":  "error",
				"message": "Unauthorized",
				"error":   "Invalid API key",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

func errorText(err error) string {
	if err == nil {
		return "Token is not valid"
	}
	return err.Error()
}
