package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// currentUser reads the identity set by the auth middleware. It writes a 401
// and returns false when the request carries none.
func currentUser(c *gin.Context) (uuid.UUID, string, bool) {
	raw, exists := c.Get("user_id")
	userID, ok := raw.(uuid.UUID)
	if !exists || !ok || userID == uuid.Nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":  "error",
			"message": "Unauthorized",
			"error":   "User ID not found in token",
		})
		return uuid.Nil, "", false
	}
	return userID, c.GetString("email"), true
}

func respondError(c *gin.Context, status int, message, detail string) {
	c.JSON(status, gin.H{
		"status":  "error",
		"message": message,
		"error":   detail,
	})
}

func respondSuccess(c *gin.Context, status int, message string, data any) {
	c.JSON(status, gin.H{
		"status":  "success",
		"message": message,
		"data":    data,
	})
}
