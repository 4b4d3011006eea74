package handlers

import (
	"net/http"

	"wellness-go/internal/models"

	"github.com/gin-gonic/gin"
)

// UserContextKey is where the router stores the authenticated *models.User.
const UserContextKey = "user"

func currentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(UserContextKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok && user != nil
}

// requireUser writes a 401 and returns false when no user is loaded.
func requireUser(c *gin.Context) (*models.User, bool) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	}
	return user, ok
}
