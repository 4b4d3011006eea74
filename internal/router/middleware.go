package router

import (
	"net/http"

	"wellness-go/internal/handlers"
	"wellness-go/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserLookup loads a user by id.
type UserLookup func(c *gin.Context, id uint) (*models.User, error)

// UserLoaderMiddleware checks for a userID in the session.
// If found, it loads the user and adds it to the context, clearing sessions
// whose user no longer exists.
func UserLoaderMiddleware(log *zap.Logger, lookup UserLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID, ok := session.Get(handlers.SessionUserKey).(uint)
		if !ok {
			c.Next()
			return
		}

		user, err := lookup(c, userID)
		if err != nil {
			log.Debug("Dropping session for unknown user", zap.Uint("userID", userID), zap.Error(err))
			session.Delete(handlers.SessionUserKey)
			if err := session.Save(); err != nil {
				log.Warn("Failed to save session", zap.Error(err))
			}
			c.Next()
			return
		}

		c.Set(handlers.UserContextKey, user)
		c.Next()
	}
}

// AuthRequired rejects requests without a loaded user.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(handlers.UserContextKey); !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Next()
	}
}
