package httpserver

import (
	"net/http"
	"strings"

	"rodrigues-modas/internal/cart"
	"rodrigues-modas/internal/domain"

	"github.com/gin-gonic/gin"
)

const (
	ownerKey = "cartOwner"
	userKey  = "authUser"

	guestTokenHeader = "X-Guest-Token"
)

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

// resolveOwner binds the request to exactly one cart owner: the user behind a
// bearer token, or the guest behind an X-Guest-Token header. Requests carrying
// neither have no cart to act on.
func resolveOwner(authSvc authService, guests guestSessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := bearerToken(c); token != "" {
			user, err := authSvc.LookupByToken(c.Request.Context(), token)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid access token"})
				return
			}
			c.Set(userKey, user)
			c.Set(ownerKey, cart.Owner{UserID: user.ID})
			c.Next()
			return
		}

		if token := c.GetHeader(guestTokenHeader); token != "" {
			guestID, ok := guests.Lookup(token)
			if !ok {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid guest token"})
				return
			}
			c.Set(ownerKey, cart.Owner{GuestID: guestID})
			c.Next()
			return
		}

		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing credentials"})
	}
}

// requireUser only admits authenticated users.
func requireUser(authSvc authService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing access token"})
			return
		}
		user, err := authSvc.LookupByToken(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid access token"})
			return
		}
		c.Set(userKey, user)
		c.Set(ownerKey, cart.Owner{UserID: user.ID})
		c.Next()
	}
}

func requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if currentUser(c) == nil || currentUser(c).Role != domain.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Next()
	}
}

func currentOwner(c *gin.Context) cart.Owner {
	if v, ok := c.Get(ownerKey); ok {
		if owner, ok := v.(cart.Owner); ok {
			return owner
		}
	}
	return cart.Owner{}
}

func currentUser(c *gin.Context) *domain.User {
	if v, ok := c.Get(userKey); ok {
		if user, ok := v.(*domain.User); ok {
			return user
		}
	}
	return nil
}
