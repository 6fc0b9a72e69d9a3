package httpserver

import (
	"errors"
	"log"
	"net/http"

	"rodrigues-modas/internal/auth"
	"rodrigues-modas/internal/domain"

	"github.com/gin-gonic/gin"
)

func guestHandler(guests guestSessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, guestID, err := guests.Issue()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not start a guest session"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"token": token, "guestId": guestID})
	}
}

func signupHandler(authSvc authService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in auth.SignupInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		user, err := authSvc.Signup(c.Request.Context(), in)
		if err != nil {
			if errors.Is(err, domain.ErrAlreadyExists) {
				c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"user": user})
	}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// loginHandler validates credentials and, when the request also carries a
// guest token, replays that device cart into the account exactly once.
func loginHandler(authSvc authService, guests guestSessions, carts cartService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in loginRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		user, token, err := authSvc.Login(c.Request.Context(), in.Email, in.Password)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidCredentials) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
			return
		}

		// A failed merge never fails the login; the merge is at-most-once and
		// the user still gets their account cart.
		if guestToken := c.GetHeader(guestTokenHeader); guestToken != "" {
			if guestID, ok := guests.Lookup(guestToken); ok {
				if err := carts.MergeOnLogin(c.Request.Context(), guestID, user.ID); err != nil {
					logger.Printf("login: merge guest=%s user=%s error=%v", guestID, user.ID, err)
				}
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"token":     token,
			"expiresIn": authSvc.AccessTTLSeconds(),
			"user":      user,
		})
	}
}
