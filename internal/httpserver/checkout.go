package httpserver

import (
	"errors"
	"net/http"

	"rodrigues-modas/internal/checkout"
	"rodrigues-modas/internal/domain"

	"github.com/gin-gonic/gin"
)

func whatsAppCheckoutHandler(svc checkoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := svc.WhatsApp(c.Request.Context(), currentOwner(c))
		if err != nil {
			if errors.Is(err, domain.ErrEmptyCart) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "cart is empty"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not prepare checkout"})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

func placeOrderHandler(svc checkoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in checkout.PlaceInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		order, err := svc.Place(c.Request.Context(), currentOwner(c), in)
		if err != nil {
			switch {
			case errors.Is(err, checkout.ErrPaymentMethod):
				c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported payment method"})
			case errors.Is(err, domain.ErrEmptyCart):
				c.JSON(http.StatusBadRequest, gin.H{"error": "cart is empty"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "could not place order"})
			}
			return
		}
		c.JSON(http.StatusCreated, order)
	}
}

func confirmOrderHandler(svc checkoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := svc.Confirm(c.Request.Context(), currentOwner(c), c.Param("id"))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not confirm order"})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

func ordersHandler(svc checkoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		orders, err := svc.History(c.Request.Context(), user.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load orders"})
			return
		}
		if orders == nil {
			orders = []domain.Order{}
		}
		c.JSON(http.StatusOK, gin.H{"orders": orders})
	}
}
