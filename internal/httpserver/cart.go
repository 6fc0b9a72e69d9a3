package httpserver

import (
	"errors"
	"net/http"

	"rodrigues-modas/internal/cart"
	"rodrigues-modas/internal/domain"

	"github.com/gin-gonic/gin"
)

func cartJSON(carts cartService, lines []domain.CartLine) gin.H {
	if lines == nil {
		lines = []domain.CartLine{}
	}
	return gin.H{"items": lines, "totals": carts.Totals(lines)}
}

func getCartHandler(carts cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		lines, err := carts.Lines(c.Request.Context(), currentOwner(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load cart"})
			return
		}
		c.JSON(http.StatusOK, cartJSON(carts, lines))
	}
}

type addCartRequest struct {
	ProductID     string `json:"productId" binding:"required"`
	Quantity      int    `json:"quantity"`
	SelectedColor string `json:"selectedColor"`
	SelectedSize  string `json:"selectedSize"`
}

func addCartHandler(carts cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in addCartRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if in.Quantity == 0 {
			in.Quantity = 1
		}
		lines, err := carts.Add(c.Request.Context(), currentOwner(c), in.ProductID, in.Quantity, in.SelectedColor, in.SelectedSize)
		if err != nil {
			switch {
			case errors.Is(err, cart.ErrQuantity):
				c.JSON(http.StatusBadRequest, gin.H{"error": "quantity must be positive"})
			case errors.Is(err, domain.ErrNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "could not add to cart"})
			}
			return
		}
		c.JSON(http.StatusCreated, cartJSON(carts, lines))
	}
}

type updateCartRequest struct {
	Quantity int `json:"quantity"`
}

func updateCartHandler(carts cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in updateCartRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		lines, err := carts.UpdateQuantity(c.Request.Context(), currentOwner(c), c.Param("id"), in.Quantity)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "cart item not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update cart"})
			return
		}
		c.JSON(http.StatusOK, cartJSON(carts, lines))
	}
}

func removeCartHandler(carts cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		lines, err := carts.Remove(c.Request.Context(), currentOwner(c), c.Param("id"))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "cart item not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not remove from cart"})
			return
		}
		c.JSON(http.StatusOK, cartJSON(carts, lines))
	}
}

func clearCartHandler(carts cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := carts.Clear(c.Request.Context(), currentOwner(c)); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not clear cart"})
			return
		}
		c.JSON(http.StatusOK, cartJSON(carts, nil))
	}
}
