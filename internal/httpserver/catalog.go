package httpserver

import (
	"errors"
	"net/http"

	"rodrigues-modas/internal/domain"

	"github.com/gin-gonic/gin"
)

func listProductsHandler(catalog productCatalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := catalog.List(c.Request.Context(), c.Query("category"), false)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load products"})
			return
		}
		if products == nil {
			products = []domain.Product{}
		}
		c.JSON(http.StatusOK, gin.H{"products": products})
	}
}

func getProductHandler(catalog productCatalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := catalog.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load product"})
			return
		}
		if !product.IsActive {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

func upsertProductHandler(catalog productCatalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in domain.Product
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if in.Name == "" || in.Price == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name and price are required"})
			return
		}
		product, err := catalog.Upsert(c.Request.Context(), in)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save product"})
			return
		}
		status := http.StatusOK
		if in.ID == "" {
			status = http.StatusCreated
		}
		c.JSON(status, product)
	}
}

func deactivateProductHandler(catalog productCatalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := catalog.Deactivate(c.Request.Context(), c.Param("id")); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not deactivate product"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}
