package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"restaurant/internal/middleware"
	"restaurant/internal/services"
)

type createMenuItemRequest struct {
	Name  string           `json:"name" binding:"required"`
	Price *decimal.Decimal `json:"price" binding:"required"`
}

func ListMenu(menu *services.MenuService, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/menu"
		defer handlePanic(c, log, route)

		items, err := menu.ListMenu(c.Request.Context())
		if err != nil {
			respondError(c, log, route, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "menu": items})
	}
}

func CreateMenuItem(menu *services.MenuService, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/menu"
		defer handlePanic(c, log, route)

		var req createMenuItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		item, err := menu.CreateMenuItem(c.Request.Context(), middleware.CurrentIdentity(c), req.Name, *req.Price)
		if err != nil {
			respondError(c, log, route, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"id":      item.ID,
			"name":    item.Name,
			"price":   item.Price,
		})
	}
}
