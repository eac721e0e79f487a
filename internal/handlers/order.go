package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"restaurant/internal/middleware"
	"restaurant/internal/models"
	"restaurant/internal/services"
)

type createOrderRequest struct {
	Items []models.OrderLineRequest `json:"items" binding:"required"`
}

func CreateOrder(orders *services.OrderService, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/order"
		defer handlePanic(c, log, route)

		var req createOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		result, err := orders.CreateOrder(c.Request.Context(), middleware.CurrentIdentity(c), req.Items)
		if err != nil {
			respondError(c, log, route, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"success":  true,
			"order_id": result.OrderID,
			"total":    result.Total,
		})
	}
}

func ListOrders(orders *services.OrderService, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/orders"
		defer handlePanic(c, log, route)

		list, err := orders.ListOrders(c.Request.Context(), middleware.CurrentIdentity(c))
		if err != nil {
			respondError(c, log, route, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "orders": list})
	}
}

func GetOrder(orders *services.OrderService, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/order/:id"
		defer handlePanic(c, log, route)

		orderID, err := parseOrderID(c.Param("id"))
		if err != nil {
			respondError(c, log, route, err)
			return
		}

		detail, err := orders.GetOrder(c.Request.Context(), middleware.CurrentIdentity(c), orderID)
		if err != nil {
			respondError(c, log, route, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"order":   detail.Order,
			"items":   detail.Items,
			"logs":    detail.Logs,
		})
	}
}
