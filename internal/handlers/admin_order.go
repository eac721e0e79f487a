package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"restaurant/internal/middleware"
	"restaurant/internal/services"
)

type updateStatusRequest struct {
	Status string `json:"status"`
}

func UpdateOrderStatus(admin *services.AdminService, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PATCH /api/order/:id/status"
		defer handlePanic(c, log, route)

		orderID, err := parseOrderID(c.Param("id"))
		if err != nil {
			respondError(c, log, route, err)
			return
		}

		var req updateStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, log, route, services.InvalidStatus(""))
			return
		}

		result, err := admin.UpdateOrderStatus(c.Request.Context(), middleware.CurrentIdentity(c), orderID, req.Status)
		if err != nil {
			respondError(c, log, route, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"order_id": result.OrderID,
			"status":   result.Status,
		})
	}
}

func HideOrder(admin *services.AdminService, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PATCH /api/order/:id/hide"
		defer handlePanic(c, log, route)

		orderID, err := parseOrderID(c.Param("id"))
		if err != nil {
			respondError(c, log, route, err)
			return
		}

		if err := admin.HideOrder(c.Request.Context(), middleware.CurrentIdentity(c), orderID); err != nil {
			respondError(c, log, route, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "order_id": orderID})
	}
}

func ListAdminOrders(admin *services.AdminService, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/admin/orders"
		defer handlePanic(c, log, route)

		orders, err := admin.ListOrders(c.Request.Context(), middleware.CurrentIdentity(c))
		if err != nil {
			respondError(c, log, route, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "orders": orders})
	}
}
