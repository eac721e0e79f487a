package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"restaurant/internal/middleware"
	"restaurant/internal/orderlog"
	"restaurant/internal/services"
)

// ListLogs answers with a bare array of log documents.
func ListLogs(orders *services.OrderService, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/logs"
		defer handlePanic(c, log, route)

		var filter orderlog.Filter
		if raw := c.Query("order_id"); raw != "" {
			orderID, err := parseOrderID(raw)
			if err != nil {
				respondError(c, log, route, err)
				return
			}
			filter.OrderID = orderID
		}

		docs, err := orders.ListLogs(c.Request.Context(), middleware.CurrentIdentity(c), filter)
		if err != nil {
			respondError(c, log, route, err)
			return
		}
		c.JSON(http.StatusOK, docs)
	}
}
