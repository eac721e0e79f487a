package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"restaurant/internal/translate"
)

type Translator interface {
	Translate(ctx context.Context, text, target string) (string, error)
}

type translateRequest struct {
	Text   string `json:"text" binding:"required"`
	Target string `json:"target"`
}

func Translate(translator Translator, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/translate"
		defer handlePanic(c, log, route)

		var req translateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		target := strings.TrimSpace(req.Target)
		if target == "" {
			target = translate.DefaultTarget
		}

		translated, err := translator.Translate(c.Request.Context(), req.Text, target)
		if err != nil {
			respondError(c, log, route, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success":    true,
			"translated": translated,
			"target":     target,
		})
	}
}
