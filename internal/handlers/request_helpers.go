package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"restaurant/internal/apperr"
)

var registerTagNames sync.Once

// useJSONFieldNames makes validation errors name fields the way clients send
// them.
func useJSONFieldNames() {
	registerTagNames.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return field.Name
			}
			return name
		})
	})
}

func handlePanic(c *gin.Context, log logrus.FieldLogger, route string) {
	if r := recover(); r != nil {
		log.WithFields(logrus.Fields{"route": route, "panic": r}).Error("panic recovered")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"success": false, "error": "internal server error"})
	}
}

func ensureDBConnection(ctx context.Context, db *mongo.Database) error {
	checkCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	return db.Client().Ping(checkCtx, readpref.Primary())
}

// respondError maps err onto its status code. Server-side failures are logged
// with their cause; the client only sees the public message.
func respondError(c *gin.Context, log logrus.FieldLogger, route string, err error) {
	status := apperr.HTTPStatus(err)
	entry := log.WithFields(logrus.Fields{"route": route, "status": status})
	if status >= http.StatusInternalServerError {
		entry.WithError(err).Error("request failed")
	} else {
		entry.WithError(err).Debug("request rejected")
	}
	c.AbortWithStatusJSON(status, gin.H{"success": false, "error": apperr.PublicMessage(err)})
}

func respondValidationError(c *gin.Context, err error) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		details := make([]string, 0, len(validationErrors))
		for _, fieldError := range validationErrors {
			switch fieldError.Tag() {
			case "required":
				details = append(details, fmt.Sprintf("%s is required", fieldError.Field()))
			default:
				details = append(details, fmt.Sprintf("%s is invalid", fieldError.Field()))
			}
		}
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   strings.Join(details, "; "),
			"details": details,
		})
		return
	}

	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
}

func parseOrderID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, apperr.InvalidInput("invalid order id %q", raw)
	}
	return uint(id), nil
}
