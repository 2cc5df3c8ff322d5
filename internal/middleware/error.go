package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pageza/designhub/backend/internal/apperror"
	"github.com/pageza/designhub/backend/internal/logger"
	"go.uber.org/zap"
)

// ErrorHandler renders errors attached with c.Error as {"error","code"} and turns
// panics into INTERNAL_ERROR responses
func ErrorHandler(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				err := apperror.NewInternal(fmt.Errorf("%v", r))
				log.Error("Recovered from panic", err.Cause(),
					zap.String("method", c.Request.Method),
					zap.String("path", c.Request.URL.Path),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, err.ToJSON())
			}
		}()

		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		appErr := apperror.From(c.Errors.Last().Err)
		status := apperror.ToHTTPStatus(appErr)
		if status == http.StatusInternalServerError {
			log.Error("Request failed", appErr.Cause(),
				zap.String("method", c.Request.Method),
				zap.String("route", c.FullPath()),
			)
		}
		c.JSON(status, appErr.ToJSON())
	}
}
