package adapters

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/toyz/axonbase/pkg/axon"
)

// GinErrorMiddleware writes the last *axon.HttpError recorded with c.Error
// as JSON when the handler chain produced no response
func GinErrorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}
		for i := len(c.Errors) - 1; i >= 0; i-- {
			if httpErr, ok := axon.AsHttpError(c.Errors[i].Err); ok {
				c.JSON(httpErr.StatusCode, httpErr)
				return
			}
		}
		if len(c.Errors) > 0 {
			c.JSON(http.StatusInternalServerError, gin.H{"error": c.Errors.Last().Error()})
		}
	}
}

// GinRecovery recovers panics raised by stubs of methods without an error
// result and answers with their status. Other panics become a bare 500.
func GinRecovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		if httpErr, ok := axon.RecoverHttpError(recovered); ok {
			c.AbortWithStatusJSON(httpErr.StatusCode, httpErr)
			return
		}
		c.AbortWithStatus(http.StatusInternalServerError)
	})
}
