package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

// AdminKeyHeader carries the shared key for the operator surface
const AdminKeyHeader = "X-Admin-Key"

// AdminKey returns a middleware guarding the common-tag operator surface with
// a shared static key. An empty configured key locks the surface entirely.
func AdminKey(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		presented := c.GetHeader(AdminKeyHeader)
		if key == "" || subtle.ConstantTimeCompare([]byte(presented), []byte(key)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "ERR_UNAUTHORIZED",
					"message": "A valid admin key is required",
				},
			})
			return
		}
		c.Next()
	}
}
