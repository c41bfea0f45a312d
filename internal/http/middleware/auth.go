package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// OwnerHeader is set by the upstream authenticator after it has verified the
// session; this service trusts the value completely.
const OwnerHeader = "X-User-ID"

const ownerKey = "ownerID"

// Identity extracts the pre-authenticated caller id from the request and
// stores it on the context. Requests without a usable id are rejected before
// any handler runs.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(OwnerHeader)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing caller identity"})
			return
		}

		ownerID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || ownerID <= 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid caller identity"})
			return
		}

		SetOwnerID(c, ownerID)
		c.Next()
	}
}

// SetOwnerID stores the caller id on the context. Exposed so handler tests
// can run without the full middleware chain.
func SetOwnerID(c *gin.Context, id int64) {
	c.Set(ownerKey, id)
}

// OwnerID returns the caller id stored by Identity. The boolean is false when
// the middleware did not run for this request.
func OwnerID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(ownerKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}
