package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/milan-codes/studician-api/internal/auth"
	"github.com/milan-codes/studician-api/internal/response"
)

const (
	// HeaderAuthToken carries the bearer credential on every request.
	HeaderAuthToken = "x-auth-token"
	// ContextKeyUserID is the Gin context key for the verified principal id.
	ContextKeyUserID = "user_id"
)

// RequireOwner verifies the x-auth-token credential and confirms the
// resulting principal owns the path-addressed resource (:userId). Nothing
// path-addressed is touched before both checks pass.
func RequireOwner(verifier auth.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(HeaderAuthToken)
		if token == "" {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}

		uid, err := verifier.Verify(c.Request.Context(), token)
		if err != nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenInvalid)
			return
		}

		if uid != c.Param("userId") {
			response.AbortFail(c, http.StatusForbidden, response.ErrForbidden)
			return
		}

		c.Set(ContextKeyUserID, uid)
		c.Next()
	}
}

// GetUserID retrieves the verified principal id from the Gin context.
func GetUserID(c *gin.Context) string {
	uid, _ := c.Get(ContextKeyUserID)
	id, _ := uid.(string)
	return id
}
