package middleware

import (
	"net/http"
	"strings"

	"github.com/Ajayrajc1998/wedding/internal/services"

	"github.com/gin-gonic/gin"
)

const AdminKey = "admin"

type TokenValidator interface {
	ValidateToken(token string) (string, error)
}

// AdminAuth requires "Authorization: Bearer <token>" carrying the admin
// subject.
func AdminAuth(auth TokenValidator) gin.HandlerFunc {
	return adminAuth(auth, false)
}

// AdminAuthWithQuery also accepts ?token=, for websocket clients that cannot
// set headers.
func AdminAuthWithQuery(auth TokenValidator) gin.HandlerFunc {
	return adminAuth(auth, true)
}

func adminAuth(auth TokenValidator, allowQuery bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ""
		header := c.GetHeader("Authorization")
		switch {
		case header != "":
			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
				unauthorized(c, "invalid authorization header format")
				return
			}
			token = parts[1]
		case allowQuery && c.Query("token") != "":
			token = c.Query("token")
		default:
			unauthorized(c, "not authenticated")
			return
		}

		admin, err := auth.ValidateToken(token)
		if err != nil {
			unauthorized(c, "invalid credentials")
			return
		}

		c.Set(AdminKey, admin)
		c.Next()
	}
}

func unauthorized(c *gin.Context, msg string) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
}

var _ TokenValidator = (*services.AuthService)(nil)
