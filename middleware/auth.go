package middleware

import (
	"hotelbooking/authz"
	"hotelbooking/response"
	"hotelbooking/services"

	"github.com/gin-gonic/gin"
)

const actorKey = "actor"

// AuthMiddleware xác thực access token và resolve quyền một lần cho request
func AuthMiddleware(tokens *services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		claims, err := tokens.ParseToken(authHeader)
		if err != nil {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		// Lưu thông tin user vào context
		actor := claims.Actor()
		c.Set(actorKey, actor)
		c.Set("userID", actor.UserID)
		c.Set("userRole", int(actor.Role))
		c.Next()
	}
}

// RequireCapability chặn request nếu actor thiếu một trong các capability
func RequireCapability(caps ...authz.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := CurrentActor(c)
		if !ok {
			response.Unauthorized(c)
			c.Abort()
			return
		}
		for _, want := range caps {
			if !actor.Can(want) {
				response.Forbidden(c)
				c.Abort()
				return
			}
		}
		c.Next()
	}
}

// CurrentActor lấy actor đã được AuthMiddleware gán
func CurrentActor(c *gin.Context) (authz.Actor, bool) {
	v, exists := c.Get(actorKey)
	if !exists {
		return authz.Actor{}, false
	}
	actor, ok := v.(authz.Actor)
	return actor, ok
}

// ErrorHandler log các lỗi controller đã gắn vào context
func ErrorHandler(log interface {
	Error(format string, v ...interface{})
}) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		for _, e := range c.Errors {
			log.Error("%s %s session=%s: %v", c.Request.Method, c.FullPath(), c.GetString("sessionId"), e.Err)
		}
	}
}
