package middleware

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/serviceconnect/service-connect-api/config"
	"github.com/serviceconnect/service-connect-api/models"
	"github.com/serviceconnect/service-connect-api/utils"
)

// RequireAuth is a middleware that validates the bearer token on the request
// and stores the caller's identity in the Gin context.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "Authorization header required",
				},
			})
			return
		}

		tokenString := header
		if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
			tokenString = header[7:]
		}

		cfg := config.GetConfig()
		claims, err := utils.ParseToken(tokenString, cfg.JWTSecret)
		if err != nil {
			log.Printf("Token validation failed: %v", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_TOKEN",
					"message": "Invalid or expired token",
				},
			})
			return
		}

		userID, err := strconv.ParseUint(claims.Subject, 10, 64)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_TOKEN",
					"message": "Invalid token subject",
				},
			})
			return
		}

		c.Set("user_id", uint(userID))
		c.Set("role", models.Role(claims.Role))
		c.Next()
	}
}

// OptionalAuth populates the caller's identity when a valid bearer token is
// present, and lets the request through anonymously otherwise. Used by the
// chatbot route, which serves guests too.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}

		tokenString := header
		if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
			tokenString = header[7:]
		}

		cfg := config.GetConfig()
		claims, err := utils.ParseToken(tokenString, cfg.JWTSecret)
		if err != nil {
			c.Next()
			return
		}

		if userID, err := strconv.ParseUint(claims.Subject, 10, 64); err == nil {
			c.Set("user_id", uint(userID))
			c.Set("role", models.Role(claims.Role))
		}
		c.Next()
	}
}

// RequireRole is a middleware that restricts a route to the given roles.
// It must run after RequireAuth.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, err := GetUserRole(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "Could not determine caller role",
				},
			})
			return
		}

		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "Insufficient permissions to access this resource",
			},
		})
	}
}

// GetUserID extracts the authenticated user's id from the Gin context
func GetUserID(c *gin.Context) (uint, error) {
	userID, exists := c.Get("user_id")
	if !exists {
		return 0, &AuthError{Code: "MISSING_USER_ID", Message: "User ID not found in context"}
	}

	id, ok := userID.(uint)
	if !ok {
		return 0, &AuthError{Code: "INVALID_USER_ID", Message: "User ID has unexpected type"}
	}

	return id, nil
}

// GetUserRole extracts the authenticated user's role from the Gin context
func GetUserRole(c *gin.Context) (models.Role, error) {
	role, exists := c.Get("role")
	if !exists {
		return "", &AuthError{Code: "MISSING_ROLE", Message: "Role not found in context"}
	}

	r, ok := role.(models.Role)
	if !ok {
		return "", &AuthError{Code: "INVALID_ROLE", Message: "Role has unexpected type"}
	}

	return r, nil
}

// CurrentUser loads the authenticated user's account row. Deactivated
// accounts are treated as unauthenticated even when the token is valid.
func CurrentUser(c *gin.Context) (*models.User, error) {
	id, err := GetUserID(c)
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := config.GetDB().First(&user, id).Error; err != nil {
		return nil, &AuthError{Code: "USER_NOT_FOUND", Message: "Account not found"}
	}
	if !user.IsActive {
		return nil, &AuthError{Code: "ACCOUNT_DISABLED", Message: "Account has been deactivated"}
	}

	return &user, nil
}

// AuthError represents an authentication error
type AuthError struct {
	Code    string
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}
