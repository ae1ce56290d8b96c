package middleware

import (
	"net/http"
	"strings"
	"time"

	"studio-akira-api/config"
	"studio-akira-api/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	UID   string          `json:"uid"`
	Email string          `json:"email"`
	Role  models.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken creates a signed JWT for a given user
func GenerateToken(user *models.User) (string, error) {
	ttl := 24 * time.Hour
	if config.Cfg != nil && config.Cfg.Auth.TokenTTLHours > 0 {
		ttl = time.Duration(config.Cfg.Auth.TokenTTLHours) * time.Hour
	}
	claims := Claims{
		UID:   user.UID,
		Email: user.Email,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(config.JWTSecret)
}

// AuthRequired validates the JWT and injects claims into context
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required (Bearer <token>)"})
			c.Abort()
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			return config.JWTSecret, nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}
		c.Set("uid", claims.UID)
		c.Set("email", claims.Email)
		c.Set("role", string(claims.Role))
		c.Next()
	}
}

// RoleRequired enforces that caller has one of the allowed roles
func RoleRequired(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleVal, exists := c.Get("role")
		if !exists {
			c.JSON(http.StatusForbidden, gin.H{"error": "Role not found in context"})
			c.Abort()
			return
		}
		callerRole := models.UserRole(roleVal.(string))
		for _, r := range roles {
			if callerRole == r {
				c.Next()
				return
			}
		}
		c.JSON(http.StatusForbidden, gin.H{
			"error": "Access denied. Required role(s): " + rolesString(roles),
		})
		c.Abort()
	}
}

// ActiveRequired re-checks the stored account against the database:
// manufacturer and delivery accounts must be active to reach their portal,
// even when holding a valid token issued before a status change.
func ActiveRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := GetUserUID(c)
		var user models.User
		if err := config.DB.Where("uid = ?", uid).First(&user).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User profile not found"})
			c.Abort()
			return
		}
		if (user.Role == models.RoleManufacturer || user.Role == models.RoleDelivery) &&
			user.Status != models.AccountActive {
			c.JSON(http.StatusForbidden, gin.H{
				"pending": true,
				"error":   "Your account is pending admin approval",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

func rolesString(roles []models.UserRole) string {
	s := ""
	for i, r := range roles {
		if i > 0 {
			s += ", "
		}
		s += string(r)
	}
	return s
}

// GetUserUID extracts caller UID from context
func GetUserUID(c *gin.Context) string {
	val, _ := c.Get("uid")
	return val.(string)
}

// GetRole extracts caller role from context
func GetRole(c *gin.Context) models.UserRole {
	val, _ := c.Get("role")
	return models.UserRole(val.(string))
}
