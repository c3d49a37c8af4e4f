package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"

	"fittrack/fitness-api/internal/authz"
	"fittrack/fitness-api/internal/domain"
	"fittrack/fitness-api/internal/service"
)

// ContextClaimKey is the gin context key the verified claim is stored under.
const ContextClaimKey = "authClaim"

// AuthMiddleware creates a Gin middleware for JWT authentication. On
// success the decoded claim is stored in the request context; it is the
// only identity state the rest of the request sees.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWithError(c, http.StatusUnauthorized, "Authorization header is missing")
			return
		}

		// Expecting "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			abortWithError(c, http.StatusUnauthorized, "Authorization header format must be Bearer {token}")
			return
		}
		tokenString := parts[1]

		claims := &service.TokenClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(jwtSecret), nil
		})

		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				abortWithError(c, http.StatusUnauthorized, "Token has expired")
			} else {
				abortWithError(c, http.StatusUnauthorized, "Invalid token")
			}
			return
		}

		if !token.Valid || claims.UserID == 0 || claims.Role == "" {
			abortWithError(c, http.StatusUnauthorized, "Invalid token or missing claims")
			return
		}

		c.Set(ContextClaimKey, authz.Claim{
			UserID:   claims.UserID,
			Username: claims.Username,
			Role:     claims.Role,
		})
		c.Next()
	}
}

// RoleMiddleware checks that the authenticated caller holds one of the
// allowed roles. Must run AFTER AuthMiddleware. This is only the coarse
// route gate; the authorization engine re-checks everything per request.
func RoleMiddleware(allowedRoles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claim, err := getClaimFromContext(c)
		if err != nil {
			abortWithError(c, http.StatusInternalServerError, "Caller identity not found in context")
			return
		}

		for _, role := range allowedRoles {
			if claim.Role == role {
				c.Next()
				return
			}
		}
		abortWithError(c, http.StatusForbidden, fmt.Sprintf("Access denied: role '%s' does not have permission", claim.Role))
	}
}

// abortWithError returns a JSON error response and aborts the request.
func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}

// getClaimFromContext extracts the verified claim set by AuthMiddleware.
func getClaimFromContext(c *gin.Context) (authz.Claim, error) {
	raw, exists := c.Get(ContextClaimKey)
	if !exists {
		return authz.Claim{}, errors.New("claim not found in context")
	}
	claim, ok := raw.(authz.Claim)
	if !ok {
		return authz.Claim{}, errors.New("invalid claim type in context")
	}
	return claim, nil
}
