package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"khata/internal/config"
	"khata/internal/uuid"
)

const issuer = "khata-api"

// Context keys set by AuthMiddleware.
const (
	UserIDKey    = "userID"
	CompanyIDKey = "companyID"
)

// getJWTKey returns the JWT key from configuration
func getJWTKey() []byte {
	return []byte(config.Get().JWTSecret)
}

// JWTClaims represents the claims in the JWT. Tokens are issued by the
// identity service for one user acting within one company.
type JWTClaims struct {
	UserID    string `json:"user_id"`
	CompanyID string `json:"company_id"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// GenerateAccessToken signs an access token scoped to a company.
func GenerateAccessToken(userID, companyID string) (string, error) {
	now := time.Now()
	claims := &JWTClaims{
		UserID:    userID,
		CompanyID: companyID,
		TokenType: "access",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(config.Get().JWTExpirationDur)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    issuer,
			Subject:   userID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(getJWTKey())
}

func unauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": gin.H{"code": "UNAUTHORIZED", "message": message},
	})
}

// AuthMiddleware verifies the JWT token and sets the user and company in the
// context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			unauthorized(c, "Authorization header is required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			unauthorized(c, "Invalid authorization header format")
			return
		}

		claims := &JWTClaims{}
		token, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return getJWTKey(), nil
		}, jwt.WithIssuer(issuer))
		if err != nil || !token.Valid {
			unauthorized(c, "Invalid or expired token")
			return
		}

		// Only access tokens may call the API
		if claims.TokenType != "access" {
			unauthorized(c, "Invalid or expired token")
			return
		}
		if claims.UserID == "" || !uuid.IsValid(claims.CompanyID) {
			unauthorized(c, "Token is not scoped to a company")
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(CompanyIDKey, claims.CompanyID)
		c.Next()
	}
}
