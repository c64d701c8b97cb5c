package middleware

import (
	"errors"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Context keys set by ValidateToken.
const (
	CtxUserID     = "user_id"
	CtxRole       = "role"
	CtxEmail      = "email"
	CtxBusinessID = "business_id"
)

// ValidateToken verifies the bearer token and loads the caller's identity
// into the request context. The acting business id is client-asserted (query
// or X-Business-ID header); handlers must verify it belongs to the
// authenticated user before trusting it for a mutation.
func ValidateToken(c *gin.Context) {
	tokenString := bearerToken(c)
	if tokenString == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is missing"})
		c.Abort()
		return
	}

	claims, err := parseClaims(tokenString)
	if err != nil {
		status := http.StatusUnauthorized
		msg := "Invalid token"
		if errors.Is(err, jwt.ErrTokenExpired) {
			msg = "Token has expired"
		}
		c.JSON(status, gin.H{"error": msg})
		c.Abort()
		return
	}

	setIdentity(c, claims)
	c.Next()
}

// OptionalToken loads the identity when a token is supplied but lets
// anonymous requests through. Used by the cart, which falls back to guest
// session scoping.
func OptionalToken(c *gin.Context) {
	tokenString := bearerToken(c)
	if tokenString == "" {
		c.Next()
		return
	}

	claims, err := parseClaims(tokenString)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		c.Abort()
		return
	}

	setIdentity(c, claims)
	c.Next()
}

// RequireRole gates a route group to the given roles. Admins always pass.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(CtxRole)
		if role == "admin" {
			c.Next()
			return
		}
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		c.Abort()
	}
}

// UserID returns the authenticated user id, if any.
func UserID(c *gin.Context) (uint64, bool) {
	v, ok := c.Get(CtxUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint64)
	return id, ok
}

// BusinessID returns the client-asserted business id, if any.
func BusinessID(c *gin.Context) (uint64, bool) {
	v, ok := c.Get(CtxBusinessID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint64)
	return id, ok
}

// Identity is a decoded token identity, for transports that cannot run the
// gin middleware chain (the websocket handshake).
type Identity struct {
	UserID uint64
	Role   string
	Email  string
}

// ParseToken verifies a bearer token, with or without the "Bearer " prefix,
// and returns the identity it carries.
func ParseToken(tokenString string) (Identity, error) {
	tokenString = strings.TrimPrefix(tokenString, "Bearer ")
	claims, err := parseClaims(tokenString)
	if err != nil {
		return Identity{}, err
	}
	var id Identity
	raw, _ := claims["user_id"].(string)
	id.UserID, _ = strconv.ParseUint(raw, 10, 64)
	if id.UserID == 0 {
		return Identity{}, errors.New("invalid token claims")
	}
	id.Role, _ = claims["role"].(string)
	id.Email, _ = claims["email"].(string)
	return id, nil
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}

func parseClaims(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid token signing method")
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

func setIdentity(c *gin.Context, claims jwt.MapClaims) {
	if raw, ok := claims["user_id"].(string); ok {
		if id, err := strconv.ParseUint(raw, 10, 64); err == nil {
			c.Set(CtxUserID, id)
		}
	}
	if role, ok := claims["role"].(string); ok {
		c.Set(CtxRole, role)
	}
	if email, ok := claims["email"].(string); ok {
		c.Set(CtxEmail, email)
	}

	// Acting business context, asserted by the client.
	asserted := c.Query("business_id")
	if asserted == "" {
		asserted = c.GetHeader("X-Business-ID")
	}
	if asserted != "" {
		if id, err := strconv.ParseUint(asserted, 10, 64); err == nil {
			c.Set(CtxBusinessID, id)
		}
	}
}
