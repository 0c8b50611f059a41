package middleware

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"digiwave-backend/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

func GetJWTSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		if os.Getenv("GIN_MODE") == "release" {
			panic("FATAL: JWT_SECRET environment variable is required in production mode")
		}
		secret = "default_super_secret_key" // Development fallback only, DO NOT use in production
	}
	return []byte(secret)
}

// cookieSettings picks SameSite/Secure for the auth cookies. Cross-origin
// deploys need None+Secure; local development runs same-site over http.
func cookieSettings() (http.SameSite, bool) {
	if os.Getenv("GIN_MODE") == "release" || os.Getenv("RENDER") != "" {
		return http.SameSiteNoneMode, true
	}
	return http.SameSiteLaxMode, false
}

// SetTokenCookies stores both tokens as HttpOnly cookies. The access token
// lives 24h, the refresh token 7 days, matching the token TTLs issued by
// the user service.
func SetTokenCookies(c *gin.Context, accessToken, refreshToken string) {
	sameSite, secure := cookieSettings()
	c.SetSameSite(sameSite)
	c.SetCookie("access_token", accessToken, 3600*24, "/", "", secure, true)
	c.SetCookie("refresh_token", refreshToken, 3600*24*7, "/", "", secure, true)
}

// ClearTokenCookies expires both auth cookies on logout.
func ClearTokenCookies(c *gin.Context) {
	sameSite, secure := cookieSettings()
	c.SetSameSite(sameSite)
	c.SetCookie("access_token", "", -1, "/", "", secure, true)
	c.SetCookie("refresh_token", "", -1, "/", "", secure, true)
}

// extractClaims reads the access token from the cookie or the Authorization
// header, verifies it, and stores userID/userRole on the context. On failure
// it writes the error response and returns false.
func extractClaims(c *gin.Context) (string, bool) {
	tokenString, cookieErr := c.Cookie("access_token")
	if cookieErr != nil || tokenString == "" {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Authorization is missing"))
			return "", false
		}
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Invalid authorization format. Expected 'Bearer <token>'"))
			return "", false
		}
		tokenString = parts[1]
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return GetJWTSecret(), nil
	})
	if err != nil || !token.Valid {
		c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Invalid token"))
		return "", false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Invalid token claims"))
		return "", false
	}

	role, ok := claims["role"].(string)
	if !ok {
		c.AbortWithStatusJSON(http.StatusForbidden, response.Error(http.StatusForbidden, "Role not found in token"))
		return "", false
	}

	c.Set("userID", claims["sub"])
	c.Set("userRole", role)
	return role, true
}

// RequireRole passes requests whose token role is one of allowedRoles.
// Used only for routes that any authenticated staffer may hit; everything
// resource-scoped goes through RequirePermission instead.
func RequireRole(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := extractClaims(c)
		if !ok {
			return
		}
		for _, allowed := range allowedRoles {
			if role == allowed {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, response.Error(http.StatusForbidden, "Access denied: insufficient permissions"))
	}
}

// --- Permission checks ---

type permCacheEntry struct {
	codes     []string
	expiresAt time.Time
}

var (
	permCache    sync.Map // role name -> permCacheEntry
	permCacheTTL = 5 * time.Minute
)

var permDB *gorm.DB

// InitPermissionMiddleware sets the DB handle RequirePermission queries
// role permissions through. Called once from main before routes register.
func InitPermissionMiddleware(db *gorm.DB) {
	permDB = db
}

// RequirePermission passes requests whose role carries every listed
// permission code. Lookups are cached per role for permCacheTTL; the role
// handler clears the cache when assignments change.
func RequirePermission(requiredPerms ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := extractClaims(c)
		if !ok {
			return
		}

		codes, err := getPermissionsForRole(role)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to verify permissions"))
			return
		}

		permSet := make(map[string]bool, len(codes))
		for _, p := range codes {
			permSet[p] = true
		}
		for _, required := range requiredPerms {
			if !permSet[required] {
				c.AbortWithStatusJSON(http.StatusForbidden, response.Error(http.StatusForbidden, "Access denied: missing permission '"+required+"'"))
				return
			}
		}

		c.Next()
	}
}

func getPermissionsForRole(roleName string) ([]string, error) {
	if entry, ok := permCache.Load(roleName); ok {
		cached := entry.(permCacheEntry)
		if time.Now().Before(cached.expiresAt) {
			return cached.codes, nil
		}
	}

	if permDB == nil {
		return nil, fmt.Errorf("permission middleware not initialized")
	}

	var codes []string
	err := permDB.Raw(`
		SELECT p.code FROM permissions p
		INNER JOIN role_permissions rp ON rp.permission_id = p.id
		INNER JOIN roles r ON r.id = rp.role_id
		WHERE r.name = ?
	`, roleName).Pluck("code", &codes).Error
	if err != nil {
		return nil, err
	}

	permCache.Store(roleName, permCacheEntry{
		codes:     codes,
		expiresAt: time.Now().Add(permCacheTTL),
	})
	return codes, nil
}

// GetPermissionsForRoleFromDB exposes permission lookup to handlers
// (the /me endpoint returns the caller's effective permission codes).
func GetPermissionsForRoleFromDB(roleName string) ([]string, error) {
	return getPermissionsForRole(roleName)
}

// ClearPermissionCache drops cached permissions for the named roles, or
// for every role when called with no arguments.
func ClearPermissionCache(roleNames ...string) {
	if len(roleNames) == 0 {
		permCache.Range(func(key, _ interface{}) bool {
			permCache.Delete(key)
			return true
		})
		return
	}
	for _, name := range roleNames {
		permCache.Delete(name)
	}
}
