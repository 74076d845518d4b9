package testutil

import (
	"fmt"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/mquezada-dev/stockroom-api/utils"
)

// IssueTestToken signs a session token for use in request headers
func IssueTestToken(t *testing.T, secret string, userID uint, role string) string {
	t.Helper()

	token, err := utils.GenerateToken(secret, 1, userID, role)
	if err != nil {
		t.Fatalf("Failed to issue test token: %v", err)
	}
	return token
}

// AuthHeader formats a token as an Authorization header value
func AuthHeader(token string) string {
	return fmt.Sprintf("Bearer %s", token)
}

// SetMockAuthContext sets up a mock authenticated context the same way the
// real middleware does after validating a token.
func SetMockAuthContext(c *gin.Context, userID uint, role string) {
	c.Set("user_id", userID)
	c.Set("user_role", role)
}

// CreateTestContext creates a test Gin context
func CreateTestContext() (*gin.Context, *gin.Engine) {
	gin.SetMode(gin.TestMode)
	c, engine := gin.CreateTestContext(nil)
	return c, engine
}
