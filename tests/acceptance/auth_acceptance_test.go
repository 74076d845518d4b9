package acceptance

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/mquezada-dev/stockroom-api/config"
	"github.com/mquezada-dev/stockroom-api/controllers"
	"github.com/mquezada-dev/stockroom-api/middleware"
	"github.com/mquezada-dev/stockroom-api/models"
)

// AuthAcceptanceTestSuite verifies the whole sign-in flow against a live
// test server: seed a user, log in, then use the issued token.
type AuthAcceptanceTestSuite struct {
	suite.Suite
	server *httptest.Server
	db     *gorm.DB
	cfg    *config.Config
}

// SetupSuite runs once before all tests
func (suite *AuthAcceptanceTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)

	os.Setenv("GO_ENV", "test")
	os.Setenv("DATABASE_URL", "file::memory:?cache=shared")
	os.Setenv("JWT_SECRET", "acceptance-secret")
	os.Setenv("PORT", "8080")

	cfg, err := config.Load()
	suite.NoError(err)
	suite.cfg = cfg

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	suite.NoError(err)
	suite.db = db
	suite.NoError(db.AutoMigrate(models.AllModels()...))

	suite.server = httptest.NewServer(suite.createRouter())
}

// TearDownSuite runs once after all tests
func (suite *AuthAcceptanceTestSuite) TearDownSuite() {
	suite.server.Close()
	if suite.db != nil {
		sqlDB, _ := suite.db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
	}
}

// SetupTest runs before each test
func (suite *AuthAcceptanceTestSuite) SetupTest() {
	suite.db.Exec("DELETE FROM users")
	suite.db.Create(&models.User{
		Username: "operator1",
		Password: "stockroom123",
		Name:     "Op One",
		Role:     "operator",
	})
}

// createRouter creates the application router for acceptance testing
func (suite *AuthAcceptanceTestSuite) createRouter() *gin.Engine {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	api := controllers.NewAPI(suite.db, suite.cfg, logger)

	router := gin.New()
	router.Use(gin.Recovery())

	v1 := router.Group("/api/v1")
	{
		v1.POST("/auth/login", api.Login)

		authed := v1.Group("")
		authed.Use(middleware.RequireAuth(suite.cfg))
		{
			authed.GET("/users/me", api.GetMyProfile)
		}
	}

	return router
}

func (suite *AuthAcceptanceTestSuite) login(username, password string) (*http.Response, map[string]interface{}) {
	payload, _ := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})

	resp, err := http.Post(suite.server.URL+"/api/v1/auth/login", "application/json", bytes.NewBuffer(payload))
	suite.NoError(err)

	var body map[string]interface{}
	suite.NoError(json.NewDecoder(resp.Body).Decode(&body))
	resp.Body.Close()
	return resp, body
}

func (suite *AuthAcceptanceTestSuite) TestFullSignInFlow() {
	resp, body := suite.login("operator1", "stockroom123")
	suite.Equal(http.StatusOK, resp.StatusCode)

	data := body["data"].(map[string]interface{})
	token := data["token"].(string)
	suite.NotEmpty(token)

	// The issued token must open protected endpoints
	req, _ := http.NewRequest(http.MethodGet, suite.server.URL+"/api/v1/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	meResp, err := http.DefaultClient.Do(req)
	suite.NoError(err)
	defer meResp.Body.Close()

	suite.Equal(http.StatusOK, meResp.StatusCode)

	var me map[string]interface{}
	suite.NoError(json.NewDecoder(meResp.Body).Decode(&me))
	suite.Equal("operator1", me["data"].(map[string]interface{})["username"])
}

func (suite *AuthAcceptanceTestSuite) TestWrongPasswordIsRejected() {
	resp, body := suite.login("operator1", "guess")
	suite.Equal(http.StatusUnauthorized, resp.StatusCode)
	suite.Equal(false, body["success"])
}

func (suite *AuthAcceptanceTestSuite) TestUnknownUserIsRejected() {
	resp, _ := suite.login("ghost", "stockroom123")
	suite.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (suite *AuthAcceptanceTestSuite) TestProtectedEndpointWithoutToken() {
	resp, err := http.Get(suite.server.URL + "/api/v1/users/me")
	suite.NoError(err)
	defer resp.Body.Close()
	suite.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthAcceptanceSuite(t *testing.T) {
	suite.Run(t, new(AuthAcceptanceTestSuite))
}
