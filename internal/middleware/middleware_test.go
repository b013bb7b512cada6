package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gowheels/gowheels-backend/pkg/utils"
)

const secret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	handlers := append(mw, func(c *gin.Context) {
		c.JSON(200, gin.H{"username": c.GetString(ContextUsername), "category": c.GetString(ContextCategory)})
	})
	r.GET("/me", handlers...)
	return r
}

func do(r http.Handler, target, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	r := newRouter(AuthMiddleware(secret))
	token, err := utils.GenerateToken(secret, "amy", "passenger", time.Hour)
	require.NoError(t, err)

	w := do(r, "/me", "Bearer "+token)
	require.Equal(t, 200, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "amy", body["username"])
	assert.Equal(t, "passenger", body["category"])

	w = do(r, "/me?token="+token, "")
	assert.Equal(t, 200, w.Code)

	w = do(r, "/me", "")
	assert.Equal(t, 401, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"unauthorized"`)

	w = do(r, "/me", "Token "+token)
	assert.Equal(t, 401, w.Code)

	other, err := utils.GenerateToken("another-secret", "amy", "passenger", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 401, do(r, "/me", "Bearer "+other).Code)

	expired, err := utils.GenerateToken(secret, "amy", "passenger", -time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 401, do(r, "/me", "Bearer "+expired).Code)
}

func TestRequireCategory(t *testing.T) {
	r := newRouter(AuthMiddleware(secret), RequireCategory("driver"))

	driver, err := utils.GenerateToken(secret, "dan", "driver", time.Hour)
	require.NoError(t, err)
	passenger, err := utils.GenerateToken(secret, "amy", "passenger", time.Hour)
	require.NoError(t, err)

	assert.Equal(t, 200, do(r, "/me", "Bearer "+driver).Code)

	w := do(r, "/me", "Bearer "+passenger)
	assert.Equal(t, 403, w.Code)
	assert.Contains(t, w.Body.String(), "driver account")
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)
	log.SetFormatter(&logrus.JSONFormatter{})

	r := newRouter(RequestLogger(log))
	require.Equal(t, 200, do(r, "/me", "").Code)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "GET", entry["method"])
	assert.Equal(t, "/me", entry["route"])
	assert.EqualValues(t, 200, entry["status"])
	assert.Equal(t, "info", entry["level"])
}
