package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	domainerrors "market-hub.backend/internal/domain/errors"
)

func record(handler gin.HandlerFunc) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	handler(c)
	return w
}

func TestSuccessEnvelope(t *testing.T) {
	w := record(func(c *gin.Context) {
		Success(c, http.StatusCreated, "vendor created", gin.H{"id": "abc"})
	})

	assert.Equal(t, http.StatusCreated, w.Code)

	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body["error"])
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "vendor created", body["message"])
	assert.Equal(t, "abc", body["data"].(map[string]interface{})["id"])
}

func TestErrorKeepsAppErrorShape(t *testing.T) {
	w := record(func(c *gin.Context) {
		Error(c, domainerrors.Conflict("store slug already in use").WithData("slugTaken", true))
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["error"])
	assert.Equal(t, false, body["success"])
	assert.Equal(t, domainerrors.CodeConflict, body["code"])
	assert.Equal(t, true, body["data"].(map[string]interface{})["slugTaken"])
}

func TestErrorWrapsUnknownErrorsAs500(t *testing.T) {
	w := record(func(c *gin.Context) {
		Error(c, errors.New("connection reset"))
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, domainerrors.CodeInternalError, body["code"])
	assert.Equal(t, "connection reset", body["message"])
	assert.NotContains(t, body, "stack")
}

func TestErrorIncludesStackInDevelopment(t *testing.T) {
	Init("development")
	defer Init("production")

	w := record(func(c *gin.Context) {
		Error(c, errors.New("connection reset"))
	})

	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "connection reset", body["message"])
	assert.Contains(t, body["stack"], "goroutine")
}

func TestErrorOmitsStackForAppErrors(t *testing.T) {
	Init("development")
	defer Init("production")

	w := record(func(c *gin.Context) {
		Error(c, domainerrors.BadRequest("missing field"))
	})

	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "missing field", body["message"])
	assert.NotContains(t, body, "stack")
}
