package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func ctxWithQuery(t *testing.T, rawQuery string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+rawQuery, nil)
	return c
}

func TestParse_Defaults(t *testing.T) {
	params := Parse(ctxWithQuery(t, ""))

	assert.Equal(t, DefaultPage, params.Page)
	assert.Equal(t, DefaultLimit, params.Limit)
	assert.Equal(t, 0, params.Offset)
	assert.Equal(t, "", params.Search)
}

func TestParse_Explicit(t *testing.T) {
	params := Parse(ctxWithQuery(t, "page=3&limit=10&search=acme"))

	assert.Equal(t, 3, params.Page)
	assert.Equal(t, 10, params.Limit)
	assert.Equal(t, 20, params.Offset)
	assert.Equal(t, "acme", params.Search)
}

func TestParse_ClampsOutOfRange(t *testing.T) {
	params := Parse(ctxWithQuery(t, "page=-2&limit=5000"))

	assert.Equal(t, DefaultPage, params.Page)
	assert.Equal(t, MaxLimit, params.Limit)
}

func TestParse_IgnoresGarbage(t *testing.T) {
	params := Parse(ctxWithQuery(t, "page=abc&limit=xyz"))

	assert.Equal(t, DefaultPage, params.Page)
	assert.Equal(t, DefaultLimit, params.Limit)
}
