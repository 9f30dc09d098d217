package helpers_test

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventsphere/backend/internal/helpers"
)

func contextWithQuery(t *testing.T, rawQuery string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+rawQuery, nil)
	return c
}

func TestPaginationDefaults(t *testing.T) {
	skip, limit, err := helpers.Pagination(contextWithQuery(t, ""), 20)
	require.NoError(t, err)
	assert.Equal(t, 0, skip)
	assert.Equal(t, 20, limit)
}

func TestPaginationExplicitValues(t *testing.T) {
	skip, limit, err := helpers.Pagination(contextWithQuery(t, "skip=40&limit=10"), 20)
	require.NoError(t, err)
	assert.Equal(t, 40, skip)
	assert.Equal(t, 10, limit)
}

func TestPaginationCapsLimit(t *testing.T) {
	_, limit, err := helpers.Pagination(contextWithQuery(t, "limit=5000"), 20)
	require.NoError(t, err)
	assert.Equal(t, helpers.MaxPageSize, limit)
}

func TestPaginationRejectsBadValues(t *testing.T) {
	for _, rawQuery := range []string{
		"skip=-1",
		"skip=abc",
		"limit=0",
		"limit=-5",
		"limit=ten",
	} {
		_, _, err := helpers.Pagination(contextWithQuery(t, rawQuery), 20)
		assert.Error(t, err, "query %q", rawQuery)
	}
}

func TestStringToUint(t *testing.T) {
	v, err := helpers.StringToUint("12")
	require.NoError(t, err)
	assert.Equal(t, uint(12), v)

	_, err = helpers.StringToUint("-12")
	assert.Error(t, err)

	_, err = helpers.StringToUint("twelve")
	assert.Error(t, err)
}
