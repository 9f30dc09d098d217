package helpers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

// MaxPageSize caps the limit query parameter on every listing.
const MaxPageSize = 100

var errBadPagination = errors.New("invalid pagination parameters")

func StringToInt(s string) (int, error) {
	return strconv.Atoi(s)
}

func StringToUint(s string) (uint, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(v), nil
}

// UintParam parses a numeric path parameter.
func UintParam(c *gin.Context, name string) (uint, error) {
	return StringToUint(c.Param(name))
}

// Pagination reads the skip and limit query parameters. Limit falls back
// to defaultLimit and never exceeds MaxPageSize.
func Pagination(c *gin.Context, defaultLimit int) (skip, limit int, err error) {
	skip, err = StringToInt(c.DefaultQuery("skip", "0"))
	if err != nil || skip < 0 {
		return 0, 0, errBadPagination
	}

	limit, err = StringToInt(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if err != nil || limit < 1 {
		return 0, 0, errBadPagination
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return skip, limit, nil
}
