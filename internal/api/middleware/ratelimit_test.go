package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func callN(mw echo.MiddlewareFunc, n int) []int {
	e := echo.New()
	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	codes := make([]int, 0, n)
	for i := 0; i < n; i++ {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)
		if err := handler(c); err != nil {
			if he, ok := err.(*echo.HTTPError); ok {
				codes = append(codes, he.Code)
				continue
			}
		}
		codes = append(codes, rec.Code)
	}
	return codes
}

func TestRateLimit_RejectsAfterBurst(t *testing.T) {
	// one token per hour, so nothing refills during the test
	codes := callN(RateLimit(1.0/3600, 2), 3)

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRateLimit_Disabled(t *testing.T) {
	codes := callN(RateLimit(0, 0), 5)

	for _, code := range codes {
		assert.Equal(t, http.StatusOK, code)
	}
}
