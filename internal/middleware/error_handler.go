package middleware

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/smartcampus/allocator/internal/dto"
)

// ErrorHandler renders every unhandled error as a {"message": ...} JSON body
// so the allocation API fails uniformly.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := err.Error()

	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		switch m := he.Message.(type) {
		case string:
			msg = m
		default:
			msg = fmt.Sprintf("%v", m)
		}
	}

	_ = c.JSON(code, dto.ErrorResponse{Message: msg})
}
