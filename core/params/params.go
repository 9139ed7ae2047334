package params

import (
	"strconv"

	"courtbook/core/constants"

	"github.com/labstack/echo/v4"
)

type QueryParams struct {
	PageNumber int
	PageSize   int
	Search     string
	DateFrom   string // YYYY-MM-DD, optional
	DateTo     string // YYYY-MM-DD, optional
	Status     string
}

// FromEcho extracts common list parameters with sane defaults.
func FromEcho(c echo.Context) QueryParams {
	p := QueryParams{
		PageNumber: constants.DefaultPageNumber,
		PageSize:   constants.DefaultPageSize,
		Search:     c.QueryParam("search"),
		DateFrom:   c.QueryParam("date_from"),
		DateTo:     c.QueryParam("date_to"),
		Status:     c.QueryParam("status"),
	}

	if v, err := strconv.Atoi(c.QueryParam("page")); err == nil && v > 0 {
		p.PageNumber = v
	}
	if v, err := strconv.Atoi(c.QueryParam("page_size")); err == nil && v > 0 {
		if v > constants.MaxPageSize {
			v = constants.MaxPageSize
		}
		p.PageSize = v
	}
	return p
}
