package middleware

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo"
)

/*
	Echo middleware to ensure a valid `windowSize` HTTP query parameter was provided
*/
func MandateWindowSizeAttribute(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		// check for windowSize query parameter
		windowSizeQP := c.QueryParam("windowSize")
		if len(windowSizeQP) == 0 {
			// if no windowSize was provided return an error
			return echo.NewHTTPError(http.StatusBadRequest, "Missing 'windowSize' query parameter for the GC window series!")
		}

		// verify:
		i, conversionErr := strconv.Atoi(windowSizeQP)
		if conversionErr != nil {
			// if invalid windowSize
			return echo.NewHTTPError(http.StatusBadRequest, "Error converting 'windowSize' query parameter! Check your input")
		}

		if i <= 0 {
			// if windowSize less than or equal to 0
			return echo.NewHTTPError(http.StatusBadRequest, "Please provide a 'windowSize' greater than 0!")
		}

		return next(c)
	}
}
