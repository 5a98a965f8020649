package middleware

import (
	"net/http"

	"github.com/labstack/echo"
)

/*
	Echo middleware to ensure a non-empty `motif` HTTP query parameter was provided
*/
func MandateMotifAttribute(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		// check for motif query parameter
		motifQP := c.QueryParam("motif")
		if len(motifQP) == 0 {
			// if no motif was provided return an error
			return echo.NewHTTPError(http.StatusBadRequest, "Missing 'motif' query parameter for searching!")
		}

		return next(c)
	}
}
