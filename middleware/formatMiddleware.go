package middleware

import (
	"fmt"
	"net/http"

	"seqlab/api/models/constants/format"

	"github.com/labstack/echo"
)

/*
	Echo middleware to ensure the optional `format` HTTP query parameter,
	when present, names a known sequence format ; when absent, handlers
	fall back to dispatching on the uploaded file's extension
*/
func ValidateOptionalFormatAttribute(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		formatQP := c.QueryParam("format")
		if len(formatQP) > 0 && !format.IsKnownSequenceFormat(formatQP) {
			return echo.NewHTTPError(http.StatusBadRequest,
				fmt.Sprintf("Invalid 'format' query parameter '%s' -- Must be one of: fasta, fastq", formatQP))
		}

		return next(c)
	}
}
