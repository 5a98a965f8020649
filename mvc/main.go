package mvc

import (
	"errors"
	"net/http"

	"seqlab/api/contexts"
	"seqlab/api/models"
	dtoErrors "seqlab/api/models/dtos/errors"
	"seqlab/api/repositories/memory"

	"github.com/labstack/echo"
)

func RetrieveCommonElements(c echo.Context) (*models.Config, *memory.Repository) {
	gc := c.(*contexts.SeqLabContext)
	return gc.Config, gc.Repository
}

// RespondWithError maps the core error taxonomy onto HTTP statuses :
// malformed files and invalid parameters are the client's fault (400),
// anything else is ours (500)
func RespondWithError(c echo.Context, err error) error {
	var formatErr *models.FormatError
	var validationErr *models.ValidationError

	if errors.As(err, &formatErr) || errors.As(err, &validationErr) {
		return c.JSON(http.StatusBadRequest, dtoErrors.CreateSimpleBadRequest(err.Error()))
	}

	return c.JSON(http.StatusInternalServerError, dtoErrors.CreateSimpleInternalServerError(err.Error()))
}
