package contexts

import (
	"seqlab/api/models"
	"seqlab/api/repositories/memory"

	"github.com/labstack/echo"
)

type (
	// "Helper" Context to pass into routes that need
	//  the in-memory session repository and other variables
	SeqLabContext struct {
		echo.Context
		Config     *models.Config
		Repository *memory.Repository
	}
)
