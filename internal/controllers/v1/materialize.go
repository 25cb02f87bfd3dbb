package v1

import (
	"net/http"
	"time"

	"github.com/expansepro/backend/internal/httputil"
	"github.com/expansepro/backend/internal/models"
	"github.com/expansepro/backend/internal/recurrence"
	"github.com/expansepro/backend/internal/types"
	"github.com/gin-gonic/gin"
)

// RegisterMaterializeRoutes registers the materialization trigger with
// the RouterGroup that is passed.
func RegisterMaterializeRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsMaterialize)
	r.POST("", Materialize)
}

// MaterializeResponse reports the outcome of a materialization run.
type MaterializeResponse struct {
	Created int `json:"created" example:"3"` // Number of instances created in this run
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Materialize
// @Success		204
// @Router			/v1/materialize [options]
func OptionsMaterialize(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Materialize recurring transactions
// @Description	Generates all due instances of every recurring template up to today. Running this more than once does not create duplicates.
// @Tags			Materialize
// @Produce		json
// @Success		200		{object}	MaterializeResponse
// @Failure		400		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			today	query		string	false	"Overrides the current date, YYYY-MM-DD"
// @Router			/v1/materialize [post]
func Materialize(c *gin.Context) {
	today := types.DayOf(time.Now())

	if raw, ok := c.GetQuery("today"); ok {
		var err error
		today, err = types.ParseDay(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, httpError{Error: httputil.ErrInvalidDate.Error()})
			return
		}
	}

	created, err := recurrence.Run(models.DB, today)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, MaterializeResponse{Created: created})
}
