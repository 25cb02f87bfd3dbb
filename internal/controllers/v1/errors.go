package v1

import (
	"errors"
	"net/http"

	"github.com/expansepro/backend/internal/models"
)

// httpError is used for error responses that contain a body.
type httpError struct {
	Error string `json:"error" example:"there is no transaction matching your query"`
}

// status translates an error into the HTTP status code of the
// response. Resources that do not exist map to 404, database and
// server failures to 500 and everything else is treated as a client
// error.
func status(err error) int {
	switch {
	case errors.Is(err, models.ErrResourceNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrGeneral):
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}
