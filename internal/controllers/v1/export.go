package v1

import (
	"bytes"
	"net/http"

	"github.com/expansepro/backend/internal/httputil"
	"github.com/expansepro/backend/internal/importer"
	"github.com/expansepro/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// RegisterExportRoutes registers the CSV export with the RouterGroup
// that is passed.
func RegisterExportRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsGet)
	r.GET("", Export)
}

// @Summary		Export
// @Description	Downloads all transactions and recurring templates as a CSV file
// @Tags			Import/Export
// @Produce		text/csv
// @Success		200	{string}	string
// @Failure		500	{object}	httpError
// @Router			/v1/export [get]
func Export(c *gin.Context) {
	transactions, err := models.AllTransactions(models.DB)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var templates []models.RecurringTemplate
	err = models.DB.Order("created_at ASC").Find(&templates).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var buffer bytes.Buffer
	err = importer.Export(&buffer, transactions, templates)
	if err != nil {
		c.JSON(http.StatusInternalServerError, httpError{Error: err.Error()})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="expansepro-export.csv"`)
	c.Data(http.StatusOK, "text/csv", buffer.Bytes())
}
