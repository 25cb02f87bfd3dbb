package v1

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/expansepro/backend/internal/httputil"
	"github.com/expansepro/backend/internal/importer"
	"github.com/expansepro/backend/internal/models"
	"github.com/expansepro/backend/internal/recurrence"
	"github.com/expansepro/backend/internal/types"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var (
	errNoFilePost      = errors.New("you must send a file to this endpoint")
	errWrongFileSuffix = errors.New("this endpoint only supports .csv files")
)

// RegisterImportRoutes registers the CSV import with the RouterGroup
// that is passed.
func RegisterImportRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsPost)
	r.POST("", Import)
}

// ImportResponse reports what an import created.
type ImportResponse struct {
	Transactions int      `json:"transactions" example:"51"` // Number of transactions created
	Templates    int      `json:"templates" example:"2"`     // Number of recurring templates created
	Warnings     []string `json:"warnings"`                  // One entry per skipped row
}

// getUploadedFile returns the form file and handles potential errors.
func getUploadedFile(c *gin.Context, suffix string) (multipart.File, error) {
	formFile, err := c.FormFile("file")
	if formFile == nil {
		return nil, errNoFilePost
	}

	if err != nil {
		return nil, err
	}

	if !strings.HasSuffix(formFile.Filename, suffix) {
		return nil, errWrongFileSuffix
	}

	return formFile.Open()
}

// @Summary		Import
// @Description	Imports transactions and recurring templates from a CSV file. Rows that cannot be parsed are skipped and reported as warnings. Categories that do not exist yet are created.
// @Tags			Import/Export
// @Accept			multipart/form-data
// @Produce		json
// @Success		201		{object}	ImportResponse
// @Failure		400		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			file	formData	file	true	"The CSV file to import"
// @Router			/v1/import [post]
func Import(c *gin.Context) {
	file, err := getUploadedFile(c, ".csv")
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}
	defer file.Close()

	parsed, err := importer.Parse(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		for _, name := range parsed.Categories {
			err := tx.Where(&models.Category{Name: name}).
				FirstOrCreate(&models.Category{Name: name}).Error
			if err != nil {
				return err
			}
		}

		for i := range parsed.Transactions {
			err := tx.Create(&parsed.Transactions[i]).Error
			if err != nil {
				return err
			}
		}

		for i := range parsed.Templates {
			err := tx.Create(&parsed.Templates[i]).Error
			if err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	// Materialize instances the imported templates are already due
	// for. Imported templates start with a fresh cursor at their start
	// date, instance rows in the file import as plain transactions.
	_, err = recurrence.Run(models.DB, types.DayOf(time.Now()))
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	warnings := parsed.Warnings
	if warnings == nil {
		warnings = make([]string, 0)
	}

	c.JSON(http.StatusCreated, ImportResponse{
		Transactions: len(parsed.Transactions),
		Templates:    len(parsed.Templates),
		Warnings:     warnings,
	})
}
