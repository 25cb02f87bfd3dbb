package v1

import (
	"net/http"
	"time"

	"github.com/expansepro/backend/internal/httputil"
	"github.com/expansepro/backend/internal/models"
	"github.com/expansepro/backend/internal/recurrence"
	"github.com/expansepro/backend/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// RegisterTemplateRoutes registers the routes for recurring templates
// with the RouterGroup that is passed.
func RegisterTemplateRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsTemplateList)
		r.GET("", GetTemplates)
		r.POST("", CreateTemplate)
	}

	// Template with ID
	{
		r.OPTIONS("/:id", OptionsTemplateDetail)
		r.GET("/:id", GetTemplate)
		r.PATCH("/:id", UpdateTemplate)
		r.DELETE("/:id", DeleteTemplate)
	}
}

// TemplateEditable holds all fields a client can set.
type TemplateEditable struct {
	Description string            `json:"description" example:"Rent"`
	Amount      decimal.Decimal   `json:"amount" example:"850"`
	Category    string            `json:"category" example:"Rent"`
	Recurrence  models.Recurrence `json:"recurrence" enums:"weekly,monthly" example:"monthly"`
	StartDate   types.Day         `json:"startDate" example:"2024-01-31"`
	EndDate     types.Day         `json:"endDate" example:"2024-12-31"`
	Direction   string            `json:"direction,omitempty" enums:"income,expense" example:"expense"` // Normalizes the sign of Amount. When empty, the sign is stored as sent.
}

func (editable TemplateEditable) model() models.RecurringTemplate {
	amount := editable.Amount
	switch editable.Direction {
	case directionExpense:
		amount = amount.Abs().Neg()
	case directionIncome:
		amount = amount.Abs()
	}

	return models.RecurringTemplate{
		Description: editable.Description,
		Amount:      amount,
		Category:    editable.Category,
		Recurrence:  editable.Recurrence,
		StartDate:   editable.StartDate,
		EndDate:     editable.EndDate,
	}
}

func newTemplateEditable(model models.RecurringTemplate) TemplateEditable {
	return TemplateEditable{
		Description: model.Description,
		Amount:      model.Amount,
		Category:    model.Category,
		Recurrence:  model.Recurrence,
		StartDate:   model.StartDate,
		EndDate:     model.EndDate,
	}
}

type TemplateLinks struct {
	Self string `json:"self" example:"https://example.com/v1/templates/d1397e86-a3f5-4f4c-a3b8-d482d0c812ae"`
}

// Template is the API representation of a recurring template.
type Template struct {
	models.RecurringTemplate
	Links TemplateLinks `json:"links"`
}

func newTemplate(c *gin.Context, model models.RecurringTemplate) Template {
	return Template{
		RecurringTemplate: model,
		Links: TemplateLinks{
			Self: httputil.RequestPathV1(c) + "/templates/" + model.ID.String(),
		},
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Templates
// @Success		204
// @Router			/v1/templates [options]
func OptionsTemplateList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Templates
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/templates/{id} [options]
func OptionsTemplateDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: httputil.ErrInvalidUUID.Error()})
		return
	}

	err = models.DB.First(&models.RecurringTemplate{}, uri.ID.UUID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Create template
// @Description	Creates a new recurring template and materializes all instances that are already due
// @Tags			Templates
// @Produce		json
// @Success		201			{object}	Template
// @Failure		400			{object}	httpError
// @Failure		500			{object}	httpError
// @Param			template	body		TemplateEditable	true	"Template"
// @Router			/v1/templates [post]
func CreateTemplate(c *gin.Context) {
	var editable TemplateEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	template := editable.model()

	err = models.DB.Create(&template).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	// Instances between the start date and today exist right away, the
	// user does not have to wait for the next materialization run.
	_, err = recurrence.Run(models.DB, types.DayOf(time.Now()))
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.First(&template, template.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, newTemplate(c, template))
}

// @Summary		Get templates
// @Description	Returns a list of recurring templates
// @Tags			Templates
// @Produce		json
// @Success		200	{object}	[]Template
// @Failure		500	{object}	httpError
// @Router			/v1/templates [get]
func GetTemplates(c *gin.Context) {
	var templates []models.RecurringTemplate
	err := models.DB.Order("created_at ASC").Find(&templates).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	data := make([]Template, 0, len(templates))
	for _, template := range templates {
		data = append(data, newTemplate(c, template))
	}

	c.JSON(http.StatusOK, data)
}

// @Summary		Get template
// @Description	Returns a specific recurring template
// @Tags			Templates
// @Produce		json
// @Success		200	{object}	Template
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/templates/{id} [get]
func GetTemplate(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: httputil.ErrInvalidUUID.Error()})
		return
	}

	var template models.RecurringTemplate
	err = models.DB.First(&template, uri.ID.UUID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, newTemplate(c, template))
}

// @Summary		Update template
// @Description	Updates an existing template. Already materialized instances are not changed.
// @Tags			Templates
// @Accept			json
// @Produce		json
// @Success		200			{object}	Template
// @Failure		400			{object}	httpError
// @Failure		404			{object}	httpError
// @Param			id			path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			template	body		TemplateEditable	true	"Template"
// @Router			/v1/templates/{id} [patch]
func UpdateTemplate(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: httputil.ErrInvalidUUID.Error()})
		return
	}

	var template models.RecurringTemplate
	err = models.DB.First(&template, uri.ID.UUID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	editable := newTemplateEditable(template)
	err = httputil.BindData(c, &editable)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	updated := editable.model()
	template.Description = updated.Description
	template.Amount = updated.Amount
	template.Category = updated.Category
	template.Recurrence = updated.Recurrence
	template.StartDate = updated.StartDate
	template.EndDate = updated.EndDate

	err = models.DB.Save(&template).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, newTemplate(c, template))
}

// @Summary		Delete template
// @Description	Deletes a template together with all instances that were materialized from it
// @Tags			Templates
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/templates/{id} [delete]
func DeleteTemplate(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: httputil.ErrInvalidUUID.Error()})
		return
	}

	var template models.RecurringTemplate
	err = models.DB.First(&template, uri.ID.UUID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.Delete(&template).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
