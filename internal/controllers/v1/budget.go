package v1

import (
	"net/http"

	"github.com/expansepro/backend/internal/httputil"
	"github.com/expansepro/backend/internal/models"
	"github.com/expansepro/backend/internal/report"
	"github.com/expansepro/backend/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// RegisterBudgetRoutes registers the routes for budgets with the
// RouterGroup that is passed.
func RegisterBudgetRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsBudgetList)
		r.GET("", GetBudgets)
		r.POST("", CreateBudget)
	}

	// Budget with ID
	{
		r.OPTIONS("/:id", OptionsBudgetDetail)
		r.GET("/:id", GetBudget)
		r.PATCH("/:id", UpdateBudget)
		r.DELETE("/:id", DeleteBudget)
		r.GET("/:id/progress", GetBudgetProgress)
	}
}

// BudgetEditable holds all fields a client can set.
type BudgetEditable struct {
	Category string          `json:"category" example:"Food"`
	Month    types.Month     `json:"month" example:"2024-03"`
	Limit    decimal.Decimal `json:"limit" example:"150"`
}

func (editable BudgetEditable) model() models.Budget {
	return models.Budget{
		Category: editable.Category,
		Month:    editable.Month,
		Limit:    editable.Limit,
	}
}

func newBudgetEditable(model models.Budget) BudgetEditable {
	return BudgetEditable{
		Category: model.Category,
		Month:    model.Month,
		Limit:    model.Limit,
	}
}

type BudgetLinks struct {
	Self     string `json:"self" example:"https://example.com/v1/budgets/d1397e86-a3f5-4f4c-a3b8-d482d0c812ae"`
	Progress string `json:"progress" example:"https://example.com/v1/budgets/d1397e86-a3f5-4f4c-a3b8-d482d0c812ae/progress"`
}

// Budget is the API representation of a budget.
type Budget struct {
	models.Budget
	Links BudgetLinks `json:"links"`
}

func newBudget(c *gin.Context, model models.Budget) Budget {
	self := httputil.RequestPathV1(c) + "/budgets/" + model.ID.String()

	return Budget{
		Budget: model,
		Links: BudgetLinks{
			Self:     self,
			Progress: self + "/progress",
		},
	}
}

// BudgetProgressResponse is the evaluation of one budget. The
// percentage is the true ratio and can exceed 100, DisplayPercentage
// is clamped for progress bars.
type BudgetProgressResponse struct {
	report.BudgetProgress
	DisplayPercentage decimal.Decimal `json:"displayPercentage" example:"100"`
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budgets
// @Success		204
// @Router			/v1/budgets [options]
func OptionsBudgetList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budgets
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/budgets/{id} [options]
func OptionsBudgetDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: httputil.ErrInvalidUUID.Error()})
		return
	}

	err = models.DB.First(&models.Budget{}, uri.ID.UUID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Create budget
// @Description	Creates a new budget. There can only be one budget per category and month.
// @Tags			Budgets
// @Produce		json
// @Success		201		{object}	Budget
// @Failure		400		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			budget	body		BudgetEditable	true	"Budget"
// @Router			/v1/budgets [post]
func CreateBudget(c *gin.Context) {
	var editable BudgetEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	budget := editable.model()

	err = models.DB.Create(&budget).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, newBudget(c, budget))
}

// @Summary		Get budgets
// @Description	Returns a list of budgets
// @Tags			Budgets
// @Produce		json
// @Success		200	{object}	[]Budget
// @Failure		400	{object}	httpError
// @Failure		500	{object}	httpError
// @Router			/v1/budgets [get]
// @Param			month	query	string	false	"Filter by month in YYYY-MM format"
func GetBudgets(c *gin.Context) {
	q := models.DB.Order("month ASC, category ASC")

	if raw, ok := c.GetQuery("month"); ok {
		month, err := types.ParseMonth(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, httpError{Error: httputil.ErrInvalidMonth.Error()})
			return
		}

		q = q.Where("month = ?", month)
	}

	var budgets []models.Budget
	err := q.Find(&budgets).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	data := make([]Budget, 0, len(budgets))
	for _, budget := range budgets {
		data = append(data, newBudget(c, budget))
	}

	c.JSON(http.StatusOK, data)
}

// @Summary		Get budget
// @Description	Returns a specific budget
// @Tags			Budgets
// @Produce		json
// @Success		200	{object}	Budget
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/budgets/{id} [get]
func GetBudget(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: httputil.ErrInvalidUUID.Error()})
		return
	}

	var budget models.Budget
	err = models.DB.First(&budget, uri.ID.UUID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, newBudget(c, budget))
}

// @Summary		Get budget progress
// @Description	Evaluates the budget against the transactions of its month
// @Tags			Budgets
// @Produce		json
// @Success		200	{object}	BudgetProgressResponse
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/budgets/{id}/progress [get]
func GetBudgetProgress(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: httputil.ErrInvalidUUID.Error()})
		return
	}

	var budget models.Budget
	err = models.DB.First(&budget, uri.ID.UUID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	transactions, err := models.TransactionsForMonth(models.DB, budget.Month)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	progress, err := report.Progress(budget, transactions)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, BudgetProgressResponse{
		BudgetProgress:    roundProgress(progress),
		DisplayPercentage: progress.CappedPercentage().Round(2),
	})
}

// roundProgress rounds all amounts to two places for the API. The
// aggregation itself works on unrounded values.
func roundProgress(progress report.BudgetProgress) report.BudgetProgress {
	progress.Spent = progress.Spent.Round(2)
	progress.Remaining = progress.Remaining.Round(2)
	progress.Percentage = progress.Percentage.Round(2)
	return progress
}

// @Summary		Update budget
// @Description	Updates an existing budget. Only values to be updated need to be specified.
// @Tags			Budgets
// @Accept			json
// @Produce		json
// @Success		200		{object}	Budget
// @Failure		400		{object}	httpError
// @Failure		404		{object}	httpError
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			budget	body		BudgetEditable	true	"Budget"
// @Router			/v1/budgets/{id} [patch]
func UpdateBudget(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: httputil.ErrInvalidUUID.Error()})
		return
	}

	var budget models.Budget
	err = models.DB.First(&budget, uri.ID.UUID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	editable := newBudgetEditable(budget)
	err = httputil.BindData(c, &editable)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	updated := editable.model()
	budget.Category = updated.Category
	budget.Month = updated.Month
	budget.Limit = updated.Limit

	err = models.DB.Save(&budget).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, newBudget(c, budget))
}

// @Summary		Delete budget
// @Description	Deletes a budget
// @Tags			Budgets
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/budgets/{id} [delete]
func DeleteBudget(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: httputil.ErrInvalidUUID.Error()})
		return
	}

	var budget models.Budget
	err = models.DB.First(&budget, uri.ID.UUID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.Delete(&budget).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
