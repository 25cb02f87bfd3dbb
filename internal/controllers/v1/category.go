package v1

import (
	"net/http"
	"strings"

	"github.com/expansepro/backend/internal/httputil"
	"github.com/expansepro/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/ryanuber/go-glob"
)

// RegisterCategoryRoutes registers the routes for categories with the
// RouterGroup that is passed.
func RegisterCategoryRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsCategoryList)
		r.GET("", GetCategories)
		r.POST("", CreateCategory)
	}

	r.OPTIONS("/suggest", OptionsCategorySuggest)
	r.GET("/suggest", SuggestCategory)

	// Category by name. Categories are referenced by value everywhere,
	// so the name is the natural identifier on the API, too.
	{
		r.OPTIONS("/:name", OptionsCategoryDetail)
		r.DELETE("/:name", DeleteCategory)
	}
}

// CategoryEditable holds all fields a client can set.
type CategoryEditable struct {
	Name string `json:"name" example:"Books"`
}

// SuggestionResponse is a category suggestion for a transaction
// description.
type SuggestionResponse struct {
	Category string `json:"category" example:"Food"`
}

type keywordRule struct {
	Pattern  string
	Category string
}

// categoryKeywords maps description patterns to the category they
// suggest. Patterns are matched case-insensitively against the whole
// description, the first match wins.
var categoryKeywords = []keywordRule{
	{"*grocer*", "Food"},
	{"*supermarket*", "Food"},
	{"*restaurant*", "Food"},
	{"*coffee*", "Food"},
	{"*cafe*", "Food"},
	{"*lunch*", "Food"},
	{"*dinner*", "Food"},
	{"*pizza*", "Food"},
	{"*uber*", "Transport"},
	{"*taxi*", "Transport"},
	{"*bus *", "Transport"},
	{"*train*", "Transport"},
	{"*fuel*", "Transport"},
	{"*gas station*", "Transport"},
	{"*parking*", "Transport"},
	{"*electric*", "Utilities"},
	{"*water*", "Utilities"},
	{"*internet*", "Utilities"},
	{"*phone*", "Utilities"},
	{"*salary*", "Salary"},
	{"*payroll*", "Salary"},
	{"*wage*", "Salary"},
	{"*cinema*", "Entertainment"},
	{"*movie*", "Entertainment"},
	{"*netflix*", "Entertainment"},
	{"*spotify*", "Entertainment"},
	{"*concert*", "Entertainment"},
	{"*game*", "Entertainment"},
	{"*amazon*", "Shopping"},
	{"*clothes*", "Shopping"},
	{"*shoes*", "Shopping"},
	{"*rent*", "Rent"},
	{"*landlord*", "Rent"},
	{"*pharmacy*", "Health"},
	{"*doctor*", "Health"},
	{"*dentist*", "Health"},
	{"*hospital*", "Health"},
	{"*gym*", "Health"},
	{"*tuition*", "Education"},
	{"*course*", "Education"},
	{"*book*", "Education"},
	{"*school*", "Education"},
	{"*dividend*", "Investments"},
	{"*stock*", "Investments"},
	{"*etf*", "Investments"},
	{"*gift*", "Gifts"},
	{"*present*", "Gifts"},
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Categories
// @Success		204
// @Router			/v1/categories [options]
func OptionsCategoryList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Categories
// @Success		204
// @Router			/v1/categories/suggest [options]
func OptionsCategorySuggest(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Categories
// @Success		204
// @Failure		404		{object}	httpError
// @Param			name	path		string	true	"Name of the category"
// @Router			/v1/categories/{name} [options]
func OptionsCategoryDetail(c *gin.Context) {
	var uri URIName
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	err = models.DB.Where(&models.Category{Name: uri.Name}).First(&models.Category{}).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.Header("allow", "DELETE")
	c.Status(http.StatusNoContent)
}

// @Summary		Get categories
// @Description	Returns all category names, sorted alphabetically
// @Tags			Categories
// @Produce		json
// @Success		200	{object}	[]string
// @Failure		500	{object}	httpError
// @Router			/v1/categories [get]
func GetCategories(c *gin.Context) {
	names, err := models.CategoryNames(models.DB)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, names)
}

// @Summary		Create category
// @Description	Creates a new category
// @Tags			Categories
// @Produce		json
// @Success		201			{object}	models.Category
// @Failure		400			{object}	httpError
// @Failure		500			{object}	httpError
// @Param			category	body		CategoryEditable	true	"Category"
// @Router			/v1/categories [post]
func CreateCategory(c *gin.Context) {
	var editable CategoryEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	category := models.Category{Name: editable.Name}

	err = models.DB.Create(&category).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, category)
}

// @Summary		Delete category
// @Description	Deletes a category. Default categories cannot be deleted, transactions with this category keep it.
// @Tags			Categories
// @Success		204
// @Failure		400		{object}	httpError
// @Failure		404		{object}	httpError
// @Param			name	path		string	true	"Name of the category"
// @Router			/v1/categories/{name} [delete]
func DeleteCategory(c *gin.Context) {
	var uri URIName
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	var category models.Category
	err = models.DB.Where(&models.Category{Name: uri.Name}).First(&category).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.Delete(&category).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary		Suggest category
// @Description	Suggests a category for a transaction description
// @Tags			Categories
// @Produce		json
// @Success		200			{object}	SuggestionResponse
// @Failure		400			{object}	httpError
// @Param			description	query		string	true	"Transaction description"
// @Router			/v1/categories/suggest [get]
func SuggestCategory(c *gin.Context) {
	description, ok := c.GetQuery("description")
	if !ok || description == "" {
		c.JSON(http.StatusBadRequest, httpError{Error: "the description query parameter is required"})
		return
	}

	c.JSON(http.StatusOK, SuggestionResponse{Category: suggest(description)})
}

// suggest matches the description against the keyword table. The
// fallback for descriptions without a match is "Other".
func suggest(description string) string {
	description = strings.ToLower(description)

	for _, rule := range categoryKeywords {
		if glob.Glob(rule.Pattern, description) {
			return rule.Category
		}
	}

	return "Other"
}
