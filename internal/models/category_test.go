package models_test

import (
	"sort"

	"github.com/expansepro/backend/internal/models"
	"github.com/expansepro/backend/test"
)

func (suite *TestSuiteStandard) TestDefaultCategoriesSeeded() {
	names, err := models.CategoryNames(models.DB)
	suite.Require().NoError(err)
	suite.Assert().Len(names, len(models.DefaultCategories))

	for _, name := range models.DefaultCategories {
		suite.Assert().Contains(names, name)
	}
}

func (suite *TestSuiteStandard) TestSeedingIsIdempotent() {
	// Connecting again to the same file must not duplicate categories
	dsn := test.TmpFile(suite.T())
	suite.Require().NoError(models.Connect(dsn))
	suite.Require().NoError(models.Connect(dsn))

	var food []models.Category
	suite.Require().NoError(models.DB.Where(&models.Category{Name: "Food"}).Find(&food).Error)
	suite.Assert().Len(food, 1)
	suite.Assert().True(food[0].Protected)
}

func (suite *TestSuiteStandard) TestCategoryNamesSorted() {
	suite.Require().NoError(models.DB.Create(&models.Category{Name: "Books"}).Error)

	names, err := models.CategoryNames(models.DB)
	suite.Require().NoError(err)
	suite.Assert().True(sort.StringsAreSorted(names), "names are not sorted: %v", names)
}

func (suite *TestSuiteStandard) TestCategoryUnique() {
	err := models.DB.Create(&models.Category{Name: "Food"}).Error
	suite.Assert().ErrorIs(err, models.ErrCategoryNameNotUnique)
}

func (suite *TestSuiteStandard) TestCategoryEmptyName() {
	err := models.DB.Create(&models.Category{Name: "   "}).Error
	suite.Assert().ErrorIs(err, models.ErrCategoryNameRequired)
}

func (suite *TestSuiteStandard) TestProtectedCategoryCannotBeDeleted() {
	var food models.Category
	suite.Require().NoError(models.DB.Where(&models.Category{Name: "Food"}).First(&food).Error)

	err := models.DB.Delete(&food).Error
	suite.Assert().ErrorIs(err, models.ErrCategoryProtected)

	// Still there
	suite.Assert().NoError(models.DB.Where(&models.Category{Name: "Food"}).First(&models.Category{}).Error)
}

func (suite *TestSuiteStandard) TestUnprotectedCategoryCanBeDeleted() {
	category := models.Category{Name: "Books"}
	suite.Require().NoError(models.DB.Create(&category).Error)
	suite.Assert().NoError(models.DB.Delete(&category).Error)

	// Deletes are hard deletes, so the name is free again
	suite.Assert().NoError(models.DB.Create(&models.Category{Name: "Books"}).Error)
}
