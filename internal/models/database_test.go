package models_test

import (
	"os"

	"github.com/expansepro/backend/internal/models"
	"github.com/expansepro/backend/test"
)

func (suite *TestSuiteStandard) TestConnectCorruptFile() {
	dsn := test.TmpFile(suite.T())
	suite.Require().NoError(os.WriteFile(dsn, []byte("this is not a database"), 0o600))

	// A corrupt file degrades to empty collections, not a dead backend
	suite.Require().NoError(models.Connect(dsn))

	var count int64
	suite.Require().NoError(models.DB.Model(&models.Transaction{}).Count(&count).Error)
	suite.Assert().Zero(count)

	// The broken file was moved aside for inspection
	_, err := os.Stat(dsn + ".corrupt")
	suite.Assert().NoError(err)
}

func (suite *TestSuiteStandard) TestConnectInvalidPath() {
	suite.Assert().Error(models.Connect("/does/not/exist/database.db"))
}

func (suite *TestSuiteStandard) TestClosedDatabaseErrors() {
	sqlDB, err := models.DB.DB()
	suite.Require().NoError(err)
	sqlDB.Close()

	err = models.DB.Create(&models.Category{Name: "Books"}).Error
	suite.Assert().ErrorIs(err, models.ErrGeneral)
}
